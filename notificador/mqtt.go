package notificador

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
)

// clienteMQTT es la parte de mqtt.Client que usa el publicador
type clienteMQTT interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	Disconnect(quiesce uint)
}

// PublicadorMQTT publica eventos en un tópico de un broker MQTT
type PublicadorMQTT struct {
	cliente clienteMQTT
	topico  string
	qos     int
}

// ConectarMQTT conecta con el broker tcp://direccion:puerto
func ConectarMQTT(direccion, puerto, topico string, opciones ...PublicarOpcion) (*PublicadorMQTT, error) {
	servidor := "tcp://" + net.JoinHostPort(direccion, puerto)
	opts := mqtt.NewClientOptions()
	opts.AddBroker(servidor)
	opts.SetClientID("visol_" + uuid.New().String())
	opts.SetConnectTimeout(10 * time.Second)

	cliente := mqtt.NewClient(opts)
	if token := cliente.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("error al conectar al broker MQTT %s: %v", servidor, token.Error())
	}
	loggerPrint(LOG_NOTIFICADOR, "Conectado al broker MQTT %s", servidor)
	return nuevoPublicadorMQTT(cliente, topico, opciones...)
}

func nuevoPublicadorMQTT(cliente clienteMQTT, topico string, opciones ...PublicarOpcion) (*PublicadorMQTT, error) {
	// Las opciones se validan una vez al crear el publicador
	m, err := Construir(topico, Evento{}, opciones...)
	if err != nil {
		return nil, err
	}
	return &PublicadorMQTT{cliente: cliente, topico: topico, qos: m.QoS}, nil
}

// Publicar envía el evento y espera la confirmación del broker o la cancelación del contexto
func (p *PublicadorMQTT) Publicar(ctx context.Context, evento Evento) error {
	mensaje, err := Construir(p.topico, evento, ConQoS(p.qos))
	if err != nil {
		return err
	}
	mensajeBytes, err := json.Marshal(mensaje)
	if err != nil {
		return fmt.Errorf("error al serializar el mensaje: %v", err)
	}

	token := p.cliente.Publish(p.topico, byte(p.qos), false, mensajeBytes)
	select {
	case <-token.Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("error al publicar en %s: %w", p.topico, err)
	}
	return nil
}

// Cerrar desconecta el cliente
func (p *PublicadorMQTT) Cerrar() {
	p.cliente.Disconnect(250)
	loggerPrint(LOG_NOTIFICADOR, "Cliente MQTT desconectado")
}
