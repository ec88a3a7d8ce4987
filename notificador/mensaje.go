// Package notificador publica eventos de carga de modelos en un broker MQTT o
// en un servidor CoAP.
package notificador

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/pachi/visol/modelo"
)

const LOG_NOTIFICADOR = "NOTIFICADOR"

// loggerPrint imprime un mensaje en la consola de log
func loggerPrint(logger string, mensaje string, args ...any) {
	mensaje = "[" + logger + "] " + mensaje
	log.Printf(mensaje, args...)
}

var errQoSInvalido = errors.New("qos invalido")

// Publicador envía eventos a un destino
type Publicador interface {
	Publicar(ctx context.Context, evento Evento) error
	Cerrar()
}

// TipoEvento identifica qué ocurrió con un modelo
type TipoEvento string

const (
	EventoModeloCargado    TipoEvento = "modelo_cargado"
	EventoModeloAlmacenado TipoEvento = "modelo_almacenado"
	EventoModeloArchivado  TipoEvento = "modelo_archivado"
)

// Evento describe un modelo cargado
type Evento struct {
	Tipo          TipoEvento `json:"tipo"`
	Ruta          string     `json:"ruta"`
	Edificio      string     `json:"edificio"`
	Plantas       int        `json:"plantas"`
	Zonas         int        `json:"zonas"`
	ZonasHorarias int        `json:"zonas_horarias"`
	Referencia    string     `json:"referencia,omitempty"` // ID de carga, prefijo de archivo o ruta del informe
	Instante      time.Time  `json:"instante"`
}

// NuevoEvento crea un evento con los datos del modelo
func NuevoEvento(tipo TipoEvento, m *modelo.Modelo, referencia string) Evento {
	return Evento{
		Tipo:          tipo,
		Ruta:          m.RutaRes,
		Edificio:      m.Edificio.Nombre,
		Plantas:       len(m.Edificio.Plantas),
		Zonas:         len(m.Edificio.Zonas),
		ZonasHorarias: len(m.ZonasHorarias()),
		Referencia:    referencia,
		Instante:      time.Now().UTC(),
	}
}

// Mensaje es el sobre JSON en que viaja cada evento
type Mensaje struct {
	Original  bool   `json:"original"`
	Topico    string `json:"topico"`
	Payload   []byte `json:"payload"`
	QoS       int    `json:"qos,omitempty"`
	MessageID string `json:"messageId,omitempty"`
}

// PublicarOpcion modifica el mensaje antes de enviarlo
type PublicarOpcion func(*Mensaje) error

// ConQoS fija la calidad de servicio (0 o 1)
func ConQoS(qos int) PublicarOpcion {
	return func(m *Mensaje) error {
		m.QoS = qos
		return nil
	}
}

// Construir serializa un evento dentro de un Mensaje para el tópico dado
func Construir(topico string, evento Evento, opciones ...PublicarOpcion) (Mensaje, error) {
	if topico == "" {
		return Mensaje{}, errors.New("tópico vacío")
	}
	data, err := json.Marshal(evento)
	if err != nil {
		return Mensaje{}, fmt.Errorf("error al serializar el evento: %v", err)
	}
	mensaje := Mensaje{Original: true, Topico: topico, Payload: data}

	for _, op := range opciones {
		if err := op(&mensaje); err != nil {
			return Mensaje{}, err
		}
	}

	if mensaje.QoS != 0 && mensaje.QoS != 1 {
		return Mensaje{}, errQoSInvalido
	}
	if mensaje.QoS == 1 && mensaje.MessageID == "" {
		mensaje.MessageID = uuid.New().String()
	}
	return mensaje, nil
}

// Leer recupera el evento de un mensaje recibido
func Leer(datos []byte) (Mensaje, Evento, error) {
	var mensaje Mensaje
	if err := json.Unmarshal(datos, &mensaje); err != nil {
		return Mensaje{}, Evento{}, fmt.Errorf("error al procesar el mensaje: %v", err)
	}
	var evento Evento
	if err := json.Unmarshal(mensaje.Payload, &evento); err != nil {
		return mensaje, Evento{}, fmt.Errorf("error al procesar el evento: %v", err)
	}
	return mensaje, evento, nil
}
