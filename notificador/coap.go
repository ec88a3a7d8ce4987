package notificador

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/url"

	"github.com/plgd-dev/go-coap/v3/message"
	"github.com/plgd-dev/go-coap/v3/message/codes"
	"github.com/plgd-dev/go-coap/v3/message/pool"
	"github.com/plgd-dev/go-coap/v3/udp"
)

// clienteCoAP es la parte de la conexión UDP que usa el publicador
type clienteCoAP interface {
	Post(ctx context.Context, path string, contentFormat message.MediaType, payload io.ReadSeeker, opts ...message.Option) (*pool.Message, error)
	Close() error
}

// PublicadorCoAP publica eventos con POST sobre un recurso CoAP
type PublicadorCoAP struct {
	conn   clienteCoAP
	ruta   string
	topico string
}

// ConectarCoAP abre una conexión UDP con el servidor. Los eventos se envían a
// <ruta>?topico=<topico>.
func ConectarCoAP(direccion, puerto, ruta, topico string) (*PublicadorCoAP, error) {
	servidor := net.JoinHostPort(direccion, puerto)
	conn, err := udp.Dial(servidor)
	if err != nil {
		return nil, fmt.Errorf("error al conectarse a %s: %v", servidor, err)
	}
	loggerPrint(LOG_NOTIFICADOR, "Conectado al servidor CoAP %s", servidor)
	return nuevoPublicadorCoAP(conn, ruta, topico), nil
}

func nuevoPublicadorCoAP(conn clienteCoAP, ruta, topico string) *PublicadorCoAP {
	if ruta == "" {
		ruta = "/visol"
	}
	return &PublicadorCoAP{conn: conn, ruta: ruta, topico: topico}
}

// Publicar envía el evento y comprueba el código de respuesta
func (p *PublicadorCoAP) Publicar(ctx context.Context, evento Evento) error {
	mensaje, err := Construir(p.topico, evento)
	if err != nil {
		return err
	}
	mensajeBytes, err := json.Marshal(mensaje)
	if err != nil {
		return fmt.Errorf("error al serializar el mensaje: %v", err)
	}

	path := fmt.Sprintf("%s?topico=%s", p.ruta, url.QueryEscape(p.topico))
	resp, err := p.conn.Post(ctx, path, message.AppJSON, bytes.NewReader(mensajeBytes))
	if err != nil {
		return fmt.Errorf("error al publicar en %s: %w", path, err)
	}
	if resp.Code() >= codes.BadRequest {
		return fmt.Errorf("el servidor CoAP rechazó el evento: %v", resp.Code())
	}
	return nil
}

// Cerrar cierra la conexión
func (p *PublicadorCoAP) Cerrar() {
	if err := p.conn.Close(); err != nil {
		loggerPrint(LOG_NOTIFICADOR, "Error al cerrar conexión CoAP: %v", err)
	}
}
