package notificador

import (
	"fmt"
	"strings"
)

// Protocolos soportados
const (
	ProtocoloMQTT = "mqtt"
	ProtocoloCoAP = "coap"
)

// Configuracion del destino de los eventos. Sin Direccion no se publica nada.
type Configuracion struct {
	Protocolo string `envconfig:"PROTOCOLO"` // mqtt | coap (default: mqtt)
	Direccion string `envconfig:"DIRECCION"`
	Puerto    string `envconfig:"PUERTO"` // default: 1883 (mqtt) o 5683 (coap)
	Topico    string `envconfig:"TOPICO"` // default: visol/modelos
	Ruta      string `envconfig:"RUTA"`   // Recurso CoAP (default: /visol)
}

// Habilitado indica si hay un destino configurado
func (c *Configuracion) Habilitado() bool {
	return c.Direccion != ""
}

// AplicarDefaults completa los valores no especificados
func (c *Configuracion) AplicarDefaults() {
	c.Protocolo = strings.ToLower(c.Protocolo)
	if c.Protocolo == "" {
		c.Protocolo = ProtocoloMQTT
	}
	if c.Puerto == "" {
		if c.Protocolo == ProtocoloCoAP {
			c.Puerto = "5683"
		} else {
			c.Puerto = "1883"
		}
	}
	if c.Topico == "" {
		c.Topico = "visol/modelos"
	}
	if c.Ruta == "" {
		c.Ruta = "/visol"
	}
}

// Validar comprueba la configuración
func (c *Configuracion) Validar() error {
	if c.Protocolo != ProtocoloMQTT && c.Protocolo != ProtocoloCoAP {
		return fmt.Errorf("protocolo de notificación desconocido: %q", c.Protocolo)
	}
	if c.Direccion == "" {
		return fmt.Errorf("Direccion es requerida")
	}
	return nil
}

// Conectar crea el publicador del protocolo configurado
func Conectar(cfg Configuracion) (Publicador, error) {
	cfg.AplicarDefaults()
	if err := cfg.Validar(); err != nil {
		return nil, err
	}
	if cfg.Protocolo == ProtocoloCoAP {
		return ConectarCoAP(cfg.Direccion, cfg.Puerto, cfg.Ruta, cfg.Topico)
	}
	return ConectarMQTT(cfg.Direccion, cfg.Puerto, cfg.Topico)
}
