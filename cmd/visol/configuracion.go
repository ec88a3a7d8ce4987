package main

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/pachi/visol/almacen"
	"github.com/pachi/visol/modelo"
	"github.com/pachi/visol/notificador"
	"github.com/pachi/visol/nube"
	"github.com/pachi/visol/tipos"
)

// Configuracion del lanzador. Se lee de variables de entorno con prefijo VISOL,
// por ejemplo VISOL_DIRECTORIO o VISOL_S3_BUCKET.
type Configuracion struct {
	Directorio       string                    `envconfig:"DIRECTORIO" default:"visol-datos"`
	CompresionBloque string                    `envconfig:"COMPRESION" default:"lz4"`
	OmitirBin        bool                      `envconfig:"OMITIR_BIN" default:"false"`
	MaxTamanoArchivo int64                     `envconfig:"MAX_TAMANO_ARCHIVO"`
	S3               nube.ConfiguracionS3      `envconfig:"S3"`
	Notificador      notificador.Configuracion `envconfig:"NOTIFICADOR"`
}

// CargarConfiguracion lee la configuración del entorno
func CargarConfiguracion() (Configuracion, error) {
	var cfg Configuracion
	if err := envconfig.Process("VISOL", &cfg); err != nil {
		return Configuracion{}, fmt.Errorf("error al leer configuración: %w", err)
	}
	cfg.S3.AplicarDefaults()
	if cfg.Notificador.Habilitado() {
		cfg.Notificador.AplicarDefaults()
	}
	return cfg, nil
}

// OpcionesModelo traduce la configuración a opciones de carga
func (c Configuracion) OpcionesModelo() modelo.Opciones {
	return modelo.Opciones{OmitirBin: c.OmitirBin, MaxTamanoArchivo: c.MaxTamanoArchivo}
}

// OpcionesAlmacen traduce la configuración a opciones del almacén
func (c Configuracion) OpcionesAlmacen() (almacen.Opciones, error) {
	compresion, err := tipos.ParsearTipoCompresionBloque(c.CompresionBloque)
	if err != nil {
		return almacen.Opciones{}, err
	}
	opts := almacen.Opciones{Directorio: c.Directorio, CompresionBloque: compresion}
	opts.AplicarDefaults()
	if err := opts.Validar(); err != nil {
		return almacen.Opciones{}, err
	}
	return opts, nil
}
