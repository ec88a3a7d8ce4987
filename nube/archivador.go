// Package nube archiva en un almacenamiento compatible con S3 los archivos de
// resultados de un modelo junto con un resumen en JSON.
package nube

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/pachi/visol/lector"
	"github.com/pachi/visol/modelo"
	"github.com/pachi/visol/tipos"
)

const LOG_NUBE = "NUBE"

// loggerPrint imprime un mensaje en la consola de log
func loggerPrint(logger string, mensaje string, args ...any) {
	mensaje = "[" + logger + "] " + mensaje
	log.Printf(mensaje, args...)
}

// NombreResumen es el nombre del objeto JSON con el resumen de cada archivo
const NombreResumen = "resumen.json"

// Archivador sube los resultados de un modelo a un bucket
type Archivador struct {
	cliente ClienteS3
	bucket  string
	ahora   func() time.Time
}

// NuevoArchivador crea un archivador sobre un cliente existente y asegura que el bucket existe
func NuevoArchivador(ctx context.Context, cliente ClienteS3, cfg ConfiguracionS3) (*Archivador, error) {
	cfg.AplicarDefaults()
	if err := asegurarBucket(ctx, cliente, cfg.Bucket); err != nil {
		return nil, err
	}
	return &Archivador{cliente: cliente, bucket: cfg.Bucket, ahora: time.Now}, nil
}

// Conectar crea el cliente S3 a partir de la configuración y devuelve su archivador
func Conectar(ctx context.Context, cfg ConfiguracionS3) (*Archivador, error) {
	cliente, err := CrearClienteS3(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a, err := NuevoArchivador(ctx, cliente, cfg)
	if err != nil {
		return nil, err
	}
	loggerPrint(LOG_NUBE, "Conexión a S3 configurada (endpoint: %s, bucket: %s)", cfg.Endpoint, a.bucket)
	return a, nil
}

// ResumenObjeto contiene los datos básicos de un edificio, planta o zona
type ResumenObjeto struct {
	Nombre        string  `json:"nombre"`
	Multiplicador int     `json:"multiplicador"`
	Superficie    float64 `json:"superficie"`
	Calefaccion   float64 `json:"calefaccion"`
	Refrigeracion float64 `json:"refrigeracion"`
}

// ResumenPlanta añade a los datos de una planta los de sus zonas
type ResumenPlanta struct {
	ResumenObjeto
	Zonas []ResumenObjeto `json:"zonas"`
}

// Resumen es el contenido de resumen.json
type Resumen struct {
	Edificio           ResumenObjeto   `json:"edificio"`
	CalefaccionMeses   []float64       `json:"calefaccion_meses"`
	RefrigeracionMeses []float64       `json:"refrigeracion_meses"`
	Plantas            []ResumenPlanta `json:"plantas"`
	ZonasHorarias      []string        `json:"zonas_horarias,omitempty"`
	Instante           time.Time       `json:"instante"`
}

func resumenObjeto(m *modelo.Modelo, tipo tipos.TipoObjeto, nombre string) (ResumenObjeto, error) {
	datos, err := m.DatosBasicos(tipo, nombre)
	if err != nil {
		return ResumenObjeto{}, err
	}
	return ResumenObjeto{
		Nombre:        nombre,
		Multiplicador: datos.Multiplicador,
		Superficie:    datos.Superficie,
		Calefaccion:   datos.Calefaccion,
		Refrigeracion: datos.Refrigeracion,
	}, nil
}

// NuevoResumen calcula el resumen de un modelo
func NuevoResumen(m *modelo.Modelo, instante time.Time) (Resumen, error) {
	e := m.Edificio
	edificio, err := resumenObjeto(m, tipos.ObjetoEdificio, e.Nombre)
	if err != nil {
		return Resumen{}, err
	}
	cal, ref, err := m.DemandasMensuales(tipos.ObjetoEdificio, e.Nombre)
	if err != nil {
		return Resumen{}, err
	}

	r := Resumen{
		Edificio:           edificio,
		CalefaccionMeses:   cal,
		RefrigeracionMeses: ref,
		Plantas:            make([]ResumenPlanta, 0, len(e.Plantas)),
		ZonasHorarias:      m.ZonasHorarias(),
		Instante:           instante,
	}
	for _, p := range e.Plantas {
		planta, err := resumenObjeto(m, tipos.ObjetoPlanta, p.Nombre)
		if err != nil {
			return Resumen{}, err
		}
		rp := ResumenPlanta{ResumenObjeto: planta, Zonas: make([]ResumenObjeto, 0, len(p.Zonas))}
		for _, nombre := range p.Zonas {
			zona, err := resumenObjeto(m, tipos.ObjetoZona, nombre)
			if err != nil {
				return Resumen{}, err
			}
			rp.Zonas = append(rp.Zonas, zona)
		}
		r.Plantas = append(r.Plantas, rp)
	}
	return r, nil
}

// Archivo describe un modelo archivado
type Archivo struct {
	Prefijo string   // <edificio>/<instante>/
	Claves  []string // Objetos subidos
}

// Archivar sube el archivo .res, el .bin si existe y resumen.json bajo
// <edificio>/<instante UTC>/
func (a *Archivador) Archivar(ctx context.Context, m *modelo.Modelo) (Archivo, error) {
	if m == nil || m.Edificio == nil {
		return Archivo{}, fmt.Errorf("modelo vacío")
	}
	instante := a.ahora().UTC()
	archivo := Archivo{
		Prefijo: fmt.Sprintf("%s/%s/", m.Edificio.Nombre, instante.Format("20060102T150405Z")),
	}

	rutas := []string{m.RutaRes}
	if m.RutaBin != "" {
		rutas = append(rutas, m.RutaBin)
	}
	for _, ruta := range rutas {
		datos, err := lector.LeerArchivo(ruta, lector.MaxTamanoDefecto)
		if err != nil {
			return archivo, err
		}
		clave := archivo.Prefijo + filepath.Base(ruta)
		if err := a.subir(ctx, clave, datos, "application/octet-stream"); err != nil {
			return archivo, err
		}
		archivo.Claves = append(archivo.Claves, clave)
	}

	resumen, err := NuevoResumen(m, instante)
	if err != nil {
		return archivo, fmt.Errorf("error al generar resumen: %w", err)
	}
	resumenJSON, err := json.MarshalIndent(resumen, "", "  ")
	if err != nil {
		return archivo, fmt.Errorf("error al serializar resumen: %v", err)
	}
	clave := archivo.Prefijo + NombreResumen
	if err := a.subir(ctx, clave, resumenJSON, "application/json"); err != nil {
		return archivo, err
	}
	archivo.Claves = append(archivo.Claves, clave)

	loggerPrint(LOG_NUBE, "Modelo %s archivado en s3://%s/%s (%d objetos)",
		m.Edificio.Nombre, a.bucket, archivo.Prefijo, len(archivo.Claves))
	return archivo, nil
}

func (a *Archivador) subir(ctx context.Context, clave string, datos []byte, tipoContenido string) error {
	_, err := a.cliente.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(clave),
		Body:        bytes.NewReader(datos),
		ContentType: aws.String(tipoContenido),
	})
	if err != nil {
		return fmt.Errorf("error al subir %s a S3: %w", clave, err)
	}
	return nil
}

// Listar devuelve las claves archivadas de un edificio
func (a *Archivador) Listar(ctx context.Context, edificio string) ([]string, error) {
	var claves []string
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(a.bucket),
		Prefix: aws.String(edificio + "/"),
	}
	for {
		resultado, err := a.cliente.ListObjectsV2(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("error al listar objetos en S3: %w", err)
		}
		for _, obj := range resultado.Contents {
			claves = append(claves, aws.ToString(obj.Key))
		}
		if !aws.ToBool(resultado.IsTruncated) {
			break
		}
		input.ContinuationToken = resultado.NextContinuationToken
	}
	return claves, nil
}
