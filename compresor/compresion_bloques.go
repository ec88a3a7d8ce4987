package compresor

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/pachi/visol/tipos"
	"github.com/pierrec/lz4/v4"
)

// CompresorBloque define la interfaz para compresores de bloques (nivel 2)
type CompresorBloque interface {
	Comprimir(datos []byte) ([]byte, error)
	Descomprimir(datos []byte) ([]byte, error)
}

// ObtenerCompresorBloque factory para crear compresores de bloques
func ObtenerCompresorBloque(tipo tipos.TipoCompresionBloque) CompresorBloque {
	switch tipo {
	case tipos.LZ4:
		return &CompresorLZ4{}
	case tipos.ZSTD:
		return &CompresorZSTD{}
	case tipos.Snappy:
		return &CompresorSnappy{}
	case tipos.Gzip:
		return &CompresorGzip{}
	case tipos.Ninguna:
		return &CompresorBloqueNinguno{}
	default:
		return &CompresorBloqueNinguno{}
	}
}

// CompresorBloqueNinguno implementa sin compresión para bloques
type CompresorBloqueNinguno struct{}

func (c *CompresorBloqueNinguno) Comprimir(datos []byte) ([]byte, error) {
	return datos, nil
}

func (c *CompresorBloqueNinguno) Descomprimir(datos []byte) ([]byte, error) {
	return datos, nil
}

// CompresorLZ4 usa el formato de trama LZ4
type CompresorLZ4 struct{}

func (c *CompresorLZ4) Comprimir(datos []byte) ([]byte, error) {
	if len(datos) == 0 {
		return []byte{}, nil
	}
	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	if _, err := zw.Write(datos); err != nil {
		return nil, fmt.Errorf("error al comprimir con LZ4: %v", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("error al cerrar compresor LZ4: %v", err)
	}
	return buf.Bytes(), nil
}

func (c *CompresorLZ4) Descomprimir(datos []byte) ([]byte, error) {
	if len(datos) == 0 {
		return []byte{}, nil
	}
	resultado, err := io.ReadAll(lz4.NewReader(bytes.NewReader(datos)))
	if err != nil {
		return nil, fmt.Errorf("error al descomprimir LZ4: %v", err)
	}
	return resultado, nil
}

// CompresorZSTD comprime cada bloque como una trama zstd independiente
type CompresorZSTD struct{}

func (c *CompresorZSTD) Comprimir(datos []byte) ([]byte, error) {
	if len(datos) == 0 {
		return []byte{}, nil
	}
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("error al crear compresor ZSTD: %v", err)
	}
	defer enc.Close()
	return enc.EncodeAll(datos, make([]byte, 0, len(datos)/2)), nil
}

func (c *CompresorZSTD) Descomprimir(datos []byte) ([]byte, error) {
	if len(datos) == 0 {
		return []byte{}, nil
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("error al crear descompresor ZSTD: %v", err)
	}
	defer dec.Close()
	resultado, err := dec.DecodeAll(datos, nil)
	if err != nil {
		return nil, fmt.Errorf("error al descomprimir ZSTD: %v", err)
	}
	return resultado, nil
}

// CompresorSnappy usa el formato de bloque de Snappy
type CompresorSnappy struct{}

func (c *CompresorSnappy) Comprimir(datos []byte) ([]byte, error) {
	if len(datos) == 0 {
		return []byte{}, nil
	}
	return snappy.Encode(nil, datos), nil
}

func (c *CompresorSnappy) Descomprimir(datos []byte) ([]byte, error) {
	if len(datos) == 0 {
		return []byte{}, nil
	}
	resultado, err := snappy.Decode(nil, datos)
	if err != nil {
		return nil, fmt.Errorf("error al descomprimir Snappy: %v", err)
	}
	return resultado, nil
}

// CompresorGzip
type CompresorGzip struct{}

func (c *CompresorGzip) Comprimir(datos []byte) ([]byte, error) {
	if len(datos) == 0 {
		return []byte{}, nil
	}
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(datos); err != nil {
		return nil, fmt.Errorf("error al comprimir con Gzip: %v", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("error al cerrar compresor Gzip: %v", err)
	}
	return buf.Bytes(), nil
}

func (c *CompresorGzip) Descomprimir(datos []byte) ([]byte, error) {
	if len(datos) == 0 {
		return []byte{}, nil
	}
	zr, err := gzip.NewReader(bytes.NewReader(datos))
	if err != nil {
		return nil, fmt.Errorf("error al abrir bloque Gzip: %v", err)
	}
	defer zr.Close()
	resultado, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("error al descomprimir Gzip: %v", err)
	}
	return resultado, nil
}
