package tipos

import (
	"fmt"
	"strings"
)

// TipoCompresionBloque define el algoritmo de compresión de bloques (nivel 2)
type TipoCompresionBloque string

const (
	Ninguna TipoCompresionBloque = "ninguna"
	LZ4     TipoCompresionBloque = "lz4"
	ZSTD    TipoCompresionBloque = "zstd"
	Snappy  TipoCompresionBloque = "snappy"
	Gzip    TipoCompresionBloque = "gzip"
)

// ParsearTipoCompresionBloque interpreta el nombre de un algoritmo (sin distinguir mayúsculas).
// La cadena vacía equivale a Ninguna.
func ParsearTipoCompresionBloque(s string) (TipoCompresionBloque, error) {
	switch t := TipoCompresionBloque(strings.ToLower(strings.TrimSpace(s))); t {
	case "":
		return Ninguna, nil
	case Ninguna, LZ4, ZSTD, Snappy, Gzip:
		return t, nil
	default:
		return "", fmt.Errorf("tipo de compresión de bloque desconocido: %q", s)
	}
}
