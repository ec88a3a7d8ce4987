// Package lector interpreta los archivos de resultados de demanda energética:
// el resumen de texto (.res, Latin-1) y los datos horarios por zonas (.bin).
package lector

import (
	"fmt"
	"log"
	"os"

	"github.com/pachi/visol/tipos"
	"golang.org/x/text/encoding/charmap"
)

const LOG_LECTOR = "LECTOR"

// MaxTamanoDefecto es el tamaño máximo de archivo que se carga en memoria por defecto (512 MiB)
const MaxTamanoDefecto int64 = 512 << 20

// loggerPrint imprime un mensaje en la consola de log
func loggerPrint(logger string, mensaje string, args ...any) {
	mensaje = "[" + logger + "] " + mensaje
	log.Printf(mensaje, args...)
}

// LeerArchivo carga un archivo completo en memoria comprobando antes su tamaño.
// Con maxTamano <= 0 no se limita el tamaño.
func LeerArchivo(ruta string, maxTamano int64) ([]byte, error) {
	info, err := os.Stat(ruta)
	if err != nil {
		return nil, &tipos.ErrorES{Ruta: ruta, Err: err}
	}
	if info.IsDir() {
		return nil, &tipos.ErrorES{Ruta: ruta, Err: fmt.Errorf("es un directorio")}
	}
	if maxTamano > 0 && info.Size() > maxTamano {
		return nil, &tipos.ErrorES{
			Ruta: ruta,
			Err:  fmt.Errorf("tamaño %d bytes supera el máximo permitido (%d bytes)", info.Size(), maxTamano),
		}
	}
	datos, err := os.ReadFile(ruta)
	if err != nil {
		return nil, &tipos.ErrorES{Ruta: ruta, Err: err}
	}
	return datos, nil
}

// DecodificarLatin1 convierte texto ISO-8859-1 a UTF-8.
// Los bytes sin correspondencia se sustituyen por U+FFFD y se cuentan en el log.
func DecodificarLatin1(datos []byte) string {
	texto, err := charmap.ISO8859_1.NewDecoder().Bytes(datos)
	if err != nil {
		// ISO-8859-1 asigna un carácter a cada byte, se conserva el texto byte a byte
		loggerPrint(LOG_LECTOR, "Error de codificación, se sustituyen caracteres: %v", err)
		runas := make([]rune, len(datos))
		for i, b := range datos {
			if b < 0x80 {
				runas[i] = rune(b)
			} else {
				runas[i] = '�'
			}
		}
		return string(runas)
	}
	return string(texto)
}
