package lector

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pachi/visol/tipos"
)

// PrefijoResumenRCC es el prefijo con el que se guardan algunos archivos .bin
const PrefijoResumenRCC = "ResumenRCC_"

// esArchivoBin indica si el nombre tiene extensión .bin (sin distinguir mayúsculas)
func esArchivoBin(nombre string) bool {
	return strings.EqualFold(filepath.Ext(nombre), ".bin")
}

// LocalizarBin busca el archivo .bin asociado a un archivo .res en su mismo directorio.
// Orden de preferencia:
//  1. <nombre>.bin
//  2. ResumenRCC_<nombre>.bin
//  3. el primer .bin del directorio (en orden alfabético)
//
// Si no hay ningún .bin devuelve "" sin error.
func LocalizarBin(rutaRes string) (string, error) {
	directorio := filepath.Dir(rutaRes)
	entradas, err := os.ReadDir(directorio)
	if err != nil {
		return "", &tipos.ErrorES{Ruta: directorio, Err: err}
	}

	var binarios []string
	for _, entrada := range entradas {
		if entrada.IsDir() || !esArchivoBin(entrada.Name()) {
			continue
		}
		binarios = append(binarios, entrada.Name())
	}
	if len(binarios) == 0 {
		loggerPrint(LOG_LECTOR, "No se ha encontrado archivo .bin en %s", directorio)
		return "", nil
	}

	base := strings.TrimSuffix(filepath.Base(rutaRes), filepath.Ext(rutaRes))
	candidatos := []string{base + ".bin", PrefijoResumenRCC + base + ".bin"}
	for _, candidato := range candidatos {
		for _, nombre := range binarios {
			if strings.EqualFold(nombre, candidato) {
				return filepath.Join(directorio, nombre), nil
			}
		}
	}

	loggerPrint(LOG_LECTOR, "Sin .bin con el nombre de %s, se usa %s", filepath.Base(rutaRes), binarios[0])
	return filepath.Join(directorio, binarios[0]), nil
}
