// Package pruebas contiene los casos de referencia compartidos por los tests:
// un archivo .res de dos plantas (4 y 6 zonas) y las 10 zonas de su archivo .bin.
package pruebas

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/pachi/visol/tipos"
)

// ResReferencia es el contenido Latin-1 del archivo .res de referencia
//
//go:embed testdata/test.res
var ResReferencia []byte

// EscribirRes guarda el archivo .res de referencia en dir y devuelve su ruta
func EscribirRes(tb testing.TB, dir, nombre string) string {
	tb.Helper()
	ruta := filepath.Join(dir, nombre)
	if err := os.WriteFile(ruta, ResReferencia, 0o644); err != nil {
		tb.Fatalf("error al escribir %s: %v", ruta, err)
	}
	return ruta
}

// EscribirArchivo guarda datos en dir/nombre y devuelve su ruta
func EscribirArchivo(tb testing.TB, dir, nombre string, datos []byte) string {
	tb.Helper()
	ruta := filepath.Join(dir, nombre)
	if err := os.WriteFile(ruta, datos, 0o644); err != nil {
		tb.Fatalf("error al escribir %s: %v", ruta, err)
	}
	return ruta
}

// ZonaBin genera una zona con series horarias deterministas
func ZonaBin(nombre string, semilla float32) *tipos.ZonaBin {
	z := &tipos.ZonaBin{
		Nombre:        nombre,
		Area:          20 + semilla,
		Volumen:       50 + semilla,
		Multiplicador: 1,
		P:             []float32{1, -0.5},
		G:             make([]float32, tipos.NumFactoresG),
		UAExt:         10 + semilla,
		DaCal:         make([]int32, tipos.NumHoras),
		DaRef:         make([]int32, tipos.NumHoras),
		QSen:          make([]float32, tipos.NumHoras),
		QLat:          make([]float32, tipos.NumHoras),
		TReal:         make([]float32, tipos.NumHoras),
		TMax:          make([]float32, tipos.NumHoras),
		TMin:          make([]float32, tipos.NumHoras),
		VVentInf:      make([]float32, tipos.NumHoras),
	}
	for h := 0; h < tipos.NumHoras; h++ {
		dia := float32(h / 24)
		z.DaCal[h] = int32(h % 2)
		z.DaRef[h] = int32((h + 1) % 2)
		z.QSen[h] = semilla + float32(h%24)
		z.QLat[h] = -semilla
		z.TReal[h] = 20 + float32(h%24)/10
		z.TMax[h] = 25 + dia/100
		z.TMin[h] = 18
		z.VVentInf[h] = 0.01 * semilla
	}
	return z
}

// ZonaP01E01 reproduce los valores conocidos de la zona P01_E01 del caso de referencia.
// Los nombres se guardan entre comillas, como en los archivos reales.
func ZonaP01E01() *tipos.ZonaBin {
	z := ZonaBin(`"P01_E01"`, 1)
	z.Area = float32(25.0373287200928)
	z.Volumen = float32(62.5933227539062)
	z.Multiplicador = 1
	z.P = []float32{1.0, -0.9554443359375}
	z.G = []float32{
		186.3824, -194.9448, 3.184631, 1.8466333, 1.2096132, 0.83193725,
		0.5903781, 0.42930642, 0.31856796, 0.24052902, 0.18438642, 0.14326464,
		0.11267228, 0.08959523, 0.0719719, 0.058364194, 0.047740776, 0.03937716,
		0.032728218, 0.027403418, 0.023101456, 0.019599736, 0.016730765, 0.014363277,
	}
	z.Adyacentes = []string{`"P01_E02"`, `"P01_E04"`, `"P02_E01"`, `"P02_E03"`, `"P02_E05"`}
	z.UAInt = []float32{26.382734, 13.981942, 7.7620816, 8.6559, 1.0642923}
	z.UAExt = 28.203636
	copy(z.VVentInf, []float32{0.015308376, 0.01476276, 0.014628861, 0.014651622, 0.014688805, 0.014711768})
	return z
}

// ZonasReferencia genera las 10 zonas del caso de referencia (2 plantas, 4 + 6 zonas)
func ZonasReferencia() []*tipos.ZonaBin {
	zonas := []*tipos.ZonaBin{ZonaP01E01()}
	for i := 2; i <= 4; i++ {
		zonas = append(zonas, ZonaBin(fmt.Sprintf(`"P01_E0%d"`, i), float32(i)))
	}
	for i := 1; i <= 6; i++ {
		zonas = append(zonas, ZonaBin(fmt.Sprintf(`"P02_E0%d"`, i), float32(10+i)))
	}
	return zonas
}
