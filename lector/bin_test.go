package lector

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/pachi/visol/internal/pruebas"
	"github.com/pachi/visol/tipos"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func codificarReferencia(t *testing.T) []byte {
	t.Helper()
	datos, err := CodificarBin(pruebas.ZonasReferencia())
	require.NoError(t, err)
	return datos
}

// =============================================================================
// Tests del decodificador binario
// =============================================================================

// TestTamanoRegistroZona verifica el tamaño de registro derivado de la disposición
func TestTamanoRegistroZona(t *testing.T) {
	assert.Equal(t, 285896, TamanoRegistroZona)
}

// TestDecodificarBinReferencia verifica los campos de la zona P01_E01 del caso de referencia
func TestDecodificarBinReferencia(t *testing.T) {
	datos := codificarReferencia(t)
	require.Len(t, datos, 4+10*TamanoRegistroZona)

	bin, err := DecodificarBin(datos)
	require.NoError(t, err)
	assert.Equal(t, uint32(10), bin.NumZonas)
	require.Len(t, bin.Zonas, 10)

	z, ok := bin.Zonas["P01_E01"]
	require.True(t, ok, "los nombres se leen sin comillas")
	esperada := pruebas.ZonaP01E01()

	assert.Equal(t, "P01_E01", z.Nombre)
	assert.Equal(t, float32(25.0373287200928), z.Area)
	assert.Equal(t, int32(1), z.Multiplicador)
	assert.Equal(t, float32(62.5933227539062), z.Volumen)
	assert.Equal(t, []float32{1.0, -0.9554443359375}, z.P)
	assert.Equal(t, esperada.G, z.G)
	assert.Equal(t, []string{"P01_E02", "P01_E04", "P02_E01", "P02_E03", "P02_E05"}, z.Adyacentes)
	assert.Equal(t, []float32{26.382734, 13.981942, 7.7620816, 8.6559, 1.0642923}, z.UAInt)
	assert.Equal(t, float32(28.203636), z.UAExt)
	assert.Equal(t,
		[]float32{0.015308376, 0.01476276, 0.014628861, 0.014651622, 0.014688805, 0.014711768},
		z.VVentInf[0:6])

	for _, serie := range [][]float32{z.QSen, z.QLat, z.TReal, z.TMax, z.TMin, z.VVentInf} {
		assert.Len(t, serie, tipos.NumHoras)
	}
	assert.Equal(t, esperada.DaCal, z.DaCal)
	assert.Equal(t, esperada.DaRef, z.DaRef)
	assert.Equal(t, esperada.QSen, z.QSen)
	assert.Equal(t, esperada.TReal, z.TReal)

	t.Log("✓ Zona P01_E01 decodificada correctamente")
}

// TestDecodificarBinTMinReplicaTMax verifica que la serie t_min toma los valores de t_max
func TestDecodificarBinTMinReplicaTMax(t *testing.T) {
	datos, err := CodificarBin([]*tipos.ZonaBin{pruebas.ZonaBin("Z1", 1)})
	require.NoError(t, err)

	bin, err := DecodificarBin(datos)
	require.NoError(t, err)
	z := bin.Zonas["Z1"]
	assert.Equal(t, z.TMax, z.TMin)
	assert.NotEqual(t, float32(18), z.TMin[0])
}

// TestDecodificarBinTruncado verifica que un archivo corto falla sin devolver zonas
func TestDecodificarBinTruncado(t *testing.T) {
	datos := codificarReferencia(t)

	testCases := []struct {
		name  string
		datos []byte
	}{
		{"vacio", []byte{}},
		{"cabecera_incompleta", datos[:3]},
		{"solo_cabecera", datos[:4]},
		{"mitad_de_registro", datos[:4+TamanoRegistroZona/2]},
		{"ultimo_registro_incompleto", datos[:len(datos)-1]},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			bin, err := DecodificarBin(tc.datos)
			assert.ErrorIs(t, err, tipos.ErrBinarioTruncado)
			assert.Nil(t, bin)
		})
	}
}

// TestDecodificarBinBytesSobrantes verifica que los bytes tras el último registro se ignoran
func TestDecodificarBinBytesSobrantes(t *testing.T) {
	datos := append(codificarReferencia(t), 0, 0, 0, 0)

	bin, err := DecodificarBin(datos)
	require.NoError(t, err)
	assert.Equal(t, uint32(10), bin.NumZonas)
	assert.Len(t, bin.Zonas, 10)
}

// TestDecodificarBinDesplazamientos verifica la posición de cada campo en un registro
// escrito byte a byte
func TestDecodificarBinDesplazamientos(t *testing.T) {
	const (
		horas       = 4 * tipos.NumHoras // bytes de una serie horaria
		inicioSerie = 4 + 5576
	)
	datos := make([]byte, 4+TamanoRegistroZona)
	ponerU32 := func(pos int, v uint32) { binary.LittleEndian.PutUint32(datos[pos:], v) }
	ponerF32 := func(pos int, v float32) { ponerU32(pos, math.Float32bits(v)) }

	ponerU32(0, 1)
	copy(datos[4:], `"ZONA_A"`)
	ponerF32(56, 12.5)
	ponerF32(60, 30.25)
	ponerU32(64, 3)
	ponerF32(72, -0.5)   // p[1]
	ponerF32(168, 0.125) // g[23]
	ponerU32(172, 4)     // índice del último adyacente
	ponerF32(176, 7.5)
	ponerF32(180, 1.25)
	ponerF32(180+4*4, 2.5)
	for i := 0; i < 6; i++ {
		copy(datos[580+50*i:], fmt.Sprintf(`"ADY_%d"`, i))
	}
	ponerU32(inicioSerie, 1)
	ponerU32(inicioSerie+horas, 2)
	ponerF32(inicioSerie+2*horas, 100)
	ponerF32(inicioSerie+3*horas, -40)
	ponerF32(inicioSerie+4*horas, 21.5)
	ponerF32(inicioSerie+5*horas, 26.5)
	ponerF32(inicioSerie+6*horas, 99) // bloque Tmin del archivo
	ponerF32(inicioSerie+7*horas, 0.75)
	ponerF32(len(datos)-4, 0.5) // última hora de Vventinf

	bin, err := DecodificarBin(datos)
	require.NoError(t, err)
	require.Equal(t, uint32(1), bin.NumZonas)
	z, ok := bin.Zonas["ZONA_A"]
	require.True(t, ok)

	assert.Equal(t, float32(12.5), z.Area)
	assert.Equal(t, float32(30.25), z.Volumen)
	assert.Equal(t, int32(3), z.Multiplicador)
	assert.Equal(t, []float32{0, -0.5}, z.P)
	assert.Equal(t, float32(0.125), z.G[23])
	assert.Equal(t, float32(7.5), z.UAExt)
	assert.Equal(t, []float32{1.25, 0, 0, 0, 2.5}, z.UAInt)
	assert.Equal(t, []string{"ADY_0", "ADY_1", "ADY_2", "ADY_3", "ADY_4"}, z.Adyacentes)
	assert.Equal(t, int32(1), z.DaCal[0])
	assert.Equal(t, int32(2), z.DaRef[0])
	assert.Equal(t, float32(100), z.QSen[0])
	assert.Equal(t, float32(-40), z.QLat[0])
	assert.Equal(t, float32(21.5), z.TReal[0])
	assert.Equal(t, float32(26.5), z.TMax[0])
	assert.Equal(t, float32(26.5), z.TMin[0], "Tmin replica Tmax")
	assert.Equal(t, float32(0.75), z.VVentInf[0])
	assert.Equal(t, float32(0.5), z.VVentInf[tipos.NumHoras-1])
}

func TestDecodificarBinSinZonas(t *testing.T) {
	datos, err := CodificarBin(nil)
	require.NoError(t, err)
	require.Len(t, datos, 4)

	bin, err := DecodificarBin(datos)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), bin.NumZonas)
	assert.Empty(t, bin.Zonas)
}

// TestDecodificarBinNombresRepetidos verifica que la última zona con un nombre sustituye a la anterior
func TestDecodificarBinNombresRepetidos(t *testing.T) {
	primera := pruebas.ZonaBin("Z1", 1)
	segunda := pruebas.ZonaBin("Z1", 2)
	datos, err := CodificarBin([]*tipos.ZonaBin{primera, segunda})
	require.NoError(t, err)

	bin, err := DecodificarBin(datos)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), bin.NumZonas)
	require.Len(t, bin.Zonas, 1)
	assert.Equal(t, float32(22), bin.Zonas["Z1"].Area)
}

// TestDecodificarBinLimiteAdyacentes verifica el recorte del número de adyacentes a [0, 100]
func TestDecodificarBinLimiteAdyacentes(t *testing.T) {
	// cabecera + nombre + relleno + area, volumen, multiplicador + p + g
	const posicionAdyacentes = 4 + tipos.LongitudNombre + 2 + 12 + 4*tipos.NumFactoresP + 4*tipos.NumFactoresG

	testCases := []struct {
		name     string
		campo    int32
		esperado int
	}{
		{"ninguna", -1, 0},
		{"negativo", -20, 0},
		{"una", 0, 1},
		{"maximo", 99, 100},
		{"excede_maximo", 500, 100},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			datos, err := CodificarBin([]*tipos.ZonaBin{pruebas.ZonaBin("Z1", 1)})
			require.NoError(t, err)
			binary.LittleEndian.PutUint32(datos[posicionAdyacentes:], uint32(tc.campo))

			bin, err := DecodificarBin(datos)
			require.NoError(t, err)
			assert.Len(t, bin.Zonas["Z1"].Adyacentes, tc.esperado)
			assert.Len(t, bin.Zonas["Z1"].UAInt, tc.esperado)
		})
	}
}

func TestNombreDesdeBytes(t *testing.T) {
	testCases := []struct {
		name     string
		entrada  []byte
		esperado string
	}{
		{"con_nulos", []byte("P01_E01\x00\x00\x00"), "P01_E01"},
		{"con_comillas", []byte("\"P01_E01\"\x00basura"), "P01_E01"},
		{"solo_un_par_de_comillas", []byte("\"\"Z\"\"\x00"), "\"Z\""},
		{"sin_nulo", []byte("ABC"), "ABC"},
		{"vacio", []byte{0, 0}, ""},
		{"latin1", []byte("Ba\xf1o\x00"), "Baño"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.esperado, nombreDesdeBytes(tc.entrada))
		})
	}
}

func TestCodificarBinErrores(t *testing.T) {
	z := pruebas.ZonaBin("Z1", 1)
	z.Nombre = "un nombre de zona demasiado largo para caber en el campo fijo de cincuenta bytes"
	_, err := CodificarBin([]*tipos.ZonaBin{z})
	assert.Error(t, err)

	z = pruebas.ZonaBin("Z1", 1)
	z.QSen = z.QSen[:10]
	_, err = CodificarBin([]*tipos.ZonaBin{z})
	assert.Error(t, err)

	z = pruebas.ZonaBin("Z1", 1)
	z.Adyacentes = []string{"Z2"}
	_, err = CodificarBin([]*tipos.ZonaBin{z})
	assert.Error(t, err, "UAInt debe tener un valor por zona adyacente")
}

// TestLeerBin verifica la lectura desde disco y el límite de tamaño
func TestLeerBin(t *testing.T) {
	dir := t.TempDir()
	ruta := filepath.Join(dir, "test.bin")
	require.NoError(t, os.WriteFile(ruta, codificarReferencia(t), 0o644))

	bin, err := LeerBin(ruta)
	require.NoError(t, err)
	assert.Len(t, bin.Zonas, 10)

	_, err = LeerBinConLimite(ruta, 1000)
	var ees *tipos.ErrorES
	assert.ErrorAs(t, err, &ees)

	_, err = LeerBin(filepath.Join(dir, "no_existe.bin"))
	assert.ErrorAs(t, err, &ees)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
