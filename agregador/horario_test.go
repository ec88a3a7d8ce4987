package agregador

import (
	"testing"

	"github.com/pachi/visol/tipos"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalcularAgregacionSimple(t *testing.T) {
	valores := []float64{3, -1, 4, 1, 5}

	testCases := []struct {
		agregacion tipos.TipoAgregacion
		esperado   float64
	}{
		{tipos.AgregacionPromedio, 2.4},
		{tipos.AgregacionMaximo, 5},
		{tipos.AgregacionMinimo, -1},
		{tipos.AgregacionSuma, 12},
		{tipos.AgregacionCount, 5},
	}
	for _, tc := range testCases {
		t.Run(string(tc.agregacion), func(t *testing.T) {
			v, err := CalcularAgregacionSimple(valores, tc.agregacion)
			require.NoError(t, err)
			assert.InDelta(t, tc.esperado, v, tolerancia)
		})
	}

	_, err := CalcularAgregacionSimple(nil, tipos.AgregacionSuma)
	assert.Error(t, err)
	_, err = CalcularAgregacionSimple(valores, tipos.TipoAgregacion("mediana"))
	assert.Error(t, err)
}

// TestRemuestrearDiario verifica la agregación en bloques de 24 horas
func TestRemuestrearDiario(t *testing.T) {
	serie := make([]float64, 2*HorasDia+5)
	for h := range serie {
		serie[h] = float64(h % HorasDia)
	}

	maximos, err := RemuestrearDiario(serie, tipos.AgregacionMaximo)
	require.NoError(t, err)
	assert.Equal(t, []float64{23, 23}, maximos, "las horas del día incompleto se descartan")

	medias, err := RemuestrearDiario(serie, tipos.AgregacionPromedio)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{11.5, 11.5}, medias, tolerancia)

	vacio, err := RemuestrearDiario(nil, tipos.AgregacionPromedio)
	require.NoError(t, err)
	assert.Empty(t, vacio)
}

// TestCalcularResumenDiario verifica las 365 medias, mínimas y máximas diarias de una zona
func TestCalcularResumenDiario(t *testing.T) {
	z := &tipos.ZonaBin{Nombre: "Z1", TReal: make([]float32, tipos.NumHoras), DaCal: make([]int32, tipos.NumHoras)}
	for h := range z.TReal {
		z.TReal[h] = float32(h/HorasDia) + float32(h%HorasDia)
		z.DaCal[h] = int32(h % 2)
	}

	resumen, err := CalcularResumenDiario(z, tipos.VariableTReal)
	require.NoError(t, err)
	assert.Equal(t, "Z1", resumen.Zona)
	assert.Equal(t, AgregacionesDiarias, resumen.Agregaciones)

	minimos, ok := resumen.ObtenerAgregacion(tipos.AgregacionMinimo)
	require.True(t, ok)
	require.Len(t, minimos, 365)
	assert.Equal(t, 0.0, minimos[0])
	assert.Equal(t, 364.0, minimos[364])

	maximos, ok := resumen.ObtenerAgregacion(tipos.AgregacionMaximo)
	require.True(t, ok)
	assert.Equal(t, 23.0, maximos[0])

	medias, _ := resumen.ObtenerAgregacion(tipos.AgregacionPromedio)
	assert.InDelta(t, 11.5, medias[0], tolerancia)

	_, ok = resumen.ObtenerAgregacion(tipos.AgregacionSuma)
	assert.False(t, ok)

	horas, err := CalcularResumenDiario(z, tipos.VariableDaCal, tipos.AgregacionSuma)
	require.NoError(t, err)
	sumas, ok := horas.ObtenerAgregacion(tipos.AgregacionSuma)
	require.True(t, ok)
	assert.Equal(t, 12.0, sumas[100])

	_, err = CalcularResumenDiario(z, tipos.VariableHoraria("humedad"))
	assert.ErrorIs(t, err, tipos.ErrVariableDesconocida)
}
