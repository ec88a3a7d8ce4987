package tipos

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func edificioPrueba() *Edificio {
	e := NuevoEdificio()
	for _, nombre := range []string{"P01_E01", "P01_E02"} {
		z := NuevaZona(nombre)
		z.Planta = "P01"
		z.Elementos = []Elemento{{Nombre: "M1", Flujos: Flujos{CalNet: -1}}}
		e.Zonas[nombre] = z
	}
	e.Plantas = []Planta{{Nombre: "P01", Zonas: []string{"P01_E02", "P01_E01"}}}
	return e
}

// TestEdificioValidar verifica las invariantes del modelo
func TestEdificioValidar(t *testing.T) {
	require.NoError(t, edificioPrueba().Validar())

	t.Run("referencia_no_resuelta", func(t *testing.T) {
		e := edificioPrueba()
		e.Plantas[0].Zonas = append(e.Plantas[0].Zonas, "NO_EXISTE")
		assert.Error(t, e.Validar())
	})

	t.Run("multiplicador_cero", func(t *testing.T) {
		e := edificioPrueba()
		e.Zonas["P01_E01"].Multiplicador = 0
		assert.Error(t, e.Validar())
	})

	t.Run("meses_incompletos", func(t *testing.T) {
		e := edificioPrueba()
		e.Zonas["P01_E02"].CalefaccionMeses = []float64{1, 2}
		assert.Error(t, e.Validar())
	})
}

func TestEdificioBusquedas(t *testing.T) {
	e := edificioPrueba()

	p, ok := e.ObtenerPlanta("P01")
	require.True(t, ok)
	assert.Equal(t, []string{"P01_E02", "P01_E01"}, p.Zonas)

	_, ok = e.ObtenerPlanta("P02")
	assert.False(t, ok)

	z, ok := e.ObtenerZona("P01_E01")
	require.True(t, ok)
	el, ok := z.ObtenerElemento("M1")
	require.True(t, ok)
	assert.Equal(t, -1.0, el.Flujos.CalNet)

	assert.Equal(t, []string{"P01_E01", "P01_E02"}, e.NombresZonas())
}

func TestTipoObjeto(t *testing.T) {
	for _, tipo := range []TipoObjeto{ObjetoEdificio, ObjetoPlanta, ObjetoZona, ObjetoElemento} {
		assert.Equal(t, tipo, ParsearTipoObjeto(tipo.String()))
	}
	assert.Equal(t, ObjetoNinguno, ParsearTipoObjeto("OTRO"))
	assert.Equal(t, "", ObjetoNinguno.String())
}

// TestErrorFormato verifica que el mensaje incluye sección, marcador y línea
func TestErrorFormato(t *testing.T) {
	causa := errors.New("valor no numérico")
	err := error(&ErrorFormato{
		Seccion:  "plantas y zonas",
		Buscando: "superficie de la zona",
		Linea:    "abc",
		NumLinea: 12,
		Err:      causa,
	})

	assert.Contains(t, err.Error(), "plantas y zonas")
	assert.Contains(t, err.Error(), "superficie de la zona")
	assert.Contains(t, err.Error(), `"abc"`)
	assert.Contains(t, err.Error(), "línea 12")
	assert.ErrorIs(t, err, causa)

	var ef *ErrorFormato
	require.ErrorAs(t, err, &ef)
	assert.Equal(t, "abc", ef.Linea)

	fin := &ErrorFormato{Seccion: "edificio", Buscando: "TOTAL"}
	assert.Contains(t, fin.Error(), "fin de archivo")
}

func TestZonaBinSeries(t *testing.T) {
	z := &ZonaBin{
		DaCal: []int32{1, 0, 1},
		TMax:  []float32{25, 26, 27},
	}

	serie, err := z.Serie(VariableDaCal)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0, 1}, serie)

	serie, err = z.Serie(VariableTMax)
	require.NoError(t, err)
	assert.Equal(t, []float64{25, 26, 27}, serie)

	_, err = z.Serie(VariableHoraria("desconocida"))
	assert.ErrorIs(t, err, ErrVariableDesconocida)
	assert.ErrorIs(t, VariableHoraria("x").Validar(), ErrVariableDesconocida)
	assert.NoError(t, VariableQSen.Validar())
}
