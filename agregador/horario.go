package agregador

import (
	"fmt"

	"github.com/pachi/visol/tipos"
)

// HorasDia es el tamaño de los bloques del remuestreo diario
const HorasDia = 24

// AgregacionesDiarias por defecto: media, mínima y máxima diaria
var AgregacionesDiarias = []tipos.TipoAgregacion{
	tipos.AgregacionPromedio,
	tipos.AgregacionMinimo,
	tipos.AgregacionMaximo,
}

// CalcularAgregacionSimple calcula una agregación sobre un slice de valores.
// Solo soporta agregaciones numéricas: promedio, maximo, minimo, suma, count.
func CalcularAgregacionSimple(valores []float64, agregacion tipos.TipoAgregacion) (float64, error) {
	if len(valores) == 0 {
		return 0, fmt.Errorf("no hay valores para agregar")
	}

	switch agregacion {
	case tipos.AgregacionPromedio:
		suma := 0.0
		for _, v := range valores {
			suma += v
		}
		return suma / float64(len(valores)), nil

	case tipos.AgregacionMaximo:
		max := valores[0]
		for _, v := range valores[1:] {
			if v > max {
				max = v
			}
		}
		return max, nil

	case tipos.AgregacionMinimo:
		min := valores[0]
		for _, v := range valores[1:] {
			if v < min {
				min = v
			}
		}
		return min, nil

	case tipos.AgregacionSuma:
		suma := 0.0
		for _, v := range valores {
			suma += v
		}
		return suma, nil

	case tipos.AgregacionCount:
		return float64(len(valores)), nil

	default:
		return 0, fmt.Errorf("tipo de agregación no soportado: %s", agregacion)
	}
}

// RemuestrearDiario agrega una serie horaria en bloques de 24 horas.
// Las horas sobrantes al final de la serie (día incompleto) se descartan.
func RemuestrearDiario(serie []float64, agregacion tipos.TipoAgregacion) ([]float64, error) {
	dias := len(serie) / HorasDia
	resultado := make([]float64, dias)
	for d := 0; d < dias; d++ {
		v, err := CalcularAgregacionSimple(serie[d*HorasDia:(d+1)*HorasDia], agregacion)
		if err != nil {
			return nil, err
		}
		resultado[d] = v
	}
	return resultado, nil
}

// CalcularResumenDiario remuestrea una variable horaria de la zona con las agregaciones
// indicadas (AgregacionesDiarias si no se indica ninguna)
func CalcularResumenDiario(z *tipos.ZonaBin, variable tipos.VariableHoraria,
	agregaciones ...tipos.TipoAgregacion) (*tipos.ResumenDiario, error) {
	if len(agregaciones) == 0 {
		agregaciones = AgregacionesDiarias
	}
	serie, err := z.Serie(variable)
	if err != nil {
		return nil, err
	}
	resumen := &tipos.ResumenDiario{
		Zona:         z.Nombre,
		Variable:     variable,
		Agregaciones: agregaciones,
		Valores:      make([][]float64, len(agregaciones)),
	}
	for i, agregacion := range agregaciones {
		valores, err := RemuestrearDiario(serie, agregacion)
		if err != nil {
			return nil, fmt.Errorf("error al remuestrear %s de la zona %s: %w", variable, z.Nombre, err)
		}
		resumen.Valores[i] = valores
	}
	return resumen, nil
}
