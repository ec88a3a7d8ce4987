package agregador

import (
	"math"

	"github.com/pachi/visol/tipos"
)

// Rango de valores para escalar las gráficas
type Rango struct {
	Min float64
	Max float64
}

// Vacio indica que el rango no contiene datos
func (r Rango) Vacio() bool {
	return r.Min == 0 && r.Max == 0
}

type acumuladorRango struct {
	rango Rango
	hay   bool
}

func (a *acumuladorRango) agregar(v float64) {
	if !a.hay {
		a.rango = Rango{Min: v, Max: v}
		a.hay = true
		return
	}
	a.rango.Min = math.Min(a.rango.Min, v)
	a.rango.Max = math.Max(a.rango.Max, v)
}

// MinMaxConceptos devuelve el mínimo y máximo de todos los flujos de los conceptos
// de todas las zonas. Sin zonas devuelve Rango{0, 0}.
func MinMaxConceptos(e *tipos.Edificio) Rango {
	var acc acumuladorRango
	for _, z := range e.Zonas {
		for _, f := range z.Conceptos.Lista() {
			for _, v := range f.Valores() {
				acc.agregar(v)
			}
		}
	}
	return acc.rango
}

// MinMaxMeses devuelve el mínimo y máximo de las demandas mensuales de calefacción
// y refrigeración de todas las zonas. Sin zonas devuelve Rango{0, 0}.
// Las demandas por m² de plantas y edificio quedan dentro de este rango.
func MinMaxMeses(e *tipos.Edificio) Rango {
	var acc acumuladorRango
	for _, z := range e.Zonas {
		for _, v := range z.CalefaccionMeses {
			acc.agregar(v)
		}
		for _, v := range z.RefrigeracionMeses {
			acc.agregar(v)
		}
	}
	return acc.rango
}

// EscalaGrafica amplía el rango a decenas con margen: round(min/10 - 1)·10, round(max/10 + 1)·10
func EscalaGrafica(r Rango) Rango {
	return Rango{
		Min: math.Round(r.Min/10-1) * 10,
		Max: math.Round(r.Max/10+1) * 10,
	}
}

// Limites de las escalas de las gráficas
type Limites struct {
	Auto bool    // Calcula los límites a partir de los datos
	Min  float64 // Límite inferior manual
	Max  float64 // Límite superior manual
}

// LimitesDefecto devuelve límites automáticos con valores manuales -150 y 50
func LimitesDefecto() Limites {
	return Limites{Auto: true, Min: -150, Max: 50}
}

// Aplicar devuelve la escala de la gráfica para un rango de datos
func (l Limites) Aplicar(r Rango) Rango {
	if l.Auto {
		return EscalaGrafica(r)
	}
	return Rango{Min: l.Min, Max: l.Max}
}
