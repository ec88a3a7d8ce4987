// Package agregador calcula los valores de plantas y edificio a partir de los de
// sus zonas, los datos básicos de cada objeto y los rangos de las gráficas.
//
// Las agregaciones se construyen solo con tipos.SumarFlujos / tipos.EscalarFlujos
// (y sus equivalentes para Conceptos) y se calculan en cada consulta.
package agregador

import (
	"fmt"

	"github.com/pachi/visol/tipos"
)

// Epsilon es el épsilon de máquina para float64. Superficies menores se consideran nulas.
const Epsilon = 0x1p-52

// DatosBasicos de un objeto del edificio
type DatosBasicos struct {
	Multiplicador int
	Superficie    float64 // [m²]
	Calefaccion   float64 // Demanda anual de calefacción [kWh/m²·año]
	Refrigeracion float64 // Demanda anual de refrigeración [kWh/m²·año]
}

func zonaDePlanta(e *tipos.Edificio, p *tipos.Planta, nombre string) (*tipos.Zona, error) {
	z, ok := e.Zonas[nombre]
	if !ok {
		return nil, fmt.Errorf("%w: zona %s de la planta %s", tipos.ErrObjetoNoEncontrado, nombre, p.Nombre)
	}
	return z, nil
}

// SuperficiePlanta es la suma de superficie × multiplicador de las zonas de la planta
func SuperficiePlanta(e *tipos.Edificio, p *tipos.Planta) (float64, error) {
	superficie := 0.0
	for _, nombre := range p.Zonas {
		z, err := zonaDePlanta(e, p, nombre)
		if err != nil {
			return 0, err
		}
		superficie += z.Superficie * float64(z.Multiplicador)
	}
	return superficie, nil
}

// SuperficiePlantas es la suma de las superficies de todas las plantas del edificio
func SuperficiePlantas(e *tipos.Edificio) (float64, error) {
	total := 0.0
	for i := range e.Plantas {
		s, err := SuperficiePlanta(e, &e.Plantas[i])
		if err != nil {
			return 0, err
		}
		total += s
	}
	return total, nil
}

// DemandasMensualesPlanta devuelve las demandas mensuales de calefacción y refrigeración
// de la planta, ponderando las de cada zona por su superficie y dividiendo por la
// superficie de la planta. Con superficie nula todas las demandas son 0.
func DemandasMensualesPlanta(e *tipos.Edificio, p *tipos.Planta) (cal, ref []float64, err error) {
	superficie, err := SuperficiePlanta(e, p)
	if err != nil {
		return nil, nil, err
	}
	cal = make([]float64, tipos.NumMeses)
	ref = make([]float64, tipos.NumMeses)
	if superficie < Epsilon {
		return cal, ref, nil
	}
	for _, nombre := range p.Zonas {
		z, err := zonaDePlanta(e, p, nombre)
		if err != nil {
			return nil, nil, err
		}
		for i := 0; i < tipos.NumMeses; i++ {
			cal[i] += z.CalefaccionMeses[i] * z.Superficie
			ref[i] += z.RefrigeracionMeses[i] * z.Superficie
		}
	}
	for i := 0; i < tipos.NumMeses; i++ {
		cal[i] /= superficie
		ref[i] /= superficie
	}
	return cal, ref, nil
}

func sumar(valores []float64) float64 {
	total := 0.0
	for _, v := range valores {
		total += v
	}
	return total
}

// DemandasAnualesPlanta devuelve la suma de las demandas mensuales de la planta
func DemandasAnualesPlanta(e *tipos.Edificio, p *tipos.Planta) (cal, ref float64, err error) {
	calMeses, refMeses, err := DemandasMensualesPlanta(e, p)
	if err != nil {
		return 0, 0, err
	}
	return sumar(calMeses), sumar(refMeses), nil
}

// ConceptosPlanta pondera los conceptos de cada zona por superficie × multiplicador
// y los divide por la superficie de la planta
func ConceptosPlanta(e *tipos.Edificio, p *tipos.Planta) (tipos.Conceptos, error) {
	superficie, err := SuperficiePlanta(e, p)
	if err != nil {
		return tipos.Conceptos{}, err
	}
	if superficie < Epsilon {
		return tipos.Conceptos{}, nil
	}
	var suma tipos.Conceptos
	for _, nombre := range p.Zonas {
		z, err := zonaDePlanta(e, p, nombre)
		if err != nil {
			return tipos.Conceptos{}, err
		}
		suma = tipos.SumarConceptos(suma, tipos.EscalarConceptos(z.Conceptos, float64(z.Multiplicador)*z.Superficie))
	}
	return tipos.EscalarConceptos(suma, 1/superficie), nil
}

// ConceptosEdificio pondera los conceptos de cada planta por su superficie
// y los divide por la superficie del edificio
func ConceptosEdificio(e *tipos.Edificio) (tipos.Conceptos, error) {
	if e.Superficie < Epsilon {
		return tipos.Conceptos{}, nil
	}
	var suma tipos.Conceptos
	for i := range e.Plantas {
		p := &e.Plantas[i]
		superficie, err := SuperficiePlanta(e, p)
		if err != nil {
			return tipos.Conceptos{}, err
		}
		conceptos, err := ConceptosPlanta(e, p)
		if err != nil {
			return tipos.Conceptos{}, err
		}
		suma = tipos.SumarConceptos(suma, tipos.EscalarConceptos(conceptos, superficie))
	}
	return tipos.EscalarConceptos(suma, 1/e.Superficie), nil
}

// ObtenerDatosBasicos devuelve multiplicador, superficie y demandas anuales de un objeto.
// El multiplicador de edificio y plantas es siempre 1.
func ObtenerDatosBasicos(e *tipos.Edificio, tipo tipos.TipoObjeto, nombre string) (DatosBasicos, error) {
	switch tipo {
	case tipos.ObjetoEdificio:
		return DatosBasicos{
			Multiplicador: 1,
			Superficie:    e.Superficie,
			Calefaccion:   e.Calefaccion,
			Refrigeracion: e.Refrigeracion,
		}, nil
	case tipos.ObjetoPlanta:
		p, ok := e.ObtenerPlanta(nombre)
		if !ok {
			return DatosBasicos{}, fmt.Errorf("%w: planta %s", tipos.ErrObjetoNoEncontrado, nombre)
		}
		superficie, err := SuperficiePlanta(e, p)
		if err != nil {
			return DatosBasicos{}, err
		}
		cal, ref, err := DemandasAnualesPlanta(e, p)
		if err != nil {
			return DatosBasicos{}, err
		}
		return DatosBasicos{Multiplicador: 1, Superficie: superficie, Calefaccion: cal, Refrigeracion: ref}, nil
	case tipos.ObjetoZona:
		z, ok := e.ObtenerZona(nombre)
		if !ok {
			return DatosBasicos{}, fmt.Errorf("%w: zona %s", tipos.ErrObjetoNoEncontrado, nombre)
		}
		return DatosBasicos{
			Multiplicador: z.Multiplicador,
			Superficie:    z.Superficie,
			Calefaccion:   z.Calefaccion,
			Refrigeracion: z.Refrigeracion,
		}, nil
	default:
		return DatosBasicos{}, fmt.Errorf("%w: sin datos básicos para objetos de tipo %q", tipos.ErrObjetoNoEncontrado, tipo)
	}
}
