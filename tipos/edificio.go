package tipos

import (
	"fmt"
	"sort"
)

// NumMeses es la longitud de los vectores de demanda mensual
const NumMeses = 12

// Edificio con los resultados de demanda de un archivo .res
type Edificio struct {
	Nombre             string           // Nombre del edificio
	Superficie         float64          // Superficie del edificio [m²]
	Calefaccion        float64          // Demanda anual de calefacción [kWh/m²·año]
	Refrigeracion      float64          // Demanda anual de refrigeración [kWh/m²·año]
	CalefaccionMeses   []float64        // Demandas mensuales de calefacción [kWh/m²·mes]
	RefrigeracionMeses []float64        // Demandas mensuales de refrigeración [kWh/m²·mes]
	DatosRes           string           // Contenido del archivo .res
	Plantas            []Planta         // Plantas en orden de aparición
	Zonas              map[string]*Zona // Zonas indexadas por nombre
}

// Planta del edificio. Las zonas se referencian por nombre en Edificio.Zonas.
type Planta struct {
	Nombre string
	Zonas  []string
}

// Zona térmica tal como aparece en el archivo .res
type Zona struct {
	Nombre             string
	Planta             string    // Nombre de la planta a la que pertenece
	Superficie         float64   // [m²]
	Multiplicador      int       // Número de zonas iguales en la planta
	Calefaccion        float64   // [kWh/m²·año]
	Refrigeracion      float64   // [kWh/m²·año]
	CalefaccionMeses   []float64 // [kWh/m²·mes]
	RefrigeracionMeses []float64 // [kWh/m²·mes]
	Conceptos          Conceptos // Flujos por grupo de demanda [kWh/año]
	Elementos          []Elemento
}

// Elemento constructivo (muro, hueco, ...) de una zona
type Elemento struct {
	Nombre string
	Flujos Flujos
}

// NuevoEdificio crea un edificio vacío con los vectores mensuales inicializados
func NuevoEdificio() *Edificio {
	return &Edificio{
		CalefaccionMeses:   make([]float64, NumMeses),
		RefrigeracionMeses: make([]float64, NumMeses),
		Zonas:              make(map[string]*Zona),
	}
}

// NuevaZona crea una zona con multiplicador 1 y demandas a cero
func NuevaZona(nombre string) *Zona {
	return &Zona{
		Nombre:             nombre,
		Multiplicador:      1,
		CalefaccionMeses:   make([]float64, NumMeses),
		RefrigeracionMeses: make([]float64, NumMeses),
	}
}

// ObtenerPlanta busca una planta por nombre
func (e *Edificio) ObtenerPlanta(nombre string) (*Planta, bool) {
	for i := range e.Plantas {
		if e.Plantas[i].Nombre == nombre {
			return &e.Plantas[i], true
		}
	}
	return nil, false
}

// ObtenerZona busca una zona por nombre
func (e *Edificio) ObtenerZona(nombre string) (*Zona, bool) {
	z, ok := e.Zonas[nombre]
	return z, ok
}

// ObtenerElemento busca un elemento de una zona
func (z *Zona) ObtenerElemento(nombre string) (*Elemento, bool) {
	for i := range z.Elementos {
		if z.Elementos[i].Nombre == nombre {
			return &z.Elementos[i], true
		}
	}
	return nil, false
}

// NombresZonas devuelve los nombres de todas las zonas ordenados alfabéticamente
func (e *Edificio) NombresZonas() []string {
	nombres := make([]string, 0, len(e.Zonas))
	for nombre := range e.Zonas {
		nombres = append(nombres, nombre)
	}
	sort.Strings(nombres)
	return nombres
}

// Validar comprueba las invariantes del modelo: referencias de plantas resueltas,
// vectores mensuales de 12 elementos y multiplicadores positivos.
func (e *Edificio) Validar() error {
	if len(e.CalefaccionMeses) != NumMeses || len(e.RefrigeracionMeses) != NumMeses {
		return fmt.Errorf("demandas mensuales del edificio con longitud incorrecta: %d, %d",
			len(e.CalefaccionMeses), len(e.RefrigeracionMeses))
	}
	for _, planta := range e.Plantas {
		for _, nombre := range planta.Zonas {
			if _, ok := e.Zonas[nombre]; !ok {
				return fmt.Errorf("la zona %s de la planta %s no existe en el edificio", nombre, planta.Nombre)
			}
		}
	}
	for nombre, zona := range e.Zonas {
		if zona.Multiplicador < 1 {
			return fmt.Errorf("multiplicador inválido en la zona %s: %d", nombre, zona.Multiplicador)
		}
		if len(zona.CalefaccionMeses) != NumMeses || len(zona.RefrigeracionMeses) != NumMeses {
			return fmt.Errorf("demandas mensuales de la zona %s con longitud incorrecta", nombre)
		}
	}
	return nil
}
