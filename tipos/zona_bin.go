package tipos

import "fmt"

const (
	NumHoras       = 8760 // Número de horas en un año
	MaxAdyacentes  = 100  // Número máximo de zonas adyacentes a una zona
	LongitudNombre = 50   // Longitud fija de los nombres en el archivo .bin
	NumFactoresP   = 2    // Factores de respuesta p
	NumFactoresG   = 24   // Factores de respuesta g
)

// ZonaBin contiene los datos horarios de una zona leídos del archivo .bin
type ZonaBin struct {
	Nombre        string
	Area          float32   // Superficie de la zona [m²]
	Volumen       float32   // Volumen de la zona [m³]
	Multiplicador int32     // Multiplicador de la zona
	P             []float32 // Factores de respuesta ante ganancia térmica
	G             []float32 // Factores de respuesta ante cambio de temperatura
	Adyacentes    []string  // Nombres de las zonas adyacentes
	UAInt         []float32 // UA con cada zona adyacente [W/K]
	UAExt         float32   // UA con el exterior [W/K]
	DaCal         []int32   // 1|0 demanda de calefacción activa
	DaRef         []int32   // 1|0 demanda de refrigeración activa
	QSen          []float32 // Carga sensible [W]
	QLat          []float32 // Carga latente [W]
	TReal         []float32 // Temperatura del local [ºC]
	TMax          []float32 // Temperatura de consigna alta [ºC]
	TMin          []float32 // Temperatura de consigna baja [ºC]
	VVentInf      []float32 // Caudal másico de ventilación e infiltración [kg/s]
}

// BinData agrupa las zonas de un archivo .bin
type BinData struct {
	NumZonas uint32
	Zonas    map[string]*ZonaBin
}

// VariableHoraria identifica una de las series horarias de una ZonaBin
type VariableHoraria string

const (
	VariableDaCal    VariableHoraria = "da_cal"
	VariableDaRef    VariableHoraria = "da_ref"
	VariableQSen     VariableHoraria = "q_sen"
	VariableQLat     VariableHoraria = "q_lat"
	VariableTReal    VariableHoraria = "t_real"
	VariableTMax     VariableHoraria = "t_max"
	VariableTMin     VariableHoraria = "t_min"
	VariableVVentInf VariableHoraria = "v_ventinf"
)

// VariablesHorarias en el orden en que aparecen en el archivo .bin
var VariablesHorarias = []VariableHoraria{
	VariableDaCal, VariableDaRef, VariableQSen, VariableQLat,
	VariableTReal, VariableTMax, VariableTMin, VariableVVentInf,
}

// EsEntera indica si la variable se almacena como entero (indicadores on/off)
func (v VariableHoraria) EsEntera() bool {
	return v == VariableDaCal || v == VariableDaRef
}

// Validar comprueba que la variable es conocida
func (v VariableHoraria) Validar() error {
	for _, conocida := range VariablesHorarias {
		if v == conocida {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrVariableDesconocida, v)
}

// SerieEntera devuelve la serie de una variable entera
func (z *ZonaBin) SerieEntera(v VariableHoraria) ([]int32, error) {
	switch v {
	case VariableDaCal:
		return z.DaCal, nil
	case VariableDaRef:
		return z.DaRef, nil
	default:
		return nil, fmt.Errorf("%w: %s no es una variable entera", ErrVariableDesconocida, v)
	}
}

// SerieReal devuelve la serie de una variable real
func (z *ZonaBin) SerieReal(v VariableHoraria) ([]float32, error) {
	switch v {
	case VariableQSen:
		return z.QSen, nil
	case VariableQLat:
		return z.QLat, nil
	case VariableTReal:
		return z.TReal, nil
	case VariableTMax:
		return z.TMax, nil
	case VariableTMin:
		return z.TMin, nil
	case VariableVVentInf:
		return z.VVentInf, nil
	default:
		return nil, fmt.Errorf("%w: %s no es una variable real", ErrVariableDesconocida, v)
	}
}

// Serie devuelve cualquier variable horaria convertida a float64
func (z *ZonaBin) Serie(v VariableHoraria) ([]float64, error) {
	if v.EsEntera() {
		enteros, err := z.SerieEntera(v)
		if err != nil {
			return nil, err
		}
		resultado := make([]float64, len(enteros))
		for i, x := range enteros {
			resultado[i] = float64(x)
		}
		return resultado, nil
	}
	reales, err := z.SerieReal(v)
	if err != nil {
		return nil, err
	}
	resultado := make([]float64, len(reales))
	for i, x := range reales {
		resultado[i] = float64(x)
	}
	return resultado, nil
}
