package tipos

// TipoAgregacion define los tipos de agregación soportados para series horarias
type TipoAgregacion string

const (
	AgregacionPromedio TipoAgregacion = "promedio"
	AgregacionMaximo   TipoAgregacion = "maximo"
	AgregacionMinimo   TipoAgregacion = "minimo"
	AgregacionSuma     TipoAgregacion = "suma"
	AgregacionCount    TipoAgregacion = "count"
)

// ResumenDiario contiene una agregación por día de una variable horaria.
// Valores[i][d] es el resultado de Agregaciones[i] para el día d.
type ResumenDiario struct {
	Zona         string
	Variable     VariableHoraria
	Agregaciones []TipoAgregacion
	Valores      [][]float64
}

// ObtenerAgregacion retorna la serie diaria de una agregación.
// Retorna nil, false si la agregación no está presente en el resumen.
func (r *ResumenDiario) ObtenerAgregacion(tipo TipoAgregacion) ([]float64, bool) {
	for i, t := range r.Agregaciones {
		if t == tipo {
			return r.Valores[i], true
		}
	}
	return nil, false
}
