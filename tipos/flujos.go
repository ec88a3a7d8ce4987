package tipos

import "fmt"

// NumConceptos es el número de conceptos de agrupación de flujos (8 categorías físicas + total)
const NumConceptos = 9

// NombresConceptos contiene los nombres de los grupos de demanda en el orden del archivo .res
var NombresConceptos = [NumConceptos]string{
	"Paredes Exteriores",
	"Cubiertas",
	"Suelos",
	"Puentes Térmicos",
	"Solar Ventanas",
	"Transmisión Ventanas",
	"Fuentes Internas",
	"Ventilación más Infiltración",
	"TOTAL",
}

// Flujos de energía a través de un elemento o grupo [kWh/año]
type Flujos struct {
	CalPos float64 // Flujo positivo (ganancias) en temporada de calefacción
	CalNeg float64 // Flujo negativo (pérdidas) en temporada de calefacción
	CalNet float64 // Flujo neto en temporada de calefacción
	RefPos float64 // Flujo positivo (ganancias) en temporada de refrigeración
	RefNeg float64 // Flujo negativo (pérdidas) en temporada de refrigeración
	RefNet float64 // Flujo neto en temporada de refrigeración
}

// SumarFlujos suma dos vectores de flujos componente a componente
func SumarFlujos(a, b Flujos) Flujos {
	return Flujos{
		CalPos: a.CalPos + b.CalPos,
		CalNeg: a.CalNeg + b.CalNeg,
		CalNet: a.CalNet + b.CalNet,
		RefPos: a.RefPos + b.RefPos,
		RefNeg: a.RefNeg + b.RefNeg,
		RefNet: a.RefNet + b.RefNet,
	}
}

// EscalarFlujos multiplica cada componente por k
func EscalarFlujos(a Flujos, k float64) Flujos {
	return Flujos{
		CalPos: a.CalPos * k,
		CalNeg: a.CalNeg * k,
		CalNet: a.CalNet * k,
		RefPos: a.RefPos * k,
		RefNeg: a.RefNeg * k,
		RefNet: a.RefNet * k,
	}
}

// Valores devuelve los seis flujos en orden calpos, calneg, calnet, refpos, refneg, refnet
func (f Flujos) Valores() [6]float64 {
	return [6]float64{f.CalPos, f.CalNeg, f.CalNet, f.RefPos, f.RefNeg, f.RefNet}
}

// FlujosDesdeValores construye Flujos a partir de exactamente 6 valores
func FlujosDesdeValores(v []float64) (Flujos, error) {
	if len(v) != 6 {
		return Flujos{}, fmt.Errorf("se esperaban 6 valores de flujos, recibidos %d", len(v))
	}
	return Flujos{CalPos: v[0], CalNeg: v[1], CalNet: v[2], RefPos: v[3], RefNeg: v[4], RefNet: v[5]}, nil
}

// Conceptos agrupa los flujos por mecanismo físico
type Conceptos struct {
	ParedesExteriores Flujos
	Cubiertas         Flujos
	Suelos            Flujos
	PuentesTermicos   Flujos
	HuecosSolar       Flujos // Huecos, transmisión solar
	HuecosTransmision Flujos // Huecos, transmisión térmica
	FuentesInternas   Flujos
	Ventilacion       Flujos // Ventilación e infiltraciones
	Total             Flujos
}

// Lista devuelve los flujos de cada concepto en el orden de NombresConceptos
func (c Conceptos) Lista() [NumConceptos]Flujos {
	return [NumConceptos]Flujos{
		c.ParedesExteriores,
		c.Cubiertas,
		c.Suelos,
		c.PuentesTermicos,
		c.HuecosSolar,
		c.HuecosTransmision,
		c.FuentesInternas,
		c.Ventilacion,
		c.Total,
	}
}

// ConceptosDesdeLista es la inversa de Conceptos.Lista
func ConceptosDesdeLista(l [NumConceptos]Flujos) Conceptos {
	return Conceptos{
		ParedesExteriores: l[0],
		Cubiertas:         l[1],
		Suelos:            l[2],
		PuentesTermicos:   l[3],
		HuecosSolar:       l[4],
		HuecosTransmision: l[5],
		FuentesInternas:   l[6],
		Ventilacion:       l[7],
		Total:             l[8],
	}
}

// SumarConceptos aplica SumarFlujos concepto a concepto
func SumarConceptos(a, b Conceptos) Conceptos {
	la, lb := a.Lista(), b.Lista()
	var r [NumConceptos]Flujos
	for i := range r {
		r[i] = SumarFlujos(la[i], lb[i])
	}
	return ConceptosDesdeLista(r)
}

// EscalarConceptos aplica EscalarFlujos concepto a concepto
func EscalarConceptos(a Conceptos, k float64) Conceptos {
	la := a.Lista()
	var r [NumConceptos]Flujos
	for i := range r {
		r[i] = EscalarFlujos(la[i], k)
	}
	return ConceptosDesdeLista(r)
}

// FlujosVec es la vista por columnas de una lista de flujos, usada por las gráficas.
// Todas las series tienen la misma longitud que Nombres.
type FlujosVec struct {
	Nombres []string
	CalPos  []float64
	CalNeg  []float64
	CalNet  []float64
	RefPos  []float64
	RefNeg  []float64
	RefNet  []float64
}

func (v *FlujosVec) agregar(nombre string, f Flujos) {
	v.Nombres = append(v.Nombres, nombre)
	v.CalPos = append(v.CalPos, f.CalPos)
	v.CalNeg = append(v.CalNeg, f.CalNeg)
	v.CalNet = append(v.CalNet, f.CalNet)
	v.RefPos = append(v.RefPos, f.RefPos)
	v.RefNeg = append(v.RefNeg, f.RefNeg)
	v.RefNet = append(v.RefNet, f.RefNet)
}

// AFlujosVec convierte los conceptos en 9 columnas con sus nombres
func (c Conceptos) AFlujosVec() FlujosVec {
	var v FlujosVec
	for i, f := range c.Lista() {
		v.agregar(NombresConceptos[i], f)
	}
	return v
}

// AFlujosVec convierte un único vector de flujos en columnas de longitud 1
func (f Flujos) AFlujosVec(nombre string) FlujosVec {
	var v FlujosVec
	v.agregar(nombre, f)
	return v
}
