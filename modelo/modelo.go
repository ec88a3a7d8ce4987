// Package modelo carga los resultados de un edificio (.res y, si existe, .bin)
// y ofrece consultas de solo lectura sobre ellos.
package modelo

import (
	"fmt"
	"log"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pachi/visol/agregador"
	"github.com/pachi/visol/lector"
	"github.com/pachi/visol/tipos"
)

const LOG_MODELO = "MODELO"

// loggerPrint imprime un mensaje en la consola de log
func loggerPrint(logger string, mensaje string, args ...any) {
	mensaje = "[" + logger + "] " + mensaje
	log.Printf(mensaje, args...)
}

// Opciones configura la carga de un modelo
type Opciones struct {
	OmitirBin        bool  // No busca ni lee el archivo .bin asociado
	MaxTamanoArchivo int64 // Tamaño máximo de cada archivo en bytes (default: 512 MiB)
}

// AplicarDefaults completa los valores no especificados
func (o *Opciones) AplicarDefaults() {
	if o.MaxTamanoArchivo <= 0 {
		o.MaxTamanoArchivo = lector.MaxTamanoDefecto
	}
}

// Modelo con los resultados de un edificio. Se crea completo con Cargar y no se
// modifica después; una nueva carga produce un Modelo nuevo.
type Modelo struct {
	RutaRes  string          // Ruta del archivo .res
	RutaBin  string          // Ruta del archivo .bin ("" si no hay datos horarios)
	Edificio *tipos.Edificio // Resultados del archivo .res
	BinData  *tipos.BinData  // Datos horarios por zona (nil si no hay archivo .bin)
	ErrorBin error           // Motivo por el que no se pudo leer el .bin encontrado
}

// Cargar lee un archivo .res y el .bin de su directorio.
// Un error en el .res aborta la carga y no devuelve modelo. Si el .bin encontrado
// no se puede leer, el modelo se carga sin datos horarios y ErrorBin guarda el motivo.
func Cargar(rutaRes string, opts Opciones) (*Modelo, error) {
	opts.AplicarDefaults()

	edificio, err := lector.LeerResConLimite(rutaRes, opts.MaxTamanoArchivo)
	if err != nil {
		return nil, err
	}
	if edificio.Nombre == "" {
		edificio.Nombre = strings.TrimSuffix(filepath.Base(rutaRes), filepath.Ext(rutaRes))
	}
	m := &Modelo{RutaRes: rutaRes, Edificio: edificio}

	if opts.OmitirBin {
		return m, nil
	}
	rutaBin, err := lector.LocalizarBin(rutaRes)
	if err != nil {
		return nil, err
	}
	if rutaBin == "" {
		loggerPrint(LOG_MODELO, "Modelo %s sin datos horarios", edificio.Nombre)
		return m, nil
	}
	bin, err := lector.LeerBinConLimite(rutaBin, opts.MaxTamanoArchivo)
	if err != nil {
		loggerPrint(LOG_MODELO, "Modelo %s sin datos horarios, no se pudo leer %s: %v", edificio.Nombre, rutaBin, err)
		m.ErrorBin = err
		return m, nil
	}
	m.RutaBin = rutaBin
	m.BinData = bin
	loggerPrint(LOG_MODELO, "Cargado modelo %s: %d plantas, %d zonas, %d zonas con datos horarios",
		edificio.Nombre, len(edificio.Plantas), len(edificio.Zonas), len(bin.Zonas))
	return m, nil
}

// TieneDatosHorarios indica si se ha cargado un archivo .bin
func (m *Modelo) TieneDatosHorarios() bool {
	return m.BinData != nil
}

// DatosBasicos devuelve multiplicador, superficie y demandas anuales de un objeto
func (m *Modelo) DatosBasicos(tipo tipos.TipoObjeto, nombre string) (agregador.DatosBasicos, error) {
	return agregador.ObtenerDatosBasicos(m.Edificio, tipo, nombre)
}

func copiar(v []float64) []float64 {
	return append([]float64(nil), v...)
}

// DemandasMensuales devuelve las demandas mensuales de calefacción y refrigeración
// del edificio, una planta o una zona [kWh/m²·mes]
func (m *Modelo) DemandasMensuales(tipo tipos.TipoObjeto, nombre string) (cal, ref []float64, err error) {
	e := m.Edificio
	switch tipo {
	case tipos.ObjetoEdificio:
		return copiar(e.CalefaccionMeses), copiar(e.RefrigeracionMeses), nil
	case tipos.ObjetoPlanta:
		p, ok := e.ObtenerPlanta(nombre)
		if !ok {
			return nil, nil, fmt.Errorf("%w: planta %s", tipos.ErrObjetoNoEncontrado, nombre)
		}
		return agregador.DemandasMensualesPlanta(e, p)
	case tipos.ObjetoZona:
		z, ok := e.ObtenerZona(nombre)
		if !ok {
			return nil, nil, fmt.Errorf("%w: zona %s", tipos.ErrObjetoNoEncontrado, nombre)
		}
		return copiar(z.CalefaccionMeses), copiar(z.RefrigeracionMeses), nil
	default:
		return nil, nil, fmt.Errorf("%w: sin demandas mensuales para objetos de tipo %q", tipos.ErrObjetoNoEncontrado, tipo)
	}
}

// Conceptos devuelve los flujos por concepto del edificio, una planta o una zona
func (m *Modelo) Conceptos(tipo tipos.TipoObjeto, nombre string) (tipos.Conceptos, error) {
	e := m.Edificio
	switch tipo {
	case tipos.ObjetoEdificio:
		return agregador.ConceptosEdificio(e)
	case tipos.ObjetoPlanta:
		p, ok := e.ObtenerPlanta(nombre)
		if !ok {
			return tipos.Conceptos{}, fmt.Errorf("%w: planta %s", tipos.ErrObjetoNoEncontrado, nombre)
		}
		return agregador.ConceptosPlanta(e, p)
	case tipos.ObjetoZona:
		z, ok := e.ObtenerZona(nombre)
		if !ok {
			return tipos.Conceptos{}, fmt.Errorf("%w: zona %s", tipos.ErrObjetoNoEncontrado, nombre)
		}
		return z.Conceptos, nil
	default:
		return tipos.Conceptos{}, fmt.Errorf("%w: sin conceptos para objetos de tipo %q", tipos.ErrObjetoNoEncontrado, tipo)
	}
}

// FlujosElemento devuelve los flujos de un elemento de una zona
func (m *Modelo) FlujosElemento(zona, elemento string) (tipos.Flujos, error) {
	z, ok := m.Edificio.ObtenerZona(zona)
	if !ok {
		return tipos.Flujos{}, fmt.Errorf("%w: zona %s", tipos.ErrObjetoNoEncontrado, zona)
	}
	el, ok := z.ObtenerElemento(elemento)
	if !ok {
		return tipos.Flujos{}, fmt.Errorf("%w: elemento %s de la zona %s", tipos.ErrObjetoNoEncontrado, elemento, zona)
	}
	return el.Flujos, nil
}

// FlujosVec devuelve los flujos del objeto por columnas: 9 conceptos para edificio,
// plantas y zonas, o una sola columna para un elemento (zona indica su zona)
func (m *Modelo) FlujosVec(tipo tipos.TipoObjeto, nombre, zona string) (tipos.FlujosVec, error) {
	if tipo == tipos.ObjetoElemento {
		f, err := m.FlujosElemento(zona, nombre)
		if err != nil {
			return tipos.FlujosVec{}, err
		}
		return f.AFlujosVec(nombre), nil
	}
	c, err := m.Conceptos(tipo, nombre)
	if err != nil {
		return tipos.FlujosVec{}, err
	}
	return c.AFlujosVec(), nil
}

// RangoConceptos es el rango de flujos por concepto de todas las zonas
func (m *Modelo) RangoConceptos() agregador.Rango {
	return agregador.MinMaxConceptos(m.Edificio)
}

// RangoMeses es el rango de demandas mensuales de todas las zonas
func (m *Modelo) RangoMeses() agregador.Rango {
	return agregador.MinMaxMeses(m.Edificio)
}

// NodoZona del árbol del edificio
type NodoZona struct {
	Nombre    string
	Elementos []string
}

// NodoPlanta del árbol del edificio
type NodoPlanta struct {
	Nombre string
	Zonas  []NodoZona
}

// Arbol devuelve las plantas, sus zonas y los elementos de cada zona en el orden del archivo
func (m *Modelo) Arbol() []NodoPlanta {
	arbol := make([]NodoPlanta, 0, len(m.Edificio.Plantas))
	for _, p := range m.Edificio.Plantas {
		nodo := NodoPlanta{Nombre: p.Nombre, Zonas: make([]NodoZona, 0, len(p.Zonas))}
		for _, nombre := range p.Zonas {
			nz := NodoZona{Nombre: nombre}
			if z, ok := m.Edificio.ObtenerZona(nombre); ok {
				for _, el := range z.Elementos {
					nz.Elementos = append(nz.Elementos, el.Nombre)
				}
			}
			nodo.Zonas = append(nodo.Zonas, nz)
		}
		arbol = append(arbol, nodo)
	}
	return arbol
}

// ZonasHorarias devuelve los nombres ordenados de las zonas con datos horarios
func (m *Modelo) ZonasHorarias() []string {
	if m.BinData == nil {
		return nil
	}
	nombres := make([]string, 0, len(m.BinData.Zonas))
	for nombre := range m.BinData.Zonas {
		nombres = append(nombres, nombre)
	}
	sort.Strings(nombres)
	return nombres
}

// ZonaHoraria devuelve los datos horarios de una zona
func (m *Modelo) ZonaHoraria(nombre string) (*tipos.ZonaBin, error) {
	if m.BinData == nil {
		return nil, fmt.Errorf("%w: el modelo no tiene datos horarios", tipos.ErrObjetoNoEncontrado)
	}
	z, ok := m.BinData.Zonas[nombre]
	if !ok {
		return nil, fmt.Errorf("%w: zona %s sin datos horarios", tipos.ErrObjetoNoEncontrado, nombre)
	}
	return z, nil
}

// ResumenDiario remuestrea por días una variable horaria de una zona
func (m *Modelo) ResumenDiario(zona string, variable tipos.VariableHoraria,
	agregaciones ...tipos.TipoAgregacion) (*tipos.ResumenDiario, error) {
	z, err := m.ZonaHoraria(zona)
	if err != nil {
		return nil, err
	}
	return agregador.CalcularResumenDiario(z, variable, agregaciones...)
}
