package lector

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pachi/visol/tipos"
)

// Marcadores del archivo .res
const (
	marcadorPlantas         = "Numero de plantas"
	marcadorEdificio        = "RESULTADOS A NIVEL EDIFICIO"
	marcadorZonas           = "Numero de zonas"
	marcadorZona            = "Zona "
	marcadorConceptos       = "Concepto, Cal_positivo"
	marcadorNumComponentes  = "Numero de Componentes"
	marcadorComponentes     = "Componente, Cal_positivo"
	marcadorAnual           = "Calefacción, Refrigeración anual"
	marcadorAnualCal        = "Calefacción anual"
	marcadorCalMensual      = "Calefacción mensual"
	marcadorRefMensual      = "Refrigeración mensual"
	marcadorDatosZonas      = "Nombre, m2, multiplicador"
	marcadorTotal           = "TOTAL"
	marcadorCalMensualZonas = "Calefacción mensual por zonas"
	marcadorRefMensualZonas = "Refrigeración mensual por zonas"

	seccionPlantas          = "plantas y zonas"
	seccionDemandasEdificio = "demandas del edificio"
	seccionDatosZonas       = "datos generales de zonas"
	seccionMensualZonas     = "demandas mensuales por zonas"

	camposFilaFlujos    = 7
	camposFilaDatosZona = 5
	camposFilaTotal     = 4
)

// cursor recorre las líneas del archivo hacia delante.
// Todas las funciones de análisis comparten el mismo cursor.
type cursor struct {
	lineas []string
	pos    int // Índice de la siguiente línea a leer
	ultima int // Índice de la última línea consumida, -1 si ninguna
}

func nuevoCursor(texto string) *cursor {
	texto = strings.ReplaceAll(texto, "\r\n", "\n")
	return &cursor{lineas: strings.Split(texto, "\n"), ultima: -1}
}

// siguiente consume la siguiente línea, sin espacios en los extremos
func (c *cursor) siguiente() (string, bool) {
	if c.pos >= len(c.lineas) {
		c.ultima = -1
		return "", false
	}
	c.ultima = c.pos
	c.pos++
	return strings.TrimSpace(c.lineas[c.ultima]), true
}

// buscar consume líneas hasta encontrar una que empiece por alguno de los prefijos
func (c *cursor) buscar(prefijos ...string) (string, bool) {
	for {
		linea, ok := c.siguiente()
		if !ok {
			return "", false
		}
		for _, prefijo := range prefijos {
			if strings.HasPrefix(linea, prefijo) {
				return linea, true
			}
		}
	}
}

// buscarLinea consume líneas hasta encontrar una que cumpla la condición
func (c *cursor) buscarLinea(cumple func(string) bool) (string, bool) {
	for {
		linea, ok := c.siguiente()
		if !ok {
			return "", false
		}
		if cumple(linea) {
			return linea, true
		}
	}
}

// errorFormato construye un error con la última línea consumida
func (c *cursor) errorFormato(seccion, buscando string, err error) *tipos.ErrorFormato {
	e := &tipos.ErrorFormato{Seccion: seccion, Buscando: buscando, Err: err}
	if c.ultima >= 0 {
		e.Linea = strings.TrimSpace(c.lineas[c.ultima])
		e.NumLinea = c.ultima + 1
	}
	return e
}

// siguienteEntero lee un entero no negativo en la siguiente línea
func (c *cursor) siguienteEntero(seccion, buscando string) (int, error) {
	linea, ok := c.siguiente()
	if !ok {
		return 0, c.errorFormato(seccion, buscando, nil)
	}
	n, err := strconv.Atoi(linea)
	if err != nil {
		return 0, c.errorFormato(seccion, buscando, err)
	}
	if n < 0 {
		return 0, c.errorFormato(seccion, buscando, fmt.Errorf("número negativo: %d", n))
	}
	return n, nil
}

// siguienteNumeros lee una fila de n valores numéricos separados por comas
func (c *cursor) siguienteNumeros(seccion, buscando string, n int) ([]float64, error) {
	linea, ok := c.siguiente()
	if !ok {
		return nil, c.errorFormato(seccion, buscando, nil)
	}
	valores, err := parsearNumeros(strings.Split(linea, ","))
	if err != nil {
		return nil, c.errorFormato(seccion, buscando, err)
	}
	if len(valores) != n {
		return nil, c.errorFormato(seccion, buscando,
			fmt.Errorf("se esperaban %d valores, encontrados %d", n, len(valores)))
	}
	return valores, nil
}

// siguienteFlujos lee una fila "nombre, calpos, calneg, calnet, refpos, refneg, refnet"
func (c *cursor) siguienteFlujos(seccion, buscando string) (string, tipos.Flujos, error) {
	linea, ok := c.siguiente()
	if !ok {
		return "", tipos.Flujos{}, c.errorFormato(seccion, buscando, nil)
	}
	campos := strings.Split(linea, ",")
	if len(campos) != camposFilaFlujos {
		return "", tipos.Flujos{}, c.errorFormato(seccion, buscando,
			fmt.Errorf("se esperaban %d campos, encontrados %d", camposFilaFlujos, len(campos)))
	}
	valores, err := parsearNumeros(campos[1:])
	if err != nil {
		return "", tipos.Flujos{}, c.errorFormato(seccion, buscando, err)
	}
	flujos, err := tipos.FlujosDesdeValores(valores)
	if err != nil {
		return "", tipos.Flujos{}, c.errorFormato(seccion, buscando, err)
	}
	return limpiarNombre(campos[0]), flujos, nil
}

func parsearNumeros(campos []string) ([]float64, error) {
	valores := make([]float64, len(campos))
	for i, campo := range campos {
		v, err := strconv.ParseFloat(strings.TrimSpace(campo), 64)
		if err != nil {
			return nil, fmt.Errorf("valor numérico incorrecto %q", strings.TrimSpace(campo))
		}
		valores[i] = v
	}
	return valores, nil
}

// limpiarNombre elimina espacios y las comillas que rodean el nombre
func limpiarNombre(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		s = s[1 : len(s)-1]
	}
	return s
}

// esNombrePlanta reconoce la línea con el nombre de una planta: un único campo entre comillas
func esNombrePlanta(linea string) bool {
	return len(linea) >= 2 && strings.HasPrefix(linea, `"`) && strings.HasSuffix(linea, `"`) &&
		!strings.Contains(linea, ",")
}

// ParsearRes construye el edificio a partir del contenido (UTF-8) de un archivo .res.
// Cualquier error de formato interrumpe el análisis y no se devuelve ningún edificio parcial.
func ParsearRes(texto string) (*tipos.Edificio, error) {
	edificio := tipos.NuevoEdificio()
	c := nuevoCursor(texto)

	hayPlantas, hayEdificio := false, false
	for {
		linea, ok := c.siguiente()
		if !ok {
			break
		}
		switch {
		case linea == "" || strings.HasPrefix(linea, "#"):
			continue
		case strings.HasPrefix(linea, marcadorPlantas):
			if err := parsearPlantasYZonas(c, edificio); err != nil {
				return nil, err
			}
			hayPlantas = true
		case strings.HasPrefix(linea, marcadorEdificio):
			if err := parsearResultadosEdificio(c, edificio); err != nil {
				return nil, err
			}
			hayEdificio = true
		}
	}

	if !hayPlantas {
		return nil, &tipos.ErrorFormato{Seccion: seccionPlantas, Buscando: marcadorPlantas}
	}
	if !hayEdificio {
		return nil, &tipos.ErrorFormato{Seccion: seccionDemandasEdificio, Buscando: marcadorEdificio}
	}
	if err := edificio.Validar(); err != nil {
		return nil, &tipos.ErrorFormato{Seccion: seccionDatosZonas, Buscando: "modelo coherente", Err: err}
	}
	edificio.DatosRes = texto
	return edificio, nil
}

// parsearPlantasYZonas lee la lista de plantas y, para cada una, sus zonas con
// los flujos por conceptos y por elementos
func parsearPlantasYZonas(c *cursor, edificio *tipos.Edificio) error {
	numPlantas, err := c.siguienteEntero(seccionPlantas, "número de plantas")
	if err != nil {
		return err
	}
	plantas := make([]tipos.Planta, 0, numPlantas)
	zonas := make(map[string]*tipos.Zona)

	for i := 0; i < numPlantas; i++ {
		linea, ok := c.buscarLinea(esNombrePlanta)
		if !ok {
			return c.errorFormato(seccionPlantas, fmt.Sprintf("nombre de la planta %d de %d", i+1, numPlantas), nil)
		}
		planta := tipos.Planta{Nombre: limpiarNombre(linea)}

		if _, ok := c.buscar(marcadorZonas); !ok {
			return c.errorFormato(seccionPlantas, fmt.Sprintf("%q de la planta %s", marcadorZonas, planta.Nombre), nil)
		}
		numZonas, err := c.siguienteEntero(seccionPlantas, "número de zonas de la planta "+planta.Nombre)
		if err != nil {
			return err
		}
		planta.Zonas = make([]string, 0, numZonas)
		for j := 0; j < numZonas; j++ {
			zona, err := parsearZona(c, planta.Nombre, j)
			if err != nil {
				return err
			}
			if _, existe := zonas[zona.Nombre]; existe {
				return c.errorFormato(seccionPlantas, "zona "+zona.Nombre, fmt.Errorf("nombre de zona duplicado"))
			}
			planta.Zonas = append(planta.Zonas, zona.Nombre)
			zonas[zona.Nombre] = zona
		}
		plantas = append(plantas, planta)
	}

	edificio.Plantas = plantas
	edificio.Zonas = zonas
	loggerPrint(LOG_LECTOR, "Encontradas %d plantas y %d zonas", len(plantas), len(zonas))
	return nil
}

// parsearZona lee nombre, superficie, los 9 conceptos y los elementos de una zona
func parsearZona(c *cursor, planta string, indice int) (*tipos.Zona, error) {
	buscando := fmt.Sprintf("zona %d de la planta %s", indice+1, planta)
	linea, ok := c.buscar(marcadorZona)
	if !ok {
		return nil, c.errorFormato(seccionPlantas, buscando, nil)
	}
	campos := strings.Split(linea, ",")
	if len(campos) != 2 {
		return nil, c.errorFormato(seccionPlantas, buscando, fmt.Errorf("se esperaba 'Zona n, \"nombre\"'"))
	}
	zona := tipos.NuevaZona(limpiarNombre(campos[1]))
	zona.Planta = planta

	superficie, err := c.siguienteNumeros(seccionPlantas, "superficie de la zona "+zona.Nombre, 1)
	if err != nil {
		return nil, err
	}
	zona.Superficie = superficie[0]

	if _, ok := c.buscar(marcadorConceptos); !ok {
		return nil, c.errorFormato(seccionPlantas, fmt.Sprintf("%q de la zona %s", marcadorConceptos, zona.Nombre), nil)
	}
	var conceptos [tipos.NumConceptos]tipos.Flujos
	for k := range conceptos {
		_, flujos, err := c.siguienteFlujos(seccionPlantas,
			fmt.Sprintf("concepto %s de la zona %s", tipos.NombresConceptos[k], zona.Nombre))
		if err != nil {
			return nil, err
		}
		conceptos[k] = flujos
	}
	zona.Conceptos = tipos.ConceptosDesdeLista(conceptos)

	if _, ok := c.buscar(marcadorNumComponentes); !ok {
		return nil, c.errorFormato(seccionPlantas, fmt.Sprintf("%q de la zona %s", marcadorNumComponentes, zona.Nombre), nil)
	}
	numElementos, err := c.siguienteEntero(seccionPlantas, "número de componentes de la zona "+zona.Nombre)
	if err != nil {
		return nil, err
	}
	if _, ok := c.buscar(marcadorComponentes); !ok {
		return nil, c.errorFormato(seccionPlantas, fmt.Sprintf("%q de la zona %s", marcadorComponentes, zona.Nombre), nil)
	}
	zona.Elementos = make([]tipos.Elemento, 0, numElementos)
	for k := 0; k < numElementos; k++ {
		nombre, flujos, err := c.siguienteFlujos(seccionPlantas,
			fmt.Sprintf("componente %d de la zona %s", k+1, zona.Nombre))
		if err != nil {
			return nil, err
		}
		zona.Elementos = append(zona.Elementos, tipos.Elemento{Nombre: nombre, Flujos: flujos})
	}
	return zona, nil
}

// parsearResultadosEdificio lee las demandas del edificio, los datos generales de
// las zonas y sus demandas mensuales, completando las zonas ya existentes
func parsearResultadosEdificio(c *cursor, edificio *tipos.Edificio) error {
	if _, ok := c.buscar(marcadorAnual, marcadorAnualCal); !ok {
		return c.errorFormato(seccionDemandasEdificio, fmt.Sprintf("%q", marcadorAnual), nil)
	}
	anual, err := c.siguienteNumeros(seccionDemandasEdificio, "demandas anuales del edificio", 2)
	if err != nil {
		return err
	}
	edificio.Calefaccion, edificio.Refrigeracion = anual[0], anual[1]

	if _, ok := c.buscar(marcadorCalMensual); !ok {
		return c.errorFormato(seccionDemandasEdificio, fmt.Sprintf("%q", marcadorCalMensual), nil)
	}
	if edificio.CalefaccionMeses, err = c.siguienteNumeros(seccionDemandasEdificio,
		"calefacción mensual del edificio", tipos.NumMeses); err != nil {
		return err
	}
	if _, ok := c.buscar(marcadorRefMensual); !ok {
		return c.errorFormato(seccionDemandasEdificio, fmt.Sprintf("%q", marcadorRefMensual), nil)
	}
	if edificio.RefrigeracionMeses, err = c.siguienteNumeros(seccionDemandasEdificio,
		"refrigeración mensual del edificio", tipos.NumMeses); err != nil {
		return err
	}

	listaZonas, err := parsearDatosGeneralesZonas(c, edificio)
	if err != nil {
		return err
	}

	if err := parsearMensualZonas(c, edificio, listaZonas, marcadorCalMensualZonas, func(z *tipos.Zona, v []float64) {
		z.CalefaccionMeses = v
	}); err != nil {
		return err
	}
	return parsearMensualZonas(c, edificio, listaZonas, marcadorRefMensualZonas, func(z *tipos.Zona, v []float64) {
		z.RefrigeracionMeses = v
	})
}

// parsearDatosGeneralesZonas actualiza superficie, multiplicador y demandas anuales
// de las zonas y lee la superficie total del edificio. Devuelve los nombres de zona
// en el orden del archivo, que es el de las filas de demandas mensuales por zonas.
func parsearDatosGeneralesZonas(c *cursor, edificio *tipos.Edificio) ([]string, error) {
	if _, ok := c.buscar(marcadorZonas); !ok {
		return nil, c.errorFormato(seccionDatosZonas, fmt.Sprintf("%q", marcadorZonas), nil)
	}
	numZonas, err := c.siguienteEntero(seccionDatosZonas, "número de zonas del edificio")
	if err != nil {
		return nil, err
	}
	if _, ok := c.buscar(marcadorDatosZonas); !ok {
		return nil, c.errorFormato(seccionDatosZonas, fmt.Sprintf("%q", marcadorDatosZonas), nil)
	}

	listaZonas := make([]string, 0, numZonas)
	for i := 0; i < numZonas; i++ {
		buscando := fmt.Sprintf("fila %d de datos de zonas", i+1)
		linea, ok := c.siguiente()
		if !ok {
			return nil, c.errorFormato(seccionDatosZonas, buscando, nil)
		}
		campos := strings.Split(linea, ",")
		if len(campos) != camposFilaDatosZona {
			return nil, c.errorFormato(seccionDatosZonas, buscando,
				fmt.Errorf("se esperaban %d campos, encontrados %d", camposFilaDatosZona, len(campos)))
		}
		valores, err := parsearNumeros(campos[1:])
		if err != nil {
			return nil, c.errorFormato(seccionDatosZonas, buscando, err)
		}
		nombre := limpiarNombre(campos[0])
		listaZonas = append(listaZonas, nombre)

		zona, existe := edificio.Zonas[nombre]
		if !existe {
			loggerPrint(LOG_LECTOR, "Datos generales de zona desconocida %s, se ignoran", nombre)
			continue
		}
		zona.Superficie = valores[0]
		zona.Multiplicador = int(valores[1])
		zona.Calefaccion = valores[2]
		zona.Refrigeracion = valores[3]
	}

	linea, ok := c.buscar(marcadorTotal)
	if !ok {
		return nil, c.errorFormato(seccionDatosZonas, "fila TOTAL", nil)
	}
	campos := strings.Split(linea, ",")
	if len(campos) != camposFilaTotal {
		return nil, c.errorFormato(seccionDatosZonas, "fila TOTAL",
			fmt.Errorf("se esperaban %d campos, encontrados %d", camposFilaTotal, len(campos)))
	}
	superficie, err := parsearNumeros(campos[1:2])
	if err != nil {
		return nil, c.errorFormato(seccionDatosZonas, "superficie total del edificio", err)
	}
	edificio.Superficie = superficie[0]
	return listaZonas, nil
}

// parsearMensualZonas lee una fila de 12 valores por cada zona de listaZonas
func parsearMensualZonas(c *cursor, edificio *tipos.Edificio, listaZonas []string, marcador string,
	asignar func(*tipos.Zona, []float64)) error {
	if _, ok := c.buscar(marcador); !ok {
		return c.errorFormato(seccionMensualZonas, fmt.Sprintf("%q", marcador), nil)
	}
	for _, nombre := range listaZonas {
		valores, err := c.siguienteNumeros(seccionMensualZonas, "demandas mensuales de la zona "+nombre, tipos.NumMeses)
		if err != nil {
			return err
		}
		if zona, existe := edificio.Zonas[nombre]; existe {
			asignar(zona, valores)
		}
	}
	return nil
}

// LeerRes lee y analiza un archivo .res codificado en Latin-1
func LeerRes(ruta string) (*tipos.Edificio, error) {
	return LeerResConLimite(ruta, MaxTamanoDefecto)
}

// LeerResConLimite es LeerRes con un tamaño máximo de archivo
func LeerResConLimite(ruta string, maxTamano int64) (*tipos.Edificio, error) {
	loggerPrint(LOG_LECTOR, "Analizando archivo de resultados: %s", ruta)
	datos, err := LeerArchivo(ruta, maxTamano)
	if err != nil {
		return nil, err
	}
	edificio, err := ParsearRes(DecodificarLatin1(datos))
	if err != nil {
		return nil, fmt.Errorf("error al analizar %s: %w", ruta, err)
	}
	return edificio, nil
}
