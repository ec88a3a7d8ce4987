// Package informe exporta los resultados de un modelo a un libro XLSX.
package informe

import (
	"fmt"
	"io"
	"log"

	"github.com/xuri/excelize/v2"

	"github.com/pachi/visol/modelo"
	"github.com/pachi/visol/tipos"
)

const LOG_INFORME = "INFORME"

// loggerPrint imprime un mensaje en la consola de log
func loggerPrint(logger string, mensaje string, args ...any) {
	mensaje = "[" + logger + "] " + mensaje
	log.Printf(mensaje, args...)
}

// Nombres de las hojas del libro
const (
	HojaEdificio  = "Edificio"
	HojaMensual   = "Mensual"
	HojaConceptos = "Conceptos"
	HojaElementos = "Elementos"
)

// NombresMeses para las cabeceras mensuales
var NombresMeses = [tipos.NumMeses]string{
	"Ene", "Feb", "Mar", "Abr", "May", "Jun", "Jul", "Ago", "Sep", "Oct", "Nov", "Dic",
}

var cabeceraFlujos = []any{"CalPos", "CalNeg", "CalNet", "RefPos", "RefNeg", "RefNet"}

type objeto struct {
	tipo   tipos.TipoObjeto
	nombre string
	planta string
}

// objetos lista edificio, plantas y zonas en el orden del archivo
func objetos(m *modelo.Modelo) []objeto {
	lista := []objeto{{tipo: tipos.ObjetoEdificio, nombre: m.Edificio.Nombre}}
	for _, p := range m.Edificio.Plantas {
		lista = append(lista, objeto{tipo: tipos.ObjetoPlanta, nombre: p.Nombre})
	}
	for _, p := range m.Edificio.Plantas {
		for _, z := range p.Zonas {
			lista = append(lista, objeto{tipo: tipos.ObjetoZona, nombre: z, planta: p.Nombre})
		}
	}
	return lista
}

// Exportar escribe el libro en un archivo
func Exportar(m *modelo.Modelo, ruta string) error {
	f, err := Generar(m)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(ruta); err != nil {
		return fmt.Errorf("error al guardar %s: %v", ruta, err)
	}
	loggerPrint(LOG_INFORME, "Informe de %s exportado a %s", m.Edificio.Nombre, ruta)
	return nil
}

// Escribir escribe el libro en w
func Escribir(m *modelo.Modelo, w io.Writer) error {
	f, err := Generar(m)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.Write(w); err != nil {
		return fmt.Errorf("error al escribir informe: %v", err)
	}
	return nil
}

// Generar construye el libro en memoria. El llamante debe cerrarlo.
func Generar(m *modelo.Modelo) (*excelize.File, error) {
	if m == nil || m.Edificio == nil {
		return nil, fmt.Errorf("modelo vacío")
	}
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), HojaEdificio); err != nil {
		f.Close()
		return nil, err
	}
	for _, hoja := range []string{HojaMensual, HojaConceptos, HojaElementos} {
		if _, err := f.NewSheet(hoja); err != nil {
			f.Close()
			return nil, err
		}
	}

	pasos := []func(*excelize.File, *modelo.Modelo) error{
		hojaEdificio, hojaMensual, hojaConceptos, hojaElementos,
	}
	for _, paso := range pasos {
		if err := paso(f, m); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

// escribirFila escribe una fila completa empezando en la columna A
func escribirFila(f *excelize.File, hoja string, fila int, valores []any) error {
	celda, err := excelize.CoordinatesToCellName(1, fila)
	if err != nil {
		return err
	}
	return f.SetSheetRow(hoja, celda, &valores)
}

// escribirCabecera escribe la fila 1 en negrita
func escribirCabecera(f *excelize.File, hoja string, cabecera []any) error {
	if err := escribirFila(f, hoja, 1, cabecera); err != nil {
		return err
	}
	estilo, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	ultima, err := excelize.CoordinatesToCellName(len(cabecera), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(hoja, "A1", ultima, estilo)
}

func hojaEdificio(f *excelize.File, m *modelo.Modelo) error {
	cabecera := []any{"Tipo", "Nombre", "Planta", "Multiplicador", "Superficie [m²]",
		"Calefacción [kWh/m²·año]", "Refrigeración [kWh/m²·año]"}
	if err := escribirCabecera(f, HojaEdificio, cabecera); err != nil {
		return err
	}
	for i, o := range objetos(m) {
		datos, err := m.DatosBasicos(o.tipo, o.nombre)
		if err != nil {
			return err
		}
		fila := []any{o.tipo.String(), o.nombre, o.planta, datos.Multiplicador,
			datos.Superficie, datos.Calefaccion, datos.Refrigeracion}
		if err := escribirFila(f, HojaEdificio, i+2, fila); err != nil {
			return err
		}
	}
	return nil
}

func hojaMensual(f *excelize.File, m *modelo.Modelo) error {
	cabecera := []any{"Tipo", "Nombre", "Demanda"}
	for _, mes := range NombresMeses {
		cabecera = append(cabecera, mes)
	}
	if err := escribirCabecera(f, HojaMensual, cabecera); err != nil {
		return err
	}
	fila := 2
	for _, o := range objetos(m) {
		cal, ref, err := m.DemandasMensuales(o.tipo, o.nombre)
		if err != nil {
			return err
		}
		for _, serie := range []struct {
			nombre  string
			valores []float64
		}{{"Calefacción", cal}, {"Refrigeración", ref}} {
			valores := []any{o.tipo.String(), o.nombre, serie.nombre}
			for _, v := range serie.valores {
				valores = append(valores, v)
			}
			if err := escribirFila(f, HojaMensual, fila, valores); err != nil {
				return err
			}
			fila++
		}
	}
	return nil
}

func hojaConceptos(f *excelize.File, m *modelo.Modelo) error {
	cabecera := append([]any{"Tipo", "Nombre", "Concepto"}, cabeceraFlujos...)
	if err := escribirCabecera(f, HojaConceptos, cabecera); err != nil {
		return err
	}
	fila := 2
	for _, o := range objetos(m) {
		conceptos, err := m.Conceptos(o.tipo, o.nombre)
		if err != nil {
			return err
		}
		for i, flujos := range conceptos.Lista() {
			valores := []any{o.tipo.String(), o.nombre, tipos.NombresConceptos[i]}
			for _, v := range flujos.Valores() {
				valores = append(valores, v)
			}
			if err := escribirFila(f, HojaConceptos, fila, valores); err != nil {
				return err
			}
			fila++
		}
	}
	return nil
}

func hojaElementos(f *excelize.File, m *modelo.Modelo) error {
	cabecera := append([]any{"Zona", "Elemento"}, cabeceraFlujos...)
	if err := escribirCabecera(f, HojaElementos, cabecera); err != nil {
		return err
	}
	fila := 2
	for _, planta := range m.Arbol() {
		for _, zona := range planta.Zonas {
			for _, elemento := range zona.Elementos {
				flujos, err := m.FlujosElemento(zona.Nombre, elemento)
				if err != nil {
					return err
				}
				valores := []any{zona.Nombre, elemento}
				for _, v := range flujos.Valores() {
					valores = append(valores, v)
				}
				if err := escribirFila(f, HojaElementos, fila, valores); err != nil {
					return err
				}
				fila++
			}
		}
	}
	return nil
}
