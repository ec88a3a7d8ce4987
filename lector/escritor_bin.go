package lector

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/pachi/visol/tipos"
	"golang.org/x/text/encoding/charmap"
)

// CodificarBin genera el contenido de un archivo .bin con la disposición que lee DecodificarBin.
// Las series horarias nil se escriben como ceros. Lo usan los tests y los casos de
// referencia para construir archivos binarios; la aplicación solo lee archivos .bin.
func CodificarBin(zonas []*tipos.ZonaBin) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(tamanoCabecera + len(zonas)*TamanoRegistroZona)
	escribirU32s(&buf, uint32(len(zonas)))
	for _, z := range zonas {
		if err := codificarZona(&buf, z); err != nil {
			return nil, fmt.Errorf("error al codificar la zona %s: %w", z.Nombre, err)
		}
	}
	return buf.Bytes(), nil
}

func codificarNombre(buf *bytes.Buffer, nombre string) error {
	b, err := charmap.ISO8859_1.NewEncoder().String(nombre)
	if err != nil {
		return fmt.Errorf("nombre %q no representable en Latin-1: %w", nombre, err)
	}
	if len(b) > tipos.LongitudNombre {
		return fmt.Errorf("nombre %q supera %d bytes", nombre, tipos.LongitudNombre)
	}
	campo := make([]byte, tipos.LongitudNombre)
	copy(campo, b)
	buf.Write(campo)
	return nil
}

func escribirU32s(buf *bytes.Buffer, valores ...uint32) {
	b := make([]byte, len(valores)*tamanoValor)
	for i, v := range valores {
		binary.LittleEndian.PutUint32(b[i*tamanoValor:], v)
	}
	buf.Write(b)
}

func escribirF32s(buf *bytes.Buffer, valores []float32, n int) error {
	if valores != nil && len(valores) != n {
		return fmt.Errorf("se esperaban %d valores, recibidos %d", n, len(valores))
	}
	b := make([]byte, n*tamanoValor)
	for i, v := range valores {
		binary.LittleEndian.PutUint32(b[i*tamanoValor:], math.Float32bits(v))
	}
	buf.Write(b)
	return nil
}

func escribirI32s(buf *bytes.Buffer, valores []int32, n int) error {
	if valores != nil && len(valores) != n {
		return fmt.Errorf("se esperaban %d valores, recibidos %d", n, len(valores))
	}
	b := make([]byte, n*tamanoValor)
	for i, v := range valores {
		binary.LittleEndian.PutUint32(b[i*tamanoValor:], uint32(v))
	}
	buf.Write(b)
	return nil
}

func codificarZona(buf *bytes.Buffer, z *tipos.ZonaBin) error {
	numAdyacentes := len(z.Adyacentes)
	if numAdyacentes > tipos.MaxAdyacentes {
		return fmt.Errorf("%d zonas adyacentes, máximo %d", numAdyacentes, tipos.MaxAdyacentes)
	}
	if len(z.UAInt) != numAdyacentes {
		return fmt.Errorf("%d valores UA para %d zonas adyacentes", len(z.UAInt), numAdyacentes)
	}

	if err := codificarNombre(buf, z.Nombre); err != nil {
		return err
	}
	buf.Write(make([]byte, tamanoRelleno))
	escribirU32s(buf, math.Float32bits(z.Area), math.Float32bits(z.Volumen), uint32(z.Multiplicador))
	if err := escribirF32s(buf, z.P, tipos.NumFactoresP); err != nil {
		return fmt.Errorf("factores p: %w", err)
	}
	if err := escribirF32s(buf, z.G, tipos.NumFactoresG); err != nil {
		return fmt.Errorf("factores g: %w", err)
	}
	escribirU32s(buf, uint32(int32(numAdyacentes-1)), math.Float32bits(z.UAExt))

	uaInt := make([]float32, tipos.MaxAdyacentes)
	copy(uaInt, z.UAInt)
	if err := escribirF32s(buf, uaInt, tipos.MaxAdyacentes); err != nil {
		return err
	}
	for i := 0; i < tipos.MaxAdyacentes; i++ {
		nombre := ""
		if i < numAdyacentes {
			nombre = z.Adyacentes[i]
		}
		if err := codificarNombre(buf, nombre); err != nil {
			return err
		}
	}

	if err := escribirI32s(buf, z.DaCal, tipos.NumHoras); err != nil {
		return fmt.Errorf("da_cal: %w", err)
	}
	if err := escribirI32s(buf, z.DaRef, tipos.NumHoras); err != nil {
		return fmt.Errorf("da_ref: %w", err)
	}
	series := []struct {
		nombre  tipos.VariableHoraria
		valores []float32
	}{
		{tipos.VariableQSen, z.QSen},
		{tipos.VariableQLat, z.QLat},
		{tipos.VariableTReal, z.TReal},
		{tipos.VariableTMax, z.TMax},
		{tipos.VariableTMin, z.TMin},
		{tipos.VariableVVentInf, z.VVentInf},
	}
	for _, s := range series {
		if err := escribirF32s(buf, s.valores, tipos.NumHoras); err != nil {
			return fmt.Errorf("%s: %w", s.nombre, err)
		}
	}
	return nil
}
