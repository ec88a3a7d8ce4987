package lector

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/pachi/visol/tipos"
)

// Disposición de un registro de zona en el archivo .bin (little-endian):
//
//	char  nombreZona[50]
//	(2 bytes de relleno hasta alinear a 4)
//	float Area
//	float Volumen
//	int   multiplicador
//	float p[2]
//	float g[24]
//	int   numLocalesAdyacentes   (índice del último adyacente, de 0 a 99)
//	float UAext
//	float UAint[100]
//	char  localAdyacente[100][50]
//	int   daCal[8760]
//	int   daRef[8760]
//	float QS[8760], QL[8760], Treal[8760], Tmax[8760], Tmin[8760], Vventinf[8760]
const (
	tamanoCabecera = 4
	tamanoRelleno  = 2
	tamanoValor    = 4

	// TamanoRegistroZona es el tamaño en bytes de un registro de zona (285896)
	TamanoRegistroZona = tipos.LongitudNombre + tamanoRelleno +
		3*tamanoValor + // Area, Volumen, multiplicador
		tipos.NumFactoresP*tamanoValor +
		tipos.NumFactoresG*tamanoValor +
		2*tamanoValor + // numLocalesAdyacentes, UAext
		tipos.MaxAdyacentes*tamanoValor +
		tipos.MaxAdyacentes*tipos.LongitudNombre +
		8*tipos.NumHoras*tamanoValor
)

// lectorBinario decodifica campos little-endian comprobando los límites del buffer
type lectorBinario struct {
	datos []byte
	pos   int
}

func (l *lectorBinario) tomar(n int) ([]byte, error) {
	if n < 0 || l.pos+n > len(l.datos) {
		return nil, fmt.Errorf("%w: se necesitan %d bytes en la posición %d, disponibles %d",
			tipos.ErrBinarioTruncado, n, l.pos, len(l.datos)-l.pos)
	}
	b := l.datos[l.pos : l.pos+n]
	l.pos += n
	return b, nil
}

func (l *lectorBinario) saltar(n int) error {
	_, err := l.tomar(n)
	return err
}

func (l *lectorBinario) leerU32() (uint32, error) {
	b, err := l.tomar(tamanoValor)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (l *lectorBinario) leerI32() (int32, error) {
	v, err := l.leerU32()
	return int32(v), err
}

func (l *lectorBinario) leerF32() (float32, error) {
	v, err := l.leerU32()
	return math.Float32frombits(v), err
}

func (l *lectorBinario) leerF32s(n int) ([]float32, error) {
	b, err := l.tomar(n * tamanoValor)
	if err != nil {
		return nil, err
	}
	valores := make([]float32, n)
	for i := range valores {
		valores[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*tamanoValor:]))
	}
	return valores, nil
}

func (l *lectorBinario) leerI32s(n int) ([]int32, error) {
	b, err := l.tomar(n * tamanoValor)
	if err != nil {
		return nil, err
	}
	valores := make([]int32, n)
	for i := range valores {
		valores[i] = int32(binary.LittleEndian.Uint32(b[i*tamanoValor:]))
	}
	return valores, nil
}

func (l *lectorBinario) leerNombre() (string, error) {
	b, err := l.tomar(tipos.LongitudNombre)
	if err != nil {
		return "", err
	}
	return nombreDesdeBytes(b), nil
}

// nombreDesdeBytes lee hasta el primer byte nulo y quita un par de comillas envolventes
func nombreDesdeBytes(b []byte) string {
	if fin := bytes.IndexByte(b, 0); fin >= 0 {
		b = b[:fin]
	}
	nombre := DecodificarLatin1(b)
	if len(nombre) >= 2 && nombre[0] == '"' && nombre[len(nombre)-1] == '"' {
		nombre = nombre[1 : len(nombre)-1]
	}
	return nombre
}

// DecodificarBin convierte el contenido de un archivo .bin en datos de zonas.
// Si el archivo tiene menos bytes de los declarados falla con ErrBinarioTruncado
// sin decodificar ninguna zona; los bytes que sobran tras el último registro se ignoran.
// Un nombre de zona repetido sustituye al anterior.
func DecodificarBin(datos []byte) (*tipos.BinData, error) {
	l := &lectorBinario{datos: datos}
	numZonas, err := l.leerU32()
	if err != nil {
		return nil, fmt.Errorf("error al leer el número de zonas: %w", err)
	}

	disponibles := uint64(len(datos) - tamanoCabecera)
	necesarios := uint64(numZonas) * TamanoRegistroZona
	if disponibles < necesarios {
		return nil, fmt.Errorf("%w: %d zonas declaradas requieren %d bytes, disponibles %d",
			tipos.ErrBinarioTruncado, numZonas, necesarios, disponibles)
	}
	if disponibles > necesarios {
		loggerPrint(LOG_LECTOR, "Se ignoran %d bytes tras los %d registros de zona", disponibles-necesarios, numZonas)
	}

	zonas := make(map[string]*tipos.ZonaBin, numZonas)
	for i := uint32(0); i < numZonas; i++ {
		zona, err := decodificarZona(l)
		if err != nil {
			return nil, fmt.Errorf("error al decodificar la zona %d: %w", i, err)
		}
		if _, existe := zonas[zona.Nombre]; existe {
			loggerPrint(LOG_LECTOR, "Zona %s repetida en el archivo binario, se sustituye", zona.Nombre)
		}
		zonas[zona.Nombre] = zona
	}
	return &tipos.BinData{NumZonas: numZonas, Zonas: zonas}, nil
}

func decodificarZona(l *lectorBinario) (*tipos.ZonaBin, error) {
	inicio := l.pos
	z := &tipos.ZonaBin{}
	var err error

	if z.Nombre, err = l.leerNombre(); err != nil {
		return nil, err
	}
	if err = l.saltar(tamanoRelleno); err != nil {
		return nil, err
	}
	if z.Area, err = l.leerF32(); err != nil {
		return nil, err
	}
	if z.Volumen, err = l.leerF32(); err != nil {
		return nil, err
	}
	if z.Multiplicador, err = l.leerI32(); err != nil {
		return nil, err
	}
	if z.P, err = l.leerF32s(tipos.NumFactoresP); err != nil {
		return nil, err
	}
	if z.G, err = l.leerF32s(tipos.NumFactoresG); err != nil {
		return nil, err
	}
	ultimoAdyacente, err := l.leerI32()
	if err != nil {
		return nil, err
	}
	numAdyacentes := int(ultimoAdyacente) + 1
	if numAdyacentes < 0 {
		numAdyacentes = 0
	}
	if numAdyacentes > tipos.MaxAdyacentes {
		numAdyacentes = tipos.MaxAdyacentes
	}
	if z.UAExt, err = l.leerF32(); err != nil {
		return nil, err
	}
	uaInt, err := l.leerF32s(tipos.MaxAdyacentes)
	if err != nil {
		return nil, err
	}
	z.UAInt = uaInt[:numAdyacentes:numAdyacentes]
	z.Adyacentes = make([]string, 0, numAdyacentes)
	for i := 0; i < tipos.MaxAdyacentes; i++ {
		nombre, err := l.leerNombre()
		if err != nil {
			return nil, err
		}
		if i < numAdyacentes {
			z.Adyacentes = append(z.Adyacentes, nombre)
		}
	}

	if z.DaCal, err = l.leerI32s(tipos.NumHoras); err != nil {
		return nil, err
	}
	if z.DaRef, err = l.leerI32s(tipos.NumHoras); err != nil {
		return nil, err
	}
	if z.QSen, err = l.leerF32s(tipos.NumHoras); err != nil {
		return nil, err
	}
	if z.QLat, err = l.leerF32s(tipos.NumHoras); err != nil {
		return nil, err
	}
	if z.TReal, err = l.leerF32s(tipos.NumHoras); err != nil {
		return nil, err
	}
	if z.TMax, err = l.leerF32s(tipos.NumHoras); err != nil {
		return nil, err
	}
	// Tmin replica la serie Tmax; el bloque Tmin del archivo no se usa
	if err = l.saltar(tipos.NumHoras * tamanoValor); err != nil {
		return nil, err
	}
	z.TMin = append([]float32(nil), z.TMax...)
	if z.VVentInf, err = l.leerF32s(tipos.NumHoras); err != nil {
		return nil, err
	}

	if leidos := l.pos - inicio; leidos != TamanoRegistroZona {
		return nil, fmt.Errorf("registro de zona de %d bytes, se esperaban %d", leidos, TamanoRegistroZona)
	}
	return z, nil
}

// LeerBin lee y decodifica un archivo .bin
func LeerBin(ruta string) (*tipos.BinData, error) {
	return LeerBinConLimite(ruta, MaxTamanoDefecto)
}

// LeerBinConLimite es LeerBin con un tamaño máximo de archivo
func LeerBinConLimite(ruta string, maxTamano int64) (*tipos.BinData, error) {
	loggerPrint(LOG_LECTOR, "Analizando archivo binario: %s", ruta)
	datos, err := LeerArchivo(ruta, maxTamano)
	if err != nil {
		return nil, err
	}
	bin, err := DecodificarBin(datos)
	if err != nil {
		return nil, fmt.Errorf("error al analizar %s: %w", ruta, err)
	}
	loggerPrint(LOG_LECTOR, "Encontradas %d zonas con datos horarios", len(bin.Zonas))
	return bin, nil
}
