package compresor

import (
	"fmt"

	"github.com/pachi/visol/tipos"
)

// ComprimirBloqueSerie codifica una variable horaria de una zona y comprime el resultado.
//
// Parámetros:
//   - zona: datos horarios de la zona
//   - variable: serie a comprimir (entera o real)
//   - compresionBloque: algoritmo de compresión de bloque (LZ4, ZSTD, Snappy, Gzip, Ninguna)
func ComprimirBloqueSerie(zona *tipos.ZonaBin, variable tipos.VariableHoraria,
	compresionBloque tipos.TipoCompresionBloque) ([]byte, error) {

	// NIVEL 1: codificación de valores según el tipo de la variable
	var codificado []byte
	if variable.EsEntera() {
		serie, err := zona.SerieEntera(variable)
		if err != nil {
			return nil, err
		}
		codificado = CodificarSerieEntera(serie)
	} else {
		serie, err := zona.SerieReal(variable)
		if err != nil {
			return nil, err
		}
		codificado = CodificarSerieReal(serie)
	}

	// NIVEL 2: compresión de bloque
	bloque, err := ObtenerCompresorBloque(compresionBloque).Comprimir(codificado)
	if err != nil {
		return nil, fmt.Errorf("error en compresión de bloque: %v", err)
	}
	return bloque, nil
}

// DescomprimirBloqueSerie recupera como float64 la serie comprimida con ComprimirBloqueSerie
func DescomprimirBloqueSerie(datosComprimidos []byte, variable tipos.VariableHoraria,
	compresionBloque tipos.TipoCompresionBloque) ([]float64, error) {

	if err := variable.Validar(); err != nil {
		return nil, err
	}

	// NIVEL 2: descompresión de bloque
	bloque, err := ObtenerCompresorBloque(compresionBloque).Descomprimir(datosComprimidos)
	if err != nil {
		return nil, fmt.Errorf("error en descompresión de bloque: %v", err)
	}

	// NIVEL 1: valores
	if variable.EsEntera() {
		enteros, err := DecodificarSerieEntera(bloque)
		if err != nil {
			return nil, fmt.Errorf("error al decodificar %s: %w", variable, err)
		}
		resultado := make([]float64, len(enteros))
		for i, v := range enteros {
			resultado[i] = float64(v)
		}
		return resultado, nil
	}

	reales, err := DecodificarSerieReal(bloque)
	if err != nil {
		return nil, fmt.Errorf("error al decodificar %s: %w", variable, err)
	}
	resultado := make([]float64, len(reales))
	for i, v := range reales {
		resultado[i] = float64(v)
	}
	return resultado, nil
}
