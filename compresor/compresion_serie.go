package compresor

import (
	"fmt"
	"math"
	"math/bits"
)

// Codecs de nivel 1 para las series horarias de una zona.
// Ambos formatos empiezan con el número de valores (uint32).

// CodificarSerieReal aplica XOR entre los bits IEEE de valores consecutivos.
// El primer valor se guarda completo; para los siguientes se guarda un byte con
// el número de bytes significativos del XOR (0-4) seguido de esos bytes.
func CodificarSerieReal(valores []float32) []byte {
	resultado := make([]byte, 0, 8+len(valores))
	resultado = uint32ToBytes(resultado, uint32(len(valores)))
	if len(valores) == 0 {
		return resultado
	}

	anterior := math.Float32bits(valores[0])
	resultado = uint32ToBytes(resultado, anterior)
	for _, v := range valores[1:] {
		actual := math.Float32bits(v)
		xor := actual ^ anterior
		n := (32 - bits.LeadingZeros32(xor) + 7) / 8
		resultado = append(resultado, byte(n))
		for j := 0; j < n; j++ {
			resultado = append(resultado, byte(xor>>(8*j)))
		}
		anterior = actual
	}
	return resultado
}

// DecodificarSerieReal invierte CodificarSerieReal
func DecodificarSerieReal(datos []byte) ([]float32, error) {
	n, resto, err := leerCabecera(datos)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		if len(resto) != 0 {
			return nil, fmt.Errorf("serie real vacía con %d bytes sobrantes", len(resto))
		}
		return []float32{}, nil
	}
	// Al menos 4 bytes del primer valor y un byte por cada valor siguiente
	if len(resto) < 4 || len(resto)-4 < n-1 {
		return nil, fmt.Errorf("datos insuficientes para %d valores reales", n)
	}

	valores := make([]float32, n)
	anterior := bytesToUint32(resto)
	valores[0] = math.Float32frombits(anterior)
	pos := 4
	for i := 1; i < n; i++ {
		if pos >= len(resto) {
			return nil, fmt.Errorf("serie real truncada en el valor %d", i)
		}
		tam := int(resto[pos])
		pos++
		if tam > 4 {
			return nil, fmt.Errorf("longitud de XOR inválida (%d) en el valor %d", tam, i)
		}
		if pos+tam > len(resto) {
			return nil, fmt.Errorf("serie real truncada en el valor %d", i)
		}
		var xor uint32
		for j := 0; j < tam; j++ {
			xor |= uint32(resto[pos+j]) << (8 * j)
		}
		pos += tam
		anterior ^= xor
		valores[i] = math.Float32frombits(anterior)
	}
	if pos != len(resto) {
		return nil, fmt.Errorf("serie real con %d bytes sobrantes", len(resto)-pos)
	}
	return valores, nil
}

// CodificarSerieEntera aplica run-length: pares (valor int32, repeticiones uint32)
func CodificarSerieEntera(valores []int32) []byte {
	resultado := make([]byte, 0, 12)
	resultado = uint32ToBytes(resultado, uint32(len(valores)))
	for i := 0; i < len(valores); {
		j := i + 1
		for j < len(valores) && valores[j] == valores[i] {
			j++
		}
		resultado = uint32ToBytes(resultado, uint32(valores[i]))
		resultado = uint32ToBytes(resultado, uint32(j-i))
		i = j
	}
	return resultado
}

// DecodificarSerieEntera invierte CodificarSerieEntera
func DecodificarSerieEntera(datos []byte) ([]int32, error) {
	n, resto, err := leerCabecera(datos)
	if err != nil {
		return nil, err
	}
	if len(resto)%8 != 0 {
		return nil, fmt.Errorf("serie entera con longitud inválida: %d bytes", len(resto))
	}

	valores := make([]int32, 0, min(n, len(resto)))
	for pos := 0; pos < len(resto); pos += 8 {
		valor := int32(bytesToUint32(resto[pos:]))
		repeticiones := int(bytesToUint32(resto[pos+4:]))
		if repeticiones == 0 {
			return nil, fmt.Errorf("racha vacía en el byte %d", pos+4)
		}
		if repeticiones > n-len(valores) {
			return nil, fmt.Errorf("las rachas superan los %d valores declarados", n)
		}
		for k := 0; k < repeticiones; k++ {
			valores = append(valores, valor)
		}
	}
	if len(valores) != n {
		return nil, fmt.Errorf("serie entera con %d valores, se esperaban %d", len(valores), n)
	}
	return valores, nil
}
