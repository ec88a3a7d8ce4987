package compresor

import "fmt"

// Utilidades para conversión de bytes (little-endian, como el archivo .bin)

// uint32ToBytes añade 4 bytes a dst
func uint32ToBytes(dst []byte, u uint32) []byte {
	return append(dst, byte(u), byte(u>>8), byte(u>>16), byte(u>>24))
}

// bytesToUint32 lee 4 bytes; no comprueba la longitud
func bytesToUint32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

// leerCabecera lee el número de valores de una serie codificada y devuelve el resto
func leerCabecera(datos []byte) (int, []byte, error) {
	if len(datos) < 4 {
		return 0, nil, fmt.Errorf("datos insuficientes para la cabecera: %d bytes", len(datos))
	}
	return int(bytesToUint32(datos)), datos[4:], nil
}
