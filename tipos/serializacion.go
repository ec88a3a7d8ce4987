package tipos

import (
	"bytes"
	"encoding/gob"
)

// SerializarGob codifica un valor con encoding/gob
func SerializarGob(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DeserializarGob decodifica en v un valor codificado con SerializarGob
func DeserializarGob(datos []byte, v any) error {
	return gob.NewDecoder(bytes.NewReader(datos)).Decode(v)
}
