package tipos

import (
	"errors"
	"fmt"
)

var (
	// ErrBinarioTruncado indica que el archivo .bin tiene menos bytes de los declarados
	ErrBinarioTruncado = errors.New("archivo binario truncado")
	// ErrObjetoNoEncontrado indica una consulta sobre un nombre inexistente
	ErrObjetoNoEncontrado = errors.New("objeto no encontrado")
	// ErrVariableDesconocida indica una variable horaria no reconocida
	ErrVariableDesconocida = errors.New("variable horaria desconocida")
)

// ErrorFormato describe un error fatal al interpretar un archivo de resultados.
// Incluye la sección que se analizaba, lo que se buscaba y la línea problemática.
type ErrorFormato struct {
	Seccion  string // Sección del archivo (p.e. "plantas y zonas")
	Buscando string // Marcador o fila esperada
	Linea    string // Contenido de la línea problemática ("" si se alcanzó el final)
	NumLinea int    // Número de línea (1-based), 0 si se desconoce
	Err      error  // Causa, si la hay
}

func (e *ErrorFormato) Error() string {
	msg := fmt.Sprintf("formato incorrecto en %s: buscando %s", e.Seccion, e.Buscando)
	if e.NumLinea > 0 {
		msg += fmt.Sprintf(" (línea %d: %q)", e.NumLinea, e.Linea)
	} else {
		msg += " (fin de archivo)"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ErrorFormato) Unwrap() error {
	return e.Err
}

// ErrorES envuelve un error de lectura de archivo con su ruta
type ErrorES struct {
	Ruta string
	Err  error
}

func (e *ErrorES) Error() string {
	return fmt.Sprintf("error al leer %s: %v", e.Ruta, e.Err)
}

func (e *ErrorES) Unwrap() error {
	return e.Err
}
