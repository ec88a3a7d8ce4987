package tipos

// TipoObjeto identifica el tipo de objeto seleccionado en el árbol del edificio
type TipoObjeto int

const (
	ObjetoNinguno TipoObjeto = iota
	ObjetoEdificio
	ObjetoPlanta
	ObjetoZona
	ObjetoElemento
)

func (t TipoObjeto) String() string {
	switch t {
	case ObjetoEdificio:
		return "EDIFICIO"
	case ObjetoPlanta:
		return "PLANTA"
	case ObjetoZona:
		return "ZONA"
	case ObjetoElemento:
		return "ELEMENTO"
	default:
		return ""
	}
}

// ParsearTipoObjeto convierte un nombre (EDIFICIO, PLANTA, ZONA, ELEMENTO) en TipoObjeto
func ParsearTipoObjeto(s string) TipoObjeto {
	for _, t := range []TipoObjeto{ObjetoEdificio, ObjetoPlanta, ObjetoZona, ObjetoElemento} {
		if t.String() == s {
			return t
		}
	}
	return ObjetoNinguno
}
