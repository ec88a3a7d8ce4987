package almacen

import "github.com/pachi/visol/tipos"

func claveCarga(id string) []byte {
	return []byte(prefijoCargas + id)
}

func claveEdificio(id string) []byte {
	return []byte(prefijoEdificio + id)
}

// claveSerie genera la clave de un bloque horario: horario/<id>/<zona>/<variable>
func claveSerie(id, zona string, variable tipos.VariableHoraria) []byte {
	return []byte(prefijoHorario + id + "/" + zona + "/" + string(variable))
}

// limiteSuperior devuelve el menor valor mayor que todas las claves con el prefijo
// (el prefijo termina en '/', y '0' es el byte siguiente)
func limiteSuperior(prefijo string) string {
	return prefijo[:len(prefijo)-1] + "0"
}
