// Package almacen guarda en una base de datos Pebble local los modelos cargados
// y sus series horarias comprimidas.
package almacen

import (
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/google/uuid"

	"github.com/pachi/visol/compresor"
	"github.com/pachi/visol/modelo"
	"github.com/pachi/visol/tipos"
)

const LOG_ALMACEN = "ALMACEN"

// loggerPrint imprime un mensaje en la consola de log
func loggerPrint(logger string, mensaje string, args ...any) {
	mensaje = "[" + logger + "] " + mensaje
	log.Printf(mensaje, args...)
}

// Prefijos de clave en Pebble
const (
	prefijoCargas   = "cargas/"
	prefijoEdificio = "edificio/"
	prefijoHorario  = "horario/"
)

// Opciones configura la apertura de un Almacen
type Opciones struct {
	Directorio       string                     // Directorio de la base de datos Pebble (requerido)
	CompresionBloque tipos.TipoCompresionBloque // Compresión de las series horarias (default: LZ4)
}

// AplicarDefaults completa los valores no especificados
func (o *Opciones) AplicarDefaults() {
	if o.CompresionBloque == "" {
		o.CompresionBloque = tipos.LZ4
	}
}

// Validar comprueba que las opciones son utilizables
func (o *Opciones) Validar() error {
	if o.Directorio == "" {
		return fmt.Errorf("Directorio es requerido")
	}
	if _, err := tipos.ParsearTipoCompresionBloque(string(o.CompresionBloque)); err != nil {
		return err
	}
	return nil
}

// Carga describe un modelo guardado
type Carga struct {
	ID               string
	Edificio         string
	RutaRes          string
	RutaBin          string
	Plantas          []string
	Zonas            []string
	ZonasHorarias    []string
	CompresionBloque tipos.TipoCompresionBloque // Compresión con que se guardaron las series
	Instante         time.Time
}

// Almacen de modelos sobre Pebble
type Almacen struct {
	db         *pebble.DB
	compresion tipos.TipoCompresionBloque
	mu         sync.RWMutex
	cargas     map[string]Carga // Cache de metadatos por ID
}

// Abrir abre o crea la base de datos y carga los metadatos existentes
func Abrir(opts Opciones) (*Almacen, error) {
	opts.AplicarDefaults()
	if err := opts.Validar(); err != nil {
		return nil, fmt.Errorf("opciones de almacén inválidas: %w", err)
	}

	db, err := pebble.Open(opts.Directorio, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("error al abrir la base de datos %s: %v", opts.Directorio, err)
	}

	a := &Almacen{
		db:         db,
		compresion: opts.CompresionBloque,
		cargas:     make(map[string]Carga),
	}
	if err := a.cargarCargasExistentes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error al cargar metadatos: %v", err)
	}
	loggerPrint(LOG_ALMACEN, "Almacén abierto en %s con %d cargas", opts.Directorio, len(a.cargas))
	return a, nil
}

// cargarCargasExistentes lee todos los metadatos "cargas/*" al cache
func (a *Almacen) cargarCargasExistentes() error {
	iter, err := a.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte(prefijoCargas),
		UpperBound: []byte(limiteSuperior(prefijoCargas)),
	})
	if err != nil {
		return err
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		var carga Carga
		if err := tipos.DeserializarGob(iter.Value(), &carga); err != nil {
			loggerPrint(LOG_ALMACEN, "Ignorando metadatos corruptos en %s: %v", iter.Key(), err)
			continue
		}
		a.cargas[carga.ID] = carga
	}
	return iter.Error()
}

// Cerrar cierra la base de datos
func (a *Almacen) Cerrar() error {
	return a.db.Close()
}

// Guardar almacena el edificio y las series horarias de un modelo en un único lote.
// Devuelve el identificador de la nueva carga.
func (a *Almacen) Guardar(m *modelo.Modelo) (string, error) {
	if m == nil || m.Edificio == nil {
		return "", fmt.Errorf("modelo vacío")
	}

	carga := Carga{
		ID:               uuid.New().String(),
		Edificio:         m.Edificio.Nombre,
		RutaRes:          m.RutaRes,
		RutaBin:          m.RutaBin,
		Zonas:            m.Edificio.NombresZonas(),
		ZonasHorarias:    m.ZonasHorarias(),
		CompresionBloque: a.compresion,
		Instante:         time.Now().UTC(),
	}
	for _, p := range m.Edificio.Plantas {
		carga.Plantas = append(carga.Plantas, p.Nombre)
	}

	batch := a.db.NewBatch()
	defer batch.Close()

	cargaBytes, err := tipos.SerializarGob(carga)
	if err != nil {
		return "", fmt.Errorf("error al serializar carga: %v", err)
	}
	if err := batch.Set(claveCarga(carga.ID), cargaBytes, nil); err != nil {
		return "", err
	}

	edificioBytes, err := tipos.SerializarGob(m.Edificio)
	if err != nil {
		return "", fmt.Errorf("error al serializar edificio: %v", err)
	}
	if err := batch.Set(claveEdificio(carga.ID), edificioBytes, nil); err != nil {
		return "", err
	}

	bloques := 0
	for _, nombre := range carga.ZonasHorarias {
		zona := m.BinData.Zonas[nombre]
		for _, variable := range tipos.VariablesHorarias {
			bloque, err := compresor.ComprimirBloqueSerie(zona, variable, a.compresion)
			if err != nil {
				return "", fmt.Errorf("error al comprimir %s de la zona %s: %v", variable, nombre, err)
			}
			if err := batch.Set(claveSerie(carga.ID, nombre, variable), bloque, nil); err != nil {
				return "", err
			}
			bloques++
		}
	}

	if err := batch.Commit(pebble.Sync); err != nil {
		return "", fmt.Errorf("error al guardar carga: %v", err)
	}

	a.mu.Lock()
	a.cargas[carga.ID] = carga
	a.mu.Unlock()

	loggerPrint(LOG_ALMACEN, "Guardada carga %s de %s (%d bloques horarios, compresión %s)",
		carga.ID, carga.Edificio, bloques, a.compresion)
	return carga.ID, nil
}

// ListarCargas devuelve las cargas guardadas, de la más antigua a la más reciente
func (a *Almacen) ListarCargas() []Carga {
	a.mu.RLock()
	cargas := make([]Carga, 0, len(a.cargas))
	for _, c := range a.cargas {
		cargas = append(cargas, c)
	}
	a.mu.RUnlock()

	sort.Slice(cargas, func(i, j int) bool {
		if !cargas[i].Instante.Equal(cargas[j].Instante) {
			return cargas[i].Instante.Before(cargas[j].Instante)
		}
		return cargas[i].ID < cargas[j].ID
	})
	return cargas
}

// ObtenerCarga retorna los metadatos de una carga
func (a *Almacen) ObtenerCarga(id string) (Carga, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	carga, ok := a.cargas[id]
	if !ok {
		return Carga{}, fmt.Errorf("%w: carga %s", tipos.ErrObjetoNoEncontrado, id)
	}
	return carga, nil
}

// LeerEdificio recupera el edificio de una carga
func (a *Almacen) LeerEdificio(id string) (*tipos.Edificio, error) {
	if _, err := a.ObtenerCarga(id); err != nil {
		return nil, err
	}
	datos, closer, err := a.db.Get(claveEdificio(id))
	if err == pebble.ErrNotFound {
		return nil, fmt.Errorf("%w: edificio de la carga %s", tipos.ErrObjetoNoEncontrado, id)
	}
	if err != nil {
		return nil, fmt.Errorf("error al leer edificio: %v", err)
	}
	defer closer.Close()

	var e tipos.Edificio
	if err := tipos.DeserializarGob(datos, &e); err != nil {
		return nil, fmt.Errorf("error al deserializar edificio: %v", err)
	}
	return &e, nil
}

// LeerSerie recupera una variable horaria de una zona de una carga
func (a *Almacen) LeerSerie(id, zona string, variable tipos.VariableHoraria) ([]float64, error) {
	carga, err := a.ObtenerCarga(id)
	if err != nil {
		return nil, err
	}
	if err := variable.Validar(); err != nil {
		return nil, err
	}
	datos, closer, err := a.db.Get(claveSerie(id, zona, variable))
	if err == pebble.ErrNotFound {
		return nil, fmt.Errorf("%w: zona %s sin datos horarios en la carga %s", tipos.ErrObjetoNoEncontrado, zona, id)
	}
	if err != nil {
		return nil, fmt.Errorf("error al leer serie: %v", err)
	}
	defer closer.Close()

	return compresor.DescomprimirBloqueSerie(datos, variable, carga.CompresionBloque)
}

// Eliminar borra los metadatos, el edificio y todas las series de una carga
func (a *Almacen) Eliminar(id string) error {
	if _, err := a.ObtenerCarga(id); err != nil {
		return err
	}

	batch := a.db.NewBatch()
	defer batch.Close()

	prefijo := prefijoHorario + id + "/"
	if err := batch.DeleteRange([]byte(prefijo), []byte(limiteSuperior(prefijo)), nil); err != nil {
		return err
	}
	if err := batch.Delete(claveEdificio(id), nil); err != nil {
		return err
	}
	if err := batch.Delete(claveCarga(id), nil); err != nil {
		return err
	}
	if err := batch.Commit(pebble.Sync); err != nil {
		return fmt.Errorf("error al eliminar carga: %v", err)
	}

	a.mu.Lock()
	delete(a.cargas, id)
	a.mu.Unlock()

	loggerPrint(LOG_ALMACEN, "Carga eliminada: %s", id)
	return nil
}
