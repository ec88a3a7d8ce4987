package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/pachi/visol/almacen"
	"github.com/pachi/visol/informe"
	"github.com/pachi/visol/modelo"
	"github.com/pachi/visol/notificador"
	"github.com/pachi/visol/nube"
	"github.com/pachi/visol/tipos"
)

// Sustituibles en los tests
var (
	conectarArchivador = nube.Conectar
	conectarPublicador = notificador.Conectar
)

func cargarModelo(cfg Configuracion, ruta string) (*modelo.Modelo, error) {
	m, err := modelo.Cargar(ruta, cfg.OpcionesModelo())
	if err != nil {
		return nil, fmt.Errorf("error al cargar %s: %w", ruta, err)
	}
	return m, nil
}

func runResumen(ctx context.Context, w io.Writer, cfg Configuracion, ruta string, detalle bool) error {
	m, err := cargarModelo(cfg, ruta)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "OBJETO\tMULT.\tSUPERFICIE [m²]\tCAL. [kWh/m²·año]\tREF. [kWh/m²·año]")

	fila := func(sangria string, tipo tipos.TipoObjeto, nombre string) error {
		d, err := m.DatosBasicos(tipo, nombre)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s%s\t%d\t%.2f\t%.2f\t%.2f\n",
			sangria, nombre, d.Multiplicador, d.Superficie, d.Calefaccion, d.Refrigeracion)
		return nil
	}

	if err := fila("", tipos.ObjetoEdificio, m.Edificio.Nombre); err != nil {
		return err
	}
	for _, planta := range m.Arbol() {
		if err := fila("  ", tipos.ObjetoPlanta, planta.Nombre); err != nil {
			return err
		}
		for _, zona := range planta.Zonas {
			if err := fila("    ", tipos.ObjetoZona, zona.Nombre); err != nil {
				return err
			}
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	switch {
	case m.TieneDatosHorarios():
		fmt.Fprintf(w, "\nDatos horarios: %s (%d zonas)\n", m.RutaBin, len(m.ZonasHorarias()))
	case m.ErrorBin != nil:
		fmt.Fprintf(w, "\nSin datos horarios: %v\n", m.ErrorBin)
	default:
		fmt.Fprintln(w, "\nSin datos horarios")
	}

	notificar(ctx, w, cfg, notificador.NuevoEvento(notificador.EventoModeloCargado, m, ""))
	if !detalle {
		return nil
	}
	conceptos, err := m.Conceptos(tipos.ObjetoEdificio, m.Edificio.Nombre)
	if err != nil {
		return err
	}
	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CONCEPTO\tCALPOS\tCALNEG\tCALNET\tREFPOS\tREFNEG\tREFNET")
	for i, flujos := range conceptos.Lista() {
		v := flujos.Valores()
		fmt.Fprintf(tw, "%s\t%.1f\t%.1f\t%.1f\t%.1f\t%.1f\t%.1f\n",
			tipos.NombresConceptos[i], v[0], v[1], v[2], v[3], v[4], v[5])
	}
	return tw.Flush()
}

func parsearAgregaciones(nombres []string) ([]tipos.TipoAgregacion, error) {
	validas := []tipos.TipoAgregacion{
		tipos.AgregacionPromedio, tipos.AgregacionMinimo, tipos.AgregacionMaximo,
		tipos.AgregacionSuma, tipos.AgregacionCount,
	}
	var agregaciones []tipos.TipoAgregacion
	for _, nombre := range nombres {
		encontrada := false
		for _, a := range validas {
			if strings.EqualFold(nombre, string(a)) {
				agregaciones = append(agregaciones, a)
				encontrada = true
				break
			}
		}
		if !encontrada {
			return nil, fmt.Errorf("agregación desconocida: %q", nombre)
		}
	}
	return agregaciones, nil
}

func runHorario(w io.Writer, cfg Configuracion, ruta, zona, variable string, nombresAgregaciones []string) error {
	agregaciones, err := parsearAgregaciones(nombresAgregaciones)
	if err != nil {
		return err
	}
	v := tipos.VariableHoraria(strings.ToLower(variable))
	if err := v.Validar(); err != nil {
		return err
	}
	m, err := cargarModelo(cfg, ruta)
	if err != nil {
		return err
	}
	resumen, err := m.ResumenDiario(zona, v, agregaciones...)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	cabecera := []string{"DIA"}
	for _, a := range resumen.Agregaciones {
		cabecera = append(cabecera, strings.ToUpper(string(a)))
	}
	fmt.Fprintln(tw, strings.Join(cabecera, "\t")+"\t")
	for dia := range resumen.Valores[0] {
		celdas := []string{fmt.Sprintf("%d", dia+1)}
		for i := range resumen.Agregaciones {
			celdas = append(celdas, fmt.Sprintf("%.2f", resumen.Valores[i][dia]))
		}
		fmt.Fprintln(tw, strings.Join(celdas, "\t")+"\t")
	}
	return tw.Flush()
}

func runExportar(ctx context.Context, w io.Writer, cfg Configuracion, ruta, salida string) error {
	m, err := cargarModelo(cfg, ruta)
	if err != nil {
		return err
	}
	if err := informe.Exportar(m, salida); err != nil {
		return err
	}
	fmt.Fprintf(w, "Informe de %s exportado a %s\n", m.Edificio.Nombre, salida)

	notificar(ctx, w, cfg, notificador.NuevoEvento(notificador.EventoModeloCargado, m, salida))
	return nil
}

// notificar publica un evento si hay destino configurado. Un fallo al publicar
// no deshace la operación ya realizada.
func notificar(ctx context.Context, w io.Writer, cfg Configuracion, evento notificador.Evento) {
	if !cfg.Notificador.Habilitado() {
		return
	}
	pub, err := conectarPublicador(cfg.Notificador)
	if err != nil {
		fmt.Fprintf(w, "Aviso: no se pudo conectar con el notificador: %v\n", err)
		return
	}
	defer pub.Cerrar()
	if err := pub.Publicar(ctx, evento); err != nil {
		fmt.Fprintf(w, "Aviso: no se pudo publicar el evento: %v\n", err)
	}
}

func runAlmacenar(ctx context.Context, w io.Writer, cfg Configuracion, ruta string) error {
	opts, err := cfg.OpcionesAlmacen()
	if err != nil {
		return err
	}
	m, err := cargarModelo(cfg, ruta)
	if err != nil {
		return err
	}

	a, err := almacen.Abrir(opts)
	if err != nil {
		return err
	}
	defer a.Cerrar()

	id, err := a.Guardar(m)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Modelo %s guardado con id %s (%d cargas en %s)\n",
		m.Edificio.Nombre, id, len(a.ListarCargas()), opts.Directorio)

	notificar(ctx, w, cfg, notificador.NuevoEvento(notificador.EventoModeloAlmacenado, m, id))
	return nil
}

func runArchivar(ctx context.Context, w io.Writer, cfg Configuracion, ruta string) error {
	cfg.S3.AplicarDefaults()
	if err := cfg.S3.Validar(); err != nil {
		return err
	}
	m, err := cargarModelo(cfg, ruta)
	if err != nil {
		return err
	}

	archivador, err := conectarArchivador(ctx, cfg.S3)
	if err != nil {
		return err
	}
	archivo, err := archivador.Archivar(ctx, m)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Modelo %s archivado en s3://%s/%s\n", m.Edificio.Nombre, cfg.S3.Bucket, archivo.Prefijo)
	for _, clave := range archivo.Claves {
		fmt.Fprintf(w, "  %s\n", clave)
	}

	notificar(ctx, w, cfg, notificador.NuevoEvento(notificador.EventoModeloArchivado, m, archivo.Prefijo))
	return nil
}
