// Comando visol: consulta, exporta, almacena y archiva los resultados de
// demanda de un edificio (.res y .bin).
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := nuevoComandoRaiz().Execute(); err != nil {
		os.Exit(1)
	}
}

func nuevoComandoRaiz() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "visol",
		Short:        "Visor de resultados de demanda energética de edificios",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(resumenCmd())
	rootCmd.AddCommand(horarioCmd())
	rootCmd.AddCommand(exportarCmd())
	rootCmd.AddCommand(almacenarCmd())
	rootCmd.AddCommand(archivarCmd())

	return rootCmd
}

func resumenCmd() *cobra.Command {
	var detalle bool
	cmd := &cobra.Command{
		Use:   "resumen [archivo.res]",
		Short: "Muestra plantas, zonas y demandas anuales del edificio",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := CargarConfiguracion()
			if err != nil {
				return err
			}
			return runResumen(cmd.Context(), cmd.OutOrStdout(), cfg, args[0], detalle)
		},
	}
	cmd.Flags().BoolVarP(&detalle, "detalle", "d", false, "Incluye los conceptos de demanda del edificio")
	return cmd
}

func horarioCmd() *cobra.Command {
	var agregaciones []string
	cmd := &cobra.Command{
		Use:   "horario [archivo.res] [zona] [variable]",
		Short: "Muestra el resumen diario de una variable horaria de una zona",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := CargarConfiguracion()
			if err != nil {
				return err
			}
			return runHorario(cmd.OutOrStdout(), cfg, args[0], args[1], args[2], agregaciones)
		},
	}
	cmd.Flags().StringSliceVarP(&agregaciones, "agregacion", "a", nil,
		"Agregaciones diarias (promedio, minimo, maximo, suma, count)")
	return cmd
}

func exportarCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exportar [archivo.res] [salida.xlsx]",
		Short: "Exporta los resultados a un libro XLSX",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := CargarConfiguracion()
			if err != nil {
				return err
			}
			return runExportar(cmd.Context(), cmd.OutOrStdout(), cfg, args[0], args[1])
		},
	}
}

func almacenarCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "almacenar [archivo.res]",
		Short: "Guarda el modelo en el almacén local",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := CargarConfiguracion()
			if err != nil {
				return err
			}
			return runAlmacenar(cmd.Context(), cmd.OutOrStdout(), cfg, args[0])
		},
	}
}

func archivarCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "archivar [archivo.res]",
		Short: "Sube el modelo a un almacenamiento compatible con S3",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := CargarConfiguracion()
			if err != nil {
				return err
			}
			return runArchivar(cmd.Context(), cmd.OutOrStdout(), cfg, args[0])
		},
	}
}
