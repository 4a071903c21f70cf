package main

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/midbel/titledash/dash"
	"github.com/midbel/titledash/logger"
)

var (
	configFile string
	config     dash.Config
)

var rootCmd = &cobra.Command{
	Use:   "titledash",
	Short: "titledash - charts of a catalog of movies and shows",
	Long: `titledash - draws the charts of a catalog of movies and shows.

The aggregates are read from the backend API or from a workbook and drawn as
SVG charts: titles per release year, age certifications, runtimes, genres and
the IMDb score of the titles of one year.

Examples:
  titledash serve                  # serve the dashboard
  titledash serve --watch          # reload when the workbook changes
  titledash render --out charts    # write one SVG per chart`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		v, err := dash.NewViper(configFile)
		if err != nil {
			return err
		}
		if config, err = dash.Load(v); err != nil {
			return err
		}
		if err := logger.Initialize(config.Log.JSON, config.Log.Level); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "configuration file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(renderCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if hint := errors.FlattenHints(err); hint != "" {
			fmt.Fprintln(os.Stderr, "hint:", hint)
		}
		os.Exit(1)
	}
}
