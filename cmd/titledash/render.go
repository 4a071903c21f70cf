package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	charts "github.com/midbel/titledash"
	"github.com/midbel/titledash/dash"
)

var renderDir string

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Fetch the data once and write every chart as SVG",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRender(cmd.Context(), renderDir)
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderDir, "out", "o", ".", "output directory")
}

func runRender(ctx context.Context, dir string) error {
	src, err := config.DataSource()
	if err != nil {
		return err
	}
	d, err := dash.New(src, dash.WithYear(config.IMDb.Year))
	if err != nil {
		return err
	}
	defer d.Close()

	if err := d.Refresh(ctx); err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "create %s", dir)
	}
	data := pterm.TableData{
		{"chart", "state", "records", "file", "error"},
	}
	for _, m := range d.Mounts() {
		var file, reason string
		if m.State() == charts.StateRendered {
			file = filepath.Join(dir, m.Id+".svg")
			if err := writeChart(file, m); err != nil {
				return err
			}
		}
		if err := m.Err(); err != nil {
			reason = err.Error()
		}
		data = append(data, []string{
			m.Id,
			m.State().String(),
			pterm.Sprint(len(m.Records())),
			file,
			reason,
		})
	}
	if year := d.Year(); year > 0 {
		pterm.Info.Printfln("IMDb scores of %d", year)
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func writeChart(file string, m *dash.Mount) error {
	w, err := os.Create(file)
	if err != nil {
		return errors.Wrapf(err, "create %s", file)
	}
	if err := m.Render(w); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
