package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/midbel/titledash/dash"
	"github.com/midbel/titledash/logger"
)

var serveWatch bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runServe(ctx)
	},
}

func init() {
	serveCmd.Flags().BoolVarP(&serveWatch, "watch", "w", false, "refresh the charts when the workbook changes")
}

func runServe(ctx context.Context) error {
	src, err := config.DataSource()
	if err != nil {
		return err
	}
	d, err := dash.New(src, dash.WithYear(config.IMDb.Year))
	if err != nil {
		return err
	}
	defer d.Close()

	log := logger.Named("serve")
	if err := d.Refresh(ctx); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return dash.NewServer(d, nil).ListenAndServe(ctx, config.Server.Addr)
	})
	if serveWatch {
		if config.Source.Workbook == "" {
			log.Warnw("nothing to watch: no workbook configured")
		} else {
			w, err := dash.NewWatcher(config.Source.Workbook, d)
			if err != nil {
				return err
			}
			g.Go(func() error {
				return w.Watch(ctx)
			})
		}
	}
	return g.Wait()
}
