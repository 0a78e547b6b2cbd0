package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"salespulse/internal/app"
	"salespulse/internal/chart"
	"salespulse/internal/config"
	"salespulse/internal/exporter"
	"salespulse/internal/infrastructure"
	"salespulse/internal/services"
)

// options holds the persistent flags shared by every command
type options struct {
	configPath string
	file       string
	sheet      string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "salespulse",
		Short:         "Sales transaction dashboard",
		Version:       config.AppVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&opts.file, "file", "", "read sales rows from a local .csv or .xlsx file")
	root.PersistentFlags().StringVar(&opts.sheet, "sheet", "", "worksheet to read when --file is an .xlsx workbook")

	root.AddCommand(newServeCmd(opts), newRenderCmd(opts), newExportCmd(opts))
	return root
}

// load reads the configuration, applies flag overrides and initializes the
// global logger
func (o *options) load() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, nil, err
	}

	if o.file != "" {
		cfg.Source.Kind = config.SourceFile
		cfg.Source.Path = o.file
		cfg.Source.Sheet = o.sheet
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, logger, nil
}

func newServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard and its API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := opts.load()
			if err != nil {
				return err
			}

			application, err := app.NewApplication(cmd.Context(), cfg, logger)
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			return application.Run()
		},
	}
}

func newRenderCmd(opts *options) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Build the dashboard once and write index.html, chart SVGs and CSV tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := opts.load()
			if err != nil {
				return err
			}
			if out == "" {
				out = cfg.Render.OutputDir
			}

			return withDashboard(cmd.Context(), cfg, logger, func(d *services.Dashboard) error {
				return renderDashboard(cmd.Context(), cfg, logger, d, out)
			})
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output directory (defaults to render.output_dir)")
	return cmd
}

func newExportCmd(opts *options) *cobra.Command {
	var (
		out    string
		format string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Build the aggregates once and export them as CSV files or an Excel workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != "csv" && format != "xlsx" {
				return fmt.Errorf("unsupported export format %q (want csv or xlsx)", format)
			}

			cfg, logger, err := opts.load()
			if err != nil {
				return err
			}
			if out == "" {
				out = cfg.Render.OutputDir
			}

			return withDashboard(cmd.Context(), cfg, logger, func(d *services.Dashboard) error {
				return exportTables(cfg, logger, d, format, out)
			})
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output directory (defaults to render.output_dir)")
	cmd.Flags().StringVarP(&format, "format", "f", "csv", "export format: csv or xlsx")
	return cmd
}

// withDashboard builds one dashboard from the configured source and hands it
// to fn, flushing telemetry afterwards
func withDashboard(ctx context.Context, cfg *config.Config, logger *slog.Logger, fn func(*services.Dashboard) error) error {
	pipeline, err := app.NewPipeline(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := pipeline.OTelProviders.Shutdown(context.Background()); err != nil {
			logger.Warn("Failed to shut down telemetry", slog.String("error", err.Error()))
		}
	}()

	dashboard, err := pipeline.Reports.Build(ctx)
	if err != nil {
		return err
	}
	return fn(dashboard)
}

func renderDashboard(ctx context.Context, cfg *config.Config, logger *slog.Logger, d *services.Dashboard, out string) error {
	if err := os.MkdirAll(out, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	page, err := os.Create(filepath.Join(out, "index.html"))
	if err != nil {
		return fmt.Errorf("failed to create index.html: %w", err)
	}
	if err := writePage(page, exporter.NewHTMLRenderer(cfg.Render.PageTitle), d.Board); err != nil {
		return err
	}

	if err := exporter.NewSVGRenderer(logger).WriteTargets(ctx, filepath.Join(out, "svg"), d.Board.All()); err != nil {
		return fmt.Errorf("failed to write charts: %w", err)
	}

	if err := exporter.NewCSVWriter(filepath.Join(out, "tables"), logger).WriteTables(d.Report.Tables(), cfg.Render.CSVWithBOM); err != nil {
		return fmt.Errorf("failed to write tables: %w", err)
	}

	logger.Info("Dashboard rendered",
		slog.String("out", out),
		slog.Int("charts", len(d.Board.All())),
		slog.Int("records", d.Report.Summary.Records))
	return nil
}

// writePage renders board into page and closes it, reporting a failed close
func writePage(page io.WriteCloser, renderer *exporter.HTMLRenderer, board *chart.Board) error {
	if err := renderer.Render(page, board); err != nil {
		page.Close()
		return err
	}
	if err := page.Close(); err != nil {
		return fmt.Errorf("failed to write index.html: %w", err)
	}
	return nil
}

func exportTables(cfg *config.Config, logger *slog.Logger, d *services.Dashboard, format, out string) error {
	tables := d.Report.Tables()

	switch format {
	case "xlsx":
		path := filepath.Join(out, "salespulse.xlsx")
		if err := os.MkdirAll(out, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		if err := exporter.SaveWorkbook(path, tables); err != nil {
			return err
		}
		logger.Info("Workbook exported", slog.String("path", path), slog.Int("sheets", len(tables)))
	default:
		if err := exporter.NewCSVWriter(out, logger).WriteTables(tables, cfg.Render.CSVWithBOM); err != nil {
			return err
		}
		logger.Info("Tables exported", slog.String("out", out), slog.Int("tables", len(tables)))
	}
	return nil
}
