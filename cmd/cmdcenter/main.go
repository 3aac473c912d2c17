// @title			Command Center API
// @version		1.0
// @description	Backend for the AI command center dashboard: agent status, activity feed, board snapshot, and financial metrics.
// @BasePath		/api/v1

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/blackboxalchemist/cmdcenter/internal/collector"
	"github.com/blackboxalchemist/cmdcenter/internal/config"
	"github.com/blackboxalchemist/cmdcenter/internal/credentials"
	"github.com/blackboxalchemist/cmdcenter/internal/database"
	"github.com/blackboxalchemist/cmdcenter/internal/handler"
	"github.com/blackboxalchemist/cmdcenter/internal/logger"
	"github.com/blackboxalchemist/cmdcenter/internal/notifier"
	"github.com/blackboxalchemist/cmdcenter/internal/service"
)

func main() {
	app := &cli.App{
		Name:  "cmdcenter",
		Usage: "Backend for the AI command center dashboard",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:     "database-url",
				Aliases:  []string{"d"},
				Value:    config.DefaultDatabaseURL,
				Usage:    "PostgreSQL database URL",
				EnvVars:  []string{"DATABASE_URL"},
				Required: true,
			},
		},
		Before: func(c *cli.Context) error {
			logger.Setup(logger.ParseLevel(c.String("log-level")))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Start the web server and the refresh scheduler",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:    "port",
						Aliases: []string{"p"},
						Value:   config.DefaultPort,
						Usage:   "HTTP server port",
						EnvVars: []string{"PORT"},
					},
					&cli.DurationFlag{
						Name:    "refresh-interval",
						Value:   config.DefaultRefreshInterval,
						Usage:   "Interval between refreshes (0 disables the ticker)",
						EnvVars: []string{"REFRESH_INTERVAL"},
					},
					&cli.BoolFlag{
						Name:    "watch-board",
						Value:   true,
						Usage:   "Refresh when the board file changes",
						EnvVars: []string{"WATCH_BOARD"},
					},
					&cli.StringFlag{
						Name:    "api-token",
						Usage:   "Bearer token for /api/v1 (empty disables auth)",
						EnvVars: []string{"API_TOKEN"},
					},
				}, sourceFlags()...),
				Action: runServe,
			},
			{
				Name:   "refresh",
				Usage:  "Collect from all sources once and export the dashboard document",
				Flags:  sourceFlags(),
				Action: runRefresh,
			},
			{
				Name:   "export",
				Usage:  "Rewrite the dashboard document from stored data without collecting",
				Flags:  sourceFlags(),
				Action: runExport,
			},
			{
				Name:  "check-agents",
				Usage: "Mark stale agents offline and prune old activity entries",
				Flags: []cli.Flag{
					&cli.DurationFlag{
						Name:    "offline-after",
						Value:   config.DefaultOfflineAfter,
						Usage:   "Inactivity after which an agent goes offline",
						EnvVars: []string{"OFFLINE_AFTER"},
					},
					&cli.DurationFlag{
						Name:    "keep-activities",
						Value:   config.DefaultKeepActivities,
						Usage:   "Retention window for activity feed entries",
						EnvVars: []string{"KEEP_ACTIVITIES"},
					},
				},
				Action: runCheckAgents,
			},
		},
		Action: runServe,
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

// sourceFlags are shared by every command that collects or exports.
func sourceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "board-file",
			Value:   config.DefaultBoardFile(),
			Usage:   "Path of the kanban board file",
			EnvVars: []string{"BOARD_FILE"},
		},
		&cli.StringFlag{
			Name:    "export-file",
			Value:   config.DefaultExportFile(),
			Usage:   "Path of the exported dashboard document",
			EnvVars: []string{"EXPORT_FILE"},
		},
		&cli.StringFlag{
			Name:    "airtable-token",
			Usage:   "Airtable API token (falls back to the secrets file)",
			EnvVars: []string{"AIRTABLE_API_KEY"},
		},
		&cli.StringFlag{
			Name:    "airtable-deals-base",
			Value:   config.DefaultDealsBase,
			Usage:   "Airtable base holding the deals table",
			EnvVars: []string{"AIRTABLE_DEALS_BASE"},
		},
		&cli.StringFlag{
			Name:  "airtable-deals-table",
			Value: config.DefaultDealsTable,
			Usage: "Airtable deals table name",
		},
		&cli.StringFlag{
			Name:  "airtable-responses-base",
			Value: config.DefaultResponsesBase,
			Usage: "Airtable base holding the agent responses table",
		},
		&cli.StringFlag{
			Name:  "airtable-responses-table",
			Value: config.DefaultResponsesTable,
			Usage: "Airtable agent responses table name",
		},
		&cli.StringFlag{
			Name:    "sheet-id",
			Value:   config.DefaultSheetID,
			Usage:   "Google Sheets spreadsheet ID of the transaction ledger",
			EnvVars: []string{"TILLER_SHEET_ID"},
		},
		&cli.StringFlag{
			Name:    "sheet-range",
			Value:   config.DefaultSheetRange,
			Usage:   "Sheet range holding transactions",
			EnvVars: []string{"TILLER_SHEET_RANGE"},
		},
		&cli.StringFlag{
			Name:    "google-token-file",
			Value:   config.DefaultGoogleTokenFile(),
			Usage:   "Path of the Google OAuth token JSON",
			EnvVars: []string{"GOOGLE_TOKEN_FILE"},
		},
		&cli.StringFlag{
			Name:    "ghl-url",
			Usage:   "Comms provider API URL (empty uses estimated counters)",
			EnvVars: []string{"GHL_API_URL"},
		},
		&cli.StringFlag{
			Name:    "ghl-token",
			Usage:   "Comms provider API token",
			EnvVars: []string{"GHL_API_TOKEN"},
		},
	}
}

// buildRefresher assembles collectors, status engine, exporter, and the
// refresher from CLI flags.
func buildRefresher(c *cli.Context, db *database.DB, updates *notifier.Notifier) (*service.Refresher, *service.Exporter, error) {
	airtableToken := c.String("airtable-token")
	if airtableToken == "" {
		token, err := credentials.AirtableToken(config.DefaultAirtableSecretsFile())
		if err != nil {
			return nil, nil, fmt.Errorf("load airtable token: %w", err)
		}
		airtableToken = token
	}

	googleToken, err := credentials.GoogleToken(c.String("google-token-file"))
	if err != nil {
		return nil, nil, fmt.Errorf("load google token: %w", err)
	}

	airtable := collector.NewAirtable(collector.AirtableConfig{
		BaseURL:        config.DefaultAirtableBaseURL,
		Token:          airtableToken,
		DealsBase:      c.String("airtable-deals-base"),
		DealsTable:     c.String("airtable-deals-table"),
		ResponsesBase:  c.String("airtable-responses-base"),
		ResponsesTable: c.String("airtable-responses-table"),
	})

	pool := db.Pool()
	exporter := service.NewExporterFromPool(c.String("export-file"), pool)

	refresher := service.NewRefresher(service.RefresherConfig{
		Pool:     pool,
		Board:    collector.NewBoard(c.String("board-file")),
		Deals:    airtable,
		Ledger:   collector.NewSheets(config.DefaultSheetsBaseURL, googleToken, c.String("sheet-id"), c.String("sheet-range")),
		Comms:    collector.NewComms(c.String("ghl-url"), c.String("ghl-token")),
		Status:   service.NewStatusEngine(airtable),
		Exporter: exporter,
		Notifier: updates,
	})

	return refresher, exporter, nil
}

func runServe(c *cli.Context) error {
	ctx := c.Context

	port := c.String("port")
	if port == "" {
		port = config.DefaultPort
	}

	db, err := database.New(ctx, c.String("database-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db.Pool()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	updates := notifier.New()
	refresher, exporter, err := buildRefresher(c, db, updates)
	if err != nil {
		return err
	}

	h := handler.New(db.Pool(), refresher, exporter, updates, c.String("api-token"))

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	server := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      0, // SSE connections stay open
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	scheduler := service.NewScheduler(
		refresher,
		c.Duration("refresh-interval"),
		c.String("board-file"),
		c.Bool("watch-board"),
	)

	runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	eg, egCtx := errgroup.WithContext(runCtx)

	eg.Go(func() error {
		slog.Info("starting server", "server_addr", "http://localhost:"+port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		return scheduler.Run(egCtx)
	})

	eg.Go(func() error {
		<-egCtx.Done()
		slog.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	if err := eg.Wait(); err != nil {
		return err
	}

	slog.Info("server stopped")
	return nil
}

func runRefresh(c *cli.Context) error {
	ctx := c.Context

	db, err := database.New(ctx, c.String("database-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db.Pool()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	refresher, _, err := buildRefresher(c, db, notifier.New())
	if err != nil {
		return err
	}

	if err := refresher.Refresh(ctx); err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}

	slog.Info("refresh finished", "export_file", c.String("export-file"))
	return nil
}

func runExport(c *cli.Context) error {
	ctx := c.Context

	db, err := database.New(ctx, c.String("database-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db.Pool()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	exporter := service.NewExporterFromPool(c.String("export-file"), db.Pool())

	if err := exporter.Export(ctx); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	slog.Info("document exported", "export_file", c.String("export-file"))
	return nil
}

func runCheckAgents(c *cli.Context) error {
	ctx := c.Context

	db, err := database.New(ctx, c.String("database-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db.Pool()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	refresher := service.NewRefresher(service.RefresherConfig{Pool: db.Pool()})

	offlined, pruned, err := refresher.CheckAgents(ctx,
		c.Duration("offline-after"), c.Duration("keep-activities"))
	if err != nil {
		return fmt.Errorf("check agents failed: %w", err)
	}

	slog.Info("maintenance finished",
		"agents_marked_offline", offlined,
		"activities_pruned", pruned)
	return nil
}
