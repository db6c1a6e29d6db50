package main

import (
	"os/signal"
	"syscall"

	"cyberbro/internal/handler"
	"cyberbro/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard and JSON API",
	Long: `Warms up the toxicity model and serves the analyzer dashboard,
the history view and the /api/v1 JSON endpoints.

Example:
  cyberbro serve --port 8501`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "Port to listen on (overrides server.port)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting Cyberbro analyzer...")

	a, err := newApp(ctx, cmd.Flags().Changed("config"), true)
	if err != nil {
		logger.Fatal("Failed to initialize analyzer", zap.Error(err))
	}
	defer a.Close()

	if !verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	h := handler.NewHandler(a.analyzer, a.classifier, handler.Options{
		HistoryPath:    a.cfg.History.Path,
		ExportFilename: a.cfg.History.ExportFilename,
		MaxUploadBytes: a.cfg.Upload.MaxBytes,
	}, logger)

	srv, err := server.NewServer(h, logger)
	if err != nil {
		return err
	}

	port := a.cfg.Server.Port
	if servePort != "" {
		port = servePort
	}

	return srv.Run(ctx, port)
}
