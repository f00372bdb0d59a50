package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/wbl-planner/internal/catalog"
	"github.com/jonathan/wbl-planner/internal/rendering"
	"github.com/jonathan/wbl-planner/internal/server"
	"github.com/jonathan/wbl-planner/internal/session"
)

// sessionCleanupInterval is how often expired sessions are evicted.
const sessionCleanupInterval = 5 * time.Minute

var (
	servePort  int
	serveNoPDF bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the planner sessions, catalog, suggestions and summary exports.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	serveCmd.Flags().BoolVar(&serveNoPDF, "no-pdf", false, "Disable PDF export")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gateway, err := newGateway(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer gateway.Close() //nolint:errcheck
	if !gateway.Configured() {
		logger.Warn("no LLM API key configured; suggestion routes answer 503")
	}

	cat := catalog.Default()
	sessions := session.NewManager(cat,
		session.WithTTL(cfg.SessionTTL.Std()),
		session.WithLogger(logger),
	)
	sessions.StartCleanup(sessionCleanupInterval)

	srvCfg := server.Config{
		Port:     cfg.Port,
		Catalog:  cat,
		Sessions: sessions,
		Gateway:  gateway,
		Logger:   logger,
	}
	if !serveNoPDF {
		srvCfg.PDF = rendering.NewChromePDF(cfg.ChromePath, cfg.PDFTimeout.Std())
	}

	srv, err := server.New(srvCfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	logger.Info("configuration loaded", "config", cfg.Redacted())
	return srv.Start(ctx)
}
