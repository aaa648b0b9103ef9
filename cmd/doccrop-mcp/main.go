package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/ironsheep/doccrop-mcp/internal/batch"
	"github.com/ironsheep/doccrop-mcp/internal/config"
	"github.com/ironsheep/doccrop-mcp/internal/document"
	"github.com/ironsheep/doccrop-mcp/internal/metrics"
	"github.com/ironsheep/doccrop-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func usage() {
	fmt.Println("doccrop-mcp - MCP server locating documents in scanned images")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  doccrop-mcp [options]          Serve MCP over stdin/stdout")
	fmt.Println("  doccrop-mcp batch <path>       Identify every scan in a file or directory")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables (also read from ./.env):")
	fmt.Printf("  %s=debug       Log level\n", config.EnvLogLevel)
	fmt.Printf("  %s=:9090    Serve Prometheus metrics\n", config.EnvMetricsAddr)
	fmt.Printf("  %s=600    Identification working size\n", config.EnvWorkingSize)
	fmt.Printf("  %s=SIMPLE  Batch correction (SIMPLE or COMPLEX)\n", config.EnvDocumentBehavior)
	fmt.Println()
	fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
	fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
}

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("doccrop-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			usage()
			return
		}
	}

	// stdout is for MCP protocol
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	logrus.SetLevel(cfg.LogLevel)
	log := logrus.WithField("version", Version)
	log.WithFields(logrus.Fields{"built": BuildTime, "commit": GitCommit}).Debug("doccrop-mcp starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var m *metrics.Metrics
	if cfg.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		m = metrics.New(reg)
		srv := &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           metrics.Handler(reg),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			log.WithField("addr", cfg.MetricsAddr).Info("serving metrics")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.WithError(err).Error("metrics server stopped")
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	if len(os.Args) > 1 && os.Args[1] == "batch" {
		if len(os.Args) < 3 {
			usage()
			os.Exit(2)
		}
		if err := runBatch(ctx, cfg, m, log, os.Args[2]); err != nil {
			log.WithError(err).Error("batch failed")
			os.Exit(1)
		}
		return
	}

	server.ServerVersion = Version
	srv := server.New(
		server.WithConfig(cfg),
		server.WithMetrics(m),
		server.WithLogger(log.WithField("component", "server")),
	)
	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Fatal("server error")
	}
}

// runBatch identifies every scan under path and writes the report next to
// the scans.
func runBatch(ctx context.Context, cfg *config.Config, m *metrics.Metrics, log *logrus.Entry, path string) error {
	runner := batch.NewRunner(cfg.Batch,
		batch.WithIdentifyOptions(cfg.IdentifyOptions()...),
		batch.WithMetrics(m),
		batch.WithLogger(log.WithField("batch", path)),
		batch.WithProgress(func(done, total int, doc *document.Document) {
			entry := log.WithFields(logrus.Fields{"done": done, "total": total})
			if doc != nil {
				entry = entry.WithField("document", doc.String())
			}
			entry.Info("scan processed")
		}),
	)
	rep, err := runner.RunPath(ctx, path)
	if err != nil {
		return err
	}
	out, err := batch.WriteReport(rep, rep.Dir, document.SimplePrinter{})
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"run":       rep.RunID,
		"documents": len(rep.Documents),
		"exhausted": rep.Exhausted,
		"failures":  len(rep.Failures),
		"report":    out,
	}).Info("batch complete")
	return nil
}
