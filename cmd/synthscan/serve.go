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

	"github.com/spf13/cobra"

	"github.com/mkrasov/synthscan"
	"github.com/mkrasov/synthscan/internal/config"
	"github.com/mkrasov/synthscan/internal/httpserver"
	"github.com/mkrasov/synthscan/tesseract"
)

var (
	serveConfigPath string
	serveAddr       string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the analysis HTTP server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveConfigPath, "config", "c", "", "path to config.yaml")
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config port)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := config.Default()
	if serveConfigPath != "" {
		loaded, err := config.Load(serveConfigPath)
		if err != nil {
			return fmt.Errorf("config load: %w", err)
		}
		cfg = loaded
	}

	analyzer := &synthscan.Config{
		Rules: cfg.Rules(),
		OnPanic: func(tag string, r any) {
			slog.Warn("extractor recovered", "extractor", tag, "panic", r)
		},
	}
	if cfg.Analyzer.EnableOCR {
		engine := tesseract.New()
		defer engine.Close()
		analyzer.OCR = engine
	}

	addr := serveAddr
	if addr == "" {
		addr = fmt.Sprintf(":%d", cfg.Server.Port)
	}

	srv := &http.Server{
		Addr:         addr,
		Handler:      httpserver.NewRouter(analyzer, cfg.Server.AllowedOrigins),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", addr, "ocr", cfg.Analyzer.EnableOCR)
		errCh <- srv.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-stop:
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
