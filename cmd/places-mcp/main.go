package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/brukhabtu/places-mcp/internal/common"
	"github.com/brukhabtu/places-mcp/internal/config"
	"github.com/brukhabtu/places-mcp/internal/invoke"
	"github.com/brukhabtu/places-mcp/internal/mcp"
	"github.com/brukhabtu/places-mcp/internal/openapi"
	"github.com/brukhabtu/places-mcp/internal/server"
	"github.com/brukhabtu/places-mcp/internal/tools"
	"github.com/brukhabtu/places-mcp/internal/transport"
)

// bundledSpec is the trimmed Google Maps Platform Places document used when
// no spec file is configured or the configured path does not exist.
//
//go:embed spec/google-places-openapi3.json
var bundledSpec []byte

func main() {
	stdio := flag.Bool("stdio", false, "Use stdio transport (for Claude Desktop)")
	configFile := flag.String("config", "places-mcp.toml", "Path to config file")
	specFile := flag.String("spec", "", "Path to OpenAPI spec file (overrides config)")
	flag.Parse()

	cfg, err := config.LoadFromFile(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	if *specFile != "" {
		cfg.Spec.Path = *specFile
	}

	common.LoadVersionFromFile()

	logger := common.NewLoggerFromConfig(cfg.Logging)

	registry, err := buildRegistry(cfg, logger)
	if err != nil {
		logger.Error().Str("error", err.Error()).Msg("failed to build tool registry")
		os.Exit(1)
	}

	if cfg.API.Key == "" {
		logger.Warn().Msg("no API key configured (GOOGLE_API_KEY unset), requests will fail upstream with an auth status")
	}

	tr := transport.New(transport.Config{
		BaseURL:      cfg.API.BaseURL,
		Timeout:      cfg.API.GetTimeout(),
		DefaultQuery: url.Values{"key": {cfg.API.Key}},
	}, logger)
	inv := invoke.New(tr, logger)

	mcpSrv := mcp.NewServer(cfg.Server.Name, registry, inv, logger)

	if *stdio {
		if err := mcpserver.ServeStdio(mcpSrv); err != nil {
			fmt.Fprintf(os.Stderr, "stdio server error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	handler := mcp.NewHandler(mcpSrv, registry, logger)
	srv := server.New(cfg, handler, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error().Str("error", err.Error()).Msg("HTTP server error")
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := srv.Shutdown(context.Background()); err != nil {
			logger.Error().Str("error", err.Error()).Msg("shutdown error")
		}
	}
}

// buildRegistry loads the specification document and compiles every
// well-formed operation into a registered tool descriptor. Malformed
// entries are skipped with a warning; duplicate names fail the load.
func buildRegistry(cfg *config.Config, logger *common.Logger) (*tools.Registry, error) {
	data, source := loadSpecBytes(cfg.Spec.Path, logger)

	doc, err := openapi.Load(data)
	if err != nil {
		return nil, err
	}
	for _, skipped := range doc.Skipped {
		logger.Warn().Str("error", skipped.Error()).Msg("skipping malformed spec entry")
	}

	descriptors := make([]*tools.Descriptor, 0, len(doc.Operations))
	for _, op := range doc.Operations {
		d, err := tools.Compile(op)
		if err != nil {
			logger.Warn().Str("operation", op.Name).Str("error", err.Error()).Msg("skipping uncompilable operation")
			continue
		}
		descriptors = append(descriptors, d)
	}

	registry, err := tools.NewRegistry(descriptors)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("spec", source).
		Str("title", doc.Title).
		Int("tools", registry.Len()).
		Msg("tool registry built")

	return registry, nil
}

// loadSpecBytes reads the configured spec file, falling back to the
// bundled Places document.
func loadSpecBytes(path string, logger *common.Logger) ([]byte, string) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			return data, path
		}
		logger.Warn().Str("path", path).Str("error", err.Error()).Msg("spec file unreadable, using bundled spec")
	}
	return bundledSpec, "bundled"
}
