package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/SaiNageswarS/go-api-boot/dotenv"
	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/go-api-boot/server"
	"github.com/SaiNageswarS/lab-tutor-gateway/appconfig"
	"github.com/SaiNageswarS/lab-tutor-gateway/catalog"
	"github.com/SaiNageswarS/lab-tutor-gateway/controller"
	"github.com/SaiNageswarS/lab-tutor-gateway/mcp"
	"github.com/SaiNageswarS/lab-tutor-gateway/metrics"
	"github.com/SaiNageswarS/lab-tutor-gateway/middleware"
	"github.com/SaiNageswarS/lab-tutor-gateway/provider"
	"github.com/SaiNageswarS/lab-tutor-gateway/tutor"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func main() {
	dotenv.LoadEnv()

	cfg, err := appconfig.Load("config.ini")
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	labs, err := loadCatalog(cfg)
	if err != nil {
		logger.Fatal("Failed to load lab catalog", zap.Error(err))
	}

	completion, err := provider.New(cfg)
	if err != nil {
		logger.Fatal("Failed to create completion service", zap.Error(err))
	}

	promMetrics := metrics.NewProm(cfg.MetricsNamespace, prometheus.DefaultRegisterer)

	logger.Info("Starting lab tutor gateway",
		zap.String("httpPort", cfg.HTTPPort),
		zap.String("completionProvider", completion.Name()),
		zap.Strings("skills", labs.Skills()))

	builder, err := newServer(cfg, labs, completion, promMetrics)
	if err != nil {
		logger.Fatal("Failed to configure server", zap.Error(err))
	}

	boot, err := builder.Build()
	if err != nil {
		logger.Fatal("Dependency Injection Failed", zap.Error(err))
	}

	ctx := getCancellableContext()
	boot.Serve(ctx)
}

// newServer wires the tutor into the go-api-boot builder. The builder applies
// the CORS policy to REST routes and serves /metrics and /health itself.
func newServer(cfg *appconfig.AppConfig, labs *catalog.Catalog, completion tutor.CompletionService, promMetrics *metrics.Prom) (*server.Builder, error) {
	corsPolicy := middleware.NewCORS(cfg.AllowedOrigins)
	pipeline := middleware.NewPipeline(promMetrics)

	originCheck, err := middleware.NewCrossOriginProtection(cfg.AllowedOrigins)
	if err != nil {
		return nil, err
	}

	return server.New().
		GRPCPort(cfg.GRPCPort).
		HTTPPort(cfg.HTTPPort).
		CORS(corsPolicy).
		ProvideFunc(func() *catalog.Catalog { return labs }).
		ProvideFunc(func() tutor.CompletionService { return completion }).
		ProvideFunc(func() *metrics.Prom { return promMetrics }).
		ProvideFunc(func() *middleware.Pipeline { return pipeline }).
		ProvideFunc(tutor.ProvideOrchestrator).
		AddRestController(controller.ProvideHealthController).
		AddRestController(controller.ProvideLabController).
		AddRestController(controller.ProvideChatController).
		WithMCP(mcp.Implementation, nil).
		MCPHTTPOptions(&sdkmcp.StreamableHTTPOptions{CrossOriginProtection: originCheck}).
		WithMCPMiddleware(pipeline.Middleware("/mcp", corsPolicy)).
		AddMCPConfigurator(mcp.NewTutorServer), nil
}

func loadCatalog(cfg *appconfig.AppConfig) (*catalog.Catalog, error) {
	if cfg.CatalogPath != "" {
		return catalog.LoadFile(cfg.CatalogPath)
	}
	return catalog.Load()
}

func getCancellableContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sig
		cancel()
	}()

	return ctx
}
