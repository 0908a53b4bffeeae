package appconfig

import (
	"errors"
	"fmt"
	"os"

	"github.com/SaiNageswarS/go-api-boot/config"
	"github.com/go-ini/ini"
)

type AppConfig struct {
	config.BootConfig `ini:",extends"`

	HTTPPort string `ini:"http_port"`
	GRPCPort string `ini:"grpc_port"`

	CompletionProvider       string `ini:"completion_provider"` // openai | anthropic
	CompletionModel          string `ini:"completion_model"`    // empty picks the provider default
	CompletionBaseURL        string `ini:"completion_base_url"`
	CompletionTimeoutSeconds int    `ini:"completion_timeout_seconds"`

	AllowedOrigins   []string `ini:"allowed_origins" delim:","`
	CatalogPath      string   `ini:"catalog_path"` // empty uses the embedded catalog
	MetricsNamespace string   `ini:"metrics_namespace"`
}

func Default() *AppConfig {
	return &AppConfig{
		HTTPPort:                 ":8000",
		GRPCPort:                 ":50051",
		CompletionProvider:       "openai",
		CompletionBaseURL:        "https://api.openai.com/v1",
		CompletionTimeoutSeconds: 60,
		AllowedOrigins:           []string{"http://localhost:3001", "http://localhost:3000"},
		MetricsNamespace:         "tutor",
	}
}

// Load overlays the keys present in the INI file at path on top of Default.
// A missing file is not an error.
func Load(path string) (*AppConfig, error) {
	cfg := Default()

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}

	if err := ini.MapTo(cfg, path); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}
