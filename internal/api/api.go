// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"fmt"
	"net/http"

	"github.com/aarnav1729/qap/internal/catalog"
	"github.com/aarnav1729/qap/internal/config"
	"github.com/aarnav1729/qap/internal/infrastructure"
	"github.com/aarnav1729/qap/pkg/middleware"
	"github.com/aarnav1729/qap/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	cat, err := loadCatalog(cfg)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	runtime.Logger.Info("catalog loaded",
		"mqp", len(cat.MQP),
		"visual_el", len(cat.VisualEL),
	)

	mux := http.NewServeMux()
	registerRoutes(mux, domain, cat)

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))

	return m, nil
}

func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.Catalog.Path != "" {
		return catalog.LoadFile(cfg.Catalog.Path)
	}
	return catalog.Load()
}
