package config

import (
	"fmt"
	"os"
)

const EnvCatalogPath = "QAP_CATALOG_PATH"

// CatalogConfig controls where the baseline criteria catalog is loaded from.
// An empty Path uses the embedded catalog.
type CatalogConfig struct {
	Path string `toml:"path"`
}

// Finalize applies environment variable overrides and validation.
func (c *CatalogConfig) Finalize() error {
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *CatalogConfig) Merge(overlay *CatalogConfig) {
	if overlay.Path != "" {
		c.Path = overlay.Path
	}
}

func (c *CatalogConfig) loadEnv() {
	if v := os.Getenv(EnvCatalogPath); v != "" {
		c.Path = v
	}
}

func (c *CatalogConfig) validate() error {
	if c.Path == "" {
		return nil
	}
	if _, err := os.Stat(c.Path); err != nil {
		return fmt.Errorf("catalog path %s: %w", c.Path, err)
	}
	return nil
}
