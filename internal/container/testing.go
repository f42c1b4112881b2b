package container

import (
	"fjacquet/autocat/internal/config"
	"fjacquet/autocat/internal/logging"
	"fjacquet/autocat/internal/models"
	"fjacquet/autocat/internal/store"
)

// DefaultConfig returns the configuration InitializeConfig produces when no
// file or environment overrides are present.
func DefaultConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.CSV.Delimiter = ","
	cfg.Cache.File = "vendor_cache.yaml"
	cfg.Batch.Size = 100
	cfg.Batch.Workers = 4
	cfg.Defaults.AccountType = string(models.AccountLimitedCompany)
	return cfg
}

// NewTestContainer wires a container with default settings around loader.
func NewTestContainer(loader store.Loader, logger logging.Logger) (*Container, error) {
	return NewContainerWithStore(DefaultConfig(), loader, logger)
}
