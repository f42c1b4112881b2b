// Package container provides dependency injection for the autocat application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"fmt"

	"fjacquet/autocat/internal/batch"
	"fjacquet/autocat/internal/categorizer"
	"fjacquet/autocat/internal/categorymap"
	"fjacquet/autocat/internal/config"
	"fjacquet/autocat/internal/logging"
	"fjacquet/autocat/internal/store"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger      logging.Logger
	config      *config.Config
	store       store.Loader
	tables      *store.RuleTables
	categorizer *categorizer.Categorizer
	resolver    *categorymap.Resolver
	runner      *batch.Runner
}

// NewContainer creates and wires all application dependencies from cfg,
// loading the rule tables from the configured files or the embedded defaults.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	logger := config.ConfigureLoggingFromConfig(cfg)
	ruleStore := store.NewRuleStore(
		cfg.Rules.VendorsFile,
		cfg.Rules.MCCFile,
		cfg.Rules.CategoryNamesFile,
		cfg.Cache.File,
		logger,
	)
	return NewContainerWithStore(cfg, ruleStore, logger)
}

// NewContainerWithStore wires the application around an existing store and
// logger. Tests use it with store.MockStore and logging.MockLogger.
func NewContainerWithStore(cfg *config.Config, loader store.Loader, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if loader == nil {
		return nil, fmt.Errorf("store cannot be nil")
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	tables, err := loader.LoadRuleTables()
	if err != nil {
		return nil, fmt.Errorf("failed to load rule tables: %w", err)
	}

	cat := categorizer.NewCategorizer(tables, logger)
	runner := batch.NewRunner(cat, batch.Options{
		BatchSize: cfg.Batch.Size,
		Workers:   cfg.Batch.Workers,
	}, logger)

	logger.Debug("Container initialized successfully",
		logging.F("rules_version", tables.Version),
		logging.F("vendors", len(tables.Vendors)),
		logging.F("mcc_codes", len(tables.MCC)))

	return &Container{
		logger:      logger,
		config:      cfg,
		store:       loader,
		tables:      tables,
		categorizer: cat,
		resolver:    categorymap.NewResolver(tables.CategoryNames),
		runner:      runner,
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the rule and cache store.
func (c *Container) GetStore() store.Loader {
	return c.store
}

// GetRuleTables returns the loaded rule tables.
func (c *Container) GetRuleTables() *store.RuleTables {
	return c.tables
}

// GetCategorizer returns the container's categorizer instance.
func (c *Container) GetCategorizer() *categorizer.Categorizer {
	return c.categorizer
}

// GetResolver returns the category name resolver.
func (c *Container) GetResolver() *categorymap.Resolver {
	return c.resolver
}

// GetRunner returns the batch runner.
func (c *Container) GetRunner() *batch.Runner {
	return c.runner
}

// Close performs cleanup of container resources.
func (c *Container) Close() error {
	c.logger.Debug("Container closed")
	return nil
}
