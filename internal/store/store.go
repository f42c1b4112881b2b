// Package store loads the static rule tables and persists the vendor cache.
package store

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/autocat/internal/logging"
	"fjacquet/autocat/internal/models"
)

//go:embed data/*.yaml
var defaultData embed.FS

const (
	defaultVendorsFile       = "data/vendors.yaml"
	defaultMCCFile           = "data/mcc.yaml"
	defaultCategoryNamesFile = "data/category_names.yaml"
	defaultCacheFile         = "vendor_cache.yaml"
)

// Loader is implemented by RuleStore and by MockStore in tests.
type Loader interface {
	LoadRuleTables() (*RuleTables, error)
	LoadVendorCache() (models.VendorCache, error)
	SaveVendorCache(cache models.VendorCache) error
}

// RuleStore reads rule tables from override files, falling back to the
// embedded defaults, and owns the vendor cache file.
type RuleStore struct {
	VendorsFile       string
	MCCFile           string
	CategoryNamesFile string
	CacheFile         string
	logger            logging.Logger
}

// NewRuleStore creates a store. Empty table paths select the embedded
// defaults.
func NewRuleStore(vendorsFile, mccFile, categoryNamesFile, cacheFile string, logger logging.Logger) *RuleStore {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &RuleStore{
		VendorsFile:       vendorsFile,
		MCCFile:           mccFile,
		CategoryNamesFile: categoryNamesFile,
		CacheFile:         cacheFile,
		logger:            logger,
	}
}

// FindConfigFile looks for a file in the working directory, ./.autocat and
// $HOME/.autocat.
func (s *RuleStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join(".autocat", filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".autocat", filename))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}

// readTable returns the override file's contents, or the embedded default
// when no override is configured or the override cannot be found.
func (s *RuleStore) readTable(table, override, embedded string) ([]byte, string, error) {
	if override != "" {
		path, err := s.FindConfigFile(override)
		if err == nil {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, "", fmt.Errorf("error reading %s table %s: %w", table, path, err)
			}
			return data, path, nil
		}
		s.logger.WithFields(
			logging.F(logging.FieldTable, table),
			logging.F(logging.FieldInputFile, override),
		).Warn("Rule table file not found, using embedded defaults")
	}

	data, err := defaultData.ReadFile(embedded)
	if err != nil {
		return nil, "", fmt.Errorf("error reading embedded %s table: %w", table, err)
	}
	return data, "embedded:" + embedded, nil
}

func (s *RuleStore) cachePath() string {
	if s.CacheFile == "" {
		return defaultCacheFile
	}
	return s.CacheFile
}

// errNotFound reports whether err means the file is absent.
func errNotFound(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
