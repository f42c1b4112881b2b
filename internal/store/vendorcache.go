package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"fjacquet/autocat/internal/logging"
	"fjacquet/autocat/internal/models"
	"fjacquet/autocat/internal/parsererror"
	"fjacquet/autocat/internal/textutils"

	"gopkg.in/yaml.v3"
)

type vendorCacheFile struct {
	Entries []models.VendorCacheEntry `yaml:"entries"`
}

// LoadVendorCache reads the cache file. A missing file yields an empty cache.
func (s *RuleStore) LoadVendorCache() (models.VendorCache, error) {
	path, err := s.FindConfigFile(s.cachePath())
	if err != nil {
		if errNotFound(err) {
			s.logger.WithField(logging.FieldInputFile, s.cachePath()).Debug("Vendor cache file not found, starting empty")
			return models.VendorCache{}, nil
		}
		return nil, fmt.Errorf("error resolving vendor cache file: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading vendor cache file: %w", err)
	}

	var f vendorCacheFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, &parsererror.ParseError{Source: path, Field: "yaml", Err: err}
	}

	cache := make(models.VendorCache, len(f.Entries))
	for _, e := range f.Entries {
		key := textutils.Normalize(e.Pattern)
		if key == "" {
			continue
		}
		e.Pattern = key
		cache[key] = e
	}

	s.logger.WithFields(
		logging.F(logging.FieldInputFile, path),
		logging.F(logging.FieldCount, len(cache)),
	).Debug("Loaded vendor cache")
	return cache, nil
}

// SaveVendorCache writes the cache sorted by pattern so diffs stay stable.
func (s *RuleStore) SaveVendorCache(cache models.VendorCache) error {
	path, err := s.FindConfigFile(s.cachePath())
	if err != nil {
		if !errNotFound(err) {
			return fmt.Errorf("error resolving vendor cache file: %w", err)
		}
		path = s.cachePath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	entries := make([]models.VendorCacheEntry, 0, len(cache))
	for _, e := range cache {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Pattern < entries[j].Pattern })

	data, err := yaml.Marshal(vendorCacheFile{Entries: entries})
	if err != nil {
		return fmt.Errorf("error marshaling vendor cache: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing vendor cache: %w", err)
	}

	s.logger.WithFields(
		logging.F(logging.FieldOutputFile, path),
		logging.F(logging.FieldCount, len(entries)),
	).Debug("Saved vendor cache")
	return nil
}

// Learn records a confirmed classification under its normalised pattern.
// An existing entry is replaced and its hit count carried forward.
func Learn(cache models.VendorCache, entry models.VendorCacheEntry) models.VendorCacheEntry {
	key := textutils.Normalize(entry.Pattern)
	entry.Pattern = key
	if prev, ok := cache[key]; ok {
		entry.HitCount = prev.HitCount + 1
	} else if entry.HitCount == 0 {
		entry.HitCount = 1
	}
	cache[key] = entry
	return entry
}
