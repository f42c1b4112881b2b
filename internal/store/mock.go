package store

import (
	"fjacquet/autocat/internal/models"
)

// MockStore is an in-memory Loader for tests.
type MockStore struct {
	Tables *RuleTables
	Cache  models.VendorCache
	Saved  models.VendorCache

	LoadTablesError error
	LoadCacheError  error
	SaveCacheError  error
}

// LoadRuleTables returns the configured tables, or the embedded defaults when
// none are set.
func (m *MockStore) LoadRuleTables() (*RuleTables, error) {
	if m.LoadTablesError != nil {
		return nil, m.LoadTablesError
	}
	if m.Tables == nil {
		return DefaultRuleTables()
	}
	return m.Tables, nil
}

// LoadVendorCache returns a copy of the mock cache.
func (m *MockStore) LoadVendorCache() (models.VendorCache, error) {
	if m.LoadCacheError != nil {
		return nil, m.LoadCacheError
	}
	out := make(models.VendorCache, len(m.Cache))
	for k, v := range m.Cache {
		out[k] = v
	}
	return out, nil
}

// SaveVendorCache records the cache it was given.
func (m *MockStore) SaveVendorCache(cache models.VendorCache) error {
	if m.SaveCacheError != nil {
		return m.SaveCacheError
	}
	m.Saved = cache
	m.Cache = cache
	return nil
}
