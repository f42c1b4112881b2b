package categorizer

import (
	"sort"
	"strings"

	"fjacquet/autocat/internal/logging"
	"fjacquet/autocat/internal/models"
	"fjacquet/autocat/internal/textutils"
)

// fromCache returns a result backed by a previously confirmed vendor.
func (c *Categorizer) fromCache(in models.TransactionInput, cache models.VendorCache) (models.AutoCatResult, bool) {
	if len(cache) == 0 {
		return models.AutoCatResult{}, false
	}
	desc := textutils.Normalize(in.Description)
	if desc == "" {
		return models.AutoCatResult{}, false
	}

	key, entry, ok := lookupCache(desc, cache)
	if !ok {
		return models.AutoCatResult{}, false
	}

	confidence := entry.Confidence
	if confidence == 0 {
		confidence = models.ConfidenceExact
	}
	vendor := entry.VendorName
	if vendor == "" {
		vendor = key
	}

	res := models.AutoCatResult{
		Category:          entry.Category,
		VATType:           entry.VATType,
		VATDeductible:     entry.VATDeductible,
		BusinessPurpose:   "Previously confirmed vendor",
		Confidence:        confidence,
		IsBusinessExpense: entry.BusinessExpense,
		Vendor:            vendor,
		MatchSource:       "cache",
	}
	res.AddNote("Matched vendor %s from cache (pattern %q)", vendor, key)

	c.logger.WithFields(
		logging.F(logging.FieldVendor, vendor),
		logging.F(logging.FieldPhase, "cache"),
	).Debug("Vendor cache hit")
	return res, true
}

// lookupCache tries the whole description as a key, then the longest key
// whose tokens appear as a contiguous run of description tokens. Keys of the
// same length are tried in lexical order.
func lookupCache(desc string, cache models.VendorCache) (string, models.VendorCacheEntry, bool) {
	if entry, ok := cache[desc]; ok {
		return desc, entry, true
	}

	keys := make([]string, 0, len(cache))
	for k := range cache {
		if k != "" {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	padded := " " + desc + " "
	for _, k := range keys {
		norm := textutils.Normalize(k)
		if norm == "" {
			continue
		}
		if strings.Contains(padded, " "+norm+" ") {
			return k, cache[k], true
		}
	}
	return "", models.VendorCacheEntry{}, false
}
