package cache

import (
	"bytes"
	"errors"
	"testing"

	"fjacquet/autocat/internal/container"
	"fjacquet/autocat/internal/logging"
	"fjacquet/autocat/internal/models"
	"fjacquet/autocat/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContainer(t *testing.T, mock *store.MockStore) (*container.Container, *logging.MockLogger) {
	t.Helper()
	logger := logging.NewMockLogger()
	c, err := container.NewTestContainer(mock, logger)
	require.NoError(t, err)
	return c, logger
}

func validAdd() addOptions {
	return addOptions{
		Pattern:       "  Murphy Plant HIRE ",
		Vendor:        "Murphy Plant Hire",
		Category:      models.CategoryEquipmentHire,
		VATType:       models.VATStandard,
		VATDeductible: true,
		Confidence:    models.ConfidenceExact,
		Business:      "true",
	}
}

func TestRunAdd(t *testing.T) {
	mock := &store.MockStore{}
	c, logger := newTestContainer(t, mock)

	var out bytes.Buffer
	require.NoError(t, runAdd(&out, c, validAdd()))

	require.Contains(t, mock.Saved, "murphy plant hire")
	entry := mock.Saved["murphy plant hire"]
	assert.Equal(t, "murphy plant hire", entry.Pattern)
	assert.Equal(t, models.CategoryEquipmentHire, entry.Category)
	assert.Equal(t, models.Business, entry.BusinessExpense)
	assert.Equal(t, 1, entry.HitCount)
	assert.Contains(t, out.String(), `Cached "murphy plant hire" as Equipment hire (seen 1 time(s))`)
	assert.True(t, logger.HasEntry("INFO", "Vendor cached"))

	out.Reset()
	require.NoError(t, runAdd(&out, c, validAdd()))
	assert.Equal(t, 2, mock.Saved["murphy plant hire"].HitCount)
	assert.Len(t, mock.Saved, 1)
}

func TestRunAdd_FromDescription(t *testing.T) {
	mock := &store.MockStore{}
	c, _ := newTestContainer(t, mock)

	o := validAdd()
	o.Pattern = ""
	o.Description = "POS12MAR MURPHY PLANT HIRE 00012345"
	require.NoError(t, runAdd(&bytes.Buffer{}, c, o))
	assert.Contains(t, mock.Saved, "murphy plant hire")

	o.Description = "POS 12MAR 123456"
	err := runAdd(&bytes.Buffer{}, c, o)
	assert.ErrorContains(t, err, "no vendor name found")
}

func TestRunAdd_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(o *addOptions)
		wantErr string
	}{
		{"empty pattern", func(o *addOptions) { o.Pattern = "  " }, "pattern must not be empty"},
		{"empty category", func(o *addOptions) { o.Category = "" }, "category must not be empty"},
		{"unknown vat type", func(o *addOptions) { o.VATType = "luxury_30" }, `unknown vat type "luxury_30"`},
		{"exempt deductible", func(o *addOptions) { o.VATType = models.VATExempt }, "exempt vat type cannot be deductible"},
		{"confidence too high", func(o *addOptions) { o.Confidence = 120 }, "confidence must be between 0 and 100"},
		{"bad business flag", func(o *addOptions) { o.Business = "maybe" }, "invalid business expense value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &store.MockStore{}
			c, _ := newTestContainer(t, mock)
			o := validAdd()
			tt.mutate(&o)

			err := runAdd(&bytes.Buffer{}, c, o)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Nil(t, mock.Saved)
		})
	}
}

func TestRunAdd_StoreErrors(t *testing.T) {
	c, _ := newTestContainer(t, &store.MockStore{LoadCacheError: errors.New("locked")})
	err := runAdd(&bytes.Buffer{}, c, validAdd())
	assert.ErrorContains(t, err, "failed to load vendor cache")

	c, _ = newTestContainer(t, &store.MockStore{SaveCacheError: errors.New("read-only")})
	err = runAdd(&bytes.Buffer{}, c, validAdd())
	assert.ErrorContains(t, err, "failed to save vendor cache")

	assert.EqualError(t, runAdd(&bytes.Buffer{}, nil, validAdd()), "container not initialized")
}

func TestRunList(t *testing.T) {
	c, _ := newTestContainer(t, &store.MockStore{})
	var out bytes.Buffer
	require.NoError(t, runList(&out, c))
	assert.Equal(t, "Vendor cache is empty\n", out.String())

	c, _ = newTestContainer(t, &store.MockStore{Cache: models.VendorCache{
		"zeta tools": {Pattern: "zeta tools", Category: models.CategoryTools, VATType: models.VATStandard, HitCount: 2},
		"acme":       {Pattern: "acme", VendorName: "Acme", Category: models.CategoryMaterials, BusinessExpense: models.Business, HitCount: 5},
	}})
	out.Reset()
	require.NoError(t, runList(&out, c))

	lines := bytes.Split(bytes.TrimSpace(out.Bytes()), []byte("\n"))
	require.Len(t, lines, 3)
	assert.Contains(t, string(lines[0]), "PATTERN")
	assert.Contains(t, string(lines[1]), "acme")
	assert.Contains(t, string(lines[1]), "true")
	assert.Contains(t, string(lines[2]), "zeta tools")
	assert.Contains(t, string(lines[2]), "null")
}
