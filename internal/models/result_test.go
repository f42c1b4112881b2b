package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestBusinessExpense_Bool(t *testing.T) {
	tests := []struct {
		in    BusinessExpense
		value bool
		known bool
		str   string
	}{
		{Business, true, true, "true"},
		{Personal, false, true, "false"},
		{Undetermined, false, false, "null"},
	}
	for _, tt := range tests {
		v, ok := tt.in.Bool()
		assert.Equal(t, tt.value, v)
		assert.Equal(t, tt.known, ok)
		assert.Equal(t, tt.str, tt.in.String())
	}

	assert.Equal(t, Business, BusinessExpenseFromBool(true))
	assert.Equal(t, Personal, BusinessExpenseFromBool(false))

	var zero BusinessExpense
	assert.Equal(t, Undetermined, zero)
}

func TestParseBusinessExpense(t *testing.T) {
	tests := []struct {
		in      string
		want    BusinessExpense
		wantErr bool
	}{
		{"true", Business, false},
		{"business", Business, false},
		{"no", Personal, false},
		{"personal", Personal, false},
		{"", Undetermined, false},
		{"null", Undetermined, false},
		{"uncertain", Undetermined, false},
		{"maybe", Undetermined, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBusinessExpense(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBusinessExpense_JSON(t *testing.T) {
	res := AutoCatResult{Category: CategoryOther, IsBusinessExpense: Undetermined}
	data, err := json.Marshal(res)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"is_business_expense":null`)
	assert.NotContains(t, string(data), "looks_like_business_expense")

	flag := true
	res.IsBusinessExpense = Personal
	res.LooksLikeBusinessExpense = &flag
	data, err = json.Marshal(res)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"is_business_expense":false`)
	assert.Contains(t, string(data), `"looks_like_business_expense":true`)

	var back AutoCatResult
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, Personal, back.IsBusinessExpense)
	require.NotNil(t, back.LooksLikeBusinessExpense)
	assert.True(t, *back.LooksLikeBusinessExpense)
}

func TestBusinessExpense_YAML(t *testing.T) {
	var entry VendorCacheEntry
	require.NoError(t, yaml.Unmarshal([]byte("pattern: acme\nbusiness_expense: true\n"), &entry))
	assert.Equal(t, Business, entry.BusinessExpense)

	var unset VendorCacheEntry
	require.NoError(t, yaml.Unmarshal([]byte("pattern: acme\nbusiness_expense: null\n"), &unset))
	assert.Equal(t, Undetermined, unset.BusinessExpense)

	assert.Error(t, yaml.Unmarshal([]byte("business_expense: sometimes\n"), &entry))

	out, err := yaml.Marshal(VendorCacheEntry{Pattern: "acme", BusinessExpense: Personal})
	require.NoError(t, err)
	assert.Contains(t, string(out), "business_expense: false")
}

func TestBusinessExpense_MarshalCSV(t *testing.T) {
	s, err := Undetermined.MarshalCSV()
	require.NoError(t, err)
	assert.Equal(t, "", s)

	s, err = Business.MarshalCSV()
	require.NoError(t, err)
	assert.Equal(t, "true", s)
}

func TestAutoCatResult_AddNote(t *testing.T) {
	var r AutoCatResult
	r.AddNote("Matched vendor %s", "Screwfix")
	r.AddNote("plain")
	assert.Equal(t, []string{"Matched vendor Screwfix", "plain"}, r.Notes)
}
