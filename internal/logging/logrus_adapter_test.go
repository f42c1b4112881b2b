package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogrusAdapter(t *testing.T) {
	tests := []struct {
		level     string
		format    string
		wantLevel logrus.Level
		wantJSON  bool
	}{
		{level: "debug", format: "text", wantLevel: logrus.DebugLevel},
		{level: "info", format: "json", wantLevel: logrus.InfoLevel, wantJSON: true},
		{level: "warn", format: "text", wantLevel: logrus.WarnLevel},
		{level: "error", format: "json", wantLevel: logrus.ErrorLevel, wantJSON: true},
		{level: "chatty", format: "text", wantLevel: logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level+"/"+tt.format, func(t *testing.T) {
			adapter, ok := NewLogrusAdapter(tt.level, tt.format).(*LogrusAdapter)
			require.True(t, ok)
			assert.Equal(t, tt.wantLevel, adapter.logger.Level)

			_, isJSON := adapter.logger.Formatter.(*logrus.JSONFormatter)
			assert.Equal(t, tt.wantJSON, isJSON)
		})
	}
}

func TestNewLogrusAdapterFromLogger(t *testing.T) {
	existing := logrus.New()
	adapter, ok := NewLogrusAdapterFromLogger(existing).(*LogrusAdapter)
	require.True(t, ok)
	assert.Same(t, existing, adapter.logger)

	adapter, ok = NewLogrusAdapterFromLogger(nil).(*LogrusAdapter)
	require.True(t, ok)
	assert.NotNil(t, adapter.logger)
}

// decodeLines parses one JSON log record per line.
func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var records []map[string]interface{}
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		var rec map[string]interface{}
		require.NoError(t, json.Unmarshal(line, &rec))
		records = append(records, rec)
	}
	return records
}

func TestLogrusAdapter_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogrusAdapterWithOutput("warn", "json", &buf)

	logger.Debug("phase started", F(FieldPhase, "exact"))
	logger.Info("vendor matched", F(FieldVendor, "Screwfix"))
	logger.Warn("low confidence", F(FieldConfidence, 50))
	logger.Error("table invalid", F(FieldTable, "vendors"))

	records := decodeLines(t, &buf)
	require.Len(t, records, 2)
	assert.Equal(t, "warning", records[0]["level"])
	assert.Equal(t, "low confidence", records[0]["msg"])
	assert.EqualValues(t, 50, records[0][FieldConfidence])
	assert.Equal(t, "error", records[1]["level"])
	assert.Equal(t, "vendors", records[1][FieldTable])
}

func TestLogrusAdapter_DerivedLoggers(t *testing.T) {
	var buf bytes.Buffer
	base := NewLogrusAdapterWithOutput("debug", "json", &buf)

	classify := base.WithField(FieldOperation, "classify")
	classify.WithFields(F(FieldVendor, "Applegreen"), F(FieldPhase, "fuzzy")).
		WithError(errors.New("ambiguous")).
		Info("vendor matched")
	base.Info("run finished")

	records := decodeLines(t, &buf)
	require.Len(t, records, 2)
	assert.Equal(t, "classify", records[0][FieldOperation])
	assert.Equal(t, "Applegreen", records[0][FieldVendor])
	assert.Equal(t, "fuzzy", records[0][FieldPhase])
	assert.Equal(t, "ambiguous", records[0][logrus.ErrorKey])

	assert.NotContains(t, records[1], FieldOperation)
}

func TestLogrusAdapter_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogrusAdapterWithOutput("info", "text", &buf)
	logger.Info("vendor matched", F(FieldVendor, "Woodies"))

	out := buf.String()
	assert.Contains(t, out, "vendor matched")
	assert.Contains(t, out, "vendor=Woodies")
}

func TestConvertFields(t *testing.T) {
	assert.Empty(t, convertFields(nil))
	assert.Equal(t, logrus.Fields{"vendor": "Screwfix", "confidence": 85},
		convertFields([]Field{F(FieldVendor, "Screwfix"), F(FieldConfidence, 85)}))
}

func TestNewNopLogger(t *testing.T) {
	logger := NewNopLogger()
	require.NotNil(t, logger)
	logger.WithField("k", "v").Error("discarded")
}

func TestMockLogger_SharedEntries(t *testing.T) {
	mock := NewMockLogger()
	child := mock.WithField(FieldVendor, "Applegreen")
	child.Debug("vendor matched", F(FieldPhase, "exact"))
	mock.WithError(errors.New("boom")).Warn("table reload failed")

	entries := mock.GetEntries()
	require.Len(t, entries, 2)
	assert.True(t, mock.HasEntry("DEBUG", "vendor matched"))
	assert.Len(t, mock.GetEntriesByLevel("WARN"), 1)
	assert.EqualError(t, entries[1].Error, "boom")

	v, ok := mock.FieldValue("vendor matched", FieldVendor)
	require.True(t, ok)
	assert.Equal(t, "Applegreen", v)
}

func TestLogrusAdapter_ImplementsInterface(t *testing.T) {
	var _ Logger = (*LogrusAdapter)(nil)
	var _ Logger = (*MockLogger)(nil)
}
