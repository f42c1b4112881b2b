package config

import (
	"os"
	"path/filepath"
	"testing"

	"fjacquet/autocat/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeConfig_Defaults(t *testing.T) {
	clearTestEnvVars(t)
	chdirTemp(t)

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Equal(t, ",", config.CSV.Delimiter)
	assert.Empty(t, config.Rules.VendorsFile)
	assert.Empty(t, config.Rules.MCCFile)
	assert.Empty(t, config.Rules.CategoryNamesFile)
	assert.Equal(t, "vendor_cache.yaml", config.Cache.File)
	assert.Equal(t, 100, config.Batch.Size)
	assert.Equal(t, 4, config.Batch.Workers)
	assert.Empty(t, config.Defaults.Industry)
	assert.Equal(t, "limited_company", config.Defaults.AccountType)
}

func TestInitializeConfig_EnvironmentVariables(t *testing.T) {
	clearTestEnvVars(t)
	chdirTemp(t)

	testEnvVars := map[string]string{
		"AUTOCAT_LOG_LEVEL":             "debug",
		"AUTOCAT_LOG_FORMAT":            "json",
		"AUTOCAT_CSV_DELIMITER":         ";",
		"AUTOCAT_RULES_VENDORS_FILE":    "my_vendors.yaml",
		"AUTOCAT_CACHE_FILE":            "/tmp/cache.yaml",
		"AUTOCAT_BATCH_SIZE":            "250",
		"AUTOCAT_BATCH_WORKERS":         "8",
		"AUTOCAT_DEFAULTS_INDUSTRY":     "plumbing",
		"AUTOCAT_DEFAULTS_ACCOUNT_TYPE": "directors_personal_tax",
	}
	for key, value := range testEnvVars {
		t.Setenv(key, value)
	}

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, ";", config.CSV.Delimiter)
	assert.Equal(t, "my_vendors.yaml", config.Rules.VendorsFile)
	assert.Equal(t, "/tmp/cache.yaml", config.Cache.File)
	assert.Equal(t, 250, config.Batch.Size)
	assert.Equal(t, 8, config.Batch.Workers)
	assert.Equal(t, "plumbing", config.Defaults.Industry)
	assert.Equal(t, "directors_personal_tax", config.Defaults.AccountType)
}

func TestInitializeConfig_ConfigFile(t *testing.T) {
	clearTestEnvVars(t)
	dir := chdirTemp(t)

	configContent := `
log:
  level: "warn"
  format: "json"
csv:
  delimiter: "|"
rules:
  mcc_file: "mcc_override.yaml"
batch:
  size: 50
defaults:
  industry: "carpentry_joinery"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(configContent), 0644))

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, "|", config.CSV.Delimiter)
	assert.Equal(t, "mcc_override.yaml", config.Rules.MCCFile)
	assert.Equal(t, 50, config.Batch.Size)
	assert.Equal(t, 4, config.Batch.Workers)
	assert.Equal(t, "carpentry_joinery", config.Defaults.Industry)
}

func TestInitializeConfig_HierarchicalPrecedence(t *testing.T) {
	clearTestEnvVars(t)
	dir := chdirTemp(t)

	configContent := `
log:
  level: "warn"
batch:
  workers: 2
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(configContent), 0644))
	t.Setenv("AUTOCAT_LOG_LEVEL", "error")

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "error", config.Log.Level, "environment beats file")
	assert.Equal(t, 2, config.Batch.Workers, "file beats default")
	assert.Equal(t, "text", config.Log.Format, "default when unset")
}

func TestInitializeConfig_InvalidFile(t *testing.T) {
	clearTestEnvVars(t)
	dir := chdirTemp(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("log: [unclosed"), 0644))

	_, err := InitializeConfig()
	assert.Error(t, err)
}

func TestInitializeConfig_InvalidValue(t *testing.T) {
	clearTestEnvVars(t)
	chdirTemp(t)
	t.Setenv("AUTOCAT_BATCH_WORKERS", "0")

	_, err := InitializeConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestLoadConfig_ExplicitFile(t *testing.T) {
	clearTestEnvVars(t)
	dir := chdirTemp(t)

	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("csv:\n  delimiter: \";\"\ncache:\n  file: \"learned.yaml\"\n"), 0644))

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ";", config.CSV.Delimiter)
	assert.Equal(t, "learned.yaml", config.Cache.File)
	assert.Equal(t, ';', config.Delimiter())
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	clearTestEnvVars(t)
	dir := chdirTemp(t)

	_, err := LoadConfig(filepath.Join(dir, "absent.yaml"))
	assert.Error(t, err)
}

func TestConfig_Delimiter(t *testing.T) {
	config := &Config{}
	assert.Equal(t, ',', config.Delimiter())

	config.CSV.Delimiter = "\t"
	assert.Equal(t, '\t', config.Delimiter())
}

func TestValidateConfig_InvalidValues(t *testing.T) {
	valid := func() *Config {
		c := &Config{}
		c.Log.Level = "info"
		c.Log.Format = "text"
		c.CSV.Delimiter = ","
		c.Cache.File = "vendor_cache.yaml"
		c.Batch.Size = 100
		c.Batch.Workers = 4
		c.Defaults.AccountType = "limited_company"
		return c
	}

	tests := []struct {
		name        string
		mutate      func(c *Config)
		expectError string
	}{
		{"valid", func(c *Config) {}, ""},
		{"invalid log level", func(c *Config) { c.Log.Level = "loud" }, "invalid log level"},
		{"invalid log format", func(c *Config) { c.Log.Format = "xml" }, "invalid log format"},
		{"multi-char delimiter", func(c *Config) { c.CSV.Delimiter = ";;" }, "CSV delimiter must be a single character"},
		{"empty cache file", func(c *Config) { c.Cache.File = "" }, "cache.file must not be empty"},
		{"batch size too small", func(c *Config) { c.Batch.Size = 0 }, "batch.size must be between"},
		{"batch size too large", func(c *Config) { c.Batch.Size = 10001 }, "batch.size must be between"},
		{"too many workers", func(c *Config) { c.Batch.Workers = 65 }, "batch.workers must be between"},
		{"unknown account type", func(c *Config) { c.Defaults.AccountType = "sole_trader" }, "defaults.account_type must be"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := validateConfig(c)
			if tt.expectError == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}
}

func TestConfigureLoggingFromConfig(t *testing.T) {
	tests := []struct {
		name   string
		level  string
		format string
	}{
		{"debug text", "debug", "text"},
		{"info json", "info", "json"},
		{"upper case", "WARN", "JSON"},
		{"unknown level falls back", "loud", "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{}
			c.Log.Level = tt.level
			c.Log.Format = tt.format

			logger := ConfigureLoggingFromConfig(c)
			require.NotNil(t, logger)
			assert.Implements(t, (*logging.Logger)(nil), logger)
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("AUTOCAT_TEST_FROM_DOTENV=loaded\n"), 0644))

	t.Setenv("AUTOCAT_TEST_FROM_DOTENV", "")
	require.NoError(t, os.Unsetenv("AUTOCAT_TEST_FROM_DOTENV"))

	logger := logging.NewMockLogger()
	loaded := loadEnvFile(logger, filepath.Join(dir, "missing.env"), envFile)

	assert.Equal(t, envFile, loaded)
	assert.Equal(t, "loaded", os.Getenv("AUTOCAT_TEST_FROM_DOTENV"))
	assert.True(t, logger.HasEntry("DEBUG", "Loaded environment variables"))

	assert.Empty(t, loadEnvFile(logger, filepath.Join(dir, "none.env")))
	assert.True(t, logger.HasEntry("DEBUG", "No .env file found, using environment variables"))
}

func TestGetEnv(t *testing.T) {
	t.Setenv("AUTOCAT_TEST_GET_ENV", "value")
	assert.Equal(t, "value", GetEnv("AUTOCAT_TEST_GET_ENV", "fallback"))
	assert.Equal(t, "fallback", GetEnv("AUTOCAT_TEST_GET_ENV_UNSET", "fallback"))
}

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	originalDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(originalDir)
	})
	// Keep a developer's own config out of the test.
	t.Setenv("HOME", dir)
	return dir
}

func clearTestEnvVars(t *testing.T) {
	envVars := []string{
		"AUTOCAT_LOG_LEVEL",
		"AUTOCAT_LOG_FORMAT",
		"AUTOCAT_CSV_DELIMITER",
		"AUTOCAT_RULES_VENDORS_FILE",
		"AUTOCAT_RULES_MCC_FILE",
		"AUTOCAT_RULES_CATEGORY_NAMES_FILE",
		"AUTOCAT_CACHE_FILE",
		"AUTOCAT_BATCH_SIZE",
		"AUTOCAT_BATCH_WORKERS",
		"AUTOCAT_DEFAULTS_INDUSTRY",
		"AUTOCAT_DEFAULTS_ACCOUNT_TYPE",
	}
	for _, envVar := range envVars {
		t.Setenv(envVar, "")
	}
}
