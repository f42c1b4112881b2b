// Package root contains the root command for the application
package root

import (
	"fmt"

	"fjacquet/autocat/internal/common"
	"fjacquet/autocat/internal/config"
	"fjacquet/autocat/internal/container"
	"fjacquet/autocat/internal/logging"
	"fjacquet/autocat/internal/models"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input        string
	Output       string
	ConfigFile   string
	LogLevel     string
	LogFormat    string
	CSVDelimiter string
	VendorsFile  string
	CacheFile    string
}

var (
	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "autocat",
		Short: "Categorise Irish bank transactions for bookkeeping and VAT.",
		Long: `autocat classifies bank transactions for Irish sole traders and limited
companies. It matches vendors, applies Irish VAT deductibility rules, tags
Form 11 reliefs and resolves internal categories to your own category names.`,
		SilenceUsage:      true,
		PersistentPreRunE: initContainer,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	// SharedFlags holds the values of the persistent flags
	SharedFlags = CommonFlags{}

	appContainer *container.Container
)

// Init initializes the root command and all flags
func Init() {
	flags := Cmd.PersistentFlags()
	flags.StringVarP(&SharedFlags.Input, "input", "i", "", "Input file")
	flags.StringVarP(&SharedFlags.Output, "output", "o", "", "Output file")
	flags.StringVar(&SharedFlags.ConfigFile, "config", "", "Config file (default searches ., ./.autocat and ~/.autocat)")
	flags.StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	flags.StringVar(&SharedFlags.LogFormat, "log-format", "", "Log format (text or json)")
	flags.StringVar(&SharedFlags.CSVDelimiter, "csv-delimiter", "", "CSV delimiter character")
	flags.StringVar(&SharedFlags.VendorsFile, "vendors-file", "", "Vendor rule table overriding the embedded one")
	flags.StringVar(&SharedFlags.CacheFile, "cache-file", "", "Vendor cache file")
}

// initContainer loads .env and the configuration, applies flag overrides and
// builds the dependency container shared by every subcommand.
func initContainer(cmd *cobra.Command, args []string) error {
	if appContainer != nil {
		return nil
	}

	config.LoadEnv(nil)

	cfg, err := config.LoadConfig(SharedFlags.ConfigFile)
	if err != nil {
		return err
	}
	applyFlagOverrides(cfg, SharedFlags)
	if err := config.Validate(cfg); err != nil {
		return err
	}

	c, err := container.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	appContainer = c
	return nil
}

func applyFlagOverrides(cfg *config.Config, flags CommonFlags) {
	if flags.LogLevel != "" {
		cfg.Log.Level = flags.LogLevel
	}
	if flags.LogFormat != "" {
		cfg.Log.Format = flags.LogFormat
	}
	if flags.CSVDelimiter != "" {
		cfg.CSV.Delimiter = flags.CSVDelimiter
	}
	if flags.VendorsFile != "" {
		cfg.Rules.VendorsFile = flags.VendorsFile
	}
	if flags.CacheFile != "" {
		cfg.Cache.File = flags.CacheFile
	}
}

// GetContainer returns the container built before the running command.
func GetContainer() *container.Container {
	return appContainer
}

// SetContainer replaces the shared container. Tests use it to run commands
// against mock stores.
func SetContainer(c *container.Container) {
	appContainer = c
}

// GetLogger returns the container's logger, or a no-op logger before
// initialization.
func GetLogger() logging.Logger {
	if appContainer == nil {
		return logging.NewNopLogger()
	}
	return appContainer.GetLogger()
}

// RowDefaults returns the configured fallbacks for fields a transaction
// leaves empty.
func RowDefaults(cfg *config.Config) common.RowDefaults {
	return common.RowDefaults{
		Industry:    cfg.Defaults.Industry,
		AccountType: models.AccountType(cfg.Defaults.AccountType),
	}
}
