package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/MaxAnderson95/MaxAnderson95.github.io/internal/config"
)

var (
	cfgFile   string
	verbose   bool
	appConfig config.Config
	logger    *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "site",
	Short: "Static generator for the maxanderson.tech portfolio and blog",
	Long: `site renders the portfolio home page, the blog and its tag listings from
markdown posts and the embedded profile, work history and certification tables
into a static output directory.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(verbose)
		if err != nil {
			return err
		}
		logger = l
		return initializeConfig(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func newLogger(debug bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	if debug {
		cfg.Level.SetLevel(zap.DebugLevel)
	}
	cfg.DisableStacktrace = !debug
	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return l, nil
}

func initializeConfig(_ *cobra.Command) error {
	v, err := loadConfig(cfgFile)
	if err != nil {
		return err
	}
	if used := v.ConfigFileUsed(); used != "" {
		logger.Info("using config file", zap.String("path", used))
	} else {
		logger.Info("no config file found, using defaults and SITE_* environment variables")
	}

	if err := v.Unmarshal(&appConfig); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}
	return nil
}

// loadConfig layers defaults, the config file and SITE_* environment variables.
func loadConfig(file string) (*viper.Viper, error) {
	v := viper.New()

	d := config.Defaults()
	v.SetDefault("siteTitle", d.SiteTitle)
	v.SetDefault("baseURL", d.BaseURL)
	v.SetDefault("outputDir", d.OutputDir)
	v.SetDefault("contentDir", d.ContentDir)
	v.SetDefault("staticDir", d.StaticDir)
	v.SetDefault("dataDir", d.DataDir)
	v.SetDefault("locale", d.Locale)
	v.SetDefault("development", d.Development)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("SITE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && file == "":
		case file != "" && os.IsNotExist(err):
			return nil, fmt.Errorf("config file %s not found: %w", file, err)
		default:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return v, nil
}
