package config

// Config is bound by viper from config.yaml, SITE_* environment variables and flags.
type Config struct {
	SiteTitle   string `mapstructure:"siteTitle"`
	BaseURL     string `mapstructure:"baseURL"`
	OutputDir   string `mapstructure:"outputDir"`
	ContentDir  string `mapstructure:"contentDir"`
	StaticDir   string `mapstructure:"staticDir"`
	DataDir     string `mapstructure:"dataDir"`
	Locale      string `mapstructure:"locale"`
	Development bool   `mapstructure:"development"`
}

// Defaults mirrors the values registered with viper in the root command.
func Defaults() Config {
	return Config{
		SiteTitle:  "Max Anderson",
		BaseURL:    "https://maxanderson.tech",
		OutputDir:  "public",
		ContentDir: "content",
		StaticDir:  "static",
		Locale:     "en-US",
	}
}
