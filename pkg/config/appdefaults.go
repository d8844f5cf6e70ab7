package config

import (
	"github.com/spf13/viper"

	"github.com/tesseradata/tessera/pkg/errors"
)

// Built-in application defaults, the outermost layer of the merge hierarchy.
const (
	DefaultPageSize    = 25
	DefaultDensity     = DensityComfortable
	DefaultLocale      = "en"
	DefaultPlaceholder = "—"
)

// Recognized Settings.Density values.
const (
	DensityComfortable = "comfortable"
	DensityCompact     = "compact"
)

// Recognized ColumnDefinition.Align values. An empty or unrecognized value
// renders left-aligned.
const (
	AlignLeft   = "left"
	AlignRight  = "right"
	AlignCenter = "center"
)

// AppFileName is the base name of the optional application settings file
// (tessera.yaml), looked up in the working directory and any extra search
// paths.
const AppFileName = "tessera"

// AppConfig carries application-scoped options. Settings feeds the resolver
// as its outermost layer; LogLevel configures the process logger and sits
// outside the per-table hierarchy.
type AppConfig struct {
	Settings Settings
	LogLevel string
}

// LoadApp resolves application-level configuration. Values come from, in
// increasing precedence: built-in defaults, tessera.yaml, and TESSERA_*
// environment variables (TESSERA_PAGE_SIZE, TESSERA_DENSITY, ...).
func LoadApp(searchPaths ...string) (AppConfig, error) {
	v := viper.New()
	v.SetConfigName(AppFileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	for _, p := range searchPaths {
		v.AddConfigPath(p)
	}
	v.SetEnvPrefix("TESSERA")
	v.AutomaticEnv()

	v.SetDefault("page_size", DefaultPageSize)
	v.SetDefault("density", DefaultDensity)
	v.SetDefault("locale", DefaultLocale)
	v.SetDefault("placeholder", DefaultPlaceholder)
	v.SetDefault("log_level", "info")

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return AppConfig{}, errors.Wrap(err, errors.ErrorTypeValidation,
				"failed to read application settings")
		}
	}

	app := AppConfig{
		Settings: Settings{
			PageSize:    v.GetInt("page_size"),
			Density:     v.GetString("density"),
			Placeholder: v.GetString("placeholder"),
			Locale:      v.GetString("locale"),
		},
		LogLevel: v.GetString("log_level"),
	}
	if v.IsSet("sortable") {
		app.Settings.Sortable = Bool(v.GetBool("sortable"))
	}
	if v.IsSet("filterable") {
		app.Settings.Filterable = Bool(v.GetBool("filterable"))
	}
	return app, nil
}
