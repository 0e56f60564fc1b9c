package config

import (
	"fmt"
	"time"

	"github.com/pitchlab/passmap/pkg/core"
	"github.com/spf13/viper"
)

// FileName is the config file looked up in the config directory.
const FileName = "passmap.cfg.json"

// RenderConfig holds drawing settings for pass maps
type RenderConfig struct {
	Scale      float64 `json:"scale" mapstructure:"scale"`
	LineColor  string  `json:"lineColor" mapstructure:"lineColor"`
	Background string  `json:"background" mapstructure:"background"`
}

// APIConfig holds settings for the remote event feed
type APIConfig struct {
	BaseURL  string        `json:"baseUrl" mapstructure:"baseUrl"`
	Timeout  time.Duration `json:"timeout" mapstructure:"timeout"`
	CacheTTL time.Duration `json:"cacheTTL" mapstructure:"cacheTTL"`
}

// OTelConfig holds OpenTelemetry settings
type OTelConfig struct {
	Enabled        bool          `json:"enabled" mapstructure:"enabled"`
	ServiceName    string        `json:"serviceName" mapstructure:"serviceName"`
	BatchTimeout   time.Duration `json:"batchTimeout" mapstructure:"batchTimeout"`
	MetricInterval time.Duration `json:"metricInterval" mapstructure:"metricInterval"`
	Endpoint       string        `json:"endpoint" mapstructure:"endpoint"`
	Insecure       bool          `json:"insecure" mapstructure:"insecure"`
}

// SetDefaults registers default values for every known key.
func SetDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./passmaplogs")

	viper.SetDefault("colors.short", "#1f77b4")
	viper.SetDefault("colors.medium", "#ff7f0e")
	viper.SetDefault("colors.long", "#d62728")

	viper.SetDefault("render.scale", 8)
	viper.SetDefault("render.lineColor", "black")
	viper.SetDefault("render.background", "white")

	viper.SetDefault("api.baseUrl", "https://raw.githubusercontent.com/statsbomb/open-data/master/data")
	viper.SetDefault("api.timeout", "30s")
	viper.SetDefault("api.cacheTTL", "10m")

	viper.SetDefault("graylog.enabled", false)
	viper.SetDefault("graylog.address", "localhost:12201")

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.serviceName", "passmap")
	viper.SetDefault("otel.batchTimeout", "5s")
	viper.SetDefault("otel.metricInterval", "30s")
	viper.SetDefault("otel.endpoint", "")
	viper.SetDefault("otel.insecure", true)
}

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file. Defaults stay
// in effect when the file cannot be read.
func Load(configDir string) error {
	SetDefaults()

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}

	return nil
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetColorMap returns the per-bucket arrow colors.
func GetColorMap() core.ColorMap {
	return core.ColorMap{
		Short:  viper.GetString("colors.short"),
		Medium: viper.GetString("colors.medium"),
		Long:   viper.GetString("colors.long"),
	}
}

// GetRenderConfig returns pass map drawing settings.
func GetRenderConfig() RenderConfig {
	return RenderConfig{
		Scale:      viper.GetFloat64("render.scale"),
		LineColor:  viper.GetString("render.lineColor"),
		Background: viper.GetString("render.background"),
	}
}

// GetAPIConfig returns event feed settings.
func GetAPIConfig() APIConfig {
	return APIConfig{
		BaseURL:  viper.GetString("api.baseUrl"),
		Timeout:  viper.GetDuration("api.timeout"),
		CacheTTL: viper.GetDuration("api.cacheTTL"),
	}
}

// GetOTelConfig returns OpenTelemetry settings.
func GetOTelConfig() OTelConfig {
	return OTelConfig{
		Enabled:        viper.GetBool("otel.enabled"),
		ServiceName:    viper.GetString("otel.serviceName"),
		BatchTimeout:   viper.GetDuration("otel.batchTimeout"),
		MetricInterval: viper.GetDuration("otel.metricInterval"),
		Endpoint:       viper.GetString("otel.endpoint"),
		Insecure:       viper.GetBool("otel.insecure"),
	}
}
