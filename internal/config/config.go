package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host string
	Port int
}

type DBConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime string
}

type AuthConfig struct {
	AccessSecret string
}

type IngestConfig struct {
	Delimiter       string
	SubtotalMarkers []string
	MaxUploadMB     int
}

type ReportConfig struct {
	PDFFontPath string
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	DB          DBConfig
	Auth        AuthConfig
	Ingest      IngestConfig
	Report      ReportConfig
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")
	v.AutomaticEnv()

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		DB: DBConfig{
			DSN:             v.GetString("DB_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetString("DB_CONN_MAX_LIFETIME"),
		},
		Auth: AuthConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
		},
		Ingest: IngestConfig{
			Delimiter:       v.GetString("INGEST_DELIMITER"),
			SubtotalMarkers: parseList(v.GetString("INGEST_SUBTOTAL_MARKERS")),
			MaxUploadMB:     v.GetInt("INGEST_MAX_UPLOAD_MB"),
		},
		Report: ReportConfig{
			PDFFontPath: v.GetString("REPORT_PDF_FONT_PATH"),
		},
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 7090
	}
	if cfg.Ingest.Delimiter == "" {
		cfg.Ingest.Delimiter = ","
	}
	if len(cfg.Ingest.SubtotalMarkers) == 0 {
		cfg.Ingest.SubtotalMarkers = []string{"итого", "total"}
	}
	if cfg.Ingest.MaxUploadMB == 0 {
		cfg.Ingest.MaxUploadMB = 64
	}
	if cfg.Report.PDFFontPath == "" {
		cfg.Report.PDFFontPath = "assets/fonts/NotoSans-Regular.ttf"
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.DB.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	if cfg.Auth.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if len([]rune(cfg.Ingest.Delimiter)) != 1 {
		return fmt.Errorf("INGEST_DELIMITER must be a single character")
	}
	return nil
}

// DelimiterRune returns the configured field delimiter, validated to a
// single rune at load time.
func (c *Config) DelimiterRune() rune {
	return []rune(c.Ingest.Delimiter)[0]
}

func parseList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	items := strings.Split(raw, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}
