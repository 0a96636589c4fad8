package server

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/DjordjeVuckovic/support-rag/pkg/stringsutil"
	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port        string   `env:"PORT" envDefault:"8080"`
	UseHttp2    bool     `env:"USE_HTTP2"`
	CorsOrigins []string `env:"CORS_ORIGINS" envSeparator:","`
	// ReportPath is the evaluation report served by the API.
	ReportPath string `env:"EVAL_REPORT_PATH" envDefault:"eval/rag_eval_report.json"`
}

func LoadConfig() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse server config: %w", err)
	}

	if err := validatePort(cfg.Port); err != nil {
		return nil, fmt.Errorf("invalid port: %w", err)
	}

	cfg.CorsOrigins = stringsutil.TrimAll(cfg.CorsOrigins)
	if len(cfg.CorsOrigins) == 0 {
		cfg.CorsOrigins = []string{"*"}
	}

	return &cfg, nil
}

func validatePort(port string) error {
	portNum, err := strconv.Atoi(port)

	if err != nil {
		return errors.New("port must be a number")
	}

	if portNum < 1 || portNum > 65535 {
		return errors.New("port must be between 1 and 65535")
	}

	return nil
}
