package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// ConfigPaths are HCL files or directories with aliases, queries and
	// inline graph data.
	ConfigPaths []string `validate:"dive,required"`
	// DatasetPath is an optional JSON or YAML graph document.
	DatasetPath string `validate:"omitempty,endswith=.json|endswith=.yaml|endswith=.yml"`
	// DBPath is an optional BadgerDB directory used to restore and save the
	// graph.
	DBPath    string
	GraphName string `validate:"omitempty,max=200,excludesall=/\\"`

	LogFormat string `validate:"oneof=text json"`
	LogLevel  string `validate:"oneof=debug info warn error"`
	// LogFile redirects logs to a rotating file instead of the log writer.
	LogFile string

	ListenAddr string `validate:"omitempty,hostname_port"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// NewConfig fills defaults and validates cfg.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, len(verrs))
			for i, fe := range verrs {
				msgs[i] = fmt.Sprintf("%s: failed %q check (value %v)", fe.Field(), fe.Tag(), fe.Value())
			}
			return nil, fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
		}
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}
