// Copyright 2026 Seeds DAO Contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

type ctxKey string

const configContextKey ctxKey = "gardend.config"

const DefaultShutdownTimeout = "30s"

func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configContextKey, cfg)
}

func FromContext(ctx context.Context) *Config {
	cfg, ok := ctx.Value(configContextKey).(*Config)
	if !ok {
		return nil
	}
	return cfg
}

// RunMode represents the operational mode of the gardend node
type RunMode string

const (
	RunModeServe RunMode = "serve" // Long-running node with scheduler ticks (default)
	RunModeDev   RunMode = "dev"   // Development mode (in-memory collaborators)
)

// Valid returns true if the RunMode is a known valid mode
func (m RunMode) Valid() bool {
	switch m {
	case RunModeServe, RunModeDev, "":
		return true
	default:
		return false
	}
}

type Config struct {
	DatabasePath    string  `yaml:"databasePath"    split_words:"true"`
	BindAddr        string  `yaml:"bindAddr"        split_words:"true"`
	MetricsPort     uint    `yaml:"metricsPort"     split_words:"true"`
	ShutdownTimeout string  `yaml:"shutdownTimeout" split_words:"true"`
	SelfAccount     string  `yaml:"selfAccount"     split_words:"true"`
	AdminAccount    string  `yaml:"adminAccount"    split_words:"true"`
	CyclePeriod     int64   `yaml:"cyclePeriod"     split_words:"true"`
	TickInterval    string  `yaml:"tickInterval"    split_words:"true"`
	RunMode         RunMode `yaml:"runMode"         envconfig:"GARDEND_RUN_MODE"`
}

var globalConfig = &Config{
	DatabasePath:    ".gardend",
	BindAddr:        "0.0.0.0",
	MetricsPort:     12798,
	ShutdownTimeout: DefaultShutdownTimeout,
	SelfAccount:     "gardend",
	AdminAccount:    "dao.hypha",
	RunMode:         RunModeServe,
}

func LoadConfig(configFile string) (*Config, error) {
	// Load config file as YAML if provided
	if configFile == "" {
		// Check for config file in this path: ~/.gardend/gardend.yaml
		if homeDir, err := os.UserHomeDir(); err == nil {
			userPath := filepath.Join(homeDir, ".gardend", "gardend.yaml")
			if _, err := os.Stat(userPath); err == nil {
				configFile = userPath
			}
		}

		// Try to check for /etc/gardend/gardend.yaml if still not found
		if configFile == "" {
			systemPath := "/etc/gardend/gardend.yaml"
			if _, err := os.Stat(systemPath); err == nil {
				configFile = systemPath
			}
		}
	}

	if configFile != "" {
		buf, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		err = yaml.Unmarshal(buf, globalConfig)
		if err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	// Load config values from environment variables
	// We use "dummy" as the app name to avoid picking up env vars, since we use
	// explicit env var names or the split_words option above
	err := envconfig.Process("dummy", globalConfig)
	if err != nil {
		return nil, fmt.Errorf("error processing environment: %w", err)
	}

	if !globalConfig.RunMode.Valid() {
		return nil, fmt.Errorf("invalid run mode: %s", globalConfig.RunMode)
	}

	return globalConfig, nil
}

// GetConfig returns the global config
func GetConfig() *Config {
	return globalConfig
}
