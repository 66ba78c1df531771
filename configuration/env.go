// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Amir Ossanloo

package configuration

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
)

// Production is the NODE_ENV value that enables production behaviour.
const Production = "production"

// ProcessEnv holds the process environment variables that drive assembly.
type ProcessEnv struct {
	// NodeEnv selects the environment overlay file and the runtime mode.
	NodeEnv string `env:"NODE_ENV,required,notEmpty"`
	// ConfigDir is the directory holding index.yaml and the overlays.
	ConfigDir string `env:"CONFIG_DIR" envDefault:"config"`
}

// IsProduction reports whether NODE_ENV is "production".
func (p ProcessEnv) IsProduction() bool {
	return p.NodeEnv == Production
}

// ParseProcessEnv reads [ProcessEnv] using the caarlos0/env library.
//
// A missing or empty NODE_ENV yields [ErrNodeEnvNotDefined].
func ParseProcessEnv() (ProcessEnv, error) {
	var p ProcessEnv
	// NODE_ENV is the only field that can fail to parse
	if err := env.Parse(&p); err != nil {
		return ProcessEnv{}, fmt.Errorf("%w: %w", ErrNodeEnvNotDefined, err)
	}

	return p, nil
}

// ApplyEnv copies the env section into the process environment. In
// production the section is removed from cfg afterwards so that secrets do
// not linger in the in-memory configuration.
func ApplyEnv(cfg *Config, nodeEnv string) error {
	if cfg == nil {
		return nil
	}

	for k, v := range cfg.Env {
		if err := os.Setenv(k, v); err != nil {
			return fmt.Errorf("error setting env %s: %w", k, err)
		}
	}

	if nodeEnv == Production {
		cfg.Env = nil
	}

	return nil
}
