// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"
	"gopkg.in/yaml.v2"

	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/pebble"
	"github.com/ava-labs/countervm/trace"
)

const (
	DefaultDatabasePath   = ".countervm"
	DefaultValidityWindow = 60 * consts.MillisecondsPerSecond
)

type Config struct {
	// Logging
	LogLevel logging.Level `json:"logLevel"`
	LogFile  string        `json:"logFile"`

	// Ledger
	DatabasePath   string `json:"databasePath"`
	ChainID        ids.ID `json:"chainID"`
	ValidityWindow int64  `json:"validityWindow"`

	// Tracing
	TraceConfig trace.Config `json:"traceConfig"`

	// Storage
	Pebble pebble.Config `json:"pebble"`
}

func defaults() *Config {
	return &Config{
		LogLevel:       logging.Info,
		DatabasePath:   DefaultDatabasePath,
		ValidityWindow: DefaultValidityWindow,
		TraceConfig: trace.Config{
			Enabled: false,
			AppName: consts.Name,
			Agent:   consts.Name,
		},
		Pebble: pebble.NewDefaultConfig(),
	}
}

// New parses a JSON config. Missing fields keep their defaults.
func New(b []byte) (*Config, error) {
	c := defaults()

	if len(b) > 0 {
		if err := json.Unmarshal(b, c); err != nil {
			return nil, err
		}
	}

	return c, c.Verify()
}

// Load reads the config at [path]. Files ending in .yaml or .yml are
// parsed as YAML; everything else as JSON.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		b, err = yamlToJSON(b)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", err, path)
		}
	}
	return New(b)
}

func (c *Config) Verify() error {
	if c.ValidityWindow <= 0 {
		return fmt.Errorf("%w: validityWindow=%d", ErrInvalidValidityWindow, c.ValidityWindow)
	}
	if len(c.DatabasePath) == 0 {
		return ErrMissingDatabasePath
	}
	return nil
}

func (c *Config) GetLogLevel() logging.Level { return c.LogLevel }

func (c *Config) GetTraceConfig() *trace.Config { return &c.TraceConfig }

func (c *Config) Rules() chain.Rules {
	return chain.Rules{
		ChainID:        c.ChainID,
		ValidityWindow: c.ValidityWindow,
	}
}

// yamlToJSON re-encodes a YAML document as JSON so the JSON tags (and the
// JSON unmarshalers of embedded types) apply to both formats.
func yamlToJSON(b []byte) ([]byte, error) {
	var v interface{}
	if err := yaml.Unmarshal(b, &v); err != nil {
		return nil, err
	}
	v, err := stringKeys(v)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

func stringKeys(v interface{}) (interface{}, error) {
	switch t := v.(type) {
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(t))
		for k, e := range t {
			ks, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %v", ErrInvalidKey, k)
			}
			converted, err := stringKeys(e)
			if err != nil {
				return nil, err
			}
			m[ks] = converted
		}
		return m, nil
	case []interface{}:
		for i, e := range t {
			converted, err := stringKeys(e)
			if err != nil {
				return nil, err
			}
			t[i] = converted
		}
		return t, nil
	default:
		return v, nil
	}
}
