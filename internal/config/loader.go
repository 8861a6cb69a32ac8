package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if MATCHBOOK_CONFIG is set
//  3. env (prefix MATCHBOOK_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("MATCHBOOK_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoad, err)
		}
	}

	// Environment variables: MATCHBOOK_ADDR, MATCHBOOK_QUEUE_SIZE, ...
	// Map env keys like MATCHBOOK_QUEUE_SIZE -> queue_size (flat keys),
	// preserving underscores to match koanf tags on the struct.
	envProvider := env.Provider("MATCHBOOK_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "matchbook_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	if cfg.Addr == "" {
		return nil, ErrEmptyAddr
	}
	if cfg.QueueSize <= 0 {
		return nil, ErrBadQueueSize
	}
	if cfg.WorkerCount <= 0 {
		return nil, ErrBadWorkerCount
	}
	return &cfg, nil
}
