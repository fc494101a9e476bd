package app

import (
	"errors"
	"time"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ManifestPath string // feature graph manifest file or directory
	SourceDir    string // native source root
	OutDir       string // artifact output directory
	SurfaceOut   string // symbol list output file; empty writes to stdout

	Features []string // requested flags; empty uses the graph defaults

	OS   string // target operating system
	Arch string // target architecture
	CC   string // C compiler binary
	AR   string // static archiver binary

	LogFormat   string
	LogLevel    string
	WorkerCount int
	UnitTimeout time.Duration
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ManifestPath == "" {
		return nil, errors.New("ManifestPath is a required configuration field and cannot be empty")
	}
	if cfg.SourceDir == "" {
		return nil, errors.New("SourceDir is a required configuration field and cannot be empty")
	}
	if cfg.OutDir == "" {
		return nil, errors.New("OutDir is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
