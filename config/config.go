// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

var (
	// Root is the directory for repeats' settings and scratch space
	Root = filepath.Join(home(), ".repeats")

	// RootSettingsFile is the default settings file, overridden with --settings
	RootSettingsFile = filepath.Join(Root, "settings.yaml")
)

// ToolsConfig holds the paths to the external binaries called by the
// seed sampling experiments
type ToolsConfig struct {
	// the sequence aligner, run both for seed counts and sampled alignments
	Lastz string `mapstructure:"lastz"`

	// builds the seed scores table from raw seed counts
	SeedScores string `mapstructure:"seed-scores"`

	// splits sequences into overlapping chunks
	Chunker string `mapstructure:"chunker"`
}

// SamplingConfig are the defaults for the seed sampling experiments
type SamplingConfig struct {
	// length of each sequence chunk
	ChunkSize int `mapstructure:"chunk-size"`

	// overlap between neighboring chunks
	OverlapSize int `mapstructure:"overlap-size"`

	// seeds seen fewer times than this aren't scored
	CountThreshold int `mapstructure:"count-threshold"`

	// stats columns written to the output table
	Columns []string `mapstructure:"columns"`
}

// WorkflowConfig is for the job runner
type WorkflowConfig struct {
	// directory for the file store. a run directory is created beneath it
	WorkDir string `mapstructure:"work-dir"`

	// max number of jobs executing at once
	MaxParallel int `mapstructure:"max-parallel"`

	// keep the file store after the run, for debugging
	Keep bool `mapstructure:"keep"`
}

// Config is the root-level settings struct and is a mix
// of settings available in settings.yaml and those
// available from the command line
type Config struct {
	// log level: debug, info, warn or error
	LogLevel string `mapstructure:"log-level"`

	// paths to external binaries
	Tools ToolsConfig `mapstructure:"tools"`

	// seed sampling defaults
	Sampling SamplingConfig `mapstructure:"sampling"`

	// job runner settings
	Workflow WorkflowConfig `mapstructure:"workflow"`
}

func init() {
	SetDefaults(viper.GetViper())
}

// SetDefaults fills v with the settings used when no settings file is found
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log-level", "info")

	v.SetDefault("tools.lastz", "cactus_lastz")
	v.SetDefault("tools.seed-scores", "cactus_blast_makeSeedScoresTable")
	v.SetDefault("tools.chunker", "cactus_blast_chunkSequences")

	v.SetDefault("sampling.chunk-size", 5000)
	v.SetDefault("sampling.overlap-size", 1000)
	v.SetDefault("sampling.count-threshold", 2)
	v.SetDefault("sampling.columns", []string{"HSPs"})

	v.SetDefault("workflow.work-dir", os.TempDir())
	v.SetDefault("workflow.max-parallel", runtime.NumCPU())
	v.SetDefault("workflow.keep", false)
}

// New returns a new Config struct populated by
// Viper settings (either from the settings file)
// and/or command line arguments
func New() *Config {
	c, err := Load(viper.GetViper())
	if err != nil {
		log.Fatalf("unable to decode into struct, %v", err)
	}
	return c
}

// Load reads the settings file named by the "settings" key, if there is one,
// and decodes v into a Config
func Load(v *viper.Viper) (*Config, error) {
	if settings := v.GetString("settings"); settings != "" {
		if _, err := os.Stat(settings); err == nil {
			v.SetConfigFile(settings)
			if err := v.MergeInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read settings file %s: %w", settings, err)
			}
		} else if settings != RootSettingsFile {
			// only the default settings file is allowed to be missing
			return nil, fmt.Errorf("failed to find settings file %s: %w", settings, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}

	if c.Workflow.MaxParallel < 1 {
		c.Workflow.MaxParallel = 1
	}
	return &c, nil
}

func home() string {
	dir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return dir
}
