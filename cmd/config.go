package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	defaultPrompt         = "repl> "
	defaultMaxStackHeight = 10000
)

// Config holds the settings that may be given in a configuration file.
type Config struct {
	Prompt         string `yaml:"prompt"`
	HistoryFile    string `yaml:"history_file"`
	MaxStackHeight int    `yaml:"max_stack_height"`
	Verbose        bool   `yaml:"verbose"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Prompt:         defaultPrompt,
		MaxStackHeight: defaultMaxStackHeight,
	}
}

// LoadConfig reads a YAML configuration file.  Settings missing from the file
// keep their default values.
func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(b)
}

// ParseConfig parses YAML configuration data.  Unknown keys are an error.
func ParseConfig(b []byte) (*Config, error) {
	conf := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	err := dec.Decode(conf)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if conf.MaxStackHeight < 0 {
		return nil, fmt.Errorf("invalid configuration: negative max_stack_height: %d", conf.MaxStackHeight)
	}
	return conf, nil
}

// loadCommandConfig returns the configuration for cmd.  Flags given
// explicitly on the command line override values from the file.
func loadCommandConfig(cmd *cobra.Command) (*Config, error) {
	conf := DefaultConfig()
	if configPath != "" {
		var err error
		conf, err = LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("config %s: %w", configPath, err)
		}
	}
	flags := cmd.Flags()
	if flags.Changed("max-stack-height") {
		conf.MaxStackHeight = maxStackHeight
	}
	if flags.Changed("verbose") {
		conf.Verbose = verbose
	}
	if flags.Lookup("prompt") != nil && flags.Changed("prompt") {
		conf.Prompt = replPrompt
	}
	if flags.Lookup("history") != nil && flags.Changed("history") {
		conf.HistoryFile = replHistory
	}
	return conf, nil
}
