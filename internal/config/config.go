// Package config loads the site build configuration.
//
// Configuration is read from an optional .team-hub.yml file in the data
// root, then overridden by TEAMHUB_-prefixed environment variables, on top
// of hardcoded defaults.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/mbland/team-hub/internal/output"
)

// FileName is the config file looked up in the site root.
const FileName = ".team-hub.yml"

const envPrefix = "TEAMHUB_"

// Config holds the complete site build configuration.
type Config struct {
	DataDir string       `koanf:"data_dir"`
	Output  OutputConfig `koanf:"output"`
	Groups  GroupsConfig `koanf:"groups"`
	Skills  SkillsConfig `koanf:"skills"`
	Log     LogConfig    `koanf:"log"`
}

// OutputConfig controls where and how the cross-referenced site data is
// written.
type OutputConfig struct {
	Dir    string `koanf:"dir"`
	Format string `koanf:"format"`
}

// GroupsConfig names the working-group collection and the member-reference
// fields resolved on each group record.
type GroupsConfig struct {
	Collection   string   `koanf:"collection"`
	MemberFields []string `koanf:"member_fields"`
}

// SkillsConfig lists the skill categories bucketed per member.
type SkillsConfig struct {
	Categories []string `koanf:"categories"`
}

// LogConfig controls the CLI logger.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Default returns the configuration used when no file or environment
// overrides exist.
func Default() *Config {
	return &Config{
		DataDir: "_data",
		Output: OutputConfig{
			Dir:    "_site/api",
			Format: string(output.FormatJSON),
		},
		Groups: GroupsConfig{
			Collection:   "working_groups",
			MemberFields: []string{"leads", "members"},
		},
		Skills: SkillsConfig{
			Categories: []string{"Languages", "Technologies", "Specialties"},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads configuration from the given YAML file, then applies
// environment overrides. A missing file is not an error; an unreadable or
// invalid one is.
//
// Environment variables map section_field names onto config paths:
//
//	TEAMHUB_DATA_DIR      -> data_dir
//	TEAMHUB_OUTPUT_FORMAT -> output.format
//	TEAMHUB_LOG_LEVEL     -> log.level
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		content, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
			}
		case os.IsNotExist(err):
			// Defaults apply.
		default:
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", transformEnv), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// transformEnv maps TEAMHUB_SECTION_FIELD_NAME to section.field_name. Only
// the first underscore becomes a separator; the remainder stays a field
// name, except for the top-level data_dir key.
func transformEnv(s string) string {
	lower := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	if lower == "data_dir" {
		return lower
	}
	parts := strings.SplitN(lower, "_", 2)
	if len(parts) == 1 {
		return lower
	}
	return parts[0] + "." + parts[1]
}

// Validate rejects configurations the build cannot honor.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir must not be empty")
	}
	if c.Groups.Collection == "" {
		return fmt.Errorf("groups.collection must not be empty")
	}
	if len(c.Groups.MemberFields) == 0 {
		return fmt.Errorf("groups.member_fields must name at least one field")
	}
	if _, err := output.ParseFormat(c.Output.Format); err != nil {
		return err
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("unsupported log format %q (supported: console, json)", c.Log.Format)
	}
	return nil
}
