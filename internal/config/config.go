// Package config loads bedrockgen settings from bedrockgen.yaml and the
// environment.
//
// File layout:
//
//	output_dir: ../vanilla
//	package: vanilla
//	minecraft_path: C:/XboxGames/Minecraft/Content/data
//	samples:
//	  url: https://github.com/Mojang/bedrock-samples.git
//	  dir: temp/bedrock-samples
//	vanilla_data_dir: ""
//	log_level: info
//	deny:
//	  - "Read(./resource_packs/*/textures/ui/**)"
package config

import (
	"errors"
	"fmt"
	"go/token"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"bedrockgen/internal/pathmatch"
	"bedrockgen/internal/samples"
)

// DefaultPath is the config file read when none is given.
const DefaultPath = "bedrockgen.yaml"

// EnvMinecraftPath names the environment variable holding the game
// installation path.
const EnvMinecraftPath = "MINECRAFT_PATH"

// ErrNoOutputDir is returned by Validate when no output directory is set.
var ErrNoOutputDir = errors.New("no output directory given (use -o)")

// Config is the resolved configuration of one run.
type Config struct {
	OutputDir      string   `yaml:"output_dir,omitempty"`
	Package        string   `yaml:"package,omitempty"`
	MinecraftPath  string   `yaml:"minecraft_path,omitempty"`
	Samples        Samples  `yaml:"samples"`
	VanillaDataDir string   `yaml:"vanilla_data_dir,omitempty"`
	LogLevel       string   `yaml:"log_level,omitempty"`
	Deny           []string `yaml:"deny,omitempty"`
}

// Samples locates the bedrock-samples repository.
type Samples struct {
	URL string `yaml:"url,omitempty"`
	Dir string `yaml:"dir,omitempty"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Package:  "vanilla",
		Samples:  Samples{URL: samples.DefaultURL, Dir: samples.DefaultDir},
		LogLevel: "info",
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", path, err)
	}
	cfg.MinecraftPath = normalizePath(cfg.MinecraftPath)
	return cfg, nil
}

// ApplyEnv overrides fields from the environment. getenv is usually
// os.Getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if p := getenv(EnvMinecraftPath); p != "" {
		c.MinecraftPath = normalizePath(p)
	}
}

// Validate checks the configuration is usable for a run.
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return ErrNoOutputDir
	}
	if !token.IsIdentifier(c.Package) {
		return fmt.Errorf("config: package %q is not a valid Go identifier", c.Package)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: log_level: %w", err)
	}
	if err := pathmatch.ValidateDeny(c.DenyPatterns()); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// DenyPatterns returns the deny rules as bare doublestar patterns.
func (c *Config) DenyPatterns() []string {
	out := make([]string, 0, len(c.Deny))
	for _, rule := range c.Deny {
		out = append(out, ParseDenyRule(rule))
	}
	return out
}

// ParseDenyRule extracts the path glob from a deny rule.
//
//	"Read(./textures/ui/**)" → "textures/ui/**"
//	"textures/ui/**"         → "textures/ui/**"
func ParseDenyRule(rule string) string {
	if strings.HasPrefix(rule, "Read(") && strings.HasSuffix(rule, ")") {
		rule = rule[5 : len(rule)-1]
	}
	return strings.TrimPrefix(rule, "./")
}

// Keys lists the settable keys in file order.
var Keys = []string{
	"output_dir", "package", "minecraft_path", "samples.url", "samples.dir", "vanilla_data_dir", "log_level",
}

// Set assigns a scalar value by its dotted key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "output_dir":
		c.OutputDir = value
	case "package":
		if !token.IsIdentifier(value) {
			return fmt.Errorf("config: package %q is not a valid Go identifier", value)
		}
		c.Package = value
	case "minecraft_path":
		c.MinecraftPath = normalizePath(value)
	case "samples.url":
		c.Samples.URL = value
	case "samples.dir":
		c.Samples.Dir = value
	case "vanilla_data_dir":
		c.VanillaDataDir = value
	case "log_level":
		if _, err := log.ParseLevel(value); err != nil {
			return fmt.Errorf("config: log_level: %w", err)
		}
		c.LogLevel = value
	default:
		return fmt.Errorf("config: unknown key %q", key)
	}
	return nil
}

// Get returns the value of a settable key, or "" for unknown keys.
func (c *Config) Get(key string) string {
	switch key {
	case "output_dir":
		return c.OutputDir
	case "package":
		return c.Package
	case "minecraft_path":
		return c.MinecraftPath
	case "samples.url":
		return c.Samples.URL
	case "samples.dir":
		return c.Samples.Dir
	case "vanilla_data_dir":
		return c.VanillaDataDir
	case "log_level":
		return c.LogLevel
	}
	return ""
}

// Save writes cfg to path. Errors if the file already exists.
func Save(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config %s already exists", path)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// normalizePath turns Windows separators into forward slashes.
func normalizePath(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}
