// Package stage defines the data-source stages the driver runs in order.
package stage

import (
	"context"

	"github.com/charmbracelet/log"

	"bedrockgen/internal/emit"
	"bedrockgen/internal/scrape"
)

// ConfigQuestion describes a single configuration prompt for a stage.
type ConfigQuestion struct {
	Key     string // config key, e.g. "minecraft_path"
	Prompt  string
	Default string
}

// Env is everything a stage may read. It is built once by the driver from
// the resolved configuration; stages never consult the process environment.
type Env struct {
	// SamplesDir is the root of the bedrock-samples checkout.
	SamplesDir string
	// VanillaDataDir holds the mojang-*.json vanilla data modules.
	VanillaDataDir string
	// MinecraftPath is the local game installation, or "" when absent.
	MinecraftPath string
	// Deny lists doublestar patterns excluded from every match.
	Deny   []string
	Logger *log.Logger
}

// Stage is one data source: a table of extraction rules plus how their
// results are grouped into generated files.
type Stage interface {
	// Name returns the stage's short identifier (e.g. "samples").
	Name() string

	// Configure returns the questions the stage needs answered by init.
	Configure() []ConfigQuestion

	// Rules returns the stage's rule table in declaration order.
	Rules() []scrape.Rule

	// Run executes every rule and returns the files to generate.
	Run(ctx context.Context, env Env) ([]emit.File, error)
}

// Optional is implemented by stages that depend on a data source which may
// legitimately be missing. A non-empty reason skips the stage.
type Optional interface {
	SkipReason(env Env) string
}
