// Package driver runs the stages in order and writes the generated files.
package driver

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"bedrockgen/internal/config"
	"bedrockgen/internal/emit"
	"bedrockgen/internal/enums"
	"bedrockgen/internal/patches"
	"bedrockgen/internal/samples"
	"bedrockgen/internal/stage"
	"bedrockgen/internal/vanilla"
)

// Options configures one generation run.
type Options struct {
	OutputDir string
	Package   string

	SamplesURL     string
	SamplesDir     string
	VanillaDataDir string
	MinecraftPath  string
	Deny           []string

	// Fetcher acquires the samples checkout. Nil means samples.GitFetcher.
	Fetcher samples.Fetcher
	// Stages run in order. Nil means DefaultStages().
	Stages []stage.Stage
	Logger *log.Logger
}

// Report summarises a run.
type Report struct {
	Written   []string // files created or changed
	Unchanged []string // files that already held the generated bytes
	Skipped   []string // stages that did not run
}

// DefaultStages returns the stages in their fixed run order.
func DefaultStages() []stage.Stage {
	return []stage.Stage{vanilla.Stage{}, samples.Stage{}, enums.Stage{}, patches.Stage{}}
}

// FromConfig builds run options from a resolved configuration.
func FromConfig(cfg *config.Config) Options {
	return Options{
		OutputDir:      cfg.OutputDir,
		Package:        cfg.Package,
		SamplesURL:     cfg.Samples.URL,
		SamplesDir:     cfg.Samples.Dir,
		VanillaDataDir: cfg.VanillaDataDir,
		MinecraftPath:  cfg.MinecraftPath,
		Deny:           cfg.DenyPatterns(),
	}
}

// Run makes sure the samples checkout exists, runs every stage and writes
// the resulting files. When two stages produce the same file the later one
// wins; files keep the position where their name first appeared.
func Run(ctx context.Context, opts Options) (*Report, error) {
	if opts.OutputDir == "" {
		return nil, config.ErrNoOutputDir
	}
	if opts.Package == "" {
		opts.Package = "vanilla"
	}
	if opts.Fetcher == nil {
		opts.Fetcher = samples.GitFetcher{}
	}
	if opts.Stages == nil {
		opts.Stages = DefaultStages()
	}

	env := stage.Env{
		SamplesDir:     opts.SamplesDir,
		VanillaDataDir: opts.VanillaDataDir,
		MinecraftPath:  opts.MinecraftPath,
		Deny:           opts.Deny,
		Logger:         opts.Logger,
	}
	logger := env.Log()

	logger.Info("ensuring samples checkout", "url", opts.SamplesURL, "dir", opts.SamplesDir)
	if err := opts.Fetcher.Ensure(ctx, opts.SamplesURL, opts.SamplesDir); err != nil {
		return nil, fmt.Errorf("fetch samples: %w", err)
	}
	if head := samples.Head(opts.SamplesDir); head != "" {
		logger.Debug("samples checkout", "head", head)
	}

	report := &Report{}
	var order []string
	files := make(map[string]emit.File)
	for _, s := range opts.Stages {
		if opt, ok := s.(stage.Optional); ok {
			if reason := opt.SkipReason(env); reason != "" {
				logger.Warn("skipping stage", "stage", s.Name(), "reason", reason)
				report.Skipped = append(report.Skipped, s.Name())
				continue
			}
		}
		out, err := s.Run(ctx, env)
		if err != nil {
			return nil, fmt.Errorf("stage %s: %w", s.Name(), err)
		}
		for _, f := range out {
			if _, seen := files[f.Name]; seen {
				logger.Debug("file overwritten by later stage", "file", f.Name, "stage", s.Name())
			} else {
				order = append(order, f.Name)
			}
			files[f.Name] = f
		}
	}

	for _, name := range order {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		changed, err := emit.Write(opts.OutputDir, opts.Package, files[name])
		if err != nil {
			return nil, err
		}
		if changed {
			report.Written = append(report.Written, name)
		} else {
			report.Unchanged = append(report.Unchanged, name)
		}
	}
	logger.Info("generation finished", "written", len(report.Written), "unchanged", len(report.Unchanged))
	return report, nil
}
