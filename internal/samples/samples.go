// Package samples implements the "samples" stage: identifier tables scraped
// from a checkout of Mojang's bedrock-samples repository.
package samples

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"

	"bedrockgen/internal/emit"
	"bedrockgen/internal/scrape"
	"bedrockgen/internal/stage"
)

// DefaultURL is the upstream sample-content repository.
const DefaultURL = "https://github.com/Mojang/bedrock-samples.git"

// DefaultDir is where the repository is checked out when not configured.
const DefaultDir = "temp/bedrock-samples"

// Stage implements stage.Stage for the bedrock-samples checkout.
type Stage struct{}

var _ stage.Stage = Stage{}

func (Stage) Name() string { return "samples" }

func (Stage) Configure() []stage.ConfigQuestion {
	return []stage.ConfigQuestion{
		{Key: "samples.url", Prompt: "bedrock-samples repository URL", Default: DefaultURL},
		{Key: "samples.dir", Prompt: "bedrock-samples checkout directory", Default: DefaultDir},
	}
}

func (Stage) Rules() []scrape.Rule { return Rules() }

// Run scrapes every rule against the checkout root.
func (s Stage) Run(ctx context.Context, env stage.Env) ([]emit.File, error) {
	env.Log().Info("scraping bedrock samples", "dir", env.SamplesDir)
	return stage.CollectAll(ctx, env.SamplesDir, s.Rules(), env)
}

// ---------------------------------------------------------------------------
// Repository acquisition
// ---------------------------------------------------------------------------

// Fetcher makes sure a repository checkout exists at dir.
type Fetcher interface {
	Ensure(ctx context.Context, url, dir string) error
}

// GitFetcher clones with go-git. Progress, when set, receives the remote's
// progress output.
type GitFetcher struct {
	Progress io.Writer
}

// Ensure leaves an existing dir untouched and otherwise performs a shallow
// clone of url into it. A failed clone removes the partial checkout.
func (g GitFetcher) Ensure(ctx context.Context, url, dir string) error {
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("samples: %s exists and is not a directory", dir)
		}
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("samples: stat %s: %w", dir, err)
	}

	if err := os.MkdirAll(filepath.Dir(dir), 0o755); err != nil {
		return fmt.Errorf("samples: create parent dir: %w", err)
	}
	_, err = git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:          url,
		Depth:        1,
		SingleBranch: true,
		Progress:     g.Progress,
	})
	if err != nil {
		_ = os.RemoveAll(dir)
		return fmt.Errorf("samples: git clone %s: %w", url, err)
	}
	return nil
}

// Head returns the HEAD commit of the checkout at dir, or "" when dir is
// not a git repository.
func Head(dir string) string {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return ""
	}
	ref, err := repo.Head()
	if err != nil {
		return ""
	}
	return ref.Hash().String()
}
