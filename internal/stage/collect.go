package stage

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"bedrockgen/internal/emit"
	"bedrockgen/internal/scrape"
)

var discard = log.New(io.Discard)

// Log returns the env's logger, or a logger that drops everything.
func (e Env) Log() *log.Logger {
	if e.Logger == nil {
		return discard
	}
	return e.Logger
}

// CollectAll runs each rule against root and returns one single-group file
// per rule, in rule order.
func CollectAll(ctx context.Context, root string, rules []scrape.Rule, env Env) ([]emit.File, error) {
	files := make([]emit.File, 0, len(rules))
	for _, r := range rules {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		items, err := scrape.Collect(root, r, env.Deny)
		if err != nil {
			return nil, err
		}
		env.Log().Debug("collected", "rule", r.Output(), "kind", scrape.Kind(r), "items", len(items))
		files = append(files, emit.Single(r.Output(), items))
	}
	return files, nil
}
