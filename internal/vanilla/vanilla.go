// Package vanilla implements the "vanilla" stage: the game's canonical
// enumerations read from the vanilla data modules shipped in the
// bedrock-samples metadata, normalized with a per-table prefix policy.
package vanilla

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"bedrockgen/internal/document"
	"bedrockgen/internal/emit"
	"bedrockgen/internal/identset"
	"bedrockgen/internal/prefix"
	"bedrockgen/internal/scrape"
	"bedrockgen/internal/stage"
)

// ModulesDir is the vanilla data location inside a bedrock-samples checkout.
const ModulesDir = "metadata/vanilladata_modules"

// Table is one vanilla enumeration.
type Table struct {
	Output string
	Module string // file name under the modules directory
	Policy prefix.Policy
}

// Tables lists the enumerations in emission order.
var Tables = []Table{
	{Output: "biome_id", Module: "mojang-biomes.json", Policy: prefix.ForcePrefixed},
	{Output: "block_id", Module: "mojang-blocks.json", Policy: prefix.Both},
	{Output: "camera_id", Module: "mojang-cameras.json", Policy: prefix.ForcePrefixed},
	{Output: "cooldown_category", Module: "mojang-cooldown-categories.json", Policy: prefix.StripPrefix},
	{Output: "effect_id", Module: "mojang-effects.json", Policy: prefix.StripPrefix},
	{Output: "entity_id", Module: "mojang-entities.json", Policy: prefix.Both},
	{Output: "enchantment_id", Module: "mojang-enchantments.json", Policy: prefix.StripPrefix},
	{Output: "feature_id", Module: "mojang-features.json", Policy: prefix.ForcePrefixed},
	{Output: "item_id", Module: "mojang-items.json", Policy: prefix.Both},
}

// blockStates is read from the blocks module and emitted without a policy.
var blockStates = scrape.DocumentRule{Name: "block_state", Pattern: "mojang-blocks.json", Transform: BlockStates}

// Stage implements stage.Stage for the vanilla data modules.
type Stage struct{}

var _ stage.Stage = Stage{}

func (Stage) Name() string { return "vanilla" }

func (Stage) Configure() []stage.ConfigQuestion {
	return []stage.ConfigQuestion{
		{Key: "vanilla_data_dir", Prompt: "vanilla data modules directory (empty: use the samples checkout)"},
	}
}

// Rules returns one rule per table followed by the block state rule.
func (Stage) Rules() []scrape.Rule {
	rules := make([]scrape.Rule, 0, len(Tables)+1)
	for _, t := range Tables {
		rules = append(rules, t.Rule())
	}
	return append(rules, blockStates)
}

// Rule returns the document rule reading the table's module.
func (t Table) Rule() scrape.DocumentRule {
	return scrape.DocumentRule{Name: t.Output, Pattern: t.Module, Transform: DataItemNames}
}

// Dir returns the modules directory for env.
func Dir(env stage.Env) string {
	if env.VanillaDataDir != "" {
		return env.VanillaDataDir
	}
	return path.Join(filepath.ToSlash(env.SamplesDir), ModulesDir)
}

// Run emits one file per table whose module exists. A missing module is
// logged and its table skipped.
func (s Stage) Run(ctx context.Context, env stage.Env) ([]emit.File, error) {
	dir := Dir(env)
	env.Log().Info("reading vanilla data", "dir", dir)

	var files []emit.File
	for _, t := range Tables {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		items, ok, err := collect(dir, t.Rule(), env)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		items = identset.SortedUnique(prefix.Apply(t.Policy, items))
		env.Log().Debug("collected", "rule", t.Output, "policy", t.Policy, "items", len(items))
		files = append(files, emit.Single(t.Output, items))
	}

	items, ok, err := collect(dir, blockStates, env)
	if err != nil {
		return nil, err
	}
	if ok {
		files = append(files, emit.Single(blockStates.Name, items))
	}
	return files, nil
}

func collect(dir string, r scrape.DocumentRule, env stage.Env) ([]string, bool, error) {
	_, err := os.Stat(filepath.Join(dir, r.Pattern))
	if errors.Is(err, fs.ErrNotExist) {
		env.Log().Warn("vanilla module missing, skipping", "rule", r.Name, "module", r.Pattern)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("vanilla: %s: %w", r.Name, err)
	}
	items, err := scrape.Collect(dir, r, env.Deny)
	if err != nil {
		return nil, false, fmt.Errorf("vanilla: %w", err)
	}
	return items, true, nil
}

// DataItemNames reads data_items[].name.
func DataItemNames(doc any) []string {
	return names(document.Lookup(doc, "data_items"))
}

// BlockStates reads block_properties[].name.
func BlockStates(doc any) []string {
	return names(document.Lookup(doc, "block_properties"))
}

func names(list any) []string {
	entries, _ := list.([]any)
	var out []string
	for _, e := range entries {
		if name, ok := document.String(document.Lookup(e, "name")); ok {
			out = append(out, name)
		}
	}
	return out
}
