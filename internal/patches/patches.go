// Package patches implements the optional "patches" stage: identifiers that
// only exist in a local game installation, found under MINECRAFT_PATH.
package patches

import (
	"context"
	"strings"

	"bedrockgen/internal/document"
	"bedrockgen/internal/emit"
	"bedrockgen/internal/scrape"
	"bedrockgen/internal/stage"
)

func bp(pattern string) string { return "behavior_packs/*/" + pattern }
func rp(pattern string) string { return "resource_packs/*/" + pattern }

// Rules returns the patch rule table. Patterns are relative to the
// installation root.
func Rules() []scrape.Rule {
	return []scrape.Rule{
		scrape.DocumentRule{Name: "material", Pattern: rp("materials/**/*.material"), Transform: Materials},
		scrape.DocumentRule{Name: "atmosphere_id", Pattern: rp("atmospherics/**/*.json"), Transform: scrape.DescriptionIdentifier("minecraft:atmosphere_settings")},
		scrape.DocumentRule{Name: "color_grading_id", Pattern: rp("color_grading/**/*.json"), Transform: scrape.DescriptionIdentifier("minecraft:color_grading_settings")},
		scrape.DocumentRule{Name: "lighting_id", Pattern: rp("lighting/**/*.json"), Transform: scrape.DescriptionIdentifier("minecraft:lighting_settings")},
		scrape.DocumentRule{Name: "water_id", Pattern: rp("water/**/*.json"), Transform: scrape.DescriptionIdentifier("minecraft:water_settings")},
		scrape.DocumentRule{Name: "block_tag", Pattern: bp("blocks/**/*.json"), Transform: BlockTags},
		scrape.DocumentRule{Name: "item_tag", Pattern: bp("items/**/*.json"), Transform: ItemTags},
	}
}

// Stage implements stage.Stage for a local installation.
type Stage struct{}

var (
	_ stage.Stage    = Stage{}
	_ stage.Optional = Stage{}
)

func (Stage) Name() string { return "patches" }

func (Stage) Configure() []stage.ConfigQuestion {
	return []stage.ConfigQuestion{
		{Key: "minecraft_path", Prompt: "Minecraft installation path (empty to skip patches)"},
	}
}

func (Stage) Rules() []scrape.Rule { return Rules() }

// SkipReason reports why the stage cannot run.
func (Stage) SkipReason(env stage.Env) string {
	if env.MinecraftPath == "" {
		return "MINECRAFT_PATH is not set"
	}
	return ""
}

func (s Stage) Run(ctx context.Context, env stage.Env) ([]emit.File, error) {
	env.Log().Info("scraping minecraft installation", "path", env.MinecraftPath)
	return stage.CollectAll(ctx, env.MinecraftPath, s.Rules(), env)
}

// Materials lists the material names of a .material file. Only documents
// with a "materials" envelope contribute; "version" is not a material and
// "name:parent" yields "name".
func Materials(doc any) []string {
	mats := document.Lookup(doc, "materials")
	if document.Object(mats) == nil {
		return nil
	}
	var out []string
	for _, key := range document.Keys(mats) {
		if key == "version" {
			continue
		}
		name, _, _ := strings.Cut(key, ":")
		if name != "" {
			out = append(out, name)
		}
	}
	return out
}

// BlockTags lists the "tag:<name>" components of a custom block.
func BlockTags(doc any) []string {
	var out []string
	for _, key := range document.Keys(document.Lookup(doc, "minecraft:block", "components")) {
		if tag, ok := strings.CutPrefix(key, "tag:"); ok && tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

// ItemTags reads minecraft:item.components["minecraft:tags"].tags.
func ItemTags(doc any) []string {
	return document.Strings(document.Lookup(doc, "minecraft:item", "components", "minecraft:tags", "tags"))
}
