package samples

import (
	"strings"

	"bedrockgen/internal/document"
	"bedrockgen/internal/scrape"
)

func bp(pattern string) string { return "behavior_pack/" + pattern }
func rp(pattern string) string { return "resource_pack/" + pattern }

// Rules returns the bedrock-samples rule table. Patterns are relative to the
// checkout root.
func Rules() []scrape.Rule {
	return []scrape.Rule{
		// Behavior pack.
		scrape.DocumentRule{Name: "biome_tag", Pattern: bp("biomes/**/*.json"), Transform: BiomeTags},
		scrape.DocumentRule{Name: "family_type", Pattern: bp("entities/**/*.json"), Transform: FamilyTypes},
		scrape.PathRule{Name: "loot_table", Pattern: bp("loot_tables/**/*.json"), Transform: anchored("loot_tables", false)},
		scrape.DocumentRule{Name: "recipe_id", Pattern: bp("recipes/**/*.json"), Transform: RecipeID},
		scrape.DocumentRule{Name: "recipe_tag", Pattern: bp("recipes/**/*.json"), Transform: RecipeTags},
		scrape.PathRule{Name: "trading_table", Pattern: bp("trading/**/*.json"), Transform: anchored("trading", false)},

		// Resource pack.
		scrape.DocumentRule{Name: "client_animation_id", Pattern: rp("{animation_controllers,animations}/**/*.json"), Transform: ClientAnimationIDs},
		scrape.DocumentRule{Name: "fog_id", Pattern: rp("fogs/**/*.json"), Transform: scrape.DescriptionIdentifier("minecraft:fog_settings")},
		scrape.DocumentRule{Name: "geometry_id", Pattern: rp("models/**/*.json"), Transform: GeometryIDs},
		scrape.DocumentRule{Name: "particle_id", Pattern: rp("particles/**/*.json"), Transform: scrape.DescriptionIdentifier("particle_effect")},
		scrape.DocumentRule{Name: "render_controller_id", Pattern: rp("render_controllers/**/*.json"), Transform: keysOf("render_controllers")},
		scrape.PathRule{Name: "sound_path", Pattern: rp("sounds/**/*"), Transform: SoundPath},
		scrape.DocumentRule{Name: "sound_definition_id", Pattern: rp("sounds/sound_definitions.json"), Transform: keysOf("sound_definitions")},
		scrape.DocumentRule{Name: "music_definition_id", Pattern: rp("sounds/music_definitions.json"), Transform: document.Keys},
		scrape.PathRule{Name: "texture_path", Pattern: rp("textures/**/*.{png,tga,texture_set.json}"), Transform: TexturePath},
		scrape.DocumentRule{Name: "item_texture_id", Pattern: rp("textures/item_texture.json"), Transform: keysOf("texture_data")},
		scrape.DocumentRule{Name: "terrain_texture_id", Pattern: rp("textures/terrain_texture.json"), Transform: keysOf("texture_data")},
	}
}

func anchored(anchor string, trimExt bool) func(string) (string, bool) {
	return func(p string) (string, bool) {
		return scrape.RelativePath(p, anchor, trimExt)
	}
}

func keysOf(key string) func(any) []string {
	return func(doc any) []string {
		return document.Keys(document.Lookup(doc, key))
	}
}

// ---------------------------------------------------------------------------
// Transforms
// ---------------------------------------------------------------------------

// BiomeTags reads minecraft:biome.components["minecraft:tags"].tags.
func BiomeTags(doc any) []string {
	return document.Strings(document.Lookup(doc, "minecraft:biome", "components", "minecraft:tags", "tags"))
}

// FamilyTypes gathers minecraft:type_family families from the entity's base
// components and from every component group.
func FamilyTypes(doc any) []string {
	entity := document.Lookup(doc, "minecraft:entity")
	out := document.Strings(document.Lookup(entity, "components", "minecraft:type_family", "family"))
	groups := document.Lookup(entity, "component_groups")
	for _, name := range document.Keys(groups) {
		out = append(out, document.Strings(document.Lookup(groups, name, "minecraft:type_family", "family"))...)
	}
	return out
}

// RecipeID returns the identifier of a shaped recipe, else of a shapeless
// one. Other recipe kinds yield nothing.
func RecipeID(doc any) []string {
	for _, kind := range []string{"minecraft:recipe_shaped", "minecraft:recipe_shapeless"} {
		if document.Has(doc, kind) {
			return scrape.One(document.String(document.Lookup(doc, kind, "description", "identifier")))
		}
	}
	return nil
}

// RecipeTags returns the tags of the recipe body. Recipe files carry a single
// body beside format_version; should there be more, the first in sorted key
// order that declares a tags array wins.
func RecipeTags(doc any) []string {
	for _, key := range document.Keys(doc) {
		if key == "format_version" {
			continue
		}
		if tags, ok := document.Lookup(doc, key, "tags").([]any); ok {
			return document.Strings(tags)
		}
	}
	return nil
}

// ClientAnimationIDs lists animation controller ids, or animation ids when
// the document holds animations instead.
func ClientAnimationIDs(doc any) []string {
	if document.Has(doc, "animation_controllers") {
		return document.Keys(document.Lookup(doc, "animation_controllers"))
	}
	return document.Keys(document.Lookup(doc, "animations"))
}

// GeometryIDs handles both model encodings: the minecraft:geometry list
// and the legacy format where each "geometry.x[:parent]" key is a model.
func GeometryIDs(doc any) []string {
	if list, ok := document.Lookup(doc, "minecraft:geometry").([]any); ok {
		var out []string
		for _, g := range list {
			if id, ok := document.String(document.Lookup(g, "description", "identifier")); ok {
				out = append(out, id)
			}
		}
		return out
	}

	var out []string
	for _, key := range document.Keys(doc) {
		if !strings.HasPrefix(key, "geometry.") {
			continue
		}
		if strings.Contains(key, ":") {
			key = strings.Split(key, ":")[1]
		}
		out = append(out, key)
	}
	return out
}

// SoundPath maps a sound asset to its path from "sounds", without
// extension. JSON files under sounds/ are definitions, not sounds.
func SoundPath(p string) (string, bool) {
	if strings.HasSuffix(p, ".json") {
		return "", false
	}
	return scrape.RelativePath(p, "sounds", true)
}

// TexturePath maps a texture asset to its path from "textures", without
// extension; PBR texture sets drop their ".texture_set" suffix too.
func TexturePath(p string) (string, bool) {
	rel, ok := scrape.RelativePath(p, "textures", true)
	if !ok {
		return "", false
	}
	rel = strings.TrimSuffix(rel, ".texture_set")
	return rel, rel != ""
}
