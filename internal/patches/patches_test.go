package patches_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"bedrockgen/internal/document"
	"bedrockgen/internal/patches"
	"bedrockgen/internal/stage"
)

func parse(t *testing.T, src string) any {
	t.Helper()
	v, err := document.Parse([]byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return v
}

func TestMaterials(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"envelope", `{"materials": {"version": "1.0.0", "foo:bar": {}, "baz": {}}}`, []string{"baz", "foo"}},
		{"no envelope", `{"foo": {}, "bar": {}}`, nil},
		{"empty fragment", `{"materials": {":parent": {}, "ok": {}}}`, []string{"ok"}},
		{"envelope not an object", `{"materials": []}`, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, patches.Materials(parse(t, tc.src))); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBlockTags(t *testing.T) {
	doc := parse(t, `{"minecraft:block": {"components": {
		"tag:wood": {},
		"minecraft:geometry": "geometry.x",
		"tag:": {},
		"tag:stone": {}
	}}}`)
	if diff := cmp.Diff([]string{"stone", "wood"}, patches.BlockTags(doc)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestItemTags(t *testing.T) {
	doc := parse(t, `{"minecraft:item": {"components": {"minecraft:tags": {"tags": ["minecraft:is_tool", "custom:x"]}}}}`)
	if diff := cmp.Diff([]string{"minecraft:is_tool", "custom:x"}, patches.ItemTags(doc)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestSkipReason(t *testing.T) {
	if (patches.Stage{}).SkipReason(stage.Env{}) == "" {
		t.Error("expected a skip reason without a minecraft path")
	}
	if r := (patches.Stage{}).SkipReason(stage.Env{MinecraftPath: "/games/mc"}); r != "" {
		t.Errorf("unexpected skip reason %q", r)
	}
}

func TestRun(t *testing.T) {
	root := t.TempDir()
	files := map[string]string{
		"resource_packs/vanilla/materials/sad.material":     `{"materials": {"version": "1.0.0", "foo:bar": {}, "baz": {}}}`,
		"resource_packs/vanilla/materials/other/x.material": `{"materials": {"foo": {}}}`,
		"resource_packs/vanilla/atmospherics/default.json":  `{"minecraft:atmosphere_settings": {"description": {"identifier": "minecraft:default_atmospherics"}}}`,
		"resource_packs/vanilla/water/default.json":         `{"minecraft:water_settings": {"description": {"identifier": "minecraft:default_water"}}}`,
		"behavior_packs/vanilla/items/stick.json":           `{"minecraft:item": {"components": {"minecraft:tags": {"tags": ["minecraft:is_tool"]}}}}`,
		"resource_packs/vanilla/lighting/global.json":       `/* lighting */ {"minecraft:lighting_settings": {"description": {"identifier": "minecraft:default_lighting"},}}`,
	}
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	out, err := patches.Stage{}.Run(context.Background(), stage.Env{MinecraftPath: root})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	got := make(map[string][]string)
	for _, f := range out {
		got[f.Name] = f.Groups[0].Items
	}
	want := map[string][]string{
		"material":         {"baz", "foo"},
		"atmosphere_id":    {"minecraft:default_atmospherics"},
		"color_grading_id": nil,
		"lighting_id":      {"minecraft:default_lighting"},
		"water_id":         {"minecraft:default_water"},
		"block_tag":        nil,
		"item_tag":         {"minecraft:is_tool"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}
