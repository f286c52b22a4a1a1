package emit_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"bedrockgen/internal/emit"
)

func TestRender(t *testing.T) {
	got, err := emit.Render("vanilla", []emit.Group{
		{Name: "BlockId", Items: []string{"minecraft:dirt", "minecraft:stone"}},
		{Name: "Empty"},
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := `// Code generated by bedrockgen; DO NOT EDIT.

package vanilla

import mapset "github.com/deckarep/golang-set/v2"

var BlockId = mapset.NewThreadUnsafeSet(
	"minecraft:dirt",
	"minecraft:stone",
)

var Empty = mapset.NewThreadUnsafeSet[string]()
`
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("Render mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderNoGroupsOmitsImport(t *testing.T) {
	got, err := emit.Render("vanilla", nil)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(got), "import") {
		t.Errorf("unexpected import in empty file:\n%s", got)
	}
	if !strings.HasPrefix(string(got), emit.Header) {
		t.Errorf("missing header:\n%s", got)
	}
}

func TestRenderQuotesItems(t *testing.T) {
	got, err := emit.Render("p", []emit.Group{{Name: "X", Items: []string{`a"b`}}})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(got), `"a\"b",`) {
		t.Errorf("item not quoted:\n%s", got)
	}
}

func TestRenderDeterministic(t *testing.T) {
	groups := []emit.Group{{Name: "SoundPath", Items: []string{"sounds/a", "sounds/b"}}}
	a, err := emit.Render("vanilla", groups)
	if err != nil {
		t.Fatal(err)
	}
	b, err := emit.Render("vanilla", groups)
	if err != nil {
		t.Fatal(err)
	}
	if string(a) != string(b) {
		t.Error("Render is not deterministic")
	}
}

func TestWriteIdempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	f := emit.Single("block_id", []string{"dirt", "minecraft:dirt"})

	changed, err := emit.Write(dir, "vanilla", f)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !changed {
		t.Error("first write should report changed")
	}
	first, err := os.ReadFile(filepath.Join(dir, "block_id.go"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(first), "var BlockId = ") {
		t.Errorf("unexpected content:\n%s", first)
	}

	changed, err = emit.Write(dir, "vanilla", f)
	if err != nil {
		t.Fatal(err)
	}
	if changed {
		t.Error("second identical write should report unchanged")
	}
	second, _ := os.ReadFile(filepath.Join(dir, "block_id.go"))
	if string(first) != string(second) {
		t.Error("content changed between identical writes")
	}

	f.Groups[0].Items = append(f.Groups[0].Items, "stone")
	changed, err = emit.Write(dir, "vanilla", f)
	if err != nil {
		t.Fatal(err)
	}
	if !changed {
		t.Error("modified content should report changed")
	}

	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".tmp-") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestPascalCase(t *testing.T) {
	tests := map[string]string{
		"block_id":             "BlockId",
		"render_controller_id": "RenderControllerId",
		"sound-path":           "SoundPath",
		"FOG":                  "Fog",
		"":                     "",
	}
	for in, want := range tests {
		if got := emit.PascalCase(in); got != want {
			t.Errorf("PascalCase(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSnakeCase(t *testing.T) {
	tests := map[string]string{
		"EquipmentSlot": "equipment_slot",
		"CameraEasing":  "camera_easing",
		"hud element":   "hud_element",
		"block_id":      "block_id",
	}
	for in, want := range tests {
		if got := emit.SnakeCase(in); got != want {
			t.Errorf("SnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}
