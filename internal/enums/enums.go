// Package enums implements the "enums" stage: selected command enums from
// the bedrock-samples command metadata.
package enums

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"bedrockgen/internal/document"
	"bedrockgen/internal/emit"
	"bedrockgen/internal/identset"
	"bedrockgen/internal/scrape"
	"bedrockgen/internal/stage"
)

// CommandsModule is the command metadata file inside the samples checkout.
const CommandsModule = "metadata/command_modules/mojang-commands.json"

// CommandFile collects every exported enum without its own file.
const CommandFile = "command_enum"

// Export maps an upstream enum name to its generated group.
type Export struct {
	Enum  string
	Group string
	// OwnFile emits the group alone into a file named after it, without the
	// "Command" group prefix.
	OwnFile bool
}

// Exports lists the enums that are generated. Others are ignored.
var Exports = []Export{
	{Enum: "EntityEquipmentSlot", Group: "EquipmentSlot", OwnFile: true},
	{Enum: "Easing", Group: "CameraEasing"},
	{Enum: "DamageCause", Group: "DamageCause"},
	{Enum: "Difficulty", Group: "Difficulty"},
	{Enum: "GameMode", Group: "GameMode"},
	{Enum: "BoolGameRule", Group: "BoolGameRule"},
	{Enum: "IntGameRule", Group: "IntGameRule"},
	{Enum: "HudElement", Group: "HudElement"},
	{Enum: "permission", Group: "InputPermission"},
	{Enum: "MobEvent", Group: "MobEvent"},
}

// GroupName is the generated variable name.
func (e Export) GroupName() string {
	if e.OwnFile {
		return e.Group
	}
	return "Command" + e.Group
}

// Rule returns a document rule reading the enum's values.
func (e Export) Rule() scrape.DocumentRule {
	return scrape.DocumentRule{
		Name:      emit.SnakeCase(e.GroupName()),
		Pattern:   CommandsModule,
		Transform: Values(e.Enum),
	}
}

// Stage implements stage.Stage for the command enums.
type Stage struct{}

var _ stage.Stage = Stage{}

func (Stage) Name() string { return "enums" }

func (Stage) Configure() []stage.ConfigQuestion { return nil }

func (Stage) Rules() []scrape.Rule {
	rules := make([]scrape.Rule, 0, len(Exports))
	for _, e := range Exports {
		rules = append(rules, e.Rule())
	}
	return rules
}

// Run reads the command module once and groups the exported enums in the
// order they appear in the document. Enums without values are skipped.
// The shared command file is emitted even when it ends up empty.
func (Stage) Run(ctx context.Context, env stage.Env) ([]emit.File, error) {
	p := filepath.Join(env.SamplesDir, filepath.FromSlash(CommandsModule))
	doc, err := document.Read(p)
	if errors.Is(err, fs.ErrNotExist) {
		env.Log().Warn("command metadata missing, skipping", "path", p)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("enums: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Build(doc), nil
}

// Build turns a parsed command module into the generated files: one file
// per OwnFile export followed by the shared command file.
func Build(doc any) []emit.File {
	byEnum := make(map[string]Export, len(Exports))
	for _, e := range Exports {
		byEnum[e.Enum] = e
	}

	var files []emit.File
	shared := emit.File{Name: CommandFile}
	list, _ := document.Lookup(doc, "command_enums").([]any)
	for _, ce := range list {
		name, _ := document.String(document.Lookup(ce, "name"))
		exp, ok := byEnum[name]
		if !ok {
			continue
		}
		items := identset.SortedUnique(enumValues(ce))
		if len(items) == 0 {
			continue
		}
		g := emit.Group{Name: exp.GroupName(), Items: items}
		if exp.OwnFile {
			files = append(files, emit.File{Name: emit.SnakeCase(exp.Group), Groups: []emit.Group{g}})
			continue
		}
		shared.Groups = append(shared.Groups, g)
	}
	return append(files, shared)
}

// Values returns a transform extracting the values of the named enum.
func Values(enum string) func(doc any) []string {
	return func(doc any) []string {
		list, _ := document.Lookup(doc, "command_enums").([]any)
		for _, ce := range list {
			if name, _ := document.String(document.Lookup(ce, "name")); name == enum {
				return enumValues(ce)
			}
		}
		return nil
	}
}

func enumValues(ce any) []string {
	values, _ := document.Lookup(ce, "values").([]any)
	var out []string
	for _, v := range values {
		if s, ok := document.String(document.Lookup(v, "value")); ok {
			out = append(out, s)
		}
	}
	return out
}
