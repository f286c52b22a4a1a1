package driver_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"bedrockgen/internal/config"
	"bedrockgen/internal/driver"
	"bedrockgen/internal/emit"
	"bedrockgen/internal/patches"
	"bedrockgen/internal/scrape"
	"bedrockgen/internal/stage"
)

type fakeFetcher struct {
	calls int
	err   error
}

func (f *fakeFetcher) Ensure(ctx context.Context, url, dir string) error {
	f.calls++
	return f.err
}

type fakeStage struct {
	name  string
	files []emit.File
	err   error
	ran   *[]string
}

func (s fakeStage) Name() string                      { return s.name }
func (s fakeStage) Configure() []stage.ConfigQuestion { return nil }
func (s fakeStage) Rules() []scrape.Rule              { return nil }

func (s fakeStage) Run(context.Context, stage.Env) ([]emit.File, error) {
	if s.ran != nil {
		*s.ran = append(*s.ran, s.name)
	}
	return s.files, s.err
}

func TestRunOrderAndOverwrite(t *testing.T) {
	out := t.TempDir()
	var ran []string
	opts := driver.Options{
		OutputDir: out,
		Package:   "vanilla",
		Fetcher:   &fakeFetcher{},
		Stages: []stage.Stage{
			fakeStage{name: "first", ran: &ran, files: []emit.File{
				emit.Single("shared", []string{"old"}),
				emit.Single("only_first", []string{"a"}),
			}},
			fakeStage{name: "second", ran: &ran, files: []emit.File{
				emit.Single("only_second", []string{"b"}),
				emit.Single("shared", []string{"new"}),
			}},
		},
	}

	report, err := driver.Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if diff := cmp.Diff([]string{"first", "second"}, ran); diff != "" {
		t.Errorf("stage order (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"shared", "only_first", "only_second"}, report.Written); diff != "" {
		t.Errorf("written (-want +got):\n%s", diff)
	}

	data, err := os.ReadFile(filepath.Join(out, "shared.go"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"new"`) || strings.Contains(string(data), `"old"`) {
		t.Errorf("later stage must win:\n%s", data)
	}

	// A second identical run changes nothing.
	report, err = driver.Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if len(report.Written) != 0 || len(report.Unchanged) != 3 {
		t.Errorf("second run report = %+v", report)
	}
}

func TestRunSkipsPatchesWithoutMinecraftPath(t *testing.T) {
	report, err := driver.Run(context.Background(), driver.Options{
		OutputDir: t.TempDir(),
		Fetcher:   &fakeFetcher{},
		Stages:    []stage.Stage{patches.Stage{}},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if diff := cmp.Diff([]string{"patches"}, report.Skipped); diff != "" {
		t.Errorf("skipped (-want +got):\n%s", diff)
	}
	if len(report.Written) != 0 {
		t.Errorf("unexpected files: %v", report.Written)
	}
}

func TestRunRequiresOutputDir(t *testing.T) {
	f := &fakeFetcher{}
	_, err := driver.Run(context.Background(), driver.Options{Fetcher: f})
	if !errors.Is(err, config.ErrNoOutputDir) {
		t.Fatalf("expected ErrNoOutputDir, got %v", err)
	}
	if f.calls != 0 {
		t.Error("fetcher must not run without an output dir")
	}
}

func TestRunFetchFailureAborts(t *testing.T) {
	var ran []string
	_, err := driver.Run(context.Background(), driver.Options{
		OutputDir: t.TempDir(),
		Fetcher:   &fakeFetcher{err: errors.New("network down")},
		Stages:    []stage.Stage{fakeStage{name: "s", ran: &ran}},
	})
	if err == nil {
		t.Fatal("expected fetch error")
	}
	if len(ran) != 0 {
		t.Errorf("stages ran after failed fetch: %v", ran)
	}
}

func TestRunStageErrorAborts(t *testing.T) {
	out := t.TempDir()
	_, err := driver.Run(context.Background(), driver.Options{
		OutputDir: out,
		Fetcher:   &fakeFetcher{},
		Stages: []stage.Stage{
			fakeStage{name: "ok", files: []emit.File{emit.Single("a", nil)}},
			fakeStage{name: "bad", err: errors.New("boom")},
		},
	})
	if err == nil || !strings.Contains(err.Error(), "stage bad") {
		t.Fatalf("expected stage error, got %v", err)
	}
	entries, _ := os.ReadDir(out)
	if len(entries) != 0 {
		t.Errorf("files written despite failure: %d", len(entries))
	}
}

func TestFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.OutputDir = "gen"
	cfg.MinecraftPath = "/mc"
	cfg.Deny = []string{"Read(./x/**)"}
	opts := driver.FromConfig(cfg)
	if opts.OutputDir != "gen" || opts.MinecraftPath != "/mc" || opts.SamplesDir != cfg.Samples.Dir {
		t.Errorf("unexpected options: %+v", opts)
	}
	if diff := cmp.Diff([]string{"x/**"}, opts.Deny); diff != "" {
		t.Errorf("deny (-want +got):\n%s", diff)
	}
}

func TestDefaultStagesOrder(t *testing.T) {
	var names []string
	for _, s := range driver.DefaultStages() {
		names = append(names, s.Name())
	}
	if diff := cmp.Diff([]string{"vanilla", "samples", "enums", "patches"}, names); diff != "" {
		t.Errorf("order (-want +got):\n%s", diff)
	}
}
