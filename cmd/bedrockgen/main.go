package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"bedrockgen/internal/config"
	"bedrockgen/internal/driver"
	"bedrockgen/internal/samples"
	"bedrockgen/internal/scrape"
	"bedrockgen/internal/stage"
)

func newLogger(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{Prefix: "bedrockgen"})
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "bedrockgen",
		Short: "Generate Go identifier sets from Minecraft Bedrock data",
		Long: `bedrockgen scrapes identifier lists (block ids, entity ids, sounds, recipes, ...)
from the vanilla data modules, a bedrock-samples checkout, the command metadata
and optionally a local game installation, and writes them as Go set literals.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newGenerateCmd(), newRulesCmd(), newInitCmd())
	return root
}

// ---------------------------------------------------------------------------
// generate
// ---------------------------------------------------------------------------

type generateFlags struct {
	configPath    string
	outputDir     string
	pkg           string
	minecraftPath string
	samplesDir    string
	logLevel      string
}

func newGenerateCmd() *cobra.Command {
	var f generateFlags
	cmd := &cobra.Command{
		Use:   "generate -o <dir>",
		Short: "Scrape every source and write the generated files",
		Long: `Scrape every source and write one Go file per identifier table into <dir>.

The bedrock-samples repository is cloned (depth 1) when the checkout directory
does not exist. The patches stage runs only when MINECRAFT_PATH or
minecraft_path is set. Files whose content is unchanged are not rewritten.
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, f)
		},
	}
	cmd.Flags().StringVarP(&f.outputDir, "out", "o", "", "output directory for generated files")
	cmd.Flags().StringVarP(&f.configPath, "config", "c", config.DefaultPath, "config file")
	cmd.Flags().StringVar(&f.pkg, "package", "", "package name of the generated files")
	cmd.Flags().StringVar(&f.minecraftPath, "minecraft-path", "", "local Minecraft installation (overrides "+config.EnvMinecraftPath+")")
	cmd.Flags().StringVar(&f.samplesDir, "samples-dir", "", "bedrock-samples checkout directory")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "", "debug, info, warn or error")
	return cmd
}

func runGenerate(cmd *cobra.Command, f generateFlags) error {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return err
	}
	cfg.ApplyEnv(os.Getenv)
	for key, v := range map[string]string{
		"output_dir":     f.outputDir,
		"package":        f.pkg,
		"minecraft_path": f.minecraftPath,
		"samples.dir":    f.samplesDir,
		"log_level":      f.logLevel,
	} {
		if v != "" {
			if err := cfg.Set(key, v); err != nil {
				return err
			}
		}
	}
	if err := cfg.Validate(); err != nil {
		if errors.Is(err, config.ErrNoOutputDir) {
			fmt.Fprintln(cmd.ErrOrStderr(), cmd.UsageString())
		}
		return err
	}

	logger := newLogger(cmd.ErrOrStderr())
	level, _ := log.ParseLevel(cfg.LogLevel)
	logger.SetLevel(level)

	opts := driver.FromConfig(cfg)
	opts.Logger = logger
	fetcher := samples.GitFetcher{}
	if level <= log.DebugLevel {
		fetcher.Progress = cmd.ErrOrStderr()
	}
	opts.Fetcher = fetcher

	report, err := driver.Run(cmd.Context(), opts)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d files to %s (%d unchanged)\n",
		len(report.Written), cfg.OutputDir, len(report.Unchanged))
	if len(report.Skipped) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "skipped: %s\n", strings.Join(report.Skipped, ", "))
	}
	return nil
}

// ---------------------------------------------------------------------------
// rules
// ---------------------------------------------------------------------------

func newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List every extraction rule",
		Long: `List every extraction rule with its stage, kind and glob pattern, in run order.
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printRules(cmd.OutOrStdout(), driver.DefaultStages())
			return nil
		},
	}
}

func printRules(w io.Writer, stages []stage.Stage) {
	for _, s := range stages {
		for _, r := range s.Rules() {
			fmt.Fprintf(w, "%-8s %-26s %-8s %s\n", s.Name(), r.Output(), scrape.Kind(r), r.Glob())
		}
	}
}

// ---------------------------------------------------------------------------
// init
// ---------------------------------------------------------------------------

// ask is the prompt used by init; tests replace it.
var ask = promptQuestions

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [file]",
		Short: "Write a config file interactively",
		Long: `Prompt for configuration values and write them as YAML to [file]
(default ` + config.DefaultPath + `). Empty answers keep the default.

Errors if the file already exists.
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultPath
			if len(args) == 1 {
				path = args[0]
			}
			return runInit(cmd.OutOrStdout(), path)
		},
	}
}

func runInit(w io.Writer, path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config %s already exists", path)
	}
	cfg := config.Default()
	questions := initQuestions(cfg)
	answers, err := ask(questions)
	if err != nil {
		return err
	}
	for _, q := range questions {
		v := answers[q.Key]
		if v == "" {
			v = q.Default
		}
		if err := cfg.Set(q.Key, v); err != nil {
			return err
		}
	}
	if err := cfg.Validate(); err != nil && !errors.Is(err, config.ErrNoOutputDir) {
		return err
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Fprintf(w, "wrote %s\n", path)
	return nil
}

// initQuestions returns the general questions followed by each stage's own,
// with defaults filled from cfg.
func initQuestions(cfg *config.Config) []stage.ConfigQuestion {
	qs := []stage.ConfigQuestion{
		{Key: "output_dir", Prompt: "output directory for generated files"},
		{Key: "package", Prompt: "package name of the generated files"},
		{Key: "log_level", Prompt: "log level"},
	}
	for _, s := range driver.DefaultStages() {
		qs = append(qs, s.Configure()...)
	}
	for i := range qs {
		if qs[i].Default == "" {
			qs[i].Default = cfg.Get(qs[i].Key)
		}
	}
	return qs
}

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		newLogger(os.Stderr).Error(err)
		stop()
		os.Exit(1)
	}
}
