package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/testglow/testglow/packages/core/config"
	"github.com/testglow/testglow/packages/render"
	"github.com/testglow/testglow/packages/replay"
)

var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Render a recorded event log to the terminal",
	Long: `Render a recorded test-run event log (JSON lines) as console output.

Examples:
  testglow replay run.jsonl
  testglow replay run.jsonl --color never
  testglow replay run.jsonl --speed 1.0
  testglow replay run.jsonl --follow
  testglow replay run.jsonl --tag-color critical=#ff8800`,
	Args: cobra.ExactArgs(1),
	RunE: replayCommand,
}

var (
	colorFlag    string
	color256Flag bool
	glyphsFlag   bool
	configFlag   string
	tagColorFlag []string
	speedFlag    float64
	followFlag   bool
)

func init() {
	replayCmd.Flags().StringVar(&colorFlag, "color", getEnvString("TESTGLOW_COLOR", ""), "Color output: auto, always, never (env: TESTGLOW_COLOR)")
	replayCmd.Flags().BoolVar(&color256Flag, "256color", getEnvBool("TESTGLOW_256COLOR", false), "Use the 256-color palette for tag colors (env: TESTGLOW_256COLOR)")
	replayCmd.Flags().BoolVar(&glyphsFlag, "glyphs", getEnvBool("TESTGLOW_GLYPHS", false), "Use iconographic glyphs where available (env: TESTGLOW_GLYPHS)")
	replayCmd.Flags().StringVar(&configFlag, "config", getEnvString("TESTGLOW_CONFIG", ""), "Path to config file (env: TESTGLOW_CONFIG)")
	replayCmd.Flags().StringArrayVar(&tagColorFlag, "tag-color", nil, "Bind a tag to a color, tag=name or tag=#rrggbb (repeatable)")
	replayCmd.Flags().Float64Var(&speedFlag, "speed", 0, "Pace playback by recorded instants, scaled by this factor (0 = no pacing)")
	replayCmd.Flags().BoolVarP(&followFlag, "follow", "f", false, "Keep rendering as the log file grows")
}

// Environment variable helpers
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}

// buildRecorder resolves config file and flags into a Recorder writing
// to stdout. Flag-level tag colors are applied after file-level ones,
// so flags win; built-in bindings beat both.
func buildRecorder() (*render.Recorder, error) {
	fileConfig, err := config.LoadConfig(configFlag)
	if err != nil {
		return nil, err
	}
	if colorFlag != "" {
		switch colorFlag {
		case config.ColorAuto, config.ColorAlways, config.ColorNever:
		default:
			return nil, fmt.Errorf("invalid --color %q (want auto, always or never)", colorFlag)
		}
		fileConfig.Color = colorFlag
	}

	tty := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	opts, err := fileConfig.RenderOptions(tty)
	if err != nil {
		return nil, err
	}

	if color256Flag {
		opts = append(opts, render.With256Color(true))
	}
	if glyphsFlag {
		opts = append(opts, render.WithGlyphs(true))
	}
	for _, binding := range tagColorFlag {
		tag, spec, ok := strings.Cut(binding, "=")
		if !ok || tag == "" {
			return nil, fmt.Errorf("invalid --tag-color %q (want tag=color)", binding)
		}
		c, err := render.ParseColor(spec)
		if err != nil {
			return nil, err
		}
		opts = append(opts, render.WithTagColor(tag, c))
	}

	render.Version = version
	sink := func(s string) {
		fmt.Fprint(os.Stdout, s)
	}
	return render.NewRecorder(sink, opts...), nil
}

func replayCommand(cmd *cobra.Command, args []string) error {
	recorder, err := buildRecorder()
	if err != nil {
		return err
	}

	readerOpts := []replay.ReaderOption{}
	if speedFlag > 0 {
		readerOpts = append(readerOpts, replay.WithSpeed(speedFlag))
	}
	reader := replay.NewReader(recorder, readerOpts...)

	path := args[0]

	if followFlag {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		if err := reader.Follow(ctx, path); err != nil && ctx.Err() == nil {
			return err
		}
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	if err := reader.Play(cmd.Context(), f); err != nil {
		f.Close()
		return err
	}
	f.Close()

	// Mirror the run outcome in the exit code.
	failed, err := runHasIssues(path)
	if err != nil {
		return err
	}
	if failed {
		os.Exit(ExitRunFailure)
	}
	return nil
}

func runHasIssues(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	stats := replay.NewStats()
	if _, err := stats.Collect(f); err != nil {
		return false, err
	}
	return stats.Summary().Issues > 0, nil
}
