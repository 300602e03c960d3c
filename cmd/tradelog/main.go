package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/rxtech-lab/argo-tradelog/internal/config"
	"github.com/rxtech-lab/argo-tradelog/internal/exclusion"
	"github.com/rxtech-lab/argo-tradelog/internal/instrument"
	"github.com/rxtech-lab/argo-tradelog/internal/journal"
	"github.com/rxtech-lab/argo-tradelog/internal/logger"
	"github.com/rxtech-lab/argo-tradelog/internal/notify"
	"github.com/rxtech-lab/argo-tradelog/internal/timefmt"
	"github.com/rxtech-lab/argo-tradelog/internal/version"
	"github.com/rxtech-lab/argo-tradelog/pkg/errors"
	"github.com/urfave/cli/v3"
)

// loadConfig reads the configuration named by the root flags.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.LoadWithEnvFile(cmd.String("config"), cmd.String("env-file"))
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	return cfg, nil
}

func newLogger(cfg *config.Config, cmd *cli.Command) (*logger.Logger, error) {
	if cmd.Bool("quiet") {
		return logger.NewNopLogger(), nil
	}

	return logger.NewLoggerWithLevel(cfg.LogLevel)
}

// pruneAction runs retention on both channels now.
func pruneAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	zlog, err := newLogger(cfg, cmd)
	if err != nil {
		return err
	}
	defer zlog.Sync()

	j, err := instrument.NewJournal(cfg, zlog)
	if err != nil {
		return err
	}
	defer j.Close()

	deleted := j.Prune()
	out := cmd.Root().Writer

	for _, channel := range []string{journal.GeneralChannel, journal.ErrorChannel} {
		paths := deleted[channel]
		fmt.Fprintf(out, "%s: %d file(s) deleted\n", channel, len(paths))

		for _, path := range paths {
			fmt.Fprintf(out, "  %s\n", path)
		}
	}

	return nil
}

// logAction appends one entry to the journal.
func logAction(ctx context.Context, cmd *cli.Command) error {
	message := strings.Join(cmd.Args().Slice(), " ")
	if strings.TrimSpace(message) == "" {
		return fmt.Errorf("a message is required")
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	zlog, err := newLogger(cfg, cmd)
	if err != nil {
		return err
	}
	defer zlog.Sync()

	j, err := instrument.NewJournal(cfg, zlog)
	if err != nil {
		return err
	}
	defer j.Close()

	var at any
	if v := cmd.String("at"); v != "" {
		at = timeInput(v)
	}

	if cmd.Bool("error") {
		return j.WriteErrorLog(message, at)
	}

	return j.WriteLog(message, at)
}

// notifyAction sends a message through the configured sink.
func notifyAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	zlog, err := newLogger(cfg, cmd)
	if err != nil {
		return err
	}
	defer zlog.Sync()

	sink, err := instrument.NewSink(cfg, zlog)
	if err != nil {
		return err
	}

	outcome := sink.Send(notify.Message{Text: cmd.String("text")})
	fmt.Fprintln(cmd.Root().Writer, outcome.String())

	return outcome.Error()
}

// normalizeAction prints the normalized form of a time input.
func normalizeAction(ctx context.Context, cmd *cli.Command) error {
	input := strings.Join(cmd.Args().Slice(), " ")
	if input == "" {
		return fmt.Errorf("a time input is required")
	}

	zone := cmd.String("timezone")
	if zone == "" {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		zone = cfg.Timezone
	}

	normalizer, err := timefmt.NewNormalizerForZone(zone)
	if err != nil {
		return err
	}

	normalized, err := normalizer.Normalize(timeInput(input))
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.Root().Writer, normalized)

	return nil
}

// timeInput treats numeric text as an epoch and anything else as a date string.
func timeInput(v string) any {
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
	}

	return v
}

func openRegistry(cmd *cli.Command) (*exclusion.Registry, error) {
	path := cmd.String("file")
	if path == "" {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return nil, err
		}

		path = cfg.ExclusionFile
	}

	return exclusion.Open(path)
}

func addExclusionAction(add func(*exclusion.Registry, string) (bool, error)) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		if cmd.Args().Len() == 0 {
			return fmt.Errorf("at least one symbol is required")
		}

		registry, err := openRegistry(cmd)
		if err != nil {
			return err
		}

		out := cmd.Root().Writer

		for _, symbol := range cmd.Args().Slice() {
			changed, err := add(registry, symbol)
			if err != nil {
				return err
			}

			if changed {
				fmt.Fprintf(out, "added %s\n", symbol)
			} else {
				fmt.Fprintf(out, "skipped %s\n", symbol)
			}
		}

		return nil
	}
}

func listExclusionAction(ctx context.Context, cmd *cli.Command) error {
	registry, err := openRegistry(cmd)
	if err != nil {
		return err
	}

	stable := registry.Stable()
	problematic := registry.Problematic()
	sort.Strings(stable)
	sort.Strings(problematic)

	out := cmd.Root().Writer
	fmt.Fprintf(out, "stable: %s\n", strings.Join(stable, ","))
	fmt.Fprintf(out, "problematic: %s\n", strings.Join(problematic, ","))

	return nil
}

func filterExclusionAction(ctx context.Context, cmd *cli.Command) error {
	registry, err := openRegistry(cmd)
	if err != nil {
		return err
	}

	var coins []string
	for _, arg := range cmd.Args().Slice() {
		for _, coin := range strings.Split(arg, ",") {
			if coin = strings.TrimSpace(coin); coin != "" {
				coins = append(coins, coin)
			}
		}
	}

	fmt.Fprintln(cmd.Root().Writer, strings.Join(registry.Filter(coins), ","))

	return nil
}

// initAction writes the config schema and, unless one exists, a sample config.
func initAction(ctx context.Context, cmd *cli.Command) error {
	dir := cmd.String("dir")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	schemaJSON, err := config.GenerateSchemaJSON()
	if err != nil {
		return err
	}

	out := cmd.Root().Writer

	schemaPath := filepath.Join(dir, config.SchemaFileName)
	if err := os.WriteFile(schemaPath, []byte(schemaJSON), 0644); err != nil {
		return fmt.Errorf("failed to write schema: %w", err)
	}

	fmt.Fprintf(out, "schema written to %s\n", schemaPath)

	samplePath := filepath.Join(dir, "tradelog.yaml")
	if _, err := os.Stat(samplePath); err == nil {
		fmt.Fprintf(out, "kept existing %s\n", samplePath)

		return nil
	}

	sample, err := config.SampleYAML(config.SchemaFileName)
	if err != nil {
		return err
	}

	if err := os.WriteFile(samplePath, sample, 0644); err != nil {
		return fmt.Errorf("failed to write sample config: %w", err)
	}

	fmt.Fprintf(out, "sample config written to %s\n", samplePath)

	return nil
}

func fileFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "file",
		Aliases: []string{"f"},
		Usage:   "Exclusion list `FILE`. Defaults to exclusion_file from the configuration.",
	}
}

func newApp(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:    "tradelog",
		Usage:   "Inspect and maintain the trading journal",
		Version: version.GetVersion(),
		Writer:  out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the YAML configuration `FILE`",
				Sources: cli.EnvVars("TRADELOG_CONFIG"),
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Path to a .env file, empty to skip",
				Value: config.DefaultEnvFile,
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Disable diagnostics logging",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write the config JSON schema and a sample tradelog.yaml",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "dir",
						Usage: "Output `DIR`",
						Value: ".",
					},
				},
				Action: initAction,
			},
			{
				Name:   "prune",
				Usage:  "Delete journal files older than the retention period",
				Action: pruneAction,
			},
			{
				Name:      "log",
				Usage:     "Append a message to the journal",
				ArgsUsage: "MESSAGE",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "error",
						Usage: "Write to the error channel",
					},
					&cli.StringFlag{
						Name:  "at",
						Usage: "Entry time: epoch seconds or milliseconds, or a date string. Defaults to now.",
					},
				},
				Action: logAction,
			},
			{
				Name:  "notify",
				Usage: "Send a notification through the configured channel",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "text",
						Aliases:  []string{"t"},
						Usage:    "Message text",
						Required: true,
					},
				},
				Action: notifyAction,
			},
			{
				Name:      "normalize",
				Usage:     "Print a time input as a journal timestamp",
				ArgsUsage: "INPUT",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "timezone",
						Usage: "IANA timezone. Defaults to the configured timezone.",
					},
				},
				Action: normalizeAction,
			},
			{
				Name:  "exclude",
				Usage: "Manage excluded coins",
				Commands: []*cli.Command{
					{
						Name:      "stable",
						Usage:     "Add stable coins",
						ArgsUsage: "SYMBOL...",
						Flags:     []cli.Flag{fileFlag()},
						Action:    addExclusionAction((*exclusion.Registry).AddStable),
					},
					{
						Name:      "problematic",
						Usage:     "Add problematic coins",
						ArgsUsage: "SYMBOL...",
						Flags:     []cli.Flag{fileFlag()},
						Action:    addExclusionAction((*exclusion.Registry).AddProblematic),
					},
					{
						Name:   "list",
						Usage:  "Print both lists",
						Flags:  []cli.Flag{fileFlag()},
						Action: listExclusionAction,
					},
					{
						Name:      "filter",
						Usage:     "Print the given coins that are not excluded",
						ArgsUsage: "COIN[,COIN...]",
						Flags:     []cli.Flag{fileFlag()},
						Action:    filterExclusionAction,
					},
				},
			},
		},
	}
}

func main() {
	if err := newApp(os.Stdout).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(errors.ExitCode(err))
	}
}
