package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/dyluth/hackathon/internal/catalog"
	"github.com/dyluth/hackathon/internal/config"
	"github.com/dyluth/hackathon/internal/hackathon"
	"github.com/dyluth/hackathon/internal/printer"
	"github.com/dyluth/hackathon/internal/report"
	"github.com/spf13/cobra"
)

// positionalNames lists the optional positional arguments of run, in order
var positionalNames = []string{"ideas", "idea-producers", "packages", "package-producers", "students"}

type runOptions struct {
	configPath string
	queue      string
	redisURL   string
	runID      string
	dataDir    string
	format     string
	quiet      bool
	verbose    bool
}

func newRunCmd() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run [ideas] [idea-producers] [packages] [package-producers] [students]",
		Short: "Run one hackathon and check its checksums",
		Long: `Run one hackathon and check its checksums.

Positional arguments override the configuration file, in order:
  ideas              number of ideas to generate (default 80)
  idea-producers     number of idea generator goroutines (default 2)
  packages           number of packages to download (default 4000)
  package-producers  number of package downloader goroutines (default 6)
  students           number of student goroutines (default 6)

The build log is printed first, followed by the four global checksums. The
command exits non-zero when the produced and built checksums disagree.

Examples:
  # Default run
  hackathon run

  # 20 ideas from 1 generator, 500 packages from 4 downloaders, 3 students
  hackathon run 20 1 500 4 3

  # Share the event queue through Redis
  hackathon run --queue redis --redis-url redis://localhost:6379

  # Only the checksums, as JSON
  hackathon run --quiet --format jsonl`,
		Args: cobra.MaximumNArgs(len(positionalNames)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHackathon(cmd, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to hackathon.yml (defaults are used if omitted)")
	cmd.Flags().StringVar(&opts.queue, "queue", "", "Queue backend: memory or redis")
	cmd.Flags().StringVar(&opts.redisURL, "redis-url", "", "Redis URL for the redis queue backend")
	cmd.Flags().StringVar(&opts.runID, "run-id", "", "Run ID used to namespace Redis keys (generated if omitted)")
	cmd.Flags().StringVarP(&opts.dataDir, "data-dir", "d", "", "Directory holding the product, customer and package lists")
	cmd.Flags().StringVarP(&opts.format, "format", "f", report.FormatText, "Output format: text or jsonl")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Only print the checksums")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log producer, student and coordinator events to stderr")

	return cmd
}

func runHackathon(cmd *cobra.Command, opts *runOptions, args []string) error {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	if opts.verbose {
		log.SetOutput(errOut)
	} else {
		log.SetOutput(io.Discard)
	}

	cfg, err := resolveConfig(cmd, opts, args)
	if err != nil {
		return printer.ErrorTo(errOut, "invalid configuration", err.Error(),
			[]string{"Usage:\n  hackathon run [ideas] [idea-producers] [packages] [package-producers] [students]"})
	}

	lists, err := catalog.Load(cfg.Data)
	if err != nil {
		return printer.ErrorTo(errOut, "failed to load name lists", err.Error(),
			[]string{
				"Run from the repository root so ./data is found",
				"Point at the lists explicitly:\n  hackathon run --data-dir /path/to/data",
			})
	}

	ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	q, err := hackathon.OpenQueue(ctx, cfg)
	if err != nil {
		return printer.ErrorTo(errOut, "failed to open event queue", err.Error(), nil)
	}
	defer q.Close()

	if opts.verbose {
		printer.Step(errOut, "Running %d ideas and %d packages with %d students on the %s queue\n",
			cfg.Ideas, cfg.Packages, cfg.Students, cfg.Queue)
	}

	result, err := hackathon.Run(ctx, cfg, lists, q)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			printer.Warning(errOut, "Run interrupted, no checksums were reported\n")
			return fmt.Errorf("run interrupted")
		}
		return fmt.Errorf("run failed: %w", err)
	}

	if !opts.quiet {
		if err := report.WriteRecords(out, result.Records, opts.format); err != nil {
			return err
		}
	}
	if err := report.WriteChecksums(out, result, opts.format); err != nil {
		return err
	}

	if err := result.Verify(); err != nil {
		return printer.ErrorTo(errOut, "checksum mismatch", err.Error(), nil)
	}
	if opts.format == report.FormatText {
		printer.Success(out, "%d ideas built, checksums match\n", len(result.Records))
	}
	return nil
}

// resolveConfig layers the config file, flags and positional arguments, in
// increasing precedence, and validates the result.
func resolveConfig(cmd *cobra.Command, opts *runOptions, args []string) (*config.RunConfig, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("queue") {
		cfg.Queue = opts.queue
	}
	if flags.Changed("redis-url") {
		cfg.RedisURL = opts.redisURL
	}
	if flags.Changed("run-id") {
		cfg.RunID = opts.runID
	}
	if flags.Changed("data-dir") {
		cfg.Data.Dir = opts.dataDir
	}

	if opts.format != report.FormatText && opts.format != report.FormatJSONL {
		return nil, fmt.Errorf("invalid format: %s (must be '%s' or '%s')", opts.format, report.FormatText, report.FormatJSONL)
	}

	targets := []*int{&cfg.Ideas, &cfg.IdeaProducers, &cfg.Packages, &cfg.PackageProducers, &cfg.Students}
	for i, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("%s must be an integer, got %q", positionalNames[i], arg)
		}
		*targets[i] = n
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
