package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/zeusync/racetrack/internal/config"
	"github.com/zeusync/racetrack/internal/core/collision"
	"github.com/zeusync/racetrack/internal/core/models"
	"github.com/zeusync/racetrack/internal/injector"
	"github.com/zeusync/racetrack/internal/replay"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

type rootFlags struct {
	configPath string
	logLevel   string
}

// NewRootCmd creates the racetrack command tree.
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:           "racetrack",
		Short:         "Classify car collisions against track features",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "Path to a YAML config file")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Override log level: debug, info, warn, error")

	cmd.AddCommand(newReplayCmd(flags), newClassifyCmd(flags))
	return cmd
}

func (f *rootFlags) load() (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
		if err = cfg.Validate(); err != nil {
			return config.Config{}, err
		}
	}
	return cfg, nil
}

func newReplayCmd(root *rootFlags) *cobra.Command {
	var (
		parallel    int
		checkpoints bool
		format      string
	)
	cmd := &cobra.Command{
		Use:   "replay <scenario.yaml>",
		Short: "Replay recorded contacts through per-car reactors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := OutputFormat(format)
			if out != FormatText && out != FormatJSON {
				return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", format)
			}

			cfg, err := root.load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("parallel") {
				cfg.Replay.Parallel = parallel
			}
			if cmd.Flags().Changed("checkpoints") {
				cfg.Reactor.EnableCheckpoints = checkpoints
			}
			if err = cfg.Validate(); err != nil {
				return err
			}

			scenario, err := replay.LoadFile(args[0])
			if err != nil {
				return err
			}
			app, err := injector.InitializeApp(cfg)
			if err != nil {
				return fmt.Errorf("initializing: %w", err)
			}
			defer func() { _ = app.Logger.Sync() }()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			summary, err := app.Runner.Run(ctx, scenario)
			if err != nil {
				return err
			}
			return writeSummary(cmd.OutOrStdout(), out, summary)
		},
	}
	cmd.Flags().IntVar(&parallel, "parallel", 1, "Contacts delivered concurrently")
	cmd.Flags().BoolVar(&checkpoints, "checkpoints", false, "Enable the checkpoint handler")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text or json")
	return cmd
}

func newClassifyCmd(root *rootFlags) *cobra.Command {
	var checkpoints bool
	cmd := &cobra.Command{
		Use:   "classify <tag>...",
		Short: "Print the diagnostic a car would emit on touching each tag",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()

			var opts []collision.Option
			if checkpoints || cfg.Reactor.EnableCheckpoints {
				opts = append(opts, collision.WithCheckpoints())
			}
			r := collision.NewReactor(1, opts...)
			for i, tag := range args {
				ev := collision.NewEvent(r.Car(), models.NewEntity(models.EntityID(i+1), tag))
				msg := r.Outcome(ev).Diagnostic()
				if msg == "" {
					msg = "-"
				}
				fmt.Fprintf(w, "%s\t%s\n", tag, msg)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&checkpoints, "checkpoints", false, "Enable the checkpoint handler")
	return cmd
}

type jsonSummary struct {
	Contacts    int                 `json:"contacts"`
	Diagnostics map[string]int      `json:"diagnostics"`
	Cars        map[string][]string `json:"cars"`
	Hooks       replay.HookCounts   `json:"hooks"`
}

func writeSummary(w io.Writer, format OutputFormat, s *replay.Summary) error {
	if format == FormatJSON {
		cars := make(map[string][]string, len(s.PerCar))
		for car, msgs := range s.PerCar {
			cars[fmt.Sprint(uint64(car))] = msgs
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(jsonSummary{
			Contacts:    s.Contacts,
			Diagnostics: s.Diagnostics,
			Cars:        cars,
			Hooks:       s.Hooks,
		})
	}

	fmt.Fprintf(w, "contacts: %d\n", s.Contacts)
	for _, msg := range sortedKeys(s.Diagnostics) {
		fmt.Fprintf(w, "%s: %d\n", msg, s.Diagnostics[msg])
	}
	cars := make([]models.EntityID, 0, len(s.PerCar))
	for car := range s.PerCar {
		cars = append(cars, car)
	}
	sort.Slice(cars, func(i, j int) bool { return cars[i] < cars[j] })
	for _, car := range cars {
		fmt.Fprintf(w, "car %d: %v\n", car, s.PerCar[car])
	}
	fmt.Fprintf(w, "hooks: destroyed=%d succeeded=%d checkpoints=%d\n",
		s.Hooks.Destroyed, s.Hooks.Succeeded, s.Hooks.Checkpoints)
	return nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
