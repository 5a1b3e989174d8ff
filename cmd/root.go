package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cosim-backend/cosim-backend/sim/cosim"
	"github.com/cosim-backend/cosim-backend/sim/trace"
)

var (
	configPath   string // Run configuration YAML
	scenarioName string // Overrides the scenario of the run configuration
	seed         int64  // Overrides random_seed of the run configuration
	logLevel     string // Log verbosity level
	traceEnabled bool   // Record every step and insertion
	traceDBPath  string // SQLite file receiving the trace
	showSummary  bool   // Print the trace summary after the results
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "cosim-backend",
	Short: "Event-queue co-simulation backend with a built-in master",
}

// runOptions selects the optional outputs of a run.
type runOptions struct {
	trace   bool
	traceDB string
	summary bool
}

// runCmd executes one orchestrated co-simulation
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a co-simulation described by a YAML file",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if configPath == "" {
			logrus.Fatalf("--config is required")
		}
		cfg, err := LoadRunConfig(configPath)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		applyOverrides(cmd, cfg)

		opts := runOptions{trace: traceEnabled || traceDBPath != "", traceDB: traceDBPath, summary: showSummary}
		if err := executeRun(cfg, opts, cmd.OutOrStdout()); err != nil {
			logrus.Fatalf("%v", err)
		}
		logrus.Info("Co-simulation complete.")
	},
}

// applyOverrides copies explicitly set CLI flags over the run configuration.
func applyOverrides(cmd *cobra.Command, cfg *RunConfig) {
	if cmd.Flags().Changed("scenario") {
		cfg.Scenario = scenarioName
	}
	if cmd.Flags().Changed("seed") {
		cfg.RandomSeed = seed
	}
}

// executeRun validates cfg, runs the orchestrator against a fresh backend and
// writes the report to w.
func executeRun(cfg *RunConfig, opts runOptions, w io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	b, err := cfg.NewBackend()
	if err != nil {
		return err
	}
	var st *trace.SimulationTrace
	if opts.trace || opts.summary {
		st = trace.NewSimulationTrace()
		b.SetTrace(st)
	}
	if err := b.Initialize(cfg.InitConfig()); err != nil {
		return err
	}
	defer b.Terminate()

	logrus.Infof("Starting co-simulation: scenario=%s start=%g stop=%g senders=%d",
		cfg.Scenario, cfg.StartTime, cfg.StopTime, len(cfg.Senders))
	res, runErr := cosim.Run(b, cfg.CosimConfig())
	if res != nil {
		res.Print(w)
	}
	if opts.summary {
		printTraceSummary(w, trace.Summarize(st))
	}
	if opts.trace {
		path, err := trace.WriteSQLite(st, opts.traceDB)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Trace written to %s\n", path)
	}
	return runErr
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().StringVar(&configPath, "config", "", "Path to the run configuration YAML")
	runCmd.Flags().StringVar(&scenarioName, "scenario", "", "Scenario to run (overrides the configuration)")
	runCmd.Flags().Int64Var(&seed, "seed", 1, "Random seed (overrides the configuration)")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().BoolVar(&traceEnabled, "trace", false, "Record the run and export it to SQLite")
	runCmd.Flags().StringVar(&traceDBPath, "trace-db", "", "SQLite file for the trace (implies --trace; default cosim_trace_<id>.sqlite3)")
	runCmd.Flags().BoolVar(&showSummary, "summary", false, "Print the trace summary")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(describeCmd)
}
