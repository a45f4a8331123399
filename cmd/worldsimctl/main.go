// Command worldsimctl is a thin harness around the simulation core: it
// boots an Engine with the configured cascade depth, calendar length and
// logging, runs a fixed number of ticks, and prints a summary. It builds no
// LoD manager or quadtree and has no run-until-condition mode. It is scaffolding
// for exercising the core, not a product CLI — time controls, bookmarks,
// and notifications live outside the core.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/1siamBot/worldsim-core/internal/cascade"
	"github.com/1siamBot/worldsim-core/internal/config"
	"github.com/1siamBot/worldsim-core/internal/core"
	"github.com/1siamBot/worldsim-core/internal/event"
	"github.com/1siamBot/worldsim-core/internal/metrics"
	"github.com/1siamBot/worldsim-core/internal/rng"
	"github.com/1siamBot/worldsim-core/internal/scheduler"
	"github.com/1siamBot/worldsim-core/internal/simulation"
	"github.com/1siamBot/worldsim-core/internal/worldlog"
)

var cfgFile string

func main() {
	root := &cobra.Command{
		Use:   "worldsimctl",
		Short: "Run and inspect the world simulation core",
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a config file")
	root.AddCommand(newRunCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	var ticks int
	var seed uint64

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the simulation core for a fixed number of ticks and print a summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}

			logger := worldlog.New(cfg.Log)
			m := metrics.NewRegistry()

			w := core.NewWorld()
			clock := core.NewClock(uint64(cfg.TicksPerYear))
			log := event.NewLog()
			bus := event.NewBus(logger)
			registry := scheduler.NewRegistry()

			source := rng.New(seed)
			cascadeEngine := cascade.NewEngine(log, bus, cfg.MaxCascadeDepth, source.Float64, logger)

			engine := simulation.New(w, clock, bus, log, registry, cascadeEngine, m, logger)

			outcomes := engine.Run(ticks)

			var failed int
			for _, o := range outcomes {
				failed += len(o.Failures)
			}

			fmt.Printf("ran %d ticks, %d events logged, %d system failures\n", len(outcomes), log.Count(), failed)
			return nil
		},
	}
	cmd.Flags().IntVar(&ticks, "ticks", 10, "number of ticks to run")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "deterministic RNG seed for the cascade engine")
	return cmd
}
