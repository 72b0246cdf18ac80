// Package benchmark implements a matcher micro-benchmark command.
package benchmark

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/agrovision/kiosk-go/internal/catalog"
	"github.com/agrovision/kiosk-go/internal/conf"
	"github.com/agrovision/kiosk-go/internal/matcher"
)

// Command returns the benchmark command.
func Command(settings *conf.Settings) *cobra.Command {
	var iterations int

	cmd := &cobra.Command{
		Use:   "benchmark",
		Short: "Benchmark the catalog matcher",
		Long:  "Runs the text matcher repeatedly against representative inputs and reports throughput. Useful when sizing a catalog for kiosk hardware.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBenchmark(cmd, settings, iterations)
		},
	}
	cmd.Flags().IntVar(&iterations, "iterations", 10000, "Matches per input")
	return cmd
}

func runBenchmark(cmd *cobra.Command, settings *conf.Settings, iterations int) error {
	if iterations <= 0 {
		return fmt.Errorf("iterations must be positive")
	}

	cat := catalog.Load(settings.Kiosk.Catalog.Path)
	inputs := []string{
		"GreenLeaf NEEM OIL SPRAY 500 ml",
		"nem oil spry",
		"copper fungcide wettable",
		"totally unrelated shelf label",
	}

	fmt.Fprintf(cmd.OutOrStdout(), "catalog: %d entries, %d iterations per input\n", cat.Len(), iterations)
	for _, input := range inputs {
		engine := matcher.New(cat, settings.Kiosk.Match)
		outcome := engine.Match(input)

		start := time.Now()
		for i := 0; i < iterations; i++ {
			// vary the tail so the outcome cache does not hide the cost
			engine.Match(fmt.Sprintf("%s batch %d", input, i))
		}
		elapsed := time.Since(start)

		fmt.Fprintf(cmd.OutOrStdout(), "%-36q %-6s %8.0f matches/sec\n",
			input, outcome.Kind().String(),
			float64(iterations)/elapsed.Seconds())
	}
	return nil
}
