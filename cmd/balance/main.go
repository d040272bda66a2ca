// Package main provides a headless multi-seed balance check: it runs
// the simulation across several seeds and summarizes the population
// dynamics from the telemetry each run produced.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/warlord/config"
	"github.com/pthm-cable/warlord/game"
	"github.com/pthm-cable/warlord/telemetry"
)

// seedSummary is one row of the balance report.
type seedSummary struct {
	Seed           int64   `csv:"seed"`
	Ticks          int32   `csv:"ticks"`
	MeanPopulation float64 `csv:"mean_population"`
	StdPopulation  float64 `csv:"std_population"`
	SpawnAccepted  int     `csv:"spawn_accepted"`
	SpawnRejected  int     `csv:"spawn_rejected"`
	Culled         int     `csv:"culled"`
	FinalStage     string  `csv:"final_stage"`
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	maxTicks := flag.Int("max-ticks", 36000, "Ticks per run (default 10 sim-minutes)")
	seeds := flag.Int("seeds", 5, "Number of seeds to run")
	baseSeed := flag.Int64("base-seed", 1, "First seed; runs use base-seed..base-seed+seeds-1")
	outputDir := flag.String("output", "", "Output directory for per-run telemetry and the report")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}
	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	var report []seedSummary
	for i := 0; i < *seeds; i++ {
		seed := *baseSeed + int64(i)
		runDir := filepath.Join(*outputDir, fmt.Sprintf("seed-%d", seed))

		summary, err := runSeed(seed, *maxTicks, runDir)
		if err != nil {
			log.Fatalf("seed %d: %v", seed, err)
		}
		report = append(report, summary)
		fmt.Printf("seed %d: mean pop %.1f (std %.1f), rejected %d, final stage %s\n",
			seed, summary.MeanPopulation, summary.StdPopulation, summary.SpawnRejected, summary.FinalStage)
	}

	reportPath := filepath.Join(*outputDir, "balance.csv")
	f, err := os.Create(reportPath)
	if err != nil {
		log.Fatalf("failed to create report: %v", err)
	}
	defer f.Close()
	if err := gocsv.Marshal(report, f); err != nil {
		log.Fatalf("failed to write report: %v", err)
	}
	fmt.Printf("report written to %s\n", reportPath)
}

// runSeed executes one headless run and summarizes its telemetry.
func runSeed(seed int64, maxTicks int, runDir string) (seedSummary, error) {
	g := game.NewGameWithOptions(game.Options{
		Seed:           seed,
		OutputDir:      runDir,
		Headless:       true,
		StepsPerUpdate: 600,
	})

	for int(g.Tick()) < maxTicks {
		g.UpdateHeadless()
	}
	finalStage := g.Stage().String()
	ticks := g.Tick()
	g.Unload()

	windows, err := loadTelemetry(filepath.Join(runDir, "telemetry.csv"))
	if err != nil {
		return seedSummary{}, err
	}

	summary := seedSummary{
		Seed:       seed,
		Ticks:      ticks,
		FinalStage: finalStage,
	}
	pops := make([]float64, 0, len(windows))
	for _, w := range windows {
		pops = append(pops, float64(w.Population))
		summary.SpawnAccepted += w.SpawnAccepted
		summary.SpawnRejected += w.SpawnRejected
		summary.Culled += w.Culled
	}
	if len(pops) > 0 {
		summary.MeanPopulation, summary.StdPopulation = stat.MeanStdDev(pops, nil)
		if len(pops) == 1 {
			summary.StdPopulation = 0
		}
	}
	return summary, nil
}

// loadTelemetry reads the per-window stats a run wrote.
func loadTelemetry(path string) ([]telemetry.WindowStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening telemetry: %w", err)
	}
	defer f.Close()

	var windows []telemetry.WindowStats
	if err := gocsv.Unmarshal(f, &windows); err != nil {
		return nil, fmt.Errorf("parsing telemetry: %w", err)
	}
	return windows, nil
}
