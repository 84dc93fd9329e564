package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/HanneyAI/anticlust/internal/bench"
	"github.com/HanneyAI/anticlust/internal/mdgp"
	"github.com/HanneyAI/anticlust/internal/store"
)

var (
	benchGlob    string
	repetitions  int
	summaryPath  string
	solutionPath string
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run repeated searches over a set of benchmark instances",
	Long: `Runs R independent repetitions on every instance matching the glob,
appends best/average/worst cost lines to the summary file and writes
the overall best solution of each instance.`,
	RunE: runBench,
}

func init() {
	benchCmd.Flags().StringVar(&benchGlob, "instances", "", "Glob of instance files (required)")
	benchCmd.Flags().IntVar(&repetitions, "times", 20, "Repetitions per instance")
	benchCmd.Flags().StringVar(&summaryPath, "summary", "results.txt", "Summary output file (appended)")
	benchCmd.Flags().StringVar(&solutionPath, "solutions", "", "Directory for solution files (empty = skip)")
	benchCmd.Flags().Float64Var(&budgetSecs, "budget", 0, "Time budget per repetition in seconds (0 = schedule default)")
	benchCmd.Flags().Int64Var(&seed, "seed", 42, "Base random seed")
	benchCmd.Flags().StringVar(&dataDir, "data", "./data", "Directory for stored run records")

	benchCmd.MarkFlagRequired("instances")
	rootCmd.AddCommand(benchCmd)
}

func runBench(cmd *cobra.Command, args []string) error {
	paths, err := filepath.Glob(benchGlob)
	if err != nil {
		return fmt.Errorf("invalid instance glob: %w", err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no instances match %q", benchGlob)
	}

	st, err := store.NewFSStore(dataDir)
	if err != nil {
		return err
	}

	for _, path := range paths {
		inst, err := mdgp.LoadInstance(path)
		if err != nil {
			return err
		}
		slog.Info("benchmarking instance", "path", path, "n", inst.N, "k", inst.K, "times", repetitions)

		params := solverParams(inst.N)
		sum, err := bench.Run(context.Background(), inst, params, repetitions, seed)
		if err != nil {
			return fmt.Errorf("benchmark of %s failed: %w", path, err)
		}

		if err := bench.AppendSummary(summaryPath, path, sum); err != nil {
			return err
		}
		if solutionPath != "" {
			if err := writeSolutionFile(path, sum); err != nil {
				return err
			}
		}

		runID := store.NewRunID()
		rec := &store.RunRecord{
			RunID:     runID,
			Instance:  path,
			N:         inst.N,
			K:         inst.K,
			Assign:    sum.BestRun.Assign,
			Sizes:     sum.BestRun.Sizes,
			Cost:      sum.BestRun.Cost,
			BestCost:  sum.Best,
			MeanCost:  sum.Mean,
			WorstCost: sum.Worst,
			Timestamp: time.Now(),
			Config: store.SolverConfig{
				PopMax:          params.PopMax,
				PopMin:          params.PopMin,
				ThetaMax:        params.ThetaMax,
				ThetaMin:        params.ThetaMin,
				LMax:            params.LMax,
				TimeBudgetSecs:  params.TimeBudget.Seconds(),
				Seed:            seed,
				Repetitions:     repetitions,
				DiversityWeight: params.DiversityWeight,
			},
		}
		if err := st.SaveRun(runID, rec); err != nil {
			return fmt.Errorf("failed to store run: %w", err)
		}

		fmt.Printf("%s: best %.4f  avg %.4f  worst %.4f (%d reps, %.1fs)\n",
			path, sum.Best, sum.Mean, sum.Worst, repetitions, sum.Elapsed.Seconds())
	}

	return nil
}

func writeSolutionFile(instancePath string, sum *bench.Summary) error {
	if err := os.MkdirAll(solutionPath, 0755); err != nil {
		return fmt.Errorf("failed to create solutions directory: %w", err)
	}
	name := filepath.Base(instancePath) + ".sol"
	f, err := os.Create(filepath.Join(solutionPath, name))
	if err != nil {
		return fmt.Errorf("failed to create solution file: %w", err)
	}
	defer f.Close()

	if err := bench.WriteSolution(f, sum.BestRun); err != nil {
		return fmt.Errorf("failed to write solution: %w", err)
	}
	return nil
}
