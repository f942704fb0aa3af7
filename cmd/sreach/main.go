package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/terminiter/sreach/internal/adapters"
	"github.com/terminiter/sreach/internal/cache"
	"github.com/terminiter/sreach/internal/config"
	"github.com/terminiter/sreach/internal/driver"
	"github.com/terminiter/sreach/internal/errors"
	"github.com/terminiter/sreach/internal/solverexec"
	"github.com/terminiter/sreach/internal/specloader"
)

func main() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(errors.ExitCode(err))
	}
}

// newRootCommand builds the single sreach command. It leaves SilenceUsage
// at its cobra default (false) so an ExactArgs(5) mismatch still prints the
// usage string spec.md §6/§7 requires alongside the non-zero exit.
func newRootCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sreach <test_spec_file> <model_file> <solver_path> <k_upper_bound> <precision>",
		Short: "Statistical model checker driver for probabilistic hybrid systems",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), args, os.Stdout)
		},
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	cfg, err := config.Load(args, "")
	if err != nil {
		return err
	}

	runID, err := uuid.NewV7()
	if err != nil {
		runID = uuid.New()
	}
	fmt.Fprintf(out, "run %s starting with %d workers\n", runID, cfg.Workers)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	tests, err := specloader.Load(cfg.SpecFile, rngAdapter{rng})
	if err != nil {
		if err == specloader.ErrNoTests {
			fmt.Fprintln(out, "no tests requested, nothing to do")
			return nil
		}
		return err
	}

	preprocessor := adapters.AnnotationPreprocessor{}
	template, rvs, err := preprocessor.Preprocess(ctx, cfg.ModelFile)
	if err != nil {
		return err
	}

	workDir, err := os.MkdirTemp("", "sreach-*")
	if err != nil {
		return errors.Wrapf(err, "create working directory")
	}
	defer os.RemoveAll(workDir)

	deps := driver.Deps{
		Sampler:      adapters.NewUniformSampler(time.Now().UnixNano()),
		Instantiator: &adapters.FileInstantiator{Dir: workDir, RVs: rvs},
		Solver:       solverexec.New(cfg.SolverPath, cfg.UpperBound, cfg.Precision),
		Cache:        cache.New(),
		Template:     template,
		RVs:          rvs,
	}

	d := driver.New(deps, tests, cfg.Workers, out)
	if err := d.Run(ctx); err != nil {
		return err
	}
	if err := d.PrintSummary(out); err != nil {
		return err
	}

	printHostSummary(out, cfg)
	return nil
}

// printHostSummary prints the two final report lines. The original prints
// omp_get_num_procs() (host CPU count) and maxthreads (configured worker
// count) as two distinct values; they diverge whenever SREACH_WORKERS
// overrides the default below the host's actual core count.
func printHostSummary(out io.Writer, cfg *config.Config) {
	fmt.Fprintf(out, "Number of processors = %d\n", runtime.NumCPU())
	fmt.Fprintf(out, "Number of threads = %d\n", cfg.Workers)
}

// rngAdapter satisfies ports.RNGPort with a *rand.Rand, so the CLI's
// generator can drive Lai's tie-break; the sampler is seeded separately.
type rngAdapter struct {
	r *rand.Rand
}

func (a rngAdapter) Float64() float64 {
	return a.r.Float64()
}
