// Package solverexec invokes the external delta-decision solver as a child
// process and locates its verdict among the output files it leaves behind.
package solverexec

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/terminiter/sreach/internal/errors"
	"github.com/terminiter/sreach/ports"
)

// Solver runs <solverPath> -u <bound> -precision=<precision> <model> and
// interprets the .output files it writes. It implements ports.Solver.
type Solver struct {
	solverPath string
	bound      int
	precision  float64
}

// New returns a Solver that invokes solverPath with the given jump bound
// and precision on every Decide call.
func New(solverPath string, bound int, precision float64) *Solver {
	return &Solver{solverPath: solverPath, bound: bound, precision: precision}
}

// Decide runs the solver against workerModel and reports the resulting
// verdict. workerID is folded into log context only; the model path itself
// is already worker-specific (see ports.Instantiator).
func (s *Solver) Decide(ctx context.Context, workerModel string, workerID int) (ports.Verdict, error) {
	cmd := exec.CommandContext(ctx, s.solverPath,
		"-u", fmt.Sprintf("%d", s.bound),
		fmt.Sprintf("-precision=%v", s.precision),
		workerModel,
	)
	if err := cmd.Run(); err != nil {
		return ports.Unsat, errors.WithCode(errors.CodeSolverError,
			errors.Wrapf(err, "worker %d: solver invocation on %s", workerID, workerModel))
	}

	outputPath, err := locateOutput(outputBase(workerModel), s.bound)
	if err != nil {
		return ports.Unsat, errors.WithCode(errors.CodeSolverError,
			errors.Wrapf(err, "worker %d: locating solver output for %s", workerID, workerModel))
	}

	return readVerdict(outputPath)
}

// outputBase strips whatever extension the instantiator gave the model file
// (".model" from internal/adapters.FileInstantiator, ".smt" for a hand-fed
// SMT file, anything else a future instantiator produces) so locateOutput
// probes for "<base>_<k>_<i>.output" against the name the solver actually
// derives its output files from, not a hardcoded suffix.
func outputBase(workerModel string) string {
	return strings.TrimSuffix(workerModel, filepath.Ext(workerModel))
}

// locateOutput implements the backward-then-forward probe: first find the
// largest k <= bound for which an output file exists at all, then the
// largest path index i at that k. That (k, i) pair names the deciding file.
func locateOutput(base string, bound int) (string, error) {
	k := bound
	for k >= 0 {
		if fileExists(outputName(base, k, 0)) {
			break
		}
		k--
	}
	if k < 0 {
		return "", fmt.Errorf("no output file found for any k in [0, %d]", bound)
	}

	i := 0
	for fileExists(outputName(base, k, i+1)) {
		i++
	}
	return outputName(base, k, i), nil
}

func outputName(base string, k, i int) string {
	return fmt.Sprintf("%s_%d_%d.output", base, k, i)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func readVerdict(outputPath string) (ports.Verdict, error) {
	f, err := os.Open(outputPath)
	if err != nil {
		return ports.Unsat, fmt.Errorf("open output file %s: %w", outputPath, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return ports.Unsat, fmt.Errorf("output file %s is empty", outputPath)
	}
	if strings.TrimSpace(scanner.Text()) == "unsat" {
		return ports.Unsat, nil
	}
	return ports.Sat, nil
}
