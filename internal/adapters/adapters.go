// Package adapters provides minimal, concrete implementations of the ports
// this driver treats as external collaborators (preprocessor, sampler,
// instantiator). The specification deliberately leaves these out of scope —
// no reference source for them is available — so these adapters exist only
// to make the binary runnable end to end against a simple model-annotation
// convention; a real deployment is expected to swap them out.
package adapters

import (
	"bufio"
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/terminiter/sreach/internal/errors"
	"github.com/terminiter/sreach/ports"
)

// AnnotationPreprocessor recognizes lines of the form
// "// RV: <name> uniform <low> <high>" in a model file; every other line
// is passed through unchanged into the template, with RV lines replaced
// by a "{{name}}" placeholder for later substitution.
type AnnotationPreprocessor struct{}

func (AnnotationPreprocessor) Preprocess(ctx context.Context, modelPath string) (string, []ports.RVDescriptor, error) {
	f, err := os.Open(modelPath)
	if err != nil {
		return "", nil, errors.Wrapf(err, "open model file %s", modelPath)
	}
	defer f.Close()

	var rvs []ports.RVDescriptor
	var template strings.Builder
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if name, spec, ok := parseRVAnnotation(line); ok {
			rvs = append(rvs, ports.RVDescriptor{Name: name, Spec: spec})
			fmt.Fprintf(&template, "{{%s}}\n", name)
			continue
		}
		template.WriteString(line)
		template.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return "", nil, errors.Wrapf(err, "read model file %s", modelPath)
	}
	return template.String(), rvs, nil
}

func parseRVAnnotation(line string) (name, spec string, ok bool) {
	trimmed := strings.TrimSpace(line)
	const prefix = "// RV:"
	if !strings.HasPrefix(trimmed, prefix) {
		return "", "", false
	}
	fields := strings.Fields(strings.TrimPrefix(trimmed, prefix))
	if len(fields) != 4 || fields[1] != "uniform" {
		return "", "", false
	}
	return fields[0], fmt.Sprintf("uniform:%s:%s", fields[2], fields[3]), true
}

// UniformSampler draws a uniform value per descriptor, formatted as a
// decimal token, using the descriptor's "uniform:low:high" spec produced
// by AnnotationPreprocessor.
type UniformSampler struct {
	rng *rand.Rand
}

// NewUniformSampler seeds its own generator from seed; the same seed
// reproduces the same sequence of draws.
func NewUniformSampler(seed int64) *UniformSampler {
	return &UniformSampler{rng: rand.New(rand.NewSource(seed))}
}

func (s *UniformSampler) Sample(ctx context.Context, rvs []ports.RVDescriptor) (ports.Assignment, error) {
	assignment := make(ports.Assignment, len(rvs))
	for i, rv := range rvs {
		low, high, err := parseUniformSpec(rv.Spec)
		if err != nil {
			return nil, errors.Wrapf(err, "random variable %s", rv.Name)
		}
		v := low + s.rng.Float64()*(high-low)
		assignment[i] = strconv.FormatFloat(v, 'f', 6, 64)
	}
	return assignment, nil
}

func parseUniformSpec(spec string) (low, high float64, err error) {
	parts := strings.Split(spec, ":")
	if len(parts) != 3 || parts[0] != "uniform" {
		return 0, 0, fmt.Errorf("unrecognized distribution spec %q", spec)
	}
	low, err = strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse lower bound in %q: %w", spec, err)
	}
	high, err = strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parse upper bound in %q: %w", spec, err)
	}
	return low, high, nil
}

// FileInstantiator splices an assignment's tokens into a template's
// "{{name}}" placeholders, writing the result to a worker-namespaced file
// under dir so concurrent workers never collide.
type FileInstantiator struct {
	Dir string
	RVs []ports.RVDescriptor
}

func (fi *FileInstantiator) Instantiate(ctx context.Context, template string, assignment ports.Assignment, workerID int) (string, error) {
	if len(assignment) != len(fi.RVs) {
		return "", errors.New(errors.CodeInternal, "assignment length does not match random-variable count")
	}
	out := template
	for i, rv := range fi.RVs {
		out = strings.ReplaceAll(out, "{{"+rv.Name+"}}", assignment[i])
	}
	path := filepath.Join(fi.Dir, fmt.Sprintf("worker_%d.model", workerID))
	if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
		return "", errors.Wrapf(err, "write instantiated model for worker %d", workerID)
	}
	return path, nil
}
