// Package specloader parses the test-spec file into a list of runnable
// domain/seqtest.Test instances, preserving registration order.
package specloader

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/terminiter/sreach/domain/seqtest"
	"github.com/terminiter/sreach/internal/errors"
	"github.com/terminiter/sreach/ports"
)

// ErrNoTests is returned when a spec file contains zero test lines. The
// original driver treats this as "nothing to do" rather than a malformed
// file; callers should exit cleanly on this sentinel rather than printing a
// generic error.
var ErrNoTests = errors.New(errors.CodeConfigInvalid, "spec file declares no tests")

// Load reads path and returns the tests it declares, in registration order.
// rng is threaded through to any Lai tests, whose exact-tie decision needs
// an injectable source of randomness.
func Load(path string, rng ports.RNGPort) ([]seqtest.Test, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open spec file %s", path)
	}
	defer f.Close()

	tests, err := parse(f, rng)
	if err != nil {
		return nil, err
	}
	if len(tests) == 0 {
		return nil, ErrNoTests
	}
	return tests, nil
}

func parse(r io.Reader, rng ports.RNGPort) ([]seqtest.Test, error) {
	var tests []seqtest.Test
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		kind := strings.ToUpper(fields[0])
		test, err := build(line, kind, fields[1:], rng)
		if err != nil {
			return nil, errors.Wrapf(err, "spec file line %d", lineNo)
		}
		tests = append(tests, test)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "read spec file")
	}
	return tests, nil
}

func build(rawLine, kind string, args []string, rng ports.RNGPort) (seqtest.Test, error) {
	floats := func(n int) ([]float64, error) {
		if len(args) != n {
			return nil, errors.New(errors.CodeConfigInvalid, fmt.Sprintf("%s: expected %d parameters, got %d", rawLine, n, len(args)))
		}
		out := make([]float64, n)
		for i, a := range args {
			v, err := strconv.ParseFloat(a, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "%s: parameter %d %q is not a number", rawLine, i+1, a)
			}
			out[i] = v
		}
		return out, nil
	}

	switch seqtest.Kind(kind) {
	case seqtest.KindSPRT:
		p, err := floats(3)
		if err != nil {
			return nil, err
		}
		return seqtest.NewSPRT(rawLine, p[0], p[1], p[2])
	case seqtest.KindBFT:
		p, err := floats(4)
		if err != nil {
			return nil, err
		}
		return seqtest.NewBFT(rawLine, p[0], p[1], p[2], p[3])
	case seqtest.KindBFTI:
		p, err := floats(5)
		if err != nil {
			return nil, err
		}
		return seqtest.NewBFTI(rawLine, p[0], p[1], p[2], p[3], p[4])
	case seqtest.KindLai:
		p, err := floats(2)
		if err != nil {
			return nil, err
		}
		return seqtest.NewLai(rawLine, p[0], p[1], rng)
	case seqtest.KindCHB:
		p, err := floats(2)
		if err != nil {
			return nil, err
		}
		return seqtest.NewCHB(rawLine, p[0], p[1])
	case seqtest.KindBayesEstim:
		p, err := floats(4)
		if err != nil {
			return nil, err
		}
		return seqtest.NewBayesEstim(rawLine, p[0], p[1], p[2], p[3])
	case seqtest.KindNSAM:
		// The original reads NSAM's parameter as a double and truncates it
		// to an int (statSMT_para.cpp: "inputString >> c; N = int(c);"), so
		// "NSAM 50.7" is a valid spec line, not a parse error.
		p, err := floats(1)
		if err != nil {
			return nil, err
		}
		if p[0] < 0 {
			return nil, errors.New(errors.CodeConfigInvalid, fmt.Sprintf("%s: parameter 1 must be non-negative", rawLine))
		}
		return seqtest.NewNSAM(rawLine, uint64(math.Trunc(p[0])))
	default:
		return nil, errors.New(errors.CodeConfigInvalid, fmt.Sprintf("%s: unknown test kind %q", rawLine, kind))
	}
}
