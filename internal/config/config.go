// Package config resolves the driver's positional command-line arguments
// and the small set of optional environment overrides, validating both
// before anything else in the process runs.
package config

import (
	"runtime"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/terminiter/sreach/internal/errors"
)

// Config is the fully resolved, validated set of inputs the driver needs.
type Config struct {
	SpecFile   string  `validate:"required,file"`
	ModelFile  string  `validate:"required,file"`
	SolverPath string  `validate:"required"`
	UpperBound int     `validate:"gte=0"`
	Precision  float64 `validate:"gt=0"`
	Workers    int     `validate:"gte=1"`
	LogLevel   string  `validate:"oneof=debug info warn error"`
}

// Load resolves Config from the five required positional arguments plus
// optional SREACH_WORKERS / SREACH_LOG_LEVEL overrides, sourced from a
// .env file in the working directory if present (godotenv.Load is a no-op
// if the file is absent). An explicit envFile argument overrides the
// default lookup; pass "" to use the default ".env" search.
func Load(args []string, envFile string) (*Config, error) {
	if len(args) != 5 {
		return nil, errors.New(errors.CodeConfigInvalid,
			"expected exactly 5 positional arguments: <test_spec_file> <model_file> <solver_path> <k_upper_bound> <precision>")
	}

	if envFile != "" {
		_ = godotenv.Load(envFile)
	} else {
		_ = godotenv.Load()
	}

	upperBound, err := parseInt(args[3])
	if err != nil {
		return nil, errors.Wrapf(err, "parse k_upper_bound %q", args[3])
	}
	precision, err := parseFloat(args[4])
	if err != nil {
		return nil, errors.Wrapf(err, "parse precision %q", args[4])
	}

	cfg := &Config{
		SpecFile:   args[0],
		ModelFile:  args[1],
		SolverPath: args[2],
		UpperBound: upperBound,
		Precision:  precision,
		Workers:    runtime.GOMAXPROCS(0),
		LogLevel:   "info",
	}

	applyEnvOverrides(cfg)

	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return nil, errors.WithCode(errors.CodeConfigInvalid, err)
	}
	if cfg.Workers < 1 {
		return nil, errors.New(errors.CodeHostError, "unable to acquire requested parallelism")
	}
	return cfg, nil
}
