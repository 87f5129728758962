package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"
)

// Solver holds the search defaults: how many workers a solve request gets
// when it does not ask for a specific count, and how long a single request
// may search before its context expires.
type Solver struct {
	Workers int
	Timeout time.Duration
}

func NewSolver() (*Solver, error) {
	workers := runtime.NumCPU()
	if s, ok := os.LookupEnv("SOLVER_WORKERS"); ok {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid SOLVER_WORKERS value %q", s)
		}
		workers = n
	}

	timeout := 30 * time.Second
	if s, ok := os.LookupEnv("SOLVER_TIMEOUT"); ok {
		d, err := time.ParseDuration(s)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid SOLVER_TIMEOUT value %q", s)
		}
		timeout = d
	}

	return &Solver{Workers: workers, Timeout: timeout}, nil
}
