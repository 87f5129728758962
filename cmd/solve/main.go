// Command solve runs the Brick Pop search on a board text file and prints
// the move list, one "row col" pair per line, ready for a replay tool to
// turn into taps.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/kmatveev/brickpop-server/internal/board"
	"github.com/kmatveev/brickpop-server/internal/solver"
)

var (
	log = logrus.New()

	workers int
	timeout time.Duration
	serial  bool
	logFile string
	verbose bool
)

func init() {
	flag.IntVar(&workers, "w", runtime.NumCPU(), "number of parallel workers")
	flag.DurationVar(&timeout, "t", 0, "search timeout (0 = none)")
	flag.BoolVar(&serial, "serial", false, "use the single-threaded solver")
	flag.StringVar(&logFile, "log-file", "", "also log to a rotating file")
	flag.BoolVar(&verbose, "v", false, "debug logging")
}

func setupLogging() error {
	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	if logFile == "" {
		return nil
	}
	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   logFile,
		MaxSize:    50, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Level:      log.GetLevel(),
		Formatter:  &logrus.JSONFormatter{},
	})
	if err != nil {
		return err
	}
	log.AddHook(hook)
	return nil
}

func main() {
	flag.Parse()

	if err := setupLogging(); err != nil {
		log.Fatal("unable to set up logging: ", err)
	}

	if flag.NArg() != 1 {
		log.Fatal("specify the board file as the only positional argument")
	}

	text, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatal("unable to read board file: ", err)
	}
	b, err := board.Parse(string(text))
	if err != nil {
		log.Fatal("unable to parse board: ", err)
	}

	log.Infof("board (%dx%d, %d bricks):\n%s", b.Size, b.Size, b.BrickCount(), b)

	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var solution solver.Solution
	start := time.Now()
	if serial {
		log.Info("solving with the single-threaded solver...")
		solution, err = solver.Solve(b)
	} else {
		log.Infof("solving with %d parallel workers...", workers)
		solution, err = solver.SolveParallel(ctx, b, workers)
	}
	elapsed := time.Since(start)

	switch {
	case errors.Is(err, solver.ErrNoSolution):
		log.WithField("elapsed", elapsed).Fatal("board has no solution")
	case err != nil:
		log.WithField("elapsed", elapsed).Fatal("search aborted: ", err)
	}

	log.WithFields(logrus.Fields{
		"steps":   len(solution),
		"elapsed": elapsed,
	}).Info("found a solution")

	for _, step := range solution {
		fmt.Printf("%d %d\n", step.Row, step.Col)
	}
}
