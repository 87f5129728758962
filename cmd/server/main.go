package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lmittmann/tint"

	"github.com/kmatveev/brickpop-server/internal/app"
	"github.com/kmatveev/brickpop-server/internal/config"
	"github.com/kmatveev/brickpop-server/migrations"
)

func main() {
	var handler slog.Handler = slog.NewJSONHandler(os.Stderr, nil)
	if config.Development() {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level: slog.LevelDebug,
		})
	}
	logger := slog.New(handler)

	ctx, cancel := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer cancel()

	a := app.New(logger, migrations.FS)

	if err := a.Start(ctx); err != nil {
		logger.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}
