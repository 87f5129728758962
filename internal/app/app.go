package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/kmatveev/brickpop-server/internal/config"
	"github.com/kmatveev/brickpop-server/internal/database"
	"github.com/kmatveev/brickpop-server/internal/middleware"
)

type App struct {
	logger     *slog.Logger
	router     *http.ServeMux
	db         *pgxpool.Pool
	cookies    *config.Cookies
	jwt        *config.JWT
	ws         *config.WebSocket
	solver     *config.Solver
	migrations fs.FS
}

func New(logger *slog.Logger, migrations fs.FS) *App {
	return &App{
		logger:     logger,
		router:     http.NewServeMux(),
		migrations: migrations,
	}
}

func (a *App) Start(ctx context.Context) error {
	db, _, err := database.ConnectAndMigrate(ctx, a.migrations)
	if err != nil {
		return fmt.Errorf("unable to connect to db: %w", err)
	}
	a.db = db
	defer db.Close()

	jwt, err := config.NewJWT()
	if err != nil {
		return err
	}
	a.jwt = jwt

	cookies, err := config.NewCookies(jwt)
	if err != nil {
		return err
	}
	a.cookies = cookies

	ws, err := config.NewWebSocket()
	if err != nil {
		return err
	}
	a.ws = ws

	solverCfg, err := config.NewSolver()
	if err != nil {
		return err
	}
	a.solver = solverCfg

	a.loadRoutes()

	server := &http.Server{
		Addr: config.Port(),
		Handler: middleware.Wrap(
			a.router,
			middleware.Auth(cookies),
			middleware.Cors(),
			middleware.Logging(a.logger),
		),
	}

	a.logger.Info("server listening", slog.String("addr", server.Addr))

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gCtx.Done()
		sCtx, cancel := context.WithTimeout(context.Background(), time.Second*30)
		defer cancel()
		return server.Shutdown(sCtx)
	})

	return g.Wait()
}
