package app

import (
	"hash/maphash"
	"math/rand/v2"

	"github.com/kmatveev/brickpop-server/internal/handlers"
)

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func (a *App) loadRoutes() {
	auth := handlers.NewAuth(a.logger, a.db, a.cookies, a.jwt)
	puzzle := handlers.NewPuzzle(a.logger, a.db, a.ws, a.solver, createRand())

	a.router.HandleFunc("POST /register", auth.Register)
	a.router.HandleFunc("POST /login", auth.Login)
	a.router.HandleFunc("POST /logout", auth.Logout)
	a.router.HandleFunc("GET /status", auth.Status)

	a.router.HandleFunc("POST /puzzle", puzzle.Create)
	a.router.HandleFunc("POST /puzzle/random", puzzle.CreateRandom)
	a.router.HandleFunc("GET /puzzle/{id}", puzzle.Fetch)
	a.router.HandleFunc("POST /puzzle/{id}/solve", puzzle.Solve)
	a.router.HandleFunc("GET /highscores", puzzle.Highscores)

	a.router.HandleFunc("/puzzle/{id}/replay", puzzle.Replay)
}
