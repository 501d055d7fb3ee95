package main

import (
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gridfall/sweeper-server/internal/config"
	"github.com/gridfall/sweeper-server/internal/game"
	"github.com/gridfall/sweeper-server/internal/handlers"
	"github.com/gridfall/sweeper-server/internal/middleware"
	"github.com/gridfall/sweeper-server/internal/repository"
	"github.com/gridfall/sweeper-server/internal/settings"
)

func buildHandler(
	db *pgxpool.Pool,
	jwt *config.JWT,
	cookies *config.Cookies,
	prefs *settings.Store,
) http.Handler {
	repo := repository.New(db)

	auth := handlers.NewAuthHandler(log, repo, jwt, cookies)
	games := handlers.NewGameHandler(log, repo, config.NewWebSocket(), game.NewRand())
	records := handlers.NewRecordsHandler(log, repo)
	prefsHandler := handlers.NewSettingsHandler(log, prefs)

	mux := http.NewServeMux()

	mux.HandleFunc("POST /v1/register", auth.Register)
	mux.HandleFunc("POST /v1/login", auth.Login)
	mux.HandleFunc("POST /v1/logout", auth.Logout)
	mux.HandleFunc("GET /v1/status", auth.Status)

	mux.HandleFunc("GET /v1/records", records.Records)
	mux.HandleFunc("GET /v1/myrecords", records.OwnRecords)

	mux.HandleFunc("GET /v1/settings", prefsHandler.Get)
	mux.HandleFunc("PUT /v1/settings", prefsHandler.Put)

	mux.HandleFunc("POST /v1/game", games.NewGame)
	mux.HandleFunc("GET /v1/game/{id}", games.Fetch)
	mux.HandleFunc("POST /v1/game/{id}/open", games.Reveal)
	mux.HandleFunc("POST /v1/game/{id}/flag", games.Flag)
	mux.HandleFunc("POST /v1/game/{id}/ai", games.AIMove)
	mux.HandleFunc("POST /v1/game/{id}/forfeit", games.Forfeit)
	mux.HandleFunc("/v1/game/{id}/connect", games.Connect)

	return middleware.Wrap(mux,
		middleware.Cors(),
		middleware.Auth(log, cookies),
		middleware.Logging(log),
	)
}
