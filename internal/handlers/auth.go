package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/gridfall/sweeper-server/internal/config"
	"github.com/gridfall/sweeper-server/internal/middleware"
	"github.com/gridfall/sweeper-server/internal/repository"
)

type AuthHandler struct {
	log     *logrus.Logger
	repo    *repository.Queries
	jwt     *config.JWT
	cookies *config.Cookies
}

func NewAuthHandler(
	log *logrus.Logger,
	repo *repository.Queries,
	jwt *config.JWT,
	cookies *config.Cookies,
) *AuthHandler {
	return &AuthHandler{log: log, repo: repo, jwt: jwt, cookies: cookies}
}

type PlayerInfo struct {
	PlayerId int64  `json:"player_id"`
	Username string `json:"username"`
}

type StatusDTO struct {
	LoggedIn bool        `json:"logged_in"`
	Player   *PlayerInfo `json:"player,omitempty"`
}

func credentials(r *http.Request) (username, password string, err error) {
	if err = r.ParseForm(); err != nil {
		return
	}
	username = r.FormValue("username")
	password = r.FormValue("password")
	if username == "" || password == "" {
		err = fmt.Errorf("body must contain url-encoded username and password")
		return
	}
	if len([]byte(password)) > 72 {
		err = fmt.Errorf("password must not exceed 72 bytes")
	}
	return
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	username, password, err := credentials(r)
	if err != nil {
		sendError(w, h.log, http.StatusBadRequest, err)
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		sendError(w, h.log, http.StatusBadRequest, err)
		return
	}
	player, err := h.repo.CreatePlayer(r.Context(), username, hash)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
		sendError(w, h.log, http.StatusConflict, fmt.Errorf("username taken"))
		return
	} else if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.log.Error("unable to insert player: ", err)
		return
	}
	h.issueCookies(w, player)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	username, password, err := credentials(r)
	if err != nil {
		sendError(w, h.log, http.StatusBadRequest, err)
		return
	}
	player, err := h.repo.GetPlayer(r.Context(), username)
	if errors.Is(err, pgx.ErrNoRows) {
		sendError(w, h.log, http.StatusNotFound, fmt.Errorf("username unknown"))
		return
	} else if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.log.Error(err)
		return
	}
	if err := bcrypt.CompareHashAndPassword(
		player.PasswordHash, []byte(password),
	); err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	h.issueCookies(w, player)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.cookies.Clear(w)
}

// Status doubles as a cookie refresher: authenticated calls get fresh
// cookies, stale ones get them cleared by the auth middleware.
func (h *AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.PlayerClaims(r.Context())
	if !ok {
		sendJSON(w, h.log, StatusDTO{LoggedIn: false})
		return
	}
	if token, err := h.jwt.Sign(claims.PlayerId, claims.Username); err == nil {
		h.cookies.Refresh(w, token)
	}
	sendJSON(w, h.log, StatusDTO{
		LoggedIn: true,
		Player:   &PlayerInfo{claims.PlayerId, claims.Username},
	})
}

func (h *AuthHandler) issueCookies(w http.ResponseWriter, player *repository.Player) {
	token, err := h.jwt.Sign(player.PlayerId, player.Username)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.log.Error("unable to sign jwt token: ", err)
		return
	}
	if err := h.cookies.Refresh(w, token); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.log.Error(err)
		return
	}
	sendJSON(w, h.log, StatusDTO{
		LoggedIn: true,
		Player:   &PlayerInfo{player.PlayerId, player.Username},
	})
}
