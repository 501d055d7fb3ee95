package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/gridfall/sweeper-server/internal/game"
	"github.com/gridfall/sweeper-server/internal/middleware"
	"github.com/gridfall/sweeper-server/internal/settings"
)

type SettingsHandler struct {
	log   *logrus.Logger
	store *settings.Store
}

func NewSettingsHandler(log *logrus.Logger, store *settings.Store) *SettingsHandler {
	return &SettingsHandler{log: log, store: store}
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.PlayerClaims(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	prefs, err := h.store.Load(settingsKey(claims.PlayerId))
	if errors.Is(err, settings.ErrNotFound) {
		prefs = settings.DefaultPreferences()
	} else if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.log.Error("unable to load preferences: ", err)
		return
	}
	sendJSON(w, h.log, prefs)
}

func (h *SettingsHandler) Put(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.PlayerClaims(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	if err := r.ParseForm(); err != nil {
		sendError(w, h.log, http.StatusBadRequest, err)
		return
	}
	prefs, err := h.store.Load(settingsKey(claims.PlayerId))
	if errors.Is(err, settings.ErrNotFound) {
		prefs = settings.DefaultPreferences()
	} else if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.log.Error("unable to load preferences: ", err)
		return
	}

	if v := r.PostForm.Get("difficulty"); v != "" {
		difficulty, err := game.ParseDifficulty(v)
		if err != nil {
			sendError(w, h.log, http.StatusBadRequest, err)
			return
		}
		prefs.Difficulty = difficulty.String()
	}
	if v := r.PostForm.Get("theme"); v != "" {
		prefs.Theme = v
	}
	if v := r.PostForm.Get("sound"); v != "" {
		sound, err := strconv.ParseBool(v)
		if err != nil {
			sendError(w, h.log, http.StatusBadRequest, err)
			return
		}
		prefs.Sound = sound
	}

	if err := h.store.Save(settingsKey(claims.PlayerId), prefs); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.log.Error("unable to save preferences: ", err)
		return
	}
	sendJSON(w, h.log, prefs)
}

func settingsKey(playerId int64) string {
	return "player:" + strconv.FormatInt(playerId, 10)
}
