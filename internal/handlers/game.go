package handlers

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"strconv"

	"github.com/gorilla/schema"
	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"github.com/gridfall/sweeper-server/internal/config"
	"github.com/gridfall/sweeper-server/internal/game"
	"github.com/gridfall/sweeper-server/internal/middleware"
	"github.com/gridfall/sweeper-server/internal/repository"
)

type GameHandler struct {
	log  *logrus.Logger
	repo *repository.Queries
	ws   *config.WebSocket
	rnd  *rand.Rand
	dec  *schema.Decoder
}

func NewGameHandler(
	log *logrus.Logger,
	repo *repository.Queries,
	ws *config.WebSocket,
	rnd *rand.Rand,
) *GameHandler {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return &GameHandler{log: log, repo: repo, ws: ws, rnd: rnd, dec: dec}
}

type NewGameParams struct {
	Rows       int    `schema:"rows,required"`
	Cols       int    `schema:"cols,required"`
	MineCount  int    `schema:"mine_count,required"`
	Difficulty string `schema:"difficulty"`
}

type PosParams struct {
	Row int `schema:"row,required"`
	Col int `schema:"col,required"`
}

func (h *GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	var params NewGameParams
	if err := h.dec.Decode(&params, r.URL.Query()); err != nil {
		sendError(w, h.log, http.StatusBadRequest, err)
		return
	}
	difficulty, err := game.ParseDifficulty(params.Difficulty)
	if err != nil {
		sendError(w, h.log, http.StatusBadRequest, err)
		return
	}
	g, err := game.NewGame(game.Params{
		Rows:       params.Rows,
		Cols:       params.Cols,
		MineCount:  params.MineCount,
		Difficulty: difficulty,
	}, h.rnd)
	if errors.Is(err, game.ErrConfig) {
		sendError(w, h.log, http.StatusBadRequest, err)
		return
	} else if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.log.Error("unable to create game: ", err)
		return
	}

	var playerId *int64
	if claims, ok := middleware.PlayerClaims(r.Context()); ok {
		h.log.Debug("creating session for player ", claims.Username)
		playerId = &claims.PlayerId
	} else {
		h.log.Debug("creating anonymous session")
	}
	session, err := h.repo.CreateGameSession(r.Context(), playerId, g)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.log.Error("unable to create game session: ", err)
		return
	}
	sendJSON(w, h.log, NewGameSessionDTO(session, g, true))
}

func (h *GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	session, g, ok := h.loadSession(w, r)
	if !ok {
		return
	}
	sendJSON(w, h.log, NewGameSessionDTO(session, g, true))
}

// Reveal applies a human reveal move. Illegal moves come back with
// last_move_ok=false and an unchanged board, never an error status.
func (h *GameHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	h.humanMove(w, r, game.ActionReveal)
}

func (h *GameHandler) Flag(w http.ResponseWriter, r *http.Request) {
	h.humanMove(w, r, game.ActionFlag)
}

func (h *GameHandler) humanMove(
	w http.ResponseWriter, r *http.Request, kind game.ActionKind,
) {
	var pos PosParams
	if err := h.dec.Decode(&pos, r.URL.Query()); err != nil {
		sendError(w, h.log, http.StatusBadRequest, err)
		return
	}
	session, g, ok := h.loadSession(w, r)
	if !ok {
		return
	}
	result := g.Apply(game.Human, game.Action{Kind: kind, Row: pos.Row, Col: pos.Col})
	h.saveAndSend(w, r, session, g, result.OK)
}

// AIMove asks the configured solver for one move. 409 means the solver
// has no seat or it is not its turn; an exhausted board is still 200
// with last_move_ok=false.
func (h *GameHandler) AIMove(w http.ResponseWriter, r *http.Request) {
	session, g, ok := h.loadSession(w, r)
	if !ok {
		return
	}
	if !g.Alternating() || g.Status != game.Playing || g.Turn != game.AI {
		sendError(w, h.log, http.StatusConflict,
			fmt.Errorf("no solver move available"))
		return
	}
	action, result, moved := g.PlayAIMove()
	if moved {
		h.log.WithFields(logrus.Fields{
			"kind": action.Kind,
			"row":  action.Row,
			"col":  action.Col,
		}).Debug("solver move")
	}
	h.saveAndSend(w, r, session, g, moved && result.OK)
}

func (h *GameHandler) Forfeit(w http.ResponseWriter, r *http.Request) {
	session, g, ok := h.loadSession(w, r)
	if !ok {
		return
	}
	g.Forfeit()
	h.saveAndSend(w, r, session, g, true)
}

func (h *GameHandler) loadSession(
	w http.ResponseWriter, r *http.Request,
) (*repository.GameSession, *game.Game, bool) {
	sessionId, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return nil, nil, false
	}
	session, err := h.repo.GetGameSession(r.Context(), sessionId)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		return nil, nil, false
	} else if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.log.Error("unable to fetch session: ", err)
		return nil, nil, false
	}
	g, err := session.Game()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.log.Error("db returned invalid game_session.state: ", err)
		return nil, nil, false
	}
	return session, g, true
}

func (h *GameHandler) saveAndSend(
	w http.ResponseWriter, r *http.Request,
	session *repository.GameSession, g *game.Game, lastMoveOK bool,
) {
	if err := h.repo.UpdateGameSession(r.Context(), session, g); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.log.Error("unable to update game session: ", err)
		return
	}
	sendJSON(w, h.log, NewGameSessionDTO(session, g, lastMoveOK))
}

type RecordsHandler struct {
	log  *logrus.Logger
	repo *repository.Queries
}

func NewRecordsHandler(log *logrus.Logger, repo *repository.Queries) *RecordsHandler {
	return &RecordsHandler{log: log, repo: repo}
}

const recordsLimit = 20

func (h *RecordsHandler) Records(w http.ResponseWriter, r *http.Request) {
	records, err := h.repo.GetRecords(r.Context(), recordsLimit)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.log.Error("unable to fetch records: ", err)
		return
	}
	sendJSON(w, h.log, records)
}

func (h *RecordsHandler) OwnRecords(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.PlayerClaims(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	records, err := h.repo.GetPlayerRecords(r.Context(), claims.PlayerId, recordsLimit)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.log.Error("unable to fetch player records: ", err)
		return
	}
	sendJSON(w, h.log, records)
}
