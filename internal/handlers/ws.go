package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
)

// Connect upgrades the request and plays the session over a command
// stream. Each text frame holds newline-separated commands; after the
// frame is applied the full session DTO is written back, so the client
// never has to reconcile partial updates.
func (h *GameHandler) Connect(w http.ResponseWriter, r *http.Request) {
	session, g, ok := h.loadSession(w, r)
	if !ok {
		return
	}
	c, err := h.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("upgrade: ", err)
		return
	}
	defer c.Close()
	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				h.log.Warn("read: ", err)
			}
			break
		}
		if mt != websocket.TextMessage {
			break
		}
		text := strings.TrimSpace(string(message))
		h.log.Debug("\t> ", text)
		for _, line := range strings.Split(text, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if err := executeCommand(g, line); err != nil {
				h.log.Error("command: ", err)
				return
			}
		}
		if err := h.repo.UpdateGameSession(r.Context(), session, g); err != nil {
			h.log.Error("unable to update game session: ", err)
			return
		}
		if err := c.WriteJSON(NewGameSessionDTO(session, g, true)); err != nil {
			h.log.Error("write: ", err)
			break
		}
		h.log.Debug("\t< <session data>")
	}
}
