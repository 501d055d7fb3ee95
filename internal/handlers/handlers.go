package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

func sendJSON(w http.ResponseWriter, log *logrus.Logger, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.Error("unable to marshal response: ", err)
		return
	}
	w.Header().Add("Content-Type", "application/json")
	if _, err := w.Write(payload); err != nil {
		log.Error("unable to send response: ", err)
	}
}

func sendError(w http.ResponseWriter, log *logrus.Logger, code int, err error) {
	w.WriteHeader(code)
	sendJSON(w, log, map[string]string{"error": err.Error()})
}
