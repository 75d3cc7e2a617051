package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"sheetstep/pkg/engine"
	"sheetstep/pkg/sheets"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Server exposes the step engine to the workflow host over HTTP.
type Server struct {
	svc sheets.Service
}

func NewServer(svc sheets.Service) *Server {
	return &Server{svc: svc}
}

func (s *Server) runStep(w http.ResponseWriter, r *http.Request) {
	invocationID := uuid.NewString()

	var req RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, invocationID, "malformed request body")
		return
	}

	logger := log.WithFields(log.Fields{
		"invocation": invocationID,
		"operation":  req.Operation,
		"sheet":      req.Sheet,
		"items":      len(req.Items),
	})
	logger.Info("running step")

	items, err := engine.New(s.svc).Run(r.Context(), req.params(), req.Items)
	if err != nil {
		logger.WithError(err).Error("step failed")
		status := http.StatusBadGateway
		if engine.IsConfig(err) || errors.Is(err, engine.ErrShapeMismatch) {
			status = http.StatusBadRequest
		}
		sendError(w, status, invocationID, err.Error())
		return
	}
	logger.WithField("out", len(items)).Info("step complete")

	if items == nil {
		items = []engine.Item{}
	}
	body, err := json.Marshal(RunResponse{InvocationID: invocationID, Items: items})
	if err != nil {
		sendError(w, http.StatusInternalServerError, invocationID, "encoding response failed")
		return
	}
	sendResponse(w, http.StatusOK, body)
}

func getHealth(w http.ResponseWriter, _ *http.Request) {
	sendResponse(w, http.StatusOK, []byte(`{"status":"ok"}`))
}

func sendError(w http.ResponseWriter, status int, invocationID, msg string) {
	body, _ := json.Marshal(errorResponse{InvocationID: invocationID, Error: msg})
	sendResponse(w, status, body)
}

func sendResponse(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
