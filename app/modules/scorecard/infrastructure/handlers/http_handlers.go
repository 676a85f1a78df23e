package scorecardhandlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	scorecardservice "github.com/Black-And-White-Club/bowl-bot/app/modules/scorecard/application"
	scorecardtypes "github.com/Black-And-White-Club/bowl-bot/app/modules/scorecard/domain/types"
	"github.com/Black-And-White-Club/bowl-bot/app/shared/observability/attr"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const (
	maxJSONBody = 64 << 10
	// ImportFormField is the multipart field holding an uploaded scorecard.
	ImportFormField = "file"
)

// ComputeRequest is the body of POST /api/scorecards/compute.
type ComputeRequest struct {
	Players []scorecardtypes.PlayerSnapshot `json:"players"`
}

// CreateGameRequest is the body of POST /api/games.
type CreateGameRequest struct {
	Players []string `json:"players"`
}

// EnterBallBody is the body of POST /api/games/{gameID}/players/{playerID}/balls.
type EnterBallBody struct {
	Frame int    `json:"frame"`
	Ball  int    `json:"ball"`
	Value string `json:"value"`
}

type errorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorResponse{Code: code, Error: msg})
}

// statusFor maps a failure code to an HTTP status.
func statusFor(code string) int {
	switch code {
	case scorecardservice.CodeNotFound:
		return http.StatusNotFound
	case scorecardservice.CodeIllegalBall:
		return http.StatusUnprocessableEntity
	case scorecardservice.CodeUnsupportedFile:
		return http.StatusUnsupportedMediaType
	}
	return http.StatusBadRequest
}

func writeFailure(w http.ResponseWriter, f *scorecardservice.Failure) {
	writeError(w, statusFor(f.Code), f.Code, f.Reason)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}

// HandleHTTPCompute scores raw snapshots.
func (h *ScorecardHandlers) HandleHTTPCompute(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ComputeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, scorecardservice.CodeInvalidRequest, err.Error())
		return
	}

	result, err := h.service.ComputeScorecards(ctx, req.Players)
	if err != nil {
		h.logger.ErrorContext(ctx, "HTTP compute failed", attr.Error(err))
		writeError(w, http.StatusInternalServerError, "internal", "internal error")
		return
	}
	if result.IsFailure() {
		writeFailure(w, result.Failure)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"players": *result.Success})
}

// HandleHTTPCheck asks the input gate about one ball.
func (h *ScorecardHandlers) HandleHTTPCheck(w http.ResponseWriter, r *http.Request) {
	var req scorecardservice.CheckBallRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, scorecardservice.CodeInvalidRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, h.service.CheckBall(r.Context(), req))
}

// HandleHTTPImport scores an uploaded CSV or XLSX scorecard.
func (h *ScorecardHandlers) HandleHTTPImport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	r.Body = http.MaxBytesReader(w, r.Body, scorecardservice.MaxImportBytes+maxJSONBody)

	file, header, err := r.FormFile(ImportFormField)
	if err != nil {
		writeError(w, http.StatusBadRequest, scorecardservice.CodeInvalidRequest, "multipart field \"file\" is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeError(w, http.StatusRequestEntityTooLarge, scorecardservice.CodeInvalidRequest, "file too large")
			return
		}
		writeError(w, http.StatusBadRequest, scorecardservice.CodeInvalidRequest, "could not read file")
		return
	}

	result, err := h.service.ImportScorecard(ctx, header.Filename, data)
	if err != nil {
		h.logger.ErrorContext(ctx, "HTTP import failed", attr.String("file_name", header.Filename), attr.Error(err))
		writeError(w, http.StatusInternalServerError, "internal", "internal error")
		return
	}
	if result.IsFailure() {
		writeFailure(w, result.Failure)
		return
	}
	writeJSON(w, http.StatusOK, result.Success)
}

// HandleHTTPCreateGame starts a live game.
func (h *ScorecardHandlers) HandleHTTPCreateGame(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateGameRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, scorecardservice.CodeInvalidRequest, err.Error())
		return
	}

	result, err := h.service.CreateGame(ctx, req.Players)
	if err != nil {
		h.logger.ErrorContext(ctx, "HTTP create game failed", attr.Error(err))
		writeError(w, http.StatusInternalServerError, "internal", "internal error")
		return
	}
	if result.IsFailure() {
		writeFailure(w, result.Failure)
		return
	}
	w.Header().Set("Location", "/api/games/"+result.Success.GameID.String())
	writeJSON(w, http.StatusCreated, result.Success)
}

// HandleHTTPGetGame returns a live game with every player's scorecard.
func (h *ScorecardHandlers) HandleHTTPGetGame(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	gameID, err := pathUUID(r, "gameID")
	if err != nil {
		writeError(w, http.StatusBadRequest, scorecardservice.CodeInvalidRequest, err.Error())
		return
	}

	result, err := h.service.GetGame(ctx, gameID)
	if err != nil {
		h.logger.ErrorContext(ctx, "HTTP get game failed", attr.GameID("game_id", gameID), attr.Error(err))
		writeError(w, http.StatusInternalServerError, "internal", "internal error")
		return
	}
	if result.IsFailure() {
		writeFailure(w, result.Failure)
		return
	}
	writeJSON(w, http.StatusOK, result.Success)
}

// HandleHTTPEnterBall enters one ball and announces the outcome on the event bus.
func (h *ScorecardHandlers) HandleHTTPEnterBall(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	gameID, err := pathUUID(r, "gameID")
	if err != nil {
		writeError(w, http.StatusBadRequest, scorecardservice.CodeInvalidRequest, err.Error())
		return
	}
	playerID, err := pathUUID(r, "playerID")
	if err != nil {
		writeError(w, http.StatusBadRequest, scorecardservice.CodeInvalidRequest, err.Error())
		return
	}

	var body EnterBallBody
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, http.StatusBadRequest, scorecardservice.CodeInvalidRequest, err.Error())
		return
	}

	result, err := h.service.EnterBall(ctx, scorecardservice.EnterBallRequest{
		GameID:   gameID,
		PlayerID: playerID,
		Frame:    body.Frame,
		Ball:     body.Ball,
		Value:    body.Value,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "HTTP enter ball failed", attr.GameID("game_id", gameID), attr.Error(err))
		writeError(w, http.StatusInternalServerError, "internal", "internal error")
		return
	}

	h.announce(ctx, enterBallResults(result))

	if result.IsFailure() {
		writeJSON(w, statusFor(result.Failure.Code), result.Failure)
		return
	}
	writeJSON(w, http.StatusOK, result.Success)
}

// HandleHealthz reports liveness.
func HandleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
