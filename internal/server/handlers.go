package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/matzehuels/inflate/pkg/buildinfo"
	"github.com/matzehuels/inflate/pkg/errors"
	"github.com/matzehuels/inflate/pkg/growth"
	"github.com/matzehuels/inflate/pkg/pipeline"
)

// maxBodyBytes caps the size of a solve request body.
const maxBodyBytes = 1 << 16

// solveRequest is the POST /v1/solve body. Solver option fields are optional.
type solveRequest struct {
	growth.Request
	pipeline.Options
}

// solveResponse is the POST /v1/solve success body.
type solveResponse struct {
	growth.Result
	Summary growth.Summary `json:"summary"`
	Layers  []growth.Layer `json:"layers,omitempty"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: buildinfo.Resolve().Version})
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var body solveRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, string(errors.ErrCodeInvalidInput), "malformed request body: "+err.Error())
		return
	}

	opts := body.Options
	opts.OnStep = nil
	opts.Timeout = s.cfg.SolveTimeout

	out, err := s.runner.Solve(r.Context(), body.Request, opts)
	if err != nil {
		s.logger.Debug("solve rejected", "request_id", requestIDFrom(r.Context()), "error", err)
		writeCodedError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, solveResponse{
		Result:  out.Solution,
		Summary: out.Summary,
		Layers:  out.Layers,
	})
}

// statusFor maps an error code to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeBracketingFailed), errors.Is(err, errors.ErrCodeDegenerateRatio):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errors.ErrCodeTimeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeCodedError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeError(w, statusFor(err), string(code), errors.UserMessage(err))
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// writeJSON encodes v before the header goes out, so a value JSON cannot
// represent (such as an infinite residual) becomes a 500 instead of an empty
// 200.
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = json.Marshal(errorResponse{
			Code:    string(errors.ErrCodeInternal),
			Message: "encode response: " + err.Error(),
		})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

type ctxKey struct{}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
