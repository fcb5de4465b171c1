package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"vaderlang/vader/internal/frameworks"
	"vaderlang/vader/internal/preview"
	"vaderlang/vader/internal/targets"
	"vaderlang/vader/vadererr"
)

type codeRequest struct {
	Code     string `json:"code"`
	Target   string `json:"target,omitempty"`
	Question string `json:"question,omitempty"`
}

type transpileResponse struct {
	Target string `json:"target"`
	Output string `json:"output"`
}

type detectResponse struct {
	Framework string         `json:"framework,omitempty"`
	Scores    map[string]int `json:"scores"`
	Error     string         `json:"error,omitempty"`
}

type runResponse struct {
	Target     string `json:"target"`
	Output     string `json:"output"`
	Error      string `json:"error,omitempty"`
	DurationMS int64  `json:"duration_ms"`
}

type targetInfo struct {
	Name        string `json:"name"`
	Extension   string `json:"extension"`
	Language    string `json:"language,omitempty"`
	Description string `json:"description,omitempty"`
}

type targetsResponse struct {
	Targets    []targetInfo `json:"targets"`
	Frameworks []targetInfo `json:"frameworks"`
}

// decode reads a JSON request, answering 413 when the body or the code exceeds
// the configured limit. It reports whether the handler should continue.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, req *codeRequest) bool {
	// Room for the JSON envelope and escaping around the code.
	r.Body = http.MaxBytesReader(w, r.Body, int64(2*s.opts.MaxCodeBytes+4096))
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeError(w, http.StatusRequestEntityTooLarge, "code too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return false
	}
	if len(req.Code) > s.opts.MaxCodeBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "code too large")
		return false
	}
	return true
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleTargets(w http.ResponseWriter, r *http.Request) {
	resp := targetsResponse{}
	for _, t := range targets.All() {
		resp.Targets = append(resp.Targets, targetInfo{Name: t.Name(), Extension: t.Extension()})
	}
	for _, f := range frameworks.Global.All() {
		resp.Frameworks = append(resp.Frameworks, targetInfo{
			Name:        f.Name,
			Extension:   f.Extension,
			Language:    f.Language,
			Description: f.Description,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTranspile(w http.ResponseWriter, r *http.Request) {
	var req codeRequest
	if !s.decode(w, r, &req) {
		return
	}
	target := strings.TrimSpace(req.Target)
	if target == "" {
		target = s.opts.DefaultTarget
	}
	name, out, err := frameworks.TranspileAny(target, req.Code)
	if err != nil {
		var unknown *vadererr.UnknownTargetError
		if errors.As(err, &unknown) {
			writeError(w, http.StatusBadRequest, "unknown target "+target)
			return
		}
		s.logger.Error("transpile failed", "target", target, "err", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, transpileResponse{Target: name, Output: out})
}

func (s *Server) handleDetect(w http.ResponseWriter, r *http.Request) {
	var req codeRequest
	if !s.decode(w, r, &req) {
		return
	}
	d, err := frameworks.Detect(req.Code)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, detectResponse{Scores: d.Scores, Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, detectResponse{Framework: d.Framework, Scores: d.Scores})
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	if s.opts.Runner == nil {
		writeError(w, http.StatusNotImplemented, "preview runner disabled")
		return
	}
	var req codeRequest
	if !s.decode(w, r, &req) {
		return
	}
	target := req.Target
	if target == "" {
		target = s.opts.DefaultTarget
	}

	res, err := s.opts.Runner.RunSource(r.Context(), target, req.Code)
	resp := runResponse{Target: res.Target, Output: res.Output, DurationMS: res.Duration.Milliseconds()}
	var runErr *vadererr.RunError
	var unknown *vadererr.UnknownTargetError
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, resp)
	case errors.As(err, &runErr):
		resp.Error = err.Error()
		writeJSON(w, http.StatusOK, resp)
	case errors.Is(err, preview.ErrTimeout):
		resp.Error = err.Error()
		writeJSON(w, http.StatusGatewayTimeout, resp)
	case errors.Is(err, preview.ErrNotRunnable), errors.As(err, &unknown):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, preview.ErrInterpreterNotFound):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		s.logger.Error("run failed", "target", target, "err", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req codeRequest
	if !s.decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeError(w, http.StatusBadRequest, "question is required")
		return
	}
	answer, err := s.opts.Assistant.Ask(r.Context(), req.Question, req.Code)
	if err != nil {
		s.logger.Warn("assistant failed", "err", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"answer": answer})
}
