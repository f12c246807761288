package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/onesheet/internal/assembler"
	"github.com/MikeSquared-Agency/onesheet/internal/document"
	"github.com/MikeSquared-Agency/onesheet/internal/extractor"
	"github.com/MikeSquared-Agency/onesheet/internal/prompt"
	"github.com/MikeSquared-Agency/onesheet/internal/store"
)

type templateInfo struct {
	Kind         prompt.Kind `json:"kind"`
	Description  string      `json:"description"`
	Placeholders []string    `json:"placeholders"`
}

type renderRequest struct {
	Kind   string            `json:"kind"`
	Values map[string]string `json:"values"`
}

type renderResponse struct {
	Kind   prompt.Kind `json:"kind"`
	System string      `json:"system"`
	Prompt string      `json:"prompt"`
}

type parseRequest struct {
	Kind string `json:"kind"`
	Raw  string `json:"raw"`
}

// parseResponse is a Result plus the summary fields clients show directly.
type parseResponse struct {
	assembler.Result
	Count    int    `json:"count"`
	Degraded bool   `json:"degraded"`
	Message  string `json:"message,omitempty"`
}

type generateRequest struct {
	Kind      string            `json:"kind"`
	Values    map[string]string `json:"values"`
	OwnerUUID string            `json:"owner_uuid,omitempty"`
}

type generateResponse struct {
	*extractor.GenerationResult
	Count    int    `json:"count"`
	Degraded bool   `json:"degraded"`
	Message  string `json:"message,omitempty"`
	Stored   bool   `json:"stored"`
}

type documentRequest struct {
	Title    string         `json:"title"`
	Sections []parseRequest `json:"sections"`
}

type documentResponse struct {
	Markdown string `json:"markdown"`
	HTML     string `json:"html"`
}

type generationResponse struct {
	Generation *store.GenerationRow `json:"generation"`
	Records    []store.RecordRow    `json:"records"`
}

func emptyMessage(r assembler.Result) string {
	if r.Degraded() {
		return document.EmptyMessage
	}
	return ""
}

func (s *Server) templates(w http.ResponseWriter, r *http.Request) {
	catalog := s.extractor.Engine().Catalog()
	out := []templateInfo{}
	for _, kind := range catalog.Kinds() {
		t, _ := catalog.Lookup(kind)
		out = append(out, templateInfo{Kind: t.Kind, Description: t.Description, Placeholders: t.Placeholders})
	}
	writeJSON(w, http.StatusOK, map[string]any{"templates": out, "count": len(out)})
}

func (s *Server) render(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if !decode(w, r, &req) {
		return
	}
	kind := prompt.ParseKind(req.Kind)
	engine := s.extractor.Engine()

	body, err := engine.Render(kind, req.Values)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	system, err := engine.System(kind)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, renderResponse{Kind: kind, System: system, Prompt: body})
}

func (s *Server) parse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if !decode(w, r, &req) {
		return
	}
	result, err := s.extractor.Parse(prompt.ParseKind(req.Kind), req.Raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, parseResponse{
		Result:   result,
		Count:    result.Count(),
		Degraded: result.Degraded(),
		Message:  emptyMessage(result),
	})
}

func (s *Server) generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if !decode(w, r, &req) {
		return
	}
	ownerUUID := uuid.Nil
	if req.OwnerUUID != "" {
		id, err := uuid.Parse(req.OwnerUUID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid owner_uuid")
			return
		}
		ownerUUID = id
	}

	g, err := s.extractor.Generate(r.Context(), extractor.GenerationRequest{
		Kind:   prompt.ParseKind(req.Kind),
		Values: req.Values,
	})
	switch {
	case errors.Is(err, extractor.ErrNoLLM):
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	case errors.Is(err, prompt.ErrUnknownTemplateKind):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		s.logger.Error("generation failed", "kind", req.Kind, "error", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	stored := false
	if s.store != nil {
		id, err := s.store.WriteGeneration(r.Context(), ownerUUID, g)
		if err != nil {
			s.logger.Error("persistence failed", "generation_id", g.ID, "error", err)
		} else {
			g.ID = id
			stored = true
		}
	}

	writeJSON(w, http.StatusOK, generateResponse{
		GenerationResult: g,
		Count:            g.Result.Count(),
		Degraded:         g.Result.Degraded(),
		Message:          emptyMessage(g.Result),
		Stored:           stored,
	})
}

func (s *Server) document(w http.ResponseWriter, r *http.Request) {
	var req documentRequest
	if !decode(w, r, &req) {
		return
	}
	results := make([]assembler.Result, 0, len(req.Sections))
	for _, sec := range req.Sections {
		result, err := s.extractor.Parse(prompt.ParseKind(sec.Kind), sec.Raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		results = append(results, result)
	}

	md := document.Build(req.Title, results)
	html, err := document.HTML(md)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, documentResponse{Markdown: md, HTML: html})
}

func (s *Server) generation(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "no store configured")
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid generation id")
		return
	}

	g, err := s.store.GetGeneration(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "generation not found")
		return
	}
	if err != nil {
		s.logger.Error("get generation failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	records, err := s.store.ListRecords(r.Context(), id)
	if err != nil {
		s.logger.Error("list records failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, generationResponse{Generation: g, Records: records})
}
