package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/zx0223winner/peppro/internal/resolver"
	"github.com/zx0223winner/peppro/internal/service"
)

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req service.ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.Attributes) == 0 {
		s.writeError(w, http.StatusBadRequest, "Request has no sample attributes")
		return
	}

	resp, err := s.resolveService.Resolve(ctx, &req)
	if err != nil {
		var mae *resolver.MissingAttributeError
		if errors.As(err, &mae) {
			s.writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListGenomes(w http.ResponseWriter, r *http.Request) {
	reg := s.resolveService.Registry()
	genomes := reg.Genomes()

	out := make([]map[string]interface{}, 0, len(genomes))
	for _, g := range genomes {
		out = append(out, map[string]interface{}{
			"genome":     g,
			"categories": reg.Categories(g),
		})
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"genomes": out,
		"total":   len(out),
	})
}

func (s *Server) handleGetGenome(w http.ResponseWriter, r *http.Request) {
	genome := mux.Vars(r)["genome"]
	reg := s.resolveService.Registry()

	if !reg.HasGenome(genome) {
		s.writeError(w, http.StatusNotFound, "Genome not found: "+genome)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"genome": genome,
		"assets": reg.Assets(genome),
	})
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	limit := 50
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	if limit > 1000 {
		limit = 1000
	}
	offset := 0
	if v := q.Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			offset = n
		}
	}

	runs, err := s.runService.List(ctx, limit, offset)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"runs":  runs,
		"total": len(runs),
	})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid run id")
		return
	}

	run, err := s.runService.Get(ctx, id)
	if err != nil {
		s.writeError(w, http.StatusNotFound, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, run)
}

func (s *Server) handleGetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.runService.Stats(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	code := http.StatusOK
	if err := s.db.Ping(); err != nil {
		status = "degraded: " + err.Error()
		code = http.StatusServiceUnavailable
	}
	s.writeJSON(w, code, map[string]string{"status": status})
}
