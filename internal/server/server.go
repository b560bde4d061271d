// Package server exposes a DB over HTTP: a health check, Prometheus metrics
// and a query endpoint.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vk/graphene"
	"github.com/vk/graphene/internal/ctxlog"
)

// maxBodyBytes caps the size of a query request body.
const maxBodyBytes = 1 << 20

// QueryRequest is the body of POST /query. Exactly one of Name and Steps is
// set. Each step is a JSON array: the pipe type name followed by an optional
// array of arguments, e.g. ["out", ["parent"]].
type QueryRequest struct {
	Name  string            `json:"name,omitempty"`
	Steps []json.RawMessage `json:"steps,omitempty"`
}

// QueryResponse is the body of a successful POST /query.
type QueryResponse struct {
	QueryID string `json:"query_id"`
	Results []any  `json:"results"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Server answers HTTP requests against one DB.
type Server struct {
	db       *graphene.DB
	queries  map[string]graphene.Program
	gatherer prometheus.Gatherer
}

// New creates a server. queries are the named programs reachable by name;
// gatherer backs /metrics and may be nil to disable it.
func New(db *graphene.DB, queries map[string]graphene.Program, gatherer prometheus.Gatherer) *Server {
	return &Server{db: db, queries: queries, gatherer: gatherer}
}

// Handler returns the routing mux.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.healthHandler)
	mux.HandleFunc("GET /queries", s.listHandler)
	mux.HandleFunc("POST /query", s.queryHandler)
	if s.gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return mux
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	ctxlog.FromContext(r.Context()).Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

func (s *Server) listHandler(w http.ResponseWriter, _ *http.Request) {
	names := make([]string, 0, len(s.queries))
	for name := range s.queries {
		names = append(names, name)
	}
	sort.Strings(names)
	writeJSON(w, http.StatusOK, map[string][]string{"queries": names})
}

func (s *Server) queryHandler(w http.ResponseWriter, r *http.Request) {
	logger := ctxlog.FromContext(r.Context())

	var req QueryRequest
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body: " + err.Error()})
		return
	}

	prog, status, err := s.program(req)
	if err != nil {
		logger.Debug("Rejected query request.", "status", status, "error", err)
		writeJSON(w, status, errorResponse{Error: err.Error()})
		return
	}

	q := s.db.Query()
	for _, st := range prog {
		q.Step(st.Name, st.Args...)
	}
	results := q.Run(r.Context())
	writeJSON(w, http.StatusOK, QueryResponse{QueryID: q.ID(), Results: results.Values()})
}

func (s *Server) program(req QueryRequest) (graphene.Program, int, error) {
	switch {
	case req.Name != "" && len(req.Steps) > 0:
		return nil, http.StatusBadRequest, errors.New("set either name or steps, not both")
	case req.Name != "":
		prog, ok := s.queries[req.Name]
		if !ok {
			return nil, http.StatusNotFound, fmt.Errorf("unknown query %q", req.Name)
		}
		return prog.Clone(), 0, nil
	case len(req.Steps) > 0:
		prog, err := ParseSteps(req.Steps)
		if err != nil {
			return nil, http.StatusBadRequest, err
		}
		return prog, 0, nil
	default:
		return nil, http.StatusBadRequest, errors.New("name or steps is required")
	}
}

// ParseSteps decodes ["name", [args...]] arrays into a program. Numbers keep
// their exact decimal form.
func ParseSteps(raw []json.RawMessage) (graphene.Program, error) {
	prog := make(graphene.Program, 0, len(raw))
	for i, msg := range raw {
		var parts []json.RawMessage
		if err := json.Unmarshal(msg, &parts); err != nil || len(parts) == 0 || len(parts) > 2 {
			return nil, fmt.Errorf("step %d: want [name] or [name, [args...]]", i)
		}
		var name string
		if err := json.Unmarshal(parts[0], &name); err != nil || name == "" {
			return nil, fmt.Errorf("step %d: name must be a non-empty string", i)
		}
		var args []any
		if len(parts) == 2 {
			dec := json.NewDecoder(bytes.NewReader(parts[1]))
			dec.UseNumber()
			if err := dec.Decode(&args); err != nil {
				return nil, fmt.Errorf("step %d (%s): args must be an array: %w", i, name, err)
			}
		}
		prog = append(prog, graphene.S(name, args...))
	}
	return prog, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
