package server

import (
	"encoding/json"
	"net/http"

	"github.com/matzehuels/arranger/pkg/errors"
	"github.com/matzehuels/arranger/pkg/export"
	"github.com/matzehuels/arranger/pkg/pipeline"
	"github.com/matzehuels/arranger/pkg/scene"
)

// OptionsRequest overrides the server's pass defaults. Nil fields keep the
// default.
type OptionsRequest struct {
	ItemAvoidance *bool    `json:"item_avoidance,omitempty"`
	JoinAvoidance *bool    `json:"join_avoidance,omitempty"`
	Margin        *float64 `json:"margin,omitempty"`
	Padding       *float64 `json:"padding,omitempty"`
	Joins         []string `json:"joins,omitempty"`
	Refresh       bool     `json:"refresh,omitempty"`
}

// ArrangeRequest is the body of POST /v1/arrange.
type ArrangeRequest struct {
	Scene   scene.Document `json:"scene"`
	Options OptionsRequest `json:"options"`
}

// ArrangeResponse is the body returned by POST /v1/arrange.
type ArrangeResponse struct {
	RequestID string               `json:"request_id"`
	SceneHash string               `json:"scene_hash"`
	CacheHit  bool                 `json:"cache_hit"`
	Result    scene.ResultDocument `json:"result"`
}

// RouteRequest is the body of POST /v1/route and POST /v1/graph.
type RouteRequest struct {
	Scene   scene.Document `json:"scene"`
	Join    string         `json:"join"`
	Format  string         `json:"format,omitempty"`
	Options OptionsRequest `json:"options"`
}

// RouteResponse is the body returned by POST /v1/route.
type RouteResponse struct {
	RequestID string      `json:"request_id"`
	Route     scene.Route `json:"route"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleArrange(w http.ResponseWriter, r *http.Request) {
	var req ArrangeRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	opts := s.options(r, req.Options)
	sc, err := pipeline.BuildScene(req.Scene, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.runner.Arrange(r.Context(), sc, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ArrangeResponse{
		RequestID: RequestID(r.Context()),
		SceneHash: res.SceneHash,
		CacheHit:  res.CacheHit,
		Result:    res.Document,
	})
}

func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	var req RouteRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Join == "" {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "join is required"))
		return
	}
	opts := s.options(r, req.Options)
	opts.Joins = []string{req.Join}
	sc, err := pipeline.BuildScene(req.Scene, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.runner.Arrange(r.Context(), sc, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	rt, ok := res.Route(req.Join)
	if !ok {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "join %q not found", req.Join))
		return
	}
	writeJSON(w, http.StatusOK, RouteResponse{RequestID: RequestID(r.Context()), Route: rt})
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	var req RouteRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Join == "" {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "join is required"))
		return
	}
	format := export.Format(req.Format)
	if format == "" {
		format = export.FormatDOT
	}
	opts := s.options(r, req.Options)
	sc, err := pipeline.BuildScene(req.Scene, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data, err := s.runner.Export(r.Context(), sc, req.Join, format, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentType(format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// options merges request overrides onto the server defaults.
func (s *Server) options(r *http.Request, o OptionsRequest) pipeline.Options {
	opts := s.defaults
	if o.ItemAvoidance != nil {
		opts.ItemAvoidance = *o.ItemAvoidance
	}
	if o.JoinAvoidance != nil {
		opts.JoinAvoidance = *o.JoinAvoidance
	}
	if o.Margin != nil {
		opts.Margin = *o.Margin
	}
	if o.Padding != nil {
		opts.Padding = *o.Padding
	}
	if len(o.Joins) > 0 {
		opts.Joins = o.Joins
	}
	opts.Refresh = o.Refresh
	opts.Logger = s.logger.With("request_id", RequestID(r.Context()))
	return opts
}

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request body")
	}
	return nil
}

func contentType(f export.Format) string {
	switch f {
	case export.FormatSVG:
		return "image/svg+xml"
	case export.FormatJSON:
		return "application/json"
	default:
		return "text/vnd.graphviz; charset=utf-8"
	}
}
