package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360studio/semshacl/graph"
	"github.com/c360studio/semshacl/shapes"
	"github.com/c360studio/semshacl/storage"
)

// ShapesPutRequest registers a shapes graph under a name. The graph is
// parsed and built before it is stored, so a bad graph is rejected here
// rather than on every later validate request.
type ShapesPutRequest struct {
	Name    string `json:"name"`
	Content string `json:"content"`
	Format  string `json:"format,omitempty"`
}

// ShapesNameRequest names a registered shapes graph.
type ShapesNameRequest struct {
	Name string `json:"name"`
}

// ShapesStatusResponse acknowledges a put or delete.
type ShapesStatusResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// ShapesGetResponse returns a registered shapes graph.
type ShapesGetResponse struct {
	Name      string    `json:"name,omitempty"`
	Format    string    `json:"format,omitempty"`
	Content   string    `json:"content,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
	Error     string    `json:"error,omitempty"`
}

// ShapesListResponse lists the registered shapes graph names.
type ShapesListResponse struct {
	Names []string `json:"names"`
	Error string   `json:"error,omitempty"`
}

func (s *Service) handleShapesPut(ctx context.Context, data []byte) []byte {
	timer := prometheus.NewTimer(s.metrics.duration.WithLabelValues("shapes.put"))
	defer timer.ObserveDuration()

	var req ShapesPutRequest
	if err := unmarshalRequest(data, &req); err != nil {
		return s.registryError("shapes.put", err)
	}
	if req.Content == "" {
		return s.registryError("shapes.put", fmt.Errorf("content is required"))
	}

	format := req.Format
	if format == "" {
		format = "turtle"
	}
	store, err := graph.LoadString(req.Content, format, "")
	if err != nil {
		return s.registryError("shapes.put", fmt.Errorf("parse shapes graph: %w", err))
	}
	if _, err := shapes.BuildWith(store, shapes.BuildOptions{Strict: s.cfg.Shapes.Strict}); err != nil {
		return s.registryError("shapes.put", fmt.Errorf("build shapes: %w", err))
	}

	if err := s.registry.Put(ctx, &storage.ShapesRecord{
		Name:    req.Name,
		Format:  format,
		Content: req.Content,
	}); err != nil {
		return s.registryError("shapes.put", err)
	}

	s.metrics.requests.WithLabelValues("shapes.put", "ok").Inc()
	s.log.Info("registered shapes graph", "name", req.Name)
	return mustMarshal(ShapesStatusResponse{OK: true})
}

func (s *Service) handleShapesGet(ctx context.Context, data []byte) []byte {
	timer := prometheus.NewTimer(s.metrics.duration.WithLabelValues("shapes.get"))
	defer timer.ObserveDuration()

	var req ShapesNameRequest
	if err := unmarshalRequest(data, &req); err != nil {
		s.metrics.requests.WithLabelValues("shapes.get", "error").Inc()
		return mustMarshal(ShapesGetResponse{Error: err.Error()})
	}

	rec, err := s.registry.Get(ctx, req.Name)
	if err != nil {
		s.metrics.requests.WithLabelValues("shapes.get", "error").Inc()
		return mustMarshal(ShapesGetResponse{Error: err.Error()})
	}

	s.metrics.requests.WithLabelValues("shapes.get", "ok").Inc()
	return mustMarshal(ShapesGetResponse{
		Name:      rec.Name,
		Format:    rec.Format,
		Content:   rec.Content,
		UpdatedAt: rec.UpdatedAt,
	})
}

func (s *Service) handleShapesList(ctx context.Context, _ []byte) []byte {
	timer := prometheus.NewTimer(s.metrics.duration.WithLabelValues("shapes.list"))
	defer timer.ObserveDuration()

	names, err := s.registry.List(ctx)
	if err != nil {
		s.metrics.requests.WithLabelValues("shapes.list", "error").Inc()
		return mustMarshal(ShapesListResponse{Error: err.Error()})
	}

	s.metrics.requests.WithLabelValues("shapes.list", "ok").Inc()
	return mustMarshal(ShapesListResponse{Names: names})
}

func (s *Service) handleShapesDelete(ctx context.Context, data []byte) []byte {
	timer := prometheus.NewTimer(s.metrics.duration.WithLabelValues("shapes.delete"))
	defer timer.ObserveDuration()

	var req ShapesNameRequest
	if err := unmarshalRequest(data, &req); err != nil {
		return s.registryError("shapes.delete", err)
	}
	if err := s.registry.Delete(ctx, req.Name); err != nil {
		return s.registryError("shapes.delete", err)
	}

	s.metrics.requests.WithLabelValues("shapes.delete", "ok").Inc()
	s.log.Info("deleted shapes graph", "name", req.Name)
	return mustMarshal(ShapesStatusResponse{OK: true})
}

// resolveShapes returns the shapes graph for a validate request, either
// inline or from the registry.
func (s *Service) resolveShapes(ctx context.Context, req *ValidateRequest) (content, format string, err error) {
	switch {
	case req.ShapesGraph != "" && req.ShapesName != "":
		return "", "", fmt.Errorf("shapes_graph and shapes_name are mutually exclusive")
	case req.ShapesGraph != "":
		format = req.ShapesFormat
		if format == "" {
			format = "turtle"
		}
		return req.ShapesGraph, format, nil
	case req.ShapesName != "":
		if s.registry == nil {
			return "", "", fmt.Errorf("no shapes registry configured")
		}
		rec, err := s.registry.Get(ctx, req.ShapesName)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return "", "", fmt.Errorf("shapes graph %q is not registered", req.ShapesName)
			}
			return "", "", err
		}
		return rec.Content, rec.Format, nil
	default:
		return "", "", fmt.Errorf("shapes_graph or shapes_name is required")
	}
}

func (s *Service) registryError(op string, err error) []byte {
	s.metrics.requests.WithLabelValues(op, "error").Inc()
	s.log.Warn("registry request failed", "operation", op, "error", err)
	return mustMarshal(ShapesStatusResponse{Error: err.Error()})
}
