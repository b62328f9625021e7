package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360studio/semshacl/graph"
	"github.com/c360studio/semshacl/shapes"
	"github.com/c360studio/semshacl/validation"
)

// ValidateRequest is the JSON payload for <prefix>.validate and
// <prefix>.conforms. Graph formats default to turtle, the output format
// to the configured default.
type ValidateRequest struct {
	DataGraph    string `json:"data_graph"`
	ShapesGraph  string `json:"shapes_graph,omitempty"`
	ShapesName   string `json:"shapes_name,omitempty"`
	DataFormat   string `json:"data_format,omitempty"`
	ShapesFormat string `json:"shapes_format,omitempty"`
	OutputFormat string `json:"output_format,omitempty"`
}

// ValidateResponse answers a validate request. Report holds the rendered
// report in the requested format.
type ValidateResponse struct {
	Conforms    bool   `json:"conforms"`
	ResultCount int    `json:"result_count"`
	Report      string `json:"report,omitempty"`
	Error       string `json:"error,omitempty"`
}

// ConformsResponse answers a conforms request.
type ConformsResponse struct {
	Conforms bool   `json:"conforms"`
	Error    string `json:"error,omitempty"`
}

func (s *Service) handleValidate(ctx context.Context, data []byte) []byte {
	timer := prometheus.NewTimer(s.metrics.duration.WithLabelValues("validate"))
	defer timer.ObserveDuration()

	report, format, err := s.runValidation(ctx, data)
	if err != nil {
		s.metrics.requests.WithLabelValues("validate", "error").Inc()
		s.log.Warn("validate request failed", "error", err)
		return mustMarshal(ValidateResponse{Error: err.Error()})
	}

	rendered, err := renderReport(report, format)
	if err != nil {
		s.metrics.requests.WithLabelValues("validate", "error").Inc()
		return mustMarshal(ValidateResponse{Error: err.Error()})
	}

	s.metrics.requests.WithLabelValues("validate", "ok").Inc()
	s.metrics.results.Add(float64(len(report.Results)))
	return mustMarshal(ValidateResponse{
		Conforms:    report.Conforms,
		ResultCount: len(report.Results),
		Report:      rendered,
	})
}

func (s *Service) handleConforms(ctx context.Context, data []byte) []byte {
	timer := prometheus.NewTimer(s.metrics.duration.WithLabelValues("conforms"))
	defer timer.ObserveDuration()

	report, _, err := s.runValidation(ctx, data)
	if err != nil {
		s.metrics.requests.WithLabelValues("conforms", "error").Inc()
		s.log.Warn("conforms request failed", "error", err)
		return mustMarshal(ConformsResponse{Error: err.Error()})
	}

	s.metrics.requests.WithLabelValues("conforms", "ok").Inc()
	return mustMarshal(ConformsResponse{Conforms: report.Conforms})
}

// runValidation parses a request, builds the schema and validates the
// data graph. It returns the report and the requested output format.
func (s *Service) runValidation(ctx context.Context, data []byte) (*validation.Report, string, error) {
	var req ValidateRequest
	if err := unmarshalRequest(data, &req); err != nil {
		return nil, "", err
	}
	if req.DataGraph == "" {
		return nil, "", fmt.Errorf("data_graph is required")
	}

	shapesContent, shapesFormat, err := s.resolveShapes(ctx, &req)
	if err != nil {
		return nil, "", err
	}
	dataFormat := req.DataFormat
	if dataFormat == "" {
		dataFormat = "turtle"
	}
	outputFormat := req.OutputFormat
	if outputFormat == "" {
		outputFormat = s.cfg.Output.Format
	}

	shapesStore, err := graph.LoadString(shapesContent, shapesFormat, "")
	if err != nil {
		return nil, "", fmt.Errorf("parse shapes graph: %w", err)
	}
	schema, err := shapes.BuildWith(shapesStore, shapes.BuildOptions{Strict: s.cfg.Shapes.Strict})
	if err != nil {
		return nil, "", fmt.Errorf("build shapes: %w", err)
	}
	dataStore, err := graph.LoadString(req.DataGraph, dataFormat, "")
	if err != nil {
		return nil, "", fmt.Errorf("parse data graph: %w", err)
	}

	validator := validation.New(schema, s.cfg.ValidatorOptions(), s.log)
	report, err := validator.Validate(ctx, dataStore)
	if err != nil {
		return nil, "", fmt.Errorf("validation: %w", err)
	}
	return report, outputFormat, nil
}

func renderReport(report *validation.Report, format string) (string, error) {
	switch format {
	case "text":
		return report.Text(), nil
	case "json":
		raw, err := json.Marshal(report)
		if err != nil {
			return "", fmt.Errorf("render report: %w", err)
		}
		return string(raw), nil
	case "turtle", "jsonld":
		var buf bytes.Buffer
		if err := report.Graph().Serialize(&buf, format); err != nil {
			return "", fmt.Errorf("render report: %w", err)
		}
		return buf.String(), nil
	default:
		return "", fmt.Errorf("unknown output format %q", format)
	}
}

func unmarshalRequest(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}
	return nil
}

func mustMarshal(v any) []byte {
	raw, err := json.Marshal(v)
	if err != nil {
		// Responses only contain strings, ints and bools.
		panic(err)
	}
	return raw
}
