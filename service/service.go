// Package service exposes SHACL validation over NATS request/reply with a
// Prometheus metrics endpoint.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/c360studio/semshacl/config"
	"github.com/c360studio/semshacl/storage"
)

const queueGroup = "semshacl"

// shapesRegistry is the subset of storage.ShapesStore the handlers use.
type shapesRegistry interface {
	Put(ctx context.Context, rec *storage.ShapesRecord) error
	Get(ctx context.Context, name string) (*storage.ShapesRecord, error)
	Delete(ctx context.Context, name string) error
	List(ctx context.Context) ([]string, error)
}

// Service answers validation requests on <prefix>.validate and
// <prefix>.conforms, and shapes registry requests on <prefix>.shapes.*
// when a shapes bucket is configured.
type Service struct {
	cfg      *config.Config
	log      *slog.Logger
	metrics  *metrics
	registry shapesRegistry

	conn       *nats.Conn
	subs       []*nats.Subscription
	metricsSrv *http.Server
}

// New creates a service from a validated configuration.
func New(cfg *config.Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		cfg:     cfg,
		log:     logger.With("component", "service"),
		metrics: newMetrics(),
	}
}

// Start connects to NATS, subscribes the request handlers and, when
// configured, serves the metrics endpoint. It returns once the
// subscriptions are in place.
func (s *Service) Start(ctx context.Context) error {
	conn, err := nats.Connect(s.cfg.Service.URL,
		nats.Name("semshacl"),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return fmt.Errorf("connect to NATS at %s: %w", s.cfg.Service.URL, err)
	}
	s.conn = conn

	if bucket := s.cfg.Service.ShapesBucket; bucket != "" && s.registry == nil {
		js, err := jetstream.New(conn)
		if err != nil {
			s.Close()
			return fmt.Errorf("create JetStream context: %w", err)
		}
		store, err := storage.NewShapesStore(ctx, js, bucket)
		if err != nil {
			s.Close()
			return err
		}
		s.registry = store
	}

	prefix := s.cfg.Service.SubjectPrefix
	handlers := map[string]func(context.Context, []byte) []byte{
		prefix + ".validate": s.handleValidate,
		prefix + ".conforms": s.handleConforms,
	}
	if s.registry != nil {
		handlers[prefix+".shapes.put"] = s.handleShapesPut
		handlers[prefix+".shapes.get"] = s.handleShapesGet
		handlers[prefix+".shapes.list"] = s.handleShapesList
		handlers[prefix+".shapes.delete"] = s.handleShapesDelete
	}
	for subject, handler := range handlers {
		handler := handler
		sub, err := conn.QueueSubscribe(subject, queueGroup, func(msg *nats.Msg) {
			reqCtx, cancel := context.WithTimeout(ctx, s.cfg.Service.RequestTimeout)
			defer cancel()
			if err := msg.Respond(handler(reqCtx, msg.Data)); err != nil {
				s.log.Error("failed to respond", "subject", msg.Subject, "error", err)
			}
		})
		if err != nil {
			s.Close()
			return fmt.Errorf("subscribe %s: %w", subject, err)
		}
		s.subs = append(s.subs, sub)
		s.log.Info("subscribed", "subject", subject, "queue", queueGroup)
	}

	if addr := s.cfg.Service.MetricsAddr; addr != "" {
		s.serveMetrics(addr)
	}
	return nil
}

func (s *Service) serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))
	s.metricsSrv = &http.Server{Addr: addr, Handler: mux}

	go func() {
		s.log.Info("serving metrics", "addr", addr)
		if err := s.metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("metrics server failed", "error", err)
		}
	}()
}

// Close drains the subscriptions and shuts everything down.
func (s *Service) Close() {
	for _, sub := range s.subs {
		if err := sub.Drain(); err != nil {
			s.log.Warn("failed to drain subscription", "error", err)
		}
	}
	s.subs = nil

	if s.conn != nil {
		s.conn.Close()
		s.conn = nil
	}

	if s.metricsSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.metricsSrv.Shutdown(shutdownCtx); err != nil {
			s.log.Warn("metrics server shutdown failed", "error", err)
		}
		s.metricsSrv = nil
	}
}
