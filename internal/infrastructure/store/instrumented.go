// Package store provides the instrumented decorator shared by every KVStore
// backend.
package store

import (
	"context"
	"time"

	"github.com/igilife/insurance-portal/internal/api/metrics"
	"github.com/igilife/insurance-portal/internal/core/ports"
)

// Instrumented wraps a KVStore and records per-operation latency and error
// counts under the backend label.
type Instrumented struct {
	next    ports.KVStore
	backend string
}

func Instrument(next ports.KVStore, backend string) *Instrumented {
	return &Instrumented{next: next, backend: backend}
}

func (s *Instrumented) Read(ctx context.Context, key string) (string, bool, error) {
	start := time.Now()
	value, ok, err := s.next.Read(ctx, key)
	s.observe("read", start, err)
	return value, ok, err
}

func (s *Instrumented) Write(ctx context.Context, key, value string) error {
	start := time.Now()
	err := s.next.Write(ctx, key, value)
	s.observe("write", start, err)
	return err
}

func (s *Instrumented) Remove(ctx context.Context, key string) error {
	start := time.Now()
	err := s.next.Remove(ctx, key)
	s.observe("remove", start, err)
	return err
}

func (s *Instrumented) observe(op string, start time.Time, err error) {
	metrics.StoreOpDuration.WithLabelValues(op, s.backend).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.StoreOpErrorsTotal.WithLabelValues(op, s.backend).Inc()
	}
}
