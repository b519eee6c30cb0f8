/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package telemetry maintains per-type rolling error aggregates. All
// operations are total: unknown types yield zero values, never errors.
package telemetry

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/carverauto/faultline/pkg/logger"
	"github.com/carverauto/faultline/pkg/models"
)

// Store owns one ErrorMetric per error type plus the per-type occurrence
// rings backing trend queries. A single RWMutex guards the map; contention
// is low and the critical sections are short. The alert engine's buffer is
// locked independently so alert evaluation never serializes behind metric
// updates.
type Store struct {
	mu          sync.RWMutex
	metrics     map[string]*models.ErrorMetric
	order       []string // insertion order, for stable ranking ties
	unresolved  map[string]time.Time
	occurrences map[string]*timeRing
	historySize int

	sink   AlertSink
	nowFn  func() time.Time
	logger logger.Logger
}

// StoreOption configures optional Store behavior.
type StoreOption func(*Store)

// WithClock injects a deterministic clock (used for tests).
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.nowFn = now
	}
}

// WithSink forwards every recorded event to an alert evaluator.
func WithSink(sink AlertSink) StoreOption {
	return func(s *Store) {
		s.sink = sink
	}
}

// New creates a Store with defaults applied from cfg.
func New(cfg models.TelemetryConfig, log logger.Logger, opts ...StoreOption) *Store {
	_ = cfg.Validate()

	s := &Store{
		metrics:     make(map[string]*models.ErrorMetric),
		unresolved:  make(map[string]time.Time),
		occurrences: make(map[string]*timeRing),
		historySize: cfg.TrendHistorySize,
		nowFn:       time.Now,
		logger:      log,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// RecordError ingests one error event: lazy metric creation, counter and
// dimension updates, the outstanding-resolution anchor, and the occurrence
// ring. The event is then handed to the alert sink outside the store lock.
// Malformed input degrades to absent dimensions; nothing here returns an
// error.
func (s *Store) RecordError(ctx context.Context, event *models.ErrorEvent) {
	if event == nil || event.Type == "" {
		return
	}

	ev := *event
	if ev.Timestamp.IsZero() {
		ev.Timestamp = s.nowFn()
	}

	s.mu.Lock()

	metric := s.getOrCreateLocked(ev.Type)

	metric.Count++

	if ev.Critical {
		metric.CriticalCount++
	} else {
		metric.NonCriticalCount++
	}

	if ev.UserID != "" {
		metric.AffectedUsers[ev.UserID] = true
	}

	if ev.UserSegment != "" {
		metric.SegmentImpact[ev.UserSegment]++
	}

	metric.ActionCounts[ev.ActionOrUnknown()]++

	if metric.FirstSeen.IsZero() {
		metric.FirstSeen = ev.Timestamp
	}

	metric.LastSeen = ev.Timestamp

	// The most recent unmatched occurrence anchors the next resolution.
	s.unresolved[ev.Type] = ev.Timestamp

	ring, ok := s.occurrences[ev.Type]
	if !ok {
		ring = newTimeRing(s.historySize)
		s.occurrences[ev.Type] = ring
	}

	ring.Add(ev.Timestamp)

	s.mu.Unlock()

	if s.sink != nil {
		s.sink.RegisterError(ctx, &ev)
	}
}

// ResolveError closes the outstanding occurrence window for a type,
// appending now minus the anchor to the metric's resolution times. A type
// with no metric or nothing outstanding is a no-op.
func (s *Store) ResolveError(errorType string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	metric, ok := s.metrics[errorType]
	if !ok {
		return
	}

	anchor, ok := s.unresolved[errorType]
	if !ok {
		return
	}

	metric.ResolutionTimes = append(metric.ResolutionTimes, s.nowFn().Sub(anchor))
	delete(s.unresolved, errorType)
}

// RecordFeedback counts one piece of user feedback against a type, creating
// the metric if the type has never raised an event.
func (s *Store) RecordFeedback(errorType string, helpful bool) {
	if errorType == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	metric := s.getOrCreateLocked(errorType)

	metric.FeedbackTotal++

	if helpful {
		metric.FeedbackHelpful++
	}
}

// GetMetrics returns a snapshot of the aggregate for a type.
func (s *Store) GetMetrics(errorType string) (*models.ErrorMetric, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	metric, ok := s.metrics[errorType]
	if !ok {
		return nil, false
	}

	return metric.Clone(), true
}

// GetErrorRate returns the type's cumulative count divided by the window in
// seconds, 0 for unknown types. The count is all-time, not windowed; callers
// needing an exact sliding count should use the dashboard trend query.
func (s *Store) GetErrorRate(errorType string, window time.Duration) float64 {
	if window <= 0 {
		return 0
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	metric, ok := s.metrics[errorType]
	if !ok {
		return 0
	}

	return float64(metric.Count) / window.Seconds()
}

// GetHighestImpactErrors ranks types by distinct affected users descending,
// ties broken by total count descending, then by first-seen order.
func (s *Store) GetHighestImpactErrors() []string {
	s.mu.RLock()

	ranked := make([]string, len(s.order))
	copy(ranked, s.order)

	users := make(map[string]int, len(ranked))
	counts := make(map[string]int, len(ranked))

	for _, t := range ranked {
		users[t] = s.metrics[t].DistinctUsers()
		counts[t] = s.metrics[t].Count
	}

	s.mu.RUnlock()

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if users[a] != users[b] {
			return users[a] > users[b]
		}

		return counts[a] > counts[b]
	})

	return ranked
}

// AllMetrics returns snapshots of every tracked aggregate keyed by type.
func (s *Store) AllMetrics() map[string]*models.ErrorMetric {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]*models.ErrorMetric, len(s.metrics))
	for t, m := range s.metrics {
		out[t] = m.Clone()
	}

	return out
}

// Types returns tracked error types in first-seen order.
func (s *Store) Types() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]string(nil), s.order...)
}

// OccurrencesIn returns the retained occurrence timestamps for a type that
// fall within the range, oldest-first. Exact within the configured history
// size; older occurrences have aged out of the ring.
func (s *Store) OccurrencesIn(errorType string, rng models.TimeRange) []time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ring, ok := s.occurrences[errorType]
	if !ok {
		return nil
	}

	all := ring.All()
	out := make([]time.Time, 0, len(all))

	for _, ts := range all {
		if rng.Contains(ts) {
			out = append(out, ts)
		}
	}

	return out
}

func (s *Store) getOrCreateLocked(errorType string) *models.ErrorMetric {
	metric, ok := s.metrics[errorType]
	if ok {
		return metric
	}

	metric = &models.ErrorMetric{
		Type:          errorType,
		AffectedUsers: make(map[string]bool),
		SegmentImpact: make(map[string]int),
		ActionCounts:  make(map[string]int),
	}

	s.metrics[errorType] = metric
	s.order = append(s.order, errorType)

	s.logger.Debug().Str("error_type", errorType).Msg("Tracking new error type")

	return metric
}
