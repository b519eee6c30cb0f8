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

// Package alerting buffers recent error events and fires alerts when a
// rule's matched event count within its time window reaches its threshold,
// subject to a per-rule cooldown.
package alerting

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/carverauto/faultline/pkg/logger"
	"github.com/carverauto/faultline/pkg/models"
)

// Engine evaluates alert rules eagerly on every ingested event rather than
// on a timer: a small constant cost per event buys zero alerting latency.
type Engine struct {
	buffer          *EventBuffer
	notifier        AlertNotifier
	logger          logger.Logger
	nowFn           func() time.Time
	dispatchTimeout time.Duration

	mu    sync.Mutex // guards rules and their LastTriggered check-then-set
	rules []*models.AlertRule

	dispatches sync.WaitGroup
}

// Option configures optional Engine behavior.
type Option func(*Engine)

// WithClock injects a deterministic clock (used for tests).
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.nowFn = now
	}
}

// NewEngine creates an Engine with cfg defaults applied and any statically
// configured rules registered. Rules that fail validation are skipped with a
// warning; a bad rule in config must not take alerting down.
func NewEngine(cfg models.AlertsConfig, notifier AlertNotifier, log logger.Logger, opts ...Option) *Engine {
	_ = cfg.Validate()

	e := &Engine{
		buffer:          NewEventBuffer(cfg.BufferSize),
		notifier:        notifier,
		logger:          log,
		nowFn:           time.Now,
		dispatchTimeout: time.Duration(cfg.DispatchTimeout),
	}

	for _, opt := range opts {
		opt(e)
	}

	for _, rule := range cfg.Rules {
		if err := e.AddRule(rule); err != nil {
			e.logger.Warn().Err(err).Str("rule_name", rule.Name).Msg("Skipping invalid alert rule")
		}
	}

	return e
}

// AddRule registers a rule, assigning a generated ID when absent. Identical
// rules are not de-duplicated; callers own idempotent registration.
func (e *Engine) AddRule(rule *models.AlertRule) error {
	if err := rule.Validate(); err != nil {
		return fmt.Errorf("invalid alert rule: %w", err)
	}

	if rule.ID == "" {
		rule.ID = uuid.NewString()
	}

	e.mu.Lock()
	e.rules = append(e.rules, rule)
	e.mu.Unlock()

	e.logger.Info().
		Str("rule_id", rule.ID).
		Str("rule_name", rule.Name).
		Int("threshold", rule.Threshold).
		Msg("Registered alert rule")

	return nil
}

// Rules returns a snapshot of the configured rules.
func (e *Engine) Rules() []models.AlertRule {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]models.AlertRule, 0, len(e.rules))
	for _, rule := range e.rules {
		out = append(out, *rule)
	}

	return out
}

// RegisterError appends the event to the circular buffer and evaluates every
// configured rule against the buffered window. Notifier dispatch happens on
// a background goroutine, so ingestion latency is independent of notifier
// latency.
func (e *Engine) RegisterError(ctx context.Context, event *models.ErrorEvent) {
	if event == nil {
		return
	}

	ev := *event
	if ev.Timestamp.IsZero() {
		ev.Timestamp = e.nowFn()
	}

	e.buffer.Add(&ev)
	e.evaluateRules()
}

// Buffer exposes the event buffer for inspection.
func (e *Engine) Buffer() *EventBuffer {
	return e.buffer
}

// Drain blocks until all in-flight notification dispatches complete.
func (e *Engine) Drain() {
	e.dispatches.Wait()
}

type firing struct {
	rule    models.AlertRule
	matched int
	at      time.Time
}

func (e *Engine) evaluateRules() {
	now := e.nowFn()

	var fired []firing

	// Lock order is engine.mu then buffer.mu, never reversed. The
	// check-then-set on LastTriggered stays under the engine lock so two
	// goroutines crossing a threshold simultaneously cannot both fire
	// within one cooldown.
	e.mu.Lock()

	for _, rule := range e.rules {
		if !rule.LastTriggered.IsZero() && now.Sub(rule.LastTriggered) < time.Duration(rule.Cooldown) {
			continue
		}

		matched := e.countMatches(rule, now)
		if matched < rule.Threshold {
			continue
		}

		rule.LastTriggered = now
		fired = append(fired, firing{rule: *rule, matched: matched, at: now})
	}

	e.mu.Unlock()

	for i := range fired {
		e.dispatch(&fired[i])
	}
}

func (e *Engine) countMatches(rule *models.AlertRule, now time.Time) int {
	events := e.buffer.EventsSince(now.Add(-time.Duration(rule.TimeWindow)))

	matched := 0

	for i := range events {
		if eventMatches(&events[i], rule.ErrorPatterns) {
			matched++
		}
	}

	return matched
}

// eventMatches reports whether the event's type or message contains any of
// the rule's patterns as a substring.
func eventMatches(event *models.ErrorEvent, patterns []string) bool {
	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}

		if strings.Contains(event.Type, pattern) || strings.Contains(event.Message, pattern) {
			return true
		}
	}

	return false
}

func (e *Engine) dispatch(f *firing) {
	e.dispatches.Add(1)

	go func() {
		defer e.dispatches.Done()

		// Deliberately detached from the ingestion context: alerting is
		// advisory and must not inherit request cancellation.
		ctx, cancel := context.WithTimeout(context.Background(), e.dispatchTimeout)
		defer cancel()

		for _, channel := range f.rule.Channels {
			alert := &models.Alert{
				ID:        uuid.NewString(),
				RuleID:    f.rule.ID,
				Severity:  f.rule.Severity,
				Subject:   models.AlertSubject(f.rule.Severity, f.rule.Name),
				Message:   fmt.Sprintf("%s triggered with %d errors", f.rule.Name, f.matched),
				Channel:   channel,
				Timestamp: f.at,
				Details: map[string]any{
					"matched_events": f.matched,
					"threshold":      f.rule.Threshold,
					"time_window":    time.Duration(f.rule.TimeWindow).String(),
				},
			}

			// Per-channel isolation: one failed channel never blocks the
			// rest, and a failed notification is logged and dropped.
			if err := e.notifier.Notify(ctx, alert); err != nil {
				e.logger.Warn().
					Err(err).
					Str("rule_id", f.rule.ID).
					Str("rule_name", f.rule.Name).
					Str("channel", string(channel)).
					Msg("Failed to dispatch alert")

				continue
			}

			e.logger.Info().
				Str("rule_id", f.rule.ID).
				Str("rule_name", f.rule.Name).
				Str("channel", string(channel)).
				Str("severity", string(f.rule.Severity)).
				Msg("Dispatched alert")
		}
	}()
}
