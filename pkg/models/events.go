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

package models

import "time"

// UnknownAction is the bucket used for events recorded without an action.
const UnknownAction = "unknown"

// ErrorEvent is the unit of ingestion: one application error occurrence.
// Events are immutable once recorded; optional dimensions may be empty.
type ErrorEvent struct {
	Type        string    `json:"error_type"`
	Message     string    `json:"message"`
	Timestamp   time.Time `json:"timestamp"`
	UserID      string    `json:"user_id,omitempty"`
	UserSegment string    `json:"user_segment,omitempty"`
	Action      string    `json:"action,omitempty"`
	Critical    bool      `json:"critical,omitempty"`
}

// ActionOrUnknown returns the event action, falling back to the implicit
// "unknown" bucket for events recorded without one.
func (e *ErrorEvent) ActionOrUnknown() string {
	if e.Action == "" {
		return UnknownAction
	}

	return e.Action
}

// TimeRange bounds a dashboard query. Callers own the clock; the engine
// never fabricates range endpoints.
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls within the range, inclusive on both ends.
func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Overlaps reports whether the [from, to] interval intersects the range.
func (r TimeRange) Overlaps(from, to time.Time) bool {
	return !to.Before(r.Start) && !from.After(r.End)
}

// Duration returns the span of the range, zero for inverted ranges.
func (r TimeRange) Duration() time.Duration {
	if r.End.Before(r.Start) {
		return 0
	}

	return r.End.Sub(r.Start)
}
