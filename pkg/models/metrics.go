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

// ErrorMetric is the rolling aggregate kept per distinct error type. One is
// created lazily on the first event of a type and mutated in place for the
// process lifetime; it is never deleted.
//
// Invariants: Count == CriticalCount + NonCriticalCount, and
// len(AffectedUsers) <= Count.
type ErrorMetric struct {
	Type             string          `json:"error_type"`
	Count            int             `json:"count"`
	CriticalCount    int             `json:"critical_count"`
	NonCriticalCount int             `json:"non_critical_count"`
	AffectedUsers    map[string]bool `json:"affected_users"`
	SegmentImpact    map[string]int  `json:"segment_impact"`
	ActionCounts     map[string]int  `json:"action_counts"`
	FirstSeen        time.Time       `json:"first_seen"`
	LastSeen         time.Time       `json:"last_seen"`
	ResolutionTimes  []time.Duration `json:"resolution_times"`
	FeedbackTotal    int             `json:"feedback_total"`
	FeedbackHelpful  int             `json:"feedback_helpful"`
}

// DistinctUsers returns the number of distinct user IDs seen for this type.
func (m *ErrorMetric) DistinctUsers() int {
	return len(m.AffectedUsers)
}

// Clone returns a deep copy so callers can hand out snapshots without
// exposing the maps mutated on the ingestion path.
func (m *ErrorMetric) Clone() *ErrorMetric {
	if m == nil {
		return nil
	}

	out := *m
	out.AffectedUsers = make(map[string]bool, len(m.AffectedUsers))

	for k, v := range m.AffectedUsers {
		out.AffectedUsers[k] = v
	}

	out.SegmentImpact = make(map[string]int, len(m.SegmentImpact))
	for k, v := range m.SegmentImpact {
		out.SegmentImpact[k] = v
	}

	out.ActionCounts = make(map[string]int, len(m.ActionCounts))
	for k, v := range m.ActionCounts {
		out.ActionCounts[k] = v
	}

	out.ResolutionTimes = append([]time.Duration(nil), m.ResolutionTimes...)

	return &out
}

// ErrorCount pairs an error type with its occurrence count for ranked views.
type ErrorCount struct {
	ErrorType string `json:"error_type"`
	Count     int    `json:"count"`
}

// TrendSeries is a bucketed occurrence series with a trailing moving average
// aligned one-to-one with Counts.
type TrendSeries struct {
	Counts        []int     `json:"counts"`
	MovingAverage []float64 `json:"moving_average"`
}

// UserImpact summarizes distinct users affected by errors within a range.
type UserImpact struct {
	TotalUsers int            `json:"total_users"`
	BySegment  map[string]int `json:"by_segment"`
}

// Dimension selects an axis for error distribution queries.
type Dimension string

const (
	DimensionAction    Dimension = "action"
	DimensionErrorType Dimension = "errorType"
	DimensionSegment   Dimension = "segment"
)

// RootCauseCluster is a group of structurally similar errors as judged by
// the external root-cause reporter.
type RootCauseCluster struct {
	ID            string `json:"id"`
	Count         int    `json:"count"`
	SampleMessage string `json:"sample_message"`
}
