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

// Package dashboard is the read-only analytical layer over the telemetry
// store. Every query is total: unknown types, empty ranges, and unknown
// dimensions yield zero-valued results, never errors. The only fallible
// query is root-cause clustering, which reaches outside the process.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/carverauto/faultline/pkg/logger"
	"github.com/carverauto/faultline/pkg/models"
)

// ErrNoRootCauseReporter is returned by RootCauseClusters when the service
// was built without an external reporter.
var ErrNoRootCauseReporter = errors.New("no root-cause reporter configured")

// Service answers dashboard queries from metric-store snapshots. Queries
// never touch the alert engine's buffer.
type Service struct {
	source   MetricSource
	reporter RootCauseReporter
	config   models.DashboardConfig
	logger   logger.Logger
}

// New creates a Service. The reporter may be nil; only the root-cause query
// requires it.
func New(cfg models.DashboardConfig, source MetricSource, reporter RootCauseReporter, log logger.Logger) *Service {
	_ = cfg.Validate()

	return &Service{
		source:   source,
		reporter: reporter,
		config:   cfg,
		logger:   log,
	}
}

// TopErrors ranks error types by total count descending, truncated to limit.
// Ties keep first-seen order. Types whose firstSeen..lastSeen span does not
// overlap the range are dropped; counts themselves are cumulative since the
// store keeps aggregates, not a per-event log.
func (s *Service) TopErrors(rng models.TimeRange, limit int) []models.ErrorCount {
	var out []models.ErrorCount

	for _, errorType := range s.source.Types() {
		metric, ok := s.source.GetMetrics(errorType)
		if !ok {
			continue
		}

		if !rng.Overlaps(metric.FirstSeen, metric.LastSeen) {
			continue
		}

		out = append(out, models.ErrorCount{ErrorType: errorType, Count: metric.Count})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out
}

// ErrorTrends buckets the type's occurrences within the range and computes a
// trailing moving average aligned one-to-one with the counts. A non-positive
// bucket falls back to the configured default; a non-positive maWindow
// covers the whole series. Unknown types yield two empty sequences.
func (s *Service) ErrorTrends(errorType string, rng models.TimeRange, bucket time.Duration, maWindow int) models.TrendSeries {
	empty := models.TrendSeries{Counts: []int{}, MovingAverage: []float64{}}

	if _, ok := s.source.GetMetrics(errorType); !ok {
		return empty
	}

	if rng.End.Before(rng.Start) {
		return empty
	}

	if bucket <= 0 {
		bucket = time.Duration(s.config.BucketDuration)
	}

	if maWindow <= 0 {
		maWindow = s.config.MovingAverageWindow
	}

	span := rng.Duration()

	buckets := int(span / bucket)
	if span%bucket != 0 || buckets == 0 {
		buckets++
	}

	counts := make([]int, buckets)

	for _, ts := range s.source.OccurrencesIn(errorType, rng) {
		idx := int(ts.Sub(rng.Start) / bucket)
		if idx >= buckets {
			idx = buckets - 1
		}

		counts[idx]++
	}

	return models.TrendSeries{
		Counts:        counts,
		MovingAverage: movingAverage(counts, maWindow),
	}
}

// movingAverage computes the trailing mean over a window of w buckets; w < 1
// means the whole series up to each point.
func movingAverage(counts []int, w int) []float64 {
	out := make([]float64, len(counts))

	sum := 0

	for i, c := range counts {
		sum += c

		if w > 0 && i >= w {
			sum -= counts[i-w]
		}

		n := i + 1
		if w > 0 && w < n {
			n = w
		}

		out[i] = float64(sum) / float64(n)
	}

	return out
}

// UserImpact reports distinct users affected across all types whose
// firstSeen..lastSeen span overlaps the range, with per-segment counts. The
// user set is cumulative per type; range filtering is approximate at type
// granularity.
func (s *Service) UserImpact(rng models.TimeRange) models.UserImpact {
	users := make(map[string]bool)
	bySegment := make(map[string]int)

	for _, metric := range s.source.AllMetrics() {
		if !rng.Overlaps(metric.FirstSeen, metric.LastSeen) {
			continue
		}

		for user := range metric.AffectedUsers {
			users[user] = true
		}

		for segment, count := range metric.SegmentImpact {
			bySegment[segment] += count
		}
	}

	return models.UserImpact{TotalUsers: len(users), BySegment: bySegment}
}

// ErrorDistribution returns per-dimension breakdowns merged across the
// selected types, or across every type when no filter is given. Unknown
// dimensions map to an empty bucket map.
func (s *Service) ErrorDistribution(dimensions []models.Dimension, rng models.TimeRange, errorTypes ...string) map[models.Dimension]map[string]int {
	out := make(map[models.Dimension]map[string]int, len(dimensions))
	if len(dimensions) == 0 {
		return out
	}

	selected := s.selectMetrics(rng, errorTypes)

	for _, dim := range dimensions {
		buckets := make(map[string]int)

		switch dim {
		case models.DimensionAction:
			for _, metric := range selected {
				for action, count := range metric.ActionCounts {
					buckets[action] += count
				}
			}
		case models.DimensionErrorType:
			for _, metric := range selected {
				buckets[metric.Type] += metric.Count
			}
		case models.DimensionSegment:
			for _, metric := range selected {
				for segment, count := range metric.SegmentImpact {
					buckets[segment] += count
				}
			}
		default:
			// Unknown dimensions stay empty rather than erroring.
		}

		out[dim] = buckets
	}

	return out
}

// AverageResolutionTime returns the mean recorded resolution time for a
// type, 0 when none have been recorded.
func (s *Service) AverageResolutionTime(errorType string) time.Duration {
	metric, ok := s.source.GetMetrics(errorType)
	if !ok || len(metric.ResolutionTimes) == 0 {
		return 0
	}

	var total time.Duration
	for _, d := range metric.ResolutionTimes {
		total += d
	}

	return total / time.Duration(len(metric.ResolutionTimes))
}

// RootCauseClusters fetches clusters from the external reporter, orders them
// by occurrence count, and truncates to limit (capped by configuration).
// The caller owns the timeout through ctx; a reporter failure affects this
// query alone.
func (s *Service) RootCauseClusters(ctx context.Context, limit int) ([]models.RootCauseCluster, error) {
	if s.reporter == nil {
		return nil, ErrNoRootCauseReporter
	}

	clusters, err := s.reporter.Clusters(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Root-cause reporter query failed")
		return nil, fmt.Errorf("root-cause reporter: %w", err)
	}

	sort.SliceStable(clusters, func(i, j int) bool {
		return clusters[i].Count > clusters[j].Count
	})

	if limit <= 0 || limit > s.config.MaxClusters {
		limit = s.config.MaxClusters
	}

	if len(clusters) > limit {
		clusters = clusters[:limit]
	}

	return clusters, nil
}

func (s *Service) selectMetrics(rng models.TimeRange, errorTypes []string) []*models.ErrorMetric {
	var out []*models.ErrorMetric

	if len(errorTypes) > 0 {
		for _, errorType := range errorTypes {
			metric, ok := s.source.GetMetrics(errorType)
			if !ok || !rng.Overlaps(metric.FirstSeen, metric.LastSeen) {
				continue
			}

			out = append(out, metric)
		}

		return out
	}

	for _, errorType := range s.source.Types() {
		metric, ok := s.source.GetMetrics(errorType)
		if !ok || !rng.Overlaps(metric.FirstSeen, metric.LastSeen) {
			continue
		}

		out = append(out, metric)
	}

	return out
}
