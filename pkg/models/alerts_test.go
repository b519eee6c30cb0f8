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

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRule() *AlertRule {
	return &AlertRule{
		Name:          "payment failures",
		ErrorPatterns: []string{"payment"},
		Threshold:     2,
		TimeWindow:    Duration(time.Minute),
		Cooldown:      Duration(30 * time.Second),
		Severity:      SeverityHigh,
		Channels:      []NotificationChannel{ChannelEmail},
	}
}

func TestAlertRuleValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*AlertRule)
		wantErr bool
	}{
		{name: "valid rule", mutate: func(*AlertRule) {}},
		{name: "missing name", mutate: func(r *AlertRule) { r.Name = "" }, wantErr: true},
		{name: "no patterns", mutate: func(r *AlertRule) { r.ErrorPatterns = nil }, wantErr: true},
		{name: "zero threshold", mutate: func(r *AlertRule) { r.Threshold = 0 }, wantErr: true},
		{name: "no window", mutate: func(r *AlertRule) { r.TimeWindow = 0 }, wantErr: true},
		{name: "bad severity", mutate: func(r *AlertRule) { r.Severity = "shrug" }, wantErr: true},
		{name: "bad channel", mutate: func(r *AlertRule) { r.Channels = []NotificationChannel{"pigeon"} }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := validRule()
			tt.mutate(rule)

			err := rule.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAlertRuleValidateFillsDefaults(t *testing.T) {
	rule := validRule()
	rule.Severity = ""
	rule.Channels = nil

	require.NoError(t, rule.Validate())
	assert.Equal(t, SeverityMedium, rule.Severity)
	assert.Equal(t, []NotificationChannel{ChannelWebhook}, rule.Channels)
}

func TestAlertSubject(t *testing.T) {
	assert.Equal(t, "[CRITICAL] db down", AlertSubject(SeverityCritical, "db down"))
}

func TestTimeRange(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	rng := TimeRange{Start: t0, End: t0.Add(time.Hour)}

	assert.True(t, rng.Contains(t0))
	assert.True(t, rng.Contains(t0.Add(time.Hour)))
	assert.False(t, rng.Contains(t0.Add(2*time.Hour)))
	assert.False(t, rng.Contains(t0.Add(-time.Nanosecond)))

	assert.Equal(t, time.Hour, rng.Duration())
	assert.Zero(t, TimeRange{Start: t0, End: t0.Add(-time.Hour)}.Duration())

	assert.True(t, rng.Overlaps(t0.Add(-time.Hour), t0))
	assert.False(t, rng.Overlaps(t0.Add(-time.Hour), t0.Add(-time.Minute)))
}

func TestErrorMetricClone(t *testing.T) {
	metric := &ErrorMetric{
		Type:          "A",
		Count:         2,
		AffectedUsers: map[string]bool{"u1": true},
		SegmentImpact: map[string]int{"pro": 2},
		ActionCounts:  map[string]int{"save": 2},
	}

	clone := metric.Clone()
	clone.AffectedUsers["u2"] = true
	clone.SegmentImpact["free"] = 1

	assert.NotContains(t, metric.AffectedUsers, "u2")
	assert.NotContains(t, metric.SegmentImpact, "free")
}
