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
	"encoding/json"
	"fmt"
	"time"

	"github.com/carverauto/faultline/pkg/logger"
)

var errInvalidDuration = fmt.Errorf("invalid duration")

// Duration wraps time.Duration so JSON configs can carry either a numeric
// nanosecond value or a human-readable string like "30s".
type Duration time.Duration

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		// numeric values are nanoseconds
		*d = Duration(time.Duration(value))
		return nil
	case string:
		dur, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%w: %w", errInvalidDuration, err)
		}

		*d = Duration(dur)

		return nil
	default:
		return errInvalidDuration
	}
}

const (
	// DefaultTrendHistorySize bounds the per-type occurrence ring used by
	// trend queries.
	DefaultTrendHistorySize = 4096

	// DefaultEventBufferSize bounds the alert engine's circular event buffer.
	DefaultEventBufferSize = 1000

	defaultDispatchTimeout = 10 * time.Second
	defaultBucketDuration  = time.Second
	defaultMaxClusters     = 50
)

// TelemetryConfig tunes the metrics store.
type TelemetryConfig struct {
	// TrendHistorySize is the per-type occurrence ring capacity. Trend
	// queries are exact only within this retention.
	TrendHistorySize int `json:"trend_history_size"`
}

func (c *TelemetryConfig) Validate() error {
	if c.TrendHistorySize <= 0 {
		c.TrendHistorySize = DefaultTrendHistorySize
	}

	return nil
}

// AlertsConfig tunes the alert engine and carries statically configured rules.
type AlertsConfig struct {
	BufferSize      int          `json:"buffer_size"`
	DispatchTimeout Duration     `json:"dispatch_timeout"`
	Rules           []*AlertRule `json:"rules,omitempty"`
}

func (c *AlertsConfig) Validate() error {
	if c.BufferSize <= 0 {
		c.BufferSize = DefaultEventBufferSize
	}

	if c.DispatchTimeout <= 0 {
		c.DispatchTimeout = Duration(defaultDispatchTimeout)
	}

	for i, rule := range c.Rules {
		if err := rule.Validate(); err != nil {
			return fmt.Errorf("rule %d: %w", i, err)
		}
	}

	return nil
}

// DashboardConfig tunes the read-only query layer.
type DashboardConfig struct {
	// BucketDuration is the default trend bucket width.
	BucketDuration Duration `json:"bucket_duration"`

	// MovingAverageWindow is the default trailing window in buckets.
	// Zero means the whole series.
	MovingAverageWindow int `json:"moving_average_window"`

	// MaxClusters caps how many root-cause clusters a query returns.
	MaxClusters int `json:"max_clusters"`
}

func (c *DashboardConfig) Validate() error {
	if c.BucketDuration <= 0 {
		c.BucketDuration = Duration(defaultBucketDuration)
	}

	if c.MovingAverageWindow < 0 {
		c.MovingAverageWindow = 0
	}

	if c.MaxClusters <= 0 {
		c.MaxClusters = defaultMaxClusters
	}

	return nil
}

// Config is the top-level engine configuration.
type Config struct {
	Logging   *logger.Config  `json:"logging,omitempty"`
	Telemetry TelemetryConfig `json:"telemetry"`
	Alerts    AlertsConfig    `json:"alerts"`
	Dashboard DashboardConfig `json:"dashboard"`
}

func (c *Config) Validate() error {
	if err := c.Telemetry.Validate(); err != nil {
		return err
	}

	if err := c.Alerts.Validate(); err != nil {
		return err
	}

	return c.Dashboard.Validate()
}
