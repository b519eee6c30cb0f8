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

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/faultline/pkg/models"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "faultline.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	return path
}

func TestLoadAndValidate(t *testing.T) {
	path := writeConfigFile(t, `{
		"telemetry": {"trend_history_size": 128},
		"alerts": {
			"buffer_size": 50,
			"dispatch_timeout": "2s",
			"rules": [
				{
					"name": "payment failures",
					"error_patterns": ["payment"],
					"threshold": 3,
					"time_window": "60s",
					"cooldown": "500ms",
					"severity": "high",
					"channels": ["email", "webhook"]
				}
			]
		},
		"dashboard": {"bucket_duration": "5s"}
	}`)

	var cfg models.Config

	require.NoError(t, NewConfig(nil).LoadAndValidate(context.Background(), path, &cfg))

	assert.Equal(t, 128, cfg.Telemetry.TrendHistorySize)
	assert.Equal(t, 50, cfg.Alerts.BufferSize)
	assert.Equal(t, 2*time.Second, time.Duration(cfg.Alerts.DispatchTimeout))
	assert.Equal(t, 5*time.Second, time.Duration(cfg.Dashboard.BucketDuration))

	require.Len(t, cfg.Alerts.Rules, 1)
	rule := cfg.Alerts.Rules[0]
	assert.Equal(t, "payment failures", rule.Name)
	assert.Equal(t, 3, rule.Threshold)
	assert.Equal(t, 60*time.Second, time.Duration(rule.TimeWindow))
	assert.Equal(t, models.SeverityHigh, rule.Severity)
}

func TestLoadAndValidateAppliesDefaults(t *testing.T) {
	path := writeConfigFile(t, `{}`)

	var cfg models.Config

	require.NoError(t, NewConfig(nil).LoadAndValidate(context.Background(), path, &cfg))
	assert.Equal(t, models.DefaultEventBufferSize, cfg.Alerts.BufferSize)
	assert.Equal(t, models.DefaultTrendHistorySize, cfg.Telemetry.TrendHistorySize)
}

func TestLoadAndValidateMissingFile(t *testing.T) {
	var cfg models.Config

	err := NewConfig(nil).LoadAndValidate(context.Background(), "/nonexistent/faultline.json", &cfg)
	require.Error(t, err)
}

func TestLoadAndValidateMalformedJSON(t *testing.T) {
	path := writeConfigFile(t, `{"alerts": `)

	var cfg models.Config

	err := NewConfig(nil).LoadAndValidate(context.Background(), path, &cfg)
	require.Error(t, err)
}

func TestLoadAndValidateInvalidRule(t *testing.T) {
	path := writeConfigFile(t, `{
		"alerts": {"rules": [{"name": "no patterns", "threshold": 1, "time_window": "10s"}]}
	}`)

	var cfg models.Config

	err := NewConfig(nil).LoadAndValidate(context.Background(), path, &cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}
