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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurationUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{name: "string form", input: `"30s"`, want: 30 * time.Second},
		{name: "compound string", input: `"1h30m"`, want: 90 * time.Minute},
		{name: "numeric nanoseconds", input: `5000000000`, want: 5 * time.Second},
		{name: "garbage string", input: `"soon"`, wantErr: true},
		{name: "wrong type", input: `true`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration

			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, time.Duration(d))
		})
	}
}

func TestDurationMarshalJSON(t *testing.T) {
	out, err := json.Marshal(Duration(90 * time.Second))
	require.NoError(t, err)
	assert.Equal(t, `"1m30s"`, string(out))
}

func TestConfigValidateAppliesDefaults(t *testing.T) {
	var cfg Config

	require.NoError(t, cfg.Validate())

	assert.Equal(t, DefaultTrendHistorySize, cfg.Telemetry.TrendHistorySize)
	assert.Equal(t, DefaultEventBufferSize, cfg.Alerts.BufferSize)
	assert.Equal(t, 10*time.Second, time.Duration(cfg.Alerts.DispatchTimeout))
	assert.Equal(t, time.Second, time.Duration(cfg.Dashboard.BucketDuration))
	assert.Equal(t, 50, cfg.Dashboard.MaxClusters)
}

func TestConfigValidateRejectsBadRule(t *testing.T) {
	cfg := Config{
		Alerts: AlertsConfig{
			Rules: []*AlertRule{{Name: "broken"}},
		},
	}

	require.Error(t, cfg.Validate())
}
