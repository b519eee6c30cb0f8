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

package logger

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsBadLevel(t *testing.T) {
	_, err := New(context.Background(), &Config{Level: "loud"})
	require.Error(t, err)
}

func TestNewDefaultsWhenConfigNil(t *testing.T) {
	log, err := New(context.Background(), nil)
	require.NoError(t, err)
	require.NotNil(t, log)
}

func TestDebugFlagOverridesLevel(t *testing.T) {
	log, err := New(context.Background(), &Config{Level: "error", Debug: true})
	require.NoError(t, err)
	assert.True(t, log.Debug().Enabled())
}

func TestNewWithComponent(t *testing.T) {
	log, err := NewWithComponent(context.Background(), "telemetry", &Config{Level: "info"})
	require.NoError(t, err)
	require.NotNil(t, log)
}

func TestTestLoggerDiscardsEverything(t *testing.T) {
	log := NewTestLogger()

	assert.NotPanics(t, func() {
		log.Info().Str("k", "v").Msg("dropped")
		log.Error().Msg("also dropped")
	})

	assert.False(t, log.Info().Enabled())
}

func TestShutdownWithoutOTelBridge(t *testing.T) {
	log, err := New(context.Background(), &Config{Level: "info"})
	require.NoError(t, err)
	assert.NoError(t, Shutdown(context.Background(), log))
}

func TestOTelWriterRequiresConfig(t *testing.T) {
	_, err := NewOTELWriter(context.Background(), OTelConfig{})
	require.ErrorIs(t, err, ErrOTelLoggingDisabled)

	_, err = NewOTELWriter(context.Background(), OTelConfig{Enabled: true})
	require.ErrorIs(t, err, ErrOTelEndpointRequired)
}

func TestLoggerDurationUnmarshal(t *testing.T) {
	var cfg OTelConfig

	require.NoError(t, json.Unmarshal([]byte(`{"batch_timeout": "7s"}`), &cfg))
	assert.Equal(t, 7*time.Second, time.Duration(cfg.BatchTimeout))
}
