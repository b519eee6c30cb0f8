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

package alerting

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/faultline/pkg/models"
)

func TestEventBufferOverwritesOldestAtCapacity(t *testing.T) {
	buf := NewEventBuffer(3)
	t0 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		buf.Add(&models.ErrorEvent{
			Type:      fmt.Sprintf("e%d", i),
			Timestamp: t0.Add(time.Duration(i) * time.Second),
		})
	}

	assert.Equal(t, 3, buf.Len())
	assert.Equal(t, 3, buf.Cap())

	events := buf.EventsSince(time.Time{})
	require.Len(t, events, 3)

	// Oldest-first, with e0 and e1 overwritten.
	assert.Equal(t, "e2", events[0].Type)
	assert.Equal(t, "e3", events[1].Type)
	assert.Equal(t, "e4", events[2].Type)
}

func TestEventBufferEventsSinceFiltersByTimestamp(t *testing.T) {
	buf := NewEventBuffer(10)
	t0 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		buf.Add(&models.ErrorEvent{
			Type:      fmt.Sprintf("e%d", i),
			Timestamp: t0.Add(time.Duration(i) * time.Minute),
		})
	}

	events := buf.EventsSince(t0.Add(3 * time.Minute))
	require.Len(t, events, 2)
	assert.Equal(t, "e3", events[0].Type)
	assert.Equal(t, "e4", events[1].Type)

	assert.Empty(t, buf.EventsSince(t0.Add(time.Hour)))
}

func TestEventBufferDefaultsCapacity(t *testing.T) {
	buf := NewEventBuffer(0)
	assert.Equal(t, models.DefaultEventBufferSize, buf.Cap())
}

func TestEventBufferIgnoresNil(t *testing.T) {
	buf := NewEventBuffer(4)
	buf.Add(nil)
	assert.Zero(t, buf.Len())
}
