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
	"sync"
	"time"

	"github.com/carverauto/faultline/pkg/models"
)

// EventBuffer is a fixed-capacity, overwrite-oldest ring of recent error
// events. Once full, new events silently overwrite the oldest; there is no
// eviction callback and no resize. The overwrite is lossy by design: under
// heavy error load the engine trades completeness of the rule-matching
// window for a hard memory ceiling.
//
// The buffer has its own lock, independent of the metric store's, so rule
// evaluation never serializes behind metric updates.
type EventBuffer struct {
	mu     sync.RWMutex
	events []models.ErrorEvent
	next   int
	full   bool
}

// NewEventBuffer creates a buffer holding at most capacity events.
func NewEventBuffer(capacity int) *EventBuffer {
	if capacity < 1 {
		capacity = models.DefaultEventBufferSize
	}

	return &EventBuffer{events: make([]models.ErrorEvent, capacity)}
}

// Add appends an event, overwriting the oldest entry when full.
func (b *EventBuffer) Add(event *models.ErrorEvent) {
	if event == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.events[b.next] = *event
	b.next++

	if b.next == len(b.events) {
		b.next = 0
		b.full = true
	}
}

// EventsSince returns buffered events with a timestamp at or after cutoff,
// oldest-first.
func (b *EventBuffer) EventsSince(cutoff time.Time) []models.ErrorEvent {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]models.ErrorEvent, 0, b.lenLocked())

	appendInWindow := func(events []models.ErrorEvent) {
		for i := range events {
			if !events[i].Timestamp.Before(cutoff) {
				out = append(out, events[i])
			}
		}
	}

	if b.full {
		appendInWindow(b.events[b.next:])
	}

	appendInWindow(b.events[:b.next])

	return out
}

// Len returns the number of retained events.
func (b *EventBuffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.lenLocked()
}

// Cap returns the fixed capacity.
func (b *EventBuffer) Cap() int {
	return len(b.events)
}

func (b *EventBuffer) lenLocked() int {
	if b.full {
		return len(b.events)
	}

	return b.next
}
