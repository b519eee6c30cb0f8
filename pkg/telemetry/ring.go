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

package telemetry

import "time"

// timeRing is a fixed-capacity, overwrite-oldest ring of occurrence
// timestamps. It keeps range queries over a type's recent occurrences exact
// while holding memory to capacity. Not safe for concurrent use; the store
// lock guards it.
type timeRing struct {
	buf  []time.Time
	next int
	full bool
}

func newTimeRing(capacity int) *timeRing {
	if capacity < 1 {
		capacity = 1
	}

	return &timeRing{buf: make([]time.Time, capacity)}
}

func (r *timeRing) Add(t time.Time) {
	r.buf[r.next] = t
	r.next++

	if r.next == len(r.buf) {
		r.next = 0
		r.full = true
	}
}

// All returns retained timestamps oldest-first.
func (r *timeRing) All() []time.Time {
	if !r.full {
		return append([]time.Time(nil), r.buf[:r.next]...)
	}

	out := make([]time.Time, 0, len(r.buf))
	out = append(out, r.buf[r.next:]...)
	out = append(out, r.buf[:r.next]...)

	return out
}

func (r *timeRing) Len() int {
	if r.full {
		return len(r.buf)
	}

	return r.next
}
