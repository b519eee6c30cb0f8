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

//go:generate mockgen -destination=mock_telemetry.go -package=telemetry github.com/carverauto/faultline/pkg/telemetry AlertSink

import (
	"context"

	"github.com/carverauto/faultline/pkg/models"
)

// AlertSink receives every ingested event for alert evaluation. Ingestion
// and alerting are coupled at RecordError only, so no event can update
// metrics without being considered for alerting.
type AlertSink interface {
	RegisterError(ctx context.Context, event *models.ErrorEvent)
}
