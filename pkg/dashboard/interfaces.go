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

package dashboard

//go:generate mockgen -destination=mock_dashboard.go -package=dashboard github.com/carverauto/faultline/pkg/dashboard RootCauseReporter

import (
	"context"
	"time"

	"github.com/carverauto/faultline/pkg/models"
)

// MetricSource is the read surface the dashboard needs from the telemetry
// store. *telemetry.Store satisfies it.
type MetricSource interface {
	Types() []string
	GetMetrics(errorType string) (*models.ErrorMetric, bool)
	AllMetrics() map[string]*models.ErrorMetric
	OccurrencesIn(errorType string, rng models.TimeRange) []time.Time
}

// RootCauseReporter is the external service that groups structurally similar
// errors into clusters. The dashboard only consumes the query side and
// shapes the result; it performs no clustering itself.
type RootCauseReporter interface {
	Clusters(ctx context.Context) ([]models.RootCauseCluster, error)
}
