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

//go:generate mockgen -destination=mock_alerting.go -package=alerting github.com/carverauto/faultline/pkg/alerting AlertNotifier

import (
	"context"

	"github.com/carverauto/faultline/pkg/models"
)

// AlertNotifier delivers one dispatch-ready alert on one channel. Concrete
// transports (mail, SMS, webhooks) implement this outside the engine. The
// engine treats delivery as best-effort: a returned error is logged and the
// alert is dropped, never retried.
type AlertNotifier interface {
	Notify(ctx context.Context, alert *models.Alert) error
}
