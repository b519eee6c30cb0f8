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

// faultline replays JSON-lines error events from stdin through the telemetry
// engine and reports a dashboard summary. Alerts fire through a log-backed
// notifier; production deployments supply real transports behind the
// AlertNotifier interface.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	stdlog "log"
	"os"
	"time"

	"github.com/carverauto/faultline/pkg/alerting"
	"github.com/carverauto/faultline/pkg/config"
	"github.com/carverauto/faultline/pkg/dashboard"
	"github.com/carverauto/faultline/pkg/logger"
	"github.com/carverauto/faultline/pkg/models"
	"github.com/carverauto/faultline/pkg/telemetry"
)

var errFailedToLoadConfig = fmt.Errorf("failed to load config")

const topErrorsLimit = 10

func main() {
	if err := run(); err != nil {
		stdlog.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	configPath := flag.String("config", "/etc/faultline/faultline.json", "Path to faultline config file")
	flag.Parse()

	ctx := context.Background()

	cfgLoader := config.NewConfig(nil)

	var cfg models.Config

	if err := cfgLoader.LoadAndValidate(ctx, *configPath, &cfg); err != nil {
		return fmt.Errorf("%w: %w", errFailedToLoadConfig, err)
	}

	logConfig := cfg.Logging
	if logConfig == nil {
		logConfig = &logger.Config{Level: "info", Output: "stdout"}
	}

	log, err := logger.NewWithComponent(ctx, "faultline", logConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = logger.Shutdown(shutdownCtx, log)
	}()

	engine := alerting.NewEngine(cfg.Alerts, &logNotifier{logger: log}, log)
	store := telemetry.New(cfg.Telemetry, log, telemetry.WithSink(engine))
	dash := dashboard.New(cfg.Dashboard, store, nil, log)

	start := time.Now()
	ingested := 0

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var event models.ErrorEvent
		if err := json.Unmarshal(line, &event); err != nil {
			log.Warn().Err(err).Msg("Skipping malformed event")
			continue
		}

		store.RecordError(ctx, &event)

		ingested++
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read events: %w", err)
	}

	engine.Drain()

	rng := models.TimeRange{Start: start, End: time.Now()}
	impact := dash.UserImpact(rng)

	log.Info().
		Int("events", ingested).
		Int("distinct_users", impact.TotalUsers).
		Msg("Replay complete")

	for _, top := range dash.TopErrors(rng, topErrorsLimit) {
		log.Info().
			Str("error_type", top.ErrorType).
			Int("count", top.Count).
			Msg("Top error")
	}

	return nil
}

// logNotifier is the in-process AlertNotifier used by the replay binary:
// alerts land in the structured log instead of an outbound transport.
type logNotifier struct {
	logger logger.Logger
}

func (n *logNotifier) Notify(_ context.Context, alert *models.Alert) error {
	n.logger.Warn().
		Str("alert_id", alert.ID).
		Str("severity", string(alert.Severity)).
		Str("channel", string(alert.Channel)).
		Str("subject", alert.Subject).
		Msg(alert.Message)

	return nil
}
