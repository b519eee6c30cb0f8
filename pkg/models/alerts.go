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
	"fmt"
	"strings"
	"time"
)

// Severity ranks how urgent a fired alert is.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Valid reports whether s is one of the known severity levels.
func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	default:
		return false
	}
}

// NotificationChannel identifies an outbound delivery path. The engine only
// enumerates channels; concrete transports live behind the notifier boundary.
type NotificationChannel string

const (
	ChannelEmail   NotificationChannel = "email"
	ChannelSMS     NotificationChannel = "sms"
	ChannelWebhook NotificationChannel = "webhook"
)

// Valid reports whether c is one of the known channels.
func (c NotificationChannel) Valid() bool {
	switch c {
	case ChannelEmail, ChannelSMS, ChannelWebhook:
		return true
	default:
		return false
	}
}

var (
	errRuleNameRequired     = fmt.Errorf("alert rule name is required")
	errRulePatternsRequired = fmt.Errorf("alert rule needs at least one error pattern")
	errRuleThresholdTooLow  = fmt.Errorf("alert rule threshold must be at least 1")
	errRuleWindowRequired   = fmt.Errorf("alert rule time window must be positive")
	errRuleBadSeverity      = fmt.Errorf("alert rule severity is not a known level")
	errRuleBadChannel       = fmt.Errorf("alert rule references an unknown channel")
)

// AlertRule configures one threshold alert: fire when at least Threshold
// buffered events matching any of ErrorPatterns arrived within TimeWindow,
// then stay silent for Cooldown.
//
// Rules are immutable after registration except LastTriggered, which the
// engine owns.
type AlertRule struct {
	ID            string                `json:"id,omitempty"`
	Name          string                `json:"name"`
	ErrorPatterns []string              `json:"error_patterns"`
	Threshold     int                   `json:"threshold"`
	TimeWindow    Duration              `json:"time_window"`
	Cooldown      Duration              `json:"cooldown"`
	Severity      Severity              `json:"severity"`
	Channels      []NotificationChannel `json:"channels"`
	LastTriggered time.Time             `json:"last_triggered,omitempty"`
}

// Validate checks the rule and fills defaults: medium severity and the
// webhook channel when unset.
func (r *AlertRule) Validate() error {
	if r.Name == "" {
		return errRuleNameRequired
	}

	if len(r.ErrorPatterns) == 0 {
		return errRulePatternsRequired
	}

	if r.Threshold < 1 {
		return errRuleThresholdTooLow
	}

	if r.TimeWindow <= 0 {
		return errRuleWindowRequired
	}

	if r.Severity == "" {
		r.Severity = SeverityMedium
	}

	if !r.Severity.Valid() {
		return fmt.Errorf("%w: %q", errRuleBadSeverity, r.Severity)
	}

	if len(r.Channels) == 0 {
		r.Channels = []NotificationChannel{ChannelWebhook}
	}

	for _, ch := range r.Channels {
		if !ch.Valid() {
			return fmt.Errorf("%w: %q", errRuleBadChannel, ch)
		}
	}

	return nil
}

// Alert is the dispatch-ready payload handed to the notifier, one per
// rule trigger per channel.
type Alert struct {
	ID        string              `json:"id"`
	RuleID    string              `json:"rule_id"`
	Severity  Severity            `json:"severity"`
	Subject   string              `json:"subject"`
	Message   string              `json:"message"`
	Channel   NotificationChannel `json:"channel"`
	Timestamp time.Time           `json:"timestamp"`
	Details   map[string]any      `json:"details,omitempty"`
}

// AlertSubject renders the conventional "[SEVERITY] rule name" subject line.
func AlertSubject(severity Severity, ruleName string) string {
	return fmt.Sprintf("[%s] %s", strings.ToUpper(string(severity)), ruleName)
}
