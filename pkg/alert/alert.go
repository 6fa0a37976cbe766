// Package alert delivers new-pick notifications to chat webhooks.
package alert

import (
	"context"
	"errors"
	"fmt"
)

// Notification describes a freshly ingested pick worth announcing.
type Notification struct {
	Capper      string  `json:"capper"`
	Platform    string  `json:"platform"`
	PickText    string  `json:"pick_text"`
	Sport       string  `json:"sport"`
	Odds        int     `json:"odds"`
	RiskUnits   float64 `json:"risk_units"`
	Wins        int     `json:"wins"`
	Losses      int     `json:"losses"`
	Credibility string  `json:"credibility"`
	SourceURL   string  `json:"source_url"`
}

// Record formats the capper's stated record, or "" when none was found.
func (n *Notification) Record() string {
	if n.Wins == 0 && n.Losses == 0 {
		return ""
	}
	return fmt.Sprintf("%d-%d", n.Wins, n.Losses)
}

// Notifier delivers notifications to one destination.
type Notifier interface {
	Name() string
	Send(ctx context.Context, n *Notification) error
}

// Manager broadcasts notifications to all registered notifiers.
type Manager struct {
	notifiers []Notifier
}

// NewManager creates a new alert manager.
func NewManager(notifiers []Notifier) *Manager {
	return &Manager{notifiers: notifiers}
}

// HasNotifiers returns true if at least one notifier is configured.
func (m *Manager) HasNotifiers() bool {
	return len(m.notifiers) > 0
}

// Broadcast sends a notification to all registered notifiers.
func (m *Manager) Broadcast(ctx context.Context, n *Notification) error {
	var errs []error
	for _, notifier := range m.notifiers {
		if err := notifier.Send(ctx, n); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", notifier.Name(), err))
		}
	}
	return errors.Join(errs...)
}
