// Package ui provides transient status notifications for the terminal interface.
package ui

import (
	"strings"
	"time"

	"github.com/archiver-cli/archiver/style"
)

// DefaultLifetime is how long a notification stays visible.
const DefaultLifetime = 3 * time.Second

// Model holds at most one notification. Expiry is driven by the caller's clock, usually the interface tick.
type Model struct {
	notification string
	notifiedAt   time.Time
	lifetime     time.Duration
}

func New(lifetime time.Duration) *Model {
	if lifetime <= 0 {
		lifetime = DefaultLifetime
	}
	return &Model{lifetime: lifetime}
}

// Notify replaces the current notification.
func (m *Model) Notify(msg string, now time.Time) {
	m.notification = msg
	m.notifiedAt = now
}

// Expire clears the notification once its lifetime has passed and reports whether it did.
func (m *Model) Expire(now time.Time) bool {
	if m.notification == "" || now.Sub(m.notifiedAt) < m.lifetime {
		return false
	}
	m.notification = ""
	return true
}

func (m *Model) Current() string {
	return m.notification
}

// View appends the notification to the last line of the content.
func (m *Model) View(content string) string {
	if m.notification == "" {
		return content
	}

	lines := strings.Split(content, "\n")
	lines[len(lines)-1] += "  " + style.Faint(m.notification)
	return strings.Join(lines, "\n")
}
