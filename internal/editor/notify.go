// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package editor

import (
	"context"
	"log/slog"
)

// Notifier is the user-facing notification capability the editor consumes.
// Confirm presents a blocking confirmation before a destructive restore;
// Alert reports an error or warning message. Both are opaque to the engine
// beyond the confirmed flag and the message text.
type Notifier interface {
	Confirm(ctx context.Context, text string) bool
	Alert(ctx context.Context, kind, text string)
}

// LogNotifier is a Notifier backed by slog. API-driven sessions use it with
// AutoConfirm set, since the client confirmed the action before calling.
type LogNotifier struct {
	AutoConfirm bool
}

// Confirm logs the prompt and returns the configured answer.
func (n *LogNotifier) Confirm(ctx context.Context, text string) bool {
	slog.Debug("confirm requested", "text", text, "confirmed", n.AutoConfirm)
	return n.AutoConfirm
}

// Alert logs the message at a level matching its kind.
func (n *LogNotifier) Alert(ctx context.Context, kind, text string) {
	switch kind {
	case "error":
		slog.Error("editor alert", "text", text)
	default:
		slog.Warn("editor alert", "kind", kind, "text", text)
	}
}
