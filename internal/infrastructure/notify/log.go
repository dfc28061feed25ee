// Package notify provides the log-backed notification sink. Toast delivery
// belongs to the UI; the core only needs a fire-and-forget collaborator.
package notify

import (
	"github.com/rs/zerolog"

	"github.com/igilife/insurance-portal/internal/core/ports"
)

type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(note ports.Notification) {
	n.log.Info().
		Str("title", note.Title).
		Str("severity", note.Severity).
		Msg(note.Description)
}
