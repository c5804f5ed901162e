// Package status provides a one-way sink for human-readable lifecycle
// messages (initializing, ready, permission denied, errors).
package status

import "log"

// Reporter receives lifecycle messages. Implementations must not block;
// they hold no state and perform no validation.
type Reporter interface {
	Report(message string)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(message string)

// Report calls f.
func (f ReporterFunc) Report(message string) {
	f(message)
}

// Common lifecycle messages surfaced to the user.
const (
	Initializing     = "initializing"
	Ready            = "ready"
	PermissionDenied = "camera permission denied"
	Stopped          = "stopped"
)

// Log is a Reporter that writes messages to the standard logger.
type Log struct {
	// Prefix is prepended to each message.
	Prefix string
}

// Report logs the message.
func (l *Log) Report(message string) {
	if l.Prefix != "" {
		log.Printf("%s %s", l.Prefix, message)
		return
	}
	log.Println(message)
}

// Multi fans a message out to several reporters in order.
type Multi []Reporter

// Report delivers the message to every reporter, skipping nil entries.
func (m Multi) Report(message string) {
	for _, r := range m {
		if r != nil {
			r.Report(message)
		}
	}
}

// Nop is a Reporter that discards all messages.
type Nop struct{}

// Report discards the message.
func (Nop) Report(string) {}
