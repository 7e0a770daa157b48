// Package logging wraps charmbracelet/log with the few structured events
// the compiler emits when it degrades output instead of failing.
package logging

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charm/log for structured logging.
type Logger struct {
	*log.Logger
}

// New creates a logger writing warnings and above to w.
func New(w io.Writer) *Logger {
	return NewWithLevel(w, log.WarnLevel)
}

// NewWithLevel creates a logger with a specific level.
func NewWithLevel(w io.Writer, level log.Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Level:           level,
		Prefix:          "nmd",
	})
	return &Logger{Logger: l}
}

// Discard returns a logger that discards all output.
func Discard() *Logger {
	return New(io.Discard)
}

// SourceUnresolved logs an image source kept literal in lenient mode.
func (l *Logger) SourceUnresolved(document, src string, err error) {
	l.Warn("image source unresolved, rendered literally",
		"document", document,
		"src", src,
		"error", err)
}

// RemoteNotEmbedded logs a remote image left as a link.
func (l *Logger) RemoteNotEmbedded(document, src string) {
	l.Warn("remote image embedding is not supported, linking instead",
		"document", document,
		"src", src)
}

// ListItemsDropped logs list lines excluded in lenient mode.
func (l *Logger) ListItemsDropped(document string, accepted, lines int, dropped []string) {
	l.Warn("list lines not recognized as items were dropped",
		"document", document,
		"accepted", accepted,
		"lines", lines,
		"dropped", dropped)
}

// QuoteLineDropped logs a quote line without the quote marker.
func (l *Logger) QuoteLineDropped(document, line string) {
	l.Warn("quote line without '>' marker dropped",
		"document", document,
		"line", line)
}

// ReferenceUnresolved logs a reference or citation rendered literally.
func (l *Logger) ReferenceUnresolved(document, key string) {
	l.Warn("reference not found, rendered literally",
		"document", document,
		"key", key)
}

// DocumentParsed logs a finished document at debug level.
func (l *Logger) DocumentParsed(document string, chapters int, elapsed time.Duration) {
	l.Debug("document parsed",
		"document", document,
		"chapters", chapters,
		"duration", elapsed.Round(time.Microsecond))
}

// DocumentsDiscovered logs the sources found when a dossier lists none.
func (l *Logger) DocumentsDiscovered(dir string, documents []string) {
	l.Info("dossier lists no documents, compiling discovered sources",
		"dir", dir,
		"documents", documents)
}

// DossierCompiled logs a finished dossier.
func (l *Logger) DossierCompiled(dossier string, documents int, elapsed time.Duration) {
	l.Info("dossier compiled",
		"dossier", dossier,
		"documents", documents,
		"duration", elapsed.Round(time.Millisecond))
}
