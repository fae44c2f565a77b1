package logging

import (
	"log/slog"
	"regexp"
)

// Guest phone numbers and emails flow through tool arguments and end up in
// log attributes. These patterns rewrite them before the handler emits.
var (
	phonePattern = regexp.MustCompile(`\b(?:\+?1[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}\b`)
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
)

// Redact rewrites phone numbers and emails in a string.
func Redact(s string) string {
	s = phonePattern.ReplaceAllString(s, "***-***-****")
	s = emailPattern.ReplaceAllString(s, "***@***")
	return s
}

// redactAttr is a slog ReplaceAttr hook that redacts string values.
func redactAttr(groups []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindString {
		a.Value = slog.StringValue(Redact(a.Value.String()))
	}
	return a
}
