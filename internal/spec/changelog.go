package spec

import (
	"strings"
	"time"
)

// changelogDateLayout is the RPM changelog date format, e.g. "Thu Jul 25 2002".
const changelogDateLayout = "Mon Jan 02 2006"

// versionPlaceholder is replaced with the new version in message templates.
const versionPlaceholder = "{version}"

// Entry is one dated, attributed changelog block.
type Entry struct {
	Date     time.Time
	Packager string
	Epoch    string
	Version  string
	Release  string
	Messages []string
}

// DefaultMessage returns the message used when none is configured:
// a "new version" note when the version changed, a rebuild note otherwise.
func DefaultMessage(versionBump bool) string {
	if versionBump {
		return "New version " + versionPlaceholder
	}
	return "Rebuild"
}

// Render produces the entry text: a title line, one "- " line per
// message, and a trailing blank separator line. Each line ends in "\n".
func (e Entry) Render() string {
	var b strings.Builder

	b.WriteString("* ")
	b.WriteString(e.Date.Format(changelogDateLayout))
	b.WriteString(" ")
	b.WriteString(e.Packager)
	b.WriteString(" ")
	if e.Epoch != "" {
		b.WriteString(e.Epoch)
		b.WriteString(":")
	}
	b.WriteString(e.Version)
	b.WriteString("-")
	b.WriteString(e.Release)
	b.WriteString("\n")

	for _, msg := range e.Messages {
		b.WriteString("- ")
		b.WriteString(strings.ReplaceAll(msg, versionPlaceholder, e.Version))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	return b.String()
}
