// Package device turns a User-Agent header into a short label for session
// listings.
package device

import (
	"strings"

	"github.com/mssola/user_agent"
)

const unknown = "Unknown device"

// Kind classifies the client behind a User-Agent.
type Kind string

const (
	Desktop Kind = "desktop"
	Mobile  Kind = "mobile"
	Tablet  Kind = "tablet"
	Bot     Kind = "bot"
)

// Info is what a User-Agent reveals about the client.
type Info struct {
	Browser        string
	BrowserVersion string
	OS             string
	Kind           Kind
}

func Parse(header string) Info {
	ua := user_agent.New(header)
	browser, version := ua.Browser()

	kind := Desktop
	lower := strings.ToLower(header)
	switch {
	case strings.Contains(lower, "tablet"), strings.Contains(lower, "ipad"):
		kind = Tablet
	case ua.Mobile():
		kind = Mobile
	case ua.Bot():
		kind = Bot
	}

	return Info{
		Browser:        browser,
		BrowserVersion: version,
		OS:             ua.OS(),
		Kind:           kind,
	}
}

// Describe renders header as e.g. "Chrome 120.0.0.0 on Windows 10 (mobile)".
// Desktop is implied and not printed.
func Describe(header string) string {
	if strings.TrimSpace(header) == "" {
		return unknown
	}
	info := Parse(header)

	var b strings.Builder
	if info.Browser != "" {
		b.WriteString(info.Browser)
		if info.BrowserVersion != "" {
			b.WriteString(" " + info.BrowserVersion)
		}
	}
	if info.OS != "" {
		if b.Len() > 0 {
			b.WriteString(" on ")
		}
		b.WriteString(info.OS)
	}
	if b.Len() == 0 {
		return unknown
	}
	if info.Kind != Desktop {
		b.WriteString(" (" + string(info.Kind) + ")")
	}
	return b.String()
}
