package interact

import (
	"io"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/mddecor/pkg/inline"
	"github.com/yaklabco/mddecor/pkg/mdast"
)

// DefaultScheme is prepended to link targets that carry no scheme.
const DefaultScheme = "https://"

// schemePattern matches an explicit URL scheme such as "http://" or
// "mailto:".
var schemePattern = regexp.MustCompile(`^(?i:[a-z][a-z0-9+.\-]*://|mailto:|tel:)`)

// PointResolver maps a screen point to a document offset. It is provided
// by the host.
type PointResolver interface {
	OffsetAtScreenPoint(x, y int) (int, bool)
}

// Opener opens a URL outside the editor.
type Opener interface {
	Open(url string) error
}

// Click is a pointer click with its modifier state.
type Click struct {
	X         int
	Y         int
	Modifiers Modifiers
}

// LinkAt finds the link on doc covering offset. Only the line containing
// offset is scanned. Image syntax is not a link.
func LinkAt(doc mdast.Document, offset int) (inline.Match, bool) {
	line, ok := mdast.LineContaining(doc, offset)
	if !ok {
		return inline.Match{}, false
	}

	links := inline.DropImageLinks(line.Text, inline.MatchLink(line.Text))
	for _, link := range links {
		link = link.Shift(line.StartOffset)
		if link.Contains(offset) {
			return link, true
		}
	}
	return inline.Match{}, false
}

// LinkURL returns the raw URL text of a link found on doc.
func LinkURL(doc mdast.Document, link inline.Match) string {
	url := link.URL()
	return doc.TextBetween(url.StartOffset, url.EndOffset)
}

// NormalizeURL prepares a link target for opening: angle brackets and a
// trailing title are removed, scheme defaults to DefaultScheme when empty
// and is added when the target has none, and unsafe characters are
// percent-encoded.
func NormalizeURL(raw, scheme string) string {
	target := strings.TrimSpace(raw)
	if fields := strings.Fields(target); len(fields) > 0 {
		target = fields[0]
	}
	target = strings.TrimSuffix(strings.TrimPrefix(target, "<"), ">")
	if target == "" {
		return ""
	}

	if scheme == "" {
		scheme = DefaultScheme
	}
	if !schemePattern.MatchString(target) {
		target = scheme + strings.TrimPrefix(target, "//")
	}
	return string(util.URLEscape([]byte(target), false))
}

// LinkClicker resolves modifier-clicks to links and opens them.
type LinkClicker struct {
	// Scheme is the default scheme for targets without one.
	Scheme string

	// Activation decides whether a click carries the open-link modifier.
	// Nil uses PlatformModifier for the running system.
	Activation ActivationModifier

	Opener Opener
	Logger *log.Logger
}

// Click handles a click on doc. It returns true only when a link was found
// under the pointer, the activation modifier was held, and the URL was
// handed to the opener. Any other outcome returns false so the host can
// apply its default click behaviour.
func (c *LinkClicker) Click(doc mdast.Document, resolver PointResolver, click Click) bool {
	logger := c.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	offset, ok := resolver.OffsetAtScreenPoint(click.X, click.Y)
	if !ok {
		return false
	}
	link, ok := LinkAt(doc, offset)
	if !ok {
		return false
	}

	activation := c.Activation
	if activation == nil {
		activation = PlatformModifier("")
	}
	if !activation(click.Modifiers) {
		return false
	}

	url := NormalizeURL(LinkURL(doc, link), c.Scheme)
	if url == "" || c.Opener == nil {
		return false
	}
	if err := c.Opener.Open(url); err != nil {
		logger.Warn("could not open link", "url", url, "error", err)
		return false
	}
	logger.Debug("opened link", "url", url, "offset", offset)
	return true
}
