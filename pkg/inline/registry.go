package inline

import (
	"cmp"
	"slices"
)

// Matcher scans one line and returns line-relative matches.
type Matcher func(line string) []Match

// Entry binds a matcher to the kind it produces.
type Entry struct {
	Kind  Kind
	Match Matcher
}

// Registry is an ordered list of matchers plus the composition rules that
// resolve conflicts between their results.
type Registry struct {
	entries []Entry
}

// NewRegistry returns a registry running entries in the given order.
func NewRegistry(entries ...Entry) *Registry {
	return &Registry{entries: append([]Entry(nil), entries...)}
}

// Default returns the standard matcher set. Bold runs before italic and
// image before link so their results are available for conflict resolution.
func Default() *Registry {
	return NewRegistry(
		Entry{Kind: Code, Match: MatchCode},
		Entry{Kind: Bold, Match: MatchBold},
		Entry{Kind: Italic, Match: MatchItalic},
		Entry{Kind: Strike, Match: MatchStrike},
		Entry{Kind: Highlight, Match: MatchHighlight},
		Entry{Kind: Image, Match: MatchImage},
		Entry{Kind: Link, Match: MatchLink},
	)
}

// Entries returns a copy of the registered entries.
func (r *Registry) Entries() []Entry {
	return append([]Entry(nil), r.entries...)
}

// Matcher returns the matcher registered for kind.
func (r *Registry) Matcher(kind Kind) (Matcher, bool) {
	for _, entry := range r.entries {
		if entry.Kind == kind {
			return entry.Match, true
		}
	}
	return nil, false
}

// Compose runs every matcher on line and resolves conflicts:
//   - italic spans overlapping any bold span are dropped;
//   - link spans whose '[' is immediately preceded by '!' are dropped.
//
// The result is ordered by (From, To, Kind).
func (r *Registry) Compose(line string) []Match {
	byKind := make(map[Kind][]Match, len(r.entries))
	for _, entry := range r.entries {
		byKind[entry.Kind] = append(byKind[entry.Kind], entry.Match(line)...)
	}

	byKind[Italic] = ExcludeOverlapping(byKind[Italic], byKind[Bold])
	byKind[Link] = DropImageLinks(line, byKind[Link])

	var out []Match
	for _, entry := range r.entries {
		out = append(out, byKind[entry.Kind]...)
		delete(byKind, entry.Kind)
	}
	sortMatches(out)
	return out
}

// Compose runs the default registry on line.
func Compose(line string) []Match {
	return defaultRegistry.Compose(line)
}

//nolint:gochecknoglobals // Immutable after init.
var defaultRegistry = Default()

// ExcludeOverlapping returns the matches that share no byte with any match
// in exclude.
func ExcludeOverlapping(matches, exclude []Match) []Match {
	if len(exclude) == 0 {
		return matches
	}
	kept := matches[:0:0]
	for _, match := range matches {
		overlaps := false
		for _, other := range exclude {
			if match.Overlaps(other) {
				overlaps = true
				break
			}
		}
		if !overlaps {
			kept = append(kept, match)
		}
	}
	return kept
}

// DropImageLinks removes link matches whose opening bracket directly
// follows a '!' on line; those belong to an image.
func DropImageLinks(line string, links []Match) []Match {
	kept := links[:0:0]
	for _, link := range links {
		if at(line, link.From-1) == '!' {
			continue
		}
		kept = append(kept, link)
	}
	return kept
}

func sortMatches(matches []Match) {
	slices.SortStableFunc(matches, func(a, b Match) int {
		if c := cmp.Compare(a.From, b.From); c != 0 {
			return c
		}
		if c := cmp.Compare(a.To, b.To); c != 0 {
			return c
		}
		return cmp.Compare(a.Kind, b.Kind)
	})
}
