package decor

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/mddecor/pkg/block"
	"github.com/yaklabco/mddecor/pkg/fence"
	"github.com/yaklabco/mddecor/pkg/highlight"
	"github.com/yaklabco/mddecor/pkg/inline"
	"github.com/yaklabco/mddecor/pkg/langdetect"
	"github.com/yaklabco/mddecor/pkg/mdast"
)

// Options configures a Builder. The zero value is usable.
type Options struct {
	// Classes names the emitted style classes. A zero value uses
	// DefaultClasses.
	Classes *Classes

	// Registry supplies the inline matchers. Nil uses inline.Default.
	Registry *inline.Registry

	// DetectLanguage guesses the language of fences without an info string.
	DetectLanguage bool

	// Highlight adds chroma token ranges inside fenced code.
	Highlight bool

	// StrictOrder panics when a build violates the ordering contract.
	// Builds with the mddecordebug tag always panic.
	StrictOrder bool

	// Logger receives debug output. Nil discards it.
	Logger *log.Logger
}

// Builder turns documents into decoration sets. A Builder holds no state
// between builds and may be reused.
type Builder struct {
	classes     Classes
	registry    *inline.Registry
	detect      bool
	highlight   bool
	strictOrder bool
	logger      *log.Logger
}

// NewBuilder creates a Builder from opts.
func NewBuilder(opts Options) *Builder {
	builder := &Builder{
		classes:     DefaultClasses(),
		registry:    opts.Registry,
		detect:      opts.DetectLanguage,
		highlight:   opts.Highlight,
		strictOrder: opts.StrictOrder,
		logger:      opts.Logger,
	}
	if opts.Classes != nil {
		builder.classes = *opts.Classes
	}
	if builder.registry == nil {
		builder.registry = inline.Default()
	}
	if builder.logger == nil {
		builder.logger = log.New(io.Discard)
	}
	return builder
}

// Classes returns the class mapping used by the builder.
func (b *Builder) Classes() Classes {
	return b.classes
}

// Build scans doc and returns the decorations for the lines inside vp.
// Fence state is replayed from line 1 regardless of the viewport.
func (b *Builder) Build(doc mdast.Document, vp Viewport) Set {
	count := doc.LineCount()
	first, last := vp.Lines(count)

	run := &buildRun{builder: b, doc: doc, first: first, last: last}
	if first <= last {
		run.visFrom = doc.Line(first).StartOffset
		run.visTo = doc.Line(last).EndOffset()
	}

	var state fence.State
	for n := 1; n <= count; n++ {
		if n > last && !state.InFence {
			break
		}
		line := doc.Line(n)
		var info block.LineInfo
		info, state = block.Classify(line.Text, state)
		run.track(line, info)
		if n >= first && n <= last {
			run.emitLine(line, info)
		}
	}
	run.finishCode()

	// newSet sorts, so Validate guards range well-formedness; order holds by
	// construction.
	set := newSet(run.items)
	if err := set.Validate(); err != nil {
		if b.strictOrder || debugAssertions {
			panic(err)
		}
		b.logger.Error("decoration order violated", "error", err)
	}

	b.logger.Debug("decorations rebuilt",
		"lines", count, "first", first, "last", last, "decorations", set.Len())
	return set
}

// buildRun carries the per-build state.
type buildRun struct {
	builder *Builder
	doc     mdast.Document
	first   int
	last    int

	// visFrom and visTo bound the visible text, for code tokens.
	visFrom int
	visTo   int

	items []Decoration
	code  *codeBlock
}

// codeBlock accumulates a fenced block until it closes.
type codeBlock struct {
	openLine    int
	openStart   int
	info        string
	contentFrom int
	contentTo   int
	hasContent  bool
}

func (r *buildRun) track(line mdast.Line, info block.LineInfo) {
	switch info.Kind {
	case block.CodeFenceOpen:
		r.code = &codeBlock{
			openLine:  line.Number,
			openStart: line.StartOffset,
			info:      line.Text[info.Fence.Info.StartOffset:info.Fence.Info.EndOffset],
		}
	case block.CodeContent:
		if r.code == nil {
			return
		}
		if !r.code.hasContent {
			r.code.contentFrom = line.StartOffset
			r.code.hasContent = true
		}
		r.code.contentTo = line.EndOffset()
	case block.CodeFenceClose:
		r.finishCode()
	default:
	}
}

// finishCode emits the language class and code tokens of the open block.
func (r *buildRun) finishCode() {
	code := r.code
	r.code = nil
	if code == nil {
		return
	}

	openVisible := code.openLine >= r.first && code.openLine <= r.last
	contentVisible := code.hasContent && code.contentFrom < r.visTo && code.contentTo > r.visFrom
	wantTokens := r.builder.highlight && contentVisible
	if !openVisible && !wantTokens {
		return
	}

	var content string
	if code.hasContent && (wantTokens || (code.info == "" && r.builder.detect)) {
		content = r.doc.TextBetween(code.contentFrom, code.contentTo)
	}
	lang := langdetect.Resolve(code.info, []byte(content), r.builder.detect)
	if lang == "" {
		return
	}

	if openVisible {
		r.addLine(code.openLine, code.openStart, RoleLangPrefix+langdetect.Slug(lang))
	}
	if !wantTokens {
		return
	}
	for _, token := range highlight.ForLanguage(lang).Tokens(content, code.contentFrom) {
		if token.From >= r.visFrom && token.To <= r.visTo {
			r.addRange(r.lineOf(token.From), token.From, token.To, RoleTokenPrefix+token.Class)
		}
	}
}

// lineOf finds the line number of a visible offset.
func (r *buildRun) lineOf(offset int) int {
	if line, ok := mdast.LineContaining(r.doc, offset); ok {
		return line.Number
	}
	return 0
}

func (r *buildRun) emitLine(line mdast.Line, info block.LineInfo) {
	n, start := line.Number, line.StartOffset
	marker := info.Marker.Shift(start)

	switch info.Kind {
	case block.Heading:
		r.addLine(n, start, RoleHeading(info.Level))
		r.addRange(n, marker.StartOffset, marker.EndOffset, RoleHeadingMarker)
	case block.Task:
		r.addLine(n, start, RoleTask)
		if info.Checked {
			r.addLine(n, start, RoleTaskChecked)
		}
		r.addRange(n, marker.StartOffset, marker.EndOffset, RoleTaskSyntax)
		bracket := info.CheckboxBracket
		r.items = append(r.items, Decoration{
			Kind:  WidgetKind,
			From:  start + info.CheckboxAnchor,
			To:    start + info.CheckboxAnchor,
			Class: r.builder.classes.Name(RoleCheckbox),
			Line:  n,
			Checkbox: &Checkbox{
				Anchor:       start + info.CheckboxAnchor,
				EditPosition: start + bracket,
				Checked:      info.Checked,
				Token:        line.Text[bracket : bracket+checkboxTokenLen],
			},
		})
	case block.Bullet:
		r.addLine(n, start, RoleBullet)
		r.addRange(n, marker.StartOffset, marker.EndOffset, RoleListMarker)
	case block.Ordered:
		r.addLine(n, start, RoleOrdered)
		r.addRange(n, marker.StartOffset, marker.EndOffset, RoleListMarker)
	case block.Blockquote:
		r.addLine(n, start, RoleBlockquote)
		r.addRange(n, marker.StartOffset, marker.EndOffset, RoleQuoteMarker)
	case block.HorizontalRule:
		r.addLine(n, start, RoleHorizontalRule)
		return
	case block.CodeFenceOpen:
		r.addLine(n, start, RoleCodeFenceOpen)
		r.addSpan(n, info.Fence.Run.Shift(start), RoleCodeFenceMarker)
		r.addSpan(n, info.Fence.Info.Shift(start), RoleCodeInfo)
		return
	case block.CodeFenceClose:
		r.addLine(n, start, RoleCodeFenceClose)
		r.addSpan(n, info.Fence.Run.Shift(start), RoleCodeFenceMarker)
		return
	case block.CodeContent:
		r.addLine(n, start, RoleCodeBlock)
		return
	case block.None:
	}

	// Inline constructs are matched on the text after any block marker.
	contentStart := info.Marker.EndOffset
	for _, match := range r.builder.registry.Compose(line.Text[contentStart:]) {
		r.emitInline(n, match.Shift(start+contentStart))
	}
}

//nolint:gochecknoglobals // Read-only role table.
var wrappedRoles = map[inline.Kind][2]string{
	inline.Code:      {RoleCode, RoleCodeMarker},
	inline.Bold:      {RoleBold, RoleBoldMarker},
	inline.Italic:    {RoleItalic, RoleItalicMarker},
	inline.Strike:    {RoleStrike, RoleStrikeMarker},
	inline.Highlight: {RoleHighlight, RoleHighlightMarker},
}

func (r *buildRun) emitInline(n int, match inline.Match) {
	switch match.Kind {
	case inline.Link:
		r.emitLinkParts(n, match, RoleLink, RoleLinkText, RoleLinkBracket, RoleLinkParen, RoleLinkURL)
	case inline.Image:
		r.emitLinkParts(n, match, RoleImage, RoleImageAlt, RoleImageBracket, RoleImageParen, RoleImageURL)
		r.addRange(n, match.Parts.Bang, match.Parts.Bang+1, RoleImageBang)
	default:
		roles, ok := wrappedRoles[match.Kind]
		if !ok {
			return
		}
		r.addSpan(n, match.Span(), roles[0])
		r.addSpan(n, match.OpenMarker(), roles[1])
		r.addSpan(n, match.CloseMarker(), roles[1])
	}
}

func (r *buildRun) emitLinkParts(n int, match inline.Match, whole, text, bracket, paren, url string) {
	parts := match.Parts
	r.addSpan(n, match.Span(), whole)
	r.addSpan(n, match.Content(), text)
	r.addRange(n, parts.OpenBracket, parts.OpenBracket+1, bracket)
	r.addRange(n, parts.CloseBracket, parts.CloseBracket+1, bracket)
	r.addRange(n, parts.OpenParen, parts.OpenParen+1, paren)
	r.addRange(n, parts.CloseParen, parts.CloseParen+1, paren)
	r.addSpan(n, match.URL(), url)
}

func (r *buildRun) addLine(n, start int, role string) {
	r.items = append(r.items, Decoration{
		Kind:  LineKind,
		From:  start,
		To:    start,
		Class: r.builder.classes.Name(role),
		Line:  n,
	})
}

// addRange records [from, to); empty ranges are skipped.
func (r *buildRun) addRange(n, from, to int, role string) {
	if from >= to {
		return
	}
	r.items = append(r.items, Decoration{
		Kind:  RangeKind,
		From:  from,
		To:    to,
		Class: r.builder.classes.Name(role),
		Line:  n,
	})
}

func (r *buildRun) addSpan(n int, span mdast.SourceRange, role string) {
	r.addRange(n, span.StartOffset, span.EndOffset, role)
}
