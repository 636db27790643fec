// Package engine connects the decoration builder and interaction handlers
// to a hosting editor.
//
// The engine is synchronous: every event method runs to completion before
// returning and the engine starts no goroutines. It is not safe for
// concurrent use.
package engine

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/mddecor/pkg/decor"
	"github.com/yaklabco/mddecor/pkg/fix"
	"github.com/yaklabco/mddecor/pkg/interact"
	"github.com/yaklabco/mddecor/pkg/mdast"
)

// Host is the editing surface the engine decorates.
type Host interface {
	mdast.Document

	// ReplaceRange replaces [from, to) with text. It is the only way the
	// engine changes the document. The host reports the change back through
	// Engine.DocumentChanged.
	ReplaceRange(from, to int, text string) error

	// OffsetAtScreenPoint resolves a screen point to a document offset.
	OffsetAtScreenPoint(x, y int) (int, bool)
}

// DecorationSink is implemented by hosts that want each rebuilt set pushed
// to them. The set is read-only.
type DecorationSink interface {
	ApplyDecorations(set decor.Set)
}

// CursorStyler is implemented by hosts that style the cursor differently
// inside code.
type CursorStyler interface {
	SetCursorInCode(inCode bool)
}

// Options configures an Engine.
type Options struct {
	Build decor.Options

	// LinkScheme is prepended to link targets without a scheme.
	LinkScheme string

	// Activation decides which clicks open links. Nil uses the platform
	// convention.
	Activation interact.ActivationModifier

	// Opener opens links. Nil disables link opening.
	Opener interact.Opener

	Logger *log.Logger
}

// Engine owns the current decoration set of one host.
type Engine struct {
	host     Host
	builder  *decor.Builder
	clicker  *interact.LinkClicker
	logger   *log.Logger
	viewport decor.Viewport

	set          decor.Set
	cursorInCode bool
}

// New creates an engine for host. No decorations exist until the first
// DocumentChanged or Rebuild.
func New(host Host, opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Build.Logger == nil {
		opts.Build.Logger = logger
	}
	return &Engine{
		host:    host,
		builder: decor.NewBuilder(opts.Build),
		clicker: &interact.LinkClicker{
			Scheme:     opts.LinkScheme,
			Activation: opts.Activation,
			Opener:     opts.Opener,
			Logger:     logger,
		},
		logger: logger,
	}
}

// Rebuild computes the decorations of doc for the current viewport without
// touching engine state.
func (e *Engine) Rebuild(doc mdast.Document) decor.Set {
	return e.builder.Build(doc, e.viewport)
}

// Decorations returns the current set.
func (e *Engine) Decorations() decor.Set {
	return e.set
}

// Viewport returns the current viewport.
func (e *Engine) Viewport() decor.Viewport {
	return e.viewport
}

// CursorInCode returns the flag computed by the last SelectionChanged.
func (e *Engine) CursorInCode() bool {
	return e.cursorInCode
}

// DocumentChanged rebuilds decorations from the host's current text. It
// must be called once for every change, including changes the engine made.
func (e *Engine) DocumentChanged() decor.Set {
	return e.refresh()
}

// ViewportChanged records the visible lines and rebuilds.
func (e *Engine) ViewportChanged(vp decor.Viewport) decor.Set {
	e.viewport = vp
	return e.refresh()
}

// SelectionChanged recomputes whether the primary cursor is inside fenced
// code and reports the result.
func (e *Engine) SelectionChanged(cursor int) bool {
	e.cursorInCode = interact.CursorInCode(e.host, cursor)
	if styler, ok := e.host.(CursorStyler); ok {
		styler.SetCursorInCode(e.cursorInCode)
	}
	return e.cursorInCode
}

// PointerDown handles a press on a rendered element. For a checkbox it
// rewrites the three-character token through the host and returns true;
// the new state becomes visible when the host reports the change.
func (e *Engine) PointerDown(element decor.Decoration) bool {
	if element.Checkbox == nil {
		return false
	}
	if err := e.toggle(*element.Checkbox); err != nil {
		e.logger.Warn("checkbox toggle skipped", "offset", element.Checkbox.EditPosition, "error", err)
		return false
	}
	return true
}

// Click handles a click with modifiers. It returns false when the click was
// not a link activation, so the host can run its default behaviour.
func (e *Engine) Click(click interact.Click) bool {
	return e.clicker.Click(e.host, e.host, click)
}

func (e *Engine) toggle(box decor.Checkbox) error {
	edit := box.ToggleEdit()
	if edit.Expect != "" {
		if found := e.host.TextBetween(edit.StartOffset, edit.EndOffset); found != edit.Expect {
			return fmt.Errorf("found %q at %d: %w", found, edit.StartOffset, fix.ErrStale)
		}
	}
	if err := e.host.ReplaceRange(edit.StartOffset, edit.EndOffset, edit.NewText); err != nil {
		return fmt.Errorf("replacing checkbox token: %w", err)
	}
	return nil
}

func (e *Engine) refresh() decor.Set {
	e.set = e.builder.Build(e.host, e.viewport)
	if sink, ok := e.host.(DecorationSink); ok {
		sink.ApplyDecorations(e.set)
	}
	return e.set
}
