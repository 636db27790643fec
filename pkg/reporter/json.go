package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string     `json:"version"`
	Files   []JSONFile `json:"files"`
	Total   int        `json:"total"`
}

// JSONFile represents a single file's decorations.
type JSONFile struct {
	Path        string           `json:"path"`
	Viewport    *JSONViewport    `json:"viewport,omitempty"`
	Decorations []JSONDecoration `json:"decorations"`
	Error       string           `json:"error,omitempty"`
}

// JSONViewport is the requested line window.
type JSONViewport struct {
	FromLine int `json:"fromLine"`
	ToLine   int `json:"toLine"`
}

// JSONDecoration represents a single decoration.
type JSONDecoration struct {
	Kind     string        `json:"kind"`
	From     int           `json:"from"`
	To       int           `json:"to"`
	Class    string        `json:"class"`
	Start    Position      `json:"start"`
	End      Position      `json:"end"`
	Checkbox *JSONCheckbox `json:"checkbox,omitempty"`
}

// JSONCheckbox describes a checkbox widget.
type JSONCheckbox struct {
	Checked      bool   `json:"checked"`
	EditPosition int    `json:"editPosition"`
	Token        string `json:"token"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Total, nil
}

func buildOutput(result *Result) *JSONOutput {
	output := &JSONOutput{Version: "1", Files: make([]JSONFile, 0)}
	if result == nil {
		return output
	}

	for _, file := range result.Files {
		jsonFile := JSONFile{Path: file.Path, Decorations: make([]JSONDecoration, 0, file.Set.Len())}
		if file.Err != nil {
			jsonFile.Error = file.Err.Error()
			output.Files = append(output.Files, jsonFile)
			continue
		}
		if vp := file.Viewport; vp.FromLine > 0 || vp.ToLine > 0 {
			jsonFile.Viewport = &JSONViewport{FromLine: vp.FromLine, ToLine: vp.ToLine}
		}

		for _, d := range file.Set.All() {
			item := JSONDecoration{
				Kind:  d.Kind.String(),
				From:  d.From,
				To:    d.To,
				Class: d.Class,
				Start: positionOf(file.Doc, d.From),
				End:   positionOf(file.Doc, d.To),
			}
			if d.Checkbox != nil {
				item.Checkbox = &JSONCheckbox{
					Checked:      d.Checkbox.Checked,
					EditPosition: d.Checkbox.EditPosition,
					Token:        d.Checkbox.Token,
				}
			}
			jsonFile.Decorations = append(jsonFile.Decorations, item)
		}

		output.Total += len(jsonFile.Decorations)
		output.Files = append(output.Files, jsonFile)
	}

	return output
}
