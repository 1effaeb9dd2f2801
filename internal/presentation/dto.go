package presentation

import (
	"github.com/zjrosen/vimotion/internal/buffer"
	"github.com/zjrosen/vimotion/internal/motion"
)

// PositionDTO is a (line, column) pair for output.
type PositionDTO struct {
	Line int `json:"line" yaml:"line"`
	Col  int `json:"col" yaml:"col"`
}

// RangeDTO represents a resolved range for presentation.
type RangeDTO struct {
	Start    PositionDTO `json:"start" yaml:"start"`
	End      PositionDTO `json:"end" yaml:"end"`
	Linewise bool        `json:"linewise" yaml:"linewise"`
	Lines    int         `json:"lines" yaml:"lines"`
	Empty    bool        `json:"empty" yaml:"empty"`
	Text     string      `json:"text" yaml:"text"`
}

// ResolutionDTO is the outcome of resolving one key sequence.
type ResolutionDTO struct {
	Keys     string      `json:"keys" yaml:"keys"`
	Status   string      `json:"status" yaml:"status"`
	Motion   string      `json:"motion,omitempty" yaml:"motion,omitempty"`
	Groups   []string    `json:"groups,omitempty" yaml:"groups,omitempty"`
	Cursor   PositionDTO `json:"cursor" yaml:"cursor"`
	Resolved bool        `json:"resolved" yaml:"resolved"`
	Range    *RangeDTO   `json:"range,omitempty" yaml:"range,omitempty"`

	// Preview fields are rendered for text output only.
	Highlight string `json:"-" yaml:"-"`
	Diff      string `json:"-" yaml:"-"`
}

// MotionDTO describes one registered motion.
type MotionDTO struct {
	ID   string `json:"id" yaml:"id"`
	Keys string `json:"keys" yaml:"keys"`
}

// FromPosition converts a buffer position.
func FromPosition(p buffer.Position) PositionDTO {
	return PositionDTO{Line: p.Line, Col: p.Col}
}

// FromResolution converts a match result and, when ok, its range.
func FromResolution(keys string, doc buffer.Document, cursor buffer.Position, res motion.MatchResult, r buffer.Range, ok bool) ResolutionDTO {
	dto := ResolutionDTO{
		Keys:     keys,
		Status:   res.Status.String(),
		Groups:   res.Groups,
		Cursor:   FromPosition(cursor),
		Resolved: ok,
	}
	if res.Motion != nil {
		dto.Motion = res.Motion.ID()
	}
	if ok {
		dto.Range = &RangeDTO{
			Start:    FromPosition(r.Start),
			End:      FromPosition(r.End),
			Linewise: r.Linewise,
			Lines:    r.Lines(),
			Empty:    r.IsEmpty(),
			Text:     buffer.TextOf(doc, r),
		}
	}
	return dto
}

// FromDefinitions converts registry definitions in order.
func FromDefinitions(defs []motion.Definition) []MotionDTO {
	out := make([]MotionDTO, 0, len(defs))
	for _, d := range defs {
		out = append(out, MotionDTO{ID: d.ID(), Keys: d.Keys()})
	}
	return out
}
