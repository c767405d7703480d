package measure

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// DefaultLineName is the name given to new lines
const DefaultLineName = "Measure Line"

// Mode describes which tool produced a line
type Mode int

const (
	// ModeTwoPoint is the point-to-point distance tool
	ModeTwoPoint Mode = iota
	// ModePolyline accumulates any number of anchors
	ModePolyline
	// ModeOrthogonal measures from a pick along its surface normal to the
	// next surface hit
	ModeOrthogonal
)

var modeNames = map[Mode]string{
	ModeTwoPoint:   "two-point",
	ModePolyline:   "polyline",
	ModeOrthogonal: "orthogonal",
}

// String returns the mode's flag name
func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode parses a mode flag name
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// MaxPoints returns the creation-policy bound for the mode, 0 meaning unbounded
func (m Mode) MaxPoints() int {
	if m == ModeTwoPoint || m == ModeOrthogonal {
		return 2
	}
	return 0
}

// Line is an ordered polyline measurement. Insertion order defines the
// topology used for rendering and for the length.
type Line struct {
	ID   uuid.UUID
	Name string
	Mode Mode

	anchors    []Anchor
	generation uint64

	length float64
	dirty  bool
}

// NewLine creates an empty line with a fresh id
func NewLine(mode Mode) *Line {
	return &Line{
		ID:      uuid.New(),
		Name:    DefaultLineName,
		Mode:    mode,
		anchors: make([]Anchor, 0, 2),
		dirty:   true,
	}
}

// Append adds an anchor at the end of the line
func (l *Line) Append(anchor Anchor) {
	l.anchors = append(l.anchors, anchor)
	l.dirty = true
}

// Clear removes all anchors. Calling it on an empty line is a no-op apart
// from advancing the generation.
func (l *Line) Clear() {
	l.anchors = l.anchors[:0]
	l.generation++
	l.dirty = true
}

// Last returns the most recently appended anchor
func (l *Line) Last() (Anchor, error) {
	if len(l.anchors) == 0 {
		return Anchor{}, ErrEmptyLine
	}
	return l.anchors[len(l.anchors)-1], nil
}

// Len returns the number of anchors
func (l *Line) Len() int {
	return len(l.anchors)
}

// Generation counts how often the line has been cleared
func (l *Line) Generation() uint64 {
	return l.generation
}

// Anchors returns a copy of the anchors in insertion order
func (l *Line) Anchors() []Anchor {
	out := make([]Anchor, len(l.anchors))
	copy(out, l.anchors)
	return out
}

// At returns the anchor at index i
func (l *Line) At(i int) (Anchor, bool) {
	if i < 0 || i >= len(l.anchors) {
		return Anchor{}, false
	}
	return l.anchors[i], true
}

// IndexOf returns the index of the anchor with the given id
func (l *Line) IndexOf(id AnchorID) (int, bool) {
	for i, a := range l.anchors {
		if a.id == id {
			return i, true
		}
	}
	return -1, false
}

// SetAnchor replaces the anchor at index i, e.g. after the user dragged it
func (l *Line) SetAnchor(i int, anchor Anchor) error {
	if i < 0 || i >= len(l.anchors) {
		return fmt.Errorf("set anchor %d of %d: %w", i, len(l.anchors), ErrAnchorIndex)
	}
	if l.anchors[i].position != anchor.position {
		l.dirty = true
	}
	l.anchors[i] = anchor
	return nil
}

// RemoveAt deletes the anchor at index i, keeping the order of the rest
func (l *Line) RemoveAt(i int) error {
	if i < 0 || i >= len(l.anchors) {
		return fmt.Errorf("remove anchor %d of %d: %w", i, len(l.anchors), ErrAnchorIndex)
	}
	l.anchors = append(l.anchors[:i], l.anchors[i+1:]...)
	l.dirty = true
	return nil
}

// Length returns the total polyline length, cached between mutations.
// Lines with fewer than two anchors measure 0.
func (l *Line) Length() float64 {
	if l.dirty {
		l.length = 0
		if len(l.anchors) > 0 {
			l.length, _ = TotalLength(l.anchors)
		}
		l.dirty = false
	}
	return l.length
}

// Clone returns an independent copy sharing the id, name and mode
func (l *Line) Clone() *Line {
	return &Line{
		ID:         l.ID,
		Name:       l.Name,
		Mode:       l.Mode,
		anchors:    l.Anchors(),
		generation: l.generation,
		length:     l.length,
		dirty:      l.dirty,
	}
}
