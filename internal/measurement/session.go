package measurement

import (
	"errors"
	"fmt"

	"github.com/philipparndt/gomeasure/internal/logging"
	"github.com/philipparndt/gomeasure/pkg/geometry"
	"github.com/philipparndt/gomeasure/pkg/measure"
	"github.com/philipparndt/gomeasure/pkg/stl"
	"github.com/philipparndt/gomeasure/pkg/units"
	"github.com/rs/zerolog"
)

var (
	// ErrUnknownAnchor is returned for anchor ids that are not on the current line
	ErrUnknownAnchor = errors.New("anchor is not on the current line")
	// ErrNoSelection is returned when the active selection holds no anchor
	ErrNoSelection = errors.New("no anchor selected")
	// ErrNoOrthogonalHit is returned when the ray along a pick's normal leaves the model
	ErrNoOrthogonalHit = errors.New("orthogonal ray does not hit the model")
	// ErrNoSurface is returned by orthogonal picks in a session without a surface
	ErrNoSurface = errors.New("no surface to cast orthogonal rays against")
)

// orthogonalOffset lifts the ray origin off the picked facet
const orthogonalOffset = 1e-6

// Surface is what orthogonal picks cast rays against
type Surface interface {
	Raycast(origin, direction geometry.Vector3) (stl.Hit, bool)
}

// Options configures a measurement session
type Options struct {
	Mode measure.Mode
	// MaxPoints bounds a polyline, 0 meaning unbounded. The other modes
	// always hold two anchors.
	MaxPoints int
	// Snapper defaults to measure.DefaultSnapper when nil
	Snapper        *measure.Snapper
	Surface        Surface
	Unit           units.Unit
	MinLabelPixels float64
}

func (o Options) maxPoints() int {
	if o.Mode == measure.ModePolyline {
		return o.MaxPoints
	}
	return o.Mode.MaxPoints()
}

// Session is one measurement tool: the line being built, its creation
// policy, the committed lines and the selection history
type Session struct {
	log       zerolog.Logger
	opts      Options
	snapper   measure.Snapper
	current   *measure.Line
	creator   *measure.Creator
	lines     []*measure.Line
	selection *measure.SelectionStack
}

// NewSession creates a session with an empty current line
func NewSession(opts Options, log zerolog.Logger) *Session {
	if opts.Unit == "" {
		opts.Unit = units.Meter
	}
	snapper := measure.DefaultSnapper()
	if opts.Snapper != nil {
		snapper = *opts.Snapper
	}
	s := &Session{
		log:       logging.Component(log, "session"),
		opts:      opts,
		snapper:   snapper,
		selection: measure.NewSelectionStack(),
	}
	s.startLine()
	return s
}

func (s *Session) startLine() {
	s.current = measure.NewLine(s.opts.Mode)
	s.creator = measure.NewCreator(s.current, s.opts.maxPoints(), s.snapper)
}

// MaxPoints returns the anchor bound of the current line, 0 when unbounded
func (s *Session) MaxPoints() int {
	return s.creator.MaxPoints()
}

// Current returns the line being built
func (s *Session) Current() *measure.Line {
	return s.current
}

// Lines returns the committed lines
func (s *Session) Lines() []*measure.Line {
	out := make([]*measure.Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// State returns the creation policy state of the current line
func (s *Session) State() measure.State {
	return s.creator.State()
}

// Pick adds an anchor for a pick event to the current line and returns it.
// In orthogonal mode the first anchor of a line is followed by a second one
// where the ray along its normal hits the surface; on a miss the first
// anchor stays and ErrNoOrthogonalHit is returned.
func (s *Session) Pick(ev measure.PickEvent) (measure.Anchor, error) {
	anchor, restarted := s.creator.Pick(ev)
	if restarted {
		s.log.Debug().Str("line", s.current.ID.String()).Msg("line full, restarted")
	}

	s.log.Debug().
		Uint64("anchor", uint64(anchor.ID())).
		Float64("x", anchor.Position().X).
		Float64("y", anchor.Position().Y).
		Float64("z", anchor.Position().Z).
		Bool("snapped", anchor.Position() != ev.WorldPosition).
		Int("anchors", s.current.Len()).
		Str("state", s.creator.State().String()).
		Msg("pick")

	if s.opts.Mode == measure.ModeOrthogonal && s.current.Len() == 1 {
		if err := s.completeOrthogonal(anchor); err != nil {
			return anchor, err
		}
	}
	return anchor, nil
}

// completeOrthogonal appends the surface hit along the normal of from
func (s *Session) completeOrthogonal(from measure.Anchor) error {
	if s.opts.Surface == nil {
		return ErrNoSurface
	}
	normal := from.Normal().Normalize()
	if normal.LengthSquared() == 0 {
		return fmt.Errorf("anchor %d has no normal: %w", from.ID(), ErrNoOrthogonalHit)
	}

	origin := from.Position().Add(normal.Mul(orthogonalOffset))
	hit, ok := s.opts.Surface.Raycast(origin, normal)
	if !ok {
		s.log.Warn().Uint64("anchor", uint64(from.ID())).Msg("infinite orthogonal")
		return fmt.Errorf("from anchor %d: %w", from.ID(), ErrNoOrthogonalHit)
	}

	end, _ := s.creator.Pick(measure.PickEvent{
		WorldPosition:  hit.Position,
		SurfaceNormal:  hit.Normal,
		NearbyVertices: hit.Corners,
	})
	s.log.Debug().
		Uint64("anchor", uint64(end.ID())).
		Float64("distance", from.Position().Distance(end.Position())).
		Msg("orthogonal")
	return nil
}

// Select makes an anchor of the current line the active selection
func (s *Session) Select(id measure.AnchorID) error {
	a, i := s.anchor(id)
	if i < 0 {
		return fmt.Errorf("select anchor %d: %w", id, ErrUnknownAnchor)
	}
	s.selection.Push(measure.SelectAnchor(a))
	s.log.Debug().Uint64("anchor", uint64(id)).Int("depth", s.selection.Len()).Msg("select")
	return nil
}

// Deselect pushes an empty selection
func (s *Session) Deselect() {
	s.selection.Push(measure.NoSelection())
}

// Back returns to the previous selection
func (s *Session) Back() error {
	_, err := s.selection.Pop()
	return err
}

// Selected resolves the active selection against the current line
func (s *Session) Selected() (measure.Anchor, error) {
	ctx, err := s.selection.Last()
	if err != nil {
		return measure.Anchor{}, err
	}
	a, ok := ctx.Resolve(s.current)
	if !ok {
		return measure.Anchor{}, ErrNoSelection
	}
	return a, nil
}

func (s *Session) anchor(id measure.AnchorID) (measure.Anchor, int) {
	i, ok := s.current.IndexOf(id)
	if !ok {
		return measure.Anchor{}, -1
	}
	a, _ := s.current.At(i)
	return a, i
}

// Move re-snaps an anchor of the current line to a new pick, keeping its
// place in the line. A selection of the moved anchor follows it.
func (s *Session) Move(id measure.AnchorID, ev measure.PickEvent) (measure.Anchor, error) {
	_, i := s.anchor(id)
	if i < 0 {
		return measure.Anchor{}, fmt.Errorf("move anchor %d: %w", id, ErrUnknownAnchor)
	}

	moved := s.snapper.CreateAnchorFromPick(ev)
	if err := s.current.SetAnchor(i, moved); err != nil {
		return measure.Anchor{}, err
	}

	if ctx, err := s.selection.Last(); err == nil {
		if selected, ok := ctx.AnchorID(); ok && selected == id {
			s.selection.Push(measure.SelectAnchor(moved))
		}
	}

	s.log.Debug().Uint64("from", uint64(id)).Uint64("to", uint64(moved.ID())).Int("index", i).Msg("move")
	return moved, nil
}

// Commit stores the current line and starts a new one
func (s *Session) Commit() (*measure.Line, error) {
	if s.current.Len() < 2 {
		return nil, fmt.Errorf("commit line with %d anchors: %w", s.current.Len(), measure.ErrInsufficientPoints)
	}

	line := s.current
	s.lines = append(s.lines, line)
	s.selection.Reset()
	s.startLine()

	s.log.Info().
		Str("line", line.ID.String()).
		Int("anchors", line.Len()).
		Str("length", units.Format(line.Length(), s.opts.Unit)).
		Msg("commit")
	return line, nil
}

// Cancel discards the anchors of the current line
func (s *Session) Cancel() {
	s.current.Clear()
	s.selection.Reset()
	s.log.Debug().Str("line", s.current.ID.String()).Msg("cancel")
}
