package measure

// State is the creation policy state of a line
type State int

const (
	// Building accepts more anchors
	Building State = iota
	// Full holds the maximum number of anchors; the next pick restarts the line
	Full
)

// String returns the state name
func (s State) String() string {
	if s == Full {
		return "full"
	}
	return "building"
}

// Creator applies the max-N, clear-on-overflow policy to a line.
// The state is derived from the anchor count; maxPoints <= 0 never fills up.
type Creator struct {
	line      *Line
	maxPoints int
	snapper   Snapper
}

// NewCreator creates a policy for line. A two-point tool uses maxPoints=2.
func NewCreator(line *Line, maxPoints int, snapper Snapper) *Creator {
	if maxPoints < 0 {
		maxPoints = 0
	}
	return &Creator{
		line:      line,
		maxPoints: maxPoints,
		snapper:   snapper,
	}
}

// Line returns the line being built
func (c *Creator) Line() *Line {
	return c.line
}

// MaxPoints returns the bound, 0 when unbounded
func (c *Creator) MaxPoints() int {
	return c.maxPoints
}

// State returns Full once the line holds maxPoints anchors
func (c *Creator) State() State {
	if c.maxPoints > 0 && c.line.Len() >= c.maxPoints {
		return Full
	}
	return Building
}

// Pick accepts a pick event. A full line is cleared, discarding every prior
// anchor, before the new anchor is built and appended. restarted reports
// whether that happened.
func (c *Creator) Pick(ev PickEvent) (anchor Anchor, restarted bool) {
	if c.State() == Full {
		c.line.Clear()
		restarted = true
	}
	anchor = c.snapper.CreateAnchorFromPick(ev)
	c.line.Append(anchor)
	return anchor, restarted
}
