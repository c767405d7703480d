package measure

// SelectionContext records which anchor is the focus of user interaction.
// It refers to the anchor by id and never owns it.
type SelectionContext struct {
	anchor AnchorID
	valid  bool
}

// SelectAnchor returns a context focused on a
func SelectAnchor(a Anchor) SelectionContext {
	return SelectionContext{anchor: a.id, valid: true}
}

// NoSelection returns a context without a selected anchor
func NoSelection() SelectionContext {
	return SelectionContext{}
}

// AnchorID returns the referenced id; ok is false for an empty context
func (c SelectionContext) AnchorID() (id AnchorID, ok bool) {
	return c.anchor, c.valid
}

// Resolve looks the referenced anchor up in line. A reference into a line
// that has since been cleared or edited resolves to no anchor.
func (c SelectionContext) Resolve(line *Line) (Anchor, bool) {
	if !c.valid || line == nil {
		return Anchor{}, false
	}
	i, ok := line.IndexOf(c.anchor)
	if !ok {
		return Anchor{}, false
	}
	return line.anchors[i], true
}

// SelectionStack is the per-session history of selection contexts.
// The last pushed context is the active one.
type SelectionStack struct {
	contexts []SelectionContext
}

// NewSelectionStack creates an empty stack
func NewSelectionStack() *SelectionStack {
	return &SelectionStack{}
}

// Push makes ctx the active context
func (s *SelectionStack) Push(ctx SelectionContext) {
	s.contexts = append(s.contexts, ctx)
}

// Last returns the active context
func (s *SelectionStack) Last() (SelectionContext, error) {
	if len(s.contexts) == 0 {
		return SelectionContext{}, ErrEmptyStack
	}
	return s.contexts[len(s.contexts)-1], nil
}

// Pop removes and returns the active context
func (s *SelectionStack) Pop() (SelectionContext, error) {
	ctx, err := s.Last()
	if err != nil {
		return ctx, err
	}
	s.contexts = s.contexts[:len(s.contexts)-1]
	return ctx, nil
}

// Len returns the stack depth
func (s *SelectionStack) Len() int {
	return len(s.contexts)
}

// Reset drops every context
func (s *SelectionStack) Reset() {
	s.contexts = nil
}
