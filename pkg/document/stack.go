package document

import (
	"errors"
	"slices"

	"github.com/inklab/inkdoc/pkg/blend"
	"github.com/inklab/inkdoc/pkg/effect"
)

var (
	// ErrUnknownNode is returned when an operation references a node ID
	// that does not exist in the stack.
	ErrUnknownNode = errors.New("unknown node")

	// ErrNotGroup is returned by [Stack.MoveToGroup], [Stack.Ungroup] and
	// [Stack.DeleteGroup] when the target ID references a non-group node.
	ErrNotGroup = errors.New("node is not a group")

	// ErrSelfParent is returned by [Stack.MoveToGroup] when a node would
	// become its own parent.
	ErrSelfParent = errors.New("node cannot be its own parent")

	// ErrWouldCycle is returned by [Stack.MoveToGroup] when the target
	// group is a descendant of the node being moved.
	ErrWouldCycle = errors.New("move would create a cycle")

	// ErrDanglingParent is returned by [Stack.Validate] when a node's
	// ParentID references a missing or non-group node. This indicates
	// data corruption; loaders repair it by reparenting to root.
	ErrDanglingParent = errors.New("dangling parent reference")

	// ErrParentCycle is returned by [Stack.Validate] when the parent
	// relation contains a cycle.
	ErrParentCycle = errors.New("parent relation contains a cycle")

	// ErrEffectIndex is returned by [Stack.RemoveEffect] when the effect
	// index is out of range.
	ErrEffectIndex = errors.New("effect index out of range")
)

// Stack is the single source of truth for node existence, hierarchy and
// derived state. Nodes live in a flat arena keyed by ID; an ordered ID
// slice encodes document-wide z-order (later = higher, topmost last).
// Parent/child queries are computed on demand from the ID back-reference,
// never from stored child lists.
//
// All mutations are synchronous and atomic with respect to each other.
// Stack is not safe for concurrent use without external synchronization;
// the editor drives it from a single event loop.
type Stack struct {
	nodes  map[string]*Node
	order  []string // bottom-to-top z-order
	notify func(op string) // invoked after every successful mutation
}

// NewStack creates an empty layer stack.
func NewStack() *Stack {
	return &Stack{nodes: make(map[string]*Node)}
}

// OnMutate registers a callback invoked after every successful mutation
// with the name of the operation that ran. The owning document uses this
// to maintain its modified flag and to emit observability events.
func (s *Stack) OnMutate(fn func(op string)) { s.notify = fn }

func (s *Stack) mutated(op string) {
	if s.notify != nil {
		s.notify(op)
	}
}

// Len returns the number of nodes in the stack.
func (s *Stack) Len() int { return len(s.order) }

// Nodes returns all nodes in document sequence order (bottom to top).
// The returned slice is freshly allocated; the nodes are not copies.
func (s *Stack) Nodes() []*Node {
	out := make([]*Node, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.nodes[id])
	}
	return out
}

// Node returns the node with the given ID, or false if it does not exist.
func (s *Stack) Node(id string) (*Node, bool) {
	n, ok := s.nodes[id]
	return n, ok
}

// Index returns the node's position in the document-wide sequence, or -1
// if the ID is unknown.
func (s *Stack) Index(id string) int {
	return slices.Index(s.order, id)
}

// =============================================================================
// Node Creation
// =============================================================================

// NodeOption customizes a node created by [Stack.AddLayer] or
// [Stack.CreateGroup].
type NodeOption func(*Node)

// WithKind overrides the node kind of an added layer (vector, svg).
func WithKind(k Kind) NodeOption { return func(n *Node) { n.Kind = k } }

// WithParent places the node inside the given group at creation time.
// A missing or non-group parent leaves the node at document root.
func WithParent(groupID string) NodeOption {
	return func(n *Node) { n.ParentID = groupID }
}

// WithOpacity sets the node's own opacity, clamped to [0,1].
func WithOpacity(v float64) NodeOption {
	return func(n *Node) { n.Opacity = clamp01(v) }
}

// WithBlend sets the node's compositing mode.
func WithBlend(m blend.Mode) NodeOption {
	return func(n *Node) { n.Blend = blend.Normalize(m) }
}

// WithHidden creates the node invisible.
func WithHidden() NodeOption { return func(n *Node) { n.Visible = false } }

// WithLocked creates the node locked.
func WithLocked() NodeOption { return func(n *Node) { n.Locked = true } }

// WithOffset sets the content offset.
func WithOffset(x, y float64) NodeOption {
	return func(n *Node) { n.OffsetX, n.OffsetY = x, y }
}

// WithShapes sets the vector shape content.
func WithShapes(shapes []Shape) NodeOption {
	return func(n *Node) { n.Shapes = shapes }
}

// WithSource sets embedded content markup (svg layers).
func WithSource(markup string) NodeOption {
	return func(n *Node) { n.Source = markup }
}

// WithSourceRef sets an out-of-band payload reference and format tag.
func WithSourceRef(ref, format string) NodeOption {
	return func(n *Node) { n.SourceRef, n.Format = ref, format }
}

// AddLayer creates a new content layer with the given overrides and
// appends it at the top of the document sequence. Defaults mirror group
// defaults except normal blending. Never fails.
func (s *Stack) AddLayer(name string, opts ...NodeOption) *Node {
	n := newLayer(name, KindLayer)
	for _, opt := range opts {
		opt(n)
	}
	s.sanitizeParent(n)
	s.attach(n)
	s.mutated("addLayer")
	return n
}

// CreateGroup creates a new empty group appended at the end of its
// sibling scope. Never fails; an invalid parent leaves the group at root.
func (s *Stack) CreateGroup(name string, opts ...NodeOption) *Node {
	n := newGroup(name)
	for _, opt := range opts {
		opt(n)
	}
	s.sanitizeParent(n)
	s.attach(n)
	s.mutated("createGroup")
	return n
}

// CreateGroupFromLayers creates a new group positioned at the location of
// the first listed node, then reparents each listed node into it,
// preserving their relative order. The group inherits the first node's
// parent scope. IDs that do not resolve are skipped. Returns nil when no
// listed ID resolves.
func (s *Stack) CreateGroupFromLayers(ids []string, name string) *Node {
	var members []*Node
	for _, id := range ids {
		if n, ok := s.nodes[id]; ok {
			members = append(members, n)
		}
	}
	if len(members) == 0 {
		return nil
	}

	first := members[0]
	g := newGroup(name)
	g.ParentID = first.ParentID

	at := s.Index(first.ID)
	s.nodes[g.ID] = g
	s.order = slices.Insert(s.order, at, g.ID)

	for _, m := range members {
		m.ParentID = g.ID
	}
	s.mutated("createGroupFromLayers")
	return g
}

// sanitizeParent clears a ParentID that does not reference an existing
// group, keeping the parent-must-be-group invariant at creation time.
func (s *Stack) sanitizeParent(n *Node) {
	if n.ParentID == "" {
		return
	}
	p, ok := s.nodes[n.ParentID]
	if !ok || !p.IsGroup() {
		n.ParentID = ""
	}
}

// attach appends the node to the arena and the top of the sequence.
func (s *Stack) attach(n *Node) {
	s.nodes[n.ID] = n
	s.order = append(s.order, n.ID)
}

// Attach inserts an externally constructed node (deserialization) at the
// top of the sequence. The dirty callback is not invoked; loading a
// document does not modify it. Callers attach all nodes first and then
// run [Stack.Repair], since a child record may precede its parent in the
// sequence.
func (s *Stack) Attach(n *Node) {
	s.attach(n)
}

// Repair clears ParentID references that do not resolve to an existing
// group, turning the affected nodes into root-level nodes. It returns the
// number of repaired nodes. Loaders call this after attaching every node.
func (s *Stack) Repair() int {
	repaired := 0
	for _, id := range s.order {
		n := s.nodes[id]
		if n.ParentID == "" {
			continue
		}
		p, ok := s.nodes[n.ParentID]
		if !ok || !p.IsGroup() {
			n.ParentID = ""
			repaired++
		}
	}
	return repaired
}

// =============================================================================
// Hierarchy Queries
// =============================================================================

// Children returns the direct children of the given group ID, or the
// root-level nodes when parentID is empty, in sequence order.
func (s *Stack) Children(parentID string) []*Node {
	var out []*Node
	for _, id := range s.order {
		if n := s.nodes[id]; n.ParentID == parentID {
			out = append(out, n)
		}
	}
	return out
}

// Descendants returns all transitive children of a group in pre-order,
// not including the group itself.
func (s *Stack) Descendants(id string) []*Node {
	var out []*Node
	for _, child := range s.Children(id) {
		out = append(out, child)
		if child.IsGroup() {
			out = append(out, s.Descendants(child.ID)...)
		}
	}
	return out
}

// isDescendant reports whether candidate is a transitive child of
// ancestorID, walking the parent chain with a cycle guard.
func (s *Stack) isDescendant(candidate *Node, ancestorID string) bool {
	seen := make(map[string]bool)
	for cur := candidate; cur != nil && cur.ParentID != ""; {
		if seen[cur.ID] {
			return false // corrupt parent chain; treat as unrelated
		}
		seen[cur.ID] = true
		if cur.ParentID == ancestorID {
			return true
		}
		cur = s.nodes[cur.ParentID]
	}
	return false
}

// =============================================================================
// Structural Mutations
// =============================================================================

// MoveToGroup reparents id under groupID and repositions it as the last
// child of the new parent scope.
//
// The move is rejected, leaving the tree unchanged, when id equals
// groupID ([ErrSelfParent]), when groupID is a descendant of id
// ([ErrWouldCycle]), or when groupID does not reference an existing group
// ([ErrUnknownNode], [ErrNotGroup]).
func (s *Stack) MoveToGroup(id, groupID string) error {
	n, ok := s.nodes[id]
	if !ok {
		return ErrUnknownNode
	}
	if id == groupID {
		return ErrSelfParent
	}
	g, ok := s.nodes[groupID]
	if !ok {
		return ErrUnknownNode
	}
	if !g.IsGroup() {
		return ErrNotGroup
	}
	if s.isDescendant(g, id) {
		return ErrWouldCycle
	}

	n.ParentID = groupID
	// Last child of the new scope: move to the top of the sequence so the
	// node orders after every existing sibling.
	s.reorder(s.Index(id), len(s.order)-1)
	s.mutated("moveToGroup")
	return nil
}

// RemoveFromGroup moves the node to document root, preserving its other
// properties and sequence position.
func (s *Stack) RemoveFromGroup(id string) error {
	n, ok := s.nodes[id]
	if !ok {
		return ErrUnknownNode
	}
	if n.ParentID == "" {
		return nil
	}
	n.ParentID = ""
	s.mutated("removeFromGroup")
	return nil
}

// Ungroup reparents every direct child of groupID to the group's own
// parent (root if none), preserving relative order, then deletes the
// now-empty group. The group's own effects and properties are discarded,
// not propagated to the children.
func (s *Stack) Ungroup(groupID string) error {
	g, ok := s.nodes[groupID]
	if !ok {
		return ErrUnknownNode
	}
	if !g.IsGroup() {
		return ErrNotGroup
	}
	for _, child := range s.Children(groupID) {
		child.ParentID = g.ParentID
	}
	s.detach(groupID)
	s.mutated("ungroup")
	return nil
}

// DeleteGroup removes the group. With deleteChildren false, direct
// children are reparented to the group's parent first and survive; with
// true, the group's entire descendant subtree is removed with it.
func (s *Stack) DeleteGroup(groupID string, deleteChildren bool) error {
	g, ok := s.nodes[groupID]
	if !ok {
		return ErrUnknownNode
	}
	if !g.IsGroup() {
		return ErrNotGroup
	}

	if deleteChildren {
		for _, d := range s.Descendants(groupID) {
			s.detach(d.ID)
		}
	} else {
		for _, child := range s.Children(groupID) {
			child.ParentID = g.ParentID
		}
	}
	s.detach(groupID)
	s.mutated("deleteGroup")
	return nil
}

// Delete removes a single non-group node. Deleting a group goes through
// [Stack.DeleteGroup] so the children policy is always explicit.
func (s *Stack) Delete(id string) error {
	n, ok := s.nodes[id]
	if !ok {
		return ErrUnknownNode
	}
	if n.IsGroup() {
		return s.DeleteGroup(id, false)
	}
	s.detach(id)
	s.mutated("delete")
	return nil
}

// detach removes the node from the arena and the sequence.
func (s *Stack) detach(id string) {
	delete(s.nodes, id)
	if i := slices.Index(s.order, id); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
}

// =============================================================================
// Z-Order
// =============================================================================

// MoveUp swaps the node at index with the next-higher sequence slot.
// Returns false (no-op) at the top boundary or for an invalid index.
func (s *Stack) MoveUp(index int) bool {
	if index < 0 || index >= len(s.order)-1 {
		return false
	}
	s.order[index], s.order[index+1] = s.order[index+1], s.order[index]
	s.mutated("moveUp")
	return true
}

// MoveDown swaps the node at index with the next-lower sequence slot.
// Returns false (no-op) at the bottom boundary or for an invalid index.
func (s *Stack) MoveDown(index int) bool {
	if index <= 0 || index >= len(s.order) {
		return false
	}
	s.order[index], s.order[index-1] = s.order[index-1], s.order[index]
	s.mutated("moveDown")
	return true
}

// MoveToTop relocates the node at index to the last (topmost) slot.
func (s *Stack) MoveToTop(index int) bool {
	if index < 0 || index >= len(s.order) {
		return false
	}
	if index == len(s.order)-1 {
		return false
	}
	s.reorder(index, len(s.order)-1)
	s.mutated("moveToTop")
	return true
}

// MoveToBottom relocates the node at index to the first (bottom) slot.
func (s *Stack) MoveToBottom(index int) bool {
	if index <= 0 || index >= len(s.order) {
		return false
	}
	s.reorder(index, 0)
	s.mutated("moveToBottom")
	return true
}

// reorder moves the sequence entry at from to position to, shifting the
// entries in between.
func (s *Stack) reorder(from, to int) {
	if from == to || from < 0 || from >= len(s.order) {
		return
	}
	id := s.order[from]
	s.order = slices.Delete(s.order, from, from+1)
	s.order = slices.Insert(s.order, to, id)
}

// =============================================================================
// Property Writes
// =============================================================================

// ToggleVisibility flips the node's own visibility flag.
func (s *Stack) ToggleVisibility(id string) error {
	n, ok := s.nodes[id]
	if !ok {
		return ErrUnknownNode
	}
	n.Visible = !n.Visible
	s.mutated("toggleVisibility")
	return nil
}

// ToggleLocked flips the node's own lock flag.
func (s *Stack) ToggleLocked(id string) error {
	n, ok := s.nodes[id]
	if !ok {
		return ErrUnknownNode
	}
	n.Locked = !n.Locked
	s.mutated("toggleLocked")
	return nil
}

// ToggleExpanded flips a group's persisted collapse state. It has no
// rendering effect.
func (s *Stack) ToggleExpanded(id string) error {
	n, ok := s.nodes[id]
	if !ok {
		return ErrUnknownNode
	}
	if !n.IsGroup() {
		return ErrNotGroup
	}
	n.Expanded = !n.Expanded
	s.mutated("toggleExpanded")
	return nil
}

// Rename sets the node's display name.
func (s *Stack) Rename(id, name string) error {
	n, ok := s.nodes[id]
	if !ok {
		return ErrUnknownNode
	}
	n.Name = name
	s.mutated("rename")
	return nil
}

// SetOpacity sets the node's own opacity, clamped to [0,1].
func (s *Stack) SetOpacity(id string, v float64) error {
	n, ok := s.nodes[id]
	if !ok {
		return ErrUnknownNode
	}
	n.Opacity = clamp01(v)
	s.mutated("setOpacity")
	return nil
}

// SetBlend sets the node's compositing mode. Unknown modes normalize to
// blend.Normal.
func (s *Stack) SetBlend(id string, m blend.Mode) error {
	n, ok := s.nodes[id]
	if !ok {
		return ErrUnknownNode
	}
	n.Blend = blend.Normalize(m)
	s.mutated("setBlend")
	return nil
}

// =============================================================================
// Effect Stack Edits
// =============================================================================

// AddEffect appends an effect to the node's stack.
func (s *Stack) AddEffect(id string, e effect.Effect) error {
	n, ok := s.nodes[id]
	if !ok {
		return ErrUnknownNode
	}
	n.Effects = append(n.Effects, e)
	s.mutated("addEffect")
	return nil
}

// RemoveEffect deletes the effect at the given insertion-order index.
// The effect is owned by the node and is unreachable afterwards.
func (s *Stack) RemoveEffect(id string, index int) error {
	n, ok := s.nodes[id]
	if !ok {
		return ErrUnknownNode
	}
	if index < 0 || index >= len(n.Effects) {
		return ErrEffectIndex
	}
	n.Effects = slices.Delete(n.Effects, index, index+1)
	s.mutated("removeEffect")
	return nil
}

// =============================================================================
// Effective (Inherited) State
// =============================================================================

// EffectivelyVisible reports whether the node and every ancestor group up
// to the root are visible.
func (s *Stack) EffectivelyVisible(n *Node) bool {
	if !n.Visible {
		return false
	}
	for _, a := range s.ancestors(n) {
		if !a.Visible {
			return false
		}
	}
	return true
}

// EffectivelyLocked reports whether the node or any ancestor group is
// locked.
func (s *Stack) EffectivelyLocked(n *Node) bool {
	if n.Locked {
		return true
	}
	for _, a := range s.ancestors(n) {
		if a.Locked {
			return true
		}
	}
	return false
}

// EffectiveOpacity multiplies the node's opacity with every ancestor
// group's opacity, except that a passthrough ancestor contributes a
// factor of 1.0 (its own opacity is ignored).
func (s *Stack) EffectiveOpacity(n *Node) float64 {
	o := n.Opacity
	for _, a := range s.ancestors(n) {
		if a.Passthrough() {
			continue
		}
		o *= a.Opacity
	}
	return o
}

// ancestors returns the parent chain from the node's parent up to the
// root. Dangling references terminate the walk (the node is treated as
// root-level); a corrupt cyclic chain terminates at the repeated node.
func (s *Stack) ancestors(n *Node) []*Node {
	var out []*Node
	seen := map[string]bool{n.ID: true}
	for cur := n; cur.ParentID != ""; {
		p, ok := s.nodes[cur.ParentID]
		if !ok || seen[p.ID] {
			break
		}
		seen[p.ID] = true
		out = append(out, p)
		cur = p
	}
	return out
}

// =============================================================================
// Consistency
// =============================================================================

// Validate checks the structural invariants: every ParentID references an
// existing group, and the parent relation is acyclic. It returns the
// first violation found, or nil.
func (s *Stack) Validate() error {
	for _, id := range s.order {
		n := s.nodes[id]
		if n.ParentID == "" {
			continue
		}
		p, ok := s.nodes[n.ParentID]
		if !ok || !p.IsGroup() {
			return ErrDanglingParent
		}
	}
	for _, id := range s.order {
		seen := make(map[string]bool)
		for cur := s.nodes[id]; cur != nil && cur.ParentID != ""; cur = s.nodes[cur.ParentID] {
			if seen[cur.ID] {
				return ErrParentCycle
			}
			seen[cur.ID] = true
		}
	}
	return nil
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
