// Package tree implements the container-tree mutation primitives: the only
// supported way to add, remove, replace, and swap nodes in the root→output→
// workspace→container/view tree. Every mutation keeps parent back-links and
// focus pointers consistent and, for auto-laid-out parents, rebalances
// sibling ratios along the minor axis so an arrange pass doesn't need to
// guess at sizes for untouched siblings.
//
// On an invariant violation the call returns without mutating the tree.
// AddChild, InsertChild, AddFloating and AddSibling also log it at error
// level; RemoveChild, ReplaceChild and SwapContainer take no context and
// return without logging. Violations indicate a caller bug, never a user
// error, so there is nothing to retry.
package tree

import (
	"context"

	"github.com/bnema/layoutcore/internal/application/port"
	"github.com/bnema/layoutcore/internal/core/autogroup"
	"github.com/bnema/layoutcore/internal/domain/entity"
	"github.com/bnema/layoutcore/internal/logging"
)

// AddChild appends c to parent's tiled children, wrapping c in a new
// Tabbed/Stacked container first if parent is a Workspace whose
// workspace_layout calls for it.
func AddChild(ctx context.Context, parent, c *entity.Node) {
	log := logging.FromContext(ctx)
	if parent == nil || c == nil {
		log.Error().Msg("add_child: nil parent or child")
		return
	}

	c.Parent = parent
	parent.Children = append(parent.Children, c)
	if parent.Focused == nil {
		parent.Focused = c
	}

	wrapIfTabbedWorkspace(ctx, parent, c)
}

// wrapIfTabbedWorkspace wraps a View just attached to a Workspace in a new
// Container carrying the workspace's inherited layout, when that layout is
// Tabbed or Stacked.
func wrapIfTabbedWorkspace(ctx context.Context, parent, c *entity.Node) {
	if parent.Kind != entity.KindWorkspace || c.Kind != entity.KindView {
		return
	}
	if parent.WorkspaceLayout != entity.LayoutTabbed && parent.WorkspaceLayout != entity.LayoutStacked {
		return
	}

	idx := c.Index()
	if idx < 0 {
		return
	}
	wrapper := entity.NewNode(c.ID+"-wrap", entity.KindContainer)
	wrapper.Layout = parent.WorkspaceLayout
	wrapper.Parent = parent
	wrapper.Children = []*entity.Node{c}
	wrapper.Focused = c
	wrapper.X, wrapper.Y, wrapper.W, wrapper.H = c.X, c.Y, c.W, c.H

	parent.Children[idx] = wrapper
	c.Parent = wrapper
	if parent.Focused == c {
		parent.Focused = wrapper
	}
}

// InsertChild inserts c into parent's children at index i (clamped into
// [0, |children|]), rebalancing the affected auto-layout group's minor-axis
// sizes so existing siblings keep their ratios and the new child gets a
// fair share.
func InsertChild(ctx context.Context, parent, c *entity.Node, i int) {
	log := logging.FromContext(ctx)
	if parent == nil || c == nil {
		log.Error().Msg("insert_child: nil parent or child")
		return
	}

	if i > len(parent.Children) {
		i = len(parent.Children)
	}
	if i < 0 {
		i = 0
	}

	c.Parent = parent
	parent.Children = append(parent.Children, nil)
	copy(parent.Children[i+1:], parent.Children[i:])
	parent.Children[i] = c

	if parent.Focused == nil {
		parent.Focused = c
	}

	wrapIfTabbedWorkspace(ctx, parent, c)

	if entity.IsAutoLayout(parent.Layout) {
		rebalanceOnInsert(parent, c, i)
	}
}

// rebalanceOnInsert replays the insert-side half of the auto-layout
// minor-axis rebalance: each affected group's first child inherits the
// group's existing major-axis extent, and its minor-axis extent is
// recomputed as the parent's minor dimension minus the other siblings',
// budgeting the newly inserted child a fair (parent minor)/group_size share.
func rebalanceOnInsert(parent, inserted *entity.Node, from int) {
	majDim, minDim := axisAccessors(parent.Layout)

	for i := from; i < len(parent.Children); {
		start := autogroup.StartIndex(parent, i)
		end := autogroup.EndIndex(parent, i)
		first := parent.Children[start]

		if start+1 < len(parent.Children) {
			*majDim(first) = *majDim(parent.Children[start+1])
		} else {
			first.W, first.H = 0, 0
			break
		}

		remaining := *minDim(parent)
		groupSize := end - start
		for j := end - 1; j > start; j-- {
			sibling := parent.Children[j]
			if sibling == inserted {
				remaining -= *minDim(parent) / float64(groupSize)
			} else {
				remaining -= *minDim(sibling)
			}
		}
		*minDim(first) = remaining
		i = end
	}
}

// AddFloating attaches c to ws's floating list and marks it floating.
func AddFloating(ctx context.Context, ws, c *entity.Node, events port.EventSink) {
	log := logging.FromContext(ctx)
	if ws.Kind != entity.KindWorkspace {
		log.Error().Msg("add_floating: target is not a workspace")
		return
	}

	c.Parent = ws
	c.IsFloating = true
	ws.Floating = append(ws.Floating, c)
	if ws.Focused == nil {
		ws.Focused = c
	}

	if events != nil {
		events.WindowFloating(c)
	}
}

// AddSibling inserts active adjacent to anchor in anchor's parent. In an
// auto layout the new child is appended (groups rebalance on the next
// arrange); otherwise it is inserted immediately after anchor. A
// floating/tiled mismatch between anchor and active routes active to the
// list matching active's own kind.
func AddSibling(ctx context.Context, anchor, active *entity.Node) {
	log := logging.FromContext(ctx)
	parent := anchor.Parent
	if parent == nil {
		log.Error().Msg("add_sibling: anchor has no parent")
		return
	}

	active.Parent = parent
	if active.IsFloating {
		parent.Floating = append(parent.Floating, active)
	} else if entity.IsAutoLayout(parent.Layout) {
		parent.Children = append(parent.Children, active)
	} else {
		idx := anchor.Index()
		InsertChild(ctx, parent, active, idx+1)
		parent.Focused = active
		return
	}

	parent.Focused = active
}

// ReplaceChild swaps new in at old's position, preserving parent focus and
// transferring old's geometry to new. old is left detached with its size
// zeroed; if old is a View its ACTIVATED state is cleared on the
// compositor.
func ReplaceChild(old, newChild *entity.Node, sink port.ViewSink) {
	parent := old.Parent
	if parent == nil {
		return
	}

	i := old.Index()
	if i < 0 {
		return
	}
	if old.IsFloating {
		parent.Floating[i] = newChild
	} else {
		parent.Children[i] = newChild
	}

	newChild.Parent = parent
	newChild.IsFloating = old.IsFloating
	if parent.Focused == old {
		parent.Focused = newChild
	}
	old.Parent = nil

	newChild.X, newChild.Y, newChild.W, newChild.H = old.X, old.Y, old.W, old.H
	old.W, old.H = 0, 0

	if old.Kind == entity.KindView && sink != nil {
		sink.SetState(old.Handle, entity.StateActivated, false)
	}
}

// RemoveChild detaches c from its parent's list, runs the auto-layout
// inverse rebalance, falls focus back to the left neighbor (or the last
// floating view, or None), and clears a removed View's ACTIVATED state.
func RemoveChild(c *entity.Node, sink port.ViewSink) *entity.Node {
	parent := c.Parent
	if parent == nil {
		return nil
	}

	var removedIdx int
	if c.IsFloating {
		removeFromSlice(&parent.Floating, c)
		removedIdx = 0
	} else {
		removedIdx = removeFromSlice(&parent.Children, c)
		if entity.IsAutoLayout(parent.Layout) && len(parent.Children) > 0 {
			rebalanceOnRemove(parent, c, removedIdx)
		}
	}

	if parent.Focused == c {
		switch {
		case len(parent.Children) > 0:
			fallback := removedIdx - 1
			if fallback < 0 {
				fallback = 0
			}
			parent.Focused = parent.Children[fallback]
		case len(parent.Floating) > 0:
			parent.Focused = parent.Floating[len(parent.Floating)-1]
		default:
			parent.Focused = nil
		}
	}

	c.Parent = nil
	if c.Kind == entity.KindView && sink != nil {
		sink.SetState(c.Handle, entity.StateActivated, false)
	}
	return parent
}

// rebalanceOnRemove replays the remove-side half of the auto-layout
// minor-axis rebalance: the first child of each affected group inherits the
// major-axis extent of the removed element (or of the element now at the
// group boundary), and the last child of each non-terminal group absorbs
// the remaining minor-axis pixels.
func rebalanceOnRemove(parent, removed *entity.Node, removedIdx int) {
	majDim, minDim := axisAccessors(parent.Layout)

	for j := len(parent.Children) - 1; j >= removedIdx; {
		start := autogroup.StartIndex(parent, j)
		end := autogroup.EndIndex(parent, j)
		first := parent.Children[start]

		switch {
		case removedIdx == start:
			*majDim(first) = *majDim(removed)
		case start > removedIdx:
			*majDim(first) = *majDim(parent.Children[start-1])
		}

		if end != len(parent.Children) {
			remaining := *minDim(parent)
			for k := start; k < end-1; k++ {
				remaining -= *minDim(parent.Children[k])
			}
			*minDim(parent.Children[end-1]) = remaining
		}
		j = start - 1
	}
}

// SwapContainer exchanges the tree positions (and parents) of a and b.
// Focus pointers in both (former) parents are rewritten so whichever of
// a, b was focused there is replaced by its counterpart; when a and b
// share a parent this is done via a single list swap to avoid a
// double-assignment race.
func SwapContainer(a, b *entity.Node) {
	if a == nil || b == nil || a.Parent == nil || b.Parent == nil {
		return
	}
	if a == b {
		return
	}

	pa, pb := a.Parent, b.Parent
	ia, ib := a.Index(), b.Index()
	if ia < 0 || ib < 0 {
		return
	}

	if pa == pb {
		listFor(pa, a)[ia], listFor(pb, b)[ib] = b, a
		a.Parent, b.Parent = pb, pa
		if pa.Focused == a {
			pa.Focused = b
		} else if pa.Focused == b {
			pa.Focused = a
		}
		return
	}

	listFor(pa, a)[ia] = b
	listFor(pb, b)[ib] = a
	a.Parent, b.Parent = pb, pa

	if pa.Focused == a {
		pa.Focused = b
	}
	if pb.Focused == b {
		pb.Focused = a
	}
}

// SwapGeometry exchanges a and b's logical (x,y,w,h), used alongside
// SwapContainer for move-first semantics.
func SwapGeometry(a, b *entity.Node) {
	a.X, b.X = b.X, a.X
	a.Y, b.Y = b.Y, a.Y
	a.W, b.W = b.W, a.W
	a.H, b.H = b.H, a.H
}

func listFor(parent, n *entity.Node) []*entity.Node {
	if n.IsFloating {
		return parent.Floating
	}
	return parent.Children
}

func removeFromSlice(list *[]*entity.Node, target *entity.Node) int {
	for i, n := range *list {
		if n == target {
			*list = append((*list)[:i], (*list)[i+1:]...)
			return i
		}
	}
	return 0
}

// axisAccessors returns the major- and minor-axis dimension accessors for an
// auto layout: width/height for AutoLeft/AutoRight, height/width for
// AutoTop/AutoBottom.
func axisAccessors(layout entity.Layout) (maj, min func(*entity.Node) *float64) {
	if layout == entity.LayoutAutoLeft || layout == entity.LayoutAutoRight {
		return widthOf, heightOf
	}
	return heightOf, widthOf
}

func widthOf(n *entity.Node) *float64  { return &n.W }
func heightOf(n *entity.Node) *float64 { return &n.H }
