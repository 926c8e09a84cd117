// Package direction implements get_in_direction: focus-preserving
// navigation across sibling lists, auto-layout groups, and outputs,
// including the wrap-candidate/force_focus_wrapping contract and the
// fullscreen short-circuits.
package direction

import (
	"github.com/bnema/layoutcore/internal/application/port"
	"github.com/bnema/layoutcore/internal/core/autogroup"
	"github.com/bnema/layoutcore/internal/domain/entity"
)

// GetInDirection returns the node that should receive focus when navigating
// from c in dir, or nil if there is none. Returning nil is the ordinary
// "no neighbor" signal, not an error.
func GetInDirection(c *entity.Node, dir entity.Direction, cfg entity.Config, topo port.OutputTopology) *entity.Node {
	switch dir {
	case entity.DirChild:
		return c.Focused
	case entity.DirParent:
		if c.Parent == nil || c.Parent.Kind == entity.KindOutput {
			return nil
		}
		return c.Parent
	case entity.DirNext, entity.DirPrev:
		return cyclicSibling(c, dir)
	}

	if c.Kind == entity.KindView && c.Fullscreen {
		return outputAdjacencyStep(c.NearestOutput(), dir, topo)
	}
	if c.Kind == entity.KindWorkspace {
		if fs := fullscreenChild(c); fs != nil {
			return fs
		}
	}

	container := c
	parent := container.Parent
	var wrapCandidate *entity.Node

	for {
		if parent.Kind == entity.KindRoot {
			return outputAdjacencyStep(container, dir, topo)
		}

		idx := container.Index()
		canMove, desired := stepTarget(parent, idx, dir)

		if canMove {
			if container.IsFloating {
				return wrapFloating(parent, desired)
			}
			if desired < 0 || desired >= len(parent.Children) {
				canMove = false
				n := len(parent.Children)
				if wrapCandidate == nil && n > 1 {
					if desired < 0 {
						wrapCandidate = parent.Children[n-1]
					} else {
						wrapCandidate = parent.Children[0]
					}
					if cfg.ForceFocusWrapping {
						return wrapCandidate
					}
				}
			} else {
				return parent.Children[desired]
			}
		}

		if !canMove {
			container = parent
			parent = parent.Parent
			if parent == nil {
				return wrapCandidate
			}
		}
	}
}

// stepTarget decides, for container's parent, whether dir has a candidate
// sibling index and what it is: group-relative for auto layouts, plain
// adjacency for Horiz/Tabbed (left/right) and Vert/Stacked (up/down).
func stepTarget(parent *entity.Node, idx int, dir entity.Direction) (canMove bool, desired int) {
	if entity.IsAutoLayout(parent.Layout) {
		isMajor := (dir.IsHorizontal() && entity.IsHorizontalLayout(parent.Layout)) ||
			(dir.IsVertical() && entity.IsVerticalLayout(parent.Layout))
		delta := -1
		if dir == entity.DirRight || dir == entity.DirDown {
			delta = 1
		}
		gidx := autogroup.Index(parent, idx)
		if isMajor {
			start, _, ok := autogroup.Bounds(parent, gidx+delta)
			return ok, start
		}
		desired = idx + delta
		start, end, ok := autogroup.Bounds(parent, gidx)
		return ok && desired >= start && desired < end, desired
	}

	switch {
	case dir.IsHorizontal():
		if parent.Layout == entity.LayoutHoriz || parent.Layout == entity.LayoutTabbed {
			delta := -1
			if dir == entity.DirRight {
				delta = 1
			}
			return true, idx + delta
		}
	case dir.IsVertical():
		if parent.Layout == entity.LayoutVert || parent.Layout == entity.LayoutStacked {
			delta := -1
			if dir == entity.DirDown {
				delta = 1
			}
			return true, idx + delta
		}
	}
	return false, 0
}

func wrapFloating(parent *entity.Node, desired int) *entity.Node {
	n := len(parent.Floating)
	if n == 0 {
		return nil
	}
	switch {
	case desired < 0:
		return parent.Floating[n-1]
	case desired >= n:
		return parent.Floating[0]
	default:
		return parent.Floating[desired]
	}
}

func cyclicSibling(c *entity.Node, dir entity.Direction) *entity.Node {
	if c.Parent == nil {
		return nil
	}
	list := c.Parent.Children
	if c.IsFloating {
		list = c.Parent.Floating
	}
	idx := c.Index()
	n := len(list)
	if idx < 0 || n == 0 {
		return nil
	}
	delta := -1
	if dir == entity.DirNext {
		delta = 1
	}
	desired := (idx + delta) % n
	if desired < 0 {
		desired += n
	}
	return list[desired]
}

// outputAdjacencyStep consults the compositor's output-adjacency oracle and,
// if a neighbor exists, descends into it via the deterministic rule of
// rule below.
func outputAdjacencyStep(fromOutput *entity.Node, dir entity.Direction, topo port.OutputTopology) *entity.Node {
	if fromOutput == nil || topo == nil {
		return nil
	}
	adjHandle, ok := topo.AdjacentOutput(fromOutput.Handle, dir)
	if !ok {
		return nil
	}
	root := rootOf(fromOutput)
	if root == nil {
		return nil
	}
	adjacent := findOutputByHandle(root, adjHandle)
	if adjacent == nil || adjacent == fromOutput {
		return nil
	}
	return descendIntoOutput(adjacent, dir)
}

// descendIntoOutput picks the node that receives focus when navigating onto
// a newly entered output: for Left, the focused workspace's last child; for
// Right, its first; for Up/Down, when the focused view's parent is Vert,
// that parent's last child (Up) or first child (Down), else the focused
// view itself.
func descendIntoOutput(output *entity.Node, dir entity.Direction) *entity.Node {
	ws := output.Focused
	if ws == nil || len(ws.Children) == 0 {
		return output
	}

	switch dir {
	case entity.DirLeft:
		return ws.Children[len(ws.Children)-1]
	case entity.DirRight:
		return ws.Children[0]
	case entity.DirUp, entity.DirDown:
		fv := focusedLeaf(ws)
		if fv == nil || fv.Parent == nil {
			return fv
		}
		parent := fv.Parent
		if parent.Layout == entity.LayoutVert {
			if dir == entity.DirUp {
				return parent.Children[len(parent.Children)-1]
			}
			return parent.Children[0]
		}
		return fv
	default:
		return output
	}
}

// focusedLeaf walks a subtree's focus chain down to the focused View.
func focusedLeaf(n *entity.Node) *entity.Node {
	for n != nil && n.Kind != entity.KindView {
		if n.Focused == nil {
			return n
		}
		n = n.Focused
	}
	return n
}

// fullscreenChild returns ws's fullscreen View, if any (tiled or floating).
func fullscreenChild(ws *entity.Node) *entity.Node {
	var found *entity.Node
	ws.Walk(func(n *entity.Node) bool {
		if n.Kind == entity.KindView && n.Fullscreen {
			found = n
			return false
		}
		return true
	})
	if found != nil {
		return found
	}
	for _, f := range ws.Floating {
		if f.Fullscreen {
			return f
		}
	}
	return nil
}

func rootOf(n *entity.Node) *entity.Node {
	ancestors := n.Ancestors()
	if len(ancestors) == 0 {
		return nil
	}
	return ancestors[len(ancestors)-1]
}

func findOutputByHandle(root *entity.Node, handle uintptr) *entity.Node {
	for _, output := range root.Children {
		if output.Handle == handle {
			return output
		}
	}
	return nil
}
