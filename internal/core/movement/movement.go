// Package movement implements move_container, move_container_to, and
// move_workspace_to: relocating a tiled or floating node one step in a
// direction, or wholesale to a destination container/output, always ending
// in a settled arrange pass and a "window moved" event.
package movement

import (
	"context"
	"fmt"

	"github.com/bnema/layoutcore/internal/application/port"
	"github.com/bnema/layoutcore/internal/core/arrange"
	"github.com/bnema/layoutcore/internal/core/autogroup"
	"github.com/bnema/layoutcore/internal/core/geom"
	"github.com/bnema/layoutcore/internal/core/tree"
	"github.com/bnema/layoutcore/internal/domain/entity"
	"github.com/bnema/layoutcore/internal/logging"
)

// Deps bundles movement's external collaborators: arrange.Deps for the
// re-arrange passes movement triggers, plus the output-adjacency oracle and
// the IPC event sink.
type Deps struct {
	arrange.Deps
	Topology port.OutputTopology
	Events   port.EventSink
}

// nextWorkspaceSeq is replaced per-Root in real deployments; the layout
// core itself has no naming policy, so synthesized
// workspaces here get a sequential placeholder name.
var nextWorkspaceSeq = 1

// MoveContainer moves c one step in dir. For a floating c, Left/Right/Up/
// Down translate (x,y) by amt, clamped to the output. For a tiled c, it
// climbs the tree until it finds a parent whose axis matches dir, swapping
// or detach-reinserting c there; failing that, it crosses to an adjacent
// output, or changes a single-child parent's layout and retries.
func MoveContainer(ctx context.Context, c *entity.Node, dir entity.Direction, amt float64, deps Deps) {
	if c.IsFloating {
		moveFloating(c, dir, amt, deps)
		return
	}
	if c.Kind != entity.KindView && c.Kind != entity.KindContainer {
		return
	}
	if dir == entity.DirFirst {
		moveFirst(ctx, c, deps)
		return
	}

	axis := dir.AxisLayout()
	child, parent := c, c.Parent
	if parent == nil {
		return
	}

	// A View wrapped solely to carry a title bar moves together with its
	// wrapper container; moving just the View would re-wrap it with no
	// net effect.
	if child.Kind == entity.KindView && parent.Kind == entity.KindContainer &&
		len(parent.Children) == 1 && parent.Parent != nil && parent.Parent.Kind == entity.KindWorkspace {
		child = parent
		parent = parent.Parent
	}

	ascended := false
	for {
		if axisMatches(parent, axis) {
			if newParent, moved := moveAtLevel(ctx, c, child, parent, dir, axis, ascended, deps); moved {
				parent = newParent
				break
			}
		}

		if len(parent.Children) == 1 && parent.Layout != axis && axis != entity.LayoutNone {
			parent.Layout = axis
			continue
		}

		if parent.Kind == entity.KindWorkspace {
			if crossOutput(ctx, c, parent, dir, deps) {
				return
			}
			if parent.Layout == axis {
				break
			}
			parent = wrapWorkspaceInContainer(parent, axis)
		}

		ascended = true
		child = parent
		parent = parent.Parent
		if parent == nil {
			break
		}
	}

	settle(ctx, c, parent, deps)
}

func moveFloating(c *entity.Node, dir entity.Direction, amt float64, deps Deps) {
	output := c.NearestOutput()
	if output == nil {
		return
	}
	switch dir {
	case entity.DirLeft:
		c.X = maxF(0, c.X-amt)
	case entity.DirRight:
		c.X = minF(output.W-c.W, c.X+amt)
	case entity.DirUp:
		c.Y = maxF(0, c.Y-amt)
	case entity.DirDown:
		c.Y = minF(output.H-c.H, c.Y+amt)
	}
	geom.Update(c, deps.Config, deps.Outputs, deps.Views)
}

// moveFirst swaps c with its auto-layout parent's first child, exchanging
// their geometries, and re-arranges the grandparent.
func moveFirst(ctx context.Context, c *entity.Node, deps Deps) {
	parent := c.Parent
	if parent == nil || !entity.IsAutoLayout(parent.Layout) {
		return
	}
	idx := c.Index()
	first := parent.Children[0]
	if idx > 0 {
		parent.Children[0], parent.Children[idx] = c, first
		tree.SwapGeometry(first, c)
	}
	arrange.Run(ctx, parent.Parent, -1, -1, deps.Deps)
	refocusChain(c, parent.Parent)
	if deps.Events != nil {
		deps.Events.WindowMoved(c)
	}
}

// axisMatches reports whether parent's layout is compatible with the
// requested movement axis: an exact match, Next/Prev accepting any
// Container/Workspace, Tabbed matching Horiz, Stacked matching Vert, or any
// auto layout.
func axisMatches(parent *entity.Node, axis entity.Layout) bool {
	return parent.Layout == axis ||
		(axis == entity.LayoutNone && (parent.Kind == entity.KindContainer || parent.Kind == entity.KindWorkspace)) ||
		(parent.Layout == entity.LayoutTabbed && axis == entity.LayoutHoriz) ||
		(parent.Layout == entity.LayoutStacked && axis == entity.LayoutVert) ||
		entity.IsAutoLayout(parent.Layout)
}

// moveAtLevel attempts the move at the current (child, parent) level. When
// the desired sibling is itself a Container, it returns that container as
// the new parent to descend into; otherwise it returns parent unchanged.
// moved is false when no legal index exists at this level, in which case
// the caller keeps climbing.
func moveAtLevel(ctx context.Context, c, child, parent *entity.Node, dir entity.Direction, axis entity.Layout, ascended bool, deps Deps) (newParent *entity.Node, moved bool) {
	diff := stepDiff(dir, ascended)
	idx := child.Index()
	desired := idx + diff

	if dir == entity.DirNext || dir == entity.DirPrev {
		n := len(parent.Children)
		switch {
		case desired < 0:
			desired += n
		case desired >= n:
			desired = 0
		}
	}

	ascendedOffset := 0
	if ascended {
		ascendedOffset = 1
	}
	if desired < 0 || desired-ascendedOffset >= len(parent.Children) {
		return parent, false
	}

	if !ascended {
		target := parent.Children[desired]
		if target.Kind == entity.KindContainer {
			parent = target
			if axisMatches(parent, axis) {
				if diff < 0 {
					desired = len(parent.Children)
				} else {
					desired = 0
				}
			} else if parent.Focused != nil {
				desired = parent.Focused.Index() + 1
			} else {
				desired = 0
			}
			c.W, c.H = 0, 0
		}
	}

	if c.Parent == parent {
		swapChildrenAt(parent, c.Index(), desired)
	} else {
		oldParent := tree.RemoveChild(c, deps.Views)
		tree.InsertChild(ctx, parent, c, desired)
		destroyIfEmpty(oldParent, deps.Views)
	}
	return parent, true
}

// stepDiff returns the signed index delta for this level: on a
// non-ascended step (the level c itself sits at) the move removes-and-
// reinserts, so the delta is ±1; on an ascended step (an ancestor became
// the moved unit) no removal happened yet, so the delta is 0 or +1.
func stepDiff(dir entity.Direction, ascended bool) int {
	backward := dir == entity.DirLeft || dir == entity.DirUp || dir == entity.DirPrev
	if ascended {
		if backward {
			return 0
		}
		return 1
	}
	if backward {
		return -1
	}
	return 1
}

// crossOutput attempts to move c onto the output adjacent to ws in dir. It
// returns true if the move happened (callers should stop immediately;
// settle has already run).
func crossOutput(ctx context.Context, c, ws *entity.Node, dir entity.Direction, deps Deps) bool {
	output := ws.Parent
	if output == nil || deps.Topology == nil {
		return false
	}
	adjHandle, ok := deps.Topology.AdjacentOutput(output.Handle, dir)
	if !ok {
		return false
	}
	dest := findOutputByHandle(rootOf(output), adjHandle)
	if dest == nil || dest.Focused == nil {
		return false
	}

	oldParent := tree.RemoveChild(c, deps.Views)
	destroyIfEmpty(oldParent, deps.Views)

	destWs := dest.Focused
	c.W, c.H = 0, 0
	switch dir {
	case entity.DirLeft, entity.DirUp:
		tree.AddChild(ctx, destWs, c)
	case entity.DirRight, entity.DirDown:
		tree.InsertChild(ctx, destWs, c, 0)
	}

	arrange.Run(ctx, destWs, -1, -1, deps.Deps)
	refocusChain(c, destWs)
	if deps.Events != nil {
		deps.Events.WindowMoved(c)
	}
	return true
}

// wrapWorkspaceInContainer wraps ws's tiled children into a new Container
// of the given layout, becoming ws's sole child, and returns that
// container so the move can continue climbing from it.
func wrapWorkspaceInContainer(ws *entity.Node, layout entity.Layout) *entity.Node {
	wrapper := entity.NewNode(ws.ID+"-split", entity.KindContainer)
	wrapper.Layout = layout
	wrapper.Parent = ws
	wrapper.Children = ws.Children
	for _, child := range wrapper.Children {
		child.Parent = wrapper
	}
	wrapper.Focused = ws.Focused
	ws.Children = []*entity.Node{wrapper}
	ws.Focused = wrapper
	return wrapper
}

// settle runs the trailing arrange/refocus/event sequence every move ends
// with, over parent's own parent (mirroring the reference implementation's
// unconditional arrange_windows(parent->parent, ...) after the move loop).
func settle(ctx context.Context, c, parent *entity.Node, deps Deps) {
	if parent == nil || parent.Parent == nil {
		return
	}
	log := logging.FromContext(logging.WithNodeID(ctx, c.ID))
	log.Debug().Str("direction", "move").Msg("settling move")

	arrange.Run(ctx, parent.Parent, -1, -1, deps.Deps)
	refocusChain(c, parent.Parent)
	if deps.Events != nil {
		deps.Events.WindowMoved(c)
	}
}

// refocusChain sets n.Focused along the ancestor path from leaf up to (and
// including) upTo, so focus tracks the node that actually moved.
func refocusChain(leaf, upTo *entity.Node) {
	child := leaf
	for p := leaf.Parent; p != nil; p = p.Parent {
		p.Focused = child
		if p == upTo {
			return
		}
		child = p
	}
}

// destroyIfEmpty cascades an empty non-Workspace container's removal up the
// tree: a Container left with no tiled or floating children serves no
// purpose and is detached in turn.
func destroyIfEmpty(node *entity.Node, sink port.ViewSink) {
	for node != nil && node.Kind == entity.KindContainer &&
		len(node.Children) == 0 && len(node.Floating) == 0 {
		next := tree.RemoveChild(node, sink)
		node = next
	}
}

// swapChildrenAt exchanges the children at positions a and b within
// parent.Children. For auto layouts, if a and b land in different groups
// after the swap, their geometries are exchanged too so each keeps the
// size appropriate to its new group.
func swapChildrenAt(parent *entity.Node, a, b int) {
	n := len(parent.Children)
	if a < 0 || b < 0 || a >= n || b >= n || a == b {
		return
	}
	pa, pb := parent.Children[a], parent.Children[b]
	parent.Children[a], parent.Children[b] = pb, pa

	if entity.IsAutoLayout(parent.Layout) {
		ga := autogroup.Index(parent, a)
		gb := autogroup.Index(parent, b)
		if ga != gb {
			tree.SwapGeometry(pa, pb)
		}
	}
}

// MoveContainerTo relocates c to dst in a single bulk move: a detach from
// c's current parent followed by a kind-appropriate attach (floating list,
// workspace, or sibling), then a re-arrange of both the source and
// destination outputs. Moving a node into itself or one of its own
// descendants is a benign no-op.
func MoveContainerTo(ctx context.Context, c, dst *entity.Node, deps Deps) {
	if c == dst || isAncestorOf(c, dst) {
		return
	}

	oldParent := tree.RemoveChild(c, deps.Views)
	srcOutput := oldParent.NearestOutput()

	switch {
	case c.IsFloating:
		ws := activeWorkspaceFor(dst)
		tree.AddFloating(ctx, ws, c, deps.Events)
		if len(ws.Children)+len(ws.Floating) == 1 && deps.Events != nil {
			deps.Events.WorkspaceInit(ws)
		}
	case dst.Kind == entity.KindWorkspace:
		c.W, c.H = 0, 0
		tree.AddChild(ctx, dst, c)
		if len(dst.Children)+len(dst.Floating) == 1 && deps.Events != nil {
			deps.Events.WorkspaceInit(dst)
		}
	default:
		c.W, c.H = 0, 0
		tree.AddSibling(ctx, dst, c)
	}

	destroyIfEmpty(oldParent, deps.Views)

	dstOutput := dst.NearestOutput()
	arrange.Run(ctx, dstOutput, -1, -1, deps.Deps)
	if srcOutput != nil && srcOutput != dstOutput {
		arrange.Run(ctx, srcOutput, -1, -1, deps.Deps)
	}
	if deps.Events != nil {
		deps.Events.WindowMoved(c)
	}
}

// activeWorkspaceFor resolves the workspace a floating or destination node
// should land on: dst itself if it is a Workspace, its focused workspace if
// it is an Output, or its nearest Workspace ancestor otherwise.
func activeWorkspaceFor(dst *entity.Node) *entity.Node {
	switch dst.Kind {
	case entity.KindWorkspace:
		return dst
	case entity.KindOutput:
		return dst.Focused
	default:
		return dst.NearestWorkspace()
	}
}

// MoveWorkspaceTo relocates ws wholesale onto dst (an Output), re-arranging
// the destination and, if ws was the source output's last workspace,
// synthesizing a fresh one there so the output is never left without one
// so the output is never left without a workspace.
func MoveWorkspaceTo(ctx context.Context, ws, dst *entity.Node, deps Deps) {
	if ws == dst || isAncestorOf(ws, dst) {
		return
	}

	srcOutput := tree.RemoveChild(ws, deps.Views)
	ws.W, ws.H = 0, 0
	tree.AddChild(ctx, dst, ws)

	arrange.Run(ctx, dst, -1, -1, deps.Deps)

	if srcOutput != nil && len(srcOutput.Children) == 0 {
		fresh := synthesizeWorkspace(srcOutput)
		fresh.WorkspaceLayout = deps.Config.DefaultLayout
		srcOutput.Focused = fresh
		if deps.Events != nil {
			deps.Events.WorkspaceInit(fresh)
		}
	}
}

// synthesizeWorkspace creates a placeholder workspace on output. Workspace
// naming policy is out of scope here; callers that need real names
// should replace the generated one before exposing it.
func synthesizeWorkspace(output *entity.Node) *entity.Node {
	name := fmt.Sprintf("workspace-%d", nextWorkspaceSeq)
	nextWorkspaceSeq++

	ws := entity.NewNode(name, entity.KindWorkspace)
	ws.Name = name
	ws.Parent = output
	output.Children = append(output.Children, ws)
	return ws
}

func isAncestorOf(ancestor, n *entity.Node) bool {
	for p := n; p != nil; p = p.Parent {
		if p == ancestor {
			return true
		}
	}
	return false
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func rootOf(n *entity.Node) *entity.Node {
	ancestors := n.Ancestors()
	if len(ancestors) == 0 {
		return nil
	}
	return ancestors[len(ancestors)-1]
}

func findOutputByHandle(root *entity.Node, handle uintptr) *entity.Node {
	if root == nil {
		return nil
	}
	for _, output := range root.Children {
		if output.Handle == handle {
			return output
		}
	}
	return nil
}
