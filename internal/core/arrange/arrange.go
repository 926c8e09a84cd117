// Package arrange implements the recursive layout engine: given a subtree
// root and the dimensions it was offered, it assigns every tiled node's
// (x,y,w,h), reserves panel strips, dispatches each of the six layout
// modes, and runs the floating pass last. It corresponds to arrange_windows
// in the reference layout engine.
package arrange

import (
	"context"
	"math"

	"github.com/bnema/layoutcore/internal/application/port"
	"github.com/bnema/layoutcore/internal/core/autogroup"
	"github.com/bnema/layoutcore/internal/core/geom"
	"github.com/bnema/layoutcore/internal/domain/entity"
	"github.com/bnema/layoutcore/internal/logging"
)

// collapseGuard is the minimum scale factor a Horiz/Vert sub-arrangement
// will act on; at or below it the sub-arrangement is skipped rather than
// producing degenerate sizes. The threshold is empirical and preserved as-is.
const collapseGuard = 0.1

// unset requests "use the node's own width/height" rather than an explicit
// dimension, mirroring the -1 sentinel of the reference implementation.
const unset = -1

// Deps bundles the layout engine's external collaborators.
type Deps struct {
	Config  entity.Config
	Outputs port.OutputQuery
	Views   port.ViewSink
	Panels  port.PanelProvider
}

// Run arranges node and its tiled subtree into width x height, or the
// node's own size when either is unset. It floors both dimensions on entry
// so pixel rounding cascades consistently down the tree.
func Run(ctx context.Context, node *entity.Node, width, height float64, deps Deps) {
	if width == unset || height == unset {
		width, height = node.W, node.H
	}
	width = math.Floor(width)
	height = math.Floor(height)

	log := logging.FromContext(ctx)

	switch node.Kind {
	case entity.KindRoot:
		for _, output := range node.Children {
			Run(ctx, output, unset, unset, deps)
		}
		return

	case entity.KindOutput:
		w, h := deps.Outputs.Resolution(node.Handle)
		node.W, node.H = float64(w), float64(h)
		for _, ws := range node.Children {
			Run(ctx, ws, unset, unset, deps)
		}
		return

	case entity.KindWorkspace:
		arrangeWorkspaceFrame(node, deps)
		width, height = node.W, node.H

	case entity.KindView:
		if output := node.NearestOutput(); output != nil && output.Handle == entity.InactiveOutputHandle {
			log.Debug().Str("node_id", node.ID).Msg("clearing mask for view on inactive output")
			if deps.Views != nil {
				deps.Views.SetMask(node.Handle, 0)
			}
		}
		node.W, node.H = width, height
		geom.Update(node, deps.Config, deps.Outputs, deps.Views)
		return

	default: // Container
		node.W, node.H = width, height
		x, y := node.X, node.Y

		if node.Parent != nil && node.Parent.Kind == entity.KindWorkspace &&
			(node.Layout == entity.LayoutTabbed || node.Layout == entity.LayoutStacked) {
			geom.Update(node, deps.Config, deps.Outputs, deps.Views)
			width, height = float64(node.BorderGeometry.W), float64(node.BorderGeometry.H)
			x, y = float64(node.BorderGeometry.X), float64(node.BorderGeometry.Y)
		} else if p := node.Parent; p != nil && (p.Layout == entity.LayoutTabbed || p.Layout == entity.LayoutStacked) && p.Kind != entity.KindWorkspace {
			pg := p.ActualGeometry
			node.X, node.Y, node.W, node.H = float64(pg.X), float64(pg.Y), float64(pg.W), float64(pg.H)
			geom.Update(node, deps.Config, deps.Outputs, deps.Views)
			ag := node.ActualGeometry
			node.X, node.Y, node.W, node.H = float64(ag.X), float64(ag.Y), float64(ag.W), float64(ag.H)
			x, y = node.X, node.Y
			width, height = node.W, node.H
		}

		node.X, node.Y = x, y
	}

	log.Debug().Str("node_id", node.ID).Str("kind", node.Kind.String()).Msg("arranging layout")
	dispatchLayout(ctx, node, node.X, node.Y, width, height, deps)

	if node.Kind == entity.KindWorkspace {
		arrangeFloating(node, deps)
	}
}

func dispatchLayout(ctx context.Context, container *entity.Node, x, y, w, h float64, deps Deps) {
	switch container.Layout {
	case entity.LayoutVert:
		vertLayout(ctx, container, x, y, w, h, 0, len(container.Children), deps)
	case entity.LayoutTabbed, entity.LayoutStacked:
		tabbedOrStackedLayout(ctx, container, x, y, w, h, deps)
	case entity.LayoutAutoLeft:
		autoLayout(ctx, container, x, y, w, h, entity.LayoutVert, true, deps)
	case entity.LayoutAutoRight:
		autoLayout(ctx, container, x, y, w, h, entity.LayoutVert, false, deps)
	case entity.LayoutAutoTop:
		autoLayout(ctx, container, x, y, w, h, entity.LayoutHoriz, true, deps)
	case entity.LayoutAutoBottom:
		autoLayout(ctx, container, x, y, w, h, entity.LayoutHoriz, false, deps)
	default: // Horiz and None both fall back to a left-to-right split
		horizLayout(ctx, container, x, y, w, h, 0, len(container.Children), deps)
	}
}

// arrangeWorkspaceFrame reserves panel strips on the workspace's output and
// applies the outer gap, writing the result into the workspace's own
// (x,y,w,h).
func arrangeWorkspaceFrame(ws *entity.Node, deps Deps) {
	output := ws.Parent
	x, y := 0.0, 0.0
	w, h := output.W, output.H

	if deps.Panels != nil {
		for _, panel := range deps.Panels.PanelsForOutput(output.Handle) {
			pw, ph := deps.Outputs.SurfaceSize(panel.Surface)
			switch panel.Position {
			case entity.PanelTop:
				y += float64(ph)
				h -= float64(ph)
			case entity.PanelBottom:
				h -= float64(ph)
			case entity.PanelLeft:
				x += float64(pw)
				w -= float64(pw)
			case entity.PanelRight:
				w -= float64(pw)
			}
		}
	}

	gap := float64(deps.Config.EffectiveGap())
	ws.X = x + gap
	ws.Y = y + gap
	ws.W = w - gap*2
	ws.H = h - gap*2
}

// horizLayout splits [start,end) of container's children left to right.
// Children with a non-positive width seed to an even share first. If the
// resulting scale factor is at or below collapseGuard the sub-arrangement
// is skipped entirely.
func horizLayout(ctx context.Context, container *entity.Node, x, y, w, h float64, start, end int, deps Deps) {
	total := 0.0
	for i := start; i < end; i++ {
		child := container.Children[i]
		if child.W <= 0 {
			if end-start > 1 {
				child.W = w / float64(end-start-1)
			} else {
				child.W = w
			}
		}
		total += child.W
	}
	scale := w / total
	if scale <= collapseGuard {
		return
	}

	childX := x
	for i := start; i < end; i++ {
		child := container.Children[i]
		child.X = childX
		child.Y = y

		if i == end-1 {
			Run(ctx, child, x+w-childX, h, deps)
		} else {
			Run(ctx, child, child.W*scale, h, deps)
		}
		childX += child.W
	}
}

// vertLayout is horizLayout's symmetric counterpart on the y/height axis.
func vertLayout(ctx context.Context, container *entity.Node, x, y, w, h float64, start, end int, deps Deps) {
	total := 0.0
	for i := start; i < end; i++ {
		child := container.Children[i]
		if child.H <= 0 {
			if end-start > 1 {
				child.H = h / float64(end-start-1)
			} else {
				child.H = h
			}
		}
		total += child.H
	}
	scale := h / total
	if scale <= collapseGuard {
		return
	}

	childY := y
	for i := start; i < end; i++ {
		child := container.Children[i]
		child.X = x
		child.Y = childY

		if i == end-1 {
			Run(ctx, child, w, y+h-childY, deps)
		} else {
			Run(ctx, child, w, child.H*scale, deps)
		}
		childY += child.H
	}
}

// tabbedOrStackedLayout gives every child the full (x,y,w,h); non-focused
// children arrange first so the focused child's border computation, which
// reads its siblings' title bars, sees settled geometry.
func tabbedOrStackedLayout(ctx context.Context, container *entity.Node, x, y, w, h float64, deps Deps) {
	var focused *entity.Node
	for _, child := range container.Children {
		child.X, child.Y = x, y
		if child == container.Focused {
			focused = child
			continue
		}
		Run(ctx, child, w, h, deps)
	}
	if focused != nil {
		Run(ctx, focused, w, h, deps)
	}
}

// autoLayout lays out container's master/slave groups side by side along
// the major axis (the axis perpendicular to groupLayout), each group
// arranged internally by groupLayout along the minor axis. masterFirst is
// kept for call-site symmetry with the dispatch table; group order is
// actually derived from container.Layout by the autogroup package.
func autoLayout(ctx context.Context, container *entity.Node, x, y, w, h float64, groupLayout entity.Layout, masterFirst bool, deps Deps) {
	nbGroups := autogroup.Count(container)
	if nbGroups == 0 {
		return
	}

	var majDim, posMaj float64
	if groupLayout == entity.LayoutVert {
		majDim, posMaj = w, x
	} else {
		majDim, posMaj = h, y
	}

	oldGroupDim := make([]float64, nbGroups)
	oldDim := 0.0
	for g := 0; g < nbGroups; g++ {
		start, _, ok := autogroup.Bounds(container, g)
		if !ok {
			continue
		}
		child := container.Children[start]
		dim := groupMajorDim(child, groupLayout)
		if *dim <= 0 {
			*dim = majDim
			if nbGroups > 1 {
				*dim /= float64(nbGroups - 1)
			}
		}
		oldDim += *dim
		oldGroupDim[g] = *dim
	}
	scale := majDim / oldDim

	pos := posMaj
	for g := 0; g < nbGroups; g++ {
		start, end, ok := autogroup.Bounds(container, g)
		if !ok {
			continue
		}
		groupDim := oldGroupDim[g] * scale
		if g == nbGroups-1 {
			groupDim = posMaj + majDim - pos
		}

		if groupLayout == entity.LayoutVert {
			vertLayout(ctx, container, pos, y, groupDim, h, start, end, deps)
		} else {
			horizLayout(ctx, container, x, pos, w, groupDim, start, end, deps)
		}
		pos += groupDim
	}
}

func groupMajorDim(child *entity.Node, groupLayout entity.Layout) *float64 {
	if groupLayout == entity.LayoutHoriz {
		return &child.H
	}
	return &child.W
}

// Resize grows or shrinks node by amount along the axis edge pulls on,
// recursing into children: when the node's own layout matches the resized
// axis the amount is divided evenly across children, otherwise every child
// takes the full amount. A View leaf recomputes its geometry and stops the
// recursion.
func Resize(ctx context.Context, node *entity.Node, amount float64, edge entity.ResizeEdge, deps Deps) {
	layoutMatch := true
	switch {
	case edge.IsHorizontal():
		node.W += amount
		layoutMatch = node.Layout == entity.LayoutHoriz
	case edge.IsVertical():
		node.H += amount
		layoutMatch = node.Layout == entity.LayoutVert
	}

	if node.Kind == entity.KindView {
		geom.Update(node, deps.Config, deps.Outputs, deps.Views)
		return
	}

	if len(node.Children) == 0 {
		return
	}

	childAmount := amount
	if layoutMatch {
		childAmount = amount / float64(len(node.Children))
	}
	for _, child := range node.Children {
		Resize(ctx, child, childAmount, edge, deps)
	}
}

// DefaultLayout picks the layout a newly created workspace/container on
// output starts with: the configured default layout, then the configured
// default orientation, falling back to an aspect-ratio guess (Horiz for a
// wide-or-square output, Vert otherwise) if neither is set.
func DefaultLayout(output *entity.Node, cfg entity.Config) entity.Layout {
	if cfg.DefaultLayout != entity.LayoutNone {
		return cfg.DefaultLayout
	}
	if cfg.DefaultOrientation != entity.LayoutNone {
		return cfg.DefaultOrientation
	}
	if output.W >= output.H {
		return entity.LayoutHoriz
	}
	return entity.LayoutVert
}

// arrangeFloating runs update_geometry for every floating view on ws after
// its tiled children have settled, bringing fullscreen floats to the front
// unconditionally and everything else to the front unless the focused
// tiled view is itself fullscreen.
func arrangeFloating(ws *entity.Node, deps Deps) {
	for _, view := range ws.Floating {
		if view.Kind != entity.KindView {
			continue
		}
		geom.Update(view, deps.Config, deps.Outputs, deps.Views)

		switch {
		case view.Fullscreen:
			deps.Views.BringToFront(view.Handle)
		case ws.Focused == nil || !ws.Focused.Fullscreen:
			deps.Views.BringToFront(view.Handle)
		}
	}
}
