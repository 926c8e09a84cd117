// Package geom computes the per-node geometry the layout engine hands to
// the compositor: gap insets, border/title-bar rectangles, and the
// fullscreen/floating/tiled special cases. It corresponds to update_geometry
// in the layout engine's reference implementation.
package geom

import (
	"github.com/bnema/layoutcore/internal/application/port"
	"github.com/bnema/layoutcore/internal/domain/entity"
)

// Update recomputes container's actual_geometry, border_geometry, and
// title_bar_geometry from its logical (x,y,w,h), and pushes the result to
// sink for Views. container must be a View or Container; Update is a no-op
// for any other kind.
func Update(container *entity.Node, cfg entity.Config, out port.OutputQuery, sink port.ViewSink) {
	if container.Kind != entity.KindView && container.Kind != entity.KindContainer {
		return
	}

	workspace := container.NearestWorkspace()
	output := container.NearestOutput()
	if workspace == nil || output == nil {
		return
	}

	geometry := entity.Rect{
		X: clampAxis(container.X, output.W),
		Y: clampAxis(container.Y, output.H),
		W: int(container.W),
		H: int(container.H),
	}

	gap := 0
	if !tabbedStackedParent(container) {
		gap = applyGap(container, workspace, cfg, &geometry)
	}

	scaledW, scaledH := out.ScaledSize(output.Handle)

	switch {
	case container.Fullscreen:
		geometry = entity.Rect{X: 0, Y: 0, W: scaledW, H: scaledH}
		if output.Focused == workspace && container.Handle != 0 {
			sink.BringToFront(container.Handle)
		}
		container.BorderGeometry = entity.Rect{}
		container.TitleBarGeometry = entity.Rect{}

	case container.IsFloating:
		geometry = updateFloatingBorder(container, geometry, scaledW, scaledH, cfg)

	default:
		geometry = updateTiledBorder(container, workspace, geometry, gap, cfg)
		container.ActualGeometry = geometry
	}

	if container.Kind == entity.KindView {
		sink.SetGeometry(container.Handle, geometry)
	}
}

// clampAxis mirrors "container->x < op->width ? container->x : op->width-1".
func clampAxis(v float64, bound float64) int {
	if v < bound {
		return int(v)
	}
	return int(bound) - 1
}

// tabbedStackedParent reports whether container's direct parent lays it out
// inside a tab strip or a stack, in which case the gap pass is skipped;
// the parent itself absorbs the gap around the whole tab/stack region.
func tabbedStackedParent(container *entity.Node) bool {
	p := container.Parent
	return p != nil && (p.Layout == entity.LayoutTabbed || p.Layout == entity.LayoutStacked)
}

// applyGap computes the gap-inset rectangle in place, returning the
// effective gap that was applied (0 for floating containers).
func applyGap(container, workspace *entity.Node, cfg entity.Config, g *entity.Rect) int {
	op := workspace.Parent
	gap := 0
	if !container.IsFloating {
		gap = cfg.EffectiveGap()
	}

	half := float64(gap) / 2

	if container.X+half < op.W {
		g.X = int(container.X + half)
	} else {
		g.X = int(op.W) - 1
	}
	if container.Y+half < op.H {
		g.Y = int(container.Y + half)
	} else {
		g.Y = int(op.H) - 1
	}
	if container.W > float64(gap) {
		g.W = int(container.W) - gap
	} else {
		g.W = 1
	}
	if container.H > float64(gap) {
		g.H = int(container.H) - gap
	} else {
		g.H = 1
	}

	elideEdges := (!cfg.EdgeGaps && gap > 0) || (cfg.SmartGaps && len(workspace.Children) == 1)
	if !elideEdges {
		return gap
	}

	if container.X-float64(gap) <= workspace.X {
		g.X = int(workspace.X)
		g.W = int(container.W) - gap/2
	}
	if container.Y-float64(gap) <= workspace.Y {
		g.Y = int(workspace.Y)
		g.H = int(container.H) - gap/2
	}
	if container.X+container.W+float64(gap) >= workspace.X+workspace.W {
		g.W = int(workspace.X+workspace.W) - g.X
	}
	if container.Y+container.H+float64(gap) >= workspace.Y+workspace.H {
		g.H = int(workspace.Y+workspace.H) - g.Y
	}
	return gap
}

// updateFloatingBorder applies the B_NONE|B_PIXEL|B_NORMAL border policy to
// a floating container and clamps the result to the output.
func updateFloatingBorder(container *entity.Node, g entity.Rect, outW, outH int, cfg entity.Config) entity.Rect {
	switch container.BorderType {
	case entity.BorderNone:
	case entity.BorderPixel:
		t := container.BorderThickness
		adjustBorderGeometry(&g, outW, outH, t, t, t, t)
	case entity.BorderNormal:
		t := container.BorderThickness
		titleH := cfg.FontHeight + 4
		adjustBorderGeometry(&g, outW, outH, t, t, titleH, t)
		container.TitleBarGeometry = entity.Rect{
			X: g.X - t,
			Y: g.Y - titleH,
			W: g.W + 2*t,
			H: titleH,
		}
	}
	container.BorderGeometry = g
	container.ActualGeometry = g
	return g
}

// adjustBorderGeometry grows g by the requested border insets and clamps the
// result into [0,resW) x [0,resH). This mirrors the reference
// adjust_border_geometry. Note the bottom-edge check below compares against
// top rather than bottom; that asymmetry is preserved as-is rather than
// silently corrected.
func adjustBorderGeometry(g *entity.Rect, resW, resH, left, right, top, bottom int) {
	g.W += left + right
	if g.X-left < 0 {
		g.W += g.X - left
	} else if g.X+g.W-right > resW {
		g.W = resW - g.X + right
	}

	g.H += top + bottom
	if g.Y-top < 0 {
		g.H += g.Y - top
	} else if g.Y+g.H-top > resH {
		g.H = resH - g.Y + top
	}

	g.X = clampInt(g.X-left, 0, resW)
	g.Y = clampInt(g.Y-top, 0, resH)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	return v
}

// updateTiledBorder applies edge-border suppression, tabbed/stacked title
// bar insets, and the single-border policy to a tiled container.
func updateTiledBorder(container, workspace *entity.Node, g entity.Rect, gap int, cfg entity.Config) entity.Rect {
	container.BorderGeometry = g

	borderTop := container.BorderThickness
	borderBottom := container.BorderThickness
	borderLeft := container.BorderThickness
	borderRight := container.BorderThickness

	suppressEdges := gap <= 0 || (cfg.SmartGaps && len(workspace.Children) == 1)
	if cfg.HideEdgeBorders != entity.HideNone && suppressEdges {
		if cfg.HideEdgeBorders == entity.HideVertical || cfg.HideEdgeBorders == entity.HideBoth {
			if g.X == int(workspace.X) {
				borderLeft = 0
			}
			if g.X+g.W == int(workspace.X+workspace.W) {
				borderRight = 0
			}
		}
		if cfg.HideEdgeBorders == entity.HideHorizontal || cfg.HideEdgeBorders == entity.HideBoth {
			if g.Y == int(workspace.Y) {
				borderTop = 0
			}
			if g.Y+g.H == int(workspace.Y+workspace.H) {
				borderBottom = 0
			}
		}
		if cfg.HideEdgeBorders == entity.HideSmart && len(workspace.Children) == 1 {
			borderTop, borderBottom, borderLeft, borderRight = 0, 0, 0, 0
		}
	}

	titleH := cfg.FontHeight + 4
	parent := container.Parent

	switch {
	case parent != nil && parent.Layout == entity.LayoutTabbed && len(parent.Children) > 1:
		n := len(parent.Children)
		w := g.W / n
		r := g.W % n
		x := 0
		for i, sibling := range parent.Children {
			if sibling == container {
				x = w * i
				if i == n-1 {
					w += r
				}
				break
			}
		}
		container.TitleBarGeometry = entity.Rect{X: g.X + x, Y: g.Y, W: w, H: titleH}
		g.X += borderLeft
		g.Y += titleH
		g.W -= borderLeft + borderRight
		g.H -= borderBottom + titleH

	case parent != nil && parent.Layout == entity.LayoutStacked && len(parent.Children) > 1:
		y := 0
		for i, sibling := range parent.Children {
			if sibling == container {
				y = titleH * i
				break
			}
		}
		container.TitleBarGeometry = entity.Rect{X: g.X, Y: g.Y + y, W: g.W, H: titleH}
		stackHeight := titleH * len(parent.Children)
		g.X += borderLeft
		g.Y += stackHeight
		g.W -= borderLeft + borderRight
		g.H -= borderBottom + stackHeight

	default:
		switch container.BorderType {
		case entity.BorderNone:
		case entity.BorderPixel:
			g.X += borderLeft
			g.Y += borderTop
			g.W -= borderLeft + borderRight
			g.H -= borderTop + borderBottom
		case entity.BorderNormal:
			container.TitleBarGeometry = entity.Rect{X: g.X, Y: g.Y, W: g.W, H: titleH}
			g.X += borderLeft
			g.Y += titleH
			g.W -= borderLeft + borderRight
			g.H -= borderBottom + titleH
		}
	}

	return g
}
