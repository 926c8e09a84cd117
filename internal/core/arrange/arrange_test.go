package arrange_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/layoutcore/internal/core/arrange"
	"github.com/bnema/layoutcore/internal/core/testsupport"
	"github.com/bnema/layoutcore/internal/domain/entity"
)

func newDeps(outW, outH int) (arrange.Deps, *testsupport.Outputs, *testsupport.Views) {
	outputs := testsupport.NewOutputs(outW, outH)
	views := testsupport.NewViews()
	return arrange.Deps{
		Config:  entity.DefaultConfig(),
		Outputs: outputs,
		Views:   views,
		Panels:  testsupport.NewPanels(),
	}, outputs, views
}

func buildTree(children int, layout entity.Layout) (*entity.Node, *entity.Node, *entity.Node) {
	root := entity.NewNode("root", entity.KindRoot)
	output := entity.NewNode("output", entity.KindOutput)
	output.Handle = 1
	root.Children = []*entity.Node{output}
	output.Parent = root

	ws := entity.NewNode("ws", entity.KindWorkspace)
	ws.Parent = output
	ws.Layout = layout
	output.Children = []*entity.Node{ws}

	for i := 0; i < children; i++ {
		v := entity.NewNode("v", entity.KindView)
		v.Handle = uintptr(100 + i)
		v.Parent = ws
		ws.Children = append(ws.Children, v)
	}
	return root, output, ws
}

func TestRun_HorizSplitsEvenlyAcrossWidth(t *testing.T) {
	// Arrange: children already carry an equal-share width from a prior
	// arrangement, so the split preserves their proportions exactly.
	deps, _, views := newDeps(1200, 800)
	root, _, ws := buildTree(3, entity.LayoutHoriz)
	for _, v := range ws.Children {
		v.W = 400
	}

	// Act
	arrange.Run(context.Background(), root, -1, -1, deps)

	// Assert: the workspace occupies the full output (no gap, no panels), so
	// three even children cover the entire width between them.
	var total int
	for _, v := range ws.Children {
		g, ok := views.Geometry[v.Handle]
		require.True(t, ok)
		total += g.W
	}
	assert.InDelta(t, 1200, total, 3)
}

func TestRun_VertSplitsEvenlyAcrossHeight(t *testing.T) {
	deps, _, views := newDeps(1000, 900)
	root, _, ws := buildTree(2, entity.LayoutVert)
	for _, v := range ws.Children {
		v.H = 450
	}

	arrange.Run(context.Background(), root, -1, -1, deps)

	var total int
	for _, v := range ws.Children {
		g := views.Geometry[v.Handle]
		total += g.H
	}
	assert.InDelta(t, 900, total, 2)
}

func TestRun_TabbedGivesEveryChildFullRegion(t *testing.T) {
	deps, _, views := newDeps(1000, 1000)
	root, _, ws := buildTree(3, entity.LayoutTabbed)
	ws.Focused = ws.Children[1]

	arrange.Run(context.Background(), root, -1, -1, deps)

	for _, v := range ws.Children {
		g := views.Geometry[v.Handle]
		assert.Greater(t, g.W, 0)
		assert.Greater(t, g.H, 0)
	}
}

func TestRun_ReservesPanelStripOnWorkspace(t *testing.T) {
	deps, _, _ := newDeps(1000, 1000)
	panels := deps.Panels.(*testsupport.Panels)
	panels.ByOutput[1] = []entity.Panel{{Surface: 5, Position: entity.PanelTop}}
	outputs := deps.Outputs.(*testsupport.Outputs)
	outputs.SurfaceH = 40

	root, _, ws := buildTree(1, entity.LayoutHoriz)

	arrange.Run(context.Background(), root, -1, -1, deps)

	assert.Equal(t, 40.0, ws.Y)
}

func TestRun_AutoLeftReservesMasterColumn(t *testing.T) {
	deps, _, views := newDeps(1200, 800)
	root, _, ws := buildTree(3, entity.LayoutAutoLeft)
	ws.NbMaster = 1
	ws.NbSlaveGroups = 1

	arrange.Run(context.Background(), root, -1, -1, deps)

	master := views.Geometry[ws.Children[0].Handle]
	slave1 := views.Geometry[ws.Children[1].Handle]
	assert.Greater(t, master.W, 0)
	assert.Greater(t, slave1.W, 0)
	assert.NotEqual(t, master.X, slave1.X)
}

func TestRun_ViewDispatchesDirectlyToGeom(t *testing.T) {
	deps, _, views := newDeps(800, 600)
	_, _, ws := buildTree(1, entity.LayoutHoriz)
	view := ws.Children[0]
	view.Handle = 9

	arrange.Run(context.Background(), view, 400, 300, deps)

	g, ok := views.Geometry[9]
	require.True(t, ok)
	assert.Greater(t, g.W, 0)
}

func TestRun_ClearsMaskForViewOnInactiveOutput(t *testing.T) {
	deps, _, views := newDeps(800, 600)
	root, output, ws := buildTree(1, entity.LayoutHoriz)
	output.Handle = entity.InactiveOutputHandle
	view := ws.Children[0]

	arrange.Run(context.Background(), root, -1, -1, deps)

	mask, ok := views.Masks[view.Handle]
	require.True(t, ok)
	assert.Equal(t, uint32(0), mask)
}

func TestResize_DividesAmountAcrossChildrenOnMatchingAxis(t *testing.T) {
	deps, _, _ := newDeps(1200, 800)
	_, _, ws := buildTree(3, entity.LayoutHoriz)
	for _, v := range ws.Children {
		v.W = 400
	}

	arrange.Resize(context.Background(), ws, 300, entity.EdgeRight, deps)

	assert.Equal(t, 300.0, ws.W)
	for _, v := range ws.Children {
		assert.Equal(t, 500.0, v.W)
	}
}

func TestResize_BroadcastsAmountWhenLayoutDoesNotMatchAxis(t *testing.T) {
	deps, _, _ := newDeps(1200, 800)
	_, _, ws := buildTree(3, entity.LayoutHoriz)
	for _, v := range ws.Children {
		v.H = 200
	}

	arrange.Resize(context.Background(), ws, 50, entity.EdgeTop, deps)

	assert.Equal(t, 50.0, ws.H)
	for _, v := range ws.Children {
		assert.Equal(t, 250.0, v.H)
	}
}

func TestDefaultLayout_PrefersConfiguredDefaultLayout(t *testing.T) {
	output := entity.NewNode("o", entity.KindOutput)
	output.W, output.H = 800, 1200
	cfg := entity.DefaultConfig()
	cfg.DefaultLayout = entity.LayoutVert

	assert.Equal(t, entity.LayoutVert, arrange.DefaultLayout(output, cfg))
}

func TestDefaultLayout_FallsBackToOrientationThenAspectRatio(t *testing.T) {
	output := entity.NewNode("o", entity.KindOutput)
	output.W, output.H = 800, 1200
	cfg := entity.DefaultConfig()
	cfg.DefaultLayout = entity.LayoutNone
	cfg.DefaultOrientation = entity.LayoutVert
	assert.Equal(t, entity.LayoutVert, arrange.DefaultLayout(output, cfg))

	cfg.DefaultOrientation = entity.LayoutNone
	assert.Equal(t, entity.LayoutVert, arrange.DefaultLayout(output, cfg))

	output.W, output.H = 1200, 800
	assert.Equal(t, entity.LayoutHoriz, arrange.DefaultLayout(output, cfg))
}
