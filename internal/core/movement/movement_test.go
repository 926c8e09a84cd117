package movement_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/layoutcore/internal/core/arrange"
	"github.com/bnema/layoutcore/internal/core/movement"
	"github.com/bnema/layoutcore/internal/core/testsupport"
	"github.com/bnema/layoutcore/internal/domain/entity"
)

func newMovementDeps(outW, outH int) (movement.Deps, *testsupport.Topology, *testsupport.Events) {
	topo := testsupport.NewTopology()
	events := testsupport.NewEvents()
	return movement.Deps{
		Deps: arrange.Deps{
			Config:  entity.DefaultConfig(),
			Outputs: testsupport.NewOutputs(outW, outH),
			Views:   testsupport.NewViews(),
			Panels:  testsupport.NewPanels(),
		},
		Topology: topo,
		Events:   events,
	}, topo, events
}

func link(parent *entity.Node, children ...*entity.Node) {
	parent.Children = children
	for _, c := range children {
		c.Parent = parent
	}
}

func TestMoveContainer_FloatingTranslatesAndClampsToOutput(t *testing.T) {
	// Arrange
	deps, _, _ := newMovementDeps(1000, 1000)
	output := entity.NewNode("o", entity.KindOutput)
	output.Handle = 1
	output.W, output.H = 1000, 1000
	ws := entity.NewNode("ws", entity.KindWorkspace)
	link(output, ws)
	view := entity.NewNode("v", entity.KindView)
	view.IsFloating = true
	view.X, view.Y, view.W, view.H = 10, 10, 200, 200
	link(ws, view)
	ws.Floating = []*entity.Node{view}

	// Act: move left past the output edge, it clamps to 0.
	movement.MoveContainer(context.Background(), view, entity.DirLeft, 50, deps)

	// Assert
	assert.Equal(t, 0.0, view.X)
}

func TestMoveFirst_SwapsWithAutoLayoutFirstChild(t *testing.T) {
	deps, _, events := newMovementDeps(1200, 800)
	root := entity.NewNode("root", entity.KindRoot)
	output := entity.NewNode("o", entity.KindOutput)
	output.Handle = 1
	link(root, output)
	ws := entity.NewNode("ws", entity.KindWorkspace)
	link(output, ws)

	parent := entity.NewNode("p", entity.KindContainer)
	parent.Layout = entity.LayoutAutoLeft
	parent.NbMaster = 1
	parent.NbSlaveGroups = 1
	master := entity.NewNode("m", entity.KindView)
	slave1 := entity.NewNode("s1", entity.KindView)
	slave2 := entity.NewNode("s2", entity.KindView)
	link(parent, master, slave1, slave2)
	parent.Parent = ws
	ws.Children = []*entity.Node{parent}

	movement.MoveContainer(context.Background(), slave2, entity.DirFirst, 0, deps)

	assert.Same(t, slave2, parent.Children[0])
	assert.Len(t, events.Moved, 1)
}

func TestMoveContainer_HorizSwapsWithRightSibling(t *testing.T) {
	deps, _, _ := newMovementDeps(1200, 800)
	root := entity.NewNode("root", entity.KindRoot)
	output := entity.NewNode("o", entity.KindOutput)
	output.Handle = 1
	link(root, output)
	ws := entity.NewNode("ws", entity.KindWorkspace)
	link(output, ws)

	parent := entity.NewNode("p", entity.KindContainer)
	parent.Layout = entity.LayoutHoriz
	a := entity.NewNode("a", entity.KindView)
	b := entity.NewNode("b", entity.KindView)
	c := entity.NewNode("c", entity.KindView)
	link(parent, a, b, c)
	parent.Parent = ws
	ws.Children = []*entity.Node{parent}

	movement.MoveContainer(context.Background(), b, entity.DirRight, 0, deps)

	require.Len(t, parent.Children, 3)
	assert.Same(t, b, parent.Children[2])
	assert.Same(t, c, parent.Children[1])
}

func TestMoveContainer_CrossesToAdjacentOutputWhenAtWorkspaceEdge(t *testing.T) {
	deps, topo, events := newMovementDeps(1000, 1000)
	root := entity.NewNode("root", entity.KindRoot)
	outputA := entity.NewNode("oa", entity.KindOutput)
	outputA.Handle = 1
	outputB := entity.NewNode("ob", entity.KindOutput)
	outputB.Handle = 2
	link(root, outputA, outputB)

	wsA := entity.NewNode("wsa", entity.KindWorkspace)
	link(outputA, wsA)
	view := entity.NewNode("v", entity.KindView)
	link(wsA, view)

	wsB := entity.NewNode("wsb", entity.KindWorkspace)
	outputB.Focused = wsB
	link(outputB, wsB)

	topo.Set(1, entity.DirLeft, 2)

	movement.MoveContainer(context.Background(), view, entity.DirLeft, 0, deps)

	assert.Same(t, wsB, view.Parent)
	assert.Empty(t, wsA.Children)
	assert.Len(t, events.Moved, 1)
}

func TestMoveContainerTo_RelocatesAndDestroysEmptySourceContainer(t *testing.T) {
	deps, _, events := newMovementDeps(1000, 1000)
	root := entity.NewNode("root", entity.KindRoot)
	outputA := entity.NewNode("oa", entity.KindOutput)
	outputA.Handle = 1
	outputB := entity.NewNode("ob", entity.KindOutput)
	outputB.Handle = 2
	link(root, outputA, outputB)

	wsA := entity.NewNode("wsa", entity.KindWorkspace)
	link(outputA, wsA)
	holder := entity.NewNode("holder", entity.KindContainer)
	holder.Layout = entity.LayoutHoriz
	link(wsA, holder)
	view := entity.NewNode("v", entity.KindView)
	link(holder, view)

	wsB := entity.NewNode("wsb", entity.KindWorkspace)
	link(outputB, wsB)

	movement.MoveContainerTo(context.Background(), view, wsB, deps)

	assert.Same(t, wsB, view.Parent)
	assert.Empty(t, wsA.Children)
	assert.Len(t, events.Moved, 1)
}

func TestMoveWorkspaceTo_SynthesizesReplacementOnSourceOutput(t *testing.T) {
	deps, _, _ := newMovementDeps(1000, 1000)
	root := entity.NewNode("root", entity.KindRoot)
	outputA := entity.NewNode("oa", entity.KindOutput)
	outputA.Handle = 1
	outputB := entity.NewNode("ob", entity.KindOutput)
	outputB.Handle = 2
	link(root, outputA, outputB)

	wsOld := entity.NewNode("wsold", entity.KindWorkspace)
	link(outputA, wsOld)

	movement.MoveWorkspaceTo(context.Background(), wsOld, outputB, deps)

	assert.Same(t, outputB, wsOld.Parent)
	require.Len(t, outputA.Children, 1)
	assert.Same(t, outputA.Children[0], outputA.Focused)
	assert.NotSame(t, wsOld, outputA.Children[0])
}
