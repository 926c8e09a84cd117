package direction_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/layoutcore/internal/core/direction"
	"github.com/bnema/layoutcore/internal/core/testsupport"
	"github.com/bnema/layoutcore/internal/domain/entity"
)

func link(parent *entity.Node, children ...*entity.Node) {
	parent.Children = children
	for _, c := range children {
		c.Parent = parent
	}
}

func TestGetInDirection_ChildReturnsFocused(t *testing.T) {
	// Arrange
	c := entity.NewNode("c", entity.KindContainer)
	focused := entity.NewNode("v", entity.KindView)
	c.Focused = focused

	// Act
	got := direction.GetInDirection(c, entity.DirChild, entity.DefaultConfig(), nil)

	// Assert
	assert.Same(t, focused, got)
}

func TestGetInDirection_ParentStopsAtOutput(t *testing.T) {
	output := entity.NewNode("o", entity.KindOutput)
	ws := entity.NewNode("ws", entity.KindWorkspace)
	ws.Parent = output

	assert.Nil(t, direction.GetInDirection(ws, entity.DirParent, entity.DefaultConfig(), nil))

	container := entity.NewNode("c", entity.KindContainer)
	container.Parent = ws
	assert.Same(t, ws, direction.GetInDirection(container, entity.DirParent, entity.DefaultConfig(), nil))
}

func TestGetInDirection_NextPrevCyclesSiblings(t *testing.T) {
	parent := entity.NewNode("p", entity.KindContainer)
	a := entity.NewNode("a", entity.KindView)
	b := entity.NewNode("b", entity.KindView)
	c := entity.NewNode("c", entity.KindView)
	link(parent, a, b, c)

	assert.Same(t, b, direction.GetInDirection(a, entity.DirNext, entity.DefaultConfig(), nil))
	assert.Same(t, a, direction.GetInDirection(c, entity.DirNext, entity.DefaultConfig(), nil))
	assert.Same(t, c, direction.GetInDirection(a, entity.DirPrev, entity.DefaultConfig(), nil))
}

func TestGetInDirection_HorizStepsToAdjacentSibling(t *testing.T) {
	parent := entity.NewNode("p", entity.KindContainer)
	parent.Layout = entity.LayoutHoriz
	a := entity.NewNode("a", entity.KindView)
	b := entity.NewNode("b", entity.KindView)
	c := entity.NewNode("c", entity.KindView)
	link(parent, a, b, c)

	got := direction.GetInDirection(b, entity.DirRight, entity.DefaultConfig(), nil)

	assert.Same(t, c, got)
}

func TestGetInDirection_WrapCandidateHonorsForceFocusWrapping(t *testing.T) {
	root := entity.NewNode("root", entity.KindRoot)
	output := entity.NewNode("o", entity.KindOutput)
	link(root, output)
	ws := entity.NewNode("ws", entity.KindWorkspace)
	ws.Layout = entity.LayoutHoriz
	link(output, ws)
	a := entity.NewNode("a", entity.KindView)
	b := entity.NewNode("b", entity.KindView)
	link(ws, a, b)

	forced := entity.DefaultConfig()
	forced.ForceFocusWrapping = true
	assert.Same(t, a, direction.GetInDirection(b, entity.DirRight, forced, nil))

	unforced := entity.DefaultConfig()
	unforced.ForceFocusWrapping = false
	assert.Nil(t, direction.GetInDirection(b, entity.DirRight, unforced, nil))
}

func TestGetInDirection_FullscreenViewCrossesOutputs(t *testing.T) {
	root := entity.NewNode("root", entity.KindRoot)
	outputA := entity.NewNode("oa", entity.KindOutput)
	outputA.Handle = 1
	outputB := entity.NewNode("ob", entity.KindOutput)
	outputB.Handle = 2
	link(root, outputA, outputB)

	wsA := entity.NewNode("wsa", entity.KindWorkspace)
	link(outputA, wsA)
	view := entity.NewNode("v", entity.KindView)
	view.Fullscreen = true
	link(wsA, view)

	wsB := entity.NewNode("wsb", entity.KindWorkspace)
	outputB.Focused = wsB
	link(outputB, wsB)
	x := entity.NewNode("x", entity.KindView)
	y := entity.NewNode("y", entity.KindView)
	link(wsB, x, y)

	topo := testsupport.NewTopology()
	topo.Set(1, entity.DirRight, 2)

	got := direction.GetInDirection(view, entity.DirRight, entity.DefaultConfig(), topo)

	assert.Same(t, x, got)
}

func TestGetInDirection_AutoLayoutMinorAxisStaysInGroup(t *testing.T) {
	parent := entity.NewNode("p", entity.KindContainer)
	parent.Layout = entity.LayoutAutoLeft
	parent.NbMaster = 1
	parent.NbSlaveGroups = 1
	master := entity.NewNode("m", entity.KindView)
	slave1 := entity.NewNode("s1", entity.KindView)
	slave2 := entity.NewNode("s2", entity.KindView)
	link(parent, master, slave1, slave2)

	got := direction.GetInDirection(slave1, entity.DirDown, entity.DefaultConfig(), nil)

	assert.Same(t, slave2, got)
}

func TestGetInDirection_AutoLayoutMajorAxisCrossesGroups(t *testing.T) {
	parent := entity.NewNode("p", entity.KindContainer)
	parent.Layout = entity.LayoutAutoLeft
	parent.NbMaster = 1
	parent.NbSlaveGroups = 1
	master := entity.NewNode("m", entity.KindView)
	slave1 := entity.NewNode("s1", entity.KindView)
	slave2 := entity.NewNode("s2", entity.KindView)
	link(parent, master, slave1, slave2)

	got := direction.GetInDirection(master, entity.DirRight, entity.DefaultConfig(), nil)

	assert.Same(t, slave1, got)
}
