package tree_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/layoutcore/internal/core/testsupport"
	"github.com/bnema/layoutcore/internal/core/tree"
	"github.com/bnema/layoutcore/internal/domain/entity"
)

func TestAddChild_AppendsAndFocuses(t *testing.T) {
	// Arrange
	ctx := context.Background()
	parent := entity.NewNode("ws", entity.KindWorkspace)
	child := entity.NewNode("view-1", entity.KindView)

	// Act
	tree.AddChild(ctx, parent, child)

	// Assert
	require.Len(t, parent.Children, 1)
	assert.Same(t, child, parent.Children[0])
	assert.Same(t, child, parent.Focused)
	assert.Same(t, parent, child.Parent)
}

func TestAddChild_WrapsViewWhenWorkspaceIsTabbed(t *testing.T) {
	ctx := context.Background()
	ws := entity.NewNode("ws", entity.KindWorkspace)
	ws.WorkspaceLayout = entity.LayoutTabbed
	view := entity.NewNode("view-1", entity.KindView)

	tree.AddChild(ctx, ws, view)

	require.Len(t, ws.Children, 1)
	wrapper := ws.Children[0]
	assert.Equal(t, entity.KindContainer, wrapper.Kind)
	assert.Equal(t, entity.LayoutTabbed, wrapper.Layout)
	assert.Same(t, view, wrapper.Children[0])
	assert.Same(t, wrapper, view.Parent)
	assert.Same(t, wrapper, ws.Focused)
}

func TestAddChild_NilArgsLogsAndNoops(t *testing.T) {
	ctx := context.Background()
	parent := entity.NewNode("ws", entity.KindWorkspace)

	assert.NotPanics(t, func() {
		tree.AddChild(ctx, parent, nil)
		tree.AddChild(ctx, nil, entity.NewNode("v", entity.KindView))
	})
	assert.Empty(t, parent.Children)
}

func TestInsertChild_ClampsIndexPastEndToAppendInAutoGroup(t *testing.T) {
	ctx := context.Background()
	parent := entity.NewNode("auto", entity.KindContainer)
	parent.Layout = entity.LayoutAutoLeft
	parent.NbMaster = 1
	parent.NbSlaveGroups = 1

	master := entity.NewNode("m", entity.KindView)
	master.W, master.H = 400, 800
	slave := entity.NewNode("s", entity.KindView)
	slave.W, slave.H = 400, 800
	tree.AddChild(ctx, parent, master)
	tree.AddChild(ctx, parent, slave)

	newChild := entity.NewNode("new", entity.KindView)

	// Inserting beyond the slice length clamps to append.
	tree.InsertChild(ctx, parent, newChild, 99)

	require.Len(t, parent.Children, 3)
	assert.Same(t, newChild, parent.Children[2])
}

func TestAddFloating_RejectsNonWorkspaceTarget(t *testing.T) {
	ctx := context.Background()
	container := entity.NewNode("c", entity.KindContainer)
	view := entity.NewNode("v", entity.KindView)

	tree.AddFloating(ctx, container, view, nil)

	assert.Empty(t, container.Floating)
}

func TestAddFloating_AttachesAndEmitsEvent(t *testing.T) {
	ctx := context.Background()
	ws := entity.NewNode("ws", entity.KindWorkspace)
	view := entity.NewNode("v", entity.KindView)
	events := testsupport.NewEvents()

	tree.AddFloating(ctx, ws, view, events)

	require.Len(t, ws.Floating, 1)
	assert.True(t, view.IsFloating)
	assert.Same(t, view, ws.Focused)
	assert.Len(t, events.Floated, 1)
}

func TestAddSibling_InsertsAfterAnchorInNonAutoLayout(t *testing.T) {
	ctx := context.Background()
	parent := entity.NewNode("c", entity.KindContainer)
	parent.Layout = entity.LayoutHoriz
	a := entity.NewNode("a", entity.KindView)
	b := entity.NewNode("b", entity.KindView)
	tree.AddChild(ctx, parent, a)
	tree.AddChild(ctx, parent, b)

	active := entity.NewNode("active", entity.KindView)
	tree.AddSibling(ctx, a, active)

	require.Len(t, parent.Children, 3)
	assert.Same(t, active, parent.Children[1])
	assert.Same(t, active, parent.Focused)
}

func TestAddSibling_AppendsInAutoLayout(t *testing.T) {
	ctx := context.Background()
	parent := entity.NewNode("c", entity.KindContainer)
	parent.Layout = entity.LayoutAutoLeft
	a := entity.NewNode("a", entity.KindView)
	tree.AddChild(ctx, parent, a)

	active := entity.NewNode("active", entity.KindView)
	tree.AddSibling(ctx, a, active)

	require.Len(t, parent.Children, 2)
	assert.Same(t, active, parent.Children[len(parent.Children)-1])
}

func TestAddSibling_FloatingActiveGoesToFloatingList(t *testing.T) {
	ctx := context.Background()
	ws := entity.NewNode("ws", entity.KindWorkspace)
	a := entity.NewNode("a", entity.KindView)
	tree.AddChild(ctx, ws, a)

	active := entity.NewNode("float", entity.KindView)
	active.IsFloating = true
	tree.AddSibling(ctx, a, active)

	assert.Empty(t, ws.Children[1:])
	require.Len(t, ws.Floating, 1)
	assert.Same(t, active, ws.Floating[0])
}

func TestReplaceChild_PreservesGeometryAndFocus(t *testing.T) {
	ctx := context.Background()
	parent := entity.NewNode("c", entity.KindContainer)
	parent.Layout = entity.LayoutHoriz
	old := entity.NewNode("old", entity.KindView)
	old.X, old.Y, old.W, old.H = 10, 20, 300, 400
	old.Handle = 7
	tree.AddChild(ctx, parent, old)

	sink := testsupport.NewViews()
	newChild := entity.NewNode("new", entity.KindView)
	tree.ReplaceChild(old, newChild, sink)

	assert.Same(t, newChild, parent.Children[0])
	assert.Same(t, newChild, parent.Focused)
	assert.Equal(t, old.X, newChild.X)
	assert.Equal(t, 300.0, newChild.W)
	assert.Nil(t, old.Parent)
	assert.False(t, sink.States[7][entity.StateActivated])
}

func TestRemoveChild_RefocusesLeftNeighbor(t *testing.T) {
	ctx := context.Background()
	parent := entity.NewNode("c", entity.KindContainer)
	parent.Layout = entity.LayoutHoriz
	a := entity.NewNode("a", entity.KindView)
	b := entity.NewNode("b", entity.KindView)
	c := entity.NewNode("c2", entity.KindView)
	tree.AddChild(ctx, parent, a)
	tree.AddChild(ctx, parent, b)
	tree.AddChild(ctx, parent, c)
	parent.Focused = c

	sink := testsupport.NewViews()
	returned := tree.RemoveChild(c, sink)

	assert.Same(t, parent, returned)
	require.Len(t, parent.Children, 2)
	assert.Same(t, b, parent.Focused)
	assert.Nil(t, c.Parent)
}

func TestRemoveChild_FallsBackToFloatingThenNone(t *testing.T) {
	ctx := context.Background()
	ws := entity.NewNode("ws", entity.KindWorkspace)
	a := entity.NewNode("a", entity.KindView)
	tree.AddChild(ctx, ws, a)
	ws.Focused = a

	tree.RemoveChild(a, nil)

	assert.Nil(t, ws.Focused)
	assert.Empty(t, ws.Children)
}

func TestRemoveChild_FocusedFloatingBeyondTiledChildCountFallsBackToFirstChild(t *testing.T) {
	ctx := context.Background()
	ws := entity.NewNode("ws", entity.KindWorkspace)
	tiled := entity.NewNode("tiled", entity.KindView)
	tree.AddChild(ctx, ws, tiled)

	f0 := entity.NewNode("f0", entity.KindView)
	f1 := entity.NewNode("f1", entity.KindView)
	f2 := entity.NewNode("f2", entity.KindView)
	for _, f := range []*entity.Node{f0, f1, f2} {
		f.IsFloating = true
		f.Parent = ws
		ws.Floating = append(ws.Floating, f)
	}
	ws.Focused = f2

	require.NotPanics(t, func() {
		tree.RemoveChild(f2, nil)
	})

	assert.Same(t, tiled, ws.Focused)
}

func TestSwapContainer_ExchangesParentsAndFocus(t *testing.T) {
	ctx := context.Background()
	left := entity.NewNode("left", entity.KindContainer)
	left.Layout = entity.LayoutHoriz
	right := entity.NewNode("right", entity.KindContainer)
	right.Layout = entity.LayoutHoriz

	a := entity.NewNode("a", entity.KindView)
	b := entity.NewNode("b", entity.KindView)
	tree.AddChild(ctx, left, a)
	tree.AddChild(ctx, right, b)
	left.Focused = a
	right.Focused = b

	tree.SwapContainer(a, b)

	assert.Same(t, right, a.Parent)
	assert.Same(t, left, b.Parent)
	assert.Same(t, b, left.Children[0])
	assert.Same(t, a, right.Children[0])
	assert.Same(t, b, left.Focused)
	assert.Same(t, a, right.Focused)
}

func TestSwapContainer_NoopForSharedIdentity(t *testing.T) {
	ctx := context.Background()
	parent := entity.NewNode("c", entity.KindContainer)
	a := entity.NewNode("a", entity.KindView)
	tree.AddChild(ctx, parent, a)

	assert.NotPanics(t, func() {
		tree.SwapContainer(a, a)
	})
}

func TestSwapGeometry_ExchangesRects(t *testing.T) {
	a := entity.NewNode("a", entity.KindView)
	a.X, a.Y, a.W, a.H = 1, 2, 3, 4
	b := entity.NewNode("b", entity.KindView)
	b.X, b.Y, b.W, b.H = 10, 20, 30, 40

	tree.SwapGeometry(a, b)

	assert.Equal(t, 10.0, a.X)
	assert.Equal(t, 1.0, b.X)
}
