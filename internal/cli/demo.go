// Package cli hosts the inspection CLI: a cobra command tree that builds a
// sample container tree, runs the layout engine over it, and renders the
// result either once (arrange) or continuously as the config file changes
// (watch).
package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bnema/layoutcore/internal/application/port"
	"github.com/bnema/layoutcore/internal/domain/entity"
)

// demoTree builds a single-output, single-workspace sample tree with n
// tiled views under layout, for the CLI commands to arrange and render.
func demoTree(layout entity.Layout, n int) *entity.Node {
	root := entity.NewNode("root", entity.KindRoot)
	output := entity.NewNode("output-0", entity.KindOutput)
	output.Handle = 1
	root.Children = []*entity.Node{output}
	output.Parent = root

	ws := entity.NewNode("workspace-1", entity.KindWorkspace)
	ws.Layout = layout
	ws.Parent = output
	output.Children = []*entity.Node{ws}
	output.Focused = ws

	for i := 0; i < n; i++ {
		v := entity.NewNode(fmt.Sprintf("view-%d", i+1), entity.KindView)
		v.Handle = uintptr(100 + i)
		v.Parent = ws
		ws.Children = append(ws.Children, v)
	}
	if len(ws.Children) > 0 {
		ws.Focused = ws.Children[0]
	}
	return root
}

// demoOutputs is a fixed-resolution port.OutputQuery for the CLI's single
// synthetic output.
type demoOutputs struct{ w, h int }

func (o demoOutputs) ScaledSize(uintptr) (int, int)  { return o.w, o.h }
func (o demoOutputs) Resolution(uintptr) (int, int)  { return o.w, o.h }
func (o demoOutputs) SurfaceSize(uintptr) (int, int) { return 0, 0 }

// demoPanels never reserves any output space; the CLI has no extensions.
type demoPanels struct{}

func (demoPanels) PanelsForOutput(uintptr) []entity.Panel { return nil }

// recordingViews is a port.ViewSink that records the final geometry per
// handle so the CLI can render it after an arrange pass completes.
type recordingViews struct {
	geometry map[uintptr]entity.Rect
	fronted  map[uintptr]bool
}

func newRecordingViews() *recordingViews {
	return &recordingViews{geometry: make(map[uintptr]entity.Rect), fronted: make(map[uintptr]bool)}
}

func (v *recordingViews) SetGeometry(handle uintptr, geom entity.Rect) { v.geometry[handle] = geom }
func (v *recordingViews) SetState(uintptr, entity.ViewState, bool)     {}
func (v *recordingViews) SetMask(uintptr, uint32)                      {}
func (v *recordingViews) BringToFront(handle uintptr)                  { v.fronted[handle] = true }
func (v *recordingViews) SendToBack(handle uintptr)                    { delete(v.fronted, handle) }

var _ port.OutputQuery = demoOutputs{}
var _ port.PanelProvider = demoPanels{}
var _ port.ViewSink = (*recordingViews)(nil)

// renderGeometry renders the tree's views and their settled geometry as a
// plain-text table, one row per view in ID order.
func renderGeometry(root *entity.Node, views *recordingViews) string {
	var rows []*entity.Node
	root.Walk(func(n *entity.Node) bool {
		if n.Kind == entity.KindView {
			rows = append(rows, n)
		}
		return true
	})
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })

	var b strings.Builder
	fmt.Fprintf(&b, "%-10s %6s %6s %6s %6s\n", "view", "x", "y", "w", "h")
	for _, v := range rows {
		g := views.geometry[v.Handle]
		fmt.Fprintf(&b, "%-10s %6d %6d %6d %6d\n", v.ID, g.X, g.Y, g.W, g.H)
	}
	return b.String()
}
