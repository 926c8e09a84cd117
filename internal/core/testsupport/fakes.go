// Package testsupport provides minimal hand-written fakes for the layout
// core's port interfaces, shared across the core package test suites.
package testsupport

import (
	"github.com/bnema/layoutcore/internal/application/port"
	"github.com/bnema/layoutcore/internal/domain/entity"
)

// Outputs is a fake port.OutputQuery backed by a fixed resolution.
type Outputs struct {
	W, H       int
	ScaleW     int
	ScaleH     int
	SurfaceW   int
	SurfaceH   int
}

func NewOutputs(w, h int) *Outputs {
	return &Outputs{W: w, H: h, ScaleW: w, ScaleH: h}
}

func (o *Outputs) ScaledSize(uintptr) (int, int) {
	if o.ScaleW == 0 && o.ScaleH == 0 {
		return o.W, o.H
	}
	return o.ScaleW, o.ScaleH
}

func (o *Outputs) Resolution(uintptr) (int, int) { return o.W, o.H }

func (o *Outputs) SurfaceSize(uintptr) (int, int) { return o.SurfaceW, o.SurfaceH }

// Views is a fake port.ViewSink recording every call it receives.
type Views struct {
	Geometry   map[uintptr]entity.Rect
	Fronted    []uintptr
	Backed     []uintptr
	States     map[uintptr]map[entity.ViewState]bool
	Masks      map[uintptr]uint32
}

func NewViews() *Views {
	return &Views{
		Geometry: make(map[uintptr]entity.Rect),
		States:   make(map[uintptr]map[entity.ViewState]bool),
		Masks:    make(map[uintptr]uint32),
	}
}

func (v *Views) SetGeometry(handle uintptr, geom entity.Rect) { v.Geometry[handle] = geom }

func (v *Views) SetState(handle uintptr, state entity.ViewState, value bool) {
	if v.States[handle] == nil {
		v.States[handle] = make(map[entity.ViewState]bool)
	}
	v.States[handle][state] = value
}

func (v *Views) SetMask(handle uintptr, mask uint32) { v.Masks[handle] = mask }

func (v *Views) BringToFront(handle uintptr) { v.Fronted = append(v.Fronted, handle) }

func (v *Views) SendToBack(handle uintptr) { v.Backed = append(v.Backed, handle) }

// Panels is a fake port.PanelProvider returning a fixed panel list.
type Panels struct {
	ByOutput map[uintptr][]entity.Panel
}

func NewPanels() *Panels { return &Panels{ByOutput: make(map[uintptr][]entity.Panel)} }

func (p *Panels) PanelsForOutput(outputHandle uintptr) []entity.Panel {
	return p.ByOutput[outputHandle]
}

// Events is a fake port.EventSink recording every emitted event.
type Events struct {
	Moved    []*entity.Node
	Floated  []*entity.Node
	WSInited []*entity.Node
}

func NewEvents() *Events { return &Events{} }

func (e *Events) WindowMoved(n *entity.Node)    { e.Moved = append(e.Moved, n) }
func (e *Events) WindowFloating(n *entity.Node) { e.Floated = append(e.Floated, n) }
func (e *Events) WorkspaceInit(n *entity.Node)  { e.WSInited = append(e.WSInited, n) }

// Topology is a fake port.OutputTopology with an explicit adjacency map.
type Topology struct {
	Adjacent map[adjKey]uintptr
}

type adjKey struct {
	from uintptr
	dir  entity.Direction
}

func NewTopology() *Topology { return &Topology{Adjacent: make(map[adjKey]uintptr)} }

func (t *Topology) Set(from uintptr, dir entity.Direction, to uintptr) {
	t.Adjacent[adjKey{from, dir}] = to
}

func (t *Topology) AdjacentOutput(from uintptr, dir entity.Direction) (uintptr, bool) {
	h, ok := t.Adjacent[adjKey{from, dir}]
	return h, ok
}

var _ port.OutputQuery = (*Outputs)(nil)
var _ port.ViewSink = (*Views)(nil)
var _ port.PanelProvider = (*Panels)(nil)
var _ port.EventSink = (*Events)(nil)
var _ port.OutputTopology = (*Topology)(nil)
