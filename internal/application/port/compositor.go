// Package port defines interfaces for the layout core's external collaborators:
// the compositor backend, the configuration loader, and extensions — all
// explicitly out of scope for this module, consumed here only through the
// narrow surface the core actually needs.
package port

import "github.com/bnema/layoutcore/internal/domain/entity"

// OutputQuery resolves sizing information for an output handle. Backed by
// the compositor's output/surface registry (out of scope for this module).
type OutputQuery interface {
	// ScaledSize returns the output's logical (scale-adjusted) resolution.
	ScaledSize(handle uintptr) (w, h int)
	// Resolution returns the output's raw pixel resolution.
	Resolution(handle uintptr) (w, h int)
	// SurfaceSize returns the dimensions an arbitrary compositor surface
	// occupies (used to size reserved panel strips).
	SurfaceSize(surface uintptr) (w, h int)
}

// ViewSink pushes final per-view decisions to the compositor. Every call is
// fire-and-forget within the current event-loop turn.
type ViewSink interface {
	// SetGeometry pushes a view's final on-screen rectangle.
	SetGeometry(handle uintptr, geom entity.Rect)
	// SetState toggles a boolean view state bit (e.g. ACTIVATED).
	SetState(handle uintptr, state entity.ViewState, value bool)
	// SetMask sets the view's render mask (cleared on inactive outputs).
	SetMask(handle uintptr, mask uint32)
	// BringToFront raises a view above its siblings in z-order.
	BringToFront(handle uintptr)
	// SendToBack lowers a view below its siblings in z-order.
	SendToBack(handle uintptr)
}

// PanelProvider exposes the extension panels reserving space on an output,
// sourced from extensions, which own their own placement policy.
type PanelProvider interface {
	PanelsForOutput(outputHandle uintptr) []entity.Panel
}

// OutputTopology resolves physical output adjacency for cross-output
// movement and directional lookup. Backed by the compositor's output
// registry (out of scope for this module) rather than anything the
// container tree itself models.
type OutputTopology interface {
	// AdjacentOutput returns the handle of the output bordering from in
	// dir, and whether one exists.
	AdjacentOutput(from uintptr, dir entity.Direction) (handle uintptr, ok bool)
}
