package port

import "github.com/bnema/layoutcore/internal/domain/entity"

// EventSink is the IPC event bus boundary, owned elsewhere. The core emits
// to it after every mutation that the rest of the WM needs to observe.
type EventSink interface {
	// WindowMoved fires after move_container settles the tree and refocuses.
	WindowMoved(node *entity.Node)
	// WindowFloating fires when add_floating attaches a node to a workspace's floating list.
	WindowFloating(node *entity.Node)
	// WorkspaceInit fires when a workspace is synthesized or first populated.
	WorkspaceInit(ws *entity.Node)
}
