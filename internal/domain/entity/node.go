// Package entity contains domain entities representing core business concepts.
// These entities are pure Go types with no infrastructure dependencies.
package entity

// Kind tags the variant a Node represents in the container tree.
type Kind int

const (
	KindRoot Kind = iota
	KindOutput
	KindWorkspace
	KindContainer
	KindView
)

func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindOutput:
		return "output"
	case KindWorkspace:
		return "workspace"
	case KindContainer:
		return "container"
	case KindView:
		return "view"
	default:
		return "unknown"
	}
}

// Layout is the arrangement a Container or Workspace applies to its children.
type Layout int

const (
	LayoutNone Layout = iota
	LayoutHoriz
	LayoutVert
	LayoutTabbed
	LayoutStacked
	LayoutAutoLeft
	LayoutAutoRight
	LayoutAutoTop
	LayoutAutoBottom
)

func (l Layout) String() string {
	switch l {
	case LayoutNone:
		return "none"
	case LayoutHoriz:
		return "horiz"
	case LayoutVert:
		return "vert"
	case LayoutTabbed:
		return "tabbed"
	case LayoutStacked:
		return "stacked"
	case LayoutAutoLeft:
		return "auto_left"
	case LayoutAutoRight:
		return "auto_right"
	case LayoutAutoTop:
		return "auto_top"
	case LayoutAutoBottom:
		return "auto_bottom"
	default:
		return "unknown"
	}
}

// ParseLayout maps a config-file layout name to its Layout value. Unknown
// names fall back to LayoutNone; callers that need a concrete default
// should check for it explicitly.
func ParseLayout(s string) Layout {
	switch s {
	case "horiz", "splith":
		return LayoutHoriz
	case "vert", "splitv":
		return LayoutVert
	case "tabbed":
		return LayoutTabbed
	case "stacked":
		return LayoutStacked
	case "auto_left":
		return LayoutAutoLeft
	case "auto_right":
		return LayoutAutoRight
	case "auto_top":
		return LayoutAutoTop
	case "auto_bottom":
		return LayoutAutoBottom
	default:
		return LayoutNone
	}
}

// IsAutoLayout reports whether l is one of the master/slave auto layouts.
func IsAutoLayout(l Layout) bool {
	switch l {
	case LayoutAutoLeft, LayoutAutoRight, LayoutAutoTop, LayoutAutoBottom:
		return true
	default:
		return false
	}
}

// IsHorizontalLayout reports whether children of l are principally arranged
// left-to-right (Horiz, Tabbed, and the auto layouts, whose major axis is
// horizontal for AutoLeft/AutoRight).
func IsHorizontalLayout(l Layout) bool {
	switch l {
	case LayoutHoriz, LayoutTabbed, LayoutAutoLeft, LayoutAutoRight:
		return true
	default:
		return false
	}
}

// IsVerticalLayout reports whether children of l are principally arranged
// top-to-bottom (Vert, Stacked, and the auto layouts whose major axis is
// vertical for AutoTop/AutoBottom).
func IsVerticalLayout(l Layout) bool {
	switch l {
	case LayoutVert, LayoutStacked, LayoutAutoTop, LayoutAutoBottom:
		return true
	default:
		return false
	}
}

// BorderType selects how a tiled or floating node's border is drawn.
type BorderType int

const (
	BorderNone BorderType = iota
	BorderPixel
	BorderNormal
)

// HideEdgeBorders selects which workspace-edge-flush borders are suppressed.
type HideEdgeBorders int

const (
	HideNone HideEdgeBorders = iota
	HideVertical
	HideHorizontal
	HideBoth
	HideSmart
)

func (h HideEdgeBorders) String() string {
	switch h {
	case HideNone:
		return "none"
	case HideVertical:
		return "vertical"
	case HideHorizontal:
		return "horizontal"
	case HideBoth:
		return "both"
	case HideSmart:
		return "smart"
	default:
		return "unknown"
	}
}

// ParseHideEdgeBorders maps a config-file name to its HideEdgeBorders value.
// Unknown names fall back to HideNone.
func ParseHideEdgeBorders(s string) HideEdgeBorders {
	switch s {
	case "vertical":
		return HideVertical
	case "horizontal":
		return HideHorizontal
	case "both":
		return HideBoth
	case "smart":
		return HideSmart
	default:
		return HideNone
	}
}

// ViewState is a boolean state bit pushed to the compositor for a View.
type ViewState int

const (
	StateActivated ViewState = iota
)

// InactiveOutputHandle is the sentinel Output.Handle value meaning the
// output is not actually presented to the user (e.g. a switched-away VT);
// Views on such an output get their render mask cleared and are still
// arranged.
const InactiveOutputHandle = ^uintptr(0)

// Node is the tagged-variant tree node: Root, Output, Workspace, Container, or View.
// Cyclic back-references (Parent, Focused) are lookup links, not ownership;
// they are refreshed on every structural mutation by the tree package.
type Node struct {
	ID     string
	Name   string
	Handle uintptr // opaque compositor handle, populated for Output/View

	Kind Kind

	X, Y, W, H float64 // logical geometry in floating pixels

	Parent   *Node
	Children []*Node // ordered tiled children
	Floating []*Node // only populated on Workspace nodes

	Focused *Node // weak reference to the most recently focused child

	Layout          Layout
	WorkspaceLayout Layout // layout newly created containers under this workspace inherit

	NbMaster      int // count of master-group members; invariant: >= 0
	NbSlaveGroups int // target slave-group count; invariant: >= 1

	BorderType       BorderType
	BorderThickness  int
	BorderGeometry   Rect
	TitleBarGeometry Rect
	ActualGeometry   Rect
	CachedGeometry   Rect // geometry to restore when leaving Tabbed/Stacked

	Fullscreen bool
	IsFloating bool
	Visible    bool
}

// NewNode allocates a bare node of the given kind with sane auto-layout defaults.
func NewNode(id string, kind Kind) *Node {
	return &Node{
		ID:            id,
		Kind:          kind,
		NbMaster:      1,
		NbSlaveGroups: 1,
		Visible:       true,
	}
}

// IsLeaf reports whether n is a View: a node with no children of its own.
func (n *Node) IsLeaf() bool {
	return n.Kind == KindView
}

// IsContainer reports whether n applies a layout to children (Container or Workspace).
func (n *Node) IsContainer() bool {
	return n.Kind == KindContainer || n.Kind == KindWorkspace
}

// EffectiveMasterCount returns min(nb_master, |children|).
func (n *Node) EffectiveMasterCount() int {
	m := n.NbMaster
	if m < 0 {
		m = 0
	}
	if m > len(n.Children) {
		m = len(n.Children)
	}
	return m
}

// EffectiveSlaveGroupCount returns min(nb_slave_groups, |children| - master_count).
func (n *Node) EffectiveSlaveGroupCount() int {
	slaves := len(n.Children) - n.EffectiveMasterCount()
	if slaves <= 0 {
		return 0
	}
	g := n.NbSlaveGroups
	if g < 1 {
		g = 1
	}
	if g > slaves {
		g = slaves
	}
	return g
}

// Index returns this node's position in its parent's children (or floating)
// list, or -1 if not found (including when Parent is nil).
func (n *Node) Index() int {
	if n.Parent == nil {
		return -1
	}
	list := n.Parent.Children
	if n.IsFloating {
		list = n.Parent.Floating
	}
	for i, c := range list {
		if c == n {
			return i
		}
	}
	return -1
}

// Walk traverses the tiled subtree rooted at n, calling fn for each node.
// Traversal stops descending into a node's children when fn returns false
// for that node, but continues with siblings already queued.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// FindID searches the tiled subtree for a node with the given id.
func (n *Node) FindID(id string) *Node {
	var found *Node
	n.Walk(func(node *Node) bool {
		if node.ID == id {
			found = node
			return false
		}
		return true
	})
	return found
}

// Ancestors returns the chain of ancestors from n's parent up to the root, inclusive.
func (n *Node) Ancestors() []*Node {
	var out []*Node
	for p := n.Parent; p != nil; p = p.Parent {
		out = append(out, p)
	}
	return out
}

// NearestWorkspace returns the nearest Workspace ancestor (or n itself, if n is a Workspace).
func (n *Node) NearestWorkspace() *Node {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.Kind == KindWorkspace {
			return cur
		}
	}
	return nil
}

// NearestOutput returns the nearest Output ancestor (or n itself, if n is an Output).
func (n *Node) NearestOutput() *Node {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.Kind == KindOutput {
			return cur
		}
	}
	return nil
}

// LeafCount returns the number of View leaves in the tiled subtree.
func (n *Node) LeafCount() int {
	count := 0
	n.Walk(func(node *Node) bool {
		if node.IsLeaf() {
			count++
		}
		return true
	})
	return count
}
