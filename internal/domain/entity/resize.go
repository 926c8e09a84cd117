package entity

// ResizeEdge identifies which edge of a container a resize request pulls on.
type ResizeEdge int

const (
	EdgeLeft ResizeEdge = iota
	EdgeRight
	EdgeTop
	EdgeBottom
)

// IsHorizontal reports whether e resizes along the width axis.
func (e ResizeEdge) IsHorizontal() bool {
	return e == EdgeLeft || e == EdgeRight
}

// IsVertical reports whether e resizes along the height axis.
func (e ResizeEdge) IsVertical() bool {
	return e == EdgeTop || e == EdgeBottom
}
