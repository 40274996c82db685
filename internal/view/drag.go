package view

import "fmt"

// Drag is the pointer gesture in progress. It is one of Idle, Panning,
// DraggingProbe or DraggingSource.
type Drag interface {
	isDrag()
	fmt.Stringer
}

// Idle means no gesture is active.
type Idle struct{}

// Panning moves the camera.
type Panning struct{}

// DraggingProbe moves the measurement probe.
type DraggingProbe struct{}

// DraggingSource edits the shared array spacing. Index records which glyph
// started the gesture; every source shares the one spacing value.
type DraggingSource struct {
	Index int
}

func (Idle) isDrag()           {}
func (Panning) isDrag()        {}
func (DraggingProbe) isDrag()  {}
func (DraggingSource) isDrag() {}

func (Idle) String() string          { return "idle" }
func (Panning) String() string       { return "panning" }
func (DraggingProbe) String() string { return "dragging-probe" }
func (d DraggingSource) String() string {
	return fmt.Sprintf("dragging-source[%d]", d.Index)
}
