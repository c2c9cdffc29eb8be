package hires

import (
	"github.com/go-gl/mathgl/mgl32"
)

// BlockModelView is a window into a TileModel holding the faces produced for
// a single block. The view is reused for every block of a render: calling
// Initialize moves the window to the end of the model without allocating.
type BlockModelView struct {
	model      *TileModel
	start, end int
}

// NewBlockModelView returns a BlockModelView writing to the model passed.
func NewBlockModelView(model *TileModel) *BlockModelView {
	v := &BlockModelView{model: model}
	v.Initialize()
	return v
}

// Initialize resets the view to an empty window at the end of the model.
func (v *BlockModelView) Initialize() *BlockModelView {
	v.start = v.model.Size()
	v.end = v.start
	return v
}

// Model returns the TileModel the view writes to.
func (v *BlockModelView) Model() *TileModel {
	return v.model
}

// Add reserves n faces in the model and returns the index of the first of
// them in the model.
func (v *BlockModelView) Add(n int) int {
	i := v.model.Add(n)
	v.end = v.model.Size()
	return i
}

// Start returns the index in the model of the first face of the view.
func (v *BlockModelView) Start() int {
	return v.start
}

// End returns the index in the model after the last face of the view.
func (v *BlockModelView) End() int {
	return v.end
}

// Size returns the amount of faces in the view.
func (v *BlockModelView) Size() int {
	return v.end - v.start
}

// Translate moves all faces of the view by the offset passed.
func (v *BlockModelView) Translate(dx, dy, dz float32) *BlockModelView {
	v.model.Translate(v.start, v.end, mgl32.Vec3{dx, dy, dz})
	return v
}
