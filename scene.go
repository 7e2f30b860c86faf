// Package vox implements a reader, writer, flattener, merger, and keyframe
// sampler for the MagicaVoxel ".vox" chunked binary scene format.
package vox

import "strings"

// Layer is a named visibility grouping of instances.
type Layer struct {
	Name   string
	Hidden bool
	Color  RGBA
}

// NoParentGroup is the sentinel ParentGroupIndex of a group with no parent.
const NoParentGroup = -1

// Group is a non-leaf scene node that collects child transforms.
type Group struct {
	ParentGroupIndex   int
	LayerIndex         int
	Transform          Transform
	Hidden             bool
	Name               string
	TransformKeyframes []TransformKeyframe
}

// Instance is a placement of a model in the scene.
type Instance struct {
	Name       string
	Transform  Transform
	ModelIndex int
	LayerIndex int
	GroupIndex int
	Hidden     bool

	// Local is the pure local transform of the Transform node immediately
	// enclosing this instance's Shape, unaccumulated with any ancestor —
	// the same kind of value Group.Transform stores for a group's own
	// enclosing Transform. TransformKeyframes vary this value, not
	// Transform (which is already ancestor-baked); SampleTransformGlobal
	// samples Local and composes it up through the group chain.
	Local              Transform
	TransformKeyframes []TransformKeyframe
	ModelKeyframes     []ModelKeyframe
}

// ExtraChunk is a chunk payload the codec does not interpret but still
// round-trips verbatim: MATL, MATT, rCAM, NOTE, rOBJ, and any chunk id this
// implementation does not otherwise recognize.
type ExtraChunk struct {
	Sig     [4]byte
	Content []byte
}

// Scene owns every model, instance, layer, and group produced by reading a
// file, by constructing one directly, or by merging others. All of a
// scene's slices are considered owned; callers should treat a *Scene as
// read-only once it escapes a builder.
type Scene struct {
	Models    []*Model
	Instances []Instance
	Layers    []Layer
	Groups    []Group
	Palette   Palette

	// Extra holds round-tripped material/camera/note/object chunks, plus
	// any chunk id this implementation does not otherwise interpret.
	Extra []ExtraChunk
}

// NewScene returns an empty scene with the built-in default palette.
func NewScene() *Scene {
	return &Scene{Palette: DefaultPalette()}
}

// FindLayer returns the index of the first layer with the given name, or -1
// if none matches.
func (s *Scene) FindLayer(name string) int {
	for i, l := range s.Layers {
		if strings.EqualFold(l.Name, name) {
			return i
		}
	}
	return -1
}

// FindGroup returns the index of the first group with the given name, or -1
// if none matches.
func (s *Scene) FindGroup(name string) int {
	for i, g := range s.Groups {
		if strings.EqualFold(g.Name, name) {
			return i
		}
	}
	return -1
}
