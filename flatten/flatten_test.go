package flatten

import (
	"testing"

	vox "github.com/jpaver/ogtvox"
)

// buildChain assembles a root Transform -> Group -> Transform -> Shape node
// table, the minimal tree the strict alternation invariant allows.
func buildChain(groupHidden, innerHidden bool) *vox.NodeTable {
	nt := &vox.NodeTable{
		Nodes: make([]vox.Node, 4),
	}
	nt.Nodes[0] = vox.Node{Kind: vox.NodeTransform, Transform: vox.TransformNode{
		Transform:   vox.Identity(),
		ChildNodeID: 1,
		LayerID:     -1,
	}}
	nt.ChildPool = append(nt.ChildPool, 2)
	nt.Nodes[1] = vox.Node{Kind: vox.NodeGroup, Group: vox.GroupNode{
		Hidden: groupHidden, FirstChild: 0, NumChildren: 1,
	}}
	nt.Nodes[2] = vox.Node{Kind: vox.NodeTransform, Transform: vox.TransformNode{
		Transform:   vox.Transform{Rotation: vox.IdentityRotation, Translation: [3]int32{1, 0, 0}},
		ChildNodeID: 3,
		LayerID:     -1,
		Hidden:      innerHidden,
	}}
	nt.Nodes[3] = vox.Node{Kind: vox.NodeShape, Shape: vox.ShapeNode{ModelID: 0}}
	return nt
}

func TestFlattenProducesOneInstancePerShape(t *testing.T) {
	nt := buildChain(false, false)
	result, err := Flatten(nt)
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	if len(result.Instances) != 1 {
		t.Fatalf("got %d instances, want 1", len(result.Instances))
	}
	if len(result.Groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(result.Groups))
	}
	inst := result.Instances[0]
	if inst.Transform.Translation != [3]int32{1, 0, 0} {
		t.Errorf("instance world translation = %v, want [1 0 0]", inst.Transform.Translation)
	}
	if inst.GroupIndex != 0 {
		t.Errorf("instance GroupIndex = %d, want 0", inst.GroupIndex)
	}
}

// TestFlattenGroupHiddenFlagHasNoEffect mirrors ogt_vox_loader.h's nGRP
// handling, which parses a group's own _hidden dict value but never reads
// it back out: only a Transform node's hidden flag can ever hide anything.
func TestFlattenGroupHiddenFlagHasNoEffect(t *testing.T) {
	nt := buildChain(true, false)
	result, err := Flatten(nt)
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	if result.Instances[0].Hidden {
		t.Errorf("a group's own hidden flag must not hide its descendant instances")
	}
	if result.Groups[0].Hidden {
		t.Errorf("the group's recorded Hidden must reflect inherited state, not its own flag")
	}
}

func TestFlattenTransformHiddenOrsIntoDescendants(t *testing.T) {
	nt := buildChain(false, true)
	result, err := Flatten(nt)
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	if !result.Instances[0].Hidden {
		t.Errorf("a hidden Transform ancestor should make its descendant instances hidden")
	}
}

func TestFlattenDetectsCycle(t *testing.T) {
	nt := &vox.NodeTable{Nodes: make([]vox.Node, 2)}
	nt.Nodes[0] = vox.Node{Kind: vox.NodeTransform, Transform: vox.TransformNode{
		Transform: vox.Identity(), ChildNodeID: 1, LayerID: -1,
	}}
	nt.ChildPool = append(nt.ChildPool, 0)
	nt.Nodes[1] = vox.Node{Kind: vox.NodeGroup, Group: vox.GroupNode{
		FirstChild: 0, NumChildren: 1,
	}}

	if _, err := Flatten(nt); err == nil {
		t.Errorf("expected a cyclic-graph error when a group's child points back at an ancestor")
	}
}

// TestFlattenThenSampleTransformGlobalThroughKeyframedGroup is an
// end-to-end check that a keyframed ancestor group's sampled transform
// composes with an instance's own static local exactly once. Tree: a
// keyframed root Transform (static (10,0,0), animated to (20,0,0) at frame
// 5) wraps a Group, which wraps a second, unanimated Transform (static
// (0,0,1)) that wraps the Shape.
func TestFlattenThenSampleTransformGlobalThroughKeyframedGroup(t *testing.T) {
	nt := &vox.NodeTable{Nodes: make([]vox.Node, 4)}
	nt.Nodes[0] = vox.Node{Kind: vox.NodeTransform, Transform: vox.TransformNode{
		Transform: vox.Transform{Rotation: vox.IdentityRotation, Translation: [3]int32{10, 0, 0}},
		TransformKeyframes: []vox.TransformKeyframe{
			{Frame: 0, Local: vox.Transform{Rotation: vox.IdentityRotation, Translation: [3]int32{10, 0, 0}}},
			{Frame: 5, Local: vox.Transform{Rotation: vox.IdentityRotation, Translation: [3]int32{20, 0, 0}}},
		},
		ChildNodeID: 1,
		LayerID:     -1,
	}}
	nt.ChildPool = append(nt.ChildPool, 2)
	nt.Nodes[1] = vox.Node{Kind: vox.NodeGroup, Group: vox.GroupNode{FirstChild: 0, NumChildren: 1}}
	nt.Nodes[2] = vox.Node{Kind: vox.NodeTransform, Transform: vox.TransformNode{
		Transform:   vox.Transform{Rotation: vox.IdentityRotation, Translation: [3]int32{0, 0, 1}},
		ChildNodeID: 3,
		LayerID:     -1,
	}}
	nt.Nodes[3] = vox.Node{Kind: vox.NodeShape, Shape: vox.ShapeNode{ModelID: 0}}

	result, err := Flatten(nt)
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	if result.Instances[0].Transform.Translation != [3]int32{10, 0, 1} {
		t.Fatalf("static baked world = %v, want [10 0 1]", result.Instances[0].Transform.Translation)
	}

	scene := &vox.Scene{Groups: result.Groups}
	inst := result.Instances[0]
	got := vox.SampleTransformGlobal(scene, &inst, 5)
	want := [3]int32{20, 0, 1}
	if got.Translation != want {
		t.Errorf("SampleTransformGlobal(f=5) translation = %v, want %v (the group's sampled (20,0,0) composed with the inner Transform's static (0,0,1) exactly once)", got.Translation, want)
	}
}

func TestFlattenGroupTransformCarriesEnclosingTransformNode(t *testing.T) {
	nt := &vox.NodeTable{Nodes: make([]vox.Node, 3)}
	nt.Nodes[0] = vox.Node{Kind: vox.NodeTransform, Transform: vox.TransformNode{
		Transform:   vox.Transform{Rotation: vox.IdentityRotation, Translation: [3]int32{5, 0, 0}},
		ChildNodeID: 1,
		LayerID:     -1,
	}}
	nt.Nodes[1] = vox.Node{Kind: vox.NodeGroup, Group: vox.GroupNode{FirstChild: 0, NumChildren: 0}}

	result, err := Flatten(nt)
	if err != nil {
		t.Fatalf("Flatten: %v", err)
	}
	if result.Groups[0].Transform.Translation != [3]int32{5, 0, 0} {
		t.Errorf("group's local transform = %v, want the enclosing Transform node's own translation", result.Groups[0].Transform.Translation)
	}
}
