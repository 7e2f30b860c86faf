// Package flatten folds a vox.NodeTable's directed tree of
// transform/group/shape nodes into the flat instance list a vox.Scene
// exposes to callers.
package flatten

import (
	vox "github.com/jpaver/ogtvox"
	voxerrors "github.com/jpaver/ogtvox/errors"
)

// state is the inherited context the DFS carries down from the root,
// following the original loader's generate_instances_for_node: a
// Transform node's own name only overrides an empty inherited name
// (outermost wins), a Transform's layer overrides the inherited layer only
// if it sets one (LayerID >= 0), and a Transform's hidden flag ORs into the
// inherited hidden rather than replacing it, so any hidden ancestor keeps
// its descendants hidden regardless of what nearer ancestors set.
type state struct {
	world  vox.Transform
	layer  int
	hidden bool
	name   string

	// localKeyframes and local are the immediately-enclosing Transform
	// node's own local transform and animation, attached to whichever
	// Group or Shape that Transform's child turns out to be (the
	// Transform/Group|Shape alternation the node table's invariant
	// guarantees lets a single pending value suffice).
	local          vox.Transform
	localKeyframes []vox.TransformKeyframe
}

// Result is everything the flattener produces: the flat instance list plus
// the group table the sampler's parent-chain walk needs (built from
// Transform nodes that wrap a Group, in the order first visited).
type Result struct {
	Instances []vox.Instance
	Groups    []vox.Group
}

// Flatten performs a depth-first traversal of nodes from node 0 (always a
// Transform) and returns the flattened instance list. It fails with
// cyclic_graph if the traversal re-enters a node that is already on the
// current path from the root, defending against malformed input that
// forges a cycle through repeated child ids. A node reached again through
// a different path (shared, not cyclic) is visited again.
func Flatten(nodes *vox.NodeTable) (Result, error) {
	if len(nodes.Nodes) == 0 {
		return Result{}, nil
	}

	f := &flattener{nodes: nodes, visited: make(map[uint32]bool)}
	st := state{world: vox.Identity(), layer: 0, hidden: false, name: ""}
	if err := f.visit(0, st, -1); err != nil {
		return Result{}, err
	}
	return Result{Instances: f.instances, Groups: f.groups}, nil
}

type flattener struct {
	nodes     *vox.NodeTable
	visited   map[uint32]bool
	instances []vox.Instance
	groups    []vox.Group
}

func (f *flattener) node(id uint32) (vox.Node, error) {
	if int(id) >= len(f.nodes.Nodes) {
		return vox.Node{}, voxerrors.ErrDanglingReference
	}
	return f.nodes.Nodes[id], nil
}

// visit descends into node id with inherited context st. parentGroup is
// the destination Groups index of the nearest enclosing group (-1 at the
// root), used to build the sampler's parent chain.
func (f *flattener) visit(id uint32, st state, parentGroup int) error {
	if f.visited[id] {
		return voxerrors.ErrCyclicGraph
	}
	f.visited[id] = true
	defer func() { f.visited[id] = false }()

	n, err := f.node(id)
	if err != nil {
		return err
	}

	switch n.Kind {
	case vox.NodeTransform:
		t := n.Transform
		next := st
		next.world = st.world.Compose(t.Transform)
		next.local = t.Transform
		next.localKeyframes = t.TransformKeyframes
		if t.LayerID >= 0 {
			next.layer = int(t.LayerID)
		}
		next.hidden = next.hidden || t.Hidden
		if next.name == "" {
			next.name = t.Name
		}
		return f.visit(t.ChildNodeID, next, parentGroup)

	case vox.NodeGroup:
		g := n.Group
		groupDestIndex := len(f.groups)
		f.groups = append(f.groups, vox.Group{
			ParentGroupIndex:   parentGroup,
			LayerIndex:         st.layer,
			Transform:          st.local,
			Hidden:             st.hidden,
			Name:               g.Name,
			TransformKeyframes: st.localKeyframes,
		})
		child := st
		child.local = vox.Identity()
		child.localKeyframes = nil
		for _, childID := range f.nodes.Children(g) {
			if err := f.visit(childID, child, groupDestIndex); err != nil {
				return err
			}
		}
		return nil

	case vox.NodeShape:
		s := n.Shape
		f.instances = append(f.instances, vox.Instance{
			Name:               st.name,
			Transform:          st.world,
			ModelIndex:         s.ModelID,
			LayerIndex:         st.layer,
			GroupIndex:         parentGroup,
			Hidden:             st.hidden,
			Local:              st.local,
			TransformKeyframes: st.localKeyframes,
			ModelKeyframes:     s.ModelKeyframes,
		})
		return nil
	}
	return nil
}
