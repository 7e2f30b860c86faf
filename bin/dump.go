package bin

import (
	"fmt"
	"io"

	vox "github.com/jpaver/ogtvox"
)

// Dump writes a human-readable summary of scene to w: its models, layers,
// groups, instances, and any round-tripped extra chunks. It is
// diagnostic output only: no client code should parse it back.
func Dump(w io.Writer, scene *vox.Scene) {
	fmt.Fprintf(w, "models: %d\n", len(scene.Models))
	for i, m := range scene.Models {
		if m == nil {
			fmt.Fprintf(w, "  [%d] <nil>\n", i)
			continue
		}
		fmt.Fprintf(w, "  [%d] %dx%dx%d\n", i, m.SizeX, m.SizeY, m.SizeZ)
	}
	fmt.Fprintf(w, "layers: %d\n", len(scene.Layers))
	for i, l := range scene.Layers {
		fmt.Fprintf(w, "  [%d] name=%q hidden=%v\n", i, l.Name, l.Hidden)
	}
	fmt.Fprintf(w, "groups: %d\n", len(scene.Groups))
	for i, g := range scene.Groups {
		fmt.Fprintf(w, "  [%d] parent=%d layer=%d name=%q\n", i, g.ParentGroupIndex, g.LayerIndex, g.Name)
	}
	fmt.Fprintf(w, "instances: %d\n", len(scene.Instances))
	for i, inst := range scene.Instances {
		fmt.Fprintf(w, "  [%d] model=%d layer=%d group=%d hidden=%v name=%q keyframes=%d/%d\n",
			i, inst.ModelIndex, inst.LayerIndex, inst.GroupIndex, inst.Hidden, inst.Name,
			len(inst.TransformKeyframes), len(inst.ModelKeyframes))
	}
	if len(scene.Extra) > 0 {
		fmt.Fprintf(w, "extra chunks: %d\n", len(scene.Extra))
		for _, e := range scene.Extra {
			fmt.Fprintf(w, "  %q: %d bytes\n", string(e.Sig[:]), len(e.Content))
		}
	}
}
