// Package merge combines N scenes into one, reconciling their palettes
// either against a caller-provided target palette or by best-effort fit
// into a shared 256-color space.
package merge

import (
	"fmt"

	"go.uber.org/zap"

	vox "github.com/jpaver/ogtvox"
	voxerrors "github.com/jpaver/ogtvox/errors"
	"github.com/jpaver/ogtvox/vlog"
)

// Merge combines scenes in order into a new scene that owns copies of
// every input model, instance, layer, and group. If target is non-nil,
// every source color is remapped to its nearest match in *target. If
// target is nil, the merger uses a best-effort fit: it starts from the
// first scene's palette and tries to place each subsequent scene's colors
// into unclaimed slots, falling back to nearest-existing-entry remap once
// the palette fills up.
//
// This mirrors the teacher's addInstance/refs dedup pattern: copy
// everything reachable from each source, offsetting indices into the
// destination's growing index spaces as it goes.
func Merge(scenes []*vox.Scene, target *vox.Palette) (*vox.Scene, error) {
	for i, s := range scenes {
		if s == nil {
			return nil, voxerrors.MergeError{SourceIndex: i, Cause: fmt.Errorf("vox: nil source scene")}
		}
	}
	if len(scenes) == 0 {
		return vox.NewScene(), nil
	}

	dest := vox.NewScene()
	var remaps [][256]uint8
	if target != nil {
		dest.Palette = *target
		remaps = bestFitAgainstTarget(scenes, *target)
	} else {
		var combined vox.Palette
		combined, remaps = bestFit(scenes)
		dest.Palette = combined
	}

	for i, s := range scenes {
		if err := appendScene(dest, s, remaps[i]); err != nil {
			return nil, voxerrors.MergeError{SourceIndex: i, Cause: err}
		}
	}
	return dest, nil
}

// usedColorIndices returns the distinct non-zero palette indices actually
// referenced by a scene's models.
func usedColorIndices(s *vox.Scene) []int {
	seen := make(map[int]bool)
	var out []int
	for _, m := range s.Models {
		if m == nil {
			continue
		}
		for _, v := range m.Voxels {
			if v != 0 && !seen[int(v)] {
				seen[int(v)] = true
				out = append(out, int(v))
			}
		}
	}
	return out
}

func identityRemap() [256]uint8 {
	var r [256]uint8
	for i := range r {
		r[i] = uint8(i)
	}
	return r
}

// bestFit implements the best-effort palette fit: it seeds the combined
// palette from the first scene, then places each later scene's used colors
// into unclaimed slots, reusing an exact match when one already exists and
// falling back to a nearest-entry remap once the palette is full.
func bestFit(scenes []*vox.Scene) (vox.Palette, [][256]uint8) {
	var combined vox.Palette
	var claimed [256]bool
	remaps := make([][256]uint8, len(scenes))

	combined = scenes[0].Palette
	for _, ci := range usedColorIndices(scenes[0]) {
		claimed[ci] = true
	}
	remaps[0] = identityRemap()

	for si := 1; si < len(scenes); si++ {
		remap := identityRemap()
		for _, ci := range usedColorIndices(scenes[si]) {
			color := scenes[si].Palette[ci]
			if idx := exactMatch(combined, claimed, color); idx != 0 {
				remap[ci] = uint8(idx)
				continue
			}
			if idx := firstUnclaimed(claimed); idx != 0 {
				combined[idx] = color
				claimed[idx] = true
				remap[ci] = uint8(idx)
				continue
			}
			nearest := nearestClaimed(combined, claimed, color)
			vlog.L.Debug("combined palette is full, remapping to nearest existing entry",
				zap.Int("sourceScene", si), zap.Int("nearestIndex", nearest))
			remap[ci] = uint8(nearest)
		}
		remaps[si] = remap
	}
	return combined, remaps
}

// bestFitAgainstTarget remaps every scene's used colors to their nearest
// match in the caller-provided target palette.
func bestFitAgainstTarget(scenes []*vox.Scene, target vox.Palette) [][256]uint8 {
	remaps := make([][256]uint8, len(scenes))
	for si, s := range scenes {
		remap := identityRemap()
		for _, ci := range usedColorIndices(s) {
			remap[ci] = uint8(target.Nearest(s.Palette[ci]))
		}
		remaps[si] = remap
	}
	return remaps
}

func exactMatch(p vox.Palette, claimed [256]bool, c vox.RGBA) int {
	for i := 1; i < 256; i++ {
		if !claimed[i] {
			continue
		}
		if p[i].R == c.R && p[i].G == c.G && p[i].B == c.B && (p[i].A == c.A || p[i].A == 0) {
			return i
		}
	}
	return 0
}

func firstUnclaimed(claimed [256]bool) int {
	for i := 1; i < 256; i++ {
		if !claimed[i] {
			return i
		}
	}
	return 0
}

func nearestClaimed(p vox.Palette, claimed [256]bool, c vox.RGBA) int {
	best, bestDist := 0, -1
	for i := 1; i < 256; i++ {
		if !claimed[i] {
			continue
		}
		d := distance(p[i], c)
		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	if best == 0 {
		return 1
	}
	return best
}

func distance(a, b vox.RGBA) int {
	dr := int(a.R) - int(b.R)
	dg := int(a.G) - int(b.G)
	db := int(a.B) - int(b.B)
	da := int(a.A) - int(b.A)
	return dr*dr + dg*dg + db*db + da*da
}

// appendScene deep-copies one source scene's models, instances, layers, and
// groups into dest, offsetting every cross-referencing index into dest's
// index spaces and remapping voxel colors through remap.
func appendScene(dest *vox.Scene, s *vox.Scene, remap [256]uint8) error {
	modelBase := len(dest.Models)
	layerBase := len(dest.Layers)
	groupBase := len(dest.Groups)

	for _, m := range s.Models {
		if m == nil {
			dest.Models = append(dest.Models, nil)
			continue
		}
		copied := vox.NewModel(m.SizeX, m.SizeY, m.SizeZ)
		copy(copied.Voxels, m.Voxels)
		copied.RemapIndices(remap)
		dest.Models = append(dest.Models, copied)
	}

	for _, l := range s.Layers {
		dest.Layers = append(dest.Layers, l)
	}

	for _, g := range s.Groups {
		gg := g
		if gg.ParentGroupIndex != vox.NoParentGroup {
			gg.ParentGroupIndex += groupBase
		}
		gg.LayerIndex += layerBase
		dest.Groups = append(dest.Groups, gg)
	}

	for _, inst := range s.Instances {
		ii := inst
		ii.ModelIndex += modelBase
		ii.LayerIndex += layerBase
		if ii.GroupIndex != vox.NoParentGroup {
			ii.GroupIndex += groupBase
		}
		dest.Instances = append(dest.Instances, ii)
	}

	return nil
}
