package bin

import (
	"sort"

	vox "github.com/jpaver/ogtvox"
)

// postProcess runs the four post-processing passes in the order the chunk
// reader's component spec fixes: dedupe, drop empty, sort, then (for this
// implementation, a no-op) name patch-up. Names are already owned strings
// rather than string-pool offsets, so there is nothing left to patch by the
// time a scene reaches this function; see DESIGN.md.
func postProcess(models []*vox.Model, instances []vox.Instance, opts ReadOptions) ([]*vox.Model, []vox.Instance) {
	if !opts.KeepDuplicateModels {
		models, instances = dedupeModels(models, instances)
	}
	models, instances = dropEmptyModels(models, instances, opts.KeepEmptyModelInstances)
	sortInstancesByModel(instances)
	return models, instances
}

// dedupeModels compares every pair of models by hash then by size and byte
// equality, remapping j's instances onto i and discarding the duplicate.
func dedupeModels(models []*vox.Model, instances []vox.Instance) ([]*vox.Model, []vox.Instance) {
	remap := make([]int, len(models))
	keep := make([]*vox.Model, 0, len(models))
	for j, m := range models {
		found := -1
		for i := 0; i < len(keep); i++ {
			if keep[i].Equal(m) {
				found = i
				break
			}
		}
		if found >= 0 {
			remap[j] = found
		} else {
			remap[j] = len(keep)
			keep = append(keep, m)
		}
	}
	for i := range instances {
		instances[i].ModelIndex = remap[instances[i].ModelIndex]
	}
	return keep, instances
}

// dropEmptyModels compacts away null and all-zero models, remapping every
// instance's ModelIndex through the resulting forward map. Instances left
// pointing at a dropped model are removed unless keepInstances is set.
func dropEmptyModels(models []*vox.Model, instances []vox.Instance, keepInstances bool) ([]*vox.Model, []vox.Instance) {
	remap := make([]int, len(models))
	kept := make([]*vox.Model, 0, len(models))
	for i, m := range models {
		if m == nil || m.IsEmpty() {
			remap[i] = -1
			continue
		}
		remap[i] = len(kept)
		kept = append(kept, m)
	}

	out := make([]vox.Instance, 0, len(instances))
	for _, inst := range instances {
		newIndex := remap[inst.ModelIndex]
		if newIndex < 0 && !keepInstances {
			continue
		}
		if newIndex >= 0 {
			inst.ModelIndex = newIndex
		}
		out = append(out, inst)
	}
	return kept, out
}

// sortInstancesByModel stably sorts instances by ascending ModelIndex.
func sortInstancesByModel(instances []vox.Instance) {
	sort.SliceStable(instances, func(i, j int) bool {
		return instances[i].ModelIndex < instances[j].ModelIndex
	})
}
