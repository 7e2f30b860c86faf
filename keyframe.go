package vox

import voxerrors "github.com/jpaver/ogtvox/errors"

// TransformKeyframe varies an instance's or group's local transform over
// time.
type TransformKeyframe struct {
	Frame uint32
	Local Transform
}

// ModelKeyframe varies a shape's selected model over time.
type ModelKeyframe struct {
	Frame uint32
	Model int
}

// ValidateTransformKeyframes checks that frames strictly increase, the
// invariant the chunk reader must enforce while assembling an nTRN's frame
// list.
func ValidateTransformKeyframes(frames []TransformKeyframe) error {
	for i := 1; i < len(frames); i++ {
		if frames[i].Frame <= frames[i-1].Frame {
			return voxerrors.ErrDuplicateKeyframe
		}
	}
	return nil
}

// ValidateModelKeyframes checks that frames strictly increase.
func ValidateModelKeyframes(frames []ModelKeyframe) error {
	for i := 1; i < len(frames); i++ {
		if frames[i].Frame <= frames[i-1].Frame {
			return voxerrors.ErrDuplicateKeyframe
		}
	}
	return nil
}

// SampleTransformLocal returns the local transform in effect at frame F:
// the payload of the greatest keyframe with frame_index <= F, the first
// keyframe if F precedes all of them, or static if there are no keyframes.
func SampleTransformLocal(frames []TransformKeyframe, static Transform, f int64) Transform {
	if len(frames) == 0 {
		return static
	}
	if f < int64(frames[0].Frame) {
		return frames[0].Local
	}
	chosen := frames[0]
	for _, kf := range frames {
		if int64(kf.Frame) <= f {
			chosen = kf
		} else {
			break
		}
	}
	return chosen.Local
}

// SampleModel returns the model index in effect at frame F, following the
// same last-known-good rule as SampleTransformLocal.
func SampleModel(frames []ModelKeyframe, static int, f int64) int {
	if len(frames) == 0 {
		return static
	}
	if f < int64(frames[0].Frame) {
		return frames[0].Model
	}
	chosen := frames[0]
	for _, kf := range frames {
		if int64(kf.Frame) <= f {
			chosen = kf
		} else {
			break
		}
	}
	return chosen.Model
}

// SampleTransformGlobal composes an instance's sampled local transform up
// through its chain of group parents, each also sampled at f. It samples
// inst.Local, not inst.Transform: Transform is already baked with every
// ancestor's static contribution (see ReadOptions.KeepGroups), so starting
// from it and then composing the group chain on top would apply every
// ancestor's static transform twice.
func SampleTransformGlobal(scene *Scene, inst *Instance, f int64) Transform {
	world := SampleTransformLocal(inst.TransformKeyframes, inst.Local, f)
	groupIndex := inst.GroupIndex
	for groupIndex >= 0 && groupIndex < len(scene.Groups) {
		g := &scene.Groups[groupIndex]
		local := SampleTransformLocal(g.TransformKeyframes, g.Transform, f)
		world = local.Compose(world)
		groupIndex = g.ParentGroupIndex
	}
	return world
}
