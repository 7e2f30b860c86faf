package vox

import "testing"

func TestValidateTransformKeyframesRejectsNonIncreasing(t *testing.T) {
	frames := []TransformKeyframe{
		{Frame: 0, Local: Identity()},
		{Frame: 0, Local: Identity()},
	}
	if err := ValidateTransformKeyframes(frames); err == nil {
		t.Errorf("expected an error for two keyframes sharing a frame index")
	}
}

func TestValidateTransformKeyframesAcceptsStrictlyIncreasing(t *testing.T) {
	frames := []TransformKeyframe{
		{Frame: 0, Local: Identity()},
		{Frame: 5, Local: Identity()},
	}
	if err := ValidateTransformKeyframes(frames); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestSampleTransformLocalNoKeyframesReturnsStatic(t *testing.T) {
	static := Transform{Rotation: IdentityRotation, Translation: [3]int32{1, 2, 3}}
	got := SampleTransformLocal(nil, static, 100)
	if !got.Equal(static) {
		t.Errorf("SampleTransformLocal with no keyframes = %+v, want static %+v", got, static)
	}
}

func TestSampleTransformLocalBeforeFirstReturnsFirst(t *testing.T) {
	first := Transform{Rotation: IdentityRotation, Translation: [3]int32{9, 9, 9}}
	frames := []TransformKeyframe{
		{Frame: 10, Local: first},
		{Frame: 20, Local: Identity()},
	}
	got := SampleTransformLocal(frames, Identity(), 5)
	if !got.Equal(first) {
		t.Errorf("sampling before the first keyframe should return it, got %+v", got)
	}
}

func TestSampleTransformLocalPicksLastKnownGood(t *testing.T) {
	t0 := Transform{Rotation: IdentityRotation, Translation: [3]int32{0, 0, 0}}
	t10 := Transform{Rotation: IdentityRotation, Translation: [3]int32{10, 0, 0}}
	t20 := Transform{Rotation: IdentityRotation, Translation: [3]int32{20, 0, 0}}
	frames := []TransformKeyframe{
		{Frame: 0, Local: t0},
		{Frame: 10, Local: t10},
		{Frame: 20, Local: t20},
	}
	got := SampleTransformLocal(frames, Identity(), 15)
	if !got.Equal(t10) {
		t.Errorf("sample(15) = %+v, want the frame-10 keyframe %+v", got, t10)
	}
	got = SampleTransformLocal(frames, Identity(), 20)
	if !got.Equal(t20) {
		t.Errorf("sample(20) = %+v, want the frame-20 keyframe %+v", got, t20)
	}
}

func TestSampleModelFollowsSameRule(t *testing.T) {
	frames := []ModelKeyframe{
		{Frame: 0, Model: 1},
		{Frame: 10, Model: 2},
	}
	if got := SampleModel(frames, 0, 5); got != 1 {
		t.Errorf("SampleModel(5) = %d, want 1", got)
	}
	if got := SampleModel(frames, 0, 10); got != 2 {
		t.Errorf("SampleModel(10) = %d, want 2", got)
	}
	if got := SampleModel(nil, 7, 100); got != 7 {
		t.Errorf("SampleModel with no keyframes = %d, want static 7", got)
	}
}

func TestSampleTransformGlobalComposesThroughGroupChain(t *testing.T) {
	scene := NewScene()
	scene.Groups = append(scene.Groups, Group{
		ParentGroupIndex: NoParentGroup,
		Transform:        Transform{Rotation: IdentityRotation, Translation: [3]int32{10, 0, 0}},
	})
	scene.Groups = append(scene.Groups, Group{
		ParentGroupIndex: 0,
		Transform:        Transform{Rotation: IdentityRotation, Translation: [3]int32{0, 5, 0}},
	})
	inst := Instance{
		Local:      Transform{Rotation: IdentityRotation, Translation: [3]int32{0, 0, 1}},
		GroupIndex: 1,
	}
	got := SampleTransformGlobal(scene, &inst, 0)
	want := [3]int32{10, 5, 1}
	if got.Translation != want {
		t.Errorf("SampleTransformGlobal translation = %v, want %v", got.Translation, want)
	}
}
