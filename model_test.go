package vox

import "testing"

func TestModelSetAndVoxelAt(t *testing.T) {
	m := NewModel(2, 2, 2)
	m.Set(1, 0, 1, 42)
	if v, ok := m.VoxelAt(1, 0, 1); !ok || v != 42 {
		t.Errorf("VoxelAt(1,0,1) = (%d, %v), want (42, true)", v, ok)
	}
	if v, ok := m.VoxelAt(0, 0, 0); !ok || v != 0 {
		t.Errorf("VoxelAt(0,0,0) = (%d, %v), want (0, true)", v, ok)
	}
	if _, ok := m.VoxelAt(5, 0, 0); ok {
		t.Errorf("VoxelAt out of range should report ok=false")
	}
}

func TestModelSetOutOfRangeIsIgnored(t *testing.T) {
	m := NewModel(2, 2, 2)
	m.Set(-1, 0, 0, 9)
	m.Set(2, 0, 0, 9)
	if !m.IsEmpty() {
		t.Errorf("out-of-range Set calls should be silently dropped")
	}
}

func TestModelIsEmpty(t *testing.T) {
	m := NewModel(2, 2, 2)
	if !m.IsEmpty() {
		t.Errorf("freshly allocated model should be empty")
	}
	m.Set(0, 0, 0, 1)
	if m.IsEmpty() {
		t.Errorf("model with a non-zero voxel should not be empty")
	}
}

func TestModelHashStableAndSensitive(t *testing.T) {
	a := NewModel(2, 2, 2)
	a.Set(1, 1, 1, 7)
	b := NewModel(2, 2, 2)
	b.Set(1, 1, 1, 7)

	if a.Hash() != b.Hash() {
		t.Errorf("identical models should hash identically")
	}

	b.Set(0, 0, 0, 3)
	if a.Hash() == b.Hash() {
		t.Errorf("differing models should hash differently")
	}
}

func TestModelEqual(t *testing.T) {
	a := NewModel(2, 2, 2)
	a.Set(1, 1, 1, 7)
	b := NewModel(2, 2, 2)
	b.Set(1, 1, 1, 7)
	c := NewModel(2, 2, 3)

	if !a.Equal(b) {
		t.Errorf("models with identical dimensions and voxels should be equal")
	}
	if a.Equal(c) {
		t.Errorf("models with differing dimensions should not be equal")
	}
	if a.Equal(nil) || (*Model)(nil).Equal(a) {
		t.Errorf("a nil model should never equal a non-nil one")
	}
}

func TestModelRemapIndices(t *testing.T) {
	m := NewModel(2, 1, 1)
	m.Set(0, 0, 0, 5)
	m.Set(1, 0, 0, 0)

	var remap [256]uint8
	remap[5] = 9

	m.RemapIndices(remap)
	if v, _ := m.VoxelAt(0, 0, 0); v != 9 {
		t.Errorf("non-zero voxel should be remapped, got %d", v)
	}
	if v, _ := m.VoxelAt(1, 0, 0); v != 0 {
		t.Errorf("empty voxel should stay 0 regardless of remap[0], got %d", v)
	}
}
