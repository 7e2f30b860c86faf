package bin

import (
	"testing"

	vox "github.com/jpaver/ogtvox"
)

func buildSimpleScene() *vox.Scene {
	s := vox.NewScene()
	m := vox.NewModel(2, 2, 2)
	m.Set(0, 0, 0, 1)
	m.Set(1, 1, 1, 2)
	s.Models = append(s.Models, m)
	s.Layers = append(s.Layers, vox.Layer{Name: "main"})
	s.Instances = append(s.Instances, vox.Instance{
		Name:       "crate",
		Transform:  vox.Transform{Rotation: vox.IdentityRotation, Translation: [3]int32{3, 0, 0}},
		ModelIndex: 0,
		LayerIndex: 0,
		GroupIndex: vox.NoParentGroup,
	})
	return s
}

func TestWriteReadRoundTripsSingleInstance(t *testing.T) {
	s := buildSimpleScene()
	buf, err := Write(s, DefaultWriteOptions())
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, warns, err := Read(buf, DefaultReadOptions())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(warns) != 0 {
		t.Errorf("unexpected warnings: %v", warns)
	}
	if len(got.Models) != 1 {
		t.Fatalf("got %d models, want 1", len(got.Models))
	}
	if v, _ := got.Models[0].VoxelAt(0, 0, 0); v != 1 {
		t.Errorf("voxel(0,0,0) = %d, want 1", v)
	}
	if v, _ := got.Models[0].VoxelAt(1, 1, 1); v != 2 {
		t.Errorf("voxel(1,1,1) = %d, want 2", v)
	}
	if len(got.Instances) != 1 {
		t.Fatalf("got %d instances, want 1", len(got.Instances))
	}
	inst := got.Instances[0]
	if inst.Name != "crate" {
		t.Errorf("instance name = %q, want \"crate\"", inst.Name)
	}
	if inst.Transform.Translation != [3]int32{3, 0, 0} {
		t.Errorf("instance translation = %v, want [3 0 0]", inst.Transform.Translation)
	}
	if len(got.Layers) != 1 || got.Layers[0].Name != "main" {
		t.Errorf("layers = %+v, want one layer named \"main\"", got.Layers)
	}
}

func TestWriteReadRoundTripsPalette(t *testing.T) {
	s := buildSimpleScene()
	s.Palette[1] = vox.RGBA{R: 10, G: 20, B: 30, A: 255}

	buf, err := Write(s, DefaultWriteOptions())
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, _, err := Read(buf, DefaultReadOptions())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got.Palette[1] != s.Palette[1] {
		t.Errorf("round-tripped palette[1] = %+v, want %+v", got.Palette[1], s.Palette[1])
	}
}

func TestWriteReadRoundTripsTransformKeyframes(t *testing.T) {
	s := buildSimpleScene()
	s.Instances[0].TransformKeyframes = []vox.TransformKeyframe{
		{Frame: 0, Local: vox.Transform{Rotation: vox.IdentityRotation, Translation: [3]int32{0, 0, 0}}},
		{Frame: 10, Local: vox.Transform{Rotation: vox.IdentityRotation, Translation: [3]int32{5, 0, 0}}},
	}

	buf, err := Write(s, DefaultWriteOptions())
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, _, err := Read(buf, DefaultReadOptions())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got.Instances) != 1 {
		t.Fatalf("got %d instances, want 1", len(got.Instances))
	}
	kfs := got.Instances[0].TransformKeyframes
	if len(kfs) != 2 {
		t.Fatalf("got %d transform keyframes, want 2", len(kfs))
	}
	if kfs[1].Frame != 10 || kfs[1].Local.Translation != [3]int32{5, 0, 0} {
		t.Errorf("second keyframe = %+v, want frame 10 at [5 0 0]", kfs[1])
	}
}

func TestWriteReadRoundTripsExtraChunks(t *testing.T) {
	s := buildSimpleScene()
	s.Extra = append(s.Extra, vox.ExtraChunk{Sig: [4]byte{'N', 'O', 'T', 'E'}, Content: []byte{1, 2, 3}})

	buf, err := Write(s, DefaultWriteOptions())
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, _, err := Read(buf, DefaultReadOptions())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got.Extra) != 1 || got.Extra[0].Sig != [4]byte{'N', 'O', 'T', 'E'} {
		t.Fatalf("extra chunks = %+v", got.Extra)
	}
}

func TestReadRejectsBadMagic(t *testing.T) {
	_, _, err := Read([]byte("NOPE0000"), DefaultReadOptions())
	if err == nil {
		t.Errorf("expected an error for a buffer without the VOX magic")
	}
}

func TestReadRejectsUnsupportedVersion(t *testing.T) {
	w := NewWriter()
	w.Bytes([]byte(magic))
	w.U32(1) // below minVersion
	w.Bytes(sigMAIN[:])
	w.U32(0)
	w.U32(0)
	_, _, err := Read(w.Output(), DefaultReadOptions())
	if err == nil {
		t.Errorf("expected an error for a version below the supported range")
	}
}
