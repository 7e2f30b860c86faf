package bin

import (
	"fmt"

	vox "github.com/jpaver/ogtvox"
)

// Write emits a complete ".vox" file for scene in the canonical chunk
// order: models, a flattened root transform/group pair wrapping one
// transform+shape pair per instance, the palette, layers, then any
// round-tripped extra chunks. Node ids are assigned deterministically: 0 is
// the root transform, 1 the root group, [2, 2+N) one shape node per
// instance, [2+N, 2+2N) one transform node per instance — this implementation
// gives every instance its own shape node (rather than sharing one shape
// node per model) so that per-instance model-selection keyframes always
// round-trip; see DESIGN.md.
func Write(scene *vox.Scene, opts WriteOptions) ([]byte, error) {
	w := NewWriter()
	version := opts.Version
	if version == 0 {
		version = defaultVersion
	}

	if err := w.Bytes([]byte(magic)); err != nil {
		return nil, err
	}
	if err := w.U32(version); err != nil {
		return nil, err
	}

	mainHeaderStart := w.Offset()
	if err := writeChunkHeader(w, sigMAIN, 0, 0); err != nil {
		return nil, err
	}
	mainChildrenSizeOffset := mainHeaderStart + 8 // past signature + content_size
	childrenStart := w.Offset()

	for _, m := range scene.Models {
		if err := writeModelChunks(w, m); err != nil {
			return nil, err
		}
	}

	n := len(scene.Instances)
	if err := writeNTRN(w, 0, "", false, vox.Identity(), nil, 1, -1, 0xFFFFFFFF); err != nil {
		return nil, err
	}

	childIDs := make([]uint32, n)
	for i := range childIDs {
		childIDs[i] = uint32(2 + n + i)
	}
	if err := writeNGRP(w, 1, "", false, childIDs); err != nil {
		return nil, err
	}

	for i, inst := range scene.Instances {
		if err := writeNSHP(w, uint32(2+i), inst.ModelIndex, inst.ModelKeyframes); err != nil {
			return nil, err
		}
	}

	for i, inst := range scene.Instances {
		layerID := int32(inst.LayerIndex)
		if err := writeNTRN(w, uint32(2+n+i), inst.Name, inst.Hidden, inst.Transform, inst.TransformKeyframes, uint32(2+i), layerID, 0xFFFFFFFF); err != nil {
			return nil, err
		}
	}

	if err := writeRGBA(w, scene.Palette); err != nil {
		return nil, err
	}

	for i, l := range scene.Layers {
		if err := writeLAYR(w, i, l); err != nil {
			return nil, err
		}
	}

	for _, e := range scene.Extra {
		if err := writeChunkHeader(w, e.Sig, uint32(len(e.Content)), 0); err != nil {
			return nil, err
		}
		if err := w.Bytes(e.Content); err != nil {
			return nil, err
		}
	}

	total := w.Offset()
	w.Patch(mainChildrenSizeOffset, uint32(total-childrenStart))
	return w.Output(), nil
}

func writeModelChunks(w *Writer, m *vox.Model) error {
	if m == nil {
		return fmt.Errorf("vox: cannot write a nil model")
	}
	if err := writeChunkHeader(w, sigSIZE, 12, 0); err != nil {
		return err
	}
	if err := w.U32(uint32(m.SizeX)); err != nil {
		return err
	}
	if err := w.U32(uint32(m.SizeY)); err != nil {
		return err
	}
	if err := w.U32(uint32(m.SizeZ)); err != nil {
		return err
	}

	var voxels [][4]byte
	for z := 0; z < m.SizeZ; z++ {
		for y := 0; y < m.SizeY; y++ {
			for x := 0; x < m.SizeX; x++ {
				ci, _ := m.VoxelAt(x, y, z)
				if ci != 0 {
					voxels = append(voxels, [4]byte{byte(x), byte(y), byte(z), ci})
				}
			}
		}
	}
	contentSize := uint32(4 + 4*len(voxels))
	if err := writeChunkHeader(w, sigXYZI, contentSize, 0); err != nil {
		return err
	}
	if err := w.U32(uint32(len(voxels))); err != nil {
		return err
	}
	for _, v := range voxels {
		if err := w.Bytes(v[:]); err != nil {
			return err
		}
	}
	return nil
}

// nodeContent buffers a chunk's content so its size can be measured before
// the header is written, mirroring the byte cursor's grow-then-patch model
// at chunk scale.
func nodeContent(fn func(*Writer) error) ([]byte, error) {
	cw := NewWriter()
	if err := fn(cw); err != nil {
		return nil, err
	}
	return cw.Output(), nil
}

func writeNTRN(w *Writer, nodeID uint32, name string, hidden bool, transform vox.Transform, keyframes []vox.TransformKeyframe, childID uint32, layerID int32, reserved uint32) error {
	content, err := nodeContent(func(cw *Writer) error {
		if err := cw.U32(nodeID); err != nil {
			return err
		}
		var d Dict
		if name != "" {
			d.Set("_name", name)
		}
		if hidden {
			d.Set("_hidden", boolString(hidden))
		}
		if err := WriteDict(cw, d); err != nil {
			return err
		}
		if err := cw.U32(childID); err != nil {
			return err
		}
		if err := cw.U32(reserved); err != nil {
			return err
		}
		if err := cw.I32(layerID); err != nil {
			return err
		}

		frames := keyframes
		if len(frames) == 0 {
			frames = []vox.TransformKeyframe{{Frame: 0, Local: transform}}
		}
		if err := cw.U32(uint32(len(frames))); err != nil {
			return err
		}
		for _, kf := range frames {
			if err := writeFrameDict(cw, kf); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	if err := writeChunkHeader(w, sigNTRN, uint32(len(content)), 0); err != nil {
		return err
	}
	return w.Bytes(content)
}

func writeFrameDict(w *Writer, kf vox.TransformKeyframe) error {
	var d Dict
	rb, err := vox.ByteFromRotation(kf.Local.Rotation)
	if err != nil {
		return err
	}
	d.Set("_r", formatInt(int64(rb)))
	t := kf.Local.Translation
	d.Set("_t", fmt.Sprintf("%d %d %d", t[0], t[1], t[2]))
	if kf.Frame != 0 {
		d.Set("_f", formatInt(int64(kf.Frame)))
	}
	return WriteDict(w, d)
}

func writeNGRP(w *Writer, nodeID uint32, name string, hidden bool, children []uint32) error {
	content, err := nodeContent(func(cw *Writer) error {
		if err := cw.U32(nodeID); err != nil {
			return err
		}
		var d Dict
		if name != "" {
			d.Set("_name", name)
		}
		if hidden {
			d.Set("_hidden", boolString(hidden))
		}
		if err := WriteDict(cw, d); err != nil {
			return err
		}
		if err := cw.U32(uint32(len(children))); err != nil {
			return err
		}
		for _, c := range children {
			if err := cw.U32(c); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	if err := writeChunkHeader(w, sigNGRP, uint32(len(content)), 0); err != nil {
		return err
	}
	return w.Bytes(content)
}

func writeNSHP(w *Writer, nodeID uint32, modelIndex int, keyframes []vox.ModelKeyframe) error {
	content, err := nodeContent(func(cw *Writer) error {
		if err := cw.U32(nodeID); err != nil {
			return err
		}
		if err := WriteDict(cw, Dict{}); err != nil {
			return err
		}
		frames := keyframes
		if len(frames) == 0 {
			frames = []vox.ModelKeyframe{{Frame: 0, Model: modelIndex}}
		}
		if err := cw.U32(uint32(len(frames))); err != nil {
			return err
		}
		for _, kf := range frames {
			if err := cw.U32(uint32(kf.Model)); err != nil {
				return err
			}
			var d Dict
			if kf.Frame != 0 {
				d.Set("_f", formatInt(int64(kf.Frame)))
			}
			if err := WriteDict(cw, d); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	if err := writeChunkHeader(w, sigNSHP, uint32(len(content)), 0); err != nil {
		return err
	}
	return w.Bytes(content)
}

func writeRGBA(w *Writer, p vox.Palette) error {
	p[0].A = 0
	disk := p.Rotate()
	if err := writeChunkHeader(w, sigRGBA, 1024, 0); err != nil {
		return err
	}
	for _, c := range disk {
		if err := w.Bytes([]byte{c.R, c.G, c.B, c.A}); err != nil {
			return err
		}
	}
	return nil
}

func writeLAYR(w *Writer, index int, l vox.Layer) error {
	content, err := nodeContent(func(cw *Writer) error {
		if err := cw.I32(int32(index)); err != nil {
			return err
		}
		var d Dict
		if l.Name != "" {
			d.Set("_name", l.Name)
		}
		if l.Hidden {
			d.Set("_hidden", boolString(l.Hidden))
		}
		if l.Color != (vox.RGBA{}) {
			d.Set("_color", fmt.Sprintf("%d %d %d", l.Color.R, l.Color.G, l.Color.B))
		}
		if err := WriteDict(cw, d); err != nil {
			return err
		}
		return cw.I32(-1)
	})
	if err != nil {
		return err
	}
	if err := writeChunkHeader(w, sigLAYR, uint32(len(content)), 0); err != nil {
		return err
	}
	return w.Bytes(content)
}
