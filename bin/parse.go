package bin

import (
	"fmt"

	"go.uber.org/zap"

	vox "github.com/jpaver/ogtvox"
	voxerrors "github.com/jpaver/ogtvox/errors"
)

// rawScene is everything a single pass over the chunk tree collects, before
// the flattener and post-processors turn it into a vox.Scene.
type rawScene struct {
	Nodes       vox.NodeTable
	nodeSet     map[uint32]bool
	Models      []*vox.Model
	Palette     vox.Palette
	paletteSeen bool
	imap        *[256]uint8
	Layers      []vox.Layer
	layersSeen  bool
	Extra       []RawChunk

	pendingSize [3]int
	haveSize    bool
}

func (rs *rawScene) ensureNode(id uint32) {
	if rs.nodeSet == nil {
		rs.nodeSet = make(map[uint32]bool)
	}
	for uint32(len(rs.Nodes.Nodes)) <= id {
		rs.Nodes.Nodes = append(rs.Nodes.Nodes, vox.Node{})
	}
	rs.nodeSet[id] = true
}

// parseBuffer runs the single-pass chunk reader described by the chunk
// reader component: magic/version check, then MAIN, then every sibling
// chunk in turn.
func parseBuffer(buf []byte, logger *zap.Logger) (*rawScene, voxerrors.Errors, error) {
	r := NewReader(buf)

	sig, err := r.Bytes(4)
	if err != nil {
		return nil, nil, voxerrors.ParseError{Kind: voxerrors.KindShortRead, Offset: r.Offset(), Cause: err}
	}
	if string(sig) != magic {
		return nil, nil, voxerrors.ParseError{Kind: voxerrors.KindBadMagic, Offset: 0, Cause: voxerrors.ErrBadMagic}
	}
	version, err := r.U32()
	if err != nil {
		return nil, nil, voxerrors.ParseError{Kind: voxerrors.KindShortRead, Offset: r.Offset(), Cause: err}
	}
	if version < minVersion || version > maxVersion {
		return nil, nil, voxerrors.ParseError{Kind: voxerrors.KindUnsupportedVersion, Offset: r.Offset(), Cause: voxerrors.ErrUnsupportedVersion}
	}

	mainHeader, err := readChunkHeader(r)
	if err != nil {
		return nil, nil, voxerrors.ParseError{Kind: voxerrors.KindShortRead, Offset: r.Offset(), Cause: err}
	}
	if mainHeader.Sig != sigMAIN {
		return nil, nil, voxerrors.ChunkError{Index: 0, Sig: mainHeader.Sig, Cause: fmt.Errorf("vox: first chunk is not MAIN")}
	}
	if mainHeader.ContentSize != 0 {
		return nil, nil, voxerrors.ChunkError{Index: 0, Sig: mainHeader.Sig, Cause: fmt.Errorf("vox: MAIN content_size must be 0, got %d", mainHeader.ContentSize)}
	}

	rs := &rawScene{}
	var warns voxerrors.Errors
	index := 0
	for r.Remaining() > 0 {
		index++
		h, err := readChunkHeader(r)
		if err != nil {
			return nil, warns, voxerrors.ParseError{Kind: voxerrors.KindShortRead, Offset: r.Offset(), Cause: err}
		}
		content, err := r.Bytes(int(h.ContentSize))
		if err != nil {
			return nil, warns, voxerrors.ChunkError{Index: index, Sig: h.Sig, Cause: err}
		}
		if _, err := r.Bytes(int(h.ChildrenSize)); err != nil {
			return nil, warns, voxerrors.ChunkError{Index: index, Sig: h.Sig, Cause: err}
		}

		if err := rs.handleChunk(h.Sig, content, logger); err != nil {
			return nil, warns, voxerrors.ChunkError{Index: index, Sig: h.Sig, Cause: err}
		}
	}

	if !rs.paletteSeen {
		logger.Debug("no RGBA chunk present, falling back to the default palette")
		rs.Palette = vox.DefaultPalette()
	}
	if rs.imap != nil {
		logger.Debug("remapping palette and voxel indices through an IMAP chunk")
		applyIMAP(rs)
	}
	if !rs.layersSeen {
		rs.Layers = []vox.Layer{{Name: "", Hidden: false}}
	}

	return rs, warns, nil
}

func (rs *rawScene) handleChunk(sig [4]byte, content []byte, logger *zap.Logger) error {
	cr := NewReader(content)
	switch sig {
	case sigSIZE:
		return rs.readSIZE(cr)
	case sigXYZI:
		return rs.readXYZI(cr)
	case sigRGBA:
		return rs.readRGBA(cr)
	case sigIMAP:
		return rs.readIMAP(cr)
	case sigNTRN:
		return rs.readNTRN(cr, logger)
	case sigNGRP:
		return rs.readNGRP(cr)
	case sigNSHP:
		return rs.readNSHP(cr)
	case sigLAYR:
		return rs.readLAYR(cr, logger)
	default:
		rs.Extra = append(rs.Extra, RawChunk{Sig: sig, Content: append([]byte(nil), content...)})
		return nil
	}
}

func (rs *rawScene) readSIZE(cr *Reader) error {
	sx, err := cr.U32()
	if err != nil {
		return err
	}
	sy, err := cr.U32()
	if err != nil {
		return err
	}
	sz, err := cr.U32()
	if err != nil {
		return err
	}
	rs.pendingSize = [3]int{int(sx), int(sy), int(sz)}
	rs.haveSize = true
	return nil
}

func (rs *rawScene) readXYZI(cr *Reader) error {
	if !rs.haveSize {
		return fmt.Errorf("vox: XYZI chunk without a preceding SIZE")
	}
	n, err := cr.U32()
	if err != nil {
		return err
	}
	if n == 0 {
		rs.Models = append(rs.Models, nil)
		rs.haveSize = false
		return nil
	}
	sx, sy, sz := rs.pendingSize[0], rs.pendingSize[1], rs.pendingSize[2]
	m := vox.NewModel(sx, sy, sz)
	for i := uint32(0); i < n; i++ {
		tuple, err := cr.Bytes(4)
		if err != nil {
			return err
		}
		x, y, z, ci := int(tuple[0]), int(tuple[1]), int(tuple[2]), tuple[3]
		m.Set(x, y, z, ci)
	}
	rs.Models = append(rs.Models, m)
	rs.haveSize = false
	return nil
}

func (rs *rawScene) readRGBA(cr *Reader) error {
	var p vox.Palette
	for i := 0; i < 256; i++ {
		b, err := cr.Bytes(4)
		if err != nil {
			return err
		}
		p[i] = vox.RGBA{R: b[0], G: b[1], B: b[2], A: b[3]}
	}
	// On disk the palette is rotated by one relative to memory order.
	rs.Palette = p.Unrotate()
	rs.paletteSeen = true
	return nil
}

func (rs *rawScene) readIMAP(cr *Reader) error {
	var m [256]uint8
	b, err := cr.Bytes(256)
	if err != nil {
		return err
	}
	copy(m[:], b)
	rs.imap = &m
	return nil
}

// applyIMAP reorders the palette into display order and remaps every
// voxel index through the inverse map, so that display_color[new_index]
// still equals the original stored color for every voxel.
func applyIMAP(rs *rawScene) {
	imap := *rs.imap
	var display vox.Palette
	var inverse [256]uint8
	for k := 0; k < 256; k++ {
		display[k] = rs.Palette[imap[k]]
		inverse[imap[k]] = uint8(k)
	}
	rs.Palette = display

	var remap [256]uint8
	for v := 1; v < 256; v++ {
		remap[v] = inverse[v]
	}
	for _, m := range rs.Models {
		if m != nil {
			m.RemapIndices(remap)
		}
	}
}

func readFrameDict(cr *Reader) (vox.TransformKeyframe, error) {
	d, err := ReadDict(cr)
	if err != nil {
		return vox.TransformKeyframe{}, err
	}
	var kf vox.TransformKeyframe
	if f, ok := d.Get("_f"); ok {
		v, err := parseUint(f)
		if err != nil {
			return kf, fmt.Errorf("vox: malformed _f value %q: %w", f, err)
		}
		kf.Frame = uint32(v)
	}
	t := vox.Identity()
	if rv, ok := d.Get("_r"); ok {
		v, err := parseUint(rv)
		if err != nil {
			return kf, fmt.Errorf("vox: malformed _r value %q: %w", rv, err)
		}
		rot, err := vox.RotationFromByte(uint8(v))
		if err != nil {
			return kf, err
		}
		t.Rotation = rot
	}
	if tv, ok := d.Get("_t"); ok {
		var x, y, z int64
		if _, err := fmt.Sscanf(tv, "%d %d %d", &x, &y, &z); err != nil {
			return kf, fmt.Errorf("vox: malformed _t value %q: %w", tv, err)
		}
		t.Translation = [3]int32{int32(x), int32(y), int32(z)}
	}
	kf.Local = t
	return kf, nil
}

func (rs *rawScene) readNTRN(cr *Reader, logger *zap.Logger) error {
	nodeID, err := cr.U32()
	if err != nil {
		return err
	}
	d, err := ReadDict(cr)
	if err != nil {
		return err
	}
	childID, err := cr.U32()
	if err != nil {
		return err
	}
	reserved, err := cr.U32()
	if err != nil {
		return err
	}
	if reserved != 0xFFFFFFFF {
		logger.Warn("nTRN reserved field is not the canonical 0xFFFFFFFF, proceeding anyway",
			zap.Uint32("reserved", reserved))
	}
	layerID, err := cr.I32()
	if err != nil {
		return err
	}
	numFrames, err := cr.U32()
	if err != nil {
		return err
	}
	if numFrames == 0 {
		numFrames = 1
	}
	frames := make([]vox.TransformKeyframe, 0, numFrames)
	for i := uint32(0); i < numFrames; i++ {
		kf, err := readFrameDict(cr)
		if err != nil {
			return err
		}
		frames = append(frames, kf)
	}
	if err := vox.ValidateTransformKeyframes(frames); err != nil {
		return err
	}

	name, _ := d.Get("_name")
	hidden := false
	if hv, ok := d.Get("_hidden"); ok {
		hidden = parseBoolString(hv)
	}

	node := vox.Node{Kind: vox.NodeTransform, Transform: vox.TransformNode{
		Name:        name,
		Transform:   frames[0].Local,
		ChildNodeID: childID,
		LayerID:     layerID,
		Hidden:      hidden,
		Reserved:    reserved,
	}}
	if len(frames) > 1 {
		node.Transform.TransformKeyframes = frames
	}
	rs.ensureNode(nodeID)
	rs.Nodes.Nodes[nodeID] = node
	return nil
}

func (rs *rawScene) readNGRP(cr *Reader) error {
	nodeID, err := cr.U32()
	if err != nil {
		return err
	}
	d, err := ReadDict(cr)
	if err != nil {
		return err
	}
	numChildren, err := cr.U32()
	if err != nil {
		return err
	}
	first := len(rs.Nodes.ChildPool)
	for i := uint32(0); i < numChildren; i++ {
		childID, err := cr.U32()
		if err != nil {
			return err
		}
		rs.Nodes.ChildPool = append(rs.Nodes.ChildPool, childID)
	}

	name, _ := d.Get("_name")
	hidden := false
	if hv, ok := d.Get("_hidden"); ok {
		hidden = parseBoolString(hv)
	}

	node := vox.Node{Kind: vox.NodeGroup, Group: vox.GroupNode{
		Name:        name,
		Hidden:      hidden,
		FirstChild:  first,
		NumChildren: int(numChildren),
	}}
	rs.ensureNode(nodeID)
	rs.Nodes.Nodes[nodeID] = node
	return nil
}

func (rs *rawScene) readNSHP(cr *Reader) error {
	nodeID, err := cr.U32()
	if err != nil {
		return err
	}
	if _, err := ReadDict(cr); err != nil {
		return err
	}
	numModels, err := cr.U32()
	if err != nil {
		return err
	}
	if numModels == 0 {
		// A shape with no model entries is kept as a placeholder with
		// ModelID -1, so the instance it yields is dropped by Read's
		// model-index check (reported as a dangling reference) rather
		// than failing the whole read.
		rs.ensureNode(nodeID)
		rs.Nodes.Nodes[nodeID] = vox.Node{Kind: vox.NodeShape, Shape: vox.ShapeNode{ModelID: -1}}
		return nil
	}
	frames := make([]vox.ModelKeyframe, 0, numModels)
	for i := uint32(0); i < numModels; i++ {
		modelID, err := cr.U32()
		if err != nil {
			return err
		}
		d, err := ReadDict(cr)
		if err != nil {
			return err
		}
		var frame uint32
		if f, ok := d.Get("_f"); ok {
			v, err := parseUint(f)
			if err != nil {
				return fmt.Errorf("vox: malformed _f value %q: %w", f, err)
			}
			frame = uint32(v)
		}
		frames = append(frames, vox.ModelKeyframe{Frame: frame, Model: int(modelID)})
	}
	if err := vox.ValidateModelKeyframes(frames); err != nil {
		return err
	}

	node := vox.Node{Kind: vox.NodeShape, Shape: vox.ShapeNode{ModelID: frames[0].Model}}
	if len(frames) > 1 {
		node.Shape.ModelKeyframes = frames
	}
	rs.ensureNode(nodeID)
	rs.Nodes.Nodes[nodeID] = node
	return nil
}

func (rs *rawScene) readLAYR(cr *Reader, logger *zap.Logger) error {
	layerID, err := cr.I32()
	if err != nil {
		return err
	}
	d, err := ReadDict(cr)
	if err != nil {
		return err
	}
	reserved, err := cr.I32()
	if err != nil {
		return err
	}
	if reserved != -1 { // -1 == 0xFFFFFFFF as a signed 32-bit read.
		logger.Warn("LAYR reserved field is not the canonical 0xFFFFFFFF, proceeding anyway",
			zap.Int32("reserved", reserved))
	}

	name, _ := d.Get("_name")
	hidden := false
	if hv, ok := d.Get("_hidden"); ok {
		hidden = parseBoolString(hv)
	}
	var color vox.RGBA
	if cv, ok := d.Get("_color"); ok {
		var r, g, b int64
		if _, err := fmt.Sscanf(cv, "%d %d %d", &r, &g, &b); err == nil {
			color = vox.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255}
		}
	}

	layer := vox.Layer{Name: name, Hidden: hidden, Color: color}
	// Index by the on-disk layer_id, growing the table to fit rather than
	// appending in file-encounter order, matching the original loader's
	// layers.grow_to_fit_index(layer_id).
	if layerID < 0 {
		logger.Warn("LAYR chunk has a negative layer id, appending instead of indexing",
			zap.Int32("layerID", layerID))
		rs.Layers = append(rs.Layers, layer)
	} else {
		for int32(len(rs.Layers)) <= layerID {
			rs.Layers = append(rs.Layers, vox.Layer{})
		}
		rs.Layers[layerID] = layer
	}
	rs.layersSeen = true
	return nil
}
