package vox

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// Model is a 3D grid of palette indices, x-fastest then y then z. A voxel
// holding index 0 is empty. A nil *Model is the "null model" placeholder an
// XYZI chunk with zero voxels leaves behind; it is dropped during
// post-processing.
type Model struct {
	SizeX, SizeY, SizeZ int
	Voxels              []uint8
	hash                [32]byte
	hashed              bool
}

// NewModel allocates a model of the given dimensions with all voxels empty.
func NewModel(sx, sy, sz int) *Model {
	return &Model{
		SizeX: sx, SizeY: sy, SizeZ: sz,
		Voxels: make([]uint8, sx*sy*sz),
	}
}

// index returns the flat storage offset of (x, y, z).
func (m *Model) index(x, y, z int) int {
	return x + y*m.SizeX + z*m.SizeX*m.SizeY
}

// Set stores a palette index at (x, y, z). Out-of-range coordinates are
// silently ignored, mirroring the reader's tolerance of malformed XYZI
// tuples described in the chunk reader's scatter step.
func (m *Model) Set(x, y, z int, colorIndex uint8) {
	if x < 0 || y < 0 || z < 0 || x >= m.SizeX || y >= m.SizeY || z >= m.SizeZ {
		return
	}
	m.Voxels[m.index(x, y, z)] = colorIndex
	m.hashed = false
}

// VoxelAt returns the palette index at (x, y, z) and whether the coordinate
// was in range.
func (m *Model) VoxelAt(x, y, z int) (index uint8, ok bool) {
	if x < 0 || y < 0 || z < 0 || x >= m.SizeX || y >= m.SizeY || z >= m.SizeZ {
		return 0, false
	}
	return m.Voxels[m.index(x, y, z)], true
}

// IsEmpty reports whether every voxel in the model is index 0.
func (m *Model) IsEmpty() bool {
	for _, v := range m.Voxels {
		if v != 0 {
			return false
		}
	}
	return true
}

// Hash returns a content hash over the model's dimensions and raw voxel
// grid, computed with blake2b-256. It is cached until the next Set call.
func (m *Model) Hash() [32]byte {
	if m.hashed {
		return m.hash
	}
	var dims [12]byte
	binary.LittleEndian.PutUint32(dims[0:4], uint32(m.SizeX))
	binary.LittleEndian.PutUint32(dims[4:8], uint32(m.SizeY))
	binary.LittleEndian.PutUint32(dims[8:12], uint32(m.SizeZ))
	h, err := blake2b.New256(nil)
	if err != nil {
		panic(fmt.Sprintf("vox: blake2b-256 init failed: %v", err))
	}
	h.Write(dims[:])
	h.Write(m.Voxels)
	copy(m.hash[:], h.Sum(nil))
	m.hashed = true
	return m.hash
}

// Equal reports whether two models have identical dimensions and voxel
// data. The content hash is checked first so that unrelated models are
// usually rejected without a full byte comparison.
func (m *Model) Equal(o *Model) bool {
	if m == o {
		return true
	}
	if m == nil || o == nil {
		return false
	}
	if m.SizeX != o.SizeX || m.SizeY != o.SizeY || m.SizeZ != o.SizeZ {
		return false
	}
	if m.Hash() != o.Hash() {
		return false
	}
	return bytes.Equal(m.Voxels, o.Voxels)
}

// RemapIndices rewrites every non-zero voxel index through remap, used both
// by the IMAP display-order transform and by the merger's palette
// reconciliation.
func (m *Model) RemapIndices(remap [256]uint8) {
	for i, v := range m.Voxels {
		if v != 0 {
			m.Voxels[i] = remap[v]
		}
	}
	m.hashed = false
}
