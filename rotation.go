package vox

import "fmt"

// Rotation is a voxel-axis-aligned signed permutation matrix: each row has
// exactly one nonzero entry, either +1 or -1, and no two rows share a
// column. There are 48 such matrices.
type Rotation [3][3]int8

// IdentityRotation is the 7-bit-encoded rotation 0b0000_0100 (column 0 for
// row 0, column 1 for row 1, all signs positive).
var IdentityRotation = Rotation{
	{1, 0, 0},
	{0, 1, 0},
	{0, 0, 1},
}

// RotationFromByte decodes the packed 7-bit rotation encoding described by
// the chunk format's "_r" field: bits 0-1 give row 0's nonzero column, bits
// 2-3 give row 1's nonzero column, and bits 4-6 give the sign of rows 0, 1,
// and 2 respectively. Row 2's column is whichever index is not used by rows
// 0 and 1.
func RotationFromByte(b uint8) (Rotation, error) {
	row0Col := int(b & 0x3)
	row1Col := int((b >> 2) & 0x3)
	if row0Col > 2 || row1Col > 2 {
		return Rotation{}, fmt.Errorf("vox: packed rotation byte %#02x names a column out of range", b)
	}
	if row0Col == row1Col {
		return Rotation{}, fmt.Errorf("vox: packed rotation byte %#02x assigns row 0 and row 1 the same column", b)
	}
	row2Col := 3 - row0Col - row1Col

	var r Rotation
	cols := [3]int{row0Col, row1Col, row2Col}
	for row := 0; row < 3; row++ {
		sign := int8(1)
		if b&(1<<(4+row)) != 0 {
			sign = -1
		}
		r[row][cols[row]] = sign
	}
	return r, nil
}

// ByteFromRotation is the inverse of RotationFromByte. It returns an error
// if r is not a valid signed permutation matrix.
func ByteFromRotation(r Rotation) (uint8, error) {
	var col [3]int
	var sign [3]bool
	seen := [3]bool{}
	for row := 0; row < 3; row++ {
		found := -1
		for c := 0; c < 3; c++ {
			switch r[row][c] {
			case 0:
				continue
			case 1, -1:
				if found != -1 {
					return 0, fmt.Errorf("vox: row %d of rotation has more than one nonzero entry", row)
				}
				found = c
				sign[row] = r[row][c] < 0
			default:
				return 0, fmt.Errorf("vox: row %d of rotation has non-unit entry %v", row, r[row][c])
			}
		}
		if found == -1 {
			return 0, fmt.Errorf("vox: row %d of rotation is all zero", row)
		}
		if seen[found] {
			return 0, fmt.Errorf("vox: column %d used by more than one row", found)
		}
		seen[found] = true
		col[row] = found
	}

	var b uint8
	b |= uint8(col[0])
	b |= uint8(col[1]) << 2
	if sign[0] {
		b |= 1 << 4
	}
	if sign[1] {
		b |= 1 << 5
	}
	if sign[2] {
		b |= 1 << 6
	}
	return b, nil
}

// Multiply returns a*b using ordinary 3x3 matrix multiplication. The
// product of two signed permutation matrices is itself a signed permutation
// matrix, so composing world rotations never leaves the 48-element group.
func (a Rotation) Multiply(b Rotation) Rotation {
	var out Rotation
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var sum int8
			for k := 0; k < 3; k++ {
				sum += a[i][k] * b[k][j]
			}
			out[i][j] = sum
		}
	}
	return out
}

// Apply rotates the vector v by r.
func (r Rotation) Apply(v [3]int32) [3]int32 {
	var out [3]int32
	for i := 0; i < 3; i++ {
		var sum int32
		for k := 0; k < 3; k++ {
			sum += int32(r[i][k]) * v[k]
		}
		out[i] = sum
	}
	return out
}
