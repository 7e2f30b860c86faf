package bin

import (
	"strconv"
	"strings"

	voxerrors "github.com/jpaver/ogtvox/errors"
)

// maxDictBytes and maxDictPairs bound a dictionary's total footprint, per
// the chunk format's "_name"/"_hidden"/"_t"/"_r"/"_f" table.
const (
	maxDictBytes = 4096
	maxDictPairs = 256
)

// Dict is an ordered key/value string map, the in-memory form of a chunk's
// length-prefixed dictionary. Lookup is case-insensitive on the key.
type Dict struct {
	pairs [][2]string
}

// Get returns the value for key, matched case-insensitively, and whether it
// was present.
func (d Dict) Get(key string) (string, bool) {
	for _, p := range d.pairs {
		if strings.EqualFold(p[0], key) {
			return p[1], true
		}
	}
	return "", false
}

// Set appends or overwrites a key/value pair, preserving the original
// casing of an existing key.
func (d *Dict) Set(key, value string) {
	for i, p := range d.pairs {
		if strings.EqualFold(p[0], key) {
			d.pairs[i][1] = value
			return
		}
	}
	d.pairs = append(d.pairs, [2]string{key, value})
}

// Len returns the number of pairs in the dictionary.
func (d Dict) Len() int {
	return len(d.pairs)
}

// ReadDict decodes a dictionary from r: a u32 pair count followed by that
// many length-prefixed key/value pairs. It fails with dict_overflow if the
// pair count or cumulative byte footprint exceeds the format's bounds.
func ReadDict(r *Reader) (Dict, error) {
	n, err := r.U32()
	if err != nil {
		return Dict{}, err
	}
	if n > maxDictPairs {
		return Dict{}, voxerrors.ErrDictOverflow
	}

	var d Dict
	used := 0
	for i := uint32(0); i < n; i++ {
		key, err := r.String(maxDictBytes)
		if err != nil {
			return Dict{}, err
		}
		val, err := r.String(maxDictBytes)
		if err != nil {
			return Dict{}, err
		}
		used += len(key) + len(val)
		if used > maxDictBytes {
			return Dict{}, voxerrors.ErrDictOverflow
		}
		d.pairs = append(d.pairs, [2]string{key, val})
	}
	return d, nil
}

// WriteDict encodes d to w. Per the format's round-trip rule, only
// recognized keys make it back out; callers build d from a chunk's known
// fields rather than round-tripping raw bytes through it.
func WriteDict(w *Writer, d Dict) error {
	if err := w.U32(uint32(len(d.pairs))); err != nil {
		return err
	}
	for _, p := range d.pairs {
		if err := w.String(p[0]); err != nil {
			return err
		}
		if err := w.String(p[1]); err != nil {
			return err
		}
	}
	return nil
}

// boolString renders a dictionary boolean in the format's "0"/"1" form.
func boolString(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// parseBoolString parses a dictionary boolean, treating any non-empty value
// other than "0" as true (the original loader's tolerance for malformed
// booleans). The empty string is false.
func parseBoolString(s string) bool {
	return s != "" && s != "0"
}

func formatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}

func parseInt(s string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
}

func parseUint(s string) (uint64, error) {
	return strconv.ParseUint(strings.TrimSpace(s), 10, 64)
}
