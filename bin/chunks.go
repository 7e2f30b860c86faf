package bin

import vox "github.com/jpaver/ogtvox"

// Chunk id signatures, per the format's chunk catalog.
var (
	sigMAIN = [4]byte{'M', 'A', 'I', 'N'}
	sigSIZE = [4]byte{'S', 'I', 'Z', 'E'}
	sigXYZI = [4]byte{'X', 'Y', 'Z', 'I'}
	sigRGBA = [4]byte{'R', 'G', 'B', 'A'}
	sigIMAP = [4]byte{'I', 'M', 'A', 'P'}
	sigNTRN = [4]byte{'n', 'T', 'R', 'N'}
	sigNGRP = [4]byte{'n', 'G', 'R', 'P'}
	sigNSHP = [4]byte{'n', 'S', 'H', 'P'}
	sigLAYR = [4]byte{'L', 'A', 'Y', 'R'}
	sigMATL = [4]byte{'M', 'A', 'T', 'L'}
	sigMATT = [4]byte{'M', 'A', 'T', 'T'}
	sigRCAM = [4]byte{'r', 'C', 'A', 'M'}
	sigNOTE = [4]byte{'N', 'O', 'T', 'E'}
	sigROBJ = [4]byte{'r', 'O', 'B', 'J'}
)

// magic is the 4-byte file signature, including the trailing space.
const magic = "VOX "

// minVersion and maxVersion bound the accepted file-format versions.
const (
	minVersion     = 150
	maxVersion     = 200
	defaultVersion = 150
)

// RawChunk is an unparsed chunk payload, used both for chunk ids the reader
// does not interpret (MATL, MATT, rCAM, NOTE, rOBJ, and anything unknown)
// and replayed verbatim by the writer to round-trip them.
type RawChunk = vox.ExtraChunk

// chunkHeader is the framing common to every chunk.
type chunkHeader struct {
	Sig          [4]byte
	ContentSize  uint32
	ChildrenSize uint32
}

func readChunkHeader(r *Reader) (chunkHeader, error) {
	var h chunkHeader
	b, err := r.Bytes(4)
	if err != nil {
		return h, err
	}
	copy(h.Sig[:], b)
	if h.ContentSize, err = r.U32(); err != nil {
		return h, err
	}
	if h.ChildrenSize, err = r.U32(); err != nil {
		return h, err
	}
	return h, nil
}

func writeChunkHeader(w *Writer, sig [4]byte, contentSize, childrenSize uint32) error {
	if err := w.Bytes(sig[:]); err != nil {
		return err
	}
	if err := w.U32(contentSize); err != nil {
		return err
	}
	return w.U32(childrenSize)
}
