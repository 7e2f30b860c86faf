package bin

import (
	"io"

	vox "github.com/jpaver/ogtvox"
	voxerrors "github.com/jpaver/ogtvox/errors"
)

// Decoder decodes a ".vox" byte stream into a scene.
type Decoder interface {
	Decode(r io.Reader) (*vox.Scene, voxerrors.Errors, error)
}

// Encoder encodes a scene into a ".vox" byte stream.
type Encoder interface {
	Encode(w io.Writer, s *vox.Scene) error
}

// Serializer pairs a Decoder and an Encoder under one set of options, the
// way a client that only ever uses one configuration usually wants to.
type Serializer struct {
	Decoder
	Encoder
}

type decoderFunc struct{ opts ReadOptions }

func (d decoderFunc) Decode(r io.Reader) (*vox.Scene, voxerrors.Errors, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, err
	}
	return Read(buf, d.opts)
}

type encoderFunc struct{ opts WriteOptions }

func (e encoderFunc) Encode(w io.Writer, s *vox.Scene) error {
	buf, err := Write(s, e.opts)
	if err != nil {
		return err
	}
	_, err = w.Write(buf)
	return err
}

// NewSerializer returns a Serializer configured with opts.
func NewSerializer(ropts ReadOptions, wopts WriteOptions) *Serializer {
	return &Serializer{Decoder: decoderFunc{ropts}, Encoder: encoderFunc{wopts}}
}

// DefaultSerializer is a Serializer configured with this package's default
// options.
var DefaultSerializer = NewSerializer(DefaultReadOptions(), DefaultWriteOptions())

// Deserialize reads a scene from r using DefaultSerializer.
func Deserialize(r io.Reader) (*vox.Scene, voxerrors.Errors, error) {
	return DefaultSerializer.Decode(r)
}

// Serialize writes a scene to w using DefaultSerializer.
func Serialize(w io.Writer, s *vox.Scene) error {
	return DefaultSerializer.Encode(w, s)
}
