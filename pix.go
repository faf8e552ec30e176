package pixfx

import (
	"bytes"
	"encoding/binary"
	"image/color"
	"io"
	"math"
)

// Image is a low-level, whole-buffer image access abstraction of raw memory.
// It does not do bounds abstraction. As made implicit by Dims signature, row spacing must be homogenous in images.
type Image interface {
	// Dims returns information on in-memory image structure.
	// Row spacing must be homogenous in entire image separated by stride bytes.
	Dims() Dims
	// ReadAt reads from the image buffer of pixels, which may be in-memory or elsewhere (disk, network).
	io.ReaderAt
}

// Format is the in-memory layout of a single pixel.
type Format int

const (
	formatUndefined Format = iota // undefined
	// FormatRGBA8 stores 8 bits per channel in R,G,B,A order with straight (non-premultiplied) alpha.
	FormatRGBA8 // rgba8
	// FormatRGBAF32 stores little-endian float32 channels in R,G,B,A order.
	// Channel values are nominally in the 0..1 range.
	FormatRGBAF32 // rgbaf32
)

const channels = 4

func (f Format) String() string {
	switch f {
	case FormatRGBA8:
		return "rgba8"
	case FormatRGBAF32:
		return "rgbaf32"
	default:
		return "undefined"
	}
}

// BytesPerPixel returns the pixel size in bytes or -1 for an unknown format.
func (f Format) BytesPerPixel() int {
	switch f {
	case FormatRGBA8:
		return channels
	case FormatRGBAF32:
		return channels * 4
	default:
		return -1
	}
}

type Dims struct {
	Width  int
	Height int
	Stride int
	Format Format
}

func (d Dims) Validate() error {
	if d.Height <= 0 || d.Width <= 0 {
		return ErrInvalidDimensions
	} else if d.Format.BytesPerPixel() < 1 {
		return errBadFormat
	} else if d.Width*d.Format.BytesPerPixel() > d.Stride {
		return errShortStride
	}
	return nil
}

func (d Dims) NumPixels() int64 {
	return int64(d.Height) * int64(d.Width)
}

// Size returns the readable section size of raw image in bytes.
func (d Dims) Size() int64 {
	if d.Height == 0 || d.Width == 0 {
		return 0
	}
	return int64(d.Height-1)*int64(d.Stride) + int64(d.SizeRow())
}

func (d Dims) SizeRow() int {
	return d.Width * d.Format.BytesPerPixel()
}

// InBounds reports whether pixel (x,y) lies within the image.
func (d Dims) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < d.Width && y < d.Height
}

// Buffer is an immutable, tightly packed pixel buffer.
// Filters never mutate a Buffer; they produce new ones.
type Buffer struct {
	dims Dims
	data []byte
}

// NewBuffer copies data into a new Buffer. Length of data must be exactly
// width*height*format.BytesPerPixel().
func NewBuffer(width, height int, format Format, data []byte) (*Buffer, error) {
	dims, err := packedDims(width, height, format)
	if err != nil {
		return nil, err
	}
	if int64(len(data)) != dims.Size() {
		return nil, ErrInvalidBufferSize
	}
	return &Buffer{dims: dims, data: bytes.Clone(data)}, nil
}

// MakeBuffer allocates a packed buffer of the given dimensions and calls fill
// exactly once with its backing memory. The buffer is frozen when fill returns.
// Dims.Stride is ignored and computed from width and format.
func MakeBuffer(d Dims, fill func(dst []byte) error) (*Buffer, error) {
	dims, err := packedDims(d.Width, d.Height, d.Format)
	if err != nil {
		return nil, err
	}
	data := make([]byte, dims.Size())
	if fill != nil {
		if err = fill(data); err != nil {
			return nil, err
		}
	}
	return &Buffer{dims: dims, data: data}, nil
}

func packedDims(width, height int, format Format) (Dims, error) {
	if width <= 0 || height <= 0 {
		return Dims{}, ErrInvalidDimensions
	}
	bpp := format.BytesPerPixel()
	if bpp < 1 {
		return Dims{}, errBadFormat
	}
	dims := Dims{Width: width, Height: height, Stride: width * bpp, Format: format}
	return dims, dims.Validate()
}

// Dims implements [Image].
func (b *Buffer) Dims() Dims { return b.dims }

func (b *Buffer) Width() int     { return b.dims.Width }
func (b *Buffer) Height() int    { return b.dims.Height }
func (b *Buffer) Format() Format { return b.dims.Format }

// ReadAt implements [io.ReaderAt] over the raw pixel data.
func (b *Buffer) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, errNegativeOffset
	} else if off >= int64(len(b.data)) {
		return 0, io.EOF
	}
	n := copy(p, b.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Bytes returns a copy of the raw pixel data.
func (b *Buffer) Bytes() []byte { return bytes.Clone(b.data) }

// Clone returns a value-equal copy of b.
func (b *Buffer) Clone() *Buffer {
	return &Buffer{dims: b.dims, data: bytes.Clone(b.data)}
}

// Equal reports whether both buffers have the same dimensions, format and bytes.
func (b *Buffer) Equal(other *Buffer) bool {
	if b == nil || other == nil {
		return b == other
	}
	return b.dims == other.dims && bytes.Equal(b.data, other.data)
}

// PixelAt returns the pixel at (x,y). RGBA8 buffers return [color.NRGBA],
// RGBAF32 buffers return [NRGBAF32].
func (b *Buffer) PixelAt(x, y int) (color.Color, error) {
	if !b.dims.InBounds(x, y) {
		return nil, ErrOutOfBounds
	}
	off := y*b.dims.Stride + x*b.dims.Format.BytesPerPixel()
	switch b.dims.Format {
	case FormatRGBA8:
		p := b.data[off : off+4]
		return color.NRGBA{R: p[0], G: p[1], B: p[2], A: p[3]}, nil
	default:
		var px [channels]float32
		DecodeRow(px[:], b.data[off:off+16], FormatRGBAF32)
		return NRGBAF32{R: px[0], G: px[1], B: px[2], A: px[3]}, nil
	}
}

// NRGBAF32 is a non-premultiplied float color with channels in 0..1.
type NRGBAF32 struct {
	R, G, B, A float32
}

// RGBA implements [color.Color].
func (c NRGBAF32) RGBA() (r, g, b, a uint32) {
	a = unitTo16(c.A)
	r = unitTo16(c.R) * a / 0xffff
	g = unitTo16(c.G) * a / 0xffff
	b = unitTo16(c.B) * a / 0xffff
	return r, g, b, a
}

func unitTo16(v float32) uint32 {
	return uint32(clampUnit(v)*0xffff + 0.5)
}

func clampUnit(v float32) float32 {
	if v < 0 || v != v {
		return 0
	} else if v > 1 {
		return 1
	}
	return v
}

// DecodeRow converts a row of raw pixel bytes in format f to normalized RGBA
// float32 channels. dst must hold 4 values per source pixel.
func DecodeRow(dst []float32, src []byte, f Format) {
	switch f {
	case FormatRGBA8:
		for i, v := range src {
			dst[i] = float32(v) / 255
		}
	case FormatRGBAF32:
		for i := 0; i+4 <= len(src); i += 4 {
			dst[i/4] = math.Float32frombits(binary.LittleEndian.Uint32(src[i:]))
		}
	}
}

// EncodeRow converts normalized RGBA float32 channels to raw bytes in format f,
// clamping each channel to 0..1. RGBA8 rounds half away from zero.
func EncodeRow(dst []byte, src []float32, f Format) {
	switch f {
	case FormatRGBA8:
		for i, v := range src {
			dst[i] = uint8(clampUnit(v)*255 + 0.5)
		}
	case FormatRGBAF32:
		for i, v := range src {
			binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(clampUnit(v)))
		}
	}
}

// ImageRow reads row into dst and returns the sized row slice.
func ImageRow(dst []byte, img Image, row int) (resultSized []byte, err error) {
	d := img.Dims()
	err = d.Validate()
	if err != nil {
		return nil, err
	}
	rowLenBytes := d.SizeRow()
	if len(dst) < rowLenBytes {
		return nil, io.ErrShortBuffer
	} else if row < 0 || row >= d.Height {
		return nil, ErrOutOfBounds
	}
	off := int64(row) * int64(d.Stride)
	resultSized = dst[:rowLenBytes]
	n, err := img.ReadAt(resultSized, off)
	if n != rowLenBytes {
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return resultSized, nil
}
