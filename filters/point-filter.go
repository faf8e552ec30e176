package filters

import (
	"math"

	"github.com/soypat/pixfx"
)

// PointFunc processes a contiguous row of pixels.
// dst and src contain rowWidth pixels worth of normalized RGBA channels, 4 per pixel.
// The function should iterate through pixels: for i := 0; i < len(src); i += 4 { ... }
// Values written to dst are clamped to the format range on encode, except
// a float alpha copied unchanged from src, which keeps its exact bits.
type PointFunc func(dst, src []float32)

// PointFilter applies a per-pixel transformation using a callback function.
// It handles the iteration, decoding and encoding common to all per-pixel filters.
// The callback is invoked once per row with contiguous pixel data.
type PointFilter struct {
	Fn PointFunc
}

// Process runs Fn over every row of src and returns the resulting buffer.
func (f PointFilter) Process(src pixfx.Image) (*pixfx.Buffer, error) {
	if f.Fn == nil {
		return nil, errNilPointFunc
	}
	srcDims := src.Dims()
	if err := srcDims.Validate(); err != nil {
		return nil, err
	}
	return pixfx.MakeBuffer(srcDims, func(dst []byte) error {
		rowBytes := srcDims.SizeRow()
		rowBuf := make([]byte, rowBytes)
		in := make([]float32, srcDims.Width*4)
		out := make([]float32, len(in))
		for y := 0; y < srcDims.Height; y++ {
			srcRow, err := pixfx.ImageRow(rowBuf, src, y)
			if err != nil {
				return err
			}
			pixfx.DecodeRow(in, srcRow, srcDims.Format)
			f.Fn(out, in)
			dstRow := dst[y*rowBytes : (y+1)*rowBytes]
			pixfx.EncodeRow(dstRow, out, srcDims.Format)
			if srcDims.Format == pixfx.FormatRGBAF32 {
				keepAlpha(dstRow, srcRow, out, in)
			}
		}
		return nil
	})
}

// keepAlpha restores the raw source alpha of float rows wherever the kernel
// passed alpha through, so alpha outside 0..1 survives the encode clamp.
func keepAlpha(dst, src []byte, out, in []float32) {
	for i := 3; i < len(out); i += 4 {
		if math.Float32bits(out[i]) == math.Float32bits(in[i]) {
			copy(dst[i*4:i*4+4], src[i*4:i*4+4])
		}
	}
}

var errNilPointFunc = errorString("nil PointFunc")

type errorString string

func (e errorString) Error() string { return string(e) }
