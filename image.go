package pixfx

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// FromImage converts img into a new [Buffer] of format f.
// Pixels are converted to non-premultiplied RGBA first.
func FromImage(img image.Image, f Format) (*Buffer, error) {
	bounds := img.Bounds()
	nrgba, ok := img.(*image.NRGBA)
	if !ok || bounds.Min != (image.Point{}) || nrgba.Stride != 4*bounds.Dx() {
		nrgba = image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)
	}
	if f == FormatRGBA8 {
		// Sub-images keep the parent's Pix tail past the last row.
		return NewBuffer(bounds.Dx(), bounds.Dy(), f, nrgba.Pix[:bounds.Dx()*bounds.Dy()*channels])
	}
	dims := Dims{Width: bounds.Dx(), Height: bounds.Dy(), Format: f}
	return MakeBuffer(dims, func(dst []byte) error {
		row := make([]float32, dims.Width*channels)
		rowBytes := dims.Width * f.BytesPerPixel()
		for y := 0; y < dims.Height; y++ {
			src := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+dims.Width*channels]
			DecodeRow(row, src, FormatRGBA8)
			EncodeRow(dst[y*rowBytes:(y+1)*rowBytes], row, f)
		}
		return nil
	})
}

// Image returns a copy of b as an [image.Image]. RGBA8 buffers become
// [*image.NRGBA]; float buffers become [*image.NRGBA64].
func (b *Buffer) Image() image.Image {
	w, h := b.dims.Width, b.dims.Height
	if b.dims.Format == FormatRGBA8 {
		return &image.NRGBA{Pix: b.Bytes(), Stride: b.dims.Stride, Rect: image.Rect(0, 0, w, h)}
	}
	img := image.NewNRGBA64(image.Rect(0, 0, w, h))
	row := make([]float32, w*channels)
	for y := 0; y < h; y++ {
		DecodeRow(row, b.data[y*b.dims.Stride:(y+1)*b.dims.Stride], b.dims.Format)
		for x := 0; x < w; x++ {
			px := row[x*channels : x*channels+channels]
			img.SetNRGBA64(x, y, color.NRGBA64{
				R: uint16(unitTo16(px[0])),
				G: uint16(unitTo16(px[1])),
				B: uint16(unitTo16(px[2])),
				A: uint16(unitTo16(px[3])),
			})
		}
	}
	return img
}
