package pixfx

import (
	"errors"
	"image"
	"image/color"
	"io"
	"testing"
)

func TestNewBufferErrors(t *testing.T) {
	tests := []struct {
		name   string
		w, h   int
		format Format
		size   int
		want   error
	}{
		{name: "zero width", w: 0, h: 2, format: FormatRGBA8, size: 0, want: ErrInvalidDimensions},
		{name: "negative height", w: 2, h: -1, format: FormatRGBA8, size: 8, want: ErrInvalidDimensions},
		{name: "bad dims before size", w: 0, h: 0, format: FormatRGBA8, size: 3, want: ErrInvalidDimensions},
		{name: "unknown format", w: 1, h: 1, format: Format(99), size: 4, want: ErrInvalidDimensions},
		{name: "short data", w: 2, h: 2, format: FormatRGBA8, size: 15, want: ErrInvalidBufferSize},
		{name: "long data", w: 2, h: 2, format: FormatRGBA8, size: 17, want: ErrInvalidBufferSize},
		{name: "float sized as bytes", w: 2, h: 2, format: FormatRGBAF32, size: 16, want: ErrInvalidBufferSize},
	}
	for _, tc := range tests {
		_, err := NewBuffer(tc.w, tc.h, tc.format, make([]byte, tc.size))
		if !errors.Is(err, tc.want) {
			t.Errorf("%s: got error %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestNewBufferCopiesData(t *testing.T) {
	data := []byte{1, 2, 3, 4}
	buf, err := NewBuffer(1, 1, FormatRGBA8, data)
	if err != nil {
		t.Fatal(err)
	}
	data[0] = 200
	got := buf.Bytes()
	if got[0] != 1 {
		t.Fatalf("buffer aliased caller data: got %d", got[0])
	}
	got[1] = 200
	if buf.Bytes()[1] != 2 {
		t.Fatal("Bytes returned internal memory")
	}
	d := buf.Dims()
	if d.Width != 1 || d.Height != 1 || d.Stride != 4 || d.Format != FormatRGBA8 {
		t.Fatalf("unexpected dims %+v", d)
	}
}

func TestPixelAt(t *testing.T) {
	buf, err := NewBuffer(2, 2, FormatRGBA8, []byte{
		1, 2, 3, 4, 5, 6, 7, 8,
		9, 10, 11, 12, 13, 14, 15, 16,
	})
	if err != nil {
		t.Fatal(err)
	}
	c, err := buf.PixelAt(1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if want := (color.NRGBA{R: 13, G: 14, B: 15, A: 16}); c != want {
		t.Errorf("got %v, want %v", c, want)
	}
	for _, p := range []image.Point{{-1, 0}, {0, -1}, {2, 0}, {0, 2}} {
		if _, err := buf.PixelAt(p.X, p.Y); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("PixelAt(%d,%d): got %v, want ErrOutOfBounds", p.X, p.Y, err)
		}
	}
}

func TestFloatRowCodec(t *testing.T) {
	src := []float32{0, 0.25, 1, 1.5, -0.5, 0.5, 0.75, 1}
	raw := make([]byte, 2*FormatRGBAF32.BytesPerPixel())
	EncodeRow(raw, src, FormatRGBAF32)
	buf, err := NewBuffer(2, 1, FormatRGBAF32, raw)
	if err != nil {
		t.Fatal(err)
	}
	c, err := buf.PixelAt(0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if want := (NRGBAF32{R: 0, G: 0.25, B: 1, A: 1}); c != want {
		t.Errorf("got %v, want %v (clamped)", c, want)
	}
	c, _ = buf.PixelAt(1, 0)
	if want := (NRGBAF32{R: 0, G: 0.5, B: 0.75, A: 1}); c != want {
		t.Errorf("got %v, want %v (clamped)", c, want)
	}
}

func TestRGBA8RowCodecExact(t *testing.T) {
	src := make([]byte, 256)
	for i := range src {
		src[i] = byte(i)
	}
	f := make([]float32, len(src))
	DecodeRow(f, src, FormatRGBA8)
	dst := make([]byte, len(src))
	EncodeRow(dst, f, FormatRGBA8)
	for i := range src {
		if dst[i] != src[i] {
			t.Fatalf("byte %d: got %d, want %d", i, dst[i], src[i])
		}
	}
}

func TestImageRow(t *testing.T) {
	buf, err := NewBuffer(1, 2, FormatRGBA8, []byte{1, 2, 3, 4, 5, 6, 7, 8})
	if err != nil {
		t.Fatal(err)
	}
	row, err := ImageRow(make([]byte, 4), buf, 1)
	if err != nil {
		t.Fatal(err)
	}
	if row[0] != 5 || row[3] != 8 {
		t.Errorf("unexpected row %v", row)
	}
	if _, err = ImageRow(make([]byte, 3), buf, 0); !errors.Is(err, io.ErrShortBuffer) {
		t.Errorf("got %v, want io.ErrShortBuffer", err)
	}
	if _, err = ImageRow(make([]byte, 4), buf, 2); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("got %v, want ErrOutOfBounds", err)
	}
}

func TestMakeBufferFillError(t *testing.T) {
	fillErr := errors.New("fill failed")
	_, err := MakeBuffer(Dims{Width: 1, Height: 1, Format: FormatRGBA8}, func([]byte) error { return fillErr })
	if !errors.Is(err, fillErr) {
		t.Fatalf("got %v, want fill error", err)
	}
	buf, err := MakeBuffer(Dims{Width: 3, Height: 2, Stride: 1000, Format: FormatRGBAF32}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if buf.Dims().Stride != 3*16 {
		t.Errorf("stride not packed: %d", buf.Dims().Stride)
	}
}

func TestEqualAndClone(t *testing.T) {
	a, _ := NewBuffer(1, 1, FormatRGBA8, []byte{1, 2, 3, 4})
	b := a.Clone()
	if !a.Equal(b) || a == b {
		t.Fatal("clone must be value-equal and distinct")
	}
	c, _ := NewBuffer(1, 1, FormatRGBA8, []byte{1, 2, 3, 5})
	if a.Equal(c) {
		t.Fatal("different pixels reported equal")
	}
}

func TestImageConversion(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 10, 13, 12))
	src.Set(10, 10, color.RGBA{R: 255, A: 255})
	src.Set(12, 11, color.RGBA{G: 100, B: 50, A: 255})
	for _, format := range []Format{FormatRGBA8, FormatRGBAF32} {
		buf, err := FromImage(src, format)
		if err != nil {
			t.Fatalf("%s: %v", format, err)
		}
		if buf.Width() != 3 || buf.Height() != 2 || buf.Format() != format {
			t.Fatalf("%s: unexpected dims %+v", format, buf.Dims())
		}
		out := buf.Image()
		for y := 0; y < 2; y++ {
			for x := 0; x < 3; x++ {
				want := color.NRGBAModel.Convert(src.At(x+10, y+10)).(color.NRGBA)
				got := color.NRGBAModel.Convert(out.At(x, y)).(color.NRGBA)
				if got != want {
					t.Errorf("%s: pixel (%d,%d) got %v, want %v", format, x, y, got, want)
				}
			}
		}
	}
}

func TestFromImageCroppedNRGBA(t *testing.T) {
	full := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := range full.Pix {
		full.Pix[i] = uint8(i * 3)
	}
	// Bottom crop shares the parent's Pix, including the rows below the crop.
	crop := full.SubImage(image.Rect(0, 0, 4, 2)).(*image.NRGBA)
	for _, format := range []Format{FormatRGBA8, FormatRGBAF32} {
		buf, err := FromImage(crop, format)
		if err != nil {
			t.Fatalf("%s: %v", format, err)
		}
		if buf.Width() != 4 || buf.Height() != 2 {
			t.Fatalf("%s: unexpected dims %+v", format, buf.Dims())
		}
		out := buf.Image()
		for y := 0; y < 2; y++ {
			for x := 0; x < 4; x++ {
				want := crop.NRGBAAt(x, y)
				got := color.NRGBAModel.Convert(out.At(x, y)).(color.NRGBA)
				if got != want {
					t.Errorf("%s: pixel (%d,%d) got %v, want %v", format, x, y, got, want)
				}
			}
		}
	}
}
