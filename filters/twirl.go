package filters

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/pixfx"
)

// Sampling selects how a distorted position is mapped back to source pixels.
type Sampling int

const (
	// SampleNearest picks the source pixel containing the sample position.
	SampleNearest Sampling = iota
	// SampleBilinear interpolates the 4 source pixels around the sample position.
	SampleBilinear
)

func (s Sampling) String() string {
	switch s {
	case SampleNearest:
		return "Nearest"
	case SampleBilinear:
		return "Bilinear"
	default:
		return "Unknown"
	}
}

// DefaultTwirlAngle is the rotation in radians applied at the twirl center.
const DefaultTwirlAngle = math32.Pi

const (
	maxTwirlRadius = 500
	maxTwirlAngle  = 4 * math32.Pi
)

// TwirlDistortion rotates pixels around Center. The rotation is Angle at the
// center and decays quadratically to zero at Radius. Pixels outside Radius are copied.
//
// Coordinates are continuous image coordinates: pixel (x,y) covers the square
// [x,x+1)x[y,y+1) and is sampled at its center. Sample positions are clamped
// to the buffer edges.
//
// Nearest sampling and pixels outside Radius copy source pixels bit for bit,
// so float channels outside 0..1 (or NaN) are carried unchanged. Bilinear
// sampling blends channels and clamps each blended pixel to 0..1. Both modes
// agree on in-range input.
//
// A neutral twirl (Radius or Angle zero) only checks its parameter ranges;
// Center is not checked against the image since no pixel is moved.
type TwirlDistortion struct {
	// Radius of the affected disc in pixels. Range 0..500, 0 is an identity transform.
	Radius float32
	// Center of rotation. Must lie within [0,Width]x[0,Height]. Ignored when AutoCenter is set.
	Center ms2.Vec
	// AutoCenter places the center in the middle of the input buffer.
	AutoCenter bool
	// Angle is the rotation at the center in radians. Range -4π..4π, 0 is an identity transform.
	Angle    float32
	Sampling Sampling
}

var _ pixfx.Filter = TwirlDistortion{}

// NewTwirl returns a twirl centered on the image with [DefaultTwirlAngle] and nearest sampling.
func NewTwirl(radius float32) TwirlDistortion {
	return TwirlDistortion{Radius: radius, AutoCenter: true, Angle: DefaultTwirlAngle}
}

func (TwirlDistortion) Kind() pixfx.Kind { return pixfx.KindTwirlDistortion }

func (f TwirlDistortion) Neutral() bool { return f.Radius == 0 || f.Angle == 0 }

func (f TwirlDistortion) Validate(d pixfx.Dims) error {
	radius, angle, center, sampling := f.controls(d)
	if err := radius.Check(f.Radius); err != nil {
		return err
	} else if err = angle.Check(f.Angle); err != nil {
		return err
	} else if err = sampling.Check(f.Sampling); err != nil {
		return err
	}
	if f.Neutral() {
		return nil
	}
	if !center.Contains(f.center(d)) {
		return errCenterOutside
	}
	return nil
}

func (f TwirlDistortion) Controls() []pixfx.Control {
	radius, angle, center, sampling := f.controls(pixfx.Dims{})
	return []pixfx.Control{radius, angle, center, sampling}
}

// controls returns the parameter limits for an image of dimensions d.
func (f TwirlDistortion) controls(d pixfx.Dims) (radius, angle *pixfx.ControlOrdered[float32], center *pixfx.ControlPoint, sampling *pixfx.ControlEnum[Sampling]) {
	radius = &pixfx.ControlOrdered[float32]{
		Name:        "Twirl Distortion",
		Description: "Radius of the twirled disc in pixels",
		Value:       f.Radius,
		Min:         0,
		Max:         maxTwirlRadius,
		Step:        1,
	}
	angle = &pixfx.ControlOrdered[float32]{
		Name:        "Twirl Angle",
		Description: "Rotation at the twirl center in radians",
		Value:       f.Angle,
		Min:         -maxTwirlAngle,
		Max:         maxTwirlAngle,
		Step:        0.01,
	}
	center = &pixfx.ControlPoint{
		Name:        "Twirl Center",
		Description: "Center of rotation in image coordinates",
		Value:       f.Center,
		Max:         ms2.Vec{X: float32(d.Width), Y: float32(d.Height)},
	}
	sampling = &pixfx.ControlEnum[Sampling]{
		Name:        "Sampling",
		Description: "Source pixel sampling strategy",
		Value:       f.Sampling,
		ValidValues: []Sampling{SampleNearest, SampleBilinear},
	}
	return radius, angle, center, sampling
}

func (f TwirlDistortion) center(d pixfx.Dims) ms2.Vec {
	if f.AutoCenter {
		return ms2.Vec{X: float32(d.Width) / 2, Y: float32(d.Height) / 2}
	}
	return f.Center
}

func (f TwirlDistortion) Apply(src *pixfx.Buffer) (*pixfx.Buffer, error) {
	d := src.Dims()
	if err := f.Validate(d); err != nil {
		return nil, err
	}
	if f.Neutral() {
		return src.Clone(), nil
	}
	center := f.center(d)
	bpp := d.Format.BytesPerPixel()
	var decoded []float32
	if f.Sampling == SampleBilinear {
		decoded = make([]float32, d.NumPixels()*4)
		rowBuf := make([]byte, d.SizeRow())
		for y := 0; y < d.Height; y++ {
			row, err := pixfx.ImageRow(rowBuf, src, y)
			if err != nil {
				return nil, err
			}
			pixfx.DecodeRow(decoded[y*d.Width*4:(y+1)*d.Width*4], row, d.Format)
		}
	}
	return pixfx.MakeBuffer(d, func(dst []byte) error {
		// Start from a copy of src, then overwrite pixels inside the radius.
		if _, err := src.ReadAt(dst, 0); err != nil {
			return err
		}
		var px [4]float32
		for y := 0; y < d.Height; y++ {
			for x := 0; x < d.Width; x++ {
				dx := float32(x) + 0.5 - center.X
				dy := float32(y) + 0.5 - center.Y
				dist := math32.Sqrt(dx*dx + dy*dy)
				if dist >= f.Radius {
					continue
				}
				off := y*d.Stride + x*bpp
				t := 1 - dist/f.Radius
				theta := f.Angle * t * t
				sin, cos := math32.Sin(theta), math32.Cos(theta)
				sx := center.X + dx*cos - dy*sin
				sy := center.Y + dx*sin + dy*cos
				if decoded == nil {
					ix := clampIndex(int(math32.Floor(sx)), d.Width)
					iy := clampIndex(int(math32.Floor(sy)), d.Height)
					soff := int64(iy*d.Stride + ix*bpp)
					if _, err := src.ReadAt(dst[off:off+bpp], soff); err != nil {
						return err
					}
					continue
				}
				bilinear(px[:], decoded, d.Width, d.Height, sx-0.5, sy-0.5)
				pixfx.EncodeRow(dst[off:off+bpp], px[:], d.Format)
			}
		}
		return nil
	})
}

// bilinear interpolates decoded RGBA pixels at pixel-index position (u,v) into dst.
func bilinear(dst, decoded []float32, width, height int, u, v float32) {
	u0, v0 := math32.Floor(u), math32.Floor(v)
	fu, fv := u-u0, v-v0
	x0, y0 := clampIndex(int(u0), width), clampIndex(int(v0), height)
	x1, y1 := clampIndex(int(u0)+1, width), clampIndex(int(v0)+1, height)
	p00 := decoded[(y0*width+x0)*4:]
	p10 := decoded[(y0*width+x1)*4:]
	p01 := decoded[(y1*width+x0)*4:]
	p11 := decoded[(y1*width+x1)*4:]
	for c := 0; c < 4; c++ {
		top := p00[c] + (p10[c]-p00[c])*fu
		bottom := p01[c] + (p11[c]-p01[c])*fu
		dst[c] = top + (bottom-top)*fv
	}
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	} else if i >= n {
		return n - 1
	}
	return i
}

var errCenterOutside = fmt.Errorf("%w: twirl center outside image", pixfx.ErrDimensionMismatch)
