package filters

import "github.com/soypat/pixfx"

// Sepia weight matrix, rows produce R', G', B' from R, G, B.
var sepiaMatrix = [3][3]float32{
	{0.393, 0.769, 0.189},
	{0.349, 0.686, 0.168},
	{0.272, 0.534, 0.131},
}

// SepiaTone blends each pixel with its sepia-toned version by Intensity.
// Intensity 0 is an identity transform. Alpha is preserved.
type SepiaTone struct {
	Intensity float32
}

var _ pixfx.Filter = SepiaTone{}

func (SepiaTone) Kind() pixfx.Kind { return pixfx.KindSepiaTone }

func (f SepiaTone) Neutral() bool { return f.Intensity == 0 }

func (f SepiaTone) Validate(pixfx.Dims) error {
	return f.intensityControl().Check(f.Intensity)
}

func (f SepiaTone) Controls() []pixfx.Control {
	return []pixfx.Control{f.intensityControl()}
}

func (f SepiaTone) intensityControl() *pixfx.ControlOrdered[float32] {
	return &pixfx.ControlOrdered[float32]{
		Name:        "Sepia Tone",
		Description: "Blend factor between the original and the sepia-toned image",
		Value:       f.Intensity,
		Min:         0,
		Max:         1,
		Step:        0.01,
	}
}

func (f SepiaTone) Apply(src *pixfx.Buffer) (*pixfx.Buffer, error) {
	if err := f.Validate(src.Dims()); err != nil {
		return nil, err
	}
	if f.Neutral() {
		// Identity must be byte-exact, skip the float round trip.
		return src.Clone(), nil
	}
	t := f.Intensity
	return PointFilter{Fn: func(dst, src []float32) {
		for i := 0; i < len(src); i += 4 {
			r, g, b := src[i], src[i+1], src[i+2]
			for c := 0; c < 3; c++ {
				m := sepiaMatrix[c]
				sepia := m[0]*r + m[1]*g + m[2]*b
				dst[i+c] = src[i+c]*(1-t) + sepia*t
			}
			dst[i+3] = src[i+3]
		}
	}}.Process(src)
}
