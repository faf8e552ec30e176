package filters

import "github.com/soypat/pixfx"

// ColorControls adjusts saturation, brightness and contrast, in that order.
//
// Saturation and Contrast use 0 as a "leave untouched" sentinel rather than
// their mathematical meaning (full desaturation, flat gray). Brightness is an
// additive offset so 0 is neutral on its own. The zero value is an identity transform.
type ColorControls struct {
	// Saturation scales the distance of each channel from its gray level. Range -20..20.
	Saturation float32
	// Brightness is added to every color channel. Range 0..1.
	Brightness float32
	// Contrast scales channels around mid-gray. Range -5..5.
	Contrast float32
	// Gray selects the gray level used as the saturation pivot.
	Gray GrayscaleMode
}

var _ pixfx.Filter = ColorControls{}

func (ColorControls) Kind() pixfx.Kind { return pixfx.KindColorControls }

func (f ColorControls) Neutral() bool {
	return f.Saturation == 0 && f.Brightness == 0 && f.Contrast == 0
}

func (f ColorControls) Validate(pixfx.Dims) error {
	sat, bright, contrast, gray := f.controls()
	if err := sat.Check(f.Saturation); err != nil {
		return err
	} else if err = bright.Check(f.Brightness); err != nil {
		return err
	} else if err = contrast.Check(f.Contrast); err != nil {
		return err
	}
	return gray.Check(f.Gray)
}

func (f ColorControls) Controls() []pixfx.Control {
	sat, bright, contrast, gray := f.controls()
	return []pixfx.Control{sat, bright, contrast, gray}
}

func (f ColorControls) controls() (sat, bright, contrast *pixfx.ControlOrdered[float32], gray *pixfx.ControlEnum[GrayscaleMode]) {
	sat = &pixfx.ControlOrdered[float32]{
		Name:        "Saturation",
		Description: "Color saturation factor, 0 leaves saturation untouched",
		Value:       f.Saturation,
		Min:         -20,
		Max:         20,
		Step:        1,
	}
	bright = &pixfx.ControlOrdered[float32]{
		Name:        "Brightness",
		Description: "Offset added to each color channel",
		Value:       f.Brightness,
		Min:         0,
		Max:         1,
		Step:        0.01,
	}
	contrast = &pixfx.ControlOrdered[float32]{
		Name:        "Contrast",
		Description: "Contrast factor around mid-gray, 0 leaves contrast untouched",
		Value:       f.Contrast,
		Min:         -5,
		Max:         5,
		Step:        0.1,
	}
	gray = &pixfx.ControlEnum[GrayscaleMode]{
		Name:        "Saturation Pivot",
		Description: "Algorithm for the gray level saturation scales around",
		Value:       f.Gray,
		ValidValues: grayscaleModes,
	}
	return sat, bright, contrast, gray
}

func (f ColorControls) Apply(src *pixfx.Buffer) (*pixfx.Buffer, error) {
	if err := f.Validate(src.Dims()); err != nil {
		return nil, err
	}
	if f.Neutral() {
		return src.Clone(), nil
	}
	sat, bright, contrast, mode := f.Saturation, f.Brightness, f.Contrast, f.Gray
	return PointFilter{Fn: func(dst, src []float32) {
		for i := 0; i < len(src); i += 4 {
			r, g, b := src[i], src[i+1], src[i+2]
			if sat != 0 {
				gray := mode.gray(r, g, b)
				r = gray + (r-gray)*sat
				g = gray + (g-gray)*sat
				b = gray + (b-gray)*sat
			}
			r, g, b = r+bright, g+bright, b+bright
			if contrast != 0 {
				r = (r-0.5)*contrast + 0.5
				g = (g-0.5)*contrast + 0.5
				b = (b-0.5)*contrast + 0.5
			}
			dst[i], dst[i+1], dst[i+2], dst[i+3] = r, g, b, src[i+3]
		}
	}}.Process(src)
}
