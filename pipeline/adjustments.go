package pipeline

import (
	"github.com/soypat/pixfx"
	"github.com/soypat/pixfx/filters"
)

// Adjustments is the state of the five editing sliders. The zero value is
// the reset state and builds a neutral chain.
type Adjustments struct {
	SepiaIntensity float32 // 0..1
	Saturation     float32 // -20..20, 0 leaves saturation untouched.
	Brightness     float32 // 0..1
	Contrast       float32 // -5..5, 0 leaves contrast untouched.
	TwirlRadius    float32 // 0..500 pixels around the image center.
}

// Chain returns sepia tone, color controls and an image-centered twirl, in that order.
func (a Adjustments) Chain() Chain {
	return NewChain(
		filters.SepiaTone{Intensity: a.SepiaIntensity},
		filters.ColorControls{
			Saturation: a.Saturation,
			Brightness: a.Brightness,
			Contrast:   a.Contrast,
		},
		filters.NewTwirl(a.TwirlRadius),
	)
}

// Controls returns slider controls bound to a. Changing a control's value
// updates the matching field; call [Adjustments.Chain] afterwards to render.
func (a *Adjustments) Controls() []pixfx.Control {
	return []pixfx.Control{
		slider("Sepia Tone", "Sepia blend factor", &a.SepiaIntensity, 0, 1, 0.01),
		slider("Saturation", "Color saturation factor, 0 disables", &a.Saturation, -20, 20, 1),
		slider("Brightness", "Offset added to each channel", &a.Brightness, 0, 1, 0.01),
		slider("Contrast", "Contrast factor around mid-gray, 0 disables", &a.Contrast, -5, 5, 0.1),
		slider("Twirl Distortion", "Twirl radius in pixels", &a.TwirlRadius, 0, 500, 1),
	}
}

func slider(name, desc string, field *float32, lo, hi, step float32) *pixfx.ControlOrdered[float32] {
	return &pixfx.ControlOrdered[float32]{
		Name:        name,
		Description: desc,
		Value:       *field,
		Min:         lo,
		Max:         hi,
		Step:        step,
		OnChange: func(v float32) error {
			*field = v
			return nil
		},
	}
}

// Reset returns the adjustments to their neutral state.
func (a *Adjustments) Reset() { *a = Adjustments{} }
