package filters

// GrayscaleMode determines the algorithm for RGB to grayscale conversion.
type GrayscaleMode int

const (
	// GrayscaleLuminance uses standard luminance weights: 0.299*R + 0.587*G + 0.114*B
	GrayscaleLuminance GrayscaleMode = iota
	// GrayscaleAverage uses simple average: (R + G + B) / 3
	GrayscaleAverage
	// GrayscaleLightness uses min/max average: (max(R,G,B) + min(R,G,B)) / 2
	GrayscaleLightness
)

var grayscaleModes = []GrayscaleMode{GrayscaleLuminance, GrayscaleAverage, GrayscaleLightness}

func (m GrayscaleMode) String() string {
	switch m {
	case GrayscaleLuminance:
		return "Luminance"
	case GrayscaleAverage:
		return "Average"
	case GrayscaleLightness:
		return "Lightness"
	default:
		return "Unknown"
	}
}

// gray returns the gray level of a normalized RGB triple.
func (m GrayscaleMode) gray(r, g, b float32) float32 {
	switch m {
	case GrayscaleAverage:
		return (r + g + b) / 3
	case GrayscaleLightness:
		return (min(r, g, b) + max(r, g, b)) / 2
	default:
		return 0.299*r + 0.587*g + 0.114*b
	}
}
