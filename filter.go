package pixfx

// Kind identifies the variant of a [Filter].
type Kind int

const (
	kindUndefined       Kind = iota // undefined
	KindSepiaTone                   // sepia-tone
	KindColorControls               // color-controls
	KindTwirlDistortion             // twirl-distortion
)

func (k Kind) String() string {
	switch k {
	case KindSepiaTone:
		return "sepia-tone"
	case KindColorControls:
		return "color-controls"
	case KindTwirlDistortion:
		return "twirl-distortion"
	default:
		return "undefined"
	}
}

// Filter transforms one [Buffer] into a new one. A Filter value carries its
// own parameters so a Filter is both the kind and the parameter set of a stage.
//
// Implementations must be pure: Apply never mutates src, keeps no state
// between calls and returns byte-identical output for identical input.
// The output always has the same dimensions and format as src.
type Filter interface {
	Kind() Kind
	// Neutral reports whether the current parameters make the filter an identity transform.
	Neutral() bool
	// Validate checks parameters against their documented ranges and against
	// the geometry of an image with dimensions d.
	Validate(d Dims) error
	// Apply runs the filter on src. Neutral filters return a copy of src.
	Apply(src *Buffer) (*Buffer, error)
	// Controls returns the editable parameters of the filter with their limits.
	Controls() []Control
}
