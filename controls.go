package pixfx

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/soypat/geometry/ms2"
)

// Control represents an editable parameter of a filter.
// When Value is modified via OnChange the owner picks up the new value.
type Control interface {
	// Display/human readable name and description.
	Describe() (name, description string)
	// ActualValue returns the current value of the control.
	ActualValue() any
	// ChangeValue attempts to update the ActualValue to newValue.
	ChangeValue(newValue any) error
}

type ControlOrdered[T cmp.Ordered] struct {
	Name        string
	Description string
	Value       T
	Min         T
	Max         T
	Step        T
	// OnChange is optional. Controls returned by filter values are descriptive
	// and carry no OnChange; the caller builds a new filter from the value.
	OnChange func(T) error
}

func (co *ControlOrdered[T]) Describe() (name, description string) {
	return co.Name, co.Description
}
func (co *ControlOrdered[T]) ActualValue() any { return co.Value }

// Check returns an error wrapping [ErrParamOutOfRange] if v is outside Min..Max.
// NaN float values are always out of range.
func (co *ControlOrdered[T]) Check(v T) error {
	if v != v || v < co.Min || v > co.Max {
		return fmt.Errorf("%w: %s=%v exceeds limits %v..%v", ErrParamOutOfRange, co.Name, v, co.Min, co.Max)
	}
	return nil
}

func (co *ControlOrdered[T]) ChangeValue(newValue any) error {
	v, ok := newValue.(T)
	if !ok {
		return fmt.Errorf("new value %T not of type %T", newValue, co.Value)
	}
	if err := co.Check(v); err != nil {
		return err
	}
	if co.OnChange != nil {
		if err := co.OnChange(v); err != nil {
			return err
		}
	}
	co.Value = v
	return nil
}

type integer interface {
	~int | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~int8 | ~int16 | ~int32 | ~int64
}

// enum best generated with stringer commands.
type enum interface {
	integer
	fmt.Stringer
}

// ControlEnum maps to dropdown kind of list.
type ControlEnum[T enum] struct {
	Name        string
	Description string
	Value       T
	ValidValues []T
	OnChange    func(T) error
}

func (ce *ControlEnum[T]) Describe() (name, description string) {
	return ce.Name, ce.Description
}
func (ce *ControlEnum[T]) ActualValue() any {
	return ce.Value
}

// Check returns an error wrapping [ErrParamOutOfRange] if v is not a valid value.
func (ce *ControlEnum[T]) Check(v T) error {
	if !slices.Contains(ce.ValidValues, v) {
		return fmt.Errorf("%w: %s=%v not valid", ErrParamOutOfRange, ce.Name, v)
	}
	return nil
}

func (ce *ControlEnum[T]) ChangeValue(newValue any) error {
	v, ok := newValue.(T)
	if !ok {
		return fmt.Errorf("new value %T not of type %T", newValue, ce.Value)
	}
	if err := ce.Check(v); err != nil {
		return err
	}
	if ce.OnChange != nil {
		if err := ce.OnChange(v); err != nil {
			return err
		}
	}
	ce.Value = v
	return nil
}

// ControlPoint is a 2D position control, i.e. a draggable handle over the image.
// Min and Max bound the position inclusively on both axes.
type ControlPoint struct {
	Name        string
	Description string
	Value       ms2.Vec
	Min         ms2.Vec
	Max         ms2.Vec
	OnChange    func(ms2.Vec) error
}

func (cp *ControlPoint) Describe() (name, description string) {
	return cp.Name, cp.Description
}

func (cp *ControlPoint) ActualValue() any {
	return cp.Value
}

// Contains reports whether p lies within Min..Max. NaN coordinates are never contained.
func (cp *ControlPoint) Contains(p ms2.Vec) bool {
	return p.X >= cp.Min.X && p.X <= cp.Max.X && p.Y >= cp.Min.Y && p.Y <= cp.Max.Y
}

func (cp *ControlPoint) ChangeValue(newValue any) error {
	p, ok := newValue.(ms2.Vec)
	if !ok {
		return fmt.Errorf("new value %T not of type ms2.Vec", newValue)
	}
	if !cp.Contains(p) {
		return fmt.Errorf("%w: %s=%v outside %v..%v", ErrDimensionMismatch, cp.Name, p, cp.Min, cp.Max)
	}
	if cp.OnChange != nil {
		if err := cp.OnChange(p); err != nil {
			return err
		}
	}
	cp.Value = p
	return nil
}
