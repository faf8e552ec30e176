package pixfx

import (
	"errors"
	"math"
	"testing"

	"github.com/soypat/geometry/ms2"
)

func TestControlOrdered(t *testing.T) {
	var changed float32
	ctl := &ControlOrdered[float32]{
		Name: "Contrast", Min: -5, Max: 5, Step: 0.1,
		OnChange: func(v float32) error { changed = v; return nil },
	}
	if err := ctl.ChangeValue(float32(2.5)); err != nil {
		t.Fatal(err)
	}
	if changed != 2.5 || ctl.ActualValue() != float32(2.5) {
		t.Fatalf("value not propagated: changed=%v actual=%v", changed, ctl.ActualValue())
	}
	for _, v := range []float32{-5.1, 5.1, float32(math.NaN())} {
		if err := ctl.ChangeValue(v); !errors.Is(err, ErrParamOutOfRange) {
			t.Errorf("ChangeValue(%v): got %v, want ErrParamOutOfRange", v, err)
		}
	}
	if err := ctl.ChangeValue(2.0); err == nil {
		t.Error("expected type error for float64 value")
	}
	if ctl.Value != 2.5 {
		t.Errorf("rejected change modified value: %v", ctl.Value)
	}
}

func TestControlOrderedOnChangeError(t *testing.T) {
	rejected := errors.New("rejected")
	ctl := &ControlOrdered[int]{Min: 0, Max: 10, Value: 1, OnChange: func(int) error { return rejected }}
	if err := ctl.ChangeValue(3); !errors.Is(err, rejected) {
		t.Fatalf("got %v, want OnChange error", err)
	}
	if ctl.Value != 1 {
		t.Fatalf("value changed after OnChange error: %d", ctl.Value)
	}
}

func TestControlEnum(t *testing.T) {
	ctl := &ControlEnum[Kind]{
		Name:        "Kind",
		Value:       KindSepiaTone,
		ValidValues: []Kind{KindSepiaTone, KindTwirlDistortion},
	}
	if err := ctl.ChangeValue(KindTwirlDistortion); err != nil {
		t.Fatal(err)
	}
	if err := ctl.ChangeValue(KindColorControls); !errors.Is(err, ErrParamOutOfRange) {
		t.Fatalf("got %v, want ErrParamOutOfRange", err)
	}
	if ctl.Value != KindTwirlDistortion {
		t.Fatalf("unexpected value %v", ctl.Value)
	}
}

func TestControlPoint(t *testing.T) {
	ctl := &ControlPoint{Name: "Center", Max: ms2.Vec{X: 10, Y: 5}}
	if err := ctl.ChangeValue(ms2.Vec{X: 10, Y: 0}); err != nil {
		t.Fatal(err)
	}
	for _, p := range []ms2.Vec{{X: -1, Y: 1}, {X: 1, Y: 5.5}, {X: float32(math.NaN()), Y: 1}} {
		if err := ctl.ChangeValue(p); !errors.Is(err, ErrDimensionMismatch) {
			t.Errorf("ChangeValue(%v): got %v, want ErrDimensionMismatch", p, err)
		}
	}
	if ctl.Value != (ms2.Vec{X: 10, Y: 0}) {
		t.Errorf("unexpected value %v", ctl.Value)
	}
}
