package measure_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/aptpod/viewmeasure-go/measure"
)

func TestLocalGeometry_Valid(t *testing.T) {
	tests := []struct {
		name string
		g    LocalGeometry
		want bool
	}{
		{name: "ok", g: geometry42, want: true},
		{name: "zero", g: LocalGeometry{}, want: true},
		{name: "negative position", g: LocalGeometry{X: -10, Y: -20, PageX: -1, PageY: -2}, want: true},
		{name: "negative width", g: LocalGeometry{Width: -1}, want: false},
		{name: "negative height", g: LocalGeometry{Height: -1}, want: false},
		{name: "nan", g: LocalGeometry{PageX: math.NaN()}, want: false},
		{name: "inf", g: LocalGeometry{Y: math.Inf(1)}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.g.Valid())
		})
	}
}

func TestWindowGeometry_Valid(t *testing.T) {
	tests := []struct {
		name string
		g    WindowGeometry
		want bool
	}{
		{name: "ok", g: window42, want: true},
		{name: "negative width", g: WindowGeometry{Width: -0.5}, want: false},
		{name: "nan", g: WindowGeometry{X: math.NaN()}, want: false},
		{name: "inf", g: WindowGeometry{Height: math.Inf(-1)}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.g.Valid())
		})
	}
}
