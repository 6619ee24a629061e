package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultOptions(t *testing.T) {
	want := Options{
		Alignment:     AlignTop,
		Backdrop:      true,
		BackdropColor: DefaultBackdropColor,
		DismissOnTap:  true,
		DragToDismiss: true,
		Transition:    TransitionFade,
		DisplayMode:   DisplayFull,
	}
	if diff := cmp.Diff(want, DefaultOptions()); diff != "" {
		t.Errorf("DefaultOptions() mismatch (-want +got):\n%s", diff)
	}
	assert.False(t, DefaultOptions().AutoHides())
}

func TestNewOptions(t *testing.T) {
	o := NewOptions(
		WithAlignment(AlignBottomTrailing),
		WithHideAfter(2*time.Second),
		WithBackdrop(false, "#000000"),
		WithDismissOnTap(false),
		WithDragToDismiss(false),
		WithTransition(TransitionSkew),
		WithDisplayMode(DisplayInline),
		WithCountdown(true),
	)

	want := Options{
		Alignment:     AlignBottomTrailing,
		HideAfter:     2 * time.Second,
		Backdrop:      false,
		BackdropColor: "#000000",
		DismissOnTap:  false,
		DragToDismiss: false,
		Transition:    TransitionSkew,
		DisplayMode:   DisplayInline,
		ShowCountdown: true,
	}
	if diff := cmp.Diff(want, o); diff != "" {
		t.Errorf("NewOptions() mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, o.AutoHides())
}

func TestWithBackdrop_KeepsColorWhenEmpty(t *testing.T) {
	o := NewOptions(WithBackdrop(true, ""))
	assert.Equal(t, DefaultBackdropColor, o.BackdropColor)
}

func TestAlignment_DismissGeometry(t *testing.T) {
	tests := []struct {
		align Alignment
		axis  Axis
		dir   float64
		edge  Edge
	}{
		{AlignTop, AxisVertical, -1, EdgeTop},
		{AlignTopLeading, AxisVertical, -1, EdgeTop},
		{AlignTopTrailing, AxisVertical, -1, EdgeTop},
		{AlignBottom, AxisVertical, 1, EdgeBottom},
		{AlignBottomLeading, AxisVertical, 1, EdgeBottom},
		{AlignBottomTrailing, AxisVertical, 1, EdgeBottom},
		{AlignLeading, AxisHorizontal, -1, EdgeTop},
		{AlignTrailing, AxisHorizontal, 1, EdgeTop},
		{AlignCenter, AxisVertical, -1, EdgeTop},
	}

	for _, tt := range tests {
		t.Run(tt.align.String(), func(t *testing.T) {
			assert.Equal(t, tt.axis, tt.align.DismissAxis())
			assert.Equal(t, tt.dir, tt.align.DismissDirection())
			assert.Equal(t, tt.edge, tt.align.TransitionEdge())
		})
	}
}

func TestParseAlignment(t *testing.T) {
	for a, name := range alignmentNames {
		got, err := ParseAlignment(name)
		require.NoError(t, err)
		assert.Equal(t, a, got)
	}

	got, err := ParseAlignment(" BottomTrailing ")
	require.NoError(t, err)
	assert.Equal(t, AlignBottomTrailing, got)

	_, err = ParseAlignment("middle")
	assert.True(t, errors.Is(err, ErrInvalidOption))
}

func TestParseTransition(t *testing.T) {
	got, err := ParseTransition("Skew")
	require.NoError(t, err)
	assert.Equal(t, TransitionSkew, got)

	_, err = ParseTransition("spin")
	assert.ErrorIs(t, err, ErrInvalidOption)
}

func TestParseDisplayMode(t *testing.T) {
	got, err := ParseDisplayMode("")
	require.NoError(t, err)
	assert.Equal(t, DisplayFull, got)

	got, err = ParseDisplayMode("inline")
	require.NoError(t, err)
	assert.Equal(t, DisplayInline, got)

	_, err = ParseDisplayMode("half")
	assert.ErrorIs(t, err, ErrInvalidOption)
}
