package anatomy

import (
	"math"
	"testing"

	"github.com/philipparndt/neurosight/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveNormals(t *testing.T) {
	tests := []struct {
		plane  Plane
		normal geometry.Vector3
	}{
		{Sagittal, geometry.NewVector3(1, 0, 0)},
		{Coronal, geometry.NewVector3(0, 0, 1)},
		{Horizontal, geometry.NewVector3(0, -1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.plane.String(), func(t *testing.T) {
			for _, offset := range []float64{-1, -0.25, 0, 0.5, 1, 7.5} {
				planes := Resolve(tt.plane, offset)
				require.Len(t, planes, 1)
				assert.Equal(t, tt.normal, planes[0].Normal)
				assert.Equal(t, offset, planes[0].Distance)
			}
		})
	}
}

func TestResolveSagittalVisibility(t *testing.T) {
	planes := Resolve(Sagittal, 0.3)
	require.Len(t, planes, 1)

	assert.True(t, planes[0].Keeps(geometry.NewVector3(0.5, 0, 0)))
	assert.False(t, planes[0].Keeps(geometry.NewVector3(0.1, 0, 0)))
}

func TestResolveHorizontalIsInverted(t *testing.T) {
	planes := Resolve(Horizontal, -0.4)
	require.Len(t, planes, 1)

	assert.False(t, planes[0].Keeps(geometry.NewVector3(0, 0.5, 0)))
	assert.True(t, planes[0].Keeps(geometry.NewVector3(0, 0.3, 0)))
}

func TestResolveUnknown(t *testing.T) {
	assert.Empty(t, Resolve(Unknown, 0.5))
	assert.Empty(t, ResolveID("oblique", 0.5))
	assert.Empty(t, ResolveID("", 0))
}

func TestResolveReturnsFreshSlices(t *testing.T) {
	first := Resolve(Coronal, 0.2)
	second := Resolve(Coronal, 0.2)
	require.Len(t, first, 1)
	require.Len(t, second, 1)

	first[0].Distance = 99
	assert.Equal(t, 0.2, second[0].Distance)
	assert.Equal(t, 0.2, Resolve(Coronal, 0.2)[0].Distance)
}

func TestResolveNonFiniteOffsetPassesThrough(t *testing.T) {
	planes := Resolve(Sagittal, math.NaN())
	require.Len(t, planes, 1)
	assert.True(t, math.IsNaN(planes[0].Distance))
}

func TestParsePlane(t *testing.T) {
	assert.Equal(t, Sagittal, ParsePlane("sagittal"))
	assert.Equal(t, Coronal, ParsePlane(" Coronal "))
	assert.Equal(t, Horizontal, ParsePlane("HORIZONTAL"))
	assert.Equal(t, Unknown, ParsePlane("axial"))
	assert.Equal(t, "unknown", Unknown.String())
	assert.Equal(t, "Horizontal", Horizontal.Label())
}

func TestPlaneText(t *testing.T) {
	var p Plane
	require.NoError(t, p.UnmarshalText([]byte("coronal")))
	assert.Equal(t, Coronal, p)

	text, err := Sagittal.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "sagittal", string(text))

	assert.Error(t, p.UnmarshalText([]byte("transverse")))
	assert.Equal(t, Coronal, p, "failed unmarshal leaves the value untouched")

	_, err = Unknown.MarshalText()
	assert.Error(t, err)
}

func TestPlanesOrder(t *testing.T) {
	assert.Equal(t, []Plane{Sagittal, Horizontal, Coronal}, Planes())
}

func TestClampOffset(t *testing.T) {
	assert.Equal(t, 1.0, ClampOffset(3))
	assert.Equal(t, -1.0, ClampOffset(-1.5))
	assert.Equal(t, 0.25, ClampOffset(0.25))
}
