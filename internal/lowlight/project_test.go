package lowlight

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func rgbBuffer(r, g, b float64) *Buffer {
	buf := NewBuffer(1, 1, 3)
	buf.Ch[0].Set(0, 0, r)
	buf.Ch[1].Set(0, 0, g)
	buf.Ch[2].Set(0, 0, b)
	return buf
}

func TestProjectMethods(t *testing.T) {
	buf := rgbBuffer(0.2, 0.6, 0.4)

	tests := []struct {
		method ProjectionMethod
		want   float64
	}{
		{ProjectMax, 0.6},
		{ProjectAverage, 0.4},
		{ProjectGray, 0.299*0.2 + 0.587*0.6 + 0.114*0.4},
		// HSV value is the max channel.
		{ProjectLuminosity, 0.6},
		// Empty method falls back to max.
		{"", 0.6},
	}
	for _, tt := range tests {
		t.Run(string(tt.method), func(t *testing.T) {
			got, err := Project(buf, tt.method)
			require.NoError(t, err)
			require.InDelta(t, tt.want, got.Get(0, 0), 1e-9)
		})
	}
}

func TestProjectUnknownMethod(t *testing.T) {
	_, err := Project(rgbBuffer(0, 0, 0), "sobel")
	require.Error(t, err)
}

func TestProjectGrayscalePassthrough(t *testing.T) {
	buf := NewBuffer(2, 2, 1)
	buf.Ch[0].Set(1, 1, 0.7)

	got, err := Project(buf, ProjectMax)
	require.NoError(t, err)
	require.Equal(t, 0.7, got.Get(1, 1))

	// Must be a copy, not a view.
	got.Set(1, 1, 0.1)
	require.Equal(t, 0.7, buf.Ch[0].Get(1, 1))
}

func TestProjectShapeError(t *testing.T) {
	bad := &Buffer{Ch: []*Plane{NewPlane(2, 2), NewPlane(2, 2)}}
	_, err := Project(bad, ProjectMax)
	require.Error(t, err)
}
