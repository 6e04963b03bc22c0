package leaf

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doccrop/farm-assist/internal/common"
)

func encodeSolid(t *testing.T, c color.RGBA) *bytes.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 128, 96))
	for y := 0; y < 96; y++ {
		for x := 0; x < 128; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &buf
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		fill      color.RGBA
		wantLabel string
		wantConf  float64
	}{
		{
			name:      "green leaf is healthy",
			fill:      color.RGBA{R: 40, G: 180, B: 40, A: 255},
			wantLabel: "Healthy Leaf",
			wantConf:  0.85,
		},
		{
			name:      "brown leaf is possible disease",
			fill:      color.RGBA{R: 150, G: 100, B: 60, A: 255},
			wantLabel: "Possible Leaf Disease",
			wantConf:  0.70,
		},
		{
			name:      "gray image scores zero and is not healthy",
			fill:      color.RGBA{R: 128, G: 128, B: 128, A: 255},
			wantLabel: "Possible Leaf Disease",
			wantConf:  0.70,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(encodeSolid(t, tt.fill))
			require.NoError(t, err)
			assert.Equal(t, tt.wantLabel, got.Label)
			assert.InDelta(t, tt.wantConf, got.Confidence, 1e-9)
		})
	}
}

func TestClassifyMetrics(t *testing.T) {
	got, err := Classify(encodeSolid(t, color.RGBA{R: 10, G: 200, B: 30, A: 255}))
	require.NoError(t, err)

	// A solid image survives resizing with its channel means intact.
	assert.InDelta(t, 10, got.Metrics.AvgR, 2)
	assert.InDelta(t, 200, got.Metrics.AvgG, 2)
	assert.InDelta(t, 30, got.Metrics.AvgB, 2)
}

func TestClassifyUndecodableImage(t *testing.T) {
	_, err := Classify(strings.NewReader("definitely not an image"))
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrImageDecode)
}
