// Package leaf implements the fixed-threshold leaf-health heuristic.
//
// This is an explicit mock, not a trained classifier: it scores the green
// channel against the red/blue average over a downscaled grid. Improving
// its accuracy is a non-goal.
package leaf

import (
	"fmt"
	"image"
	"io"

	// register decoders for the common upload formats
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"

	"github.com/doccrop/farm-assist/internal/common"
)

const gridSize = 64

const healthThreshold = 10

// Advice strings returned with each classification.
const (
	adviceHealthy = "No disease detected. Maintain regular irrigation and nutrient schedule."
	adviceDisease = "Inspect for spots or discoloration. Consider broad-spectrum fungicide as per schedule."
)

// Metrics are the per-channel means over the resized grid.
type Metrics struct {
	AvgR float64 `json:"avg_r"`
	AvgG float64 `json:"avg_g"`
	AvgB float64 `json:"avg_b"`
}

// Result is the classification payload for one image.
type Result struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	Metrics    Metrics `json:"metrics"`
	Advice     string  `json:"advice"`
}

// Classify decodes r, resizes it to a 64x64 grid, and scores
// meanGreen - (meanRed+meanBlue)/2. Scores above 10 classify as healthy.
// An undecodable payload fails with common.ErrImageDecode.
func Classify(r io.Reader) (Result, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", common.ErrImageDecode, err)
	}

	dst := image.NewRGBA(image.Rect(0, 0, gridSize, gridSize))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	var sumR, sumG, sumB float64
	for y := 0; y < gridSize; y++ {
		for x := 0; x < gridSize; x++ {
			r16, g16, b16, _ := dst.At(x, y).RGBA()
			sumR += float64(r16 >> 8)
			sumG += float64(g16 >> 8)
			sumB += float64(b16 >> 8)
		}
	}
	n := float64(gridSize * gridSize)
	m := Metrics{AvgR: sumR / n, AvgG: sumG / n, AvgB: sumB / n}

	res := Result{Metrics: m}
	if m.AvgG-(m.AvgR+m.AvgB)/2 > healthThreshold {
		res.Label = "Healthy Leaf"
		res.Confidence = 0.85
		res.Advice = adviceHealthy
	} else {
		res.Label = "Possible Leaf Disease"
		res.Confidence = 0.70
		res.Advice = adviceDisease
	}
	return res, nil
}
