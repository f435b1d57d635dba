package distribution

import "math"

// Point is one sample of the estimated forecast density. Probability always
// lies in [0,1].
type Point struct {
	Probability float64 `json:"probability"`
	Density     float64 `json:"density"`
}

const (
	// gridSize is the number of evaluation points covering [0,1].
	gridSize = 101

	// minBandwidth keeps the kernel from degenerating when the sample
	// variance is near zero or the sample is tiny.
	minBandwidth = 0.01

	// peakWidth is the synthetic kernel width used for a single forecast,
	// where a computed bandwidth would be meaningless.
	peakWidth = 0.02
)

// Bandwidth implements Silverman's rule of thumb, 1.06 * stddev * n^(-1/5),
// floored at minBandwidth.
func Bandwidth(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return minBandwidth
	}

	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(n)

	variance := 0.0
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(n)

	h := 1.06 * math.Sqrt(variance) * math.Pow(float64(n), -0.2)
	if h < minBandwidth {
		return minBandwidth
	}
	return h
}

// Estimate produces a Gaussian kernel density curve over [0,1] from a set of
// forecast probabilities. Empty input yields an empty curve; a single value
// yields a narrow synthetic peak instead of a computed-bandwidth KDE. Kernel
// mass falling outside [0,1] is truncated by the fixed grid rather than
// reflected back in.
func Estimate(values []float64) []Point {
	switch len(values) {
	case 0:
		return []Point{}
	case 1:
		return singlePointPeak(values[0])
	}

	h := Bandwidth(values)
	n := float64(len(values))
	points := make([]Point, 0, gridSize)
	for i := 0; i < gridSize; i++ {
		x := float64(i) / float64(gridSize-1)
		sum := 0.0
		for _, v := range values {
			sum += gaussianKernel((x - v) / h)
		}
		points = append(points, Point{
			Probability: x,
			Density:     sum / (n * h),
		})
	}
	return points
}

// singlePointPeak renders everyone-agrees-here as a narrow Gaussian bump
// centered on the lone forecast value.
func singlePointPeak(value float64) []Point {
	points := make([]Point, 0, gridSize)
	for i := 0; i < gridSize; i++ {
		x := float64(i) / float64(gridSize-1)
		points = append(points, Point{
			Probability: x,
			Density:     gaussianKernel((x-value)/peakWidth) / peakWidth,
		})
	}
	return points
}

func gaussianKernel(u float64) float64 {
	return math.Exp(-0.5*u*u) / math.Sqrt(2*math.Pi)
}
