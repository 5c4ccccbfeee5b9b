package starfield

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// PolarFit is the result of comparing a field's polar angles against the
// sin(θ) density of a uniform sphere surface.
type PolarFit struct {
	Bins     int
	Observed []float64
	Expected []float64
	ChiSq    float64
	PValue   float64
}

// PolarChiSquare bins the polar angle of every star into equal-width bins
// over [0, π] and runs a chi-square goodness-of-fit test against the
// expected counts N*(cos a - cos b)/2.
func PolarChiSquare(stars []Star, bins int) (PolarFit, error) {
	angles := make([]float64, len(stars))
	for i := range stars {
		angles[i] = PolarAngle(stars[i])
	}
	return PolarAnglesChiSquare(angles, bins)
}

// PolarAnglesChiSquare is PolarChiSquare over raw angles in [0, π].
func PolarAnglesChiSquare(angles []float64, bins int) (PolarFit, error) {
	if bins < 2 {
		return PolarFit{}, fmt.Errorf("%w: %d bins", ErrInvalidArgument, bins)
	}
	if len(angles) == 0 {
		return PolarFit{}, fmt.Errorf("%w: no samples", ErrInvalidArgument)
	}

	n := float64(len(angles))
	width := math.Pi / float64(bins)

	obs := make([]float64, bins)
	for _, a := range angles {
		b := int(a / width)
		if b >= bins {
			b = bins - 1
		} else if b < 0 {
			b = 0
		}
		obs[b]++
	}

	exp := make([]float64, bins)
	for i := range exp {
		lo := float64(i) * width
		hi := lo + width
		exp[i] = n * (math.Cos(lo) - math.Cos(hi)) / 2
	}

	chi := stat.ChiSquare(obs, exp)
	dist := distuv.ChiSquared{K: float64(bins - 1)}

	return PolarFit{
		Bins:     bins,
		Observed: obs,
		Expected: exp,
		ChiSq:    chi,
		PValue:   1 - dist.CDF(chi),
	}, nil
}

// RadiusSpread returns the mean and standard deviation of star radii.
func RadiusSpread(stars []Star) (mean, std float64) {
	radii := make([]float64, len(stars))
	for i := range stars {
		radii[i] = Radius(stars[i])
	}
	return stat.MeanStdDev(radii, nil)
}
