package model

import (
	"math"
	"sort"

	"github.com/dkowalski/logsentinel/internal/feature"
	"gonum.org/v1/gonum/stat"
)

// Scorer is an unsupervised outlier-scoring model: per-dimension mean and
// standard deviation computed over a training batch, with the most
// extreme `contamination` fraction of the batch trimmed beforehand (an
// isolation-forest-style contamination cutoff, without requiring an
// actual tree ensemble). A vector's score is a bounded function of its
// distance from the trained center: 1.0 at the center, approaching 0 as
// it moves away. Higher score always means more normal.
type Scorer struct {
	Means   []float64
	StdDevs []float64
}

// Fit trains a Scorer over vectors, all assumed aligned to the same
// schema. contamination (0, 1) is the fraction of the batch treated as
// outliers and excluded before computing mean/stddev, so a handful of
// genuinely anomalous training examples don't drag the learned center
// toward them.
func Fit(vectors []feature.Vector, contamination float64) *Scorer {
	if len(vectors) == 0 {
		return &Scorer{}
	}

	dims := len(vectors[0])
	trimmed := trimOutliers(vectors, contamination)

	means := make([]float64, dims)
	stdDevs := make([]float64, dims)

	for d := 0; d < dims; d++ {
		col := make([]float64, len(trimmed))
		for i, v := range trimmed {
			if d < len(v) {
				col[i] = v[d]
			}
		}
		means[d] = stat.Mean(col, nil)
		stdDevs[d] = stat.StdDev(col, nil)
		if stdDevs[d] == 0 {
			stdDevs[d] = 1 // avoid divide-by-zero; a constant column contributes no signal
		}
	}

	return &Scorer{Means: means, StdDevs: stdDevs}
}

// trimOutliers drops the contamination-fraction of vectors with the
// largest Euclidean distance from the batch centroid, computed on an
// untrimmed preliminary mean.
func trimOutliers(vectors []feature.Vector, contamination float64) []feature.Vector {
	if contamination <= 0 || len(vectors) < 4 {
		return vectors
	}
	if contamination >= 1 {
		contamination = 0.5
	}

	dims := len(vectors[0])
	prelimMean := make([]float64, dims)
	for _, v := range vectors {
		for d := 0; d < dims && d < len(v); d++ {
			prelimMean[d] += v[d]
		}
	}
	for d := range prelimMean {
		prelimMean[d] /= float64(len(vectors))
	}

	type distanced struct {
		v    feature.Vector
		dist float64
	}
	scored := make([]distanced, len(vectors))
	for i, v := range vectors {
		scored[i] = distanced{v: v, dist: euclidean(v, prelimMean)}
	}
	sort.Slice(scored, func(i, j int) bool { return scored[i].dist < scored[j].dist })

	keep := int(math.Round(float64(len(scored)) * (1 - contamination)))
	if keep < 1 {
		keep = 1
	}
	if keep > len(scored) {
		keep = len(scored)
	}

	out := make([]feature.Vector, keep)
	for i := 0; i < keep; i++ {
		out[i] = scored[i].v
	}
	return out
}

func euclidean(v feature.Vector, center []float64) float64 {
	var sum float64
	for d := 0; d < len(center); d++ {
		var x float64
		if d < len(v) {
			x = v[d]
		}
		diff := x - center[d]
		sum += diff * diff
	}
	return math.Sqrt(sum)
}

// Score returns a bounded value in (0, 1]: 1.0 for a vector at the
// trained center, decaying toward 0 as its mean absolute z-score grows.
// Higher is more normal, per convention.
func (s *Scorer) Score(vec feature.Vector) float64 {
	if s == nil || len(s.Means) == 0 {
		return neutralScore
	}

	var sumAbsZ float64
	dims := len(s.Means)
	for d := 0; d < dims; d++ {
		var x float64
		if d < len(vec) {
			x = vec[d]
		}
		z := (x - s.Means[d]) / s.StdDevs[d]
		sumAbsZ += math.Abs(z)
	}
	meanAbsZ := sumAbsZ / float64(dims)

	return 1.0 / (1.0 + meanAbsZ)
}

// neutralScore is returned by an untrained model: always "normal enough"
// to never trip is_anomaly_by_model on its own.
const neutralScore = 1.0
