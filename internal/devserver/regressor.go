package devserver

import (
	"encoding/json"
	"fmt"

	"github.com/haskel/mlpipe/internal/dataset"
)

const artifactFormat = "mlpipe-linear-v1"

// Artifact is the model the emulator trains: a univariate least-squares
// fit on the feature most correlated with the target. It stands in for
// the opaque binary a real platform would produce, while still giving
// deterministic, data-dependent predictions.
type Artifact struct {
	Format       string  `json:"format"`
	FeatureIndex int     `json:"feature_index"`
	Slope        float64 `json:"slope"`
	Intercept    float64 `json:"intercept"`
	TargetMean   float64 `json:"target_mean"`
	Rows         int     `json:"rows"`
}

// FitRegressor fits the artifact on the training records.
// Slope and intercept come from the usual closed form:
// a = Cov(x,y)/Var(x), b = mean_y - a*mean_x.
func FitRegressor(records []dataset.Record) (*Artifact, error) {
	n := float64(len(records))
	if len(records) < 2 {
		return nil, fmt.Errorf("need at least 2 training rows, got %d", len(records))
	}

	var meanY float64
	for _, rec := range records {
		meanY += rec.Target
	}
	meanY /= n

	var varY float64
	for _, rec := range records {
		d := rec.Target - meanY
		varY += d * d
	}

	best := &Artifact{
		Format:       artifactFormat,
		FeatureIndex: -1,
		Intercept:    meanY,
		TargetMean:   meanY,
		Rows:         len(records),
	}

	bestScore := -1.0
	for j := 0; j < dataset.NumFeatures; j++ {
		var meanX float64
		for _, rec := range records {
			meanX += rec.Features[j]
		}
		meanX /= n

		var cov, varX float64
		for _, rec := range records {
			dx := rec.Features[j] - meanX
			varX += dx * dx
			cov += dx * (rec.Target - meanY)
		}

		if varX < 1e-10 || varY < 1e-10 {
			continue
		}

		// Squared correlation ranks features without caring about sign.
		score := (cov * cov) / (varX * varY)
		if score > bestScore {
			bestScore = score
			slope := cov / varX
			best.FeatureIndex = j
			best.Slope = slope
			best.Intercept = meanY - slope*meanX
		}
	}

	return best, nil
}

// Predict applies the fitted line to one feature vector. An artifact
// with no usable feature falls back to the training target mean.
func (a *Artifact) Predict(features []float64) float64 {
	if a.FeatureIndex < 0 || a.FeatureIndex >= len(features) {
		return a.TargetMean
	}
	return a.Slope*features[a.FeatureIndex] + a.Intercept
}

// Marshal serializes the artifact the way the emulator stores it.
func (a *Artifact) Marshal() ([]byte, error) {
	return json.MarshalIndent(a, "", "  ")
}

// UnmarshalArtifact parses a stored artifact and checks its format tag.
func UnmarshalArtifact(data []byte) (*Artifact, error) {
	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("parsing artifact: %w", err)
	}
	if a.Format != artifactFormat {
		return nil, fmt.Errorf("unsupported artifact format %q", a.Format)
	}
	return &a, nil
}
