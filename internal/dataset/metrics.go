package dataset

import "math"

// RMSE computes the root mean squared error of predictions against the
// records' target values. Mismatched lengths yield NaN.
func RMSE(predictions []float64, records []Record) float64 {
	if len(predictions) == 0 || len(predictions) != len(records) {
		return math.NaN()
	}

	var sum float64
	for i, pred := range predictions {
		d := pred - records[i].Target
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(predictions)))
}
