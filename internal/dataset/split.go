package dataset

import (
	"fmt"
	"math"
	"math/rand"
)

// Splits holds the three disjoint partitions of a dataset. Their union
// is always the full input set; sizes always sum to the input size.
type Splits struct {
	Train      []Record
	Validation []Record
	Test       []Record
}

// Split partitions records into test, validation and train subsets.
// testRatio is applied to the full set first; validationRatio is then
// applied to the remainder, so the effective three-way proportions are
// a function of the two ratios. The shuffle is seeded: the same seed
// and input always produce the same partition.
func Split(records []Record, testRatio, validationRatio float64, seed int64) (*Splits, error) {
	if testRatio <= 0 || testRatio >= 1 {
		return nil, fmt.Errorf("test ratio must be in (0, 1), got %g", testRatio)
	}
	if validationRatio <= 0 || validationRatio >= 1 {
		return nil, fmt.Errorf("validation ratio must be in (0, 1), got %g", validationRatio)
	}

	shuffled := make([]Record, len(records))
	copy(shuffled, records)

	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	nTest := int(math.Round(testRatio * float64(len(shuffled))))
	rest := shuffled[nTest:]
	nValidation := int(math.Round(validationRatio * float64(len(rest))))

	return &Splits{
		Test:       shuffled[:nTest:nTest],
		Validation: rest[:nValidation:nValidation],
		Train:      rest[nValidation:],
	}, nil
}
