package dataset

// NumFeatures is the number of feature columns in the housing dataset.
const NumFeatures = 13

// FeatureNames lists the feature columns in their fixed file order.
// The target column (medv, median home value in $1000s) is not listed.
var FeatureNames = [NumFeatures]string{
	"crim",    // per-capita crime rate
	"zn",      // residential land zoned for large lots
	"indus",   // non-retail business acres per town
	"chas",    // Charles River dummy variable
	"nox",     // nitric oxide concentration
	"rm",      // average rooms per dwelling
	"age",     // owner-occupied units built before 1940
	"dis",     // distance to employment centres
	"rad",     // accessibility to radial highways
	"tax",     // property tax rate per $10k
	"ptratio", // pupil-teacher ratio
	"b",       // 1000(Bk - 0.63)^2
	"lstat",   // % lower status of the population
}

// Record is one row of the housing dataset. Comparable by value, which
// the split tests rely on.
type Record struct {
	Features [NumFeatures]float64
	Target   float64
}
