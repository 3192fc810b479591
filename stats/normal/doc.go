// Package normal provides standard normal distribution helpers.
//
// The package covers only what level thresholding needs: the CDF, its
// inverse, and the two-sided confidence z-score. Everything reduces to the
// math package's Erf and Erfinv.
package normal
