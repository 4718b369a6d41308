package core

import (
	"math"

	"github.com/dustin/go-humanize"
	"github.com/huangsam/sizewatch/schema"
)

// percentDecimals is the precision of the percentage shown in delta text.
const percentDecimals = 2

// severityBand is one growth or shrink threshold, in whole percent.
type severityBand struct {
	threshold int64
	severity  schema.Severity
}

// Growth bands are matched with >=, checked before shrink bands.
var growthBands = []severityBand{
	{50, schema.CriticalGrowth},
	{20, schema.MajorGrowth},
	{10, schema.WarningGrowth},
	{5, schema.NotableGrowth},
}

// Shrink bands are matched with <=.
var shrinkBands = []severityBand{
	{-50, schema.BestShrink},
	{-20, schema.GreatShrink},
	{-10, schema.GoodShrink},
	{-5, schema.MinorShrink},
}

// SignedBytes formats delta like PrettyBytes with an explicit '+' for growth.
func SignedBytes(delta int64) string {
	if delta > 0 {
		return "+" + PrettyBytes(delta)
	}
	return PrettyBytes(delta)
}

// Percent returns (delta / originalSize) * 100 rounded half-up to two decimals.
// It returns 0 when originalSize is 0.
func Percent(delta, originalSize int64) float64 {
	if originalSize == 0 {
		return 0
	}
	return roundHalfUp(float64(delta)/float64(originalSize)*100, percentDecimals)
}

// DeltaText describes a size change relative to the original size.
//
//	DeltaText(0, 300)       == "0 B"
//	DeltaText(210, 0)       == "+210 B (new file)"
//	DeltaText(-300, 300)    == "-300 B (removed)"
//	DeltaText(5000, 20000)  == "+5 kB (+25%)"
func DeltaText(delta, originalSize int64) string {
	if delta == 0 {
		return PrettyBytes(0)
	}
	text := SignedBytes(delta)
	switch {
	case originalSize == 0:
		return text + " (new file)"
	case originalSize == -delta:
		return text + " (removed)"
	}
	pct := Percent(delta, originalSize)
	sign := ""
	if pct > 0 {
		sign = "+"
	}
	return text + " (" + sign + humanize.FtoaWithDigits(pct, percentDecimals) + "%)"
}

// Classify places a size change into a severity band.
// Changes below five percent in either direction are insignificant, and so is
// a zero delta on an empty file.
func Classify(delta, originalSize int64) schema.Severity {
	if delta == 0 {
		return schema.InsignificantSeverity
	}
	if originalSize == 0 {
		return schema.NewFileSeverity
	}
	pct := int64(math.Floor(float64(delta)/float64(originalSize)*100 + 0.5))
	for _, b := range growthBands {
		if pct >= b.threshold {
			return b.severity
		}
	}
	for _, b := range shrinkBands {
		if pct <= b.threshold {
			return b.severity
		}
	}
	return schema.InsignificantSeverity
}

// SeverityIcon returns the icon for a size change, or "" when insignificant.
// A zero delta is checked before an empty original size, so (0, 0) has no icon.
func SeverityIcon(delta, originalSize int64) string {
	return schema.SeverityIcons[Classify(delta, originalSize)]
}
