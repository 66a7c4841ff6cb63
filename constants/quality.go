package constants

// QualityRating is a coarse rating of how OCR-friendly a processed image is.
// It is derived purely from final pixel dimensions and can be recomputed at
// any time.
type QualityRating string

const (
	QualityPoor QualityRating = "POOR"
	QualityFair QualityRating = "FAIR"
	QualityGood QualityRating = "GOOD"
)

// QualityFromDimensions rates an image by its final width and height.
func QualityFromDimensions(width, height int) QualityRating {
	switch {
	case width < 200 || height < 200:
		return QualityPoor
	case width >= 800 && height >= 600:
		return QualityGood
	default:
		return QualityFair
	}
}
