package preprocess

import (
	"image"
	"image/draw"
	"log/slog"

	"github.com/disintegration/imaging"

	"github.com/kharcha-app/receipt-engine/internal/common"
	"github.com/kharcha-app/receipt-engine/internal/entity"
)

// Contrast stretch tuning: windows narrower than minDynamicRange are widened
// by rangePadding on each side so noise is not exaggerated.
const (
	minDynamicRange = 50
	rangePadding    = 20
)

// sharpenKernel is the fixed 3x3 convolution applied as the final stage.
// Edge pixels are copied through unmodified.
var sharpenKernel = [3][3]int{
	{0, -1, 0},
	{-1, 5, -1},
	{0, -1, 0},
}

// Preprocessor runs the deterministic pixel pipeline that prepares a decoded
// image for text recognition: conditional downscale, grayscale, contrast
// stretch, sharpen.
type Preprocessor struct {
	cfg    common.PreprocessConfig
	logger *slog.Logger
}

func NewPreprocessor(cfg common.PreprocessConfig, logger *slog.Logger) *Preprocessor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Preprocessor{cfg: cfg, logger: logger}
}

// Run executes the pipeline. When preprocessing is disabled the decoded image
// passes through unchanged, only wrapped with its quality rating.
func (p *Preprocessor) Run(img image.Image) (*entity.ProcessedImage, error) {
	if img == nil {
		return nil, common.PreprocessingError("no decoded image", nil)
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, common.PreprocessingError("decoded image has no pixels", nil)
	}

	if !p.cfg.Enabled {
		p.logger.Debug("preprocessing disabled, passing image through",
			"width", b.Dx(), "height", b.Dy())
		return entity.NewProcessedImage(img), nil
	}

	resized := p.downscale(img)

	gray := toGray(resized)

	stretched := stretchContrast(gray)

	sharpened := sharpen(stretched)

	out := entity.NewProcessedImage(sharpened)
	if out.Width <= 0 || out.Height <= 0 {
		return nil, common.PreprocessingError("pipeline produced an empty image", nil)
	}
	p.logger.Debug("preprocessing complete",
		"width", out.Width, "height", out.Height, "quality", out.Quality)
	return out, nil
}

// downscale shrinks the image only when it exceeds the configured maxima,
// preserving aspect ratio with bilinear interpolation.
func (p *Preprocessor) downscale(img image.Image) image.Image {
	b := img.Bounds()
	if b.Dx() <= p.cfg.MaxWidth && b.Dy() <= p.cfg.MaxHeight {
		return img
	}
	return imaging.Fit(img, p.cfg.MaxWidth, p.cfg.MaxHeight, imaging.Linear)
}

// toGray converts to single-channel 8-bit using the standard luminance
// colorspace conversion.
func toGray(img image.Image) *image.Gray {
	b := img.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// stretchContrast linearly rescales all samples into [0,255] based on the
// observed min/max window.
func stretchContrast(src *image.Gray) *image.Gray {
	lo, hi := 255, 0
	for _, v := range src.Pix {
		if int(v) < lo {
			lo = int(v)
		}
		if int(v) > hi {
			hi = int(v)
		}
	}

	if hi-lo < minDynamicRange {
		lo -= rangePadding
		hi += rangePadding
		if lo < 0 {
			lo = 0
		}
		if hi > 255 {
			hi = 255
		}
	}

	dst := image.NewGray(src.Bounds())
	if hi <= lo {
		copy(dst.Pix, src.Pix)
		return dst
	}

	scale := 255.0 / float64(hi-lo)
	for i, v := range src.Pix {
		s := (float64(v) - float64(lo)) * scale
		dst.Pix[i] = clamp8(s + 0.5)
	}
	return dst
}

// sharpen applies the fixed kernel; the outermost rows and columns are left
// unmodified rather than extended or wrapped.
func sharpen(src *image.Gray) *image.Gray {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewGray(b)
	copy(dst.Pix, src.Pix)

	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			var sum int
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					sum += sharpenKernel[ky+1][kx+1] * int(src.Pix[(y+ky)*src.Stride+(x+kx)])
				}
			}
			dst.Pix[y*dst.Stride+x] = clamp8(float64(sum))
		}
	}
	return dst
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
