package preprocess

import (
	"bytes"
	"fmt"
	"image"
	"log/slog"
	"path/filepath"

	// Registered decoders for the extension allow-list.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/kharcha-app/receipt-engine/constants"
	"github.com/kharcha-app/receipt-engine/internal/common"
	"github.com/kharcha-app/receipt-engine/internal/entity"
)

// Validator enforces the upload policy before anything touches pixels.
type Validator struct {
	allowed  map[string]struct{}
	maxBytes int64
	logger   *slog.Logger
}

func NewValidator(cfg common.UploadConfig, logger *slog.Logger) (*Validator, error) {
	if logger == nil {
		logger = slog.Default()
	}
	maxBytes, err := constants.ParseByteSize(cfg.MaxUploadSize)
	if err != nil {
		return nil, common.NewAppError(common.CodeConfigError, "invalid max upload size", err)
	}
	return &Validator{
		allowed:  constants.ParseExtensions(cfg.AllowedExtensions),
		maxBytes: maxBytes,
		logger:   logger,
	}, nil
}

// Validate checks raw bytes against the size/extension policy and returns an
// immutable RawImage. It performs no decoding.
func (v *Validator) Validate(data []byte, filename string, declaredSize int64) (*entity.RawImage, error) {
	if len(data) == 0 {
		return nil, common.InvalidImageError("image data is empty", nil)
	}

	ext := constants.NormalizeExt(filepath.Ext(filename))
	if ext == "" {
		return nil, common.InvalidImageError(fmt.Sprintf("filename %q has no extension", filename), nil)
	}
	if _, ok := v.allowed[ext]; !ok {
		return nil, common.InvalidImageError(fmt.Sprintf("file type %q is not allowed", ext), nil)
	}

	if declaredSize > v.maxBytes {
		return nil, common.InvalidImageError(
			fmt.Sprintf("file size %d exceeds limit of %d bytes", declaredSize, v.maxBytes), nil)
	}

	v.logger.Debug("image validated", "filename", filename, "ext", ext, "size", declaredSize)
	return &entity.RawImage{Data: data, Filename: filename, Size: declaredSize}, nil
}

// Decode decodes a validated image into a pixel buffer.
func Decode(raw *entity.RawImage) (image.Image, error) {
	img, format, err := image.Decode(bytes.NewReader(raw.Data))
	if err != nil {
		return nil, common.InvalidImageError("unable to decode image", err)
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, common.InvalidImageError(fmt.Sprintf("decoded %s image has no pixels", format), nil)
	}
	return img, nil
}
