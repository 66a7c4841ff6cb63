package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kharcha-app/receipt-engine/internal/common"
	"github.com/kharcha-app/receipt-engine/internal/entity"
	"github.com/kharcha-app/receipt-engine/internal/ocr"
	"github.com/kharcha-app/receipt-engine/internal/parser"
	"github.com/kharcha-app/receipt-engine/internal/preprocess"
)

// Processor coordinates the full pipeline: validate/decode, preprocess,
// extract text, parse fields. Each invocation owns its buffers and result
// objects; the processor itself is read-only after construction and safe to
// share across concurrent invocations.
type Processor struct {
	Logger       *slog.Logger
	Validator    *preprocess.Validator
	Preprocessor *preprocess.Preprocessor
	Registry     *ocr.Registry
	Parser       *parser.Parser
}

// NewProcessor wires a processor from configuration.
func NewProcessor(cfg *common.Config, logger *slog.Logger) (*Processor, error) {
	if logger == nil {
		logger = slog.Default()
	}
	validator, err := preprocess.NewValidator(cfg.Upload, logger)
	if err != nil {
		return nil, err
	}
	registry, err := ocr.BuildRegistry(cfg.OCR, logger)
	if err != nil {
		return nil, err
	}
	return &Processor{
		Logger:       logger,
		Validator:    validator,
		Preprocessor: preprocess.NewPreprocessor(cfg.Preprocess, logger),
		Registry:     registry,
		Parser:       parser.New(parser.DefaultConfig(), logger),
	}, nil
}

// Process runs one receipt through the pipeline and returns the structured
// result. Hard failures (bad input, preprocessing, no provider, OCR failure)
// surface as AppErrors; noisy or partial receipt content never does.
func (p *Processor) Process(ctx context.Context, data []byte, filename string, declaredSize int64) (*entity.ParsedReceipt, error) {
	jobID := uuid.New()
	start := time.Now()
	log := p.Logger.With("job_id", jobID)

	raw, err := p.Validator.Validate(data, filename, declaredSize)
	if err != nil {
		log.Error("pipeline.validate.failed", "filename", filename, "err", err)
		return nil, err
	}

	decoded, err := preprocess.Decode(raw)
	if err != nil {
		log.Error("pipeline.decode.failed", "filename", filename, "err", err)
		return nil, err
	}

	processed, err := p.Preprocessor.Run(decoded)
	if err != nil {
		log.Error("pipeline.preprocess.failed", "filename", filename, "err", err)
		return nil, err
	}
	log.Info("pipeline.preprocess.ok",
		"width", processed.Width, "height", processed.Height, "quality", processed.Quality)

	res, err := p.Registry.Extract(ctx, processed)
	if err != nil {
		log.Error("pipeline.ocr.failed", "filename", filename, "err", err)
		return nil, err
	}
	log.Info("pipeline.ocr.ok",
		"provider", res.Provider,
		"text_bytes", len(res.Text),
		"duration_ms", res.Duration.Milliseconds(),
	)

	receipt := p.Parser.Parse(res)
	receipt.ProcessingTime = time.Since(start)

	log.Info("pipeline.parse.ok",
		"merchant_found", receipt.Merchant != nil,
		"amount_found", receipt.Amount != nil,
		"overall_confidence", receipt.OverallConfidence,
		"warnings", len(receipt.Warnings),
		"total_ms", receipt.ProcessingTime.Milliseconds(),
	)
	return receipt, nil
}
