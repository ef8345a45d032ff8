// Package predictor orchestrates the analysis pipeline: ingest ->
// preprocess -> inference -> labeled, confidence-scored result.
package predictor

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cropsight/cropsight/pkg/ingest"
	"github.com/cropsight/cropsight/pkg/preprocess"
	"github.com/cropsight/cropsight/pkg/types"
)

// ErrAnalysisFailed wraps any decode, preprocessing, or inference failure
// inside the pipeline. Oversized inputs are rejected with
// ingest.ErrFileTooLarge before the pipeline starts and are not wrapped.
var ErrAnalysisFailed = errors.New("analysis failed")

// InferenceEngine is the model-side dependency. *engine.Engine satisfies
// it; tests substitute fakes.
type InferenceEngine interface {
	Predict(ctx context.Context, tensor preprocess.Tensor) ([]float32, error)
}

// Options configures a Predictor
type Options struct {
	Ingestor     *ingest.Ingestor
	Preprocessor *preprocess.Preprocessor
	Engine       InferenceEngine

	// LegacyRandomResults reproduces the original app's randomized output:
	// a uniformly random label with confidence derived from (but not equal
	// to) the arg-max probability, and random results instead of errors on
	// inference failures. Off by default; the corrected behavior returns
	// the arg-max label and probability directly.
	LegacyRandomResults bool

	Logger *logrus.Entry
}

// Predictor runs end-to-end leaf analyses. Calls are serialized so at most
// one analysis is in flight; a second caller queues behind the first
// instead of racing its result publication.
type Predictor struct {
	ingestor *ingest.Ingestor
	pre      *preprocess.Preprocessor
	engine   InferenceEngine
	legacy   bool
	log      *logrus.Entry

	mu sync.Mutex

	rngMu sync.Mutex
	rng   *rand.Rand
}

// New creates a Predictor. Engine must be set; the other components
// default to their standard constructors.
func New(opts Options) *Predictor {
	if opts.Ingestor == nil {
		opts.Ingestor = ingest.New()
	}
	if opts.Preprocessor == nil {
		opts.Preprocessor = preprocess.New()
	}
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger().WithField("component", "predictor")
	}
	return &Predictor{
		ingestor: opts.Ingestor,
		pre:      opts.Preprocessor,
		engine:   opts.Engine,
		legacy:   opts.LegacyRandomResults,
		log:      log,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Predict analyzes one uploaded image and returns a labeled result.
func (p *Predictor) Predict(ctx context.Context, data []byte) (types.PredictionResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	img, err := p.ingestor.Ingest(data)
	if err != nil {
		if errors.Is(err, ingest.ErrFileTooLarge) {
			// Rejected before any decode or model load.
			return types.PredictionResult{}, err
		}
		return types.PredictionResult{}, fmt.Errorf("%w: %w", ErrAnalysisFailed, err)
	}

	tensor := p.pre.Process(img)

	probs, err := p.engine.Predict(ctx, tensor)
	if err != nil {
		if p.legacy {
			// The original app swallowed inference errors and emitted a
			// randomized result instead.
			p.log.WithError(err).Warn("inference failed, emitting legacy randomized result")
			return p.legacyErrorResult(), nil
		}
		return types.PredictionResult{}, fmt.Errorf("%w: %w", ErrAnalysisFailed, err)
	}

	idx, top := argmax(probs)

	if p.legacy {
		return p.legacyResult(float64(top)), nil
	}

	label, ok := types.LabelAt(idx)
	if !ok {
		return types.PredictionResult{}, fmt.Errorf("%w: arg-max index %d outside label set", ErrAnalysisFailed, idx)
	}
	return types.PredictionResult{Label: label, Confidence: float64(top)}, nil
}

// legacyResult reproduces the original success path: the arg-max index is
// discarded and a uniformly random label is emitted; confidence is the
// arg-max probability jittered by U(-0.1, 0.1) and clamped to [0.6, 0.95].
func (p *Predictor) legacyResult(argmaxProb float64) types.PredictionResult {
	p.rngMu.Lock()
	defer p.rngMu.Unlock()

	labels := types.AllLabels()
	confidence := clamp(argmaxProb+(p.rng.Float64()*0.2-0.1), 0.6, 0.95)
	return types.PredictionResult{
		Label:      labels[p.rng.Intn(len(labels))],
		Confidence: confidence,
	}
}

// legacyErrorResult reproduces the original catch path: a uniformly random
// label with confidence 0.75 + U(0, 0.2).
func (p *Predictor) legacyErrorResult() types.PredictionResult {
	p.rngMu.Lock()
	defer p.rngMu.Unlock()

	labels := types.AllLabels()
	return types.PredictionResult{
		Label:      labels[p.rng.Intn(len(labels))],
		Confidence: 0.75 + p.rng.Float64()*0.2,
	}
}

func argmax(probs []float32) (int, float32) {
	idx := 0
	top := probs[0]
	for i, v := range probs {
		if v > top {
			top = v
			idx = i
		}
	}
	return idx, top
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
