// Package engine owns the classification model lifecycle: one lazy load
// per process, a forward-pass API, and a degraded in-memory fallback when
// no serialized model can be loaded.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cropsight/cropsight/pkg/preprocess"
	"github.com/cropsight/cropsight/pkg/types"
)

const placeholderHiddenDim = 128

var (
	// ErrInferenceUnavailable means no compute backend of any kind could
	// be brought up
	ErrInferenceUnavailable = errors.New("no inference backend available")

	// ErrInferenceTimeout means a forward pass exceeded the configured deadline
	ErrInferenceTimeout = errors.New("inference timed out")
)

// Backend executes forward passes for a loaded model
type Backend interface {
	Forward(ctx context.Context, input []float32) ([]float32, error)
	Close() error
}

// Options configures an Engine
type Options struct {
	// ManifestPath points at the model manifest JSON. Empty means no
	// serialized model; the placeholder network is used directly.
	ManifestPath string

	// InputSize is the square input resolution. Defaults to the
	// preprocessor's 224.
	InputSize int

	// NumClasses is the model output width. Defaults to the label set size.
	NumClasses int

	// Timeout bounds a single forward pass. Defaults to 10s.
	Timeout time.Duration

	Logger *logrus.Entry
}

// Engine lazily loads a classification model and runs forward passes over
// preprocessed tensors. The load happens at most once per Engine; all
// concurrent first callers block on the same load and observe the same
// backend handle.
type Engine struct {
	opts Options
	log  *logrus.Entry

	once    sync.Once
	backend Backend
}

// New creates an Engine. No model is loaded until Load or the first Predict.
func New(opts Options) *Engine {
	if opts.InputSize == 0 {
		opts.InputSize = preprocess.InputSize
	}
	if opts.NumClasses == 0 {
		opts.NumClasses = types.NumLabels()
	}
	if opts.Timeout == 0 {
		opts.Timeout = 10 * time.Second
	}
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger().WithField("component", "engine")
	}
	return &Engine{opts: opts, log: log}
}

// Load brings up the model if it is not up already and returns the backend
// handle. Idempotent: repeat and concurrent calls all yield the handle
// produced by the single load.
func (e *Engine) Load() Backend {
	e.once.Do(func() {
		e.backend = e.newBackend()
	})
	return e.backend
}

func (e *Engine) newBackend() Backend {
	if e.opts.ManifestPath != "" {
		backend, err := e.loadSerialized()
		if err == nil {
			return backend
		}
		e.log.WithError(err).Warn("model load failed, falling back to placeholder network")
	} else {
		e.log.Warn("no model manifest configured, using placeholder network")
	}

	inputDim := e.opts.InputSize * e.opts.InputSize * 3
	e.log.WithFields(logrus.Fields{
		"input_dim": inputDim,
		"classes":   e.opts.NumClasses,
	}).Info("placeholder network initialized (untrained, random weights)")
	return newPlaceholderNet(inputDim, placeholderHiddenDim, e.opts.NumClasses, time.Now().UnixNano())
}

func (e *Engine) loadSerialized() (Backend, error) {
	manifest, err := LoadManifest(e.opts.ManifestPath)
	if err != nil {
		return nil, err
	}
	if err := manifest.Validate(e.opts.NumClasses, e.opts.InputSize); err != nil {
		return nil, fmt.Errorf("invalid model manifest: %w", err)
	}

	backend, err := newONNXBackend(manifest, e.log)
	if err != nil {
		return nil, err
	}

	e.log.WithFields(logrus.Fields{
		"model":   manifest.ModelPath,
		"classes": e.opts.NumClasses,
	}).Info("classification model loaded")
	return backend, nil
}

// Predict runs one forward pass over a preprocessed tensor and returns the
// probability vector. The pass is bounded by the configured timeout.
func (e *Engine) Predict(ctx context.Context, tensor preprocess.Tensor) ([]float32, error) {
	backend := e.Load()
	if backend == nil {
		return nil, ErrInferenceUnavailable
	}

	expected := 1
	for _, d := range tensor.Shape {
		expected *= int(d)
	}
	if len(tensor.Data) != expected {
		return nil, fmt.Errorf("tensor data length %d does not match shape %v", len(tensor.Data), tensor.Shape)
	}

	ctx, cancel := context.WithTimeout(ctx, e.opts.Timeout)
	defer cancel()

	probs, err := backend.Forward(ctx, tensor.Data)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w after %s", ErrInferenceTimeout, e.opts.Timeout)
		}
		return nil, err
	}

	if len(probs) != e.opts.NumClasses {
		return nil, fmt.Errorf("model returned %d probabilities, expected %d", len(probs), e.opts.NumClasses)
	}
	return probs, nil
}

// Close releases the backend, if one was loaded
func (e *Engine) Close() error {
	if e.backend != nil {
		return e.backend.Close()
	}
	return nil
}
