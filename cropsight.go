// Package cropsight provides offline plant-disease identification from
// crop-leaf photos.
//
// An uploaded or captured leaf image is decoded, stretched to the model's
// input resolution, normalized with ImageNet statistics, and classified
// into one of ten fixed categories (nine diseases plus Healthy). Each
// successful analysis is appended to a rolling on-disk history, and a
// static bilingual dictionary supplies treatment and prevention guidance
// for every diagnosis.
//
// Basic usage:
//
//	package main
//
//	import (
//		"context"
//		"fmt"
//		"log"
//		"os"
//
//		"github.com/cropsight/cropsight"
//		"github.com/cropsight/cropsight/pkg/types"
//	)
//
//	func main() {
//		analyzer, err := cropsight.New()
//		if err != nil {
//			log.Fatal(err)
//		}
//		defer analyzer.Close()
//
//		data, err := os.ReadFile("leaf.jpg")
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		result, err := analyzer.Analyze(context.Background(), data)
//		if err != nil {
//			log.Fatal(err)
//		}
//
//		advice := analyzer.Advice(result.Label)
//		fmt.Printf("%s (%.0f%%): %s\n", result.Label, result.Confidence*100,
//			advice.Treatment[types.LangEnglish])
//	}
//
// The pipeline consists of four components:
//
// 1. Ingestor (pkg/ingest): size-capped decoding of upload bytes
// 2. Preprocessor (pkg/preprocess): resize and ImageNet normalization
// 3. Engine (pkg/engine): model lifecycle and forward passes
// 4. Predictor (pkg/predictor): orchestration and result selection
//
// Everything runs locally. When no serialized model is configured the
// engine falls back to an untrained placeholder network, so the pipeline
// stays functional without a model asset (with meaningless predictions).
package cropsight

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image/jpeg"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/cropsight/cropsight/internal/config"
	"github.com/cropsight/cropsight/pkg/advice"
	"github.com/cropsight/cropsight/pkg/engine"
	"github.com/cropsight/cropsight/pkg/history"
	"github.com/cropsight/cropsight/pkg/ingest"
	"github.com/cropsight/cropsight/pkg/predictor"
	"github.com/cropsight/cropsight/pkg/preprocess"
	"github.com/cropsight/cropsight/pkg/types"
)

// Version of the cropsight library
const Version = "1.0.0"

// Analyzer is the high-level entry point: it wires the analysis pipeline
// to the rolling history store and the advice dictionary.
type Analyzer struct {
	ingestor  *ingest.Ingestor
	engine    *engine.Engine
	predictor *predictor.Predictor
	store     *history.Store
	thumbSize int
	log       *logrus.Entry
}

// New creates an Analyzer with the default configuration
func New() (*Analyzer, error) {
	return NewWithConfig(config.Default())
}

// NewWithConfig creates an Analyzer from a validated configuration
func NewWithConfig(cfg *config.Config) (*Analyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log := logrus.StandardLogger().WithField("component", "cropsight")

	ingestor := ingest.NewWithLimit(cfg.Upload.MaxBytes)
	eng := engine.New(engine.Options{
		ManifestPath: cfg.Model.ManifestPath,
		InputSize:    cfg.Model.InputSize,
		NumClasses:   types.NumLabels(),
		Timeout:      time.Duration(cfg.Model.TimeoutSeconds) * time.Second,
		Logger:       logrus.StandardLogger().WithField("component", "engine"),
	})

	pred := predictor.New(predictor.Options{
		Ingestor:            ingestor,
		Preprocessor:        preprocess.NewWithSize(cfg.Model.InputSize),
		Engine:              eng,
		LegacyRandomResults: cfg.Model.LegacyRandomResults,
		Logger:              logrus.StandardLogger().WithField("component", "predictor"),
	})

	store := history.NewStore(cfg.History.Path, cfg.History.Capacity,
		logrus.StandardLogger().WithField("component", "history"))

	return &Analyzer{
		ingestor:  ingestor,
		engine:    eng,
		predictor: pred,
		store:     store,
		thumbSize: cfg.History.ThumbnailSize,
		log:       log,
	}, nil
}

// Analyze runs one end-to-end analysis over raw image bytes, records the
// result in the history, and returns it.
func (a *Analyzer) Analyze(ctx context.Context, data []byte) (types.PredictionResult, error) {
	result, err := a.predictor.Predict(ctx, data)
	if err != nil {
		return types.PredictionResult{}, err
	}

	entry := types.HistoryEntry{
		ID:           uuid.NewString(),
		Label:        result.Label,
		Confidence:   result.Confidence,
		Timestamp:    time.Now().UTC(),
		ImagePreview: a.thumbnail(data),
	}
	if err := a.store.Append(entry); err != nil {
		// The analysis itself succeeded; a persistence hiccup is not worth
		// failing the request over.
		a.log.WithError(err).Warn("failed to persist history entry")
	}

	a.log.WithFields(logrus.Fields{
		"label":      result.Label,
		"confidence": result.Confidence,
	}).Info("analysis complete")
	return result, nil
}

// History returns past analyses, newest first
func (a *Analyzer) History() []types.HistoryEntry {
	return a.store.Entries()
}

// Advice returns the treatment and prevention record for a diagnosis
func (a *Analyzer) Advice(label types.Label) types.AdviceRecord {
	return advice.Lookup(label)
}

// LoadModel initializes the classification model eagerly instead of on
// the first Analyze call
func (a *Analyzer) LoadModel() {
	a.engine.Load()
}

// Close releases the inference backend
func (a *Analyzer) Close() error {
	return a.engine.Close()
}

// thumbnail produces a small base64 JPEG preview for the history entry.
// Preview generation is best effort; an empty string is fine.
func (a *Analyzer) thumbnail(data []byte) string {
	img, err := a.ingestor.Ingest(data)
	if err != nil {
		return ""
	}

	thumb := imaging.Thumbnail(img, a.thumbSize, a.thumbSize, imaging.Linear)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: 80}); err != nil {
		return ""
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

// GetVersion returns the library version
func GetVersion() string {
	return Version
}
