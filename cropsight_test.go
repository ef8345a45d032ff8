package cropsight

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cropsight/cropsight/internal/config"
	"github.com/cropsight/cropsight/pkg/ingest"
	"github.com/cropsight/cropsight/pkg/types"
)

// testConfig keeps the placeholder network small and the history isolated
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Model.InputSize = 32
	cfg.History.Path = filepath.Join(t.TempDir(), "history.json")
	cfg.History.ThumbnailSize = 32
	return cfg
}

func leafJPEG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 200, 150))
	for y := 0; y < 150; y++ {
		for x := 0; x < 200; x++ {
			img.Set(x, y, color.RGBA{30, uint8(80 + y), 30, 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func TestAnalyzeEndToEnd(t *testing.T) {
	a, err := NewWithConfig(testConfig(t))
	require.NoError(t, err)
	defer a.Close()

	result, err := a.Analyze(context.Background(), leafJPEG(t))
	require.NoError(t, err)

	assert.True(t, result.Label.Valid())
	assert.GreaterOrEqual(t, result.Confidence, 0.0)
	assert.LessOrEqual(t, result.Confidence, 1.0)

	entries := a.History()
	require.Len(t, entries, 1)
	assert.NotEmpty(t, entries[0].ID)
	assert.Equal(t, result.Label, entries[0].Label)
	assert.False(t, entries[0].Timestamp.IsZero())
	assert.True(t, strings.HasPrefix(entries[0].ImagePreview, "data:image/jpeg;base64,"))
}

func TestAnalyzeOversizedFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.Upload.MaxBytes = 256

	a, err := NewWithConfig(cfg)
	require.NoError(t, err)
	defer a.Close()

	_, err = a.Analyze(context.Background(), make([]byte, 1024))
	assert.ErrorIs(t, err, ingest.ErrFileTooLarge)
	assert.Empty(t, a.History(), "failed analyses are not recorded")
}

func TestAnalyzeGarbageBytes(t *testing.T) {
	a, err := NewWithConfig(testConfig(t))
	require.NoError(t, err)
	defer a.Close()

	_, err = a.Analyze(context.Background(), []byte("not an image"))
	assert.Error(t, err)
	assert.Empty(t, a.History())
}

func TestHistoryRollsOverAtCapacity(t *testing.T) {
	a, err := NewWithConfig(testConfig(t))
	require.NoError(t, err)
	defer a.Close()

	data := leafJPEG(t)
	for i := 0; i < 11; i++ {
		_, err := a.Analyze(context.Background(), data)
		require.NoError(t, err)
	}

	assert.Len(t, a.History(), 10)
}

func TestLegacyRandomizedBehavior(t *testing.T) {
	cfg := testConfig(t)
	cfg.Model.LegacyRandomResults = true

	a, err := NewWithConfig(cfg)
	require.NoError(t, err)
	defer a.Close()

	data := leafJPEG(t)
	for i := 0; i < 10; i++ {
		result, err := a.Analyze(context.Background(), data)
		require.NoError(t, err)
		assert.True(t, result.Label.Valid())
		assert.GreaterOrEqual(t, result.Confidence, 0.6)
		assert.LessOrEqual(t, result.Confidence, 0.95)
	}
}

func TestModelLoadFailureStillAnalyzes(t *testing.T) {
	cfg := testConfig(t)
	cfg.Model.ManifestPath = filepath.Join(t.TempDir(), "missing-manifest.json")

	a, err := NewWithConfig(cfg)
	require.NoError(t, err)
	defer a.Close()

	result, err := a.Analyze(context.Background(), leafJPEG(t))
	require.NoError(t, err, "a failed model load degrades to the placeholder network")
	assert.True(t, result.Label.Valid())
}

func TestAdviceCoversEveryResult(t *testing.T) {
	a, err := NewWithConfig(testConfig(t))
	require.NoError(t, err)
	defer a.Close()

	for _, label := range types.AllLabels() {
		record := a.Advice(label)
		assert.NotEmpty(t, record.Treatment[types.LangEnglish], string(label))
	}
}

func TestNewWithConfigRejectsInvalid(t *testing.T) {
	cfg := testConfig(t)
	cfg.History.Capacity = 0

	_, err := NewWithConfig(cfg)
	assert.Error(t, err)
}

func TestHistoryPersistsAcrossInstances(t *testing.T) {
	cfg := testConfig(t)

	a, err := NewWithConfig(cfg)
	require.NoError(t, err)
	_, err = a.Analyze(context.Background(), leafJPEG(t))
	require.NoError(t, err)
	require.NoError(t, a.Close())

	b, err := NewWithConfig(cfg)
	require.NoError(t, err)
	defer b.Close()

	assert.Len(t, b.History(), 1, "history survives process restarts")
}
