package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Manifest describes a serialized classification model: where the weights
// live and the shapes the session must satisfy.
type Manifest struct {
	ModelPath   string   `json:"model_path"`
	InputName   string   `json:"input_name"`
	OutputName  string   `json:"output_name"`
	InputShape  []int64  `json:"input_shape"`
	OutputShape []int64  `json:"output_shape"`
	Classes     []string `json:"classes"`
}

// LoadManifest reads a model manifest from a JSON file. A relative
// model_path is resolved against the manifest's directory.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse model manifest: %w", err)
	}

	if m.ModelPath != "" && !filepath.IsAbs(m.ModelPath) {
		m.ModelPath = filepath.Join(filepath.Dir(path), m.ModelPath)
	}

	return &m, nil
}

// Validate checks the manifest against the label set and input resolution
// the pipeline is built for. A mismatched model is a configuration error,
// not something to paper over at inference time.
func (m *Manifest) Validate(numClasses, inputSize int) error {
	if m.ModelPath == "" {
		return fmt.Errorf("manifest missing model_path")
	}
	if m.InputName == "" || m.OutputName == "" {
		return fmt.Errorf("manifest missing input_name or output_name")
	}

	if len(m.InputShape) != 4 {
		return fmt.Errorf("input_shape must have 4 dimensions, got %d", len(m.InputShape))
	}
	// Batch dimension may be dynamic (-1) or 1.
	if m.InputShape[0] != -1 && m.InputShape[0] != 1 {
		return fmt.Errorf("input_shape batch dimension must be -1 or 1, got %d", m.InputShape[0])
	}
	s := int64(inputSize)
	if m.InputShape[1] != s || m.InputShape[2] != s || m.InputShape[3] != 3 {
		return fmt.Errorf("input_shape must be [*, %d, %d, 3], got %v", inputSize, inputSize, m.InputShape)
	}

	if len(m.OutputShape) != 2 {
		return fmt.Errorf("output_shape must have 2 dimensions, got %d", len(m.OutputShape))
	}
	if m.OutputShape[1] != int64(numClasses) {
		return fmt.Errorf("model output width %d does not match the %d-label set", m.OutputShape[1], numClasses)
	}

	if len(m.Classes) > 0 && len(m.Classes) != numClasses {
		return fmt.Errorf("manifest declares %d classes, expected %d", len(m.Classes), numClasses)
	}

	return nil
}
