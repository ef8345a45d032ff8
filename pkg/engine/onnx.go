package engine

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/sirupsen/logrus"
	ort "github.com/yalue/onnxruntime_go"
)

// sharedLibPath resolves the ONNX Runtime shared library for the current
// platform. CROPSIGHT_ORT_LIB overrides the bundled defaults. An empty
// return leaves the runtime's own lookup in place.
func sharedLibPath() string {
	if path := os.Getenv("CROPSIGHT_ORT_LIB"); path != "" {
		return path
	}

	var candidate string
	switch runtime.GOOS {
	case "windows":
		candidate = "./third_party/onnxruntime.dll"
	case "darwin":
		candidate = "./third_party/onnxruntime_arm64.dylib"
	case "linux":
		if runtime.GOARCH == "arm64" {
			candidate = "./third_party/onnxruntime_arm64.so"
		} else {
			candidate = "./third_party/onnxruntime.so"
		}
	}

	if candidate != "" {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// onnxBackend runs forward passes through an ONNX Runtime session loaded
// from a model manifest.
type onnxBackend struct {
	session     *ort.DynamicAdvancedSession
	inputShape  []int64
	outputShape []int64
	log         *logrus.Entry
}

func newONNXBackend(m *Manifest, log *logrus.Entry) (*onnxBackend, error) {
	if path := sharedLibPath(); path != "" {
		ort.SetSharedLibraryPath(path)
	}
	if err := ort.InitializeEnvironment(); err != nil {
		return nil, fmt.Errorf("failed to initialize onnx runtime: %w", err)
	}

	session, err := ort.NewDynamicAdvancedSession(m.ModelPath,
		[]string{m.InputName}, []string{m.OutputName}, nil)
	if err != nil {
		ort.DestroyEnvironment()
		return nil, fmt.Errorf("failed to create onnx session: %w", err)
	}

	inputShape := make([]int64, len(m.InputShape))
	copy(inputShape, m.InputShape)
	inputShape[0] = 1 // single-image batches only

	return &onnxBackend{
		session:     session,
		inputShape:  inputShape,
		outputShape: append([]int64{}, m.OutputShape...),
		log:         log,
	}, nil
}

type forwardResult struct {
	probs []float32
	err   error
}

// Forward executes one pass through the session. Input and output tensors
// are allocated per call and destroyed once the output has been copied
// out, whether or not the run succeeds. When ctx expires mid-run the
// in-flight pass keeps running on its goroutine and still releases its
// tensors on completion.
func (b *onnxBackend) Forward(ctx context.Context, input []float32) ([]float32, error) {
	done := make(chan forwardResult, 1)

	go func() {
		inputTensor, err := ort.NewTensor(ort.NewShape(b.inputShape...), input)
		if err != nil {
			done <- forwardResult{err: fmt.Errorf("failed to create input tensor: %w", err)}
			return
		}
		defer inputTensor.Destroy()

		outputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(b.outputShape...))
		if err != nil {
			done <- forwardResult{err: fmt.Errorf("failed to create output tensor: %w", err)}
			return
		}
		defer outputTensor.Destroy()

		if err := b.session.Run(
			[]ort.ArbitraryTensor{inputTensor},
			[]ort.ArbitraryTensor{outputTensor},
		); err != nil {
			done <- forwardResult{err: fmt.Errorf("inference failed: %w", err)}
			return
		}

		probs := make([]float32, len(outputTensor.GetData()))
		copy(probs, outputTensor.GetData())
		done <- forwardResult{probs: probs}
	}()

	select {
	case res := <-done:
		return res.probs, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (b *onnxBackend) Close() error {
	if b.session != nil {
		b.session.Destroy()
		b.session = nil
	}
	return ort.DestroyEnvironment()
}
