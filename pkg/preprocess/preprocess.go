// Package preprocess converts decoded images into the fixed-shape float
// tensors the classification model expects.
package preprocess

import (
	"image"

	"github.com/disintegration/imaging"
)

// InputSize is the model input resolution; inputs are stretched to
// InputSize x InputSize without preserving aspect ratio
const InputSize = 224

// ImageNet per-channel statistics applied after scaling pixels to [0,1]
var (
	Mean = [3]float32{0.485, 0.456, 0.406}
	Std  = [3]float32{0.229, 0.224, 0.225}
)

// Tensor is a flat NHWC float32 tensor with its shape
type Tensor struct {
	Data  []float32
	Shape []int64
}

// Preprocessor produces model-ready tensors from decoded images. All
// transforms are pure; the same pixels always yield the same tensor.
type Preprocessor struct {
	size int
}

// New creates a Preprocessor targeting the standard 224x224 input
func New() *Preprocessor {
	return &Preprocessor{size: InputSize}
}

// NewWithSize creates a Preprocessor targeting a custom square resolution.
// The model the tensors feed must declare the same input size.
func NewWithSize(size int) *Preprocessor {
	if size <= 0 {
		size = InputSize
	}
	return &Preprocessor{size: size}
}

// Size returns the target resolution
func (p *Preprocessor) Size() int {
	return p.size
}

// Process resizes img to the target square with bilinear filtering, scales
// channel values to [0,1], standardizes each channel with the ImageNet
// mean/std, and adds a leading batch dimension. The output shape is always
// [1, size, size, 3].
func (p *Preprocessor) Process(img image.Image) Tensor {
	resized := imaging.Resize(img, p.size, p.size, imaging.Linear)

	data := make([]float32, p.size*p.size*3)
	idx := 0
	for y := 0; y < p.size; y++ {
		for x := 0; x < p.size; x++ {
			r, g, b, _ := resized.At(x, y).RGBA()
			data[idx] = (float32(r>>8)/255.0 - Mean[0]) / Std[0]
			data[idx+1] = (float32(g>>8)/255.0 - Mean[1]) / Std[1]
			data[idx+2] = (float32(b>>8)/255.0 - Mean[2]) / Std[2]
			idx += 3
		}
	}

	return Tensor{
		Data:  data,
		Shape: []int64{1, int64(p.size), int64(p.size), 3},
	}
}
