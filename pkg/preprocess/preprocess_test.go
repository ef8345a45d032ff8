package preprocess

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r := uint8((x * 255) / width)
			g := uint8((y * 255) / height)
			img.Set(x, y, color.RGBA{r, g, 128, 255})
		}
	}
	return img
}

func TestProcessShape(t *testing.T) {
	p := New()

	dims := [][2]int{{224, 224}, {640, 480}, {10, 10}, {1, 1}, {3000, 200}}
	for _, d := range dims {
		tensor := p.Process(createTestImage(d[0], d[1]))

		assert.Equal(t, []int64{1, 224, 224, 3}, tensor.Shape, "input %dx%d", d[0], d[1])
		assert.Len(t, tensor.Data, 1*224*224*3, "input %dx%d", d[0], d[1])
	}
}

func TestProcessValueBounds(t *testing.T) {
	p := New()
	tensor := p.Process(createTestImage(317, 211))

	// After scaling to [0,1] and standardizing, each channel is bounded by
	// (0-mean)/std and (1-mean)/std.
	for i, v := range tensor.Data {
		c := i % 3
		lo := (0 - Mean[c]) / Std[c]
		hi := (1 - Mean[c]) / Std[c]
		require.GreaterOrEqual(t, v, lo, "index %d channel %d", i, c)
		require.LessOrEqual(t, v, hi, "index %d channel %d", i, c)
	}
}

func TestProcessDeterministic(t *testing.T) {
	p := New()
	img := createTestImage(400, 300)

	a := p.Process(img)
	b := p.Process(img)

	assert.Equal(t, a.Data, b.Data, "same pixels must yield the same tensor")
}

func TestProcessExtremePixels(t *testing.T) {
	p := New()

	black := image.NewRGBA(image.Rect(0, 0, 50, 50))
	white := image.NewRGBA(image.Rect(0, 0, 50, 50))
	for y := 0; y < 50; y++ {
		for x := 0; x < 50; x++ {
			black.Set(x, y, color.RGBA{0, 0, 0, 255})
			white.Set(x, y, color.RGBA{255, 255, 255, 255})
		}
	}

	blackTensor := p.Process(black)
	for c := 0; c < 3; c++ {
		want := (0 - Mean[c]) / Std[c]
		assert.InDelta(t, want, blackTensor.Data[c], 1e-5, "black channel %d", c)
	}

	whiteTensor := p.Process(white)
	for c := 0; c < 3; c++ {
		want := (1 - Mean[c]) / Std[c]
		assert.InDelta(t, want, whiteTensor.Data[c], 1e-5, "white channel %d", c)
	}
}

func TestProcessUniformImageIsUniform(t *testing.T) {
	// A solid-color input stays solid after a stretch resize, so every
	// pixel position must carry identical channel values.
	p := New()

	img := image.NewRGBA(image.Rect(0, 0, 123, 77))
	for y := 0; y < 77; y++ {
		for x := 0; x < 123; x++ {
			img.Set(x, y, color.RGBA{90, 160, 40, 255})
		}
	}

	tensor := p.Process(img)
	for i := 3; i < len(tensor.Data); i++ {
		if math.Abs(float64(tensor.Data[i]-tensor.Data[i%3])) > 1e-5 {
			t.Fatalf("pixel %d channel %d differs from first pixel: %f vs %f",
				i/3, i%3, tensor.Data[i], tensor.Data[i%3])
		}
	}
}

func BenchmarkProcess(b *testing.B) {
	p := New()
	img := createTestImage(1920, 1080)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.Process(img)
	}
}
