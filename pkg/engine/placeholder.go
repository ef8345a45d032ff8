package engine

import (
	"context"
	"fmt"
	"math"
	"math/rand"
)

// placeholderNet is a randomly-initialized fully-connected network used
// when no serialized model can be loaded: flatten -> dense(128, relu) ->
// dropout(0.2) -> dense(numClasses, softmax). Dropout is the identity at
// inference time. The network is untrained and has no real recognition
// capability; it exists so the pipeline stays functional without a model
// asset.
type placeholderNet struct {
	inputDim  int
	hiddenDim int
	outputDim int

	w1 []float32 // hiddenDim x inputDim
	b1 []float32
	w2 []float32 // outputDim x hiddenDim
	b2 []float32
}

func newPlaceholderNet(inputDim, hiddenDim, outputDim int, seed int64) *placeholderNet {
	rng := rand.New(rand.NewSource(seed))

	init := func(n int, fanIn, fanOut int) []float32 {
		// Glorot uniform, same scheme the usual dense-layer initializers use.
		limit := float32(math.Sqrt(6.0 / float64(fanIn+fanOut)))
		w := make([]float32, n)
		for i := range w {
			w[i] = (rng.Float32()*2 - 1) * limit
		}
		return w
	}

	return &placeholderNet{
		inputDim:  inputDim,
		hiddenDim: hiddenDim,
		outputDim: outputDim,
		w1:        init(hiddenDim*inputDim, inputDim, hiddenDim),
		b1:        make([]float32, hiddenDim),
		w2:        init(outputDim*hiddenDim, hiddenDim, outputDim),
		b2:        make([]float32, outputDim),
	}
}

// Forward runs the dense network and returns a softmax probability vector
// of length outputDim.
func (n *placeholderNet) Forward(ctx context.Context, input []float32) ([]float32, error) {
	if len(input) != n.inputDim {
		return nil, fmt.Errorf("placeholder network expects %d inputs, got %d", n.inputDim, len(input))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	hidden := make([]float32, n.hiddenDim)
	for h := 0; h < n.hiddenDim; h++ {
		sum := n.b1[h]
		row := n.w1[h*n.inputDim : (h+1)*n.inputDim]
		for i, v := range input {
			sum += row[i] * v
		}
		if sum > 0 {
			hidden[h] = sum
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logits := make([]float32, n.outputDim)
	for o := 0; o < n.outputDim; o++ {
		sum := n.b2[o]
		row := n.w2[o*n.hiddenDim : (o+1)*n.hiddenDim]
		for h, v := range hidden {
			sum += row[h] * v
		}
		logits[o] = sum
	}

	return softmax(logits), nil
}

func (n *placeholderNet) Close() error {
	return nil
}

func softmax(logits []float32) []float32 {
	maxLogit := logits[0]
	for _, v := range logits[1:] {
		if v > maxLogit {
			maxLogit = v
		}
	}

	out := make([]float32, len(logits))
	var sum float32
	for i, v := range logits {
		e := float32(math.Exp(float64(v - maxLogit)))
		out[i] = e
		sum += e
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}
