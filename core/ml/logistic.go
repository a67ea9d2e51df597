package ml

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"sgdlr/common"
	"sgdlr/core/dataset"
)

const DefaultEpochs = 300

// Sigmoid is the logistic function 1/(1+e^-x). For very negative x the
// exponential overflows to +Inf and the result saturates to 0.
func Sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// Model is a linear decision function over 2-D points.
type Model struct {
	Weight [2]float64
	Bias   float64
}

func DefaultModel() Model {
	return Model{Weight: [2]float64{1, 0}}
}

func (m Model) Activation(p []float64) float64 {
	return floats.Dot(m.Weight[:], p) + m.Bias
}

func (m Model) Probability(p []float64) float64 {
	return Sigmoid(m.Activation(p))
}

func (m Model) Classify(p []float64) dataset.Label {
	if m.Activation(p) > 0 {
		return dataset.POS
	}
	return dataset.NEG
}

// Boundary returns x2 on the decision line at x1. It is ±Inf or NaN when
// Weight[1] is zero.
func (m Model) Boundary(x1 float64) float64 {
	return (-m.Weight[0]*x1 - m.Bias) / m.Weight[1]
}

// Accuracy is the fraction of samples that m classifies correctly.
func Accuracy(ss *dataset.SampleSet, m Model) float64 {
	if ss.Len() == 0 {
		return 0
	}
	hit := 0
	for i := 0; i < ss.Len(); i++ {
		s := ss.At(i)
		if m.Classify(s.Point()) == s.Label() {
			hit++
		}
	}
	return float64(hit) / float64(ss.Len())
}

type Publisher interface {
	Publish(t common.LocalMsgType, payload interface{})
}

// EpochEvent is published after every completed epoch.
type EpochEvent struct {
	Epoch int
	Model Model
}

type Trainer struct {
	Epochs int
	Pub    Publisher
	Log    common.Logger
}

func NewTrainer(epochs int) *Trainer {
	return &Trainer{Epochs: epochs}
}

// Train runs online gradient ascent on the log-likelihood: for every sample
// in dataset order the weights move by (y - sigmoid(a)) * x and the bias by
// (y - sigmoid(a)). There is no step size and no stopping rule, exactly
// Epochs*Len updates are applied. init is not modified.
func (tr *Trainer) Train(ss *dataset.SampleSet, init Model) Model {
	m := init
	w := m.Weight[:]
	points := ss.Points()
	labels := ss.Labels()

	if tr.Log != nil {
		tr.Log.Infof("train start, epochs: %d, samples: %d, weight: %v, bias: %v",
			tr.Epochs, len(points), m.Weight, m.Bias)
	}

	for epoch := 0; epoch < tr.Epochs; epoch++ {
		for i, p := range points {
			a := floats.Dot(w, p) + m.Bias
			diff := float64(labels[i]) - Sigmoid(a)
			floats.AddScaled(w, diff, p)
			m.Bias += diff
		}
		if tr.Pub != nil {
			tr.Pub.Publish(common.LocalTrainMsg_Epoch, EpochEvent{Epoch: epoch + 1, Model: m})
		}
	}

	if tr.Pub != nil {
		tr.Pub.Publish(common.LocalTrainMsg_Done, m)
	}
	if tr.Log != nil {
		tr.Log.Infof("train done, weight: %v, bias: %v", m.Weight, m.Bias)
	}
	return m
}
