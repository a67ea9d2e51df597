package dataset

type Label int

const (
	NEG Label = 0
	POS Label = 1
)

// Sample is one labeled point. Fields are unexported so a built set cannot be
// changed from outside the package.
type Sample struct {
	x [2]float64
	y Label
}

func (s Sample) Point() []float64 {
	return []float64{s.x[0], s.x[1]}
}

func (s Sample) X1() float64 {
	return s.x[0]
}

func (s Sample) X2() float64 {
	return s.x[1]
}

func (s Sample) Label() Label {
	return s.y
}

type SampleSet struct {
	data []Sample
}

func (ss *SampleSet) Len() int {
	return len(ss.data)
}

func (ss *SampleSet) At(i int) Sample {
	return ss.data[i]
}

func (ss *SampleSet) Points() [][]float64 {
	points := make([][]float64, len(ss.data))
	for i, s := range ss.data {
		points[i] = s.Point()
	}
	return points
}

func (ss *SampleSet) Labels() []Label {
	labels := make([]Label, len(ss.data))
	for i, s := range ss.data {
		labels[i] = s.y
	}
	return labels
}

// Build returns the 60 point training set: a positive cluster at x1 1..6,
// x2 1..5 followed by a negative cluster at x1 7..12, x2 6..10.
func Build() *SampleSet {
	return &SampleSet{data: []Sample{
		{[2]float64{1, 1}, POS}, {[2]float64{1, 2}, POS}, {[2]float64{1, 3}, POS}, {[2]float64{1, 4}, POS}, {[2]float64{1, 5}, POS},
		{[2]float64{2, 1}, POS}, {[2]float64{2, 2}, POS}, {[2]float64{2, 3}, POS}, {[2]float64{2, 4}, POS}, {[2]float64{2, 5}, POS},
		{[2]float64{3, 1}, POS}, {[2]float64{3, 2}, POS}, {[2]float64{3, 3}, POS}, {[2]float64{3, 4}, POS}, {[2]float64{3, 5}, POS},
		{[2]float64{4, 1}, POS}, {[2]float64{4, 2}, POS}, {[2]float64{4, 3}, POS}, {[2]float64{4, 4}, POS}, {[2]float64{4, 5}, POS},
		{[2]float64{5, 1}, POS}, {[2]float64{5, 2}, POS}, {[2]float64{5, 3}, POS}, {[2]float64{5, 4}, POS}, {[2]float64{5, 5}, POS},
		{[2]float64{6, 1}, POS}, {[2]float64{6, 2}, POS}, {[2]float64{6, 3}, POS}, {[2]float64{6, 4}, POS}, {[2]float64{6, 5}, POS},

		{[2]float64{7, 6}, NEG}, {[2]float64{7, 7}, NEG}, {[2]float64{7, 8}, NEG}, {[2]float64{7, 9}, NEG}, {[2]float64{7, 10}, NEG},
		{[2]float64{8, 6}, NEG}, {[2]float64{8, 7}, NEG}, {[2]float64{8, 8}, NEG}, {[2]float64{8, 9}, NEG}, {[2]float64{8, 10}, NEG},
		{[2]float64{9, 6}, NEG}, {[2]float64{9, 7}, NEG}, {[2]float64{9, 8}, NEG}, {[2]float64{9, 9}, NEG}, {[2]float64{9, 10}, NEG},
		{[2]float64{10, 6}, NEG}, {[2]float64{10, 7}, NEG}, {[2]float64{10, 8}, NEG}, {[2]float64{10, 9}, NEG}, {[2]float64{10, 10}, NEG},
		{[2]float64{11, 6}, NEG}, {[2]float64{11, 7}, NEG}, {[2]float64{11, 8}, NEG}, {[2]float64{11, 9}, NEG}, {[2]float64{11, 10}, NEG},
		{[2]float64{12, 6}, NEG}, {[2]float64{12, 7}, NEG}, {[2]float64{12, 8}, NEG}, {[2]float64{12, 9}, NEG}, {[2]float64{12, 10}, NEG},
	}}
}
