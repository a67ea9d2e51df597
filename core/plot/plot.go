package plot

import (
	"image/color"
	"math"
	"os"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"sgdlr/common"
	"sgdlr/core/dataset"
	"sgdlr/core/ml"
)

var (
	posColor  = color.RGBA{B: 255, A: 255}
	negColor  = color.RGBA{R: 255, A: 255}
	lineColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}
)

// XYs implements the gonum.org/v1/plot/plotter.XYer interface.
type XYs []XY

// XY is an x and y value.
type XY struct{ X, Y float64 }

func (xys XYs) Len() int {
	return len(xys)
}

func (xys XYs) XY(i int) (float64, float64) {
	return xys[i].X, xys[i].Y
}

type Config struct {
	Output string
	Title  string
	Width  float64 // inches
	Height float64 // inches
	LineX  []float64
}

func DefaultConfig() *Config {
	return &Config{
		Output: "picture.png",
		Width:  4,
		Height: 4,
		LineX:  []float64{0, 12},
	}
}

// DecisionLine evaluates the boundary of m at every x in xs.
func DecisionLine(m ml.Model, xs []float64) (XYs, error) {
	if m.Weight[1] == 0 {
		return nil, errors.Errorf("decision line undefined, weight: %v", m.Weight)
	}
	line := make(XYs, len(xs))
	for i, x := range xs {
		line[i] = XY{X: x, Y: m.Boundary(x)}
		if math.IsNaN(line[i].Y) || math.IsInf(line[i].Y, 0) {
			return nil, errors.Errorf("decision line not finite at x1=%v", x)
		}
	}
	return line, nil
}

func splitByLabel(ss *dataset.SampleSet) (pos, neg XYs) {
	for i := 0; i < ss.Len(); i++ {
		s := ss.At(i)
		xy := XY{X: s.X1(), Y: s.X2()}
		if s.Label() == dataset.POS {
			pos = append(pos, xy)
		} else {
			neg = append(neg, xy)
		}
	}
	return pos, neg
}

func scatter(xys XYs, c color.Color) (*plotter.Scatter, error) {
	s, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, err
	}
	s.GlyphStyle.Color = c
	s.GlyphStyle.Shape = draw.CircleGlyph{}
	s.GlyphStyle.Radius = vg.Points(3)
	return s, nil
}

// Build composes the scatter of ss, colored by label, and the decision line of m.
func Build(ss *dataset.SampleSet, m ml.Model, cfg *Config) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = cfg.Title
	p.X.Label.Text = "x1"
	p.Y.Label.Text = "x2"

	pos, neg := splitByLabel(ss)
	if len(pos) > 0 {
		s, err := scatter(pos, posColor)
		if err != nil {
			return nil, errors.Wrap(err, "scatter label 1")
		}
		p.Add(s)
		p.Legend.Add("label 1", s)
	}
	if len(neg) > 0 {
		s, err := scatter(neg, negColor)
		if err != nil {
			return nil, errors.Wrap(err, "scatter label 0")
		}
		p.Add(s)
		p.Legend.Add("label 0", s)
	}

	xys, err := DecisionLine(m, cfg.LineX)
	if err != nil {
		return nil, err
	}
	l, err := plotter.NewLine(xys)
	if err != nil {
		return nil, errors.Wrap(err, "decision line")
	}
	l.LineStyle.Color = lineColor
	l.LineStyle.Width = vg.Points(1.5)
	p.Add(l)
	p.Legend.Add("boundary", l)

	return p, nil
}

// Render draws the figure and writes it to cfg.Output. The image format
// follows the file extension.
func Render(ss *dataset.SampleSet, m ml.Model, cfg *Config) error {
	log := common.GetLogger(common.MODULE_PLOTTER)

	p, err := Build(ss, m, cfg)
	if err != nil {
		return errors.Wrap(err, "build plot")
	}
	err = p.Save(vg.Length(cfg.Width)*vg.Inch, vg.Length(cfg.Height)*vg.Inch, cfg.Output)
	if err != nil {
		return errors.Wrapf(err, "save plot to %s", cfg.Output)
	}

	info, err := os.Stat(cfg.Output)
	if err != nil {
		return errors.Wrapf(err, "stat %s", cfg.Output)
	}
	log.Infof("plot saved to %s, %d bytes", cfg.Output, info.Size())
	return nil
}
