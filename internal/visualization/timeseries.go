package visualization

import (
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"gasviz/internal/config"
	"gasviz/internal/dataprocessing"
	apperrors "gasviz/internal/errors"
	"gasviz/pkg/contracts/domain"
)

// TimeSeriesChart holds the mean price pivots drawn as one line per tag and fuel type
type TimeSeriesChart struct {
	Regular *dataprocessing.Pivot
	Premium *dataprocessing.Pivot
	// Tags in order of first appearance
	Tags []string
	// Dropped counts rows whose query time did not parse
	Dropped int
}

// TimeSeriesLine describes one plotted line
type TimeSeriesLine struct {
	Label   string
	Tag     string
	Premium bool
	Points  []dataprocessing.DatedValue
}

// BuildTimeSeries pivots the observations by date and tag
func BuildTimeSeries(observations []domain.Observation) *TimeSeriesChart {
	timed, dropped := dataprocessing.PrepareTimed(observations)
	return &TimeSeriesChart{
		Regular: dataprocessing.PivotMean(timed, dataprocessing.RegularPrice),
		Premium: dataprocessing.PivotMean(timed, dataprocessing.PremiumPrice),
		Tags:    dataprocessing.UniqueTags(timed),
		Dropped: dropped,
	}
}

// Lines returns the lines in drawing order: for each tag, regular then premium.
// A tag without values for a fuel type gets no line for it.
func (c *TimeSeriesChart) Lines() []TimeSeriesLine {
	var lines []TimeSeriesLine
	for _, tag := range c.Tags {
		if c.Regular.HasTag(tag) {
			lines = append(lines, TimeSeriesLine{Label: "Regular " + tag, Tag: tag, Points: c.Regular.Column(tag)})
		}
		if c.Premium.HasTag(tag) {
			lines = append(lines, TimeSeriesLine{Label: "Premium " + tag, Tag: tag, Premium: true, Points: c.Premium.Column(tag)})
		}
	}
	return lines
}

// Plot builds the gonum plot. Each tag keeps one color for both fuel types;
// premium lines are dashed with cross markers.
func (c *TimeSeriesChart) Plot() (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = config.TitleTimeSeries
	p.X.Label.Text = config.LabelDate
	p.Y.Label.Text = config.LabelPrice
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	tagIndex := make(map[string]int, len(c.Tags))
	for i, tag := range c.Tags {
		tagIndex[tag] = i
	}

	for _, l := range c.Lines() {
		xys := make(plotter.XYs, len(l.Points))
		for i, pt := range l.Points {
			xys[i].X = float64(pt.Date.Unix())
			xys[i].Y = pt.Value
		}

		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return nil, fmt.Errorf("failed to build line %q: %w", l.Label, err)
		}

		col := plotutil.Color(tagIndex[l.Tag])

		line.Color = col
		line.Width = vg.Points(1.5)
		points.Color = col
		points.Radius = vg.Points(3)
		if l.Premium {
			line.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
			points.Shape = draw.CrossGlyph{}
		} else {
			points.Shape = draw.CircleGlyph{}
		}

		p.Add(line, points)
		p.Legend.Add(l.Label, line, points)
	}

	return p, nil
}

// WritePNG draws the chart at 12x6 inches and 300 DPI
func (c *TimeSeriesChart) WritePNG(w io.Writer) error {
	p, err := c.Plot()
	if err != nil {
		return err
	}

	canvas := vgimg.NewWith(
		vgimg.UseWH(config.TimeSeriesWidthInches*vg.Inch, config.TimeSeriesHeightInches*vg.Inch),
		vgimg.UseDPI(config.TimeSeriesDPI),
	)
	p.Draw(draw.New(canvas))

	if _, err := (vgimg.PngCanvas{Canvas: canvas}).WriteTo(w); err != nil {
		return apperrors.NewRenderError("failed to encode time series png", err)
	}
	return nil
}
