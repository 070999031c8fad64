package chart

import (
	"io"
	"strconv"
	"strings"

	"github.com/hashtags-tool/hashdash/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// maxXLabels bounds how many x-axis labels a line chart prints
const maxXLabels = 12

const emptyLabel = "No data"

func hexColor(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

// yAxis builds an axis with whole-number ticks only
func yAxis(spec *model.ChartSpec) gochart.YAxis {
	values := spec.YTicks()
	ticks := make([]gochart.Tick, len(values))
	for i, v := range values {
		ticks[i] = gochart.Tick{Value: float64(v), Label: strconv.Itoa(v)}
	}

	return gochart.YAxis{
		Name:  spec.SeriesName,
		Range: &gochart.ContinuousRange{
			Min: 0,
			Max: float64(values[len(values)-1]),
		},
		Ticks: ticks,
	}
}

func (r *Renderer) renderBarPNG(spec *model.ChartSpec, w io.Writer) error {
	width, height := r.size(spec)

	bars := make([]gochart.Value, len(spec.Labels))
	for i, label := range spec.Labels {
		bars[i] = gochart.Value{
			Label: label,
			Value: float64(spec.Counts[i]),
			Style: gochart.Style{
				StrokeColor: hexColor(r.style.Stroke),
				StrokeWidth: 1,
				FillColor:   hexColor(r.style.Fill),
			},
		}
	}

	graph := gochart.BarChart{
		Title:      spec.Title,
		Width:      width,
		Height:     height,
		BarWidth:   barWidth(width, len(bars)),
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		YAxis:      yAxis(spec),
		Bars:       bars,
	}

	if err := graph.Render(gochart.PNG, w); err != nil {
		return goerr.Wrap(err, "failed to render bar chart", goerr.V("chart", spec.ID))
	}
	return nil
}

// barWidth spreads the bars over half of the canvas width
func barWidth(width, n int) int {
	if n == 0 {
		return width / 4
	}
	bw := width / (2 * n)
	switch {
	case bw < 4:
		return 4
	case bw > 80:
		return 80
	default:
		return bw
	}
}

func (r *Renderer) renderLinePNG(spec *model.ChartSpec, w io.Writer) error {
	width, height := r.size(spec)

	xs := make([]float64, len(spec.Counts))
	ys := make([]float64, len(spec.Counts))
	for i, c := range spec.Counts {
		xs[i] = float64(i)
		ys[i] = float64(c)
	}

	// a single point still needs a non-zero x range
	ticks := xTicks(spec.Labels)
	xMax := float64(len(xs) - 1)
	if xMax < 1 {
		xMax = 1
		ticks = append(ticks, gochart.Tick{Value: 1, Label: ""})
	}

	graph := gochart.Chart{
		Title:      spec.Title,
		Width:      width,
		Height:     height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: gochart.XAxis{
			Range: &gochart.ContinuousRange{Min: 0, Max: xMax},
			Ticks: ticks,
		},
		YAxis: yAxis(spec),
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name: spec.SeriesName,
				Style: gochart.Style{
					StrokeColor: hexColor(r.style.Stroke),
					StrokeWidth: 2,
					FillColor:   hexColor(r.style.Fill).WithAlpha(128),
					DotColor:    hexColor(r.style.Stroke),
					DotWidth:    2,
				},
				XValues: xs,
				YValues: ys,
			},
		},
	}

	if err := graph.Render(gochart.PNG, w); err != nil {
		return goerr.Wrap(err, "failed to render line chart", goerr.V("chart", spec.ID))
	}
	return nil
}

// xTicks labels at most maxXLabels evenly spaced points, always including the last one
func xTicks(labels []string) []gochart.Tick {
	if len(labels) == 0 {
		return nil
	}
	step := (len(labels) + maxXLabels - 1) / maxXLabels
	if step < 1 {
		step = 1
	}

	var ticks []gochart.Tick
	for i := 0; i < len(labels); i += step {
		ticks = append(ticks, gochart.Tick{Value: float64(i), Label: labels[i]})
	}
	last := len(labels) - 1
	if ticks[len(ticks)-1].Value != float64(last) {
		ticks = append(ticks, gochart.Tick{Value: float64(last), Label: labels[last]})
	}
	return ticks
}

// renderEmptyPNG draws the axes with a single zero bar so an empty result
// still yields an image and an export link
func (r *Renderer) renderEmptyPNG(spec *model.ChartSpec, w io.Writer) error {
	width, height := r.size(spec)

	graph := gochart.BarChart{
		Title:      spec.Title,
		Width:      width,
		Height:     height,
		BarWidth:   width / 4,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		YAxis:      yAxis(spec),
		Bars: []gochart.Value{
			{Label: emptyLabel, Value: 0},
		},
	}

	if err := graph.Render(gochart.PNG, w); err != nil {
		return goerr.Wrap(err, "failed to render empty chart", goerr.V("chart", spec.ID))
	}
	return nil
}
