package chart

import (
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/hashtags-tool/hashdash/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

func px(n int) string {
	return strconv.Itoa(n) + "px"
}

func (r *Renderer) globalOptions(spec *model.ChartSpec) []charts.GlobalOpts {
	width, height := r.size(spec)
	ticks := spec.YTicks()

	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: spec.Title,
			ChartID:   spec.ID.String(),
			Width:     px(width),
			Height:    px(height),
		}),
		charts.WithTitleOpts(opts.Title{
			Title: spec.Title,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:        spec.SeriesName,
			Min:         0,
			Max:         ticks[len(ticks)-1],
			SplitNumber: len(ticks) - 1,
		}),
	}
}

func (r *Renderer) renderHTML(spec *model.ChartSpec, w io.Writer) error {
	labels := spec.Labels
	counts := spec.Counts
	if spec.IsEmpty() {
		labels = []string{emptyLabel}
		counts = []int{0}
	}

	var page interface{ Render(w io.Writer) error }

	switch spec.Kind {
	case model.ChartKindLine:
		data := make([]opts.LineData, len(counts))
		for i, c := range counts {
			data[i] = opts.LineData{Value: c}
		}

		line := charts.NewLine()
		line.SetGlobalOptions(r.globalOptions(spec)...)
		line.SetXAxis(labels).
			AddSeries(spec.SeriesName, data,
				charts.WithLineStyleOpts(opts.LineStyle{Color: r.style.Stroke, Width: 2}),
				charts.WithItemStyleOpts(opts.ItemStyle{Color: r.style.Stroke}),
			)
		page = line

	default:
		data := make([]opts.BarData, len(counts))
		for i, c := range counts {
			data[i] = opts.BarData{Value: c}
		}

		bar := charts.NewBar()
		bar.SetGlobalOptions(r.globalOptions(spec)...)
		bar.SetXAxis(labels).
			AddSeries(spec.SeriesName, data,
				charts.WithItemStyleOpts(opts.ItemStyle{
					Color:       r.style.Fill,
					BorderColor: r.style.Stroke,
				}),
			)
		page = bar
	}

	if err := page.Render(w); err != nil {
		return goerr.Wrap(err, "failed to render chart page", goerr.V("chart", spec.ID))
	}
	return nil
}
