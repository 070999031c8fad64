package chart

import (
	"context"
	"io"

	"github.com/hashtags-tool/hashdash/pkg/domain/interfaces"
	"github.com/hashtags-tool/hashdash/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

// Renderer draws chart specs as PNG images (go-chart) and interactive HTML pages (go-echarts)
type Renderer struct {
	style model.ChartStyle
}

var _ interfaces.ChartRenderer = (*Renderer)(nil)

// New creates a renderer using the given size and colors
func New(style model.ChartStyle) *Renderer {
	return &Renderer{style: style}
}

// size returns the canvas size for the spec. Charts that do not keep their
// aspect ratio use the configured line height instead of the default height.
func (r *Renderer) size(spec *model.ChartSpec) (int, int) {
	if spec.MaintainAspectRatio {
		return r.style.Width, r.style.Height
	}
	return r.style.Width, r.style.LineHeight
}

func validateSpec(spec *model.ChartSpec) error {
	if spec == nil {
		return goerr.New("chart spec is nil")
	}
	if !spec.ID.IsValid() {
		return goerr.New("unknown chart id", goerr.V("chart", spec.ID))
	}
	if len(spec.Labels) != len(spec.Counts) {
		return goerr.Wrap(model.ErrMalformedPayload, "labels and counts differ in length",
			goerr.V("chart", spec.ID),
			goerr.V("labels", len(spec.Labels)),
			goerr.V("counts", len(spec.Counts)))
	}
	return nil
}

// RenderPNG implements interfaces.ChartRenderer
func (r *Renderer) RenderPNG(ctx context.Context, spec *model.ChartSpec, w io.Writer) error {
	if err := validateSpec(spec); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return goerr.Wrap(err, "render cancelled", goerr.V("chart", spec.ID))
	}

	switch {
	case spec.IsEmpty():
		return r.renderEmptyPNG(spec, w)
	case spec.Kind == model.ChartKindLine:
		return r.renderLinePNG(spec, w)
	default:
		return r.renderBarPNG(spec, w)
	}
}

// RenderHTML implements interfaces.ChartRenderer
func (r *Renderer) RenderHTML(ctx context.Context, spec *model.ChartSpec, w io.Writer) error {
	if err := validateSpec(spec); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return goerr.Wrap(err, "render cancelled", goerr.V("chart", spec.ID))
	}
	return r.renderHTML(spec, w)
}
