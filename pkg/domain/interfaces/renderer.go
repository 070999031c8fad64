package interfaces

//go:generate moq -out mocks/renderer_mock.go -pkg mocks . ChartRenderer

import (
	"context"
	"io"

	"github.com/hashtags-tool/hashdash/pkg/domain/model"
)

// ChartRenderer draws a chart spec
type ChartRenderer interface {
	// RenderPNG writes a static image of the chart
	RenderPNG(ctx context.Context, spec *model.ChartSpec, w io.Writer) error
	// RenderHTML writes an interactive chart page
	RenderHTML(ctx context.Context, spec *model.ChartSpec, w io.Writer) error
}
