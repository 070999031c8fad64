package model

import (
	"encoding/base64"

	"github.com/m-mizutani/goerr/v2"
)

// ExportLink is the download anchor of a panel
type ExportLink struct {
	Href     string
	Filename string
}

// Panel is a page region holding one rendered chart and its export link
type Panel struct {
	Spec   *ChartSpec
	Image  []byte
	Export ExportLink
	// Err is set when fetching or rendering failed; Spec may then be nil
	Err error
}

// NewFailedPanel records a panel whose data could not be produced
func NewFailedPanel(err error) *Panel {
	return &Panel{Err: err}
}

// Available reports whether the panel has a rendered chart
func (p *Panel) Available() bool {
	return p != nil && p.Err == nil && p.Spec != nil
}

// ExportFilename returns the download name of a chart image
func ExportFilename(spec *ChartSpec) string {
	if spec.View != "" {
		return spec.ID.String() + "-" + spec.View.String() + ".png"
	}
	return spec.ID.String() + ".png"
}

// UpdateExportLink regenerates the export link from the rendered PNG.
// It must be called each time the chart finishes rendering.
func (p *Panel) UpdateExportLink(png []byte) error {
	if p.Spec == nil {
		return goerr.New("panel has no chart spec")
	}
	if len(png) == 0 {
		return goerr.Wrap(ErrNoImage, "cannot build export link", goerr.V("chart", p.Spec.ID))
	}

	p.Image = png
	p.Export = ExportLink{
		Href:     "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
		Filename: ExportFilename(p.Spec),
	}
	return nil
}
