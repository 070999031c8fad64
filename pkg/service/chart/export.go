package chart

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/hashtags-tool/hashdash/pkg/domain/model"
	"github.com/hashtags-tool/hashdash/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// CSVHeader returns the column names of the CSV export of a chart
func CSVHeader(id types.ChartID) []string {
	switch id {
	case types.ChartIDProjects:
		return []string{"Project", "Edits"}
	case types.ChartIDUsers:
		return []string{"User", "Edits"}
	default:
		return []string{"Date", "Edits"}
	}
}

// WriteCSV writes the series of spec as label,count rows under a header
func WriteCSV(spec *model.ChartSpec, w io.Writer) error {
	if err := validateSpec(spec); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader(spec.ID)); err != nil {
		return goerr.Wrap(err, "failed to write CSV header", goerr.V("chart", spec.ID))
	}
	for i, label := range spec.Labels {
		if err := cw.Write([]string{label, strconv.Itoa(spec.Counts[i])}); err != nil {
			return goerr.Wrap(err, "failed to write CSV row",
				goerr.V("chart", spec.ID),
				goerr.V("row", i))
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return goerr.Wrap(err, "failed to flush CSV", goerr.V("chart", spec.ID))
	}
	return nil
}

// CSVFilename returns the download name of the CSV export
func CSVFilename(spec *model.ChartSpec) string {
	if spec.View != "" {
		return spec.ID.String() + "-" + spec.View.String() + ".csv"
	}
	return spec.ID.String() + ".csv"
}
