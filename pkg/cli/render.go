package cli

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashtags-tool/hashdash/pkg/cli/config"
	"github.com/hashtags-tool/hashdash/pkg/domain/interfaces"
	"github.com/hashtags-tool/hashdash/pkg/domain/model"
	"github.com/hashtags-tool/hashdash/pkg/repository"
	"github.com/hashtags-tool/hashdash/pkg/service/chart"
	"github.com/hashtags-tool/hashdash/pkg/usecase"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdRender() *cli.Command {
	var (
		backendCfg   config.Backend
		dashboardCfg config.Dashboard
		filter       model.Filter
		outDir       string
	)

	flags := joinFlags(
		[]cli.Flag{
			&cli.StringFlag{
				Name:        "tag",
				Usage:       "Hashtag to render (a leading # is ignored)",
				Category:    "Query",
				Required:    true,
				Sources:     cli.EnvVars("HASHDASH_TAG"),
				Destination: &filter.Query,
			},
			&cli.StringFlag{
				Name:        "lang",
				Usage:       "Language filter",
				Category:    "Query",
				Sources:     cli.EnvVars("HASHDASH_LANG"),
				Destination: &filter.Lang,
			},
			&cli.StringFlag{
				Name:        "start-date",
				Usage:       "Start date (YYYY-MM-DD)",
				Category:    "Query",
				Sources:     cli.EnvVars("HASHDASH_START_DATE"),
				Destination: &filter.StartDate,
			},
			&cli.StringFlag{
				Name:        "end-date",
				Usage:       "End date (YYYY-MM-DD)",
				Category:    "Query",
				Sources:     cli.EnvVars("HASHDASH_END_DATE"),
				Destination: &filter.EndDate,
			},
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "Output directory",
				Category:    "Output",
				Value:       ".",
				Sources:     cli.EnvVars("HASHDASH_OUT"),
				Destination: &outDir,
			},
		},
		backendCfg.Flags(),
		dashboardCfg.Flags(),
	)

	return &cli.Command{
		Name:  "render",
		Usage: "Fetch the stats of a hashtag and write every chart as PNG, HTML and CSV",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			filter.Query = model.NormalizeTag(filter.Query)
			if filter.Query == "" {
				return goerr.New("tag is empty")
			}

			layout, err := dashboardCfg.Configure()
			if err != nil {
				return err
			}
			statsClient, err := backendCfg.Configure()
			if err != nil {
				return err
			}

			renderer := chart.New(layout.Style)
			repo := repository.NewMemory()
			defer repo.Close()
			dashboardUC := usecase.NewDashboardUseCase(statsClient, renderer, repo, layout)

			logger.Info("Rendering charts",
				slog.String("tag", filter.Query),
				slog.String("out", outDir),
				slog.Any("backend", backendCfg),
			)

			dashboard, err := dashboardUC.Build(ctx, filter)
			if err != nil {
				return err
			}
			if err := dashboardUC.LoadViews(ctx, dashboard); err != nil {
				logger.Warn("Some time views could not be loaded", slog.Any("error", err))
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return goerr.Wrap(err, "failed to create output directory", goerr.V("path", outDir))
			}

			panels := []*model.Panel{dashboard.Projects(), dashboard.Users()}
			for _, tp := range dashboard.TimePanels(dashboardUC.Views(dashboard)) {
				panels = append(panels, tp.Panel)
			}

			var written int
			for _, panel := range panels {
				if !panel.Available() {
					logger.Warn("Skip unavailable panel", slog.Any("error", panel.Err))
					continue
				}
				if err := writePanel(ctx, renderer, panel, outDir); err != nil {
					return err
				}
				written++
			}

			logger.Info("Charts written", slog.Int("panels", written), slog.String("out", outDir))
			if written == 0 {
				return goerr.New("no chart could be rendered", goerr.V("tag", filter.Query))
			}
			return nil
		},
	}
}

// writePanel writes the image, the interactive page and the CSV of one panel
func writePanel(ctx context.Context, renderer interfaces.ChartRenderer, panel *model.Panel, dir string) error {
	base := strings.TrimSuffix(panel.Export.Filename, ".png")

	var page bytes.Buffer
	if err := renderer.RenderHTML(ctx, panel.Spec, &page); err != nil {
		return err
	}

	var csv bytes.Buffer
	if err := chart.WriteCSV(panel.Spec, &csv); err != nil {
		return err
	}

	files := map[string][]byte{
		panel.Export.Filename:        panel.Image,
		base + ".html":               page.Bytes(),
		chart.CSVFilename(panel.Spec): csv.Bytes(),
	}
	for name, data := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return goerr.Wrap(err, "failed to write chart file", goerr.V("path", path))
		}
		ctxlog.From(ctx).Debug("Chart file written", slog.String("path", path), slog.Int("size", len(data)))
	}
	return nil
}
