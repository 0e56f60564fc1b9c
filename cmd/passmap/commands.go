package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pitchlab/passmap/internal/api"
	"github.com/pitchlab/passmap/internal/classify"
	"github.com/pitchlab/passmap/internal/config"
	"github.com/pitchlab/passmap/internal/logging"
	"github.com/pitchlab/passmap/internal/parser"
	"github.com/pitchlab/passmap/internal/render"
	"github.com/pitchlab/passmap/internal/stats"
	"github.com/pitchlab/passmap/internal/storage"
	"github.com/pitchlab/passmap/internal/util"
	"github.com/pitchlab/passmap/pkg/core"
	"github.com/spf13/cobra"
)

// source selects where events come from. Exactly one field is set.
type source struct {
	events string
	match  string
}

func (s *source) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.events, "events", "", "event file (.json feed or flattened .csv, optionally .gz)")
	cmd.Flags().StringVar(&s.match, "match", "", "match id to fetch from the configured event source")
	cmd.MarkFlagsOneRequired("events", "match")
	cmd.MarkFlagsMutuallyExclusive("events", "match")
}

// load reads the event table from the selected source.
func (a *app) load(ctx context.Context, s source) (core.EventTable, error) {
	p := parser.NewParser(a.logger)

	if s.match != "" {
		ac := config.GetAPIConfig()
		client := api.New(ac.BaseURL,
			api.WithTimeout(ac.Timeout),
			api.WithCacheTTL(ac.CacheTTL),
			api.WithLogger(a.logger),
		)
		body, err := client.FetchEvents(ctx, s.match)
		if err != nil {
			return core.EventTable{}, err
		}
		return p.ParseEventsJSON(bytes.NewReader(body))
	}

	f, err := storage.Open(s.events)
	if err != nil {
		return core.EventTable{}, fmt.Errorf("failed to open events: %w", err)
	}
	defer f.Close()

	if storage.Ext(s.events) == ".csv" {
		return p.ParseEventsCSV(f)
	}
	return p.ParseEventsJSON(f)
}

// classified loads and labels the event table.
func (a *app) classified(ctx context.Context, s source) (core.EventTable, error) {
	ctx = logging.WithRun(ctx, logging.Run{Match: s.match})
	t, err := a.load(ctx, s)
	if err != nil {
		return core.EventTable{}, err
	}
	c, err := classify.New(a.logger, classify.WithMeter(a.meter(classify.InstrumentationName)))
	if err != nil {
		return core.EventTable{}, err
	}
	return c.Classify(ctx, t)
}

func newClassifyCmd(a *app) *cobra.Command {
	var (
		src source
		out string
	)

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Label every event with its pass category",
		Example: `  passmap classify --events events.json --out classified.json
  passmap classify --match 3788741`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := a.classified(cmd.Context(), src)
			if err != nil {
				return err
			}

			if out != "" && out != "-" {
				return storage.WriteJSON(out, t)
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(t); err != nil {
				return fmt.Errorf("error marshalling table: %w", err)
			}
			return nil
		},
	}

	src.register(cmd)
	cmd.Flags().StringVar(&out, "out", "", "write JSON here instead of stdout")
	return cmd
}

func newStatsCmd(a *app) *cobra.Command {
	var src source

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print per-player passing numbers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := a.classified(cmd.Context(), src)
			if err != nil {
				return err
			}
			agg, err := stats.Aggregate(t)
			if err != nil {
				return err
			}
			writeStatsTable(cmd.OutOrStdout(), agg, classify.CountByCategory(t))
			return nil
		},
	}

	src.register(cmd)
	return cmd
}

func writeStatsTable(w io.Writer, agg stats.Table, counts map[core.PassCategory]int) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Player", "Team", "Passes", "Completed", "Progressive", "Completion %"})
	for _, p := range agg.Sorted() {
		tw.AppendRow(table.Row{
			p.Player, p.Team, p.PassCount, p.CompletedCount, p.ProgressivePassCount,
			util.FormatPercentage(p.CompletionPercentage),
		})
	}
	tw.Render()

	ct := table.NewWriter()
	ct.SetOutputMirror(w)
	ct.SetStyle(table.StyleLight)
	ct.AppendHeader(table.Row{"Category", "Rows"})
	for _, c := range core.PassCategories {
		ct.AppendRow(table.Row{c.String(), counts[c]})
	}
	ct.Render()
}

func newRenderCmd(a *app) *cobra.Command {
	var (
		src        source
		player     string
		period     int
		categories []string
		out        string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Draw a player's pass map as SVG",
		Example: `  passmap render --events events.json --player "Xavier Hernández Creus"
  passmap render --match 3788741 --player "Sergio Busquets i Burgos" --period 1 --out busquets.svg
  passmap render --events events.csv --player Xavi --category progressive,normal`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter := parser.Filter{Player: player, Period: period}
			for _, c := range categories {
				if c == "" {
					continue
				}
				pc, err := core.ParsePassCategory(c)
				if err != nil {
					return err
				}
				filter.Categories = append(filter.Categories, pc)
			}

			ctx := logging.WithRun(cmd.Context(), logging.Run{Player: player})
			t, err := a.classified(ctx, src)
			if err != nil {
				return err
			}
			agg, err := stats.Aggregate(t)
			if err != nil {
				return err
			}

			colors := config.GetColorMap()
			rc := config.GetRenderConfig()

			passes := parser.FilterPasses(t, filter)

			var buf bytes.Buffer
			err = render.PlotProgPassMap(ctx, &buf,
				passes, agg, colors, player,
				render.WithScale(rc.Scale),
				render.WithLineColor(rc.LineColor),
				render.WithBackground(rc.Background),
			)
			if errors.Is(err, stats.ErrPlayerNotFound) {
				return fmt.Errorf("%w (try the stats command for the list of players)", err)
			}
			if err != nil {
				return err
			}

			if out == "" {
				out = util.SafeFilename(player) + ".svg"
			}
			if err := writeOutput(cmd.OutOrStdout(), out, buf.Bytes()); err != nil {
				return err
			}
			a.logger.InfoContext(ctx, "Rendered pass map", "path", out, "passes", passes.Len())
			return nil
		},
	}

	src.register(cmd)
	cmd.Flags().StringVar(&player, "player", "", "player name as it appears in the events")
	cmd.Flags().IntVar(&period, "period", 0, "only draw passes from this period (0 for all)")
	cmd.Flags().StringSliceVar(&categories, "category", []string{core.PassProgressive.String()}, "pass categories to draw, empty for every pass")
	cmd.Flags().StringVar(&out, "out", "", "output file (default <player>.svg, - for stdout)")
	_ = cmd.MarkFlagRequired("player")
	return cmd
}

// writeOutput writes data to path, or to stdout when path is empty or "-".
// A .gz path is compressed.
func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	return storage.WriteFile(path, data)
}
