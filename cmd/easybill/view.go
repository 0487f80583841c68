package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/JonMunkholm/easybill/internal/core"
	"github.com/JonMunkholm/easybill/internal/datatable"
)

// queryFlags mirrors the dashboard's query parameters.
type queryFlags struct {
	presets []string
	search  string
	sort    string
	desc    bool
	page    int
	size    int
	filters []string
	quelle  string
}

func (f *queryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.presets, "preset", nil, "active preset id (repeatable)")
	cmd.Flags().StringVar(&f.search, "search", "", "global filter")
	cmd.Flags().StringVar(&f.sort, "sort", "", "sort column id")
	cmd.Flags().BoolVar(&f.desc, "desc", false, "sort descending")
	cmd.Flags().IntVar(&f.page, "page", 1, "1-based page")
	cmd.Flags().IntVar(&f.size, "size", datatable.DefaultPageSize, "page size")
	cmd.Flags().StringArrayVar(&f.filters, "filter", nil, "column filter as column=value (repeatable)")
	cmd.Flags().StringVar(&f.quelle, "quelle", "", "Importquelle filter")
}

func (f *queryFlags) query(cmd *cobra.Command) (core.Query, error) {
	q := core.Query{Page: &f.page, PageSize: &f.size, Desc: f.desc}
	if cmd.Flags().Changed("preset") {
		q.Presets = f.presets
	}
	if f.search != "" {
		q.Search = &f.search
	}
	if f.sort != "" {
		q.Sort = &f.sort
	}
	if len(f.filters) > 0 {
		q.Filters = make(map[string]string, len(f.filters))
		for _, raw := range f.filters {
			col, val, ok := strings.Cut(raw, "=")
			if !ok || col == "" {
				return q, fmt.Errorf("invalid filter %q, want column=value", raw)
			}
			q.Filters[col] = val
		}
	}
	if f.quelle != "" {
		q.Extra = &core.ExtraFilters{Importquelle: f.quelle}
	}
	return q, nil
}

func viewCmd() *cobra.Command {
	var f queryFlags
	cmd := &cobra.Command{
		Use:   "view <table>",
		Short: "Print one page of a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := f.query(cmd)
			if err != nil {
				return err
			}
			return withService(cmd.Context(), func(ctx context.Context, s *core.Service) error {
				res, err := s.TableView(args[0], q)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(res)
				}
				renderView(res)
				return nil
			})
		},
	}
	f.register(cmd)
	return cmd
}

func renderView(res *core.TableViewResult) {
	tw := newTable()
	tw.SetTitle("%s (%d of %d rows)", res.Table.Label, res.Total, res.TotalRows)

	var header table.Row
	var configs []table.ColumnConfig
	for _, col := range res.Columns {
		if !col.Visible {
			continue
		}
		header = append(header, col.Header)
		if col.Floating {
			configs = append(configs, table.ColumnConfig{Number: len(header), Align: text.AlignCenter})
		}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, row := range res.Rows {
		r := make(table.Row, 0, len(row.Cells))
		for _, cell := range row.Cells {
			r = append(r, toneColor(cell.Tone).Sprint(cell.Text))
		}
		tw.AppendRow(r)
	}
	tw.Render()

	fmt.Fprintf(os.Stdout, "page %d/%d", res.Page, res.PageCount)
	for _, p := range res.Presets {
		if p.Active {
			fmt.Fprintf(os.Stdout, "  [%s]", p.Label)
		}
	}
	fmt.Fprintln(os.Stdout)
}

func toneColor(t datatable.Tone) text.Colors {
	switch t {
	case datatable.ToneSelected:
		return text.Colors{text.FgCyan}
	case datatable.ToneMarked:
		return text.Colors{text.FgYellow}
	default:
		return text.Colors{}
	}
}

func exportCmd() *cobra.Command {
	var f queryFlags
	cmd := &cobra.Command{
		Use:   "export <table>",
		Short: "Write the filtered rows of a table as CSV to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := f.query(cmd)
			if err != nil {
				return err
			}
			return withService(cmd.Context(), func(ctx context.Context, s *core.Service) error {
				if _, err := s.TableView(args[0], q); err != nil {
					return err
				}
				_, err := s.ExportCSV(ctx, args[0], os.Stdout)
				return err
			})
		},
	}
	f.register(cmd)
	return cmd
}
