package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/JonMunkholm/easybill/internal/core"
	"github.com/JonMunkholm/easybill/internal/schema"
)

func checklistCmd() *cobra.Command {
	var nr int
	cmd := &cobra.Command{
		Use:   "checklist",
		Short: "Print the workflow checklist",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), func(ctx context.Context, s *core.Service) error {
				m := s.Checklist()
				keys := m.Keys()
				if nr > 0 {
					keys = []int{nr}
				}

				var entries []schema.Checklist
				for _, k := range keys {
					c, ok := m.Get(k)
					if !ok {
						return fmt.Errorf("no checklist entry for nr %d", k)
					}
					entries = append(entries, c)
				}
				if viper.GetBool("json") {
					return printJSON(entries)
				}

				tw := newTable()
				header := table.Row{"Nr"}
				for _, f := range schema.ChecklistFields {
					header = append(header, f.Label())
				}
				tw.AppendHeader(header)
				for _, c := range entries {
					row := table.Row{c.Nr}
					for _, f := range schema.ChecklistFields {
						mark := ""
						if c.Get(f) {
							mark = "✓"
						}
						row = append(row, mark)
					}
					tw.AppendRow(row)
				}
				tw.Render()
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&nr, "nr", 0, "only this order number")
	return cmd
}

// headersCmd reports how the header row of an export file maps onto the
// dashboard fields. Checklist exports are matched by keyword; order and
// shipment exports by exact header.
func headersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "headers <file>",
		Short: "Check the header row of an export file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open fixture: %w", err)
			}
			defer f.Close()

			var b strings.Builder
			if _, err := io.Copy(&b, core.WrapFixtureReader(f)); err != nil {
				return fmt.Errorf("read fixture: %w", err)
			}
			headers := core.ParseHeaders(b.String())

			tw := newTable()
			tw.AppendHeader(table.Row{"Header", "Field"})

			if filepath.Base(args[0]) == core.ChecklistFile {
				for _, h := range headers {
					field, ok := core.MatchChecklistHeader(h)
					if !ok {
						tw.AppendRow(table.Row{h, "-"})
						continue
					}
					tw.AppendRow(table.Row{h, string(field)})
				}
				tw.Render()
				return nil
			}

			report := core.ValidateHeaders(headers, schema.OrderFieldSpecs)
			if viper.GetBool("json") {
				return printJSON(report)
			}
			for _, h := range report.Matched {
				tw.AppendRow(table.Row{h, "ok"})
			}
			for _, h := range report.Unmapped {
				tw.AppendRow(table.Row{h, "ignored"})
			}
			for _, h := range report.Missing {
				tw.AppendRow(table.Row{h, "missing"})
			}
			tw.Render()
			if !report.Complete() {
				fmt.Fprintf(os.Stderr, "%d expected headers missing; those fields keep their defaults\n", len(report.Missing))
			}
			return nil
		},
	}
}
