package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/five82/pokedex/internal/app"
	"github.com/five82/pokedex/internal/catalog"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list [query]",
		Short: "Load the catalog and print the entries matching query",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}

			rt, err := app.NewRuntime(opts.cfg)
			if err != nil {
				return err
			}
			defer rt.Close()

			snap, err := app.WaitCatalog(cmd.Context(), rt)
			if err != nil {
				return err
			}

			entries := catalog.Filter(snap.Entries(), query)
			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, entries)
			}
			if len(entries) == 0 {
				fmt.Fprintf(out, "No matches for %q\n", query)
				return nil
			}
			fmt.Fprintln(out, entryTable(entries))
			fmt.Fprintf(out, "%s of %s entries\n",
				humanize.Comma(int64(len(entries))),
				humanize.Comma(int64(len(snap.Entries()))))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print entries as JSON")
	return cmd
}

func entryTable(entries []catalog.Entry) string {
	header := lipgloss.NewStyle().Bold(true)
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{"#" + catalog.PaddedID(e.ID), e.Name, e.ImageURL})
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "NAME", "IMAGE").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return lipgloss.NewStyle()
		}).
		String()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
