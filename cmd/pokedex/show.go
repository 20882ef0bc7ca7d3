package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/five82/pokedex/internal/app"
	"github.com/five82/pokedex/internal/catalog"
)

func newShowCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Fetch and print the full record for one Pokémon",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(strings.TrimSpace(args[0]))
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid id %q: must be a positive integer", args[0])
			}

			rt, err := app.NewRuntime(opts.cfg)
			if err != nil {
				return err
			}
			defer rt.Close()

			d, err := rt.Loader.LoadDetail(cmd.Context(), id)
			if err != nil {
				rt.Logger.Error("detail fetch failed", "id", id, "error", err)
				return fmt.Errorf("fetch #%s: %w", catalog.PaddedID(id), err)
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), d)
			}
			printDetail(cmd.OutOrStdout(), d)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the record as JSON")
	return cmd
}

func printDetail(w io.Writer, d catalog.Detail) {
	bold := lipgloss.NewStyle().Bold(true)

	fmt.Fprintln(w, bold.Render(d.Label()))
	if d.ArtworkURL != "" {
		fmt.Fprintf(w, "Artwork:   %s\n", d.ArtworkURL)
	}
	fmt.Fprintf(w, "Height:    %s m\n", humanize.FtoaWithDigits(d.HeightMeters(), 1))
	fmt.Fprintf(w, "Weight:    %s kg\n", humanize.FtoaWithDigits(d.WeightKilograms(), 1))
	if len(d.Abilities) > 0 {
		fmt.Fprintf(w, "Abilities: %s\n", strings.Join(d.Abilities, ", "))
	}
	if len(d.Stats) == 0 {
		return
	}
	fmt.Fprintln(w, bold.Render("Base stats"))
	for _, s := range d.Stats {
		fmt.Fprintf(w, "  %-16s %3d\n", s.Name, s.Value)
	}
	fmt.Fprintf(w, "  %-16s %3d\n", "total", d.StatTotal())
}
