package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/swisscitizen/prep/internal/app"
	"github.com/swisscitizen/prep/internal/progress"
)

func newProgressCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "progress",
		Short: "Show the learning progress dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(a *app.App) error {
				snap, err := a.Progress.Snapshot(cmd.Context())
				if err != nil {
					return err
				}
				return printProgress(cmd.OutOrStdout(), snap)
			})
		},
	}
}

func printProgress(w io.Writer, s progress.Snapshot) error {
	fmt.Fprintf(w, "Gesamtfortschritt: %d%%\n\n", s.Overall)
	fmt.Fprintf(w, "Fakten: %d  Quiz: %d  Erfolgsrate: %d%%  Gebäude: %d\n\n",
		s.TotalFacts, s.TotalQuizzes, s.SuccessRate, s.ExploredBuildings)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KATEGORIE\tFAKTEN\tFORTSCHRITT")
	for _, c := range s.Categories {
		fmt.Fprintf(tw, "%s\t%d\t%.0f%%\n", c.Label, c.Count, c.Percent)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w, "\nErfolge:")
	for _, a := range s.Achievements {
		mark := " "
		if a.Unlocked {
			mark = "x"
		}
		fmt.Fprintf(w, "  [%s] %s %s: %s\n", mark, a.Icon, a.Title, a.Description)
	}

	if len(s.Recent) > 0 {
		fmt.Fprintln(w, "\nLetzte Aktivitäten:")
		for _, act := range s.Recent {
			fmt.Fprintf(w, "  %s  %s\n", act.Date.Local().Format("02.01.2006 15:04"), act.Description)
		}
	}

	if len(s.Tips) > 0 {
		fmt.Fprintln(w, "\nTipps zur Verbesserung:")
		fmt.Fprintln(w, "  - "+strings.Join(s.Tips, "\n  - "))
	}
	return nil
}

func newBuildingsCmd(flags *rootFlags) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "buildings",
		Short: "List the buildings on the map",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(a *app.App) error {
				explored, err := a.Places.Explored(cmd.Context())
				if err != nil {
					return err
				}
				seen := make(map[int]bool, len(explored))
				for _, id := range explored {
					seen[id] = true
				}

				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tNAME\tKATEGORIE\tADRESSE\tERKUNDET")
				for _, b := range a.Places.Filter(category) {
					mark := ""
					if seen[b.ID] {
						mark = "ja"
					}
					fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", b.ID, b.Name, b.Category, b.Address, mark)
				}
				return tw.Flush()
			})
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "all", "Filter by category (government, culture, education, transport)")

	return cmd
}

func newStoreCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Inspect the local store",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "keys",
		Short: "List stored document keys",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(a *app.App) error {
				keys, err := a.Store.Keys(cmd.Context())
				if err != nil {
					return err
				}
				for _, k := range keys {
					fmt.Fprintln(cmd.OutOrStdout(), k)
				}
				return nil
			})
		},
	})

	return cmd
}
