package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/swisscitizen/prep/internal/app"
	"github.com/swisscitizen/prep/internal/facts"
	"github.com/swisscitizen/prep/internal/swisscitizen"
)

func newFactsCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "facts",
		Short: "List, add and remove study facts",
	}

	cmd.AddCommand(
		newFactsListCmd(flags),
		newFactsAddCmd(flags),
		newFactsRemoveCmd(flags),
	)

	return cmd
}

func newFactsListCmd(flags *rootFlags) *cobra.Command {
	var filter facts.Filter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List facts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(a *app.App) error {
				list, err := a.Facts.List(cmd.Context(), filter)
				if err != nil {
					return err
				}
				if len(list) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Keine Fakten gefunden.")
					return nil
				}
				return printFacts(cmd.OutOrStdout(), list)
			})
		},
	}

	cmd.Flags().StringVarP(&filter.Text, "search", "s", "", "Search title, content and tags")
	cmd.Flags().StringVarP(&filter.Category, "category", "c", "all", "Filter by category")

	return cmd
}

func printFacts(w io.Writer, list []swisscitizen.Fact) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tKATEGORIE\tSCHWIERIGKEIT\tTITEL\tTAGS")
	for _, f := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			f.ID, f.Category.Label(), f.Difficulty.Label(), f.Title, strings.Join(f.Tags, ", "))
	}
	return tw.Flush()
}

func newFactsAddCmd(flags *rootFlags) *cobra.Command {
	var (
		d          facts.Draft
		category   string
		difficulty string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a fact",
		RunE: func(cmd *cobra.Command, args []string) error {
			d.Category = swisscitizen.Category(category)
			d.Difficulty = swisscitizen.Difficulty(difficulty)
			if !d.Category.Valid() {
				return fmt.Errorf("invalid category %q", category)
			}
			if !d.Difficulty.Valid() {
				return fmt.Errorf("invalid difficulty %q", difficulty)
			}

			return withApp(cmd, flags, func(a *app.App) error {
				f, err := a.Facts.Add(cmd.Context(), d)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Fakt %d hinzugefügt: %s\n", f.ID, f.Title)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&d.Title, "title", "t", "", "Title (required)")
	cmd.Flags().StringVar(&d.Content, "content", "", "Content (required)")
	cmd.Flags().StringVarP(&category, "category", "c", string(swisscitizen.CategoryHistory), "Category")
	cmd.Flags().StringVarP(&difficulty, "difficulty", "d", string(swisscitizen.DifficultyMedium), "Difficulty")
	cmd.Flags().StringVar(&d.Tags, "tags", "", "Comma-separated tags")

	return cmd
}

func newFactsRemoveCmd(flags *rootFlags) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a fact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid fact id %q", args[0])
			}

			return withApp(cmd, flags, func(a *app.App) error {
				f, err := a.Facts.Get(cmd.Context(), id)
				if err != nil {
					return err
				}
				if !yes && !confirm(cmd, fmt.Sprintf("Möchten Sie %q wirklich löschen?", f.Title)) {
					fmt.Fprintln(cmd.OutOrStdout(), "Abgebrochen.")
					return nil
				}
				if err := a.Facts.Remove(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Fakt %d gelöscht.\n", id)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation prompt")

	return cmd
}

func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [j/N]: ", prompt)
	response, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(response)) {
	case "j", "ja", "y", "yes":
		return true
	}
	return false
}
