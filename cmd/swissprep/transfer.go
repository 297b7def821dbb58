package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/swisscitizen/prep/internal/app"
	"github.com/swisscitizen/prep/internal/facts"
)

func newExportCmd(flags *rootFlags) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all facts as JSON",
		Long:  "Writes the fact collection as indented JSON to stdout or to a file.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(a *app.App) error {
				if output == "" {
					return a.Facts.Export(cmd.Context(), cmd.OutOrStdout())
				}

				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("creating %s: %w", output, err)
				}
				if err := a.Facts.Export(cmd.Context(), f); err != nil {
					f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return fmt.Errorf("writing %s: %w", output, err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Fakten exportiert nach %s\n", output)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file, e.g. "+facts.ExportFilename+" (default: stdout)")

	return cmd
}

func newImportCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Append facts from a JSON export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer f.Close()

			return withApp(cmd, flags, func(a *app.App) error {
				n, err := a.Facts.Import(cmd.Context(), f)
				if errors.Is(err, facts.ErrMalformedImport) {
					return errors.New("Fehler beim Importieren der Datei!")
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d Fakten importiert.\n", n)
				return nil
			})
		},
	}
}
