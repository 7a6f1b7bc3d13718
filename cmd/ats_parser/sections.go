package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/ats-parser/internal/observability"
	"github.com/jonathan/ats-parser/internal/sections"
)

var sectionsCmd = &cobra.Command{
	Use:   "sections <file>",
	Short: "Print the section buckets of a resume",
	Long:  "Extract the document text and print how many lines landed in each section, in document order. With --verbose the lines are printed too.",
	Args:  cobra.ExactArgs(1),
	RunE:  runSections,
}

func init() {
	rootCmd.AddCommand(sectionsCmd)
}

func runSections(cmd *cobra.Command, args []string) error {
	a, err := setupApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	res, err := ingestText(cmd, a, args[0])
	if err != nil {
		return err
	}
	buckets := sections.Split(res.Text)

	var order []string
	for _, sec := range buckets.Sections() {
		order = append(order, string(sec))
	}
	printer := observability.NewPrinter(cmd.OutOrStdout())
	printer.PrintSections(buckets.Counts(), order)

	if a.cfg.Verbose {
		for _, sec := range buckets.Sections() {
			cmd.Printf("\n[%s]\n", sec)
			for _, line := range buckets.Lines(sec) {
				cmd.Printf("  %s\n", line)
			}
		}
	}
	return nil
}
