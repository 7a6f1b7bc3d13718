package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/ats-parser/internal/ingestion"
	"github.com/jonathan/ats-parser/internal/observability"
	"github.com/jonathan/ats-parser/internal/sections"
	"github.com/jonathan/ats-parser/internal/skills"
	"github.com/jonathan/ats-parser/internal/types"
)

var skillsCmd = &cobra.Command{
	Use:   "skills <file>",
	Short: "Print the skills extracted from a resume",
	Long:  "Extract and canonicalize the skills of a resume, reporting whether the allowlist or the heuristic mode was used.",
	Args:  cobra.ExactArgs(1),
	RunE:  runSkills,
}

func init() {
	rootCmd.AddCommand(skillsCmd)
}

func runSkills(cmd *cobra.Command, args []string) error {
	a, err := setupApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	res, err := ingestText(cmd, a, args[0])
	if err != nil {
		return err
	}

	c := a.loader.Canonicalizer()
	ext := skills.New(c)
	found := ext.Extract(sections.Split(res.Text).Lines(types.SectionSkills))
	if len(found) == 0 {
		found = ext.ExtractFromText(res.Text)
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintSkills(found, c.AllowlistMode())
	return nil
}

// ingestText extracts the cleaned text of one document
func ingestText(cmd *cobra.Command, a *app, path string) (ingestion.Result, error) {
	return a.ingestor.Ingest(commandContext(cmd), path)
}
