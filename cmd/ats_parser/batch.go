package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/ats-parser/internal/export"
)

var batchCmd = &cobra.Command{
	Use:   "batch <files...>",
	Short: "Parse several resumes concurrently",
	Long:  "Parse several resume documents with bounded concurrency, writing one JSON file per input into --out-dir.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runBatch,
}

var (
	batchConcurrency int
	batchOutDir      string
	batchFlat        bool
)

func init() {
	batchCmd.Flags().IntVarP(&batchConcurrency, "concurrency", "j", 4, "Maximum documents parsed at once")
	batchCmd.Flags().StringVar(&batchOutDir, "out-dir", "parsed", "Directory for the per-document JSON files")
	batchCmd.Flags().BoolVar(&batchFlat, "flat", false, "Write flattened backend records")

	rootCmd.AddCommand(batchCmd)
}

// batchResult summarizes one input of a batch run
type batchResult struct {
	Input  string
	Output string
	Err    error
}

func runBatch(cmd *cobra.Command, args []string) error {
	if batchConcurrency < 1 {
		return fmt.Errorf("--concurrency must be at least 1")
	}
	a, err := setupApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	if err := os.MkdirAll(batchOutDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	results := parseAll(cmd, a, args, batchOutDir, batchConcurrency, batchFlat)

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "FAIL %s: %v\n", r.Input, r.Err)
			continue
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "ok   %s -> %s\n", r.Input, r.Output)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d document(s) failed", failed, len(results))
	}
	return nil
}

// parseAll parses inputs with at most limit in flight. One document
// failing does not cancel the others; results keep input order.
func parseAll(cmd *cobra.Command, a *app, inputs []string, outDir string, limit int, flat bool) []batchResult {
	ctx := commandContext(cmd)
	results := make([]batchResult, len(inputs))
	names := outputNames(inputs)

	var g errgroup.Group
	g.SetLimit(limit)
	for i, in := range inputs {
		g.Go(func() error {
			res := batchResult{Input: in, Output: filepath.Join(outDir, names[i])}
			resume, err := a.assembler.ParseFile(ctx, in)
			if err == nil {
				var v any = resume
				if flat {
					v = export.Flatten(resume)
				}
				err = writeJSON(nil, res.Output, v)
			}
			res.Err = err
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// outputNames derives a unique .json file name per input
func outputNames(inputs []string) []string {
	out := make([]string, len(inputs))
	seen := map[string]int{}
	for i, in := range inputs {
		base := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
		if base == "" || base == "." {
			base = "resume"
		}
		seen[base]++
		if n := seen[base]; n > 1 {
			base = fmt.Sprintf("%s-%d", base, n)
		}
		out[i] = base + ".json"
	}
	return out
}
