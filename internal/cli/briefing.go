package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/finbrief/internal/briefing"
	"github.com/ppiankov/finbrief/internal/llm"
)

var (
	briefSummarize bool
	briefMaxLines  int
	briefFormat    string
	briefTimeout   time.Duration
)

var briefingCmd = &cobra.Command{
	Use:   "briefing",
	Short: "Build today's briefing dataset from stored news, posts and rates",
	Long: `Briefing combines stored news articles and community posts from the
retention window with the latest exchange and interest rates.

With --summarize the dataset is sent to the configured LLM provider and the
generated briefing is printed instead.

Example:
  finbrief briefing
  finbrief briefing --format json
  finbrief briefing --summarize`,
	Args: cobra.NoArgs,
	RunE: runBriefing,
}

func init() {
	rootCmd.AddCommand(briefingCmd)

	briefingCmd.Flags().BoolVar(&briefSummarize, "summarize", false, "generate a written briefing with the LLM provider")
	briefingCmd.Flags().IntVar(&briefMaxLines, "max-lines", briefing.DefaultMaxLines, "maximum dataset lines rendered")
	briefingCmd.Flags().StringVar(&briefFormat, "format", formatText, "dataset output format: text or json")
	briefingCmd.Flags().DurationVar(&briefTimeout, "timeout", 3*time.Minute, "overall timeout")
}

func runBriefing(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	st, err := a.openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	ctx, cancel := context.WithTimeout(cmd.Context(), briefTimeout)
	defer cancel()

	ds, err := a.newAggregator(st).Build(ctx)
	if err != nil {
		return fmt.Errorf("build briefing: %w", err)
	}

	lines := ds.Lines(briefMaxLines, briefing.DefaultValueRunes)
	out := cmd.OutOrStdout()

	if !briefSummarize {
		if briefFormat == formatJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			enc.SetEscapeHTML(false)
			return enc.Encode(ds.Triples())
		}
		_, err := fmt.Fprintln(out, strings.Join(lines, "\n"))
		return err
	}

	if ds.Len() == 0 {
		_, err := fmt.Fprintln(out, lines[0])
		return err
	}

	provider, err := llm.NewProvider(llm.ConfigFromModel(a.cfg, a.logger))
	if err != nil {
		return err
	}
	if provider == nil {
		return fmt.Errorf("no LLM provider configured: set llm.provider in the config file")
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "⚙️  Summarizing %d items with %s...\n", ds.Len(), provider.Name())
	}

	resp, err := provider.Summarize(ctx, llm.SummarizeRequest{Lines: lines, Date: time.Now()})
	if err != nil {
		return fmt.Errorf("summarize: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ %s used %d tokens\n", resp.Model, resp.TokensUsed)
	}

	_, err = fmt.Fprintln(out, resp.Summary)
	return err
}
