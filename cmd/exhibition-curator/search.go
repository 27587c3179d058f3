package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/exhibition-curator/internal/pager"
	"github.com/pdiddy/exhibition-curator/internal/search"
	"github.com/pdiddy/exhibition-curator/internal/session"
	"github.com/pdiddy/exhibition-curator/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search museum collections for artworks",
	Long: `Search queries every enabled collection API for artworks whose title
contains the query, merges the results, sorts them, and prints one page.

Sort modes: title (alphabetical), newest, oldest. Artworks without a
usable date are listed last under newest and oldest.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("query", "", "free-text query (alternative to positional args)")
	searchCmd.Flags().String("sort", "title", "sort order: title, newest, oldest")
	searchCmd.Flags().Int("page", 1, "page number to print")
	searchCmd.Flags().Int("page-size", 0, "results per page (default from config, 10)")
	searchCmd.Flags().Bool("partial", false, "keep results from healthy sources when one fails")
	searchCmd.Flags().Bool("json", false, "output the page as JSON")
	searchCmd.Flags().Bool("yaml", false, "output the page as YAML")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query, _ := cmd.Flags().GetString("query")
	if query == "" {
		query = strings.Join(args, " ")
	}
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("provide a query, e.g. exhibition-curator search sunflowers")
	}

	sortFlag, _ := cmd.Flags().GetString("sort")
	mode, err := types.ParseSortMode(sortFlag)
	if err != nil {
		return err
	}
	page, _ := cmd.Flags().GetInt("page")
	asJSON, _ := cmd.Flags().GetBool("json")
	asYAML, _ := cmd.Flags().GetBool("yaml")
	if asJSON && asYAML {
		return fmt.Errorf("--json and --yaml are mutually exclusive")
	}

	cfg := appConfig.Search
	if n, _ := cmd.Flags().GetInt("page-size"); n > 0 {
		cfg.PageSize = n
	}
	if partial, _ := cmd.Flags().GetBool("partial"); partial {
		cfg.PartialResults = true
	}

	sess := newSession(cfg)
	sess.SetSort(mode)
	snap, _ := sess.Search(cmd.Context(), query)
	if snap.Error != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), snap.Error)
		return fmt.Errorf("search failed (sources: %s)", strings.Join(snap.FailedSources, ", "))
	}
	p := sess.GoTo(page)

	out := cmd.OutOrStdout()
	switch {
	case asJSON:
		return search.FormatJSON(p.Visible, out)
	case asYAML:
		return search.FormatYAML(p.Visible, out)
	default:
		renderPage(out, p, snap.FailedSources)
		return nil
	}
}

// newSession wires the configured backends into a session.
func newSession(cfg types.SearchConfig) *session.Session {
	return session.New(search.NewBackends(cfg), session.Options{
		Policy:   search.PolicyFor(cfg),
		PageSize: cfg.PageSize,
		Logger:   logger,
	})
}

// renderPage prints a result page with its position and, under the
// partial policy, which sources are missing.
func renderPage(w io.Writer, p pager.Page, failed []string) {
	if len(failed) > 0 {
		fmt.Fprintf(w, "warning: results incomplete, failed sources: %s\n", strings.Join(failed, ", "))
	}
	search.FormatTable(p.Visible, p.Offset(), w)
	if p.Total > p.Size {
		fmt.Fprintf(w, "\nPage %d of %d (%d results)\n", p.Number, p.TotalPages, p.Total)
	} else if p.Total > 0 {
		fmt.Fprintf(w, "\n%d results\n", p.Total)
	}
}
