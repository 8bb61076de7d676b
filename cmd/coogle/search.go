package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cloudlet-dev/coogle"
	"github.com/cloudlet-dev/coogle/pkg/alias"
)

var (
	searchName          string
	searchPrefilter     bool
	searchDB            string
	searchIncludeHidden bool
	searchMaxFileSize   int64
	searchWorkers       int
	searchAliasFile     string
	searchExclude       []string
	searchFormat        string
	searchColor         string
)

var searchCmd = &cobra.Command{
	Use:   "search <target> <signature>",
	Short: "Search a source tree for matching declarations",
	Long: `Search a directory (or, with --db, a prebuilt index) for function
declarations whose signature matches the query.

Examples:
  coogle search ./src "int(int, int)"
  coogle search ./src "void(*, size_t)" --name buf
  coogle search . "std::string(int)" --format json
  coogle search ignored "int(int)" --db coogle.db`,
	Args: cobra.ExactArgs(2),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchName, "name", "", "Fuzzy filter on function names")
	searchCmd.Flags().BoolVar(&searchPrefilter, "prefilter", false, "Skip files lacking the query's type keywords")
	searchCmd.Flags().StringVar(&searchDB, "db", "", "Search a prebuilt index database instead of walking sources")
	searchCmd.Flags().BoolVar(&searchIncludeHidden, "include-hidden", false, "Include hidden files and directories")
	searchCmd.Flags().Int64Var(&searchMaxFileSize, "max-file-size", 10*1024*1024, "Maximum file size to inspect (bytes)")
	searchCmd.Flags().IntVar(&searchWorkers, "workers", 0, "Matching parallelism (0 = NumCPU)")
	searchCmd.Flags().StringVar(&searchAliasFile, "aliases", "", "Path to extra template alias rules (YAML)")
	searchCmd.Flags().StringSliceVar(&searchExclude, "exclude", nil, "Glob patterns for paths to skip")
	searchCmd.Flags().StringVar(&searchFormat, "format", "human", "Output format: human, json")
	searchCmd.Flags().StringVar(&searchColor, "color", "auto", "Color output: auto, always, never")
}

func runSearch(cmd *cobra.Command, args []string) error {
	target, query := args[0], args[1]

	opts := []coogle.Option{
		coogle.WithMaxFileSize(searchMaxFileSize),
		coogle.WithWorkers(searchWorkers),
	}
	if searchName != "" {
		opts = append(opts, coogle.WithName(searchName))
	}
	if searchPrefilter {
		opts = append(opts, coogle.WithPrefilter())
	}
	if searchIncludeHidden {
		opts = append(opts, coogle.WithHidden())
	}
	if len(searchExclude) > 0 {
		opts = append(opts, coogle.WithExclude(searchExclude))
	}
	if searchAliasFile != "" {
		extra, err := loadAliasFile(searchAliasFile)
		if err != nil {
			return fmt.Errorf("loading aliases: %w", err)
		}
		opts = append(opts, coogle.WithAliases(append(coogle.BuiltinAliases(), extra...)))
	}

	searcher, err := coogle.NewSearcher(query, opts...)
	if err != nil {
		return fmt.Errorf("invalid query: %w", err)
	}

	ctx := context.Background()

	var matches []coogle.Match
	if searchDB != "" {
		matches, err = searcher.SearchIndex(ctx, searchDB)
	} else {
		if _, statErr := os.Stat(target); statErr != nil {
			return fmt.Errorf("target does not exist: %s", target)
		}
		matches, err = searcher.Search(ctx, target)
	}
	if err != nil {
		return fmt.Errorf("searching: %w", err)
	}

	switch searchFormat {
	case "json":
		return outputJSON(cmd, matches)
	case "human":
		return outputHuman(cmd, query, matches, searchColor)
	default:
		return fmt.Errorf("unknown output format: %s", searchFormat)
	}
}

func loadAliasFile(path string) ([]coogle.AliasRule, error) {
	return alias.LoadFile(path)
}
