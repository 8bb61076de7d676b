package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cloudlet-dev/coogle"
)

var (
	indexDB            string
	indexIncludeHidden bool
	indexMaxFileSize   int64
	indexWorkers       int
)

var indexCmd = &cobra.Command{
	Use:   "index <target>",
	Short: "Build or update a declaration index",
	Long: `Walk a source tree once and persist every extracted declaration into a
database, so later searches with --db skip the walk. Files unchanged since
the previous run are not re-read.`,
	Args: cobra.ExactArgs(1),
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().StringVar(&indexDB, "db", "coogle.db", "Index database path")
	indexCmd.Flags().BoolVar(&indexIncludeHidden, "include-hidden", false, "Include hidden files and directories")
	indexCmd.Flags().Int64Var(&indexMaxFileSize, "max-file-size", 10*1024*1024, "Maximum file size to inspect (bytes)")
	indexCmd.Flags().IntVar(&indexWorkers, "workers", 0, "Extraction parallelism (0 = NumCPU)")
}

func runIndex(cmd *cobra.Command, args []string) error {
	target := args[0]

	if _, err := os.Stat(target); err != nil {
		return fmt.Errorf("target does not exist: %s", target)
	}

	opts := []coogle.Option{
		coogle.WithMaxFileSize(indexMaxFileSize),
		coogle.WithWorkers(indexWorkers),
	}
	if indexIncludeHidden {
		opts = append(opts, coogle.WithHidden())
	}

	stats, err := coogle.Index(context.Background(), target, indexDB, opts...)
	if err != nil {
		return fmt.Errorf("indexing: %w", err)
	}

	out := cmd.OutOrStdout()
	if stats.Unchanged > 0 {
		fmt.Fprintf(out, "Indexed %d declarations in %d files (%d unchanged)\n",
			stats.Declarations, stats.Files, stats.Unchanged)
	} else {
		fmt.Fprintf(out, "Indexed %d declarations in %d files\n", stats.Declarations, stats.Files)
	}
	fmt.Fprintf(out, "Index stored in: %s\n", indexDB)
	return nil
}
