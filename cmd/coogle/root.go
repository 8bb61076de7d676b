package main

import (
	"github.com/spf13/cobra"
)

var (
	verbose bool
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "coogle",
	Short: "Coogle - signature search for C/C++ sources",
	Long: `Coogle finds function declarations by their type signature, the way Hoogle
does for Haskell. Give it a function type like "int(int, char *)" and a
source tree, and it reports every declaration whose signature matches after
normalizing qualifiers, whitespace and common template aliases.

A '*' in an argument position matches any type.`,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (errors only)")

	// Add subcommands
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
