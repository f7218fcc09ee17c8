package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tacogips/pfegen/internal/debug"
)

// Global flags
var (
	globalNoColor bool
	globalQuiet   bool
	globalDebug   bool
)

// rootCmd generates a new element when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "pfegen",
	Short: "Web component scaffolding tool",
	Long: `pfegen scaffolds a new web component from the built-in templates.

It asks for the element name, author, style choice, description,
attributes and slots, then writes the element directory and runs
the install and build commands inside it.

The element is created either inside the core library (--type pfelement)
or as an independent package (--type standalone, the default).

Examples:
  pfegen
  pfegen --type pfelement --dir ./elements
  pfegen --answers answers.yaml --skip-install
  pfegen --answers answers.yaml --dry-run`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		debug.SetDebug(globalDebug)
		debug.SetNoColor(globalNoColor)
		if globalDebug {
			debug.StartSession()
		}
	},
	RunE: runGenerate,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&globalNoColor, FlagNoColor, false, DescNoColor)
	rootCmd.PersistentFlags().BoolVarP(&globalQuiet, FlagQuiet, "q", false, DescQuiet)
	rootCmd.PersistentFlags().BoolVar(&globalDebug, FlagDebug, false, DescDebug)

	rootCmd.AddCommand(checkTemplatesCmd)
	rootCmd.AddCommand(versionCmd)
}

// printError prints an error message to stderr
func printError(err error) {
	if globalQuiet {
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}
