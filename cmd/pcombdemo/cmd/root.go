package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pcombdemo",
	Short: "Lex and parse the pcomb worked-example grammar",
	Long: `pcombdemo drives internal/demo's bracketed-identifier-list grammar
from the command line, for poking at pkg/combinator without writing Go.

Examples:
  pcombdemo lex -e "[a, b, c]"
  pcombdemo parse -e "[a, b,]"
  pcombdemo parse --recover -e "[a, , b]"`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}

func readInput(evalExpr string, args []string) (input, name string, err error) {
	if evalExpr != "" {
		return evalExpr, "<eval>", nil
	}
	if len(args) == 1 {
		content, readErr := os.ReadFile(args[0])
		if readErr != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], readErr)
		}
		return string(content), args[0], nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e for inline code")
}
