package cmd

import (
	"fmt"

	"github.com/cwbudde/pcomb/internal/demo"
	"github.com/spf13/cobra"
)

var (
	lexEvalExpr string
	showPos     bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize input with the demo scanner and print the resulting tokens",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&lexEvalExpr, "eval", "e", "", "tokenize inline text instead of reading from a file")
	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show each token's line:column")
}

func runLex(cmd *cobra.Command, args []string) error {
	input, name, err := readInput(lexEvalExpr, args)
	if err != nil {
		return err
	}
	verbose, _ := cmd.Flags().GetBool("verbose")

	if verbose {
		fmt.Printf("Tokenizing: %s\n", name)
		fmt.Printf("Input length: %d bytes\n", len(input))
		fmt.Println("---")
	}

	cur := demo.NewCursor(input)
	count := 0
	for {
		tok, sp, next, tokErr := cur.Next()
		if tokErr != nil {
			fmt.Printf("error: %s\n", tokErr)
			break
		}
		count++
		if showPos {
			fmt.Printf("%-12s %q @%s\n", tok, cur.SourceSlice(sp), sp.Start)
		} else {
			fmt.Printf("%-12s %q\n", tok, cur.SourceSlice(sp))
		}
		cur = next
		if _, _, ok := cur.Peek(); !ok {
			break
		}
	}

	if verbose {
		fmt.Println("---")
		fmt.Printf("Total tokens: %d\n", count)
	}
	return nil
}
