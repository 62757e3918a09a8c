package cmd

import (
	"fmt"
	"strings"

	"github.com/cwbudde/pcomb/internal/demo"
	"github.com/cwbudde/pcomb/pkg/perr"
	"github.com/spf13/cobra"
)

var (
	parseEvalExpr string
	recoverMode   bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse input as a bracketed identifier list",
	Long: `Parse input against internal/demo's bracketed-identifier-list grammar
and print the resulting list, or the parse error.

With --recover, a malformed item is replaced by a placeholder instead of
aborting the whole parse, and every recovered error is reported together
at the end.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseEvalExpr, "eval", "e", "", "parse inline text instead of reading from a file")
	parseCmd.Flags().BoolVar(&recoverMode, "recover", false, "tolerate malformed items instead of failing the whole parse")
}

func runParse(cmd *cobra.Command, args []string) error {
	input, name, err := readInput(parseEvalExpr, args)
	if err != nil {
		return err
	}
	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		fmt.Printf("Parsing: %s\n", name)
	}

	cur := demo.NewCursor(input)

	if !recoverMode {
		r := demo.IdentList()(cur)
		if !r.Ok {
			return formatParseError(r.Err)
		}
		fmt.Println(formatList(r.Value))
		return nil
	}

	sink := perr.NewSink()
	r := demo.IdentListRecovering(sink)(cur)
	var rootErr error
	if !r.Ok {
		rootErr = r.Err
	}
	// AsError folds every recovered error (sink) and the root failure (if
	// the parse also failed past the point recovery could help) into one
	// multierror.Error, the same join the sink itself uses internally
	// (see perr.Sink.AsError).
	if combined := sink.AsError(rootErr); combined != nil {
		return combined
	}
	fmt.Println(formatList(r.Value))
	return nil
}

func formatList(items []string) string {
	return "[" + strings.Join(items, ", ") + "]"
}

func formatParseError(err *perr.ParseError) error {
	rec := err.MarshalRecord("")
	return fmt.Errorf("%s: %s at %d:%d", rec.Kind, rec.Primary.Message, rec.Primary.Line, rec.Primary.Column)
}
