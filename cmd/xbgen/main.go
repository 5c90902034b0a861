// Command xbgen is the command-line front end for the schema compiler
// (§6.4): "generate" (also run when no subcommand is named) renders Go
// source from one or more schema documents, "sample-doc" renders one
// example instance document for a
// given element, and "fetch" downloads a schema and everything it
// transitively imports or includes.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	root := newRootCommand()
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "xbgen:", err)
		return classifyError(err)
	}
	return exitSuccess
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "xbgen",
		Short:         "xbgen compiles XSD, RELAX NG, and DTD schemas to Go source",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	generate := newGenerateCommand()
	root.Args = generate.Args
	root.RunE = generate.RunE
	root.Flags().AddFlagSet(generate.Flags())
	root.AddCommand(generate)
	root.AddCommand(newSampleDocCommand())
	root.AddCommand(newFetchCommand())
	root.AddCommand(newDocCommand())
	return root
}
