package main

import (
	"fmt"
	"os"

	"github.com/scriptcst/parser/parser"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var outputFormat string
	var showTrace bool

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a source file and dump the resulting concrete syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			source, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read source file: %w", err)
			}

			var trace []string
			var opts []parser.Option
			if showTrace {
				opts = append(opts, parser.WithRecoveryTrace(&trace))
			}

			p := parser.New(source, opts...)
			root := p.ParseCompilationUnit()

			switch outputFormat {
			case "json":
				out, err := root.EncodeJSON(source)
				if err != nil {
					return fmt.Errorf("encode json: %w", err)
				}
				os.Stdout.Write(out)
				fmt.Println()
			case "text":
				fmt.Print(root.String())
			default:
				return fmt.Errorf("unknown format: %s (expected json or text)", outputFormat)
			}

			if showTrace {
				for _, line := range trace {
					fmt.Fprintln(os.Stderr, line)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (json, text)")
	cmd.Flags().BoolVar(&showTrace, "trace", false, "print the error-recovery trace to stderr")

	return cmd
}
