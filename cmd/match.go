package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/mspec-go/mspec/internal/db"
	"github.com/mspec-go/mspec/internal/ui"
	"github.com/mspec-go/mspec/match"
	"github.com/mspec-go/mspec/spec"
	"github.com/mspec-go/mspec/token"
	"github.com/spf13/cobra"
)

var matchCmd = &cobra.Command{
	Use:   "match <name> <input>",
	Short: "Match input tokens against a registered specification",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunMatch(cmd.OutOrStdout(), args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)
}

func RunMatch(w io.Writer, name, input string) error {
	if _, err := os.Stat("mspecs"); os.IsNotExist(err) {
		return fmt.Errorf("run `mspec init` first")
	}

	sqlDB, err := db.Open("mspecs/mspec.db")
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer sqlDB.Close()

	s, err := db.LookupSpec(sqlDB, name)
	if err != nil {
		return fmt.Errorf("specification %q not found", name)
	}
	if s.Status != "ok" {
		return fmt.Errorf("specification %q is invalid: %s", name, s.Error)
	}

	parsed, err := spec.Parse(s.Source)
	if err != nil {
		return fmt.Errorf("parsing %q: %w", name, err)
	}

	trees, err := token.Scan(input)
	if err != nil {
		se := err.(*token.ScanError)
		ui.Diagnostic(w, input, se.Pos.Line, se.Pos.Col, se.Message)
		return nil
	}

	args, err := match.Match(parsed, trees)
	if err != nil {
		// A failed match is a per-invocation diagnostic, not a
		// command failure.
		me := err.(*match.Error)
		ui.Diagnostic(w, input, me.Pos.Line, me.Pos.Col, me.Message)
		return nil
	}

	names := args.Names()
	if len(names) == 0 {
		fmt.Fprintln(w, "matched")
		return nil
	}
	for _, n := range names {
		v, _ := args.Get(n)
		ui.Bound(w, n, match.Render(v))
	}
	return nil
}
