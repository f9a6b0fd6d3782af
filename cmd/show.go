package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/mspec-go/mspec/internal/db"
	"github.com/mspec-go/mspec/internal/ui"
	"github.com/mspec-go/mspec/spec"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a registered specification and its tree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunShow(cmd.OutOrStdout(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func RunShow(w io.Writer, name string) error {
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

	ui.ShowHeader(w, s.Name, s.FilePath, s.Status)
	fmt.Fprintln(w)
	fmt.Fprintln(w, s.Source)

	if s.Status != "ok" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, s.Error)
		return nil
	}

	parsed, err := spec.Parse(s.Source)
	if err != nil {
		return fmt.Errorf("parsing %q: %w", name, err)
	}
	fmt.Fprintln(w)
	fmt.Fprint(w, parsed.Dump())
	return nil
}
