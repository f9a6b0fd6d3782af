package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/mspec-go/mspec/gen"
	"github.com/mspec-go/mspec/internal/db"
	"github.com/mspec-go/mspec/spec"
	"github.com/spf13/cobra"
)

var genPackageFlag string

var genCmd = &cobra.Command{
	Use:   "gen <name>",
	Short: "Generate Go argument declarations for a registered specification",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunGen(cmd.OutOrStdout(), args[0], genPackageFlag)
	},
}

func init() {
	genCmd.Flags().StringVar(&genPackageFlag, "package", "main", "Package name for the generated file")
	rootCmd.AddCommand(genCmd)
}

func RunGen(w io.Writer, name, pkg string) error {
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

	fmt.Fprint(w, gen.File(pkg, name, parsed))
	return nil
}
