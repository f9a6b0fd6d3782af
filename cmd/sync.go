package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/mspec-go/mspec/internal/db"
	"github.com/mspec-go/mspec/internal/ui"
	"github.com/mspec-go/mspec/spec"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Scan mspecs/ for .mspec files and register their specifications",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunSync(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func RunSync(w io.Writer) error {
	if _, err := os.Stat("mspecs"); os.IsNotExist(err) {
		return fmt.Errorf("run `mspec init` first")
	}

	sqlDB, err := db.Open("mspecs/mspec.db")
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer sqlDB.Close()

	matches, err := filepath.Glob("mspecs/*.mspec")
	if err != nil {
		return fmt.Errorf("scanning mspecs/: %w", err)
	}
	sort.Strings(matches)

	specCount := 0
	for _, path := range matches {
		fileID, _, err := db.UpsertFile(sqlDB, path)
		if err != nil {
			return fmt.Errorf("registering %s: %w", path, err)
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		defs, defErrs := parseDefs(string(content))
		for _, derr := range defErrs {
			fmt.Fprintf(w, "%s: %v\n", path, derr)
		}

		for _, d := range defs {
			status, errMsg := "ok", ""
			if _, err := spec.Parse(d.source); err != nil {
				status, errMsg = "error", err.Error()
			}
			isNew, err := db.UpsertSpec(sqlDB, fileID, d.name, d.source, status, errMsg)
			if err != nil {
				return fmt.Errorf("registering spec %s: %w", d.name, err)
			}
			switch {
			case status == "error":
				ui.ErrLine(w, d.name, errMsg)
			case isNew:
				ui.NewLine(w, d.name, path)
			default:
				ui.TrkLine(w, d.name, path)
			}
			specCount++
		}
	}

	ui.SummaryLine(w, specCount, len(matches))
	return nil
}
