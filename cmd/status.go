package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/mspec-go/mspec/internal/db"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Summarize the registered specifications",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunStatus(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func RunStatus(w io.Writer) error {
	if _, err := os.Stat("mspecs"); os.IsNotExist(err) {
		return fmt.Errorf("run `mspec init` first")
	}

	sqlDB, err := db.Open("mspecs/mspec.db")
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer sqlDB.Close()

	specs, err := db.ListSpecs(sqlDB)
	if err != nil {
		return fmt.Errorf("querying specs: %w", err)
	}

	ok, bad := 0, 0
	files := map[string]bool{}
	for _, s := range specs {
		if s.Status == "ok" {
			ok++
		} else {
			bad++
		}
		files[s.FilePath] = true
	}

	fmt.Fprintf(w, "%d specs in %d files\n", len(specs), len(files))
	fmt.Fprintf(w, "ok: %d  error: %d\n", ok, bad)
	return nil
}
