package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mspec-go/mspec/internal/db"
	"github.com/mspec-go/mspec/internal/ui"
	"github.com/spf13/cobra"
)

var listStatusFlag string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all registered specifications",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunList(cmd.OutOrStdout(), listStatusFlag)
	},
}

func init() {
	listCmd.Flags().StringVar(&listStatusFlag, "status", "", "Filter by status (ok or error)")
	rootCmd.AddCommand(listCmd)
}

func RunList(w io.Writer, statusFilter string) error {
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

	var results []db.Spec
	for _, s := range specs {
		if statusFilter != "" && s.Status != statusFilter {
			continue
		}
		results = append(results, s)
	}
	if len(results) == 0 {
		return nil
	}

	nameWidth, fileWidth := 0, 0
	for _, s := range results {
		file := filepath.Base(s.FilePath)
		if len(s.Name) > nameWidth {
			nameWidth = len(s.Name)
		}
		if len(file) > fileWidth {
			fileWidth = len(file)
		}
	}

	for _, s := range results {
		ui.ListRow(w, s.Name, filepath.Base(s.FilePath), s.Status, nameWidth, fileWidth)
	}
	return nil
}
