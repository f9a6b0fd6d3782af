package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mspec-go/mspec/internal/db"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize mspec in the current directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunInit(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func RunInit(w io.Writer) error {
	hadDir := exists("mspecs")
	if err := os.MkdirAll("mspecs", 0o755); err != nil {
		return fmt.Errorf("creating mspecs directory: %w", err)
	}
	report(w, "mspecs/", hadDir)

	hadDB := exists("mspecs/mspec.db")
	sqlDB, err := db.Open("mspecs/mspec.db")
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	sqlDB.Close()
	report(w, "mspecs/mspec.db", hadDB)

	msgs, err := ensureGitignore()
	if err != nil {
		return fmt.Errorf("updating .gitignore: %w", err)
	}
	for _, msg := range msgs {
		fmt.Fprintln(w, msg)
	}
	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func report(w io.Writer, what string, had bool) {
	if had {
		fmt.Fprintln(w, what+" already exists")
	} else {
		fmt.Fprintln(w, what+" created")
	}
}

// ensureGitignore keeps the registry database out of version control and
// returns the messages describing what it did.
func ensureGitignore() ([]string, error) {
	const entry = "mspecs/mspec.db"

	data, err := os.ReadFile(".gitignore")
	if os.IsNotExist(err) {
		if werr := os.WriteFile(".gitignore", []byte(entry+"\n"), 0o644); werr != nil {
			return nil, werr
		}
		return []string{".gitignore created", entry + " added to .gitignore"}, nil
	}
	if err != nil {
		return nil, err
	}

	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == entry {
			return []string{entry + " already in .gitignore"}, nil
		}
	}

	content := strings.TrimRight(string(data), "\n")
	if content != "" {
		content += "\n"
	}
	content += entry + "\n"
	if err := os.WriteFile(".gitignore", []byte(content), 0o644); err != nil {
		return nil, err
	}
	return []string{entry + " added to .gitignore"}, nil
}
