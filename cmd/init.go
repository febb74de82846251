package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/NahomAnteneh/wit/core"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Create a new, empty wit repository",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) > 0 {
			dir = args[0]
		}
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return fmt.Errorf("failed to resolve path: %w", err)
		}

		repo, err := core.Init(absDir)
		if err != nil {
			return err
		}

		fmt.Println(color.GreenString("Initialized") + " empty wit repository in " + repo.WitDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
