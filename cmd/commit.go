package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/NahomAnteneh/wit/core"
	"github.com/NahomAnteneh/wit/internal/commitengine"
)

var commitCmd = &cobra.Command{
	Use:   "commit <message>...",
	Short: "Record the staging area as a new commit",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		repo, err := core.Locate(wd)
		if err != nil {
			return err
		}
		message := strings.Join(args, " ")

		id, err := commitengine.Commit(repo, message, "", time.Now())
		if err != nil {
			return err
		}

		fmt.Println(color.YellowString(id[:7]) + " " + strings.SplitN(message, "\n", 2)[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(commitCmd)
}
