package cmd

import (
	"github.com/spf13/cobra"

	"github.com/quizforge/quizforge/internal/quiz"
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Print the built-in sample quiz as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeJSON(cmd.OutOrStdout(), quiz.Sample())
	},
}
