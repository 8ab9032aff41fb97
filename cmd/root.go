package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tectonhq/tecton/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "tecton",
	Short: "Learn the world's volcanoes through mini-games",
	Long:  "Tecton is a terminal app that teaches volcanoes through quizzes, word matching, tile puzzles, and layer building. Finish every game on a volcano to unlock the next one.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides TECTON_DB env var)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then TECTON_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
