package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tectonhq/tecton/internal/catalog"
	"github.com/tectonhq/tecton/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show play statistics from the event log",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()
		repo := st.EventRepo()

		counts, total, err := repo.PlayCounts(ctx)
		if err != nil {
			return fmt.Errorf("query play counts: %w", err)
		}

		fmt.Println("Completed plays")
		for _, t := range catalog.AllGameTypes() {
			fmt.Printf("  %s %-16s %d\n", t.Icon(), t.DisplayName(), counts[string(t)])
		}
		fmt.Printf("  %-19s %d\n", "Total", total)

		achievements, err := repo.QueryAchievements(ctx, store.QueryOpts{})
		if err != nil {
			return fmt.Errorf("query achievements: %w", err)
		}
		fmt.Printf("\nAchievements surfaced: %d\n", len(achievements))

		plays, err := repo.QueryPlays(ctx, store.QueryOpts{Limit: 1})
		if err != nil {
			return fmt.Errorf("query plays: %w", err)
		}
		if len(plays) > 0 {
			fmt.Printf("Last played: %s\n", plays[0].Timestamp.Format("Jan 02, 2006"))
		}

		return nil
	},
}
