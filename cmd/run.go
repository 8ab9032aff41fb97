package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tectonhq/tecton/internal/achievements"
	"github.com/tectonhq/tecton/internal/app"
	"github.com/tectonhq/tecton/internal/catalog"
	"github.com/tectonhq/tecton/internal/progress"
	"github.com/tectonhq/tecton/internal/savedata"
	"github.com/tectonhq/tecton/internal/settings"
	"github.com/tectonhq/tecton/internal/store"
)

// runApp opens the store and save slots, builds dependencies, and
// launches the TUI.
func runApp(cmd *cobra.Command) error {
	cat, err := catalog.Load()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()
	eventRepo := st.EventRepo()

	slot := savedata.Open("tecton")
	settingsMgr := settings.NewManager(slot)
	achSvc := achievements.NewService(cat, slot,
		achievements.WithGate(settingsMgr),
		achievements.WithEvents(eventRepo),
	)
	prog := progress.NewStore(cat, slot, progress.WithAchievements(achSvc))

	return app.Run(app.Options{
		Catalog:      cat,
		Progress:     prog,
		Achievements: achSvc,
		Settings:     settingsMgr,
		EventRepo:    eventRepo,
	})
}
