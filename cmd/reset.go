package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tectonhq/tecton/internal/achievements"
	"github.com/tectonhq/tecton/internal/catalog"
	"github.com/tectonhq/tecton/internal/progress"
	"github.com/tectonhq/tecton/internal/savedata"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset all progress, achievements, and settings state",
	Long:  "Locks every volcano except the first, clears completions, and forgets which achievements were notified. The play history in the event log is kept.",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes && !confirmReset() {
			fmt.Println("Aborted.")
			return nil
		}

		cat, err := catalog.Load()
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}

		slot := savedata.Open("tecton")
		achSvc := achievements.NewService(cat, slot)
		prog := progress.NewStore(cat, slot, progress.WithAchievements(achSvc))

		prog.ResetAll()
		prog.Flush()

		fmt.Println("Progress reset. Only the first volcano is open.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
}

// confirmReset asks on stdin; anything but y/yes aborts.
func confirmReset() bool {
	fmt.Print("This wipes all progress and achievements. Continue? [y/N] ")
	sc := bufio.NewScanner(os.Stdin)
	if !sc.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(sc.Text()))
	return answer == "y" || answer == "yes"
}
