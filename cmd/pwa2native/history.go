package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Ismailco/PWA2Native/internal/history"
	"github.com/Ismailco/PWA2Native/internal/paths"
)

func newHistoryCmd() *cobra.Command {
	var days int
	var clean bool
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List previous runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if days < 0 {
				return fmt.Errorf("--days must be zero or positive, got %d", days)
			}
			store, err := history.NewSQLiteStore(paths.HistoryPath())
			if err != nil {
				return err
			}
			defer store.Close()

			w := cmd.OutOrStdout()
			if clean {
				if days == 0 {
					return fmt.Errorf("--clean needs --days N to know what to keep")
				}
				n, err := store.Clean(days)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "Removed %d run(s) older than %d days.\n", n, days)
				return nil
			}

			runs, err := store.Runs(days)
			if err != nil {
				return err
			}
			history.Format(w, runs, time.Now())
			return nil
		},
	}
	cmd.Flags().IntVarP(&days, "days", "d", 0, "only runs from the last N days (0 = all)")
	cmd.Flags().BoolVar(&clean, "clean", false, "delete runs older than --days")
	return cmd
}
