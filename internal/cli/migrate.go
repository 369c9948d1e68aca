package cli

import (
	"github.com/spf13/cobra"
)

func newMigrateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, closeDB, err := a.openStore()
			if err != nil {
				return err
			}
			closeDB()

			a.log.Info("schema migrated")
			return nil
		},
	}
}
