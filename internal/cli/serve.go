package cli

import (
	"os"
	"os/signal"
	"syscall"

	api "taskdeck/cmd/api"

	"github.com/spf13/cobra"
)

func newServeCommand(a *app) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API until SIGINT or SIGTERM",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port == "" {
				port = a.cfg.Port
			}

			db, closeDB, err := a.openStore()
			if err != nil {
				return err
			}
			defer closeDB()

			uc := a.newUsecases(db)
			handler := api.NewHandler(uc.boards, uc.columns, uc.cards, uc.labels, a.cfg, a.log.Named("http"))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return handler.Start(ctx, ":"+port)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Listen port (default $PORT or 8080)")
	return cmd
}
