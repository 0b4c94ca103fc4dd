package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	cartCmd "github.com/jesuisfatih/eagledtfprint-sub004/cart/cmd"
	"github.com/jesuisfatih/eagledtfprint-sub004/internal/constants"
	"github.com/jesuisfatih/eagledtfprint-sub004/internal/log"
)

func Start() {
	logger := log.Get("/var/log/"+constants.AppCartService+".log", "").
		With().
		Str(log.KeyAppName, constants.AppCartService).
		Str(log.KeyTag, "main Start").
		Logger()

	logger.Info().Msg("adding listener for SIGINT and SIGTERM")
	c, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger.Info().Msg("added listener for SIGINT and SIGTERM")

	c = logger.WithContext(c)

	rootCmd := &cobra.Command{Use: "cart-engine"}
	rootCmd.AddCommand(&cobra.Command{
		Use:   "cart",
		Short: "Run cart tracking service",
		Run: func(cmd *cobra.Command, args []string) {
			cartCmd.RunCartService(cmd.Context())
		},
	})
	if err := rootCmd.ExecuteContext(c); err != nil {
		logger.Fatal().Err(err).Msgf("error when executing command=%s", err.Error())
	}
}
