package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	contactcmd "github.com/Alijeyrad/portfolio_backend/cmd/contact"
	httpcmd "github.com/Alijeyrad/portfolio_backend/cmd/http"
	systemcmd "github.com/Alijeyrad/portfolio_backend/cmd/system"
	"github.com/Alijeyrad/portfolio_backend/pkg/logs"
)

var (
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Contact form backend for a personal portfolio site.",
	Long: `portfolio validates contact form submissions and relays them to the site
owner through EmailJS or SMTP. It serves the form API over HTTP and can send a
message from the terminal.`,
	SilenceUsage: true,
	// Commands replace this with the configured logger once config is read.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		slog.SetDefault(logs.Default())
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global config flag, available for all commands.
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file, or a directory holding config.yaml")

	rootCmd.AddCommand(systemcmd.NewSystemCommand())
	rootCmd.AddCommand(httpcmd.NewHTTPCommand())
	rootCmd.AddCommand(contactcmd.NewContactCommand())
}
