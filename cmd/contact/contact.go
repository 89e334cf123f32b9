package contact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Alijeyrad/portfolio_backend/config"
	"github.com/Alijeyrad/portfolio_backend/internal/service/contact"
	"github.com/Alijeyrad/portfolio_backend/pkg/email"
	"github.com/Alijeyrad/portfolio_backend/pkg/logs"
)

func NewContactCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Contact form commands",
	}

	cmd.AddCommand(NewSendCommand())

	return cmd
}

func NewSendCommand() *cobra.Command {
	var (
		form        contact.Form
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Validate a message and send it through the configured relay",
		Example: `  portfolio contact send --name "Ada" --email ada@example.com \
    --subject "Hello" --message "I enjoyed your talk on compilers."
  portfolio contact send --interactive`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, err := cmd.Root().PersistentFlags().GetString("config")
			if err != nil {
				return err
			}
			cfg, err := config.ReadConfig(cfgPath)
			if err != nil {
				return err
			}

			logger, closeLogs := logs.New(cfg)
			defer closeLogs()
			slog.SetDefault(logger)

			mail, err := email.NewFromCentral(cfg.Email)
			if err != nil {
				return err
			}
			relay, err := contact.NewRelay(cfg, mail, logger)
			if err != nil {
				return err
			}

			if interactive {
				form, err = promptForm(form)
				if err != nil {
					return err
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			svc := contact.New(relay, nil, cfg, logger)
			return send(ctx, svc, newTerminalUI(cmd.OutOrStdout(), form))
		},
	}

	f := cmd.Flags()
	f.StringVar(&form.Name, "name", "", "sender name")
	f.StringVar(&form.Email, "email", "", "sender email, used as Reply-To")
	f.StringVar(&form.Subject, "subject", "", "message subject")
	f.StringVar(&form.Message, "message", "", "message body")
	f.BoolVarP(&interactive, "interactive", "i", false, "prompt for each field")

	return cmd
}

var errInvalidForm = errors.New("the form has invalid fields")

func send(ctx context.Context, svc contact.Service, ui *terminalUI) error {
	outcome, err := svc.NewWorkflow(ui).HandleSubmit(ctx)
	if err != nil {
		var fieldErrs contact.FieldErrors
		if errors.As(err, &fieldErrs) {
			return errInvalidForm
		}
		return err
	}
	if !outcome.Succeeded() {
		return fmt.Errorf("send failed: %w", outcome.Err)
	}
	return nil
}
