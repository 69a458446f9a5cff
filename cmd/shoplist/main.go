// Command shoplist manages the shopping_list table and runs its reports.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/deppfellow/shopping-list/internal/app"
	"github.com/deppfellow/shopping-list/internal/config"
	"github.com/deppfellow/shopping-list/internal/errs"
	"github.com/deppfellow/shopping-list/internal/logger"
	"github.com/deppfellow/shopping-list/internal/repository"
	"github.com/deppfellow/shopping-list/internal/service"
	"github.com/google/uuid"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// runtime is built once per invocation, before any subcommand runs.
type runtime struct {
	app      *app.App
	services *service.Services
	log      zerolog.Logger
	txn      *newrelic.Transaction
}

func (r *runtime) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	loggerService := logger.NewLoggerService(cfg.Observability)
	r.log = logger.NewLoggerWithService(cfg.Observability, loggerService).
		With().
		Str("run_id", runID).
		Str("command", cmd.CommandPath()).
		Logger()

	a, err := app.New(cfg, &r.log, loggerService)
	if err != nil {
		loggerService.Shutdown()
		return err
	}

	r.app = a
	r.services = service.NewServices(a, repository.NewRepositories())

	ctx, txn := startTrace(cmd.Context(), loggerService.GetApplication(), cmd.CommandPath(), runID)
	cmd.SetContext(ctx)
	r.txn = txn
	return nil
}

// finish ends the run's transaction and releases the app. It is safe to call twice.
func (r *runtime) finish(err error) error {
	endTrace(r.txn, err)
	r.txn = nil

	if r.app == nil {
		return nil
	}
	a := r.app
	r.app = nil
	return a.Shutdown()
}

func (r *runtime) teardown(*cobra.Command, []string) error {
	return r.finish(nil)
}

func newRootCmd(r *runtime) *cobra.Command {
	root := &cobra.Command{
		Use:                "shoplist",
		Short:              "Manage shopping list items and run reports",
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  r.setup,
		PersistentPostRunE: r.teardown,
	}

	root.AddCommand(
		newListCmd(r),
		newGetCmd(r),
		newAddCmd(r),
		newUpdateCmd(r),
		newDeleteCmd(r),
		newReportCmd(r),
	)
	return root
}

// genericFailure is shown for errors whose message is not meant for the user.
const genericFailure = "command failed"

// userMessage returns the message to show for err. Only an *errs.Error with
// Override set carries a message written for the user.
func userMessage(err error) string {
	var appErr *errs.Error
	if errors.As(err, &appErr) && appErr.Override {
		return appErr.Message
	}
	return genericFailure
}

// logFailure logs err once, with its code and field errors when it is an *errs.Error.
func logFailure(log *zerolog.Logger, err error) {
	event := log.Error()

	var appErr *errs.Error
	if errors.As(err, &appErr) {
		event = event.Str("error_code", appErr.Code).Interface("errors", appErr.Errors)
		if !appErr.Override {
			event = event.Err(err)
		}
	} else {
		event = event.Err(err)
	}

	event.Msg(userMessage(err))
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := &runtime{log: zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()}
	err := newRootCmd(r).ExecuteContext(ctx)
	if err == nil {
		return
	}

	// PostRun is skipped when RunE fails.
	_ = r.finish(err)

	logFailure(&r.log, err)
	stop()
	os.Exit(1)
}
