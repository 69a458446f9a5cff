package main

import (
	"context"

	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// startTrace starts one New Relic transaction for a command run and stores it
// in the returned context, where nrpgx5 picks it up for every query.
//
// With no agent running (nrApp is nil) ctx is returned unchanged and the
// transaction is nil.
func startTrace(ctx context.Context, nrApp *newrelic.Application, command, runID string) (context.Context, *newrelic.Transaction) {
	if nrApp == nil {
		return ctx, nil
	}

	txn := nrApp.StartTransaction(command)
	txn.AddAttribute("command", command)
	txn.AddAttribute("run.id", runID)

	return newrelic.NewContext(ctx, txn), txn
}

// endTrace records err (if any) on txn and ends it. A nil txn is a no-op.
func endTrace(txn *newrelic.Transaction, err error) {
	if txn == nil {
		return
	}
	if err != nil {
		// Wrap keeps the error class and stack trace readable in New Relic.
		txn.NoticeError(nrpkgerrors.Wrap(err))
	}
	txn.End()
}
