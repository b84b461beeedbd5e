// Package service implements the finledger Connect services on top of the
// calculator core and a storage.Store.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"connectrpc.com/connect"
	"github.com/mmynk/finledger/internal/calculator"
	"github.com/mmynk/finledger/internal/middleware"
	"github.com/mmynk/finledger/internal/storage"
	ledgerv1 "github.com/mmynk/finledger/pkg/api/ledgerv1"
)

// defaultHorizonMonths is how far projections reach when no end date is given.
const defaultHorizonMonths = 12

var errUnauthenticated = errors.New("user not authenticated")

// Clock returns the current instant. Services default to time.Now.
type Clock func() time.Time

// requireUser returns the authenticated user ID placed in ctx by the auth
// interceptor.
func requireUser(ctx context.Context) (string, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, errUnauthenticated)
	}
	return userID, nil
}

// toConnectError logs err and maps it onto a Connect error code.
func toConnectError(op string, err error) error {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return err
	}

	code := connect.CodeInternal
	switch {
	case errors.Is(err, calculator.ErrValidation):
		code = connect.CodeInvalidArgument
	case errors.Is(err, calculator.ErrReference):
		code = connect.CodeFailedPrecondition
	case errors.Is(err, storage.ErrNotFound):
		code = connect.CodeNotFound
	case errors.Is(err, storage.ErrConflict):
		code = connect.CodeAlreadyExists
	}
	if code == connect.CodeInternal {
		slog.Error(op+" failed", "error", err)
	} else {
		slog.Warn(op+" rejected", "code", code.String(), "error", err)
	}
	return connect.NewError(code, err)
}

func invalidArgument(format string, args ...any) error {
	return connect.NewError(connect.CodeInvalidArgument, fmt.Errorf(format, args...))
}

// parseDate parses an optional "2006-01-02" field. Empty yields nil.
func parseDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(ledgerv1.DateLayout, value)
	if err != nil {
		return nil, invalidArgument("%s: %q is not a YYYY-MM-DD date", field, value)
	}
	return &t, nil
}

// horizon resolves the projection end date, defaulting to twelve months
// after now.
func horizon(upto string, now time.Time) (time.Time, error) {
	t, err := parseDate("upto", upto)
	if err != nil {
		return time.Time{}, err
	}
	if t == nil {
		return now.AddDate(0, defaultHorizonMonths, 0), nil
	}
	return *t, nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(ledgerv1.DateLayout)
}
