package service

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"connectrpc.com/connect"
	"github.com/go-playground/validator/v10"

	"github.com/mmynk/debtledger/internal/directory"
	"github.com/mmynk/debtledger/internal/reconcile"
	"github.com/mmynk/debtledger/internal/storage"
)

var (
	ErrInvalidRequest       = errors.New("invalid request")
	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrAmountPrecision      = errors.New("amount has more decimal places than the currency allows")
	ErrCounterpartyRequired = errors.New("direct debts need a counterparty")
	ErrCounterpartyOnGroup  = errors.New("group debts take participants, not a counterparty")
	ErrParticipantsRequired = errors.New("group debts need at least one participant")
	ErrParticipantsOnDirect = errors.New("direct debts take a counterparty, not participants")
	ErrDuplicateParticipant = errors.New("participant listed more than once")
	ErrNegativeShare        = errors.New("custom split amounts cannot be negative")
	ErrMissingOwner         = errors.New("no owner in request context")

	// Edits rejected because they would contradict recorded payments.
	ErrTotalBelowPaid         = errors.New("total amount is below the amount already paid")
	ErrKindChangeWithPayments = errors.New("cannot switch between direct and group debt once payments exist")
	ErrCounterpartyChange     = errors.New("cannot change the counterparty once payments exist")
	ErrPaidParticipantRemoved = errors.New("cannot remove a participant who has made payments")
)

// newValidator returns a validator that reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// validateRequest checks msg's struct tags and folds every failure into one error.
func validateRequest(v *validator.Validate, msg any) error {
	err := v.Struct(msg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s: failed %s", fe.Namespace(), fe.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidRequest, strings.Join(msgs, "; "))
}

// toConnectError maps domain errors to Connect codes. Unexpected errors are
// logged here and returned as CodeInternal.
func toConnectError(op string, err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, storage.ErrConflict):
		return connect.NewError(connect.CodeAborted, err)
	case errors.Is(err, ErrMissingOwner):
		return connect.NewError(connect.CodeUnauthenticated, err)
	case isFailedPrecondition(err):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case isInvalidArgument(err):
		return connect.NewError(connect.CodeInvalidArgument, err)
	default:
		slog.Error(op+" failed", "error", err)
		return connect.NewError(connect.CodeInternal, err)
	}
}

func isFailedPrecondition(err error) bool {
	for _, target := range []error{
		ErrTotalBelowPaid,
		ErrKindChangeWithPayments,
		ErrCounterpartyChange,
		ErrPaidParticipantRemoved,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func isInvalidArgument(err error) bool {
	for _, target := range []error{
		ErrInvalidRequest,
		ErrInvalidAmount,
		ErrAmountPrecision,
		ErrCounterpartyRequired,
		ErrCounterpartyOnGroup,
		ErrParticipantsRequired,
		ErrParticipantsOnDirect,
		ErrDuplicateParticipant,
		ErrNegativeShare,
		reconcile.ErrNonPositiveAmount,
		reconcile.ErrOverpayment,
		reconcile.ErrMissingParticipant,
		reconcile.ErrUnknownSplit,
		reconcile.ErrWrongCounterparty,
		reconcile.ErrDebtMismatch,
		directory.ErrNameRequired,
		directory.ErrUnknownParticipant,
		directory.ErrEmptyRef,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// rejectionReason labels a payment rejection for metrics.
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, reconcile.ErrNonPositiveAmount), errors.Is(err, ErrInvalidAmount):
		return "non_positive"
	case errors.Is(err, ErrAmountPrecision):
		return "precision"
	case errors.Is(err, reconcile.ErrOverpayment):
		return "overpayment"
	case errors.Is(err, reconcile.ErrMissingParticipant):
		return "missing_participant"
	case errors.Is(err, reconcile.ErrUnknownSplit):
		return "unknown_split"
	case errors.Is(err, reconcile.ErrWrongCounterparty):
		return "wrong_counterparty"
	default:
		return "other"
	}
}
