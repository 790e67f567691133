package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/mmynk/debtledger/internal/calculator"
	"github.com/mmynk/debtledger/internal/clock"
	"github.com/mmynk/debtledger/internal/directory"
	"github.com/mmynk/debtledger/internal/metrics"
	"github.com/mmynk/debtledger/internal/middleware"
	"github.com/mmynk/debtledger/internal/models"
	"github.com/mmynk/debtledger/internal/reconcile"
	"github.com/mmynk/debtledger/internal/storage"
	"github.com/mmynk/debtledger/pkg/api"
	"github.com/mmynk/debtledger/pkg/api/apiconnect"
)

// DefaultDueSoonWindow is how far ahead GetSummary looks for upcoming due dates.
const DefaultDueSoonWindow = 7 * 24 * time.Hour

// DebtService implements the Connect DebtService.
type DebtService struct {
	apiconnect.UnimplementedDebtServiceHandler
	store     storage.Store
	directory *directory.Directory
	validate  *validator.Validate
	clock     clock.Clock
	metrics   *metrics.Metrics
	dueSoon   time.Duration
}

// Option configures a DebtService.
type Option func(*DebtService)

// WithClock overrides the time source used for defaults and overdue checks.
func WithClock(c clock.Clock) Option {
	return func(s *DebtService) { s.clock = c }
}

// WithMetrics records debt and payment counters on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *DebtService) { s.metrics = m }
}

// WithDueSoonWindow sets the look-ahead for GetSummary's due soon list.
func WithDueSoonWindow(d time.Duration) Option {
	return func(s *DebtService) {
		if d > 0 {
			s.dueSoon = d
		}
	}
}

// NewDebtService creates a new DebtService with the given storage backend.
func NewDebtService(store storage.Store, dir *directory.Directory, opts ...Option) *DebtService {
	s := &DebtService{
		store:     store,
		directory: dir,
		validate:  newValidator(),
		clock:     clock.Real{},
		dueSoon:   DefaultDueSoonWindow,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// requireOwner returns the authenticated owner from ctx.
func requireOwner(ctx context.Context) (string, error) {
	ownerID := middleware.GetOwnerID(ctx)
	if ownerID == "" {
		return "", ErrMissingOwner
	}
	return ownerID, nil
}

// checkAmount rejects non-positive amounts and sub-cent precision.
func checkAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: %s", ErrInvalidAmount, amount)
	}
	return checkPrecision(amount)
}

func checkPrecision(amount decimal.Decimal) error {
	if !amount.Equal(amount.Truncate(calculator.MinorUnitPlaces)) {
		return fmt.Errorf("%w: %s", ErrAmountPrecision, amount)
	}
	return nil
}

// checkInput validates the shape of a debt before anything is written.
func checkInput(in *api.DebtInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidRequest)
	}
	if err := checkAmount(in.TotalAmount); err != nil {
		return err
	}
	if in.DueDate != nil && in.CreatedDate != nil && in.DueDate.Before(*in.CreatedDate) {
		return fmt.Errorf("%w: due date is before the created date", ErrInvalidRequest)
	}

	if !models.DebtKind(in.Kind).IsGroup() {
		if in.Counterparty == nil {
			return ErrCounterpartyRequired
		}
		if len(in.Participants) > 0 {
			return ErrParticipantsOnDirect
		}
		return nil
	}

	if in.Counterparty != nil {
		return ErrCounterpartyOnGroup
	}
	if len(in.Participants) == 0 {
		return ErrParticipantsRequired
	}

	seen := make(map[string]bool, len(in.Participants))
	for _, ref := range in.Participants {
		if ref.ID != "" {
			if seen[ref.ID] {
				return fmt.Errorf("%w: %s", ErrDuplicateParticipant, ref.ID)
			}
			seen[ref.ID] = true
		}
		if models.SplitMode(in.SplitMode) != models.SplitCustom || ref.Amount == nil {
			continue
		}
		if ref.Amount.IsNegative() {
			return fmt.Errorf("%w: %s", ErrNegativeShare, ref.Amount)
		}
		if err := checkPrecision(*ref.Amount); err != nil {
			return err
		}
	}
	return nil
}

// checkEdit rejects updates that would contradict payments already recorded on existing.
func checkEdit(existing *models.Debt, in *api.DebtInput) error {
	if in.TotalAmount.LessThan(existing.PaidAmount) {
		return fmt.Errorf("%w: paid %s, new total %s", ErrTotalBelowPaid, existing.PaidAmount, in.TotalAmount)
	}
	if len(existing.Payments) == 0 {
		return nil
	}

	kind := models.DebtKind(in.Kind)
	if kind.IsGroup() != existing.IsGroup() {
		return fmt.Errorf("%w: %s to %s", ErrKindChangeWithPayments, existing.Kind, kind)
	}

	if !kind.IsGroup() {
		if in.Counterparty.ID != existing.CounterpartyID {
			return ErrCounterpartyChange
		}
		return nil
	}

	kept := make(map[string]bool, len(in.Participants))
	for _, ref := range in.Participants {
		if ref.ID != "" {
			kept[ref.ID] = true
		}
	}
	for _, p := range existing.Payments {
		if !kept[p.ParticipantID] {
			return fmt.Errorf("%w: %s", ErrPaidParticipantRemoved, p.ParticipantID)
		}
	}
	return nil
}

func toRef(ref api.ParticipantRef) directory.Ref {
	return directory.Ref{ID: ref.ID, Name: ref.Name, Email: ref.Email, Phone: ref.Phone}
}

// referencedIDs lists the participant IDs a stored debt already points at.
func referencedIDs(d *models.Debt) map[string]bool {
	ids := make(map[string]bool)
	if d == nil {
		return ids
	}
	if d.CounterpartyID != "" {
		ids[d.CounterpartyID] = true
	}
	for _, split := range d.Splits {
		ids[split.ParticipantID] = true
	}
	for _, p := range d.Payments {
		if p.ParticipantID != "" {
			ids[p.ParticipantID] = true
		}
	}
	return ids
}

// ensure resolves ref through the directory. IDs in kept are already on the
// debt being edited and stay valid after their participant is deleted.
func (s *DebtService) ensure(ctx context.Context, ownerID string, ref api.ParticipantRef, kept map[string]bool) (string, error) {
	if ref.ID != "" && kept[ref.ID] {
		return ref.ID, nil
	}
	return s.directory.Ensure(ctx, ownerID, toRef(ref))
}

// buildDebt turns checked input into an unsaved debt, creating any new
// participants it names. existing is the stored debt on update and nil on create.
//
// New participants are written before the debt. If the debt write then fails
// they stay in the directory unreferenced, which the weak-reference model allows.
func (s *DebtService) buildDebt(ctx context.Context, ownerID string, in *api.DebtInput, existing *models.Debt) (*models.Debt, error) {
	kept := referencedIDs(existing)
	d := &models.Debt{
		Kind:        models.DebtKind(in.Kind),
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		TotalAmount: in.TotalAmount,
		Notes:       strings.TrimSpace(in.Notes),
	}
	if in.CreatedDate != nil {
		d.CreatedDate = in.CreatedDate.UTC()
	}
	if in.DueDate != nil {
		due := in.DueDate.UTC()
		d.DueDate = &due
	}

	if !d.IsGroup() {
		id, err := s.ensure(ctx, ownerID, *in.Counterparty, kept)
		if err != nil {
			return nil, err
		}
		d.CounterpartyID = id
		return d, nil
	}

	d.SplitMode = models.SplitMode(in.SplitMode)
	if d.SplitMode == "" {
		d.SplitMode = models.SplitEqual
	}

	ids := make([]string, 0, len(in.Participants))
	custom := make(map[string]decimal.Decimal, len(in.Participants))
	for _, ref := range in.Participants {
		id, err := s.ensure(ctx, ownerID, ref, kept)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
		if ref.Amount != nil {
			custom[id] = *ref.Amount
		}
	}

	d.Splits = calculator.ComputeSplits(d.TotalAmount, ids, d.SplitMode, custom)
	if d.SplitMode == models.SplitCustom {
		assigned, unassigned := calculator.Allocation(d.TotalAmount, d.Splits)
		if !unassigned.IsZero() {
			slog.Warn("Custom split does not add up to total",
				"owner_id", ownerID,
				"total", d.TotalAmount.String(),
				"assigned", assigned.String(),
				"unassigned", unassigned.String(),
			)
		}
	}
	return d, nil
}

// heal recomputes the derived fields of a stored debt from its ledger.
func heal(d *models.Debt) *models.Debt {
	if reconcile.Drifted(d) {
		slog.Warn("Debt cache disagrees with its ledger, recomputing",
			"debt_id", d.ID,
			"cached_paid", d.PaidAmount.String(),
			"cached_status", d.Status,
		)
	}
	return reconcile.Reconcile(d)
}

func (s *DebtService) loadDebt(ctx context.Context, ownerID, debtID string) (*models.Debt, error) {
	d, err := s.store.GetDebt(ctx, ownerID, debtID)
	if err != nil {
		return nil, err
	}
	return heal(d), nil
}

func (s *DebtService) resolveNames(ctx context.Context, ownerID string, debts ...*models.Debt) (names, error) {
	resolved, err := s.directory.Resolve(ctx, ownerID, participantIDs(debts...))
	if err != nil {
		return nil, err
	}
	return names(resolved), nil
}

func (s *DebtService) render(ctx context.Context, ownerID string, d *models.Debt) (*api.Debt, error) {
	n, err := s.resolveNames(ctx, ownerID, d)
	if err != nil {
		return nil, err
	}
	return toAPIDebt(d, n, s.clock.Now()), nil
}

// CreateDebt validates the input, creates inline participants, computes splits and saves the debt.
func (s *DebtService) CreateDebt(ctx context.Context, req *connect.Request[api.CreateDebtRequest]) (*connect.Response[api.CreateDebtResponse], error) {
	ownerID, err := requireOwner(ctx)
	if err != nil {
		return nil, toConnectError("CreateDebt", err)
	}
	if err := validateRequest(s.validate, req.Msg); err != nil {
		return nil, toConnectError("CreateDebt", err)
	}
	if err := checkInput(&req.Msg.DebtInput); err != nil {
		return nil, toConnectError("CreateDebt", err)
	}

	d, err := s.buildDebt(ctx, ownerID, &req.Msg.DebtInput, nil)
	if err != nil {
		return nil, toConnectError("CreateDebt", err)
	}
	now := s.clock.Now()
	if d.CreatedDate.IsZero() {
		d.CreatedDate = now
	}
	d.UpdatedAt = now
	reconcile.Reconcile(d)

	if err := s.store.CreateDebt(ctx, ownerID, d); err != nil {
		return nil, toConnectError("CreateDebt", err)
	}
	s.metrics.DebtCreated(string(d.Kind))
	slog.Info("Debt created",
		"owner_id", ownerID,
		"debt_id", d.ID,
		"kind", d.Kind,
		"total", d.TotalAmount.String(),
	)

	out, err := s.render(ctx, ownerID, d)
	if err != nil {
		return nil, toConnectError("CreateDebt", err)
	}
	return connect.NewResponse(&api.CreateDebtResponse{Debt: out}), nil
}

// GetDebt returns one debt, reconciled against its ledger.
func (s *DebtService) GetDebt(ctx context.Context, req *connect.Request[api.GetDebtRequest]) (*connect.Response[api.GetDebtResponse], error) {
	ownerID, err := requireOwner(ctx)
	if err != nil {
		return nil, toConnectError("GetDebt", err)
	}
	if err := validateRequest(s.validate, req.Msg); err != nil {
		return nil, toConnectError("GetDebt", err)
	}

	d, err := s.loadDebt(ctx, ownerID, req.Msg.DebtID)
	if err != nil {
		return nil, toConnectError("GetDebt", err)
	}
	out, err := s.render(ctx, ownerID, d)
	if err != nil {
		return nil, toConnectError("GetDebt", err)
	}
	return connect.NewResponse(&api.GetDebtResponse{Debt: out}), nil
}

// matchesSearch reports whether q (lower case) appears in the debt's text or participant names.
func matchesSearch(d *models.Debt, n names, q string) bool {
	for _, text := range []string{d.Title, d.Description, d.Notes} {
		if strings.Contains(strings.ToLower(text), q) {
			return true
		}
	}
	for _, id := range d.ParticipantIDs() {
		if strings.Contains(strings.ToLower(n.of(id)), q) {
			return true
		}
	}
	return false
}

// ListDebts returns the owner's debts, newest first, filtered by kind, display status and search text.
func (s *DebtService) ListDebts(ctx context.Context, req *connect.Request[api.ListDebtsRequest]) (*connect.Response[api.ListDebtsResponse], error) {
	ownerID, err := requireOwner(ctx)
	if err != nil {
		return nil, toConnectError("ListDebts", err)
	}
	if err := validateRequest(s.validate, req.Msg); err != nil {
		return nil, toConnectError("ListDebts", err)
	}

	debts, err := s.store.ListDebts(ctx, ownerID)
	if err != nil {
		return nil, toConnectError("ListDebts", err)
	}
	for _, d := range debts {
		heal(d)
	}
	n, err := s.resolveNames(ctx, ownerID, debts...)
	if err != nil {
		return nil, toConnectError("ListDebts", err)
	}

	now := s.clock.Now()
	search := strings.ToLower(strings.TrimSpace(req.Msg.Search))
	out := make([]*api.Debt, 0, len(debts))
	for _, d := range debts {
		if req.Msg.Kind != "" && string(d.Kind) != req.Msg.Kind {
			continue
		}
		if req.Msg.Status != "" && string(d.DisplayStatus(now)) != req.Msg.Status {
			continue
		}
		if search != "" && !matchesSearch(d, n, search) {
			continue
		}
		out = append(out, toAPIDebt(d, n, now))
	}

	slog.Debug("Listed debts", "owner_id", ownerID, "total", len(debts), "matched", len(out))
	return connect.NewResponse(&api.ListDebtsResponse{Debts: out}), nil
}

// UpdateDebt replaces a debt's editable fields, keeping its ledger, and reconciles the result.
func (s *DebtService) UpdateDebt(ctx context.Context, req *connect.Request[api.UpdateDebtRequest]) (*connect.Response[api.UpdateDebtResponse], error) {
	ownerID, err := requireOwner(ctx)
	if err != nil {
		return nil, toConnectError("UpdateDebt", err)
	}
	if err := validateRequest(s.validate, req.Msg); err != nil {
		return nil, toConnectError("UpdateDebt", err)
	}
	if err := checkInput(&req.Msg.DebtInput); err != nil {
		return nil, toConnectError("UpdateDebt", err)
	}

	existing, err := s.loadDebt(ctx, ownerID, req.Msg.DebtID)
	if err != nil {
		return nil, toConnectError("UpdateDebt", err)
	}
	if err := checkEdit(existing, &req.Msg.DebtInput); err != nil {
		return nil, toConnectError("UpdateDebt", err)
	}

	d, err := s.buildDebt(ctx, ownerID, &req.Msg.DebtInput, existing)
	if err != nil {
		return nil, toConnectError("UpdateDebt", err)
	}
	d.ID = existing.ID
	if d.CreatedDate.IsZero() {
		d.CreatedDate = existing.CreatedDate
	}
	d.Payments = existing.Payments
	d.UpdatedAt = s.clock.Now()
	reconcile.Reconcile(d)

	if err := s.store.UpdateDebt(ctx, ownerID, d); err != nil {
		return nil, toConnectError("UpdateDebt", err)
	}
	if d.Status != existing.Status {
		slog.Info("Debt status changed by edit",
			"debt_id", d.ID,
			"from", existing.Status,
			"to", d.Status,
		)
	}

	out, err := s.render(ctx, ownerID, d)
	if err != nil {
		return nil, toConnectError("UpdateDebt", err)
	}
	return connect.NewResponse(&api.UpdateDebtResponse{Debt: out}), nil
}

// DeleteDebt removes a debt with its splits and payments.
func (s *DebtService) DeleteDebt(ctx context.Context, req *connect.Request[api.DeleteDebtRequest]) (*connect.Response[api.DeleteDebtResponse], error) {
	ownerID, err := requireOwner(ctx)
	if err != nil {
		return nil, toConnectError("DeleteDebt", err)
	}
	if err := validateRequest(s.validate, req.Msg); err != nil {
		return nil, toConnectError("DeleteDebt", err)
	}

	if err := s.store.DeleteDebt(ctx, ownerID, req.Msg.DebtID); err != nil {
		return nil, toConnectError("DeleteDebt", err)
	}
	s.metrics.DebtDeleted()
	slog.Info("Debt deleted", "owner_id", ownerID, "debt_id", req.Msg.DebtID)

	return connect.NewResponse(&api.DeleteDebtResponse{}), nil
}

// ApplyPayment validates a payment against the debt's remaining balance and
// records it together with the recomputed debt.
func (s *DebtService) ApplyPayment(ctx context.Context, req *connect.Request[api.ApplyPaymentRequest]) (*connect.Response[api.ApplyPaymentResponse], error) {
	ownerID, err := requireOwner(ctx)
	if err != nil {
		return nil, toConnectError("ApplyPayment", err)
	}
	if err := validateRequest(s.validate, req.Msg); err != nil {
		return nil, toConnectError("ApplyPayment", err)
	}

	debt, err := s.loadDebt(ctx, ownerID, req.Msg.DebtID)
	if err != nil {
		return nil, toConnectError("ApplyPayment", err)
	}

	now := s.clock.Now()
	payment := models.Payment{
		Amount:        req.Msg.Amount,
		Date:          now,
		ParticipantID: strings.TrimSpace(req.Msg.ParticipantID),
		Notes:         strings.TrimSpace(req.Msg.Notes),
		CreatedAt:     now,
	}
	if req.Msg.Date != nil {
		payment.Date = req.Msg.Date.UTC()
	}

	next, err := s.applyPayment(debt, payment)
	if err != nil {
		s.metrics.PaymentRejected(rejectionReason(err))
		slog.Debug("Payment rejected", "debt_id", debt.ID, "amount", payment.Amount.String(), "error", err)
		return nil, toConnectError("ApplyPayment", err)
	}
	next.UpdatedAt = now

	recorded := &next.Payments[len(next.Payments)-1]
	if err := s.store.RecordPayment(ctx, ownerID, next, recorded); err != nil {
		if errors.Is(err, reconcile.ErrOverpayment) {
			s.metrics.PaymentRejected(rejectionReason(err))
		}
		return nil, toConnectError("ApplyPayment", err)
	}
	s.metrics.PaymentApplied(string(next.Status))
	slog.Info("Payment applied",
		"owner_id", ownerID,
		"debt_id", next.ID,
		"payment_id", recorded.ID,
		"amount", recorded.Amount.String(),
		"status", next.Status,
	)

	n, err := s.resolveNames(ctx, ownerID, next)
	if err != nil {
		return nil, toConnectError("ApplyPayment", err)
	}
	return connect.NewResponse(&api.ApplyPaymentResponse{
		Debt:    toAPIDebt(next, n, now),
		Payment: toAPIPayment(recorded, n),
	}), nil
}

func (s *DebtService) applyPayment(debt *models.Debt, p models.Payment) (*models.Debt, error) {
	if p.Amount.IsPositive() {
		if err := checkPrecision(p.Amount); err != nil {
			return nil, err
		}
	}
	return reconcile.ApplyPayment(debt, p)
}

// ListPayments returns a debt's ledger in the order payments were applied.
func (s *DebtService) ListPayments(ctx context.Context, req *connect.Request[api.ListPaymentsRequest]) (*connect.Response[api.ListPaymentsResponse], error) {
	ownerID, err := requireOwner(ctx)
	if err != nil {
		return nil, toConnectError("ListPayments", err)
	}
	if err := validateRequest(s.validate, req.Msg); err != nil {
		return nil, toConnectError("ListPayments", err)
	}

	payments, err := s.store.ListPayments(ctx, ownerID, req.Msg.DebtID)
	if err != nil {
		return nil, toConnectError("ListPayments", err)
	}

	ids := make([]string, 0, len(payments))
	for _, p := range payments {
		ids = append(ids, p.ParticipantID)
	}
	resolved, err := s.directory.Resolve(ctx, ownerID, ids)
	if err != nil {
		return nil, toConnectError("ListPayments", err)
	}

	out := make([]*api.Payment, len(payments))
	for i, p := range payments {
		out[i] = toAPIPayment(p, names(resolved))
	}
	return connect.NewResponse(&api.ListPaymentsResponse{Payments: out}), nil
}

// GetSummary aggregates all of the owner's debts into dashboard totals,
// per-participant balances and the debts falling due soon.
func (s *DebtService) GetSummary(ctx context.Context, req *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error) {
	ownerID, err := requireOwner(ctx)
	if err != nil {
		return nil, toConnectError("GetSummary", err)
	}

	debts, err := s.store.ListDebts(ctx, ownerID)
	if err != nil {
		return nil, toConnectError("GetSummary", err)
	}
	for _, d := range debts {
		heal(d)
	}
	n, err := s.resolveNames(ctx, ownerID, debts...)
	if err != nil {
		return nil, toConnectError("GetSummary", err)
	}

	now := s.clock.Now()
	summary := calculator.Summarize(debts, now)

	balances := calculator.CalculateParticipantBalances(debts)
	apiBalances := make([]*api.ParticipantBalance, len(balances))
	for i, b := range balances {
		apiBalances[i] = toAPIBalance(b, n)
	}

	dueSoon := calculator.DueSoon(debts, now, s.dueSoon)
	apiDueSoon := make([]*api.Debt, len(dueSoon))
	for i, d := range dueSoon {
		apiDueSoon[i] = toAPIDebt(d, n, now)
	}

	slog.Debug("Summary computed",
		"owner_id", ownerID,
		"debts", summary.DebtCount,
		"net_position", summary.NetPosition.String(),
	)
	return connect.NewResponse(&api.GetSummaryResponse{
		Summary:  toAPISummary(summary),
		Balances: apiBalances,
		DueSoon:  apiDueSoon,
	}), nil
}

// CalculateSplit previews how a total would be divided without saving anything.
func (s *DebtService) CalculateSplit(ctx context.Context, req *connect.Request[api.CalculateSplitRequest]) (*connect.Response[api.CalculateSplitResponse], error) {
	ownerID, err := requireOwner(ctx)
	if err != nil {
		return nil, toConnectError("CalculateSplit", err)
	}
	if err := validateRequest(s.validate, req.Msg); err != nil {
		return nil, toConnectError("CalculateSplit", err)
	}
	if err := checkAmount(req.Msg.TotalAmount); err != nil {
		return nil, toConnectError("CalculateSplit", err)
	}

	mode := models.SplitMode(req.Msg.SplitMode)
	keys := make([]string, 0, len(req.Msg.Participants))
	display := make(map[string]string, len(req.Msg.Participants))
	custom := make(map[string]decimal.Decimal, len(req.Msg.Participants))
	var unnamed []string
	for _, ref := range req.Msg.Participants {
		key := ref.ID
		if key == "" {
			key = strings.TrimSpace(ref.Name)
		}
		if _, dup := display[key]; dup {
			return nil, toConnectError("CalculateSplit", fmt.Errorf("%w: %s", ErrDuplicateParticipant, key))
		}
		keys = append(keys, key)
		display[key] = strings.TrimSpace(ref.Name)
		if display[key] == "" {
			unnamed = append(unnamed, key)
		}

		if mode == models.SplitCustom && ref.Amount != nil {
			if ref.Amount.IsNegative() {
				return nil, toConnectError("CalculateSplit", fmt.Errorf("%w: %s", ErrNegativeShare, ref.Amount))
			}
			if err := checkPrecision(*ref.Amount); err != nil {
				return nil, toConnectError("CalculateSplit", err)
			}
			custom[key] = *ref.Amount
		}
	}

	resolved, err := s.directory.Resolve(ctx, ownerID, unnamed)
	if err != nil {
		return nil, toConnectError("CalculateSplit", err)
	}
	for id, p := range resolved {
		display[id] = p.Name
	}

	splits := calculator.ComputeSplits(req.Msg.TotalAmount, keys, mode, custom)
	assigned, unassigned := calculator.Allocation(req.Msg.TotalAmount, splits)

	out := make([]api.Split, len(splits))
	for i, split := range splits {
		out[i] = api.Split{
			ParticipantID:   split.ParticipantID,
			ParticipantName: display[split.ParticipantID],
			Amount:          split.Amount,
			PaidAmount:      decimal.Zero,
		}
	}

	return connect.NewResponse(&api.CalculateSplitResponse{
		Splits:           out,
		AssignedAmount:   assigned,
		UnassignedAmount: unassigned,
	}), nil
}
