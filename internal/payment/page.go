package payment

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"pitchplease/internal/events"
	"pitchplease/internal/metrics"
	"pitchplease/internal/models"
	"pitchplease/internal/store"
)

var (
	ErrNoBookingDraft       = errors.New("no booking data found, please return to the booking page")
	ErrTransferNotConfirmed = errors.New("please confirm that you have initiated the bank transfer")
	ErrActionDisabled       = errors.New("action is not available")
	ErrUnknownMethod        = errors.New("unknown payment method")
)

// Creator posts the booking and payment record.
type Creator interface {
	CreatePayment(ctx context.Context, req models.PaymentRequest) (*models.PaymentResponse, error)
}

// Identity resolves who is paying.
type Identity interface {
	UserID(ctx context.Context) (int64, error)
	UserName(ctx context.Context) string
}

// Options tune the payment view.
type Options struct {
	MaxRetries          int
	EnableFailAction    bool
	ClearDraftOnSuccess bool
	SuccessDelay        time.Duration
	BlockedDelay        time.Duration
}

// Redirect is a navigation the caller performs after Delay.
type Redirect struct {
	Target string
	Delay  time.Duration
}

// Outcome describes the view after an action.
type Outcome struct {
	State            State
	Message          string
	RetriesRemaining int
	Redirect         *Redirect
	PaymentID        int64
}

// StateChange is the payload of events.PaymentStateChanged.
type StateChange struct {
	From       State
	To         State
	RetryCount int
}

// Page is one payment view. Its retry counter lives only as long as the Page.
type Page struct {
	store    store.Store
	creator  Creator
	identity Identity
	bus      *events.Bus
	logger   *zerolog.Logger
	opts     Options
	fsm      *FSM

	mu         sync.Mutex
	state      State
	draft      *models.BookingDraft
	retryCount int
	reference  string
	pending    []StateChange
	rnd        *rand.Rand
	now        func() time.Time
}

// NewPage creates a payment view in the idle state.
func NewPage(s store.Store, creator Creator, identity Identity, bus *events.Bus, logger *zerolog.Logger, opts Options) *Page {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = 2
	}
	return &Page{
		store:    s,
		creator:  creator,
		identity: identity,
		bus:      bus,
		logger:   logger,
		opts:     opts,
		fsm:      NewFSM(),
		state:    StateIdle,
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())),
		now:      time.Now,
	}
}

// Open loads the booking draft. Without one the page stays idle.
func (p *Page) Open(ctx context.Context) (*models.BookingDraft, error) {
	var draft models.BookingDraft
	if err := store.GetJSON(ctx, p.store, models.DraftKey, &draft); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNoBookingDraft
		}
		return nil, fmt.Errorf("load booking draft: %w", err)
	}

	p.mu.Lock()
	defer p.unlock()
	if p.state != StateIdle {
		return nil, fmt.Errorf("%w: page already open", ErrActionDisabled)
	}
	p.draft = &draft
	p.reference = bookingReference(draft.FacilityID, p.now(), p.rnd)
	p.transition(StateAwaitingSubmit)
	return &draft, nil
}

// Submit sends the payment. A backend failure returns the page to
// awaiting_submit without consuming a retry.
func (p *Page) Submit(ctx context.Context, method models.PaymentMethod, transferConfirmed bool) (Outcome, error) {
	if !knownMethod(method) {
		return p.outcome(""), fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}
	if method == models.MethodBankTransfer && !transferConfirmed {
		return p.outcome(""), ErrTransferNotConfirmed
	}

	p.mu.Lock()
	if p.state != StateAwaitingSubmit {
		out := p.outcomeLocked("")
		p.mu.Unlock()
		return out, fmt.Errorf("%w: submit in state %s", ErrActionDisabled, out.State)
	}
	p.transition(StateProcessing)
	draft := *p.draft
	p.unlock()

	resp, err := p.send(ctx, draft, method)

	p.mu.Lock()
	defer p.unlock()
	if err != nil {
		metrics.IncPaymentAttempt(string(method), "error")
		p.logger.Error().Err(err).Str("method", string(method)).Int64("facility_id", draft.FacilityID).Msg("payment failed")
		p.transition(StateFailed)
		p.transition(StateAwaitingSubmit)
		return p.outcomeLocked("Error creating booking. Please try again."), err
	}

	metrics.IncPaymentAttempt(string(method), "success")
	p.transition(StateSucceeded)
	if p.opts.ClearDraftOnSuccess {
		if err := p.store.Delete(ctx, models.DraftKey); err != nil {
			p.logger.Warn().Err(err).Msg("clear booking draft")
		}
	}
	p.logger.Info().Int64("payment_id", resp.ID).Str("method", string(method)).Msg("payment completed")

	target := "home"
	if resp.ID != 0 {
		target = fmt.Sprintf("booking-confirmation?id=%d", resp.ID)
	}
	out := p.outcomeLocked(fmt.Sprintf("%s payment successful! Your booking is confirmed.", method))
	out.PaymentID = resp.ID
	out.Redirect = &Redirect{Target: target, Delay: p.opts.SuccessDelay}
	return out, nil
}

func (p *Page) send(ctx context.Context, draft models.BookingDraft, method models.PaymentMethod) (*models.PaymentResponse, error) {
	userID, err := p.identity.UserID(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve user: %w", err)
	}
	total, err := parseAmount(draft.TotalAmount)
	if err != nil {
		return nil, err
	}
	req := models.PaymentRequest{
		UserID:        userID,
		UserName:      p.identity.UserName(ctx),
		FacilityID:    draft.FacilityID,
		FacilityName:  draft.FacilityName,
		Date:          draft.Date,
		TimeSlots:     draft.TimeSlots,
		TotalAmount:   total,
		HourlyRate:    draft.HourlyRate,
		Hours:         draft.Hours,
		PaymentMethod: method,
		PaymentStatus: models.StatusCompleted,
	}
	resp, err := p.creator.CreatePayment(ctx, req)
	if err != nil {
		metrics.IncAPIError("create_payment")
		return nil, fmt.Errorf("create payment: %w", err)
	}
	return resp, nil
}

// FailTest simulates a failed payment and consumes one retry. Reaching the
// retry limit blocks the page and redirects back to the booking view.
func (p *Page) FailTest(method models.PaymentMethod) (Outcome, error) {
	if !p.opts.EnableFailAction {
		return p.outcome(""), fmt.Errorf("%w: simulated failures are disabled", ErrActionDisabled)
	}
	if !knownMethod(method) {
		return p.outcome(""), fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}

	p.mu.Lock()
	defer p.unlock()
	if p.state != StateAwaitingSubmit {
		out := p.outcomeLocked("")
		return out, fmt.Errorf("%w: fail in state %s", ErrActionDisabled, out.State)
	}

	p.retryCount++
	metrics.IncPaymentAttempt(string(method), "simulated_failure")
	p.transition(StateFailed)

	if p.retryCount >= p.opts.MaxRetries {
		p.transition(StateBlocked)
		metrics.IncPaymentBlocked()
		p.logger.Warn().Int("retries", p.retryCount).Int64("facility_id", p.draft.FacilityID).Msg("payment blocked")
		out := p.outcomeLocked("Payment failed. Maximum retry attempts reached. Redirecting to booking page...")
		out.Redirect = &Redirect{
			Target: fmt.Sprintf("booking?id=%d", p.draft.FacilityID),
			Delay:  p.opts.BlockedDelay,
		}
		return out, nil
	}

	p.transition(StateAwaitingSubmit)
	out := p.outcomeLocked("")
	out.Message = fmt.Sprintf("%s payment failed. Retries remaining: %d", method, out.RetriesRemaining)
	return out, nil
}

// State returns the current state.
func (p *Page) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Draft returns the loaded draft, or nil before Open.
func (p *Page) Draft() *models.BookingDraft {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.draft
}

// Reference returns the bank transfer reference.
func (p *Page) Reference() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.reference
}

// CanSubmit reports whether the submit action is enabled.
func (p *Page) CanSubmit() bool {
	return p.State() == StateAwaitingSubmit
}

// CanFail reports whether the simulated failure action is enabled.
func (p *Page) CanFail() bool {
	return p.opts.EnableFailAction && p.State() == StateAwaitingSubmit
}

// RetriesRemaining returns how many simulated failures are left.
func (p *Page) RetriesRemaining() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.remainingLocked()
}

func (p *Page) remainingLocked() int {
	if n := p.opts.MaxRetries - p.retryCount; n > 0 {
		return n
	}
	return 0
}

func (p *Page) outcome(msg string) Outcome {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.outcomeLocked(msg)
}

func (p *Page) outcomeLocked(msg string) Outcome {
	return Outcome{State: p.state, Message: msg, RetriesRemaining: p.remainingLocked()}
}

// transition must be called with p.mu held. Subscribers are notified by
// unlock.
func (p *Page) transition(to State) {
	from := p.state
	if !p.fsm.CanTransition(from, to) {
		p.logger.Error().Str("from", string(from)).Str("to", string(to)).Msg("invalid payment transition")
		return
	}
	p.state = to
	p.pending = append(p.pending, StateChange{From: from, To: to, RetryCount: p.retryCount})
}

// unlock releases p.mu and publishes the transitions made while it was held.
func (p *Page) unlock() {
	pending := p.pending
	p.pending = nil
	p.mu.Unlock()

	for _, change := range pending {
		if err := p.bus.Publish(events.Event{Type: events.PaymentStateChanged, Payload: change}); err != nil {
			p.logger.Warn().Err(err).Msg("payment state subscriber")
		}
	}
}

func knownMethod(m models.PaymentMethod) bool {
	for _, known := range models.PaymentMethods {
		if m == known {
			return true
		}
	}
	return false
}
