package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"catering_quotes/internal/domain/entities"
	"catering_quotes/internal/domain/pricing"
	"catering_quotes/internal/usecase/interfaces"
)

var (
	ErrQuoteNotFound           = errors.New("quote not found")
	ErrInvalidQuoteID          = errors.New("invalid quote id")
	ErrInvalidStatusTransition = errors.New("status transition not allowed")
	ErrNoGuests                = errors.New("guest count must be positive")
)

// IQuoteUseCase owns the quote lifecycle: submission, history reads with lazy
// auto-expiry, and status transitions against the transition table.
//
// Concurrency: there is no per-quote locking. Concurrent status updates race
// and the last write wins; concurrent history reads may both expire the same
// quote, which is harmless because the resulting write is idempotent.
type IQuoteUseCase interface {
	Submit(ctx context.Context, form entities.EventForm, totals pricing.Result, catalogSource string, settings entities.Settings) (SubmitResult, error)
	History(ctx context.Context) (HistoryResult, error)
	UpdateStatus(ctx context.Context, id string, status string) (entities.Quote, error)
	GetByID(ctx context.Context, id string) (entities.Quote, error)
	AllowedTransitions(status string) []entities.QuoteStatus
}

type SubmitResult struct {
	ID          string
	QuoteNumber string
	Storage     string
}

type HistoryResult struct {
	Source string
	Quotes []entities.Quote
}

type QuoteUseCase struct {
	repo  interfaces.IQuoteRepository
	links interfaces.IPaymentLinkProvider

	// overridable in tests
	now       func() time.Time
	numSuffix func() int
}

var _ IQuoteUseCase = (*QuoteUseCase)(nil)

// NewQuoteUseCase wires the lifecycle manager. links may be nil when no
// payment provider is configured; submissions then keep whatever deposit link
// the form carried.
func NewQuoteUseCase(repo interfaces.IQuoteRepository, links interfaces.IPaymentLinkProvider) *QuoteUseCase {
	return &QuoteUseCase{
		repo:  repo,
		links: links,
		now:   time.Now,
		numSuffix: func() int {
			return 1000 + rand.IntN(9000)
		},
	}
}

// Submit snapshots the form and totals into a draft quote and appends it
// through the storage port. Callers gate on a positive guest count before
// allowing submission; Submit enforces that workflow contract here.
func (u *QuoteUseCase) Submit(ctx context.Context, form entities.EventForm, totals pricing.Result, catalogSource string, settings entities.Settings) (SubmitResult, error) {
	if form.Guests <= 0 {
		return SubmitResult{}, ErrNoGuests
	}

	now := u.now().UTC()
	validityDays := settings.QuoteValidityDays
	if validityDays < 1 {
		validityDays = 1
	}

	quoteNumber := u.buildQuoteNumber(now)
	depositLink := strings.TrimSpace(form.DepositLink)
	if depositLink == "" && u.links != nil && form.PayMethod == entities.PayMethodCard {
		link, err := u.links.CreateDepositLink(ctx, quoteNumber, totals.Totals.Deposit)
		if err != nil {
			slog.Warn("deposit link creation failed", "quote_number", quoteNumber, "err", err)
		} else {
			depositLink = link
		}
	}

	q := entities.Quote{
		QuoteNumber: quoteNumber,
		Customer: entities.Customer{
			Name:  form.Name,
			Email: form.Email,
		},
		Event: entities.EventDetails{
			Date:   form.Date,
			Time:   form.Time,
			Venue:  form.Venue,
			Guests: form.ClampedGuests(),
			Hours:  form.Hours,
			Style:  form.Style,
		},
		Selection: entities.Selection{
			PackageID:   form.PackageID,
			PackageName: totals.SelectedPackage.Name,
			Addons:      form.Addons,
			Rentals:     form.Rentals,
			MilesRT:     form.MilesRT,
			PayMethod:   form.PayMethod,
		},
		Payment: entities.PaymentInfo{
			DepositLink: depositLink,
		},
		Totals:    totals.Totals,
		Status:    entities.QuoteStatusDraft,
		Source:    catalogSource,
		CreatedAt: now,
		ExpiresAt: now.AddDate(0, 0, validityDays),
		UpdatedAt: now,
		Lifecycle: map[entities.QuoteStatus]time.Time{
			entities.QuoteStatusDraft: now,
		},
	}

	created, err := u.repo.Append(ctx, q)
	if err != nil {
		return SubmitResult{}, fmt.Errorf("append quote: %w", err)
	}
	return SubmitResult{
		ID:          created.ID,
		QuoteNumber: created.QuoteNumber,
		Storage:     u.repo.Source(),
	}, nil
}

// History returns all quotes newest first, applying lazy auto-expiry on the
// way out. Only quotes whose status actually changed are written back; quotes
// already expired or not yet due are left untouched.
func (u *QuoteUseCase) History(ctx context.Context) (HistoryResult, error) {
	quotes, err := u.repo.List(ctx)
	if err != nil {
		return HistoryResult{}, fmt.Errorf("list quotes: %w", err)
	}

	now := u.now().UTC()
	for i, q := range quotes {
		if !q.ExpiryDue(now) {
			continue
		}
		updated, err := u.repo.UpdateStatus(ctx, q.ID, entities.QuoteStatusExpired, now)
		if err != nil {
			return HistoryResult{}, fmt.Errorf("expire quote %s: %w", q.ID, err)
		}
		if updated.ID != "" {
			quotes[i] = updated
		}
	}

	return HistoryResult{
		Source: u.repo.Source(),
		Quotes: quotes,
	}, nil
}

// UpdateStatus applies an operator transition. Unrecognized status strings
// normalize to draft; transitions outside the table are rejected. Repeating
// the current status is a legal no-op that still refreshes UpdatedAt.
func (u *QuoteUseCase) UpdateStatus(ctx context.Context, id string, status string) (entities.Quote, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}
	next := entities.NormalizeStatus(status)

	current, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if current.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	if !entities.CanTransition(entities.NormalizeStatus(string(current.Status)), next) {
		return entities.Quote{}, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, current.Status, next)
	}

	updated, err := u.repo.UpdateStatus(ctx, id, next, u.now().UTC())
	if err != nil {
		return entities.Quote{}, err
	}
	if updated.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	return updated, nil
}

func (u *QuoteUseCase) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}
	q, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	return q, nil
}

// AllowedTransitions exposes the transition table for a (possibly unknown)
// status string.
func (u *QuoteUseCase) AllowedTransitions(status string) []entities.QuoteStatus {
	return entities.AllowedTransitions(entities.NormalizeStatus(status))
}

// buildQuoteNumber generates the human-facing identifier: Q-yymmdd plus a
// 4-digit random suffix. Generated once at submission, never regenerated.
func (u *QuoteUseCase) buildQuoteNumber(now time.Time) string {
	return fmt.Sprintf("Q-%s-%04d", now.Format("060102"), u.numSuffix())
}
