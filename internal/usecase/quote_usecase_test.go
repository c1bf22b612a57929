package usecase

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"catering_quotes/internal/domain/entities"
	"catering_quotes/internal/domain/pricing"
	mock_interfaces "catering_quotes/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

var quoteNumberPattern = regexp.MustCompile(`^Q-\d{6}-\d{4}$`)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func sampleForm() entities.EventForm {
	return entities.EventForm{
		Name:      "Ada",
		Email:     "ada@example.com",
		Date:      "2025-07-04",
		Time:      "18:00",
		Venue:     "Barn at Westside",
		Guests:    100,
		Hours:     5,
		Style:     entities.StyleBuffet,
		PackageID: "classic",
		Addons:    []string{"dessert"},
		Rentals:   []string{"linens"},
		MilesRT:   20,
		PayMethod: entities.PayMethodBankTransfer,
	}
}

func samplePricing() pricing.Result {
	return pricing.Result{
		SelectedPackage: entities.Package{ID: "classic", Name: "Classic", PPP: 18},
		Guests:          100,
		Servers:         4,
		Totals:          entities.Totals{Base: 1800, Total: 2500, Deposit: 1250},
	}
}

func TestQuoteUseCase_Submit(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("rejects zero guests", func(t *testing.T) {
		uc := NewQuoteUseCase(nil, nil)
		form := sampleForm()
		form.Guests = 0
		_, err := uc.Submit(context.Background(), form, samplePricing(), "local", entities.DefaultSettings())
		if !errors.Is(err, ErrNoGuests) {
			t.Fatalf("expected ErrNoGuests, got %v", err)
		}
	})

	t.Run("snapshots the form into a draft quote", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo, nil)
		uc.now = fixedClock(now)
		uc.numSuffix = func() int { return 4242 }

		var stored entities.Quote
		repo.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, q entities.Quote) (entities.Quote, error) {
				stored = q
				q.ID = "q-1"
				return q, nil
			})
		repo.EXPECT().Source().Return("local")

		res, err := uc.Submit(context.Background(), sampleForm(), samplePricing(), "local", entities.DefaultSettings())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if res.ID != "q-1" || res.Storage != "local" {
			t.Fatalf("unexpected result %+v", res)
		}
		if res.QuoteNumber != "Q-250615-4242" {
			t.Fatalf("expected Q-250615-4242, got %s", res.QuoteNumber)
		}

		if stored.Status != entities.QuoteStatusDraft {
			t.Fatalf("expected draft status, got %s", stored.Status)
		}
		if stored.Customer.Name != "Ada" || stored.Event.Venue != "Barn at Westside" {
			t.Fatalf("expected form snapshot, got %+v", stored)
		}
		if stored.Selection.PackageName != "Classic" {
			t.Fatalf("expected resolved package name, got %s", stored.Selection.PackageName)
		}
		if stored.Totals.Total != 2500 {
			t.Fatalf("expected totals snapshot, got %+v", stored.Totals)
		}
		if !stored.ExpiresAt.Equal(now.AddDate(0, 0, 30)) {
			t.Fatalf("expected 30-day validity, got %v", stored.ExpiresAt)
		}
		if !stored.Lifecycle[entities.QuoteStatusDraft].Equal(now) {
			t.Fatalf("expected draft lifecycle stamp, got %+v", stored.Lifecycle)
		}
	})

	t.Run("quote number format", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo, nil)

		repo.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, q entities.Quote) (entities.Quote, error) {
				q.ID = "q-1"
				return q, nil
			})
		repo.EXPECT().Source().Return("local")

		res, err := uc.Submit(context.Background(), sampleForm(), samplePricing(), "local", entities.DefaultSettings())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !quoteNumberPattern.MatchString(res.QuoteNumber) {
			t.Fatalf("unexpected quote number %s", res.QuoteNumber)
		}
	})

	t.Run("validity floor of one day", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo, nil)
		uc.now = fixedClock(now)

		var stored entities.Quote
		repo.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, q entities.Quote) (entities.Quote, error) {
				stored = q
				q.ID = "q-1"
				return q, nil
			})
		repo.EXPECT().Source().Return("local")

		settings := entities.DefaultSettings()
		settings.QuoteValidityDays = 0
		if _, err := uc.Submit(context.Background(), sampleForm(), samplePricing(), "local", settings); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !stored.ExpiresAt.Equal(now.AddDate(0, 0, 1)) {
			t.Fatalf("expected one-day validity, got %v", stored.ExpiresAt)
		}
	})

	t.Run("card submissions get a deposit link", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		links := mock_interfaces.NewMockIPaymentLinkProvider(ctrl)
		uc := NewQuoteUseCase(repo, links)

		links.EXPECT().CreateDepositLink(gomock.Any(), gomock.Any(), 1250.0).Return("https://pay.example/abc", nil)
		var stored entities.Quote
		repo.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, q entities.Quote) (entities.Quote, error) {
				stored = q
				q.ID = "q-1"
				return q, nil
			})
		repo.EXPECT().Source().Return("local")

		form := sampleForm()
		form.PayMethod = entities.PayMethodCard
		if _, err := uc.Submit(context.Background(), form, samplePricing(), "local", entities.DefaultSettings()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if stored.Payment.DepositLink != "https://pay.example/abc" {
			t.Fatalf("expected deposit link, got %q", stored.Payment.DepositLink)
		}
	})

	t.Run("deposit link failure does not fail submission", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		links := mock_interfaces.NewMockIPaymentLinkProvider(ctrl)
		uc := NewQuoteUseCase(repo, links)

		links.EXPECT().CreateDepositLink(gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("provider down"))
		repo.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, q entities.Quote) (entities.Quote, error) {
				q.ID = "q-1"
				return q, nil
			})
		repo.EXPECT().Source().Return("local")

		form := sampleForm()
		form.PayMethod = entities.PayMethodCard
		if _, err := uc.Submit(context.Background(), form, samplePricing(), "local", entities.DefaultSettings()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("existing deposit link is kept", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		links := mock_interfaces.NewMockIPaymentLinkProvider(ctrl)
		uc := NewQuoteUseCase(repo, links)

		var stored entities.Quote
		repo.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, q entities.Quote) (entities.Quote, error) {
				stored = q
				q.ID = "q-1"
				return q, nil
			})
		repo.EXPECT().Source().Return("local")

		form := sampleForm()
		form.PayMethod = entities.PayMethodCard
		form.DepositLink = "https://pay.example/existing"
		if _, err := uc.Submit(context.Background(), form, samplePricing(), "local", entities.DefaultSettings()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if stored.Payment.DepositLink != "https://pay.example/existing" {
			t.Fatalf("expected supplied link kept, got %q", stored.Payment.DepositLink)
		}
	})

	t.Run("append error surfaces", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo, nil)

		repo.EXPECT().Append(gomock.Any(), gomock.Any()).Return(entities.Quote{}, errors.New("db down"))

		_, err := uc.Submit(context.Background(), sampleForm(), samplePricing(), "local", entities.DefaultSettings())
		if err == nil {
			t.Fatal("expected error, got nil")
		}
	})
}

func TestQuoteUseCase_History(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("expires only quotes past their window", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo, nil)
		uc.now = fixedClock(now)

		stale := entities.Quote{ID: "stale", Status: entities.QuoteStatusSent, ExpiresAt: now.Add(-time.Hour)}
		fresh := entities.Quote{ID: "fresh", Status: entities.QuoteStatusSent, ExpiresAt: now.Add(time.Hour)}
		done := entities.Quote{ID: "done", Status: entities.QuoteStatusAccepted, ExpiresAt: now.Add(-time.Hour)}
		gone := entities.Quote{ID: "gone", Status: entities.QuoteStatusExpired, ExpiresAt: now.Add(-time.Hour)}

		repo.EXPECT().List(gomock.Any()).Return([]entities.Quote{stale, fresh, done, gone}, nil)
		expired := stale
		expired.Status = entities.QuoteStatusExpired
		repo.EXPECT().UpdateStatus(gomock.Any(), "stale", entities.QuoteStatusExpired, now).Return(expired, nil)
		repo.EXPECT().Source().Return("local")

		res, err := uc.History(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if res.Source != "local" {
			t.Fatalf("expected local source, got %s", res.Source)
		}
		if res.Quotes[0].Status != entities.QuoteStatusExpired {
			t.Fatalf("expected stale quote expired in response, got %s", res.Quotes[0].Status)
		}
		if res.Quotes[1].Status != entities.QuoteStatusSent {
			t.Fatalf("expected fresh quote untouched, got %s", res.Quotes[1].Status)
		}
	})

	t.Run("list error surfaces", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo, nil)

		repo.EXPECT().List(gomock.Any()).Return(nil, errors.New("db down"))

		if _, err := uc.History(context.Background()); err == nil {
			t.Fatal("expected error, got nil")
		}
	})
}

func TestQuoteUseCase_UpdateStatus(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("blank id", func(t *testing.T) {
		uc := NewQuoteUseCase(nil, nil)
		_, err := uc.UpdateStatus(context.Background(), "  ", "sent")
		if !errors.Is(err, ErrInvalidQuoteID) {
			t.Fatalf("expected ErrInvalidQuoteID, got %v", err)
		}
	})

	t.Run("unknown quote", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo, nil)

		repo.EXPECT().GetByID(gomock.Any(), "missing").Return(entities.Quote{}, nil)

		_, err := uc.UpdateStatus(context.Background(), "missing", "sent")
		if !errors.Is(err, ErrQuoteNotFound) {
			t.Fatalf("expected ErrQuoteNotFound, got %v", err)
		}
	})

	t.Run("legal transition goes through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo, nil)
		uc.now = fixedClock(now)

		current := entities.Quote{ID: "q-1", Status: entities.QuoteStatusDraft}
		updated := entities.Quote{ID: "q-1", Status: entities.QuoteStatusSent}
		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(current, nil)
		repo.EXPECT().UpdateStatus(gomock.Any(), "q-1", entities.QuoteStatusSent, now).Return(updated, nil)

		got, err := uc.UpdateStatus(context.Background(), "q-1", "sent")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got.Status != entities.QuoteStatusSent {
			t.Fatalf("expected sent, got %s", got.Status)
		}
	})

	t.Run("illegal transition is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo, nil)

		current := entities.Quote{ID: "q-1", Status: entities.QuoteStatusAccepted}
		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(current, nil)

		_, err := uc.UpdateStatus(context.Background(), "q-1", "declined")
		if !errors.Is(err, ErrInvalidStatusTransition) {
			t.Fatalf("expected ErrInvalidStatusTransition, got %v", err)
		}
	})

	t.Run("repeating the current status is a no-op write", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo, nil)
		uc.now = fixedClock(now)

		current := entities.Quote{ID: "q-1", Status: entities.QuoteStatusSent}
		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(current, nil)
		repo.EXPECT().UpdateStatus(gomock.Any(), "q-1", entities.QuoteStatusSent, now).Return(current, nil)

		if _, err := uc.UpdateStatus(context.Background(), "q-1", "sent"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("unknown target status normalizes to draft", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo, nil)
		uc.now = fixedClock(now)

		current := entities.Quote{ID: "q-1", Status: entities.QuoteStatusExpired}
		updated := entities.Quote{ID: "q-1", Status: entities.QuoteStatusDraft}
		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(current, nil)
		repo.EXPECT().UpdateStatus(gomock.Any(), "q-1", entities.QuoteStatusDraft, now).Return(updated, nil)

		got, err := uc.UpdateStatus(context.Background(), "q-1", "whatever")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got.Status != entities.QuoteStatusDraft {
			t.Fatalf("expected draft, got %s", got.Status)
		}
	})
}

func TestQuoteUseCase_GetByID(t *testing.T) {
	t.Run("blank id", func(t *testing.T) {
		uc := NewQuoteUseCase(nil, nil)
		_, err := uc.GetByID(context.Background(), "")
		if !errors.Is(err, ErrInvalidQuoteID) {
			t.Fatalf("expected ErrInvalidQuoteID, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo, nil)

		repo.EXPECT().GetByID(gomock.Any(), "nope").Return(entities.Quote{}, nil)

		_, err := uc.GetByID(context.Background(), "nope")
		if !errors.Is(err, ErrQuoteNotFound) {
			t.Fatalf("expected ErrQuoteNotFound, got %v", err)
		}
	})

	t.Run("found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewQuoteUseCase(repo, nil)

		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{ID: "q-1"}, nil)

		got, err := uc.GetByID(context.Background(), " q-1 ")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got.ID != "q-1" {
			t.Fatalf("expected q-1, got %s", got.ID)
		}
	})
}

func TestQuoteUseCase_AllowedTransitions(t *testing.T) {
	uc := NewQuoteUseCase(nil, nil)

	got := uc.AllowedTransitions("sent")
	want := entities.AllowedTransitions(entities.QuoteStatusSent)
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	// Unknown statuses behave like draft.
	if len(uc.AllowedTransitions("nope")) != len(entities.AllowedTransitions(entities.QuoteStatusDraft)) {
		t.Fatal("expected unknown status to use the draft flow")
	}
}
