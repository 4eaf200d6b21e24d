package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"horsebox_backend/internal/configurator/domain"
	"horsebox_backend/internal/events"
	"horsebox_backend/internal/leads/repository"
	"horsebox_backend/platform/apperr"
	platevents "horsebox_backend/platform/events"
	"horsebox_backend/platform/logger"
)

type fakeRepo struct {
	leads map[string]repository.Lead
	seq   int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{leads: make(map[string]repository.Lead)}
}

func (f *fakeRepo) CreateLead(_ context.Context, params repository.CreateLeadParams) (repository.Lead, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	lead := repository.Lead{
		ID:               uuid.New(),
		Reference:        params.Reference,
		SessionID:        params.SessionID,
		CustomerName:     params.CustomerName,
		CustomerEmail:    params.CustomerEmail,
		CustomerPhone:    params.CustomerPhone,
		AgentName:        params.AgentName,
		ModelSlug:        params.ModelSlug,
		ModelName:        params.ModelName,
		TotalIncVatPence: params.TotalIncVatPence,
		Configuration:    params.Configuration,
		Status:           "new",
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	f.leads[lead.Reference] = lead
	return lead, nil
}

func (f *fakeRepo) GetLeadByReference(_ context.Context, reference string) (repository.Lead, error) {
	lead, ok := f.leads[reference]
	if !ok {
		return repository.Lead{}, apperr.NotFound("lead not found")
	}
	return lead, nil
}

func (f *fakeRepo) ListLeads(_ context.Context, _ repository.ListLeadsParams) ([]repository.Lead, int, error) {
	items := make([]repository.Lead, 0, len(f.leads))
	for _, lead := range f.leads {
		items = append(items, lead)
	}
	return items, len(items), nil
}

func (f *fakeRepo) NextReferenceSequence(_ context.Context) (int64, error) {
	f.seq++
	return f.seq, nil
}

func (f *fakeRepo) MarkFollowUpSent(_ context.Context, reference string) error {
	lead, ok := f.leads[reference]
	if !ok {
		return apperr.NotFound("lead not found")
	}
	sent := time.Now().UTC().Format(time.RFC3339)
	lead.FollowUpSentAt = &sent
	f.leads[reference] = lead
	return nil
}

type fakeNotifier struct {
	followUps []LeadNotification
	err       error
}

func (f *fakeNotifier) SendLeadNotification(_ context.Context, _ LeadNotification) error {
	return f.err
}

func (f *fakeNotifier) SendFollowUpEmail(_ context.Context, n LeadNotification) error {
	if f.err != nil {
		return f.err
	}
	f.followUps = append(f.followUps, n)
	return nil
}

// recordingHandler captures the events the service publishes.
type recordingHandler struct {
	events []platevents.Event
	err    error
}

func (r *recordingHandler) Handle(_ context.Context, event platevents.Event) error {
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, event)
	return nil
}

type fakeScheduler struct {
	scheduled []string
	err       error
}

func (f *fakeScheduler) ScheduleFollowUp(_ context.Context, reference string) error {
	if f.err != nil {
		return f.err
	}
	f.scheduled = append(f.scheduled, reference)
	return nil
}

type testConfig struct{}

func (testConfig) GetPackageFile() string        { return "" }
func (testConfig) GetDefaultDepositPence() int64 { return 500000 }
func (testConfig) GetShareBaseURL() string       { return "http://localhost:3000/share/" }

func testSnapshot() *domain.Snapshot {
	return &domain.Snapshot{
		CustomerName:     "Jo Bloggs",
		CustomerEmail:    "jo@example.com",
		CustomerPhone:    "+447911123456",
		ModelSlug:        "aeos-qv-45",
		ModelName:        "Aeos QV 4.5",
		BasePricePence:   1850000,
		ChassisCostPence: 2000000,
		DepositPence:     500000,
		SelectedOptions:  []domain.SelectedOption{{Slug: "awning", Name: "Awning", PricePence: 120000, Quantity: 1}},
		Totals:           domain.Totals{TotalIncVatPence: 4764000},
		Schedule:         domain.PaymentSchedule{FirstPaymentPence: 3113333},
	}
}

func testService(t *testing.T) (*Service, *fakeRepo, *fakeNotifier, *fakeScheduler, *recordingHandler) {
	t.Helper()

	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	scheduler := &fakeScheduler{}
	recorder := &recordingHandler{}
	log := logger.New("development")
	bus := platevents.NewInMemoryBus(log)
	bus.Subscribe(events.LeadCreated{}.EventName(), recorder)

	return New(repo, bus, notifier, scheduler, testConfig{}, log), repo, notifier, scheduler, recorder
}

func TestCreateFromSnapshot_PersistsPublishesAndSchedules(t *testing.T) {
	svc, repo, _, scheduler, recorder := testService(t)

	resp, err := svc.CreateFromSnapshot(context.Background(), "sess-1", testSnapshot())
	if err != nil {
		t.Fatalf("create from snapshot: %v", err)
	}

	wantRef := fmt.Sprintf("HB-%d-0001", time.Now().UTC().Year())
	if resp.Reference != wantRef {
		t.Fatalf("unexpected reference %q, want %q", resp.Reference, wantRef)
	}
	if resp.ShareURL != "http://localhost:3000/share/"+wantRef {
		t.Fatalf("unexpected share url %q", resp.ShareURL)
	}
	if resp.TotalIncVatPence != 4764000 {
		t.Fatalf("unexpected total %d", resp.TotalIncVatPence)
	}

	if _, ok := repo.leads[wantRef]; !ok {
		t.Fatal("lead not persisted")
	}
	if len(recorder.events) != 1 {
		t.Fatalf("expected 1 lead.created event, got %d", len(recorder.events))
	}
	created, ok := recorder.events[0].(events.LeadCreated)
	if !ok {
		t.Fatalf("unexpected event %T", recorder.events[0])
	}
	if created.Reference != wantRef || created.ShareURL != resp.ShareURL {
		t.Fatalf("unexpected event payload %+v", created)
	}
	if created.CustomerPhone != "+447911123456" {
		t.Fatalf("customer phone missing from event: %+v", created)
	}
	if len(scheduler.scheduled) != 1 || scheduler.scheduled[0] != wantRef {
		t.Fatalf("expected follow-up scheduled for %q, got %v", wantRef, scheduler.scheduled)
	}
}

func TestCreateFromSnapshot_HandlerFailureDoesNotFailCreation(t *testing.T) {
	svc, repo, _, _, recorder := testService(t)
	recorder.err = errors.New("smtp down")

	resp, err := svc.CreateFromSnapshot(context.Background(), "sess-1", testSnapshot())
	if err != nil {
		t.Fatalf("expected creation to survive a handler failure, got %v", err)
	}
	if _, ok := repo.leads[resp.Reference]; !ok {
		t.Fatal("lead not persisted despite handler failure")
	}
}

func TestCreateFromSnapshot_ReferencesIncrement(t *testing.T) {
	svc, _, _, _, _ := testService(t)
	ctx := context.Background()

	first, _ := svc.CreateFromSnapshot(ctx, "sess-1", testSnapshot())
	second, _ := svc.CreateFromSnapshot(ctx, "sess-2", testSnapshot())

	if first.Reference == second.Reference {
		t.Fatalf("expected distinct references, got %q twice", first.Reference)
	}
}

func TestSharedConfiguration_RoundTripsSnapshot(t *testing.T) {
	svc, _, _, _, _ := testService(t)
	ctx := context.Background()

	created, err := svc.CreateFromSnapshot(ctx, "sess-1", testSnapshot())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	shared, err := svc.SharedConfiguration(ctx, created.Reference)
	if err != nil {
		t.Fatalf("shared configuration: %v", err)
	}

	if shared.Configuration.ModelSlug != "aeos-qv-45" {
		t.Fatalf("unexpected model slug %q", shared.Configuration.ModelSlug)
	}
	if len(shared.Configuration.SelectedOptions) != 1 {
		t.Fatalf("expected 1 option in shared view, got %d", len(shared.Configuration.SelectedOptions))
	}
}

func TestSharedConfiguration_UnknownReferenceIsNotFound(t *testing.T) {
	svc, _, _, _, _ := testService(t)

	_, err := svc.SharedConfiguration(context.Background(), "HB-2026-9999")

	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperr.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestShareQR_ReturnsPNG(t *testing.T) {
	svc, _, _, _, _ := testService(t)
	ctx := context.Background()
	created, _ := svc.CreateFromSnapshot(ctx, "sess-1", testSnapshot())

	png, err := svc.ShareQR(ctx, created.Reference)
	if err != nil {
		t.Fatalf("share qr: %v", err)
	}

	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Fatal("expected PNG output")
	}
}

func TestSendFollowUp_IsIdempotent(t *testing.T) {
	svc, _, notifier, _, _ := testService(t)
	ctx := context.Background()
	created, _ := svc.CreateFromSnapshot(ctx, "sess-1", testSnapshot())

	if err := svc.SendFollowUp(ctx, created.Reference); err != nil {
		t.Fatalf("first follow-up: %v", err)
	}
	if err := svc.SendFollowUp(ctx, created.Reference); err != nil {
		t.Fatalf("second follow-up: %v", err)
	}

	if len(notifier.followUps) != 1 {
		t.Fatalf("expected exactly 1 follow-up email, got %d", len(notifier.followUps))
	}
}
