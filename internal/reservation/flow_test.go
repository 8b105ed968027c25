package reservation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eclat/internal/availability"
	"eclat/internal/model"
)

var testRefDate = time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC) // a Tuesday

func testCalculator() *availability.Calculator {
	return availability.NewCalculator(testRefDate, nil, nil)
}

func testService() model.Service {
	return model.Service{
		ID:              1,
		Name:            "Maquillage mariée",
		PriceCents:      25000,
		DurationMinutes: 120,
		IsActive:        true,
	}
}

func testContact() ContactInfo {
	return ContactInfo{
		FirstName: "Marie",
		LastName:  "Dupont",
		Email:     "marie@example.com",
		Phone:     "0612345678",
	}
}

// mockGateway implements SubmissionGateway for testing.
type mockGateway struct {
	err      error
	delay    time.Duration
	received []Draft
}

func (g *mockGateway) Submit(ctx context.Context, draft Draft) (*Confirmation, error) {
	if g.delay > 0 {
		select {
		case <-time.After(g.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	g.received = append(g.received, draft)
	if g.err != nil {
		return nil, g.err
	}
	return &Confirmation{ReservationID: int64(len(g.received))}, nil
}

func advanceToConfirm(t *testing.T, f *Flow) {
	t.Helper()
	require.NoError(t, f.Choose(ChooseService(testService())))
	require.NoError(t, f.ConfirmDateTime(testCalculator(), DateTimeChoice{
		Date: time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC), // a Saturday
		Time: "10:00",
	}))
	require.NoError(t, f.ConfirmContact(testContact()))
	require.Equal(t, StepConfirm, f.Step())
}

func TestChooseGuards(t *testing.T) {
	f := NewFlow()

	var vErr *ValidationError
	err := f.Choose(Selection{})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, StepSelectService, f.Step())

	require.NoError(t, f.Choose(ChooseService(testService())))
	assert.Equal(t, StepSelectDateTime, f.Step())

	// Choosing again without going back is a step error.
	var sErr *StepError
	err = f.Choose(ChooseService(testService()))
	require.ErrorAs(t, err, &sErr)
}

func TestChangingSelectionClearsDateTime(t *testing.T) {
	f := NewFlow()
	calc := testCalculator()

	require.NoError(t, f.Choose(ChooseService(testService())))
	require.NoError(t, f.ConfirmDateTime(calc, DateTimeChoice{
		Date: time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC),
		Time: "09:30",
	}))

	// Back to step 2, then step 1, then pick a different item.
	require.NoError(t, f.Back())
	require.NoError(t, f.Back())
	formation := model.Formation{ID: 7, Title: "Auto-maquillage", PriceCents: 9000, DurationHours: 3}
	require.NoError(t, f.Choose(ChooseFormation(formation)))

	assert.True(t, f.Draft().When.IsZero(), "stale date/time must not survive a selection change")
}

func TestSameSelectionKeepsDateTime(t *testing.T) {
	f := NewFlow()
	calc := testCalculator()
	svc := testService()

	require.NoError(t, f.Choose(ChooseService(svc)))
	require.NoError(t, f.ConfirmDateTime(calc, DateTimeChoice{
		Date: time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC),
		Time: "09:30",
	}))
	require.NoError(t, f.Back())
	require.NoError(t, f.Back())
	require.NoError(t, f.Choose(ChooseService(svc)))

	assert.Equal(t, "09:30", f.Draft().When.Time)
}

func TestConfirmDateTimeGuards(t *testing.T) {
	calc := testCalculator()

	tests := []struct {
		name    string
		choice  DateTimeChoice
		wantErr any
	}{
		{
			name:    "missing date",
			choice:  DateTimeChoice{Time: "10:00"},
			wantErr: &ValidationError{},
		},
		{
			name:    "missing time",
			choice:  DateTimeChoice{Date: time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC)},
			wantErr: &ValidationError{},
		},
		{
			name: "unavailable sunday",
			choice: DateTimeChoice{
				Date: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
				Time: "10:00",
			},
			wantErr: &AvailabilityConflictError{},
		},
		{
			name: "slot closed on saturday",
			choice: DateTimeChoice{
				Date: time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC),
				Time: "09:30",
			},
			wantErr: &AvailabilityConflictError{},
		},
		{
			name: "slot not in catalog",
			choice: DateTimeChoice{
				Date: time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC),
				Time: "23:00",
			},
			wantErr: &AvailabilityConflictError{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFlow()
			require.NoError(t, f.Choose(ChooseService(testService())))

			err := f.ConfirmDateTime(calc, tt.choice)
			require.Error(t, err)
			switch want := tt.wantErr.(type) {
			case *ValidationError:
				assert.ErrorAs(t, err, &want)
			case *AvailabilityConflictError:
				assert.ErrorAs(t, err, &want)
			}
			assert.Equal(t, StepSelectDateTime, f.Step(), "failed guard must not move the step")
		})
	}
}

func TestConfirmContactGuards(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*ContactInfo)
		wantField string
	}{
		{"empty first name", func(c *ContactInfo) { c.FirstName = "" }, "first_name"},
		{"whitespace last name", func(c *ContactInfo) { c.LastName = "   " }, "last_name"},
		{"empty email", func(c *ContactInfo) { c.Email = "" }, "email"},
		{"empty phone", func(c *ContactInfo) { c.Phone = "" }, "phone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFlow()
			require.NoError(t, f.Choose(ChooseService(testService())))
			require.NoError(t, f.ConfirmDateTime(testCalculator(), DateTimeChoice{
				Date: time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC),
				Time: "09:00",
			}))

			contact := testContact()
			tt.mutate(&contact)

			var vErr *ValidationError
			err := f.ConfirmContact(contact)
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantField, vErr.Field)
			assert.Equal(t, StepEnterContact, f.Step())
		})
	}

	// Message is optional and a bare email passes: only presence is checked.
	f := NewFlow()
	require.NoError(t, f.Choose(ChooseService(testService())))
	require.NoError(t, f.ConfirmDateTime(testCalculator(), DateTimeChoice{
		Date: time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC),
		Time: "09:00",
	}))
	contact := testContact()
	contact.Email = "not-an-email"
	contact.Message = ""
	require.NoError(t, f.ConfirmContact(contact))
}

func TestSubmitSuccess(t *testing.T) {
	f := NewFlow()
	gw := &mockGateway{}
	advanceToConfirm(t, f)

	conf, err := f.Submit(context.Background(), gw)
	require.NoError(t, err)
	require.NotNil(t, conf)
	assert.Equal(t, StepSuccess, f.Step())

	require.Len(t, gw.received, 1)
	draft := gw.received[0]
	assert.Equal(t, int64(25000), draft.Selection.PriceCents())
	assert.Equal(t, 120, draft.Selection.DurationMinutes())
	assert.Equal(t, "Marie", draft.Contact.FirstName)
	assert.Equal(t, "10:00", draft.When.Time)
}

func TestSubmitFailureStaysAtConfirm(t *testing.T) {
	f := NewFlow()
	gw := &mockGateway{err: errors.New("gateway unreachable")}
	advanceToConfirm(t, f)

	_, err := f.Submit(context.Background(), gw)
	var subErr *SubmissionError
	require.ErrorAs(t, err, &subErr)

	assert.Equal(t, StepConfirm, f.Step(), "a failed submission must not advance")
	draft := f.Draft()
	assert.False(t, draft.Selection.IsEmpty(), "draft must survive a failed submission")
	assert.Equal(t, "Marie", draft.Contact.FirstName)

	// Retry after the gateway recovers.
	gw.err = nil
	conf, err := f.Submit(context.Background(), gw)
	require.NoError(t, err)
	require.NotNil(t, conf)
	assert.Equal(t, StepSuccess, f.Step())
}

func TestSubmitBlocksConcurrentSubmission(t *testing.T) {
	f := NewFlow()
	gw := &mockGateway{delay: 200 * time.Millisecond}
	advanceToConfirm(t, f)

	done := make(chan error, 1)
	go func() {
		_, err := f.Submit(context.Background(), gw)
		done <- err
	}()

	// Wait until the first submission is in flight, then try again.
	deadline := time.After(time.Second)
	for !f.Submitting() {
		select {
		case <-deadline:
			t.Fatal("first submission never started")
		case <-time.After(5 * time.Millisecond):
		}
	}

	_, err := f.Submit(context.Background(), gw)
	assert.ErrorIs(t, err, ErrSubmissionInFlight)

	require.NoError(t, <-done)
	assert.Equal(t, StepSuccess, f.Step())
	assert.Len(t, gw.received, 1, "only one draft may reach the gateway")
}

func TestSubmitCancellation(t *testing.T) {
	f := NewFlow()
	gw := &mockGateway{delay: time.Second}
	advanceToConfirm(t, f)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := f.Submit(ctx, gw)
	var subErr *SubmissionError
	require.ErrorAs(t, err, &subErr)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	assert.Equal(t, StepConfirm, f.Step())
	assert.False(t, f.Submitting(), "cancelled submission must return to the idle sub-state")
	assert.Equal(t, "Marie", f.Draft().Contact.FirstName)
}

func TestBackNavigation(t *testing.T) {
	f := NewFlow()
	advanceToConfirm(t, f)

	require.NoError(t, f.Back())
	assert.Equal(t, StepEnterContact, f.Step())
	require.NoError(t, f.Back())
	assert.Equal(t, StepSelectDateTime, f.Step())
	require.NoError(t, f.Back())
	assert.Equal(t, StepSelectService, f.Step())

	// Back from step 1 exits the flow externally; inside the machine it fails.
	var sErr *StepError
	require.ErrorAs(t, f.Back(), &sErr)
}

func TestRestartResetsEverything(t *testing.T) {
	f := NewFlow()
	gw := &mockGateway{}
	advanceToConfirm(t, f)

	// Restart is only valid after success.
	var sErr *StepError
	require.ErrorAs(t, f.Restart(), &sErr)

	_, err := f.Submit(context.Background(), gw)
	require.NoError(t, err)
	require.Equal(t, StepSuccess, f.Step())

	require.NoError(t, f.Restart())
	assert.Equal(t, StepSelectService, f.Step())
	draft := f.Draft()
	assert.True(t, draft.Selection.IsEmpty())
	assert.True(t, draft.When.IsZero())
	assert.Equal(t, ContactInfo{}, draft.Contact)
	assert.Nil(t, f.Confirmation())
}

func TestStepString(t *testing.T) {
	steps := map[Step]string{
		StepSelectService:  "select_service",
		StepSelectDateTime: "select_datetime",
		StepEnterContact:   "enter_contact",
		StepConfirm:        "confirm",
		StepSuccess:        "success",
		Step(42):           "unknown",
	}
	for step, want := range steps {
		assert.Equal(t, want, step.String())
	}
}
