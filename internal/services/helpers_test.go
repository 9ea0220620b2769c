package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/harentsoaR/dental-booking/internal/models"
	"github.com/harentsoaR/dental-booking/internal/store/memstore"
)

type fixture struct {
	store    *memstore.Store
	registry *DentistRegistry
	ledger   *BookingLedger
	notifier *recordingNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := memstore.New()
	n := &recordingNotifier{}
	return &fixture{
		store:    s,
		registry: NewDentistRegistry(s, s),
		ledger:   NewBookingLedger(s, s, s, n, zap.NewNop()),
		notifier: n,
	}
}

func (f *fixture) user(t *testing.T, name, role string) models.Identity {
	t.Helper()
	u := &models.User{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Email:     name + "@clinic.test",
		Telephone: "0800000000",
		Role:      role,
	}
	require.NoError(t, f.store.InsertUser(context.Background(), u))
	return u.Identity()
}

func (f *fixture) dentist(t *testing.T, name string) *models.Dentist {
	t.Helper()
	d, err := f.registry.Create(context.Background(), DentistInput{
		Name:              ptr(name),
		AreaOfExpertise:   ptr(models.ExpertiseFilling),
		YearsOfExperience: ptr(5),
	})
	require.NoError(t, err)
	return d
}

func ptr[T any](v T) *T { return &v }

func date(day int) *time.Time {
	d := time.Date(2026, 11, day, 10, 0, 0, 0, time.UTC)
	return &d
}

type recordingNotifier struct {
	mu    sync.Mutex
	calls []primitive.ObjectID
}

func (n *recordingNotifier) BookingCreated(_ *models.User, _ *models.Dentist, b *models.Booking) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, b.ID)
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.calls)
}
