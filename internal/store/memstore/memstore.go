// Package memstore is an in-process store with the same uniqueness rules as
// the Mongo indexes. It backs local runs with STORAGE_DRIVER=memory and tests.
package memstore

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harentsoaR/dental-booking/internal/models"
	"github.com/harentsoaR/dental-booking/internal/store"
)

type Store struct {
	mu       sync.RWMutex
	users    map[primitive.ObjectID]models.User
	dentists map[primitive.ObjectID]models.Dentist
	bookings map[primitive.ObjectID]models.Booking
}

func New() *Store {
	return &Store{
		users:    make(map[primitive.ObjectID]models.User),
		dentists: make(map[primitive.ObjectID]models.Dentist),
		bookings: make(map[primitive.ObjectID]models.Booking),
	}
}

// Users

func (s *Store) FindUserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (s *Store) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) FindUsersByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *Store) InsertUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return store.ErrDuplicate
		}
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	s.users[u.ID] = *u
	return nil
}

// Dentists

func (s *Store) ListDentists(_ context.Context) ([]models.Dentist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Dentist, 0, len(s.dentists))
	for _, d := range s.dentists {
		out = append(out, d)
	}
	sort.SliceStable(out, func(i, j int) bool { return newer(out[i].CreatedAt, out[j].CreatedAt, out[i].ID, out[j].ID) })
	return out, nil
}

func (s *Store) FindDentistByID(_ context.Context, id primitive.ObjectID) (*models.Dentist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.dentists[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &d, nil
}

func (s *Store) FindDentistByName(_ context.Context, name string) (*models.Dentist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.dentists {
		if d.Name == name {
			return &d, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) FindDentistsByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Dentist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Dentist, 0, len(ids))
	for _, id := range ids {
		if d, ok := s.dentists[id]; ok {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *Store) InsertDentist(_ context.Context, d *models.Dentist) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dentistNameTaken(d.Name, d.ID) {
		return store.ErrDuplicate
	}
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	s.dentists[d.ID] = *d
	return nil
}

func (s *Store) ReplaceDentist(_ context.Context, d *models.Dentist) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.dentists[d.ID]
	if !ok {
		return store.ErrNotFound
	}
	if s.dentistNameTaken(d.Name, d.ID) {
		return store.ErrDuplicate
	}
	existing.Name = d.Name
	existing.AreaOfExpertise = d.AreaOfExpertise
	existing.YearsOfExperience = d.YearsOfExperience
	s.dentists[d.ID] = existing
	return nil
}

func (s *Store) DeleteDentist(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.dentists[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.dentists, id)
	return nil
}

func (s *Store) dentistNameTaken(name string, except primitive.ObjectID) bool {
	for id, d := range s.dentists {
		if id != except && d.Name == name {
			return true
		}
	}
	return false
}

// Bookings

func (s *Store) ListBookings(_ context.Context) ([]models.Booking, error) {
	return s.filterBookings(func(models.Booking) bool { return true }), nil
}

func (s *Store) ListBookingsByDentist(_ context.Context, dentistID primitive.ObjectID) ([]models.Booking, error) {
	return s.filterBookings(func(b models.Booking) bool { return b.Dentist == dentistID }), nil
}

func (s *Store) FindBookingByID(_ context.Context, id primitive.ObjectID) (*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &b, nil
}

func (s *Store) FindBookingByUser(_ context.Context, userID primitive.ObjectID) (*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.bookings {
		if b.User == userID {
			return &b, nil
		}
	}
	return nil, store.ErrNotFound
}

// InsertBooking rejects a second booking for the same user, mirroring the
// unique index on bookings.user.
func (s *Store) InsertBooking(_ context.Context, b *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.bookings {
		if existing.User == b.User {
			return store.ErrDuplicate
		}
	}
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	s.bookings[b.ID] = *b
	return nil
}

func (s *Store) ReplaceBooking(_ context.Context, b *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.bookings[b.ID]
	if !ok {
		return store.ErrNotFound
	}
	existing.BookingDate = b.BookingDate
	existing.Dentist = b.Dentist
	s.bookings[b.ID] = existing
	return nil
}

func (s *Store) DeleteBooking(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bookings[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.bookings, id)
	return nil
}

func (s *Store) DeleteBookingsByDentist(_ context.Context, dentistID primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, b := range s.bookings {
		if b.Dentist == dentistID {
			delete(s.bookings, id)
			n++
		}
	}
	return n, nil
}

func (s *Store) filterBookings(keep func(models.Booking) bool) []models.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		if keep(b) {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return newer(out[i].CreatedAt, out[j].CreatedAt, out[i].ID, out[j].ID) })
	return out
}
