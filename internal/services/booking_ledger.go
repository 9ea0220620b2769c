package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/harentsoaR/dental-booking/internal/apperr"
	"github.com/harentsoaR/dental-booking/internal/models"
	"github.com/harentsoaR/dental-booking/internal/store"
)

// BookingInput is the payload of a create or update. On update, empty
// fields are left unchanged. The owning user is never part of it.
type BookingInput struct {
	// Dentist is either an ObjectID hex string or a dentist's exact name.
	Dentist     string
	BookingDate *time.Time
}

// BookingLedger owns bookings and the one-booking-per-user rule.
// The rule applies to every role; the unique index on bookings.user is
// what enforces it under concurrent creates.
type BookingLedger struct {
	bookings BookingStore
	dentists DentistStore
	users    UserStore
	notifier Notifier
	logger   *zap.Logger
	now      func() time.Time
}

// NewBookingLedger builds a ledger. notifier may be nil; a nil logger
// discards output.
func NewBookingLedger(bookings BookingStore, dentists DentistStore, users UserStore, notifier Notifier, logger *zap.Logger) *BookingLedger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookingLedger{
		bookings: bookings,
		dentists: dentists,
		users:    users,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

func (l *BookingLedger) ListAll(ctx context.Context) ([]models.BookingView, error) {
	bookings, err := l.bookings.ListBookings(ctx)
	if err != nil {
		return nil, apperr.Unexpected("list bookings", err)
	}
	return l.views(ctx, bookings)
}

// ListForDentist lists the bookings referencing a dentist.
func (l *BookingLedger) ListForDentist(ctx context.Context, dentistID primitive.ObjectID) ([]models.BookingView, error) {
	bookings, err := l.bookings.ListBookingsByDentist(ctx, dentistID)
	if err != nil {
		return nil, apperr.Unexpected("list dentist bookings", err)
	}
	return l.views(ctx, bookings)
}

func (l *BookingLedger) GetMine(ctx context.Context, who models.Identity) (*models.BookingView, error) {
	b, err := l.bookings.FindBookingByUser(ctx, who.ID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.NotFoundf("No booking found for this user")
	}
	if err != nil {
		return nil, apperr.Unexpected("find user booking", err)
	}
	return l.view(ctx, b)
}

func (l *BookingLedger) GetByID(ctx context.Context, id string, who models.Identity) (*models.BookingView, error) {
	b, err := l.authorized(ctx, id, who, "view")
	if err != nil {
		return nil, err
	}
	return l.view(ctx, b)
}

func (l *BookingLedger) Create(ctx context.Context, who models.Identity, in BookingInput) (*models.BookingView, error) {
	if in.Dentist == "" || in.BookingDate == nil || in.BookingDate.IsZero() {
		return nil, apperr.Validationf("Please provide dentist and date")
	}

	dentist, err := l.resolveDentist(ctx, in.Dentist)
	if err != nil {
		return nil, err
	}

	_, err = l.bookings.FindBookingByUser(ctx, who.ID)
	switch {
	case err == nil:
		return nil, apperr.Conflictf("The user with ID %s already has a booking. Only one session is allowed.", who.ID.Hex())
	case !errors.Is(err, store.ErrNotFound):
		return nil, apperr.Unexpected("find user booking", err)
	}

	b := &models.Booking{
		ID:          newID(),
		BookingDate: in.BookingDate.UTC(),
		User:        who.ID,
		Dentist:     dentist.ID,
		CreatedAt:   l.now().UTC(),
	}
	if err := l.bookings.InsertBooking(ctx, b); err != nil {
		// Lost the race against a concurrent create for the same user.
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperr.Conflictf("Only one booking per user is allowed.")
		}
		return nil, apperr.Unexpected("create booking", err)
	}

	// The booking is stored at this point; a failed user lookup only
	// shortens the summary and skips the confirmation.
	user, err := l.findUser(ctx, who.ID)
	if err != nil {
		l.logger.Warn("Booking created but user lookup failed",
			zap.String("booking_id", b.ID.Hex()),
			zap.String("user_id", who.ID.Hex()),
			zap.Error(err),
		)
		user = nil
	}
	if l.notifier != nil && user != nil {
		l.notifier.BookingCreated(user, dentist, b)
	}

	view := bookingView(b, user, dentist)
	return &view, nil
}

func (l *BookingLedger) Update(ctx context.Context, id string, who models.Identity, in BookingInput) (*models.BookingView, error) {
	b, err := l.authorized(ctx, id, who, "update")
	if err != nil {
		return nil, err
	}
	if in.Dentist == "" && in.BookingDate == nil {
		return nil, apperr.Validationf("No fields to update")
	}

	if in.Dentist != "" {
		dentist, err := l.resolveDentist(ctx, in.Dentist)
		if err != nil {
			return nil, err
		}
		b.Dentist = dentist.ID
	}
	if in.BookingDate != nil {
		if in.BookingDate.IsZero() {
			return nil, apperr.Validationf("Please add a booking date")
		}
		b.BookingDate = in.BookingDate.UTC()
	}

	if err := l.bookings.ReplaceBooking(ctx, b); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFoundf("No booking with id %s", id)
		}
		return nil, apperr.Unexpected("update booking", err)
	}
	return l.view(ctx, b)
}

func (l *BookingLedger) Delete(ctx context.Context, id string, who models.Identity) error {
	b, err := l.authorized(ctx, id, who, "delete")
	if err != nil {
		return err
	}
	if err := l.bookings.DeleteBooking(ctx, b.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.NotFoundf("No booking with id %s", id)
		}
		return apperr.Unexpected("delete booking", err)
	}
	return nil
}

// CheckAccess reports whether who may act on the booking, without
// touching it. NotFound comes before Forbidden.
func (l *BookingLedger) CheckAccess(ctx context.Context, id string, who models.Identity, action string) error {
	_, err := l.authorized(ctx, id, who, action)
	return err
}

// authorized loads a booking and checks the requester may act on it.
// Existence is checked before ownership.
func (l *BookingLedger) authorized(ctx context.Context, id string, who models.Identity, action string) (*models.Booking, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, apperr.NotFoundf("No booking with id %s", id)
	}
	b, err := l.bookings.FindBookingByID(ctx, oid)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.NotFoundf("No booking with id %s", id)
	}
	if err != nil {
		return nil, apperr.Unexpected("find booking", err)
	}
	if !who.Owns(b.User) {
		return nil, apperr.Forbiddenf("User %s is not authorized to %s this booking", who.ID.Hex(), action)
	}
	return b, nil
}

// resolveDentist accepts an ObjectID or, failing that, a trimmed exact name.
func (l *BookingLedger) resolveDentist(ctx context.Context, ref string) (*models.Dentist, error) {
	if oid, ok := parseID(ref); ok {
		d, err := l.dentists.FindDentistByID(ctx, oid)
		if err == nil {
			return d, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return nil, apperr.Unexpected("find dentist", err)
		}
	}

	name := store.NormalizeName(ref)
	if name == "" {
		return nil, apperr.NotFoundf("No dentist with id or name %s", ref)
	}
	d, err := l.dentists.FindDentistByName(ctx, name)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.NotFoundf("No dentist with id or name %s", ref)
	}
	if err != nil {
		return nil, apperr.Unexpected("find dentist by name", err)
	}
	return d, nil
}

func (l *BookingLedger) findUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	u, err := l.users.FindUserByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.Unexpected("find user", err)
	}
	return u, nil
}

func (l *BookingLedger) view(ctx context.Context, b *models.Booking) (*models.BookingView, error) {
	views, err := l.views(ctx, []models.Booking{*b})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// views joins user and dentist summaries onto bookings with one lookup per
// collection.
func (l *BookingLedger) views(ctx context.Context, bookings []models.Booking) ([]models.BookingView, error) {
	userIDs := make([]primitive.ObjectID, 0, len(bookings))
	dentistIDs := make([]primitive.ObjectID, 0, len(bookings))
	seenUsers := make(map[primitive.ObjectID]bool)
	seenDentists := make(map[primitive.ObjectID]bool)
	for _, b := range bookings {
		if !seenUsers[b.User] {
			seenUsers[b.User] = true
			userIDs = append(userIDs, b.User)
		}
		if !seenDentists[b.Dentist] {
			seenDentists[b.Dentist] = true
			dentistIDs = append(dentistIDs, b.Dentist)
		}
	}

	users, err := l.users.FindUsersByIDs(ctx, userIDs)
	if err != nil {
		return nil, apperr.Unexpected("find booking users", err)
	}
	dentists, err := l.dentists.FindDentistsByIDs(ctx, dentistIDs)
	if err != nil {
		return nil, apperr.Unexpected("find booking dentists", err)
	}

	usersByID := make(map[primitive.ObjectID]*models.User, len(users))
	for i := range users {
		usersByID[users[i].ID] = &users[i]
	}
	dentistsByID := make(map[primitive.ObjectID]*models.Dentist, len(dentists))
	for i := range dentists {
		dentistsByID[dentists[i].ID] = &dentists[i]
	}

	out := make([]models.BookingView, 0, len(bookings))
	for i := range bookings {
		b := &bookings[i]
		out = append(out, bookingView(b, usersByID[b.User], dentistsByID[b.Dentist]))
	}
	return out, nil
}

func bookingView(b *models.Booking, user *models.User, dentist *models.Dentist) models.BookingView {
	v := models.BookingView{
		ID:          b.ID,
		BookingDate: b.BookingDate,
		User:        &models.UserSummary{ID: b.User},
		Dentist:     &models.DentistSummary{ID: b.Dentist},
		CreatedAt:   b.CreatedAt,
	}
	if user != nil {
		v.User = user.Summary()
	}
	if dentist != nil {
		v.Dentist = dentist.Summary()
	}
	return v
}
