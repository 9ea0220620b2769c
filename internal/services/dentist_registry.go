package services

import (
	"context"
	"errors"
	"time"

	"github.com/harentsoaR/dental-booking/internal/apperr"
	"github.com/harentsoaR/dental-booking/internal/models"
	"github.com/harentsoaR/dental-booking/internal/store"
)

// DentistInput carries the fields of a create or a partial update.
// Nil fields are left unchanged on update.
type DentistInput struct {
	Name              *string `json:"name"`
	AreaOfExpertise   *string `json:"areaOfExpertise"`
	YearsOfExperience *int    `json:"yearsOfExperience"`
}

// dentistFields is the merged record that is validated before every write.
type dentistFields struct {
	Name              string `json:"name" validate:"required,max=50"`
	AreaOfExpertise   string `json:"areaOfExpertise" validate:"required,oneof=filling extraction orthodontics scaling 'oral surgery'"`
	YearsOfExperience *int   `json:"yearsOfExperience" validate:"required,gte=0"`
}

// DentistRegistry owns dentist profiles. It does not look at identities;
// routes restrict the mutating calls to admins.
type DentistRegistry struct {
	dentists DentistStore
	bookings BookingStore
	now      func() time.Time
}

func NewDentistRegistry(dentists DentistStore, bookings BookingStore) *DentistRegistry {
	return &DentistRegistry{dentists: dentists, bookings: bookings, now: time.Now}
}

func (r *DentistRegistry) List(ctx context.Context) ([]models.Dentist, error) {
	dentists, err := r.dentists.ListDentists(ctx)
	if err != nil {
		return nil, apperr.Unexpected("list dentists", err)
	}
	return dentists, nil
}

func (r *DentistRegistry) Get(ctx context.Context, id string) (*models.Dentist, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, apperr.NotFoundf("No dentist with id %s", id)
	}
	d, err := r.dentists.FindDentistByID(ctx, oid)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.NotFoundf("No dentist with id %s", id)
	}
	if err != nil {
		return nil, apperr.Unexpected("find dentist", err)
	}
	return d, nil
}

func (r *DentistRegistry) Create(ctx context.Context, in DentistInput) (*models.Dentist, error) {
	var fields dentistFields
	fields.apply(in)
	if err := validate.Struct(fields); err != nil {
		return nil, validationError(err)
	}

	d := &models.Dentist{CreatedAt: r.now().UTC()}
	fields.copyTo(d)
	if err := r.ensureNameFree(ctx, d); err != nil {
		return nil, err
	}
	d.ID = newID()

	if err := r.dentists.InsertDentist(ctx, d); err != nil {
		return nil, r.writeError("create dentist", d.Name, err)
	}
	return d, nil
}

func (r *DentistRegistry) Update(ctx context.Context, id string, in DentistInput) (*models.Dentist, error) {
	d, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := dentistFields{Name: d.Name, AreaOfExpertise: d.AreaOfExpertise, YearsOfExperience: &d.YearsOfExperience}
	fields.apply(in)
	if err := validate.Struct(fields); err != nil {
		return nil, validationError(err)
	}
	fields.copyTo(d)
	if err := r.ensureNameFree(ctx, d); err != nil {
		return nil, err
	}

	if err := r.dentists.ReplaceDentist(ctx, d); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperr.NotFoundf("No dentist with id %s", id)
		}
		return nil, r.writeError("update dentist", d.Name, err)
	}
	return d, nil
}

// Delete removes the dentist and then every booking that referenced it.
func (r *DentistRegistry) Delete(ctx context.Context, id string) error {
	d, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := r.dentists.DeleteDentist(ctx, d.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperr.NotFoundf("No dentist with id %s", id)
		}
		return apperr.Unexpected("delete dentist", err)
	}
	if _, err := r.bookings.DeleteBookingsByDentist(ctx, d.ID); err != nil {
		return apperr.Unexpected("delete dentist bookings", err)
	}
	return nil
}

// ensureNameFree is the friendly pre-check; the unique index still decides.
func (r *DentistRegistry) ensureNameFree(ctx context.Context, d *models.Dentist) error {
	existing, err := r.dentists.FindDentistByName(ctx, d.Name)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil
	case err != nil:
		return apperr.Unexpected("find dentist by name", err)
	case existing.ID != d.ID:
		return apperr.Validationf("Dentist name %q already exists", d.Name)
	}
	return nil
}

func (r *DentistRegistry) writeError(op, name string, err error) error {
	if errors.Is(err, store.ErrDuplicate) {
		return apperr.Validationf("Dentist name %q already exists", name)
	}
	return apperr.Unexpected(op, err)
}

func (f *dentistFields) apply(in DentistInput) {
	if in.Name != nil {
		f.Name = store.NormalizeName(*in.Name)
	}
	if in.AreaOfExpertise != nil {
		f.AreaOfExpertise = *in.AreaOfExpertise
	}
	if in.YearsOfExperience != nil {
		years := *in.YearsOfExperience
		f.YearsOfExperience = &years
	}
}

func (f *dentistFields) copyTo(d *models.Dentist) {
	d.Name = f.Name
	d.AreaOfExpertise = f.AreaOfExpertise
	d.YearsOfExperience = *f.YearsOfExperience
}
