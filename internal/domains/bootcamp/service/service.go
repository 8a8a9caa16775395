package service

import (
	"context"
	"errors"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"bootcamp-backend/internal/domains/bootcamp/model"
	"bootcamp-backend/internal/domains/bootcamp/repository"
	"bootcamp-backend/internal/infrastructure/geocoder"
	"bootcamp-backend/internal/infrastructure/storage"
	"bootcamp-backend/internal/ownership"
	"bootcamp-backend/internal/query"
	"bootcamp-backend/internal/shared/apperror"
	"bootcamp-backend/internal/shared/auth"
	"bootcamp-backend/internal/shared/utils"
)

// EarthRadiusMiles converts a distance in miles to radians
const EarthRadiusMiles = 3963.0

const resourceName = "bootcamp"

type bootcampService struct {
	repo      repository.Repository
	guard     *ownership.Guard
	geocoder  geocoder.Geocoder
	files     storage.FileStore
	maxUpload int64
	now       func() time.Time
}

// NewService wires the bootcamp service. geo and files may be nil when
// the provider is not configured.
func NewService(
	repo repository.Repository,
	guard *ownership.Guard,
	geo geocoder.Geocoder,
	files storage.FileStore,
	maxUpload int64,
) Service {
	return &bootcampService{
		repo:      repo,
		guard:     guard,
		geocoder:  geo,
		files:     files,
		maxUpload: maxUpload,
		now:       time.Now,
	}
}

// =====================================================
// READ
// =====================================================

func (s *bootcampService) ListBootcamps(ctx context.Context, params url.Values) (*query.Result, error) {
	return query.Run(ctx, s.repo.Collection(), model.Schema, params, query.Options{})
}

func (s *bootcampService) GetBootcamp(ctx context.Context, id uuid.UUID) (*model.Bootcamp, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, id)
	}
	return b, nil
}

func (s *bootcampService) GetWithinRadius(ctx context.Context, zipcode string, distance float64) ([]*model.Bootcamp, error) {
	if strings.TrimSpace(zipcode) == "" || distance <= 0 {
		return nil, apperror.Validation("Please provide a zipcode and a positive distance")
	}
	if s.geocoder == nil {
		return nil, apperror.Upstream("Geocoder is not configured", nil)
	}

	loc, err := s.geocoder.Geocode(ctx, zipcode)
	if err != nil {
		if errors.Is(err, geocoder.ErrNoResult) {
			return nil, apperror.NotFound("No location found for zipcode %s", zipcode)
		}
		return nil, apperror.Upstream("Geocoding failed", err)
	}

	bootcamps, err := s.repo.WithinRadius(ctx, loc.Latitude, loc.Longitude, distance/EarthRadiusMiles)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if bootcamps == nil {
		bootcamps = []*model.Bootcamp{}
	}
	return bootcamps, nil
}

// =====================================================
// WRITE
// =====================================================

func (s *bootcampService) CreateBootcamp(ctx context.Context, p *auth.Principal, req model.CreateBootcampRequest) (*model.Bootcamp, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.Validation("%s", err.Error())
	}

	// Step 1: one bootcamp per publisher
	if err := s.guard.AuthorizeCreate(ctx, p, resourceName, s.repo.ExistsByOwner); err != nil {
		return nil, err
	}

	// Step 2: build entity
	b := &model.Bootcamp{
		ID:            uuid.New(),
		UserID:        p.ID,
		Name:          strings.TrimSpace(req.Name),
		Description:   req.Description,
		Website:       req.Website,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		Careers:       req.Careers,
		Photo:         model.DefaultPhoto,
		Housing:       req.Housing,
		JobAssistance: req.JobAssistance,
		JobGuarantee:  req.JobGuarantee,
		AcceptGi:      req.AcceptGi,
		CreatedAt:     s.now(),
	}
	b.Slug = utils.GenerateSlug(b.Name)

	// Step 3: geocode address
	if err := s.locate(ctx, b); err != nil {
		return nil, err
	}

	// Step 4: persist
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, mapRepoError(err, b.ID)
	}

	log.Info().
		Str("bootcamp_id", b.ID.String()).
		Str("user_id", p.ID.String()).
		Msg("Bootcamp created")
	return b, nil
}

func (s *bootcampService) UpdateBootcamp(ctx context.Context, p *auth.Principal, id uuid.UUID, req model.UpdateBootcampRequest) (*model.Bootcamp, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.Validation("%s", err.Error())
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, id)
	}
	if err := s.guard.Authorize(p, ownership.ActionUpdate, resourceName, b); err != nil {
		return nil, err
	}

	if req.Apply(b) {
		if err := s.locate(ctx, b); err != nil {
			return nil, err
		}
	}
	b.Slug = utils.GenerateSlug(b.Name)

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, mapRepoError(err, id)
	}
	return b, nil
}

func (s *bootcampService) DeleteBootcamp(ctx context.Context, p *auth.Principal, id uuid.UUID) error {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return mapRepoError(err, id)
	}
	if err := s.guard.Authorize(p, ownership.ActionDelete, resourceName, b); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepoError(err, id)
	}
	s.removePhoto(ctx, b.ID, b.Photo)

	log.Info().Str("bootcamp_id", id.String()).Str("user_id", p.ID.String()).Msg("Bootcamp deleted")
	return nil
}

func (s *bootcampService) UploadPhoto(ctx context.Context, p *auth.Principal, id uuid.UUID, file io.Reader) (*model.PhotoResponse, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, id)
	}
	if err := s.guard.Authorize(p, ownership.ActionUpdate, resourceName, b); err != nil {
		return nil, err
	}
	if s.files == nil {
		return nil, apperror.Upstream("File storage is not configured", nil)
	}

	// Read one byte past the limit so DetectImage can reject oversize files
	if s.maxUpload > 0 {
		file = io.LimitReader(file, s.maxUpload+1)
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, apperror.Validation("Problem with file upload")
	}

	img, err := storage.DetectImage(data, s.maxUpload)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrEmpty):
			return nil, apperror.Validation("Please upload a file")
		case errors.Is(err, storage.ErrTooLarge):
			return nil, apperror.Validation("Please upload an image less than %d bytes", s.maxUpload)
		default:
			return nil, apperror.Validation("Please upload an image file")
		}
	}

	name := storage.PhotoName(b.ID.String(), img)
	location, err := s.files.Save(ctx, data, name, img.ContentType)
	if err != nil {
		return nil, apperror.Upstream("Problem with file upload", err)
	}
	if err := s.repo.UpdatePhoto(ctx, b.ID, name); err != nil {
		return nil, mapRepoError(err, id)
	}
	if b.Photo != name {
		s.removePhoto(ctx, b.ID, b.Photo)
	}

	return &model.PhotoResponse{Photo: name, URL: location}, nil
}

// =====================================================
// HELPERS
// =====================================================

// locate replaces the location fields from the current address. Without a
// geocoder the old coordinates are cleared so radius search cannot match a
// stale position.
func (s *bootcampService) locate(ctx context.Context, b *model.Bootcamp) error {
	if s.geocoder == nil {
		log.Warn().Str("bootcamp_id", b.ID.String()).Msg("Geocoder not configured, skipping location")
		b.ClearLocation()
		return nil
	}

	loc, err := s.geocoder.Geocode(ctx, b.Address)
	if err != nil {
		if errors.Is(err, geocoder.ErrNoResult) {
			return apperror.Validation("Could not geocode address '%s'", b.Address)
		}
		return apperror.Upstream("Geocoding failed", err)
	}
	b.ClearLocation()
	b.SetLocation(loc)
	return nil
}

// removePhoto deletes a stored photo object. The row change is already
// committed, so a failure only leaves an orphaned object behind.
func (s *bootcampService) removePhoto(ctx context.Context, id uuid.UUID, photo string) {
	if s.files == nil || photo == "" || photo == model.DefaultPhoto {
		return
	}
	if err := s.files.Delete(ctx, photo); err != nil {
		log.Warn().Err(err).Str("bootcamp_id", id.String()).Str("photo", photo).Msg("Failed to delete photo object")
	}
}

func mapRepoError(err error, id uuid.UUID) error {
	switch {
	case errors.Is(err, model.ErrBootcampNotFound):
		return apperror.NotFound("Bootcamp not found with id of %s", id)
	case errors.Is(err, model.ErrDuplicateName):
		return apperror.Wrap(apperror.KindValidation, "Duplicate field value entered", err)
	default:
		return apperror.Internal(err)
	}
}
