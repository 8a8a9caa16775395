package service

import (
	"bytes"
	"context"
	"errors"
	"math"
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bootcamp-backend/internal/domains/bootcamp/model"
	"bootcamp-backend/internal/infrastructure/geocoder"
	"bootcamp-backend/internal/ownership"
	"bootcamp-backend/internal/query"
	"bootcamp-backend/internal/shared/apperror"
	"bootcamp-backend/internal/shared/auth"
)

type fakeRepo struct {
	bootcamps map[uuid.UUID]*model.Bootcamp
	photos    map[uuid.UUID]string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		bootcamps: make(map[uuid.UUID]*model.Bootcamp),
		photos:    make(map[uuid.UUID]string),
	}
}

func (r *fakeRepo) Create(_ context.Context, b *model.Bootcamp) error {
	for _, existing := range r.bootcamps {
		if existing.Name == b.Name {
			return model.ErrDuplicateName
		}
	}
	cp := *b
	r.bootcamps[b.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Bootcamp, error) {
	b, ok := r.bootcamps[id]
	if !ok {
		return nil, model.ErrBootcampNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeRepo) ExistsByOwner(_ context.Context, userID uuid.UUID) (bool, error) {
	for _, b := range r.bootcamps {
		if b.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) Update(_ context.Context, b *model.Bootcamp) error {
	if _, ok := r.bootcamps[b.ID]; !ok {
		return model.ErrBootcampNotFound
	}
	cp := *b
	r.bootcamps[b.ID] = &cp
	return nil
}

func (r *fakeRepo) UpdatePhoto(_ context.Context, id uuid.UUID, photo string) error {
	b, ok := r.bootcamps[id]
	if !ok {
		return model.ErrBootcampNotFound
	}
	b.Photo = photo
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.bootcamps[id]; !ok {
		return model.ErrBootcampNotFound
	}
	delete(r.bootcamps, id)
	return nil
}

func (r *fakeRepo) WithinRadius(_ context.Context, lat, lng, radius float64) ([]*model.Bootcamp, error) {
	var out []*model.Bootcamp
	for _, b := range r.bootcamps {
		if b.Latitude == nil || b.Longitude == nil {
			continue
		}
		if centralAngle(lat, lng, *b.Latitude, *b.Longitude) <= radius {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeRepo) Collection() query.Collection { return nil }

func centralAngle(lat1, lng1, lat2, lng2 float64) float64 {
	rad := func(d float64) float64 { return d * math.Pi / 180 }
	dLat, dLng := rad(lat2-lat1), rad(lng2-lng1)
	h := math.Pow(math.Sin(dLat/2), 2) + math.Cos(rad(lat1))*math.Cos(rad(lat2))*math.Pow(math.Sin(dLng/2), 2)
	return 2 * math.Asin(math.Sqrt(h))
}

type fakeGeocoder struct {
	locations map[string]*geocoder.Location
	err       error
}

func (g *fakeGeocoder) Geocode(_ context.Context, address string) (*geocoder.Location, error) {
	if g.err != nil {
		return nil, g.err
	}
	loc, ok := g.locations[address]
	if !ok {
		return nil, geocoder.ErrNoResult
	}
	return loc, nil
}

type fakeFiles struct {
	saved   map[string][]byte
	deleted []string
	err     error
}

func (f *fakeFiles) Save(_ context.Context, data []byte, name, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.saved[name] = data
	return "http://files.test/bootcamps/" + name, nil
}

func (f *fakeFiles) Delete(_ context.Context, name string) error {
	f.deleted = append(f.deleted, name)
	delete(f.saved, name)
	return nil
}

var (
	bostonAddress = "233 Bay State Rd Boston MA 02215"
	boston        = &geocoder.Location{Latitude: 42.350846, Longitude: -71.10324, City: "Boston", State: "MA", Zipcode: "02215", Country: "US"}
	providence    = &geocoder.Location{Latitude: 41.8240, Longitude: -71.4128, Zipcode: "02903"}
)

type fixture struct {
	svc   Service
	repo  *fakeRepo
	files *fakeFiles
	geo   *fakeGeocoder
}

func newFixture() *fixture {
	repo := newFakeRepo()
	files := &fakeFiles{saved: make(map[string][]byte)}
	geo := &fakeGeocoder{locations: map[string]*geocoder.Location{
		bostonAddress: boston,
		"02215":       boston,
		"02903":       providence,
	}}
	svc := NewService(repo, ownership.NewGuard(auth.RoleAdmin), geo, files, 1<<20)
	return &fixture{svc: svc, repo: repo, files: files, geo: geo}
}

func publisher() *auth.Principal { return &auth.Principal{ID: uuid.New(), Role: auth.RolePublisher} }
func admin() *auth.Principal     { return &auth.Principal{ID: uuid.New(), Role: auth.RoleAdmin} }

func devworks() model.CreateBootcampRequest {
	return model.CreateBootcampRequest{
		Name:        "Devworks Bootcamp",
		Description: "Devworks is a full stack JavaScript Bootcamp",
		Address:     bostonAddress,
		Careers:     []string{model.CareerWebDevelopment, model.CareerUIUX},
		Housing:     true,
	}
}

func TestCreateBootcamp_SlugAndLocation(t *testing.T) {
	f := newFixture()
	p := publisher()

	b, err := f.svc.CreateBootcamp(context.Background(), p, devworks())
	require.NoError(t, err)

	assert.Equal(t, p.ID, b.UserID)
	assert.Equal(t, "devworks-bootcamp", b.Slug)
	assert.Equal(t, model.DefaultPhoto, b.Photo)
	require.NotNil(t, b.Latitude)
	assert.InDelta(t, 42.350846, *b.Latitude, 1e-9)
	require.NotNil(t, b.City)
	assert.Equal(t, "Boston", *b.City)
}

func TestCreateBootcamp_DuplicateNameIs400AndCountUnchanged(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.CreateBootcamp(ctx, publisher(), devworks())
	require.NoError(t, err)
	require.Len(t, f.repo.bootcamps, 1)

	_, err = f.svc.CreateBootcamp(ctx, publisher(), devworks())
	require.Error(t, err)
	appErr := apperror.As(err)
	assert.Equal(t, 400, appErr.Status())
	assert.Equal(t, "Duplicate field value entered", appErr.Message)
	assert.Len(t, f.repo.bootcamps, 1)
}

func TestCreateBootcamp_OnePerPublisherUnlessAdmin(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p := publisher()

	_, err := f.svc.CreateBootcamp(ctx, p, devworks())
	require.NoError(t, err)

	second := devworks()
	second.Name = "ModernTech Bootcamp"
	_, err = f.svc.CreateBootcamp(ctx, p, second)
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.As(err).Kind)
	assert.Contains(t, apperror.As(err).Message, "has already published a bootcamp")

	a := admin()
	_, err = f.svc.CreateBootcamp(ctx, a, second)
	require.NoError(t, err)
	third := devworks()
	third.Name = "Codemasters"
	_, err = f.svc.CreateBootcamp(ctx, a, third)
	require.NoError(t, err)
}

func TestCreateBootcamp_Validation(t *testing.T) {
	f := newFixture()
	req := devworks()
	req.Careers = []string{"Astrology"}

	_, err := f.svc.CreateBootcamp(context.Background(), publisher(), req)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	assert.Empty(t, f.repo.bootcamps)
}

func TestUpdateAndDelete_OwnershipUserVersusAdmin(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	owner := publisher()

	b, err := f.svc.CreateBootcamp(ctx, owner, devworks())
	require.NoError(t, err)

	name := "Hijacked"
	other := publisher()
	_, err = f.svc.UpdateBootcamp(ctx, other, b.ID, model.UpdateBootcampRequest{Name: &name})
	require.Error(t, err)
	assert.Equal(t, 403, apperror.As(err).Status())
	assert.Equal(t, "Devworks Bootcamp", f.repo.bootcamps[b.ID].Name)

	err = f.svc.DeleteBootcamp(ctx, other, b.ID)
	assert.Equal(t, 403, apperror.As(err).Status())

	name = "Devworks Academy"
	updated, err := f.svc.UpdateBootcamp(ctx, admin(), b.ID, model.UpdateBootcampRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "devworks-academy", updated.Slug)

	require.NoError(t, f.svc.DeleteBootcamp(ctx, owner, b.ID))
	_, err = f.svc.GetBootcamp(ctx, b.ID)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestGetWithinRadius(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.CreateBootcamp(ctx, publisher(), devworks())
	require.NoError(t, err)

	// Boston to Providence is about 41 miles
	near, err := f.svc.GetWithinRadius(ctx, "02903", 50)
	require.NoError(t, err)
	assert.Len(t, near, 1)

	far, err := f.svc.GetWithinRadius(ctx, "02903", 10)
	require.NoError(t, err)
	assert.Empty(t, far)
	assert.NotNil(t, far)

	_, err = f.svc.GetWithinRadius(ctx, "99999", 10)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestUploadPhoto(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	owner := publisher()

	b, err := f.svc.CreateBootcamp(ctx, owner, devworks())
	require.NoError(t, err)

	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

	_, err = f.svc.UploadPhoto(ctx, publisher(), b.ID, bytes.NewReader(png))
	assert.Equal(t, 403, apperror.As(err).Status())

	_, err = f.svc.UploadPhoto(ctx, owner, b.ID, bytes.NewReader([]byte("plain text, not an image")))
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	res, err := f.svc.UploadPhoto(ctx, owner, b.ID, bytes.NewReader(png))
	require.NoError(t, err)
	assert.Equal(t, "photo_"+b.ID.String()+".png", res.Photo)
	assert.Equal(t, res.Photo, f.repo.bootcamps[b.ID].Photo)
	assert.Contains(t, f.files.saved, res.Photo)

	f.files.err = errors.New("bucket gone")
	_, err = f.svc.UploadPhoto(ctx, owner, b.ID, bytes.NewReader(png))
	assert.Equal(t, apperror.KindUpstream, apperror.As(err).Kind)
}

func TestUploadPhoto_OversizeAndReplacement(t *testing.T) {
	repo := newFakeRepo()
	files := &fakeFiles{saved: make(map[string][]byte)}
	geo := &fakeGeocoder{locations: map[string]*geocoder.Location{bostonAddress: boston}}
	svc := NewService(repo, ownership.NewGuard(auth.RoleAdmin), geo, files, 64)
	ctx := context.Background()
	owner := publisher()

	b, err := svc.CreateBootcamp(ctx, owner, devworks())
	require.NoError(t, err)

	big := append(pngHeader(), make([]byte, 1<<20)...)
	_, err = svc.UploadPhoto(ctx, owner, b.ID, bytes.NewReader(big))
	require.Error(t, err)
	assert.Equal(t, "Please upload an image less than 64 bytes", apperror.As(err).Message)
	assert.Empty(t, files.saved)

	// An old photo under another extension is removed after the swap
	repo.bootcamps[b.ID].Photo = "photo_" + b.ID.String() + ".jpg"
	res, err := svc.UploadPhoto(ctx, owner, b.ID, bytes.NewReader(pngHeader()))
	require.NoError(t, err)
	assert.Equal(t, []string{"photo_" + b.ID.String() + ".jpg"}, files.deleted)

	_, err = svc.UploadPhoto(ctx, owner, b.ID, bytes.NewReader(pngHeader()))
	require.NoError(t, err)
	assert.Len(t, files.deleted, 1)

	require.NoError(t, svc.DeleteBootcamp(ctx, owner, b.ID))
	assert.Equal(t, res.Photo, files.deleted[len(files.deleted)-1])
	assert.NotContains(t, files.saved, res.Photo)
}

func pngHeader() []byte {
	return []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
}

func TestUpdateBootcamp_GeocodeFailureKeepsStoredLocation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	owner := publisher()

	b, err := f.svc.CreateBootcamp(ctx, owner, devworks())
	require.NoError(t, err)

	unknown := "1 Nowhere St Seattle WA 98101"
	_, err = f.svc.UpdateBootcamp(ctx, owner, b.ID, model.UpdateBootcampRequest{Address: &unknown})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	stored := f.repo.bootcamps[b.ID]
	assert.Equal(t, bostonAddress, stored.Address)
	require.NotNil(t, stored.City)
	assert.Equal(t, "Boston", *stored.City)

	f.geo.err = errors.New("provider timeout")
	_, err = f.svc.UpdateBootcamp(ctx, owner, b.ID, model.UpdateBootcampRequest{Address: &unknown})
	assert.Equal(t, apperror.KindUpstream, apperror.As(err).Kind)
	assert.Equal(t, bostonAddress, f.repo.bootcamps[b.ID].Address)

	// Unchanged address does not call the provider
	name := "Devworks Academy"
	_, err = f.svc.UpdateBootcamp(ctx, owner, b.ID, model.UpdateBootcampRequest{Name: &name})
	require.NoError(t, err)
}

func TestCreateBootcamp_GeocodeFailureCreatesNothing(t *testing.T) {
	f := newFixture()
	f.geo.err = errors.New("provider timeout")

	_, err := f.svc.CreateBootcamp(context.Background(), publisher(), devworks())
	require.Error(t, err)
	assert.Equal(t, apperror.KindUpstream, apperror.As(err).Kind)
	assert.Empty(t, f.repo.bootcamps)
}

func TestUpdateBootcamp_WithoutGeocoderClearsLocation(t *testing.T) {
	repo := newFakeRepo()
	b := &model.Bootcamp{ID: uuid.New(), UserID: uuid.New(), Name: "Devworks Bootcamp", Address: bostonAddress}
	b.SetLocation(boston)
	repo.bootcamps[b.ID] = b
	svc := NewService(repo, ownership.NewGuard(auth.RoleAdmin), nil, nil, 0)

	moved := "1 Nowhere St Seattle WA 98101"
	updated, err := svc.UpdateBootcamp(context.Background(), admin(), b.ID, model.UpdateBootcampRequest{Address: &moved})
	require.NoError(t, err)
	assert.Nil(t, updated.Latitude)
	assert.Nil(t, updated.City)
	assert.Nil(t, repo.bootcamps[b.ID].Longitude)
}

func TestListBootcamps_RejectsUnknownField(t *testing.T) {
	f := newFixture()
	_, err := f.svc.ListBootcamps(context.Background(), url.Values{"select": {"password"}})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}
