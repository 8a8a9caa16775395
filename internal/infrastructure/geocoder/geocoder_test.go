package geocoder

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapQuest_Geocode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "k123", r.URL.Query().Get("key"))
		assert.Equal(t, "233 Bay State Rd Boston MA 02215", r.URL.Query().Get("location"))
		_, _ = w.Write([]byte(`{
			"info": {"statuscode": 0, "messages": []},
			"results": [{"locations": [{
				"street": "233 Bay State Rd", "adminArea5": "Boston", "adminArea3": "MA",
				"adminArea1": "US", "postalCode": "02215",
				"latLng": {"lat": 42.350846, "lng": -71.103833}
			}]}]
		}`))
	}))
	defer srv.Close()

	loc, err := NewMapQuest(srv.URL, "k123", time.Second).Geocode(context.Background(), "233 Bay State Rd Boston MA 02215")
	require.NoError(t, err)

	assert.InDelta(t, 42.350846, loc.Latitude, 1e-9)
	assert.InDelta(t, -71.103833, loc.Longitude, 1e-9)
	assert.Equal(t, "02215", loc.Zipcode)
	assert.Equal(t, "233 Bay State Rd, Boston, MA 02215, US", loc.FormattedAddress)
}

func TestMapQuest_NoResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"info": {"statuscode": 0}, "results": [{"locations": []}]}`))
	}))
	defer srv.Close()

	_, err := NewMapQuest(srv.URL, "k", time.Second).Geocode(context.Background(), "nowhere")
	assert.ErrorIs(t, err, ErrNoResult)
}

func TestMapQuest_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := NewMapQuest(srv.URL, "bad", time.Second).Geocode(context.Background(), "x")
	assert.Error(t, err)
}
