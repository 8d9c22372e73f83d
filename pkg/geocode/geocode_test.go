package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mapquestBody = `{
  "results": [
    {
      "locations": [
        {
          "latLng": {"lat": 42.350846, "lng": -71.104028},
          "street": "233 Bay State Rd",
          "adminArea5": "Boston",
          "adminArea3": "MA",
          "adminArea1": "US",
          "postalCode": "02215"
        }
      ]
    }
  ]
}`

func TestGeocode(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"key":      r.URL.Query().Get("key"),
			"location": r.URL.Query().Get("location"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(mapquestBody))
	}))
	defer srv.Close()

	g := NewMapQuest(srv.URL, "test-key")
	res, err := g.Geocode(context.Background(), "233 Bay State Rd Boston MA")
	require.NoError(t, err)

	assert.Equal(t, "test-key", gotQuery["key"])
	assert.Equal(t, "233 Bay State Rd Boston MA", gotQuery["location"])
	assert.Equal(t, 42.350846, res.Lat)
	assert.Equal(t, -71.104028, res.Lng)
	assert.Equal(t, "Boston", res.City)
	assert.Equal(t, "MA", res.State)
	assert.Equal(t, "02215", res.Zipcode)
	assert.Equal(t, "233 Bay State Rd, Boston, MA, 02215, US", res.FormattedAddress)
}

func TestGeocodeNoResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"results": []}`))
	}))
	defer srv.Close()

	_, err := NewMapQuest(srv.URL, "k").Geocode(context.Background(), "nowhere")
	assert.Error(t, err)
}

func TestGeocodeEmptyAddress(t *testing.T) {
	_, err := NewMapQuest("http://unused", "k").Geocode(context.Background(), "   ")
	assert.Error(t, err)
}

func TestGeocodeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := NewMapQuest(srv.URL, "bad-key").Geocode(context.Background(), "somewhere")
	assert.Error(t, err)
}
