// Package geocode resolves street addresses and postal codes to coordinates
// through the MapQuest geocoding API.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Result is one resolved location.
type Result struct {
	Lat              float64
	Lng              float64
	FormattedAddress string
	Street           string
	City             string
	State            string
	Zipcode          string
	Country          string
}

// Geocoder resolves a free-form address to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (Result, error)
}

// MapQuest implements Geocoder against the MapQuest geocoding endpoint.
type MapQuest struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

func NewMapQuest(baseURL, apiKey string) *MapQuest {
	return &MapQuest{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client:  &http.Client{Timeout: 5 * time.Second},
	}
}

func (g *MapQuest) Geocode(ctx context.Context, address string) (Result, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return Result{}, fmt.Errorf("empty address")
	}

	q := url.Values{}
	q.Set("key", g.APIKey)
	q.Set("location", address)
	q.Set("maxResults", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return Result{}, err
	}
	resp, err := g.Client.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	var body struct {
		Results []struct {
			Locations []struct {
				LatLng struct {
					Lat float64 `json:"lat"`
					Lng float64 `json:"lng"`
				} `json:"latLng"`
				Street     string `json:"street"`
				AdminArea5 string `json:"adminArea5"` // city
				AdminArea3 string `json:"adminArea3"` // state
				AdminArea1 string `json:"adminArea1"` // country
				PostalCode string `json:"postalCode"`
			} `json:"locations"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Result{}, err
	}
	if len(body.Results) == 0 || len(body.Results[0].Locations) == 0 {
		return Result{}, fmt.Errorf("no geocoding result for %q", address)
	}

	loc := body.Results[0].Locations[0]
	res := Result{
		Lat:     loc.LatLng.Lat,
		Lng:     loc.LatLng.Lng,
		Street:  loc.Street,
		City:    loc.AdminArea5,
		State:   loc.AdminArea3,
		Zipcode: loc.PostalCode,
		Country: loc.AdminArea1,
	}
	res.FormattedAddress = formatAddress(res)
	return res, nil
}

func formatAddress(r Result) string {
	var parts []string
	for _, s := range []string{r.Street, r.City, r.State, r.Zipcode, r.Country} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}
