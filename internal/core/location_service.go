package core

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

type Location struct {
	Status    string  `json:"status"`
	City      string  `json:"city"`
	Region    string  `json:"region"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// LocationService resolves the server's approximate location by IP,
// degrading to an explicit offline record.
type LocationService struct {
	probe   onlineChecker
	baseURL string
	client  *http.Client
}

func NewLocationService(probe onlineChecker) *LocationService {
	return &LocationService{
		probe:   probe,
		baseURL: "https://ipapi.co",
		client:  &http.Client{Timeout: 3 * time.Second},
	}
}

// SetBaseURL overrides the geolocation endpoint, for tests.
func (s *LocationService) SetBaseURL(baseURL string) {
	s.baseURL = baseURL
}

func (s *LocationService) Locate(ctx context.Context) Location {
	if s.probe.Online() {
		if loc, err := s.fetch(ctx); err == nil {
			return loc
		}
	}
	return Location{
		Status:  "offline",
		City:    "Unknown",
		Region:  "Unknown",
		Country: "Offline Mode",
	}
}

func (s *LocationService) fetch(ctx context.Context) (Location, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/json/", nil)
	if err != nil {
		return Location{}, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return Location{}, err
	}
	defer resp.Body.Close()

	var body struct {
		City        string  `json:"city"`
		Region      string  `json:"region"`
		CountryName string  `json:"country_name"`
		Latitude    float64 `json:"latitude"`
		Longitude   float64 `json:"longitude"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Location{}, err
	}

	return Location{
		Status:    "online",
		City:      body.City,
		Region:    body.Region,
		Country:   body.CountryName,
		Latitude:  body.Latitude,
		Longitude: body.Longitude,
	}, nil
}
