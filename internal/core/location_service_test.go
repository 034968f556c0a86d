package core

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLocateOnline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/json/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"city":"Lisbon","region":"Lisboa","country_name":"Portugal","latitude":38.72,"longitude":-9.14}`))
	}))
	defer srv.Close()

	svc := NewLocationService(&fakeProbe{online: true})
	svc.SetBaseURL(srv.URL)

	loc := svc.Locate(context.Background())
	if loc.Status != "online" {
		t.Errorf("expected online, got %s", loc.Status)
	}
	if loc.City != "Lisbon" || loc.Country != "Portugal" {
		t.Errorf("unexpected location %+v", loc)
	}
	if loc.Latitude != 38.72 {
		t.Errorf("expected latitude 38.72, got %v", loc.Latitude)
	}
}

func TestLocateOfflineFallback(t *testing.T) {
	svc := NewLocationService(&fakeProbe{online: false})

	loc := svc.Locate(context.Background())
	if loc.Status != "offline" {
		t.Errorf("expected offline, got %s", loc.Status)
	}
	if loc.City != "Unknown" || loc.Country != "Offline Mode" {
		t.Errorf("unexpected fallback %+v", loc)
	}
}
