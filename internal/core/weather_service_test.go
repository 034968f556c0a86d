package core

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWeatherCurrentOnline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("current_weather") != "true" {
			t.Errorf("expected current_weather=true, got %s", r.URL.RawQuery)
		}
		w.Write([]byte(`{"current_weather":{"temperature":17.3,"windspeed":12.5,"weathercode":61}}`))
	}))
	defer srv.Close()

	svc := NewWeatherService(&fakeProbe{online: true}, t.TempDir())
	svc.SetBaseURL(srv.URL)

	weather := svc.Current(context.Background(), 38.72, -9.14)
	if weather.Temp != 17.3 {
		t.Errorf("expected 17.3, got %v", weather.Temp)
	}
	if weather.Wind != 12.5 {
		t.Errorf("expected 12.5, got %v", weather.Wind)
	}
	if weather.Condition != "Light rain" {
		t.Errorf("expected Light rain, got %s", weather.Condition)
	}
}

func TestWeatherCurrentUnknownCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"current_weather":{"temperature":5,"windspeed":1,"weathercode":999}}`))
	}))
	defer srv.Close()

	svc := NewWeatherService(&fakeProbe{online: true}, t.TempDir())
	svc.SetBaseURL(srv.URL)

	weather := svc.Current(context.Background(), 0, 0)
	if weather.Condition != "Unknown weather" {
		t.Errorf("expected Unknown weather, got %s", weather.Condition)
	}
}

func TestWeatherCurrentOfflineDefaults(t *testing.T) {
	svc := NewWeatherService(&fakeProbe{online: false}, t.TempDir())

	weather := svc.Current(context.Background(), 38.72, -9.14)
	if weather.Temp != 28 {
		t.Errorf("expected fallback temp 28, got %v", weather.Temp)
	}
	if weather.Condition != "Partly Cloudy" {
		t.Errorf("expected Partly Cloudy, got %s", weather.Condition)
	}
	if weather.Wind != 5 {
		t.Errorf("expected fallback wind 5, got %v", weather.Wind)
	}
}

func TestWeatherCurrentFetchFailureDefaults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	svc := NewWeatherService(&fakeProbe{online: true}, t.TempDir())
	svc.SetBaseURL(srv.URL)

	weather := svc.Current(context.Background(), 0, 0)
	if weather.Condition != "Partly Cloudy" {
		t.Errorf("expected defaults on fetch failure, got %+v", weather)
	}
}
