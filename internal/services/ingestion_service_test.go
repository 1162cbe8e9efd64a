package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"weather-dashboard/internal/presentation"
)

func writeReadings(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "readings.jsonl")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestIngestionService_IngestFile(t *testing.T) {
	path := writeReadings(t,
		`{"city":"London","temperature":12,"description":"Light rain","feels_like":10,"humidity":87,"wind_speed":19,"uv_index":2,"timestamp":"2024-03-10 09:30:00"}`,
		``,
		`{"city":"Madrid","temperature":"24","description":"Sunny","feels_like":"25","humidity":"40","wind_speed":"8","uv_index":"7"}`,
		`{"city":"   ","temperature":10,"feels_like":10,"humidity":50,"wind_speed":5,"uv_index":1}`,
		`not json`,
		`{"city":"Oslo","temperature":-2,"description":"Clear","feels_like":-6,"humidity":70,"wind_speed":12,"uv_index":0}`,
		`{"city":"Lima","temperature":"N/A","description":"Fog","feels_like":"N/A","humidity":"90","wind_speed":"3","uv_index":"1"}`,
	)

	history := &fakeHistory{}
	logger, m := newTestDeps()
	svc := NewIngestionService(history, presentation.NewTransformer(presentation.FixedIndex(0)), logger, m)

	result, err := svc.IngestFile(context.Background(), path, 2)
	if err != nil {
		t.Fatalf("IngestFile() error = %v", err)
	}

	if result.TotalRecords != 6 {
		t.Errorf("TotalRecords = %d, want 6", result.TotalRecords)
	}
	if result.SuccessfulRecords != 3 {
		t.Errorf("SuccessfulRecords = %d, want 3", result.SuccessfulRecords)
	}
	if result.FailedRecords != 3 || len(result.Errors) != 3 {
		t.Errorf("FailedRecords = %d, Errors = %v", result.FailedRecords, result.Errors)
	}
	if history.batches != 2 {
		t.Errorf("batches = %d, want 2", history.batches)
	}
	wantCategories := map[string]int{"rainy": 1, "sunny": 1, "cold": 1}
	for category, want := range wantCategories {
		if got := result.Categories[category]; got != want {
			t.Errorf("Categories[%s] = %d, want %d", category, got, want)
		}
	}
	if len(history.lookups) != 3 || history.lookups[0].City != "London" {
		t.Errorf("unexpected stored lookups: %+v", history.lookups)
	}
}

func TestIngestionService_Errors(t *testing.T) {
	logger, m := newTestDeps()
	transformer := presentation.NewTransformer(presentation.FixedIndex(0))

	t.Run("invalid batch size", func(t *testing.T) {
		svc := NewIngestionService(&fakeHistory{}, transformer, logger, m)
		if _, err := svc.IngestFile(context.Background(), "unused", 0); err == nil {
			t.Error("expected error for zero batch size")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		svc := NewIngestionService(&fakeHistory{}, transformer, logger, m)
		if _, err := svc.IngestFile(context.Background(), filepath.Join(t.TempDir(), "missing.jsonl"), 10); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("store failure aborts", func(t *testing.T) {
		path := writeReadings(t, `{"city":"London","temperature":12,"feels_like":10,"humidity":80,"wind_speed":10,"uv_index":1}`)
		svc := NewIngestionService(&fakeHistory{createErr: errStore}, transformer, logger, m)
		_, err := svc.IngestFile(context.Background(), path, 10)
		if !errors.Is(err, errStore) {
			t.Errorf("error = %v, want errStore", err)
		}
	})
}

func TestIngestionService_OversizeLineIsCountedAsFailure(t *testing.T) {
	path := writeReadings(t,
		`{"city":"London","temperature":12,"description":"Light rain","feels_like":10,"humidity":87,"wind_speed":19,"uv_index":2}`,
		`{"city":"Paris","description":"`+strings.Repeat("x", 4096)+`"}`,
		`{"city":"Oslo","temperature":-2,"description":"Clear","feels_like":-6,"humidity":70,"wind_speed":12,"uv_index":0}`,
	)

	history := &fakeHistory{}
	logger, m := newTestDeps()
	svc := NewIngestionService(history, presentation.NewTransformer(presentation.FixedIndex(0)), logger, m)
	svc.maxLineBytes = 1024

	result, err := svc.IngestFile(context.Background(), path, 10)
	if err != nil {
		t.Fatalf("IngestFile() error = %v", err)
	}
	if result.TotalRecords != 3 || result.SuccessfulRecords != 2 || result.FailedRecords != 1 {
		t.Errorf("result = %+v, want 3 total, 2 ok, 1 failed", result)
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "line 2") {
		t.Errorf("Errors = %v, want one error for line 2", result.Errors)
	}
	if len(history.lookups) != 2 || history.lookups[1].City != "Oslo" {
		t.Errorf("unexpected stored lookups: %+v", history.lookups)
	}
}

func TestReadLines(t *testing.T) {
	input := "short\n" + strings.Repeat("y", 50) + "\n\nlast"

	type line struct {
		text     string
		oversize bool
	}
	var got []line
	err := readLines(strings.NewReader(input), 16, func(l []byte, oversize bool) error {
		got = append(got, line{string(l), oversize})
		return nil
	})
	if err != nil {
		t.Fatalf("readLines() error = %v", err)
	}

	want := []line{{"short", false}, {"", true}, {"", false}, {"last", false}}
	if len(got) != len(want) {
		t.Fatalf("got %d lines %+v, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}
