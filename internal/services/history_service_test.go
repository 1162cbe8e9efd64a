package services

import (
	"context"
	"errors"
	"testing"

	"weather-dashboard/internal/models"
	"weather-dashboard/internal/repository"
)

func TestHistoryService_Disabled(t *testing.T) {
	logger, m := newTestDeps()
	svc := NewHistoryService(nil, logger, m)

	if svc.Enabled() {
		t.Error("Enabled() = true, want false")
	}
	if _, _, err := svc.ListLookups(context.Background(), repository.LookupFilter{Limit: 10}); !errors.Is(err, ErrHistoryDisabled) {
		t.Errorf("ListLookups() error = %v, want ErrHistoryDisabled", err)
	}
	if _, err := svc.Summary(context.Background(), "London"); !errors.Is(err, ErrHistoryDisabled) {
		t.Errorf("Summary() error = %v, want ErrHistoryDisabled", err)
	}
	if err := svc.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck() error = %v, want nil", err)
	}
}

func TestHistoryService_ListLookups(t *testing.T) {
	history := &fakeHistory{}
	for _, city := range []string{"London", "Paris", "london", "London"} {
		history.lookups = append(history.lookups, &models.Lookup{City: city, Category: "rainy"})
	}

	logger, m := newTestDeps()
	svc := NewHistoryService(history, logger, m)

	city := "LONDON"
	lookups, total, err := svc.ListLookups(context.Background(), repository.LookupFilter{City: &city, Limit: 2})
	if err != nil {
		t.Fatalf("ListLookups() error = %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	if len(lookups) != 2 {
		t.Errorf("len(lookups) = %d, want 2", len(lookups))
	}
}

func TestHistoryService_Summary(t *testing.T) {
	tests := []struct {
		name      string
		city      string
		wantCount int
		wantErr   bool
		checkErr  func(*testing.T, error)
	}{
		{
			name:      "known city",
			city:      " London ",
			wantCount: 2,
		},
		{
			name:    "blank city",
			city:    "  ",
			wantErr: true,
			checkErr: func(t *testing.T, err error) {
				if !errors.Is(err, models.ErrInvalidReading) {
					t.Errorf("error = %v, want ErrInvalidReading", err)
				}
			},
		},
		{
			name:    "unknown city",
			city:    "Lima",
			wantErr: true,
			checkErr: func(t *testing.T, err error) {
				var nf *repository.NotFoundError
				if !errors.As(err, &nf) {
					t.Errorf("error = %T, want *repository.NotFoundError", err)
				}
			},
		},
	}

	history := &fakeHistory{lookups: []*models.Lookup{{City: "London"}, {City: "London"}, {City: "Paris"}}}
	logger, m := newTestDeps()
	svc := NewHistoryService(history, logger, m)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary, err := svc.Summary(context.Background(), tt.city)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Summary() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.checkErr != nil {
				tt.checkErr(t, err)
			}
			if !tt.wantErr && summary.LookupCount != tt.wantCount {
				t.Errorf("LookupCount = %d, want %d", summary.LookupCount, tt.wantCount)
			}
		})
	}
}
