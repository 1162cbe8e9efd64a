package repository

import (
	"strings"
	"testing"
	"time"

	"weather-dashboard/internal/models"
)

func TestBuildLookupWhere(t *testing.T) {
	city := "London"
	category := "rainy"
	since := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		filter    LookupFilter
		wantParts []string
		wantArgs  int
	}{
		{"no filter", LookupFilter{}, []string{"WHERE 1=1"}, 0},
		{"city only", LookupFilter{City: &city}, []string{"lower(city) = lower($1)"}, 1},
		{
			name:      "all filters",
			filter:    LookupFilter{City: &city, Category: &category, Since: &since},
			wantParts: []string{"lower(city) = lower($1)", "category = $2", "created_at >= $3"},
			wantArgs:  3,
		},
		{"category only", LookupFilter{Category: &category}, []string{"category = $1"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := buildLookupWhere(tt.filter)
			for _, part := range tt.wantParts {
				if !strings.Contains(where, part) {
					t.Errorf("where = %q, missing %q", where, part)
				}
			}
			if len(args) != tt.wantArgs {
				t.Errorf("len(args) = %d, want %d", len(args), tt.wantArgs)
			}
		})
	}
}

func TestChunkLookups(t *testing.T) {
	newLookups := func(n int) []*models.Lookup {
		out := make([]*models.Lookup, n)
		for i := range out {
			out[i] = &models.Lookup{ID: int64(i)}
		}
		return out
	}

	tests := []struct {
		n, size  int
		wantLens []int
	}{
		{1, 1000, []int{1}},
		{1000, 1000, []int{1000}},
		{1001, 1000, []int{1000, 1}},
		{2500, 1000, []int{1000, 1000, 500}},
	}

	for _, tt := range tests {
		chunks := chunkLookups(newLookups(tt.n), tt.size)
		if len(chunks) != len(tt.wantLens) {
			t.Fatalf("n=%d: got %d chunks, want %d", tt.n, len(chunks), len(tt.wantLens))
		}
		for i, c := range chunks {
			if len(c) != tt.wantLens[i] {
				t.Errorf("n=%d chunk %d: len %d, want %d", tt.n, i, len(c), tt.wantLens[i])
			}
		}
	}
}

func TestNotFoundError(t *testing.T) {
	err := &NotFoundError{Resource: "weather_lookups", ID: "Atlantis"}
	if err.Error() != "weather_lookups not found: Atlantis" {
		t.Errorf("Error() = %q", err.Error())
	}
	if err.IsTransient() {
		t.Error("NotFoundError should not be transient")
	}
}
