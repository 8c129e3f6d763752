package application

import (
	"context"
	"errors"
	"testing"

	"sortable/internal/ports"
)

func TestValidateRequired(t *testing.T) {
	tests := []struct {
		name      string
		fieldName string
		value     string
		wantErr   bool
	}{
		{
			name:      "valid value",
			fieldName: "label",
			value:     "Chapter one",
			wantErr:   false,
		},
		{
			name:      "empty string",
			fieldName: "label",
			value:     "",
			wantErr:   true,
		},
		{
			name:      "whitespace only",
			fieldName: "id",
			value:     "   ",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequired(tt.fieldName, tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRequired() error = %v, wantErr %v", err, tt.wantErr)
			}

			if err != nil {
				var valErr *ValidationError
				if !errors.As(err, &valErr) {
					t.Fatalf("expected ValidationError, got %T", err)
				}
				if valErr.Field != tt.fieldName {
					t.Errorf("expected field %s, got %s", tt.fieldName, valErr.Field)
				}
				if !errors.Is(err, ErrInvalidOperation) {
					t.Errorf("expected error to wrap ErrInvalidOperation")
				}
			}
		})
	}
}

func TestParseRank(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		def     int
		want    int
		wantErr bool
	}{
		{"number", "7", 0, 7, false},
		{"padded", " 12 ", 0, 12, false},
		{"empty uses default", "", 3, 3, false},
		{"zero", "0", 1, 0, false},
		{"negative", "-2", 0, 0, true},
		{"not a number", "seven", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRank("startorder", tt.raw, tt.def)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRank() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseRank() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		want     string
	}{
		{
			name:     "stale rank",
			err:      &NotFoundError{Scope: "", Rank: 9},
			sentinel: ErrNotFound,
			want:     `no entry at rank 9 in scope ""; reload and try again`,
		},
		{
			name:     "capacity",
			err:      &CapacityError{Page: 3, Capacity: 5, Selected: 6},
			sentinel: ErrCapacity,
			want:     "cannot move 6 entries to page 3: it holds only 5",
		},
		{
			name:     "page",
			err:      &PageError{Page: 0, Pages: 3},
			sentinel: ErrPageOutOfRange,
			want:     "page 0 does not exist (1-3)",
		},
		{
			name:     "validation",
			err:      ValidateRank("endorder", -1),
			sentinel: ErrInvalidOperation,
			want:     "endorder: end order must not be negative, got: -1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.want {
				t.Errorf("Error() = %q, want %q", tt.err.Error(), tt.want)
			}
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false", tt.err, tt.sentinel)
			}
		})
	}
}

func TestParseDirection(t *testing.T) {
	if got := ParseDirection("-1.2", Ascending); got != Descending {
		t.Errorf("ParseDirection(-1.2) = %v, want Descending", got)
	}
	if got := ParseDirection("bogus", Descending); got != Descending {
		t.Errorf("ParseDirection(bogus) = %v, want default", got)
	}
}

type stubObserver struct {
	name  string
	log   *[]string
	block bool
}

func (s stubObserver) BeforeRankChange(context.Context, ports.RankEvent) error {
	*s.log = append(*s.log, "before:"+s.name)
	if s.block {
		return errors.New("blocked")
	}
	return nil
}

func (s stubObserver) AfterRankChange(context.Context, ports.RankEvent) {
	*s.log = append(*s.log, "after:"+s.name)
}

func TestObservers(t *testing.T) {
	var log []string
	obs := Observers{
		stubObserver{name: "a", log: &log},
		nil,
		stubObserver{name: "b", log: &log, block: true},
		stubObserver{name: "c", log: &log},
	}
	ctx := context.Background()

	if err := obs.BeforeRankChange(ctx, ports.RankEvent{}); err == nil {
		t.Fatal("expected the second observer to block")
	}
	obs.AfterRankChange(ctx, ports.RankEvent{})

	want := []string{"before:a", "before:b", "after:a", "after:b", "after:c"}
	if len(log) != len(want) {
		t.Fatalf("log = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("log[%d] = %s, want %s", i, log[i], want[i])
		}
	}

	var called bool
	funcs := ObserverFuncs{After: func(context.Context, ports.RankEvent) { called = true }}
	if err := funcs.BeforeRankChange(ctx, ports.RankEvent{}); err != nil {
		t.Errorf("nil Before returned %v", err)
	}
	funcs.AfterRankChange(ctx, ports.RankEvent{})
	if !called {
		t.Error("After not called")
	}
}
