package domain

import "testing"

func TestPaginator(t *testing.T) {
	p := NewPaginator(29, 12)

	if p.NumPages() != 3 {
		t.Fatalf("NumPages() = %d, want 3", p.NumPages())
	}

	tests := []struct {
		page       int
		wantOffset int
		wantLimit  int
	}{
		{1, 0, 12},
		{2, 12, 12},
		{3, 24, 5},
		{0, 0, 0},
		{4, 0, 0},
	}
	for _, tt := range tests {
		offset, limit := p.Bounds(tt.page)
		if offset != tt.wantOffset || limit != tt.wantLimit {
			t.Errorf("Bounds(%d) = (%d, %d), want (%d, %d)", tt.page, offset, limit, tt.wantOffset, tt.wantLimit)
		}
	}

	if p.Occupancy(3) != 5 {
		t.Errorf("Occupancy(3) = %d, want 5", p.Occupancy(3))
	}
	if p.PageOf(12) != 2 || p.PageOf(28) != 3 || p.PageOf(-1) != 1 {
		t.Errorf("PageOf mismatch: %d %d %d", p.PageOf(12), p.PageOf(28), p.PageOf(-1))
	}
}

func TestPaginator_Empty(t *testing.T) {
	p := NewPaginator(0, 0)
	if p.PageSize() != DefaultPageSize {
		t.Errorf("PageSize() = %d, want %d", p.PageSize(), DefaultPageSize)
	}
	if p.NumPages() != 1 || !p.Valid(1) || p.Valid(2) {
		t.Errorf("empty paginator: pages=%d", p.NumPages())
	}
	if p.Occupancy(1) != 0 {
		t.Errorf("Occupancy(1) = %d, want 0", p.Occupancy(1))
	}
}
