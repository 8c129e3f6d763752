package domain

import (
	"slices"
	"testing"
)

func TestPlanMove(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
		want       MovePlan
		wantOK     bool
	}{
		{
			name:  "up",
			start: 7, end: 2,
			want:   MovePlan{Start: 7, End: 2, ShiftLo: 2, ShiftHi: 6, Delta: +1},
			wantOK: true,
		},
		{
			name:  "down",
			start: 2, end: 7,
			want:   MovePlan{Start: 2, End: 7, ShiftLo: 3, ShiftHi: 7, Delta: -1},
			wantOK: true,
		},
		{
			name:  "neighbour",
			start: 4, end: 3,
			want:   MovePlan{Start: 4, End: 3, ShiftLo: 3, ShiftHi: 3, Delta: +1},
			wantOK: true,
		},
		{
			name:  "no-op",
			start: 5, end: 5,
			want:   MovePlan{Start: 5, End: 5},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PlanMove(tt.start, tt.end)
			if ok != tt.wantOK {
				t.Fatalf("PlanMove(%d, %d) ok = %v, want %v", tt.start, tt.end, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("PlanMove(%d, %d) = %+v, want %+v", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestMovePlan_Affected(t *testing.T) {
	up, _ := PlanMove(7, 2)
	if up.Affected() != 6 || up.Lo() != 2 || up.Hi() != 7 {
		t.Errorf("move(7,2): affected=%d lo=%d hi=%d", up.Affected(), up.Lo(), up.Hi())
	}
	none, _ := PlanMove(3, 3)
	if none.Affected() != 0 {
		t.Errorf("no-op affected = %d, want 0", none.Affected())
	}
}

func TestMovePlan_UpdateOrder(t *testing.T) {
	shifted := []Entry{{ID: "c", Rank: 3}, {ID: "e", Rank: 5}, {ID: "d", Rank: 4}}

	up, _ := PlanMove(6, 3)
	up.UpdateOrder(shifted)
	if got := ids(shifted); !slices.Equal(got, []string{"e", "d", "c"}) {
		t.Errorf("moving up: order = %v, want [e d c]", got)
	}

	down, _ := PlanMove(2, 5)
	down.UpdateOrder(shifted)
	if got := ids(shifted); !slices.Equal(got, []string{"c", "d", "e"}) {
		t.Errorf("moving down: order = %v, want [c d e]", got)
	}
}

func TestClampEnd(t *testing.T) {
	tests := []struct {
		end, maxRank, want int
	}{
		{0, 10, 1},
		{1, 10, 1},
		{5, 10, 5},
		{10, 10, 10},
		{11, 10, 10},
		{99, 0, 99},
	}
	for _, tt := range tests {
		if got := ClampEnd(tt.end, tt.maxRank); got != tt.want {
			t.Errorf("ClampEnd(%d, %d) = %d, want %d", tt.end, tt.maxRank, got, tt.want)
		}
	}
}

// applyPlan replays a plan on a rank slice the way a store would
func applyPlan(ranks []int, p MovePlan) []int {
	out := slices.Clone(ranks)
	for i, r := range out {
		switch {
		case r == p.Start:
			out[i] = p.End
		case r >= p.ShiftLo && r <= p.ShiftHi:
			out[i] = r + p.Delta
		}
	}
	return out
}

func TestPlanMove_KeepsRanksDense(t *testing.T) {
	const n = 8
	initial := make([]int, n)
	for i := range initial {
		initial[i] = i + 1
	}

	for s := 1; s <= n; s++ {
		for e := 1; e <= n; e++ {
			plan, ok := PlanMove(s, e)
			if !ok {
				continue
			}
			moved := applyPlan(initial, plan)

			sorted := slices.Sorted(slices.Values(moved))
			if !slices.Equal(sorted, initial) {
				t.Fatalf("move(%d,%d) produced ranks %v", s, e, moved)
			}
			if moved[s-1] != e {
				t.Errorf("move(%d,%d): mover at %d", s, e, moved[s-1])
			}

			back, _ := PlanMove(e, s)
			if restored := applyPlan(moved, back); !slices.Equal(restored, initial) {
				t.Errorf("move(%d,%d) then back = %v", s, e, restored)
			}
		}
	}
}

func TestSortEntries(t *testing.T) {
	entries := []Entry{{ID: "b", Rank: 2}, {ID: "a", Rank: 2}, {ID: "c", Rank: 1}}

	SortEntries(entries, Ascending)
	if got := ids(entries); !slices.Equal(got, []string{"c", "a", "b"}) {
		t.Errorf("ascending = %v", got)
	}

	SortEntries(entries, Descending)
	if got := ids(entries); !slices.Equal(got, []string{"a", "b", "c"}) {
		t.Errorf("descending = %v", got)
	}
}

func ids(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}
