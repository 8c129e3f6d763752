package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"sortable/internal/application"
	"sortable/internal/domain"
)

func TestBulkMoveCommand_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cmd     *BulkMoveCommand
		wantErr bool
	}{
		{
			name: "valid",
			cmd:  NewBulkMoveCommand(nil, nil, "", []string{"a"}, 2, domain.Back(1), domain.Ascending, 12),
		},
		{
			name:    "empty selection",
			cmd:     NewBulkMoveCommand(nil, nil, "", nil, 2, domain.Back(1), domain.Ascending, 12),
			wantErr: true,
		},
		{
			name:    "blank id",
			cmd:     NewBulkMoveCommand(nil, nil, "", []string{"a", " "}, 2, domain.Back(1), domain.Ascending, 12),
			wantErr: true,
		},
		{
			name:    "zero page size",
			cmd:     NewBulkMoveCommand(nil, nil, "", []string{"a"}, 2, domain.Back(1), domain.Ascending, 0),
			wantErr: true,
		},
		{
			name:    "zero current page",
			cmd:     NewBulkMoveCommand(nil, nil, "", []string{"a"}, 0, domain.First(), domain.Ascending, 12),
			wantErr: true,
		},
		{
			name:    "zero steps",
			cmd:     NewBulkMoveCommand(nil, nil, "", []string{"a"}, 2, domain.Forward(0), domain.Ascending, 12),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestBulkMoveCommand_Execute(t *testing.T) {
	tests := []struct {
		name     string
		selected []int // initial ranks of the selection, which equal the entry numbers
		current  int
		dest     domain.Destination
		dir      domain.Direction
		want     map[int]int // entry number -> final rank
	}{
		{
			name:     "previous page",
			selected: []int{17, 18, 19},
			current:  2,
			dest:     domain.Back(1),
			want:     map[int]int{17: 1, 18: 2, 19: 3, 1: 4, 16: 19, 20: 20},
		},
		{
			name:     "next page lands at its end",
			selected: []int{11, 10},
			current:  1,
			dest:     domain.Forward(1),
			want:     map[int]int{10: 23, 11: 24, 12: 10, 24: 22, 25: 25},
		},
		{
			name:     "last page",
			selected: []int{1, 2},
			current:  1,
			dest:     domain.Last(),
			want:     map[int]int{1: 28, 2: 29, 3: 1, 29: 27},
		},
		{
			name:     "first page from the last",
			selected: []int{29, 25},
			current:  3,
			dest:     domain.First(),
			want:     map[int]int{25: 1, 29: 2, 1: 3},
		},
		{
			name:     "exact page",
			selected: []int{5},
			current:  1,
			dest:     domain.Exact(2),
			want:     map[int]int{5: 24, 6: 5, 24: 23},
		},
		{
			name:     "descending first page",
			selected: []int{3, 2},
			current:  3,
			dest:     domain.First(),
			dir:      domain.Descending,
			want:     map[int]int{3: 29, 2: 28, 29: 27, 1: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore("", 29)
			ids := make([]string, len(tt.selected))
			for i, n := range tt.selected {
				ids[i] = eid(n)
			}

			res, err := NewBulkMoveCommand(store, nil, "", ids, tt.current, tt.dest, tt.dir, 12).Execute(context.Background())
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if res.Moved != len(ids) {
				t.Errorf("Moved = %d, want %d", res.Moved, len(ids))
			}
			got := make(map[int]int, len(tt.want))
			for n := range tt.want {
				got[n] = store.rank(eid(n))
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ranks mismatch (-want +got):\n%s", diff)
			}
			if !store.dense("") {
				t.Errorf("ranks are not 1..N after bulk move")
			}
		})
	}
}

func TestBulkMoveCommand_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		selected []int
		current  int
		dest     domain.Destination
		sentinel error
	}{
		{"back from first page", []int{14, 15}, 1, domain.Back(1), application.ErrPageOutOfRange},
		{"past the last page", []int{1}, 2, domain.Forward(2), application.ErrPageOutOfRange},
		{"exact page zero", []int{1}, 2, domain.Exact(0), application.ErrPageOutOfRange},
		{"current page out of range", []int{1}, 4, domain.First(), application.ErrPageOutOfRange},
		{"selection larger than target", []int{1, 2, 3, 4, 5, 6}, 1, domain.Last(), application.ErrCapacity},
		{"unknown entry", []int{1, 99}, 1, domain.Forward(1), application.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore("", 29)
			ids := make([]string, len(tt.selected))
			for i, n := range tt.selected {
				ids[i] = eid(n)
			}

			_, err := NewBulkMoveCommand(store, nil, "", ids, tt.current, tt.dest, domain.Ascending, 12).Execute(context.Background())
			if !errors.Is(err, tt.sentinel) {
				t.Fatalf("Execute() error = %v, want %v", err, tt.sentinel)
			}
			if store.commits != 0 {
				t.Errorf("commits = %d, want none", store.commits)
			}
		})
	}
}

func TestBulkMoveCommand_SamePage(t *testing.T) {
	store := newMemStore("", 29)
	res, err := NewBulkMoveCommand(store, nil, "", []string{eid(3)}, 1, domain.Exact(1), domain.Ascending, 12).
		Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !res.Skipped || res.Moved != 0 {
		t.Errorf("result = %+v, want skipped", res)
	}
	if store.commits != 0 {
		t.Errorf("commits = %d, want 0", store.commits)
	}
}

func TestBulkMoveCommand_DuplicateSelection(t *testing.T) {
	store := newMemStore("", 29)
	ids := []string{eid(18), eid(17), eid(18)}

	res, err := NewBulkMoveCommand(store, nil, "", ids, 2, domain.Back(1), domain.Ascending, 12).
		Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if res.Moved != 2 {
		t.Errorf("Moved = %d, want 2", res.Moved)
	}
	if store.rank(eid(17)) != 1 || store.rank(eid(18)) != 2 {
		t.Errorf("ranks = %d, %d, want 1, 2", store.rank(eid(17)), store.rank(eid(18)))
	}
}

func TestBulkMoveCommand_StopsOnFailure(t *testing.T) {
	store := newMemStore("", 29)
	rec := &recorder{rejects: eid(18)}
	ids := []string{eid(17), eid(18), eid(19)}

	res, err := NewBulkMoveCommand(store, rec, "", ids, 2, domain.Back(1), domain.Ascending, 12).
		Execute(context.Background())
	if err == nil {
		t.Fatal("Execute() expected error")
	}
	if res == nil || res.Moved != 1 {
		t.Fatalf("partial result = %+v, want 1 moved", res)
	}
	if store.rank(eid(17)) != 1 {
		t.Errorf("first entry not kept at rank 1: %d", store.rank(eid(17)))
	}
	if store.rank(eid(18)) != 18 || store.rank(eid(19)) != 19 {
		t.Errorf("unprocessed entries moved: %d, %d", store.rank(eid(18)), store.rank(eid(19)))
	}
	if !store.dense("") {
		t.Errorf("ranks are not 1..N after a partial bulk move")
	}
}
