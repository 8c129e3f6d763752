package application

import (
	"context"

	"sortable/internal/ports"
)

// Observers fans rank events out to several observers in registration order
type Observers []ports.RankObserver

// Ensure Observers implements RankObserver
var _ ports.RankObserver = Observers(nil)

// BeforeRankChange stops at the first observer that rejects the change
func (o Observers) BeforeRankChange(ctx context.Context, ev ports.RankEvent) error {
	for _, obs := range o {
		if obs == nil {
			continue
		}
		if err := obs.BeforeRankChange(ctx, ev); err != nil {
			return err
		}
	}
	return nil
}

// AfterRankChange notifies every observer
func (o Observers) AfterRankChange(ctx context.Context, ev ports.RankEvent) {
	for _, obs := range o {
		if obs == nil {
			continue
		}
		obs.AfterRankChange(ctx, ev)
	}
}

// ObserverFuncs adapts plain functions to a RankObserver; nil fields are skipped
type ObserverFuncs struct {
	Before func(ctx context.Context, ev ports.RankEvent) error
	After  func(ctx context.Context, ev ports.RankEvent)
}

// BeforeRankChange calls Before if set
func (f ObserverFuncs) BeforeRankChange(ctx context.Context, ev ports.RankEvent) error {
	if f.Before == nil {
		return nil
	}
	return f.Before(ctx, ev)
}

// AfterRankChange calls After if set
func (f ObserverFuncs) AfterRankChange(ctx context.Context, ev ports.RankEvent) {
	if f.After != nil {
		f.After(ctx, ev)
	}
}
