package desk

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/brunoga/deep"

	"github.com/aretw0/atcdesk/pkg/core"
	"github.com/aretw0/atcdesk/pkg/typed"
)

// Rendered placeholders for flight plans.
const (
	NoPlansPlaceholder = "No flight plans submitted yet."
	MissingValue       = "N/A"
	SquawkNotAssigned  = "Not assigned"
)

// Plans is the flight plan manager. It keeps the local append-only sequence
// in the store and shows either that sequence or a fetched remote set.
type Plans struct {
	mu        *sync.Mutex
	key       typed.Key[[]core.FlightPlan]
	surface   core.PlanSurface
	fetcher   core.PlanFetcher
	publisher core.PlanPublisher
	logger    *slog.Logger
	now       func() time.Time

	remote        []core.RemoteFlightPlan
	fetchedAt     time.Time
	showingRemote bool
}

func newPlans(mu *sync.Mutex, store core.Store, surface core.PlanSurface, cfg Config) *Plans {
	return &Plans{
		mu:        mu,
		key:       typed.NewKey[[]core.FlightPlan](store, core.KeyFlightPlans),
		surface:   surface,
		fetcher:   cfg.Fetcher,
		publisher: cfg.Publisher,
		logger:    cfg.Logger,
		now:       cfg.Now,
	}
}

func (p *Plans) load(ctx context.Context) ([]core.FlightPlan, error) {
	plans, err := p.key.Load(ctx)
	if errors.Is(err, typed.ErrCorrupt) {
		p.logger.Warn("treating corrupt flight plans as empty", "error", err)
		return []core.FlightPlan{}, nil
	}
	if err != nil {
		return nil, err
	}
	if plans == nil {
		plans = []core.FlightPlan{}
	}
	return plans, nil
}

// Save stamps plan with the current time in Unix milliseconds, appends it to
// the local sequence and re-renders it. The stamped plan is returned.
//
// With a publisher configured the plan is also broadcast; a failed publish
// is logged and does not fail the save.
func (p *Plans) Save(ctx context.Context, plan core.FlightPlan) (core.FlightPlan, error) {
	p.mu.Lock()
	plan.Timestamp = p.now().UnixMilli()
	plans, err := p.load(ctx)
	if err == nil {
		plans = append(plans, plan)
		err = p.key.Store(ctx, plans)
	}
	if err != nil {
		p.mu.Unlock()
		return core.FlightPlan{}, fmt.Errorf("save flight plan: %w", err)
	}
	p.renderLocal(plans)
	p.mu.Unlock()

	if p.publisher != nil {
		if err := p.publisher.PublishPlan(ctx, plan); err != nil {
			p.logger.Warn("failed to publish flight plan", "callsign", plan.Callsign, "error", err)
		}
	}
	return plan, nil
}

// Local returns the locally saved plans in save order.
func (p *Plans) Local(ctx context.Context) ([]core.FlightPlan, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.load(ctx)
}

// RenderLocal shows the local sequence.
func (p *Plans) RenderLocal(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	plans, err := p.load(ctx)
	if err != nil {
		return err
	}
	p.renderLocal(plans)
	return nil
}

// refresh re-renders the local sequence after an outside change, unless the
// surface is showing a remote set.
func (p *Plans) refresh(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.showingRemote {
		return nil
	}
	plans, err := p.load(ctx)
	if err != nil {
		return err
	}
	p.renderLocal(plans)
	return nil
}

// FetchRemote retrieves the remote set and shows exactly that set. Local
// storage is not touched. On failure the error is logged and returned and
// the surface keeps whatever it showed before.
func (p *Plans) FetchRemote(ctx context.Context) ([]core.RemoteFlightPlan, error) {
	if p.fetcher == nil {
		return nil, fmt.Errorf("remote flight plans: %w", core.ErrNotConfigured)
	}
	plans, err := p.fetcher.FetchPlans(ctx)
	if err != nil {
		p.logger.Error("error fetching flight plans", "error", err)
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.remote = plans
	p.fetchedAt = p.now()
	p.renderRemote(plans)
	return deep.MustCopy(plans), nil
}

// Remote returns a copy of the last successfully fetched set.
func (p *Plans) Remote() []core.RemoteFlightPlan {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.remote == nil {
		return nil
	}
	return deep.MustCopy(p.remote)
}

func (p *Plans) renderLocal(plans []core.FlightPlan) {
	p.showingRemote = false
	view := core.PlanListView{}
	if len(plans) == 0 {
		view.Placeholder = NoPlansPlaceholder
	}
	for _, fp := range plans {
		squawk := fp.Squawk
		if squawk == "" {
			squawk = SquawkNotAssigned
		}
		view.Cards = append(view.Cards, planCard(
			fp.Callsign, fp.Departure, fp.Arrival,
			fp.Aircraft, fp.FlightRule, fp.SID, fp.CruisingLevel, squawk,
		))
	}
	p.surface.RenderPlans(view)
}

func (p *Plans) renderRemote(plans []core.RemoteFlightPlan) {
	p.showingRemote = true
	view := core.PlanListView{}
	if len(plans) == 0 {
		view.Placeholder = NoPlansPlaceholder
	}
	for _, fp := range plans {
		view.Cards = append(view.Cards, planCard(
			string(fp.Callsign), string(fp.Departure), string(fp.Arrival),
			string(fp.Aircraft), string(fp.FlightRule), string(fp.SID),
			string(fp.CruisingLevel), string(fp.Squawk),
		))
	}
	p.surface.RenderPlans(view)
}

func planCard(callsign, dep, arr, aircraft, rule, sid, level, squawk string) core.PlanCard {
	return core.PlanCard{
		Title: fmt.Sprintf("%s - %s to %s", orNA(callsign), orNA(dep), orNA(arr)),
		Fields: []core.PlanField{
			{Label: "Aircraft", Value: orNA(aircraft)},
			{Label: "Flight Rule Type", Value: orNA(rule)},
			{Label: "SID", Value: orNA(sid)},
			{Label: "Cruising Level", Value: orNA(level)},
			{Label: "Squawk", Value: orNA(squawk)},
		},
	}
}

func orNA(s string) string {
	if s == "" {
		return MissingValue
	}
	return s
}
