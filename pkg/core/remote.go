package core

import "context"

// PlanFetcher reads the remote flight plan set. Implementations must not
// retry; the caller owns any retry policy.
type PlanFetcher interface {
	FetchPlans(ctx context.Context) ([]RemoteFlightPlan, error)
}

// PlanPublisher broadcasts a locally saved plan to other desks.
type PlanPublisher interface {
	PublishPlan(ctx context.Context, plan FlightPlan) error
}

// TokenValidator asks the auth service whether a bearer token is still good.
// A nil error means valid.
type TokenValidator interface {
	Validate(ctx context.Context, token string) error
}
