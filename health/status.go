package health

import "time"

// State is the health state of a subsystem.
type State string

// Possible health states.
const (
	Healthy   State = "healthy"
	Degraded  State = "degraded"
	Unhealthy State = "unhealthy"
)

// Status represents the health of one subsystem or an aggregate.
type Status struct {
	Component   string    `json:"component"`
	State       State     `json:"state"`
	Message     string    `json:"message"`
	Timestamp   time.Time `json:"timestamp"`
	SubStatuses []Status  `json:"sub_statuses,omitempty"`
}

// IsHealthy reports whether the state is healthy.
func (s Status) IsHealthy() bool { return s.State == Healthy }

// IsDegraded reports whether the state is degraded.
func (s Status) IsDegraded() bool { return s.State == Degraded }

// IsUnhealthy reports whether the state is unhealthy.
func (s Status) IsUnhealthy() bool { return s.State == Unhealthy }

// NewHealthy creates a healthy status.
func NewHealthy(component, message string) Status {
	return Status{Component: component, State: Healthy, Message: message, Timestamp: time.Now()}
}

// NewDegraded creates a degraded status.
func NewDegraded(component, message string) Status {
	return Status{Component: component, State: Degraded, Message: message, Timestamp: time.Now()}
}

// NewUnhealthy creates an unhealthy status.
func NewUnhealthy(component, message string) Status {
	return Status{Component: component, State: Unhealthy, Message: message, Timestamp: time.Now()}
}

// Aggregate folds sub-statuses into one: any unhealthy makes the
// aggregate unhealthy, otherwise any degraded makes it degraded.
func Aggregate(component string, subStatuses []Status) Status {
	if len(subStatuses) == 0 {
		return NewHealthy(component, "no sub-components to aggregate")
	}

	hasUnhealthy := false
	hasDegraded := false
	for _, sub := range subStatuses {
		switch {
		case sub.IsUnhealthy():
			hasUnhealthy = true
		case sub.IsDegraded():
			hasDegraded = true
		}
	}

	var status Status
	switch {
	case hasUnhealthy:
		status = NewUnhealthy(component, "one or more sub-components are unhealthy")
	case hasDegraded:
		status = NewDegraded(component, "one or more sub-components are degraded")
	default:
		status = NewHealthy(component, "all sub-components are healthy")
	}

	status.SubStatuses = make([]Status, len(subStatuses))
	copy(status.SubStatuses, subStatuses)
	return status
}
