package auth

import "github.com/spec-kit/shift-tracker/internal/domain"

// GuardOutcome is the single result of a guard evaluation.
type GuardOutcome int

const (
	// GuardLoading means the auth state is not known yet; nothing may redirect.
	GuardLoading GuardOutcome = iota
	// GuardSignIn means the caller must authenticate first.
	GuardSignIn
	// GuardDenied means the caller is authenticated but below the required rank.
	GuardDenied
	// GuardGranted means the protected content may be served.
	GuardGranted
)

func (o GuardOutcome) String() string {
	switch o {
	case GuardLoading:
		return "loading"
	case GuardSignIn:
		return "sign_in"
	case GuardDenied:
		return "denied"
	case GuardGranted:
		return "granted"
	default:
		return "unknown"
	}
}

// GuardInput captures the auth state at the moment of the check.
type GuardInput struct {
	Authenticated bool
	Loaded        bool
	Role          domain.Role
	Required      *domain.Role
}

// GuardDecision carries the outcome and, for denials, both roles involved.
type GuardDecision struct {
	Outcome  GuardOutcome
	Required *domain.Role
	Actual   domain.Role
}

// Guard evaluates in fixed precedence: loading, then authentication, then rank.
func Guard(in GuardInput) GuardDecision {
	switch {
	case !in.Loaded:
		return GuardDecision{Outcome: GuardLoading}
	case !in.Authenticated:
		return GuardDecision{Outcome: GuardSignIn}
	case !IsAuthorized(in.Role, in.Required):
		return GuardDecision{Outcome: GuardDenied, Required: in.Required, Actual: in.Role}
	default:
		return GuardDecision{Outcome: GuardGranted, Required: in.Required, Actual: in.Role}
	}
}
