// Package guard composes authorization checks into ordered, short-circuiting
// chains. A route handler builds a Request, picks a named chain and turns the
// resulting Verdict into a response. Each guard carries an explicit
// fail-open/fail-closed policy for internal errors; an error can never slip
// through as a silent allow.
package guard

import (
	"context"
	"log/slog"

	"github.com/hearthsocial/hearth/internal/security/domain"
	"github.com/hearthsocial/hearth/pkg/slogx"
)

// Stable machine-readable denial codes. Clients branch on these, never on
// message prose.
const (
	CodeBlocked           = "BLOCKED"
	CodeContentHidden     = "CONTENT_HIDDEN"
	CodeProfilePrivate    = "PROFILE_PRIVATE"
	CodeMessagesClosed    = "MESSAGES_CLOSED"
	CodeSelfAction        = "SELF_ACTION"
	CodeTwoFactorRequired = "2FA_REQUIRED"
	CodeInvalidTwoFactor  = "INVALID_2FA_TOKEN"
	CodeGuardError        = "GUARD_ERROR"
)

type Decision int8

const (
	DecisionAllow Decision = iota
	DecisionDeny
	DecisionError
)

func (d Decision) String() string {
	switch d {
	case DecisionAllow:
		return "allow"
	case DecisionDeny:
		return "deny"
	case DecisionError:
		return "error"
	default:
		return "unknown"
	}
}

// Verdict is the outcome of one guard or a whole chain. Code is set on every
// deny; Err carries the cause on DecisionError so callers can map store and
// service sentinels to status codes.
type Verdict struct {
	Decision Decision
	Code     string
	Err      error
}

func Allowed() Verdict {
	return Verdict{Decision: DecisionAllow}
}

func Denied(code string) Verdict {
	return Verdict{Decision: DecisionDeny, Code: code}
}

func Failed(err error) Verdict {
	return Verdict{Decision: DecisionError, Code: CodeGuardError, Err: err}
}

// Policy decides what a chain does when a guard returns DecisionError.
type Policy int8

const (
	// FailClosed stops the chain and surfaces the error. Default, and the
	// only acceptable policy for guards protecting credentials or secrets.
	FailClosed Policy = iota

	// FailOpen logs the error and moves to the next guard. Reserved for
	// advisory checks where blocking legitimate traffic on a transient
	// store fault costs more than the check protects.
	FailOpen
)

// Request carries the actor and whatever context the guards in a chain need.
// Unused fields stay zero.
type Request struct {
	ActorID string

	// TargetID is the counterparty account: block target, message
	// recipient, profile owner, post author. Guards that need one treat an
	// empty TargetID as "no counterparty" and pass.
	TargetID string

	// Content is set for content visibility checks.
	Content *domain.ContentRef

	// TwoFactorCode is the TOTP code accompanying a sensitive request, if
	// the client sent one.
	TwoFactorCode string
}

// Guard is a single named predicate.
type Guard struct {
	Name   string
	Policy Policy
	Check  func(ctx context.Context, req Request) Verdict
}

// Chain is an ordered guard list evaluated front to back.
type Chain struct {
	Name   string
	Guards []Guard
}

// Evaluate runs the chain in declared order, short-circuiting on the first
// deny. A guard error either stops the chain (FailClosed) or is logged and
// skipped (FailOpen). An empty chain allows.
func (c Chain) Evaluate(ctx context.Context, req Request) Verdict {
	log := slogx.FromContext(ctx)

	for _, g := range c.Guards {
		v := g.Check(ctx, req)
		switch v.Decision {
		case DecisionAllow:
			continue

		case DecisionDeny:
			log.Warn("guard denied request",
				slog.String("chain", c.Name),
				slog.String("guard", g.Name),
				slog.String("code", v.Code),
				slog.String("actor_id", req.ActorID),
			)
			return v

		case DecisionError:
			if g.Policy == FailOpen {
				log.Warn("guard failed open",
					slog.String("chain", c.Name),
					slog.String("guard", g.Name),
					slog.Any("error", v.Err),
				)
				continue
			}
			log.Error("guard failed closed",
				slog.String("chain", c.Name),
				slog.String("guard", g.Name),
				slog.Any("error", v.Err),
			)
			if v.Code == "" {
				v.Code = CodeGuardError
			}
			return v
		}
	}

	return Allowed()
}
