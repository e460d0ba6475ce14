package guard

import (
	"context"
	"errors"

	"github.com/hearthsocial/hearth/internal/security/service"
)

// Chains builds the named guard pipelines route handlers consume. All
// shipped guards fail closed; FailOpen is available to embedders composing
// advisory chains of their own.
type Chains struct {
	Blocks     *service.BlockService
	Visibility *service.VisibilityService
	TwoFactor  *service.TwoFactorService
}

// Options tunes optional stages of a chain.
type Options struct {
	// RequireTwoFactor appends the two-factor gate. Accounts without an
	// active enrollment pass it; enrolled accounts must send a valid code.
	RequireTwoFactor bool
}

// Interaction guards direct actor-to-target actions with the symmetric
// block check.
func (c *Chains) Interaction() Chain {
	return Chain{
		Name:   "interaction",
		Guards: []Guard{c.blockGuard()},
	}
}

// PostOperations guards replies, reactions and other interactions with a
// post: block check against the author, then content visibility, then
// optionally the two-factor gate.
func (c *Chains) PostOperations(opts Options) Chain {
	guards := []Guard{c.blockGuard(), c.contentGuard()}
	if opts.RequireTwoFactor {
		guards = append(guards, c.twoFactorGuard())
	}
	return Chain{Name: "post_operations", Guards: guards}
}

// ContentViewing guards a single content fetch. List endpoints use
// VisibilityService.FilterContent instead, which folds the same block and
// scope checks across the batch with one following-set lookup.
func (c *Chains) ContentViewing() Chain {
	return Chain{
		Name:   "content_viewing",
		Guards: []Guard{c.blockGuard(), c.contentGuard()},
	}
}

// ProfileViewing guards profile reads. The block rule here is directional
// (only the owner's block hides the profile), so the symmetric block guard
// stays out of this chain.
func (c *Chains) ProfileViewing() Chain {
	return Chain{
		Name:   "profile_viewing",
		Guards: []Guard{c.profileGuard()},
	}
}

// Messaging guards direct messages, optionally with the two-factor gate.
func (c *Chains) Messaging(opts Options) Chain {
	guards := []Guard{c.messageGuard()}
	if opts.RequireTwoFactor {
		guards = append(guards, c.twoFactorGuard())
	}
	return Chain{Name: "messaging", Guards: guards}
}

// FollowOperations guards the follow-request pathway with the symmetric
// block check; the follow service re-validates state transitions itself.
func (c *Chains) FollowOperations() Chain {
	return Chain{
		Name:   "follow_operations",
		Guards: []Guard{c.blockGuard()},
	}
}

// SensitiveOperation guards destructive account actions. The two-factor
// gate runs before anything else so a missing code never leaks whether the
// rest of the chain would have passed.
func (c *Chains) SensitiveOperation() Chain {
	return Chain{
		Name:   "sensitive_operation",
		Guards: []Guard{c.twoFactorGuard(), c.blockGuard()},
	}
}

// blockGuard denies when a block exists in either direction between the
// actor and the target. No counterparty means nothing to check.
func (c *Chains) blockGuard() Guard {
	return Guard{
		Name:   "block",
		Policy: FailClosed,
		Check: func(ctx context.Context, req Request) Verdict {
			target := req.TargetID
			if target == "" && req.Content != nil {
				target = req.Content.OwnerID
			}
			if target == "" {
				return Allowed()
			}

			ok, err := c.Blocks.CanInteract(ctx, req.ActorID, target)
			if err != nil {
				return Failed(err)
			}
			if !ok {
				return Denied(CodeBlocked)
			}
			return Allowed()
		},
	}
}

// contentGuard denies when the content's privacy scope excludes the actor.
func (c *Chains) contentGuard() Guard {
	return Guard{
		Name:   "content_visibility",
		Policy: FailClosed,
		Check: func(ctx context.Context, req Request) Verdict {
			if req.Content == nil {
				return Failed(errors.New("content visibility guard invoked without content"))
			}

			ok, err := c.Visibility.CanAccessContent(ctx, req.ActorID, *req.Content)
			if err != nil {
				return Failed(err)
			}
			if !ok {
				return Denied(CodeContentHidden)
			}
			return Allowed()
		},
	}
}

// profileGuard denies when the target profile is hidden from the actor,
// either by the target's block or by a private profile without an approved
// follow.
func (c *Chains) profileGuard() Guard {
	return Guard{
		Name:   "profile_visibility",
		Policy: FailClosed,
		Check: func(ctx context.Context, req Request) Verdict {
			ok, err := c.Visibility.CanAccessProfile(ctx, req.ActorID, req.TargetID)
			if err != nil {
				return Failed(err)
			}
			if !ok {
				return Denied(CodeProfilePrivate)
			}
			return Allowed()
		},
	}
}

// messageGuard denies self-messages and recipients whose settings or blocks
// close their inbox to the actor.
func (c *Chains) messageGuard() Guard {
	return Guard{
		Name:   "messaging",
		Policy: FailClosed,
		Check: func(ctx context.Context, req Request) Verdict {
			if req.ActorID == req.TargetID {
				return Denied(CodeSelfAction)
			}

			ok, err := c.Visibility.CanMessage(ctx, req.ActorID, req.TargetID)
			if err != nil {
				return Failed(err)
			}
			if !ok {
				return Denied(CodeMessagesClosed)
			}
			return Allowed()
		},
	}
}

// twoFactorGuard binds enrolled accounts to a fresh TOTP proof. Accounts
// that never enrolled pass; enrollment itself is encouraged elsewhere, not
// forced at the gate.
func (c *Chains) twoFactorGuard() Guard {
	return Guard{
		Name:   "two_factor",
		Policy: FailClosed,
		Check: func(ctx context.Context, req Request) Verdict {
			if req.TwoFactorCode == "" {
				status, err := c.TwoFactor.Status(ctx, req.ActorID)
				if err != nil {
					return Failed(err)
				}
				if !status.Enabled {
					return Allowed()
				}
				return Denied(CodeTwoFactorRequired)
			}

			ok, err := c.TwoFactor.Verify(ctx, req.ActorID, req.TwoFactorCode)
			switch {
			case errors.Is(err, service.ErrTwoFactorNotEnabled):
				return Allowed()
			case err != nil:
				return Failed(err)
			case !ok:
				return Denied(CodeInvalidTwoFactor)
			}
			return Allowed()
		},
	}
}
