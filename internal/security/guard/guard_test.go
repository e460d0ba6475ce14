package guard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func allowGuard(name string, hits *[]string) Guard {
	return Guard{
		Name:   name,
		Policy: FailClosed,
		Check: func(ctx context.Context, req Request) Verdict {
			*hits = append(*hits, name)
			return Allowed()
		},
	}
}

func denyGuard(name, code string, hits *[]string) Guard {
	return Guard{
		Name:   name,
		Policy: FailClosed,
		Check: func(ctx context.Context, req Request) Verdict {
			*hits = append(*hits, name)
			return Denied(code)
		},
	}
}

func errorGuard(name string, policy Policy, err error, hits *[]string) Guard {
	return Guard{
		Name:   name,
		Policy: policy,
		Check: func(ctx context.Context, req Request) Verdict {
			*hits = append(*hits, name)
			return Failed(err)
		},
	}
}

func TestChainEvaluate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("empty chain allows", func(t *testing.T) {
		v := Chain{Name: "empty"}.Evaluate(ctx, Request{ActorID: "a"})
		require.Equal(t, DecisionAllow, v.Decision)
		require.Empty(t, v.Code)
	})

	t.Run("runs guards in declared order", func(t *testing.T) {
		var hits []string
		chain := Chain{Name: "ordered", Guards: []Guard{
			allowGuard("first", &hits),
			allowGuard("second", &hits),
			allowGuard("third", &hits),
		}}

		v := chain.Evaluate(ctx, Request{ActorID: "a"})
		require.Equal(t, DecisionAllow, v.Decision)
		require.Equal(t, []string{"first", "second", "third"}, hits)
	})

	t.Run("short-circuits on first deny", func(t *testing.T) {
		var hits []string
		chain := Chain{Name: "deny", Guards: []Guard{
			allowGuard("first", &hits),
			denyGuard("second", CodeBlocked, &hits),
			allowGuard("third", &hits),
		}}

		v := chain.Evaluate(ctx, Request{ActorID: "a"})
		require.Equal(t, DecisionDeny, v.Decision)
		require.Equal(t, CodeBlocked, v.Code)
		require.Equal(t, []string{"first", "second"}, hits)
	})

	t.Run("fail-closed guard stops the chain", func(t *testing.T) {
		var hits []string
		cause := errors.New("store offline")
		chain := Chain{Name: "closed", Guards: []Guard{
			errorGuard("first", FailClosed, cause, &hits),
			allowGuard("second", &hits),
		}}

		v := chain.Evaluate(ctx, Request{ActorID: "a"})
		require.Equal(t, DecisionError, v.Decision)
		require.Equal(t, CodeGuardError, v.Code)
		require.ErrorIs(t, v.Err, cause)
		require.Equal(t, []string{"first"}, hits)
	})

	t.Run("fail-open guard skips to the next", func(t *testing.T) {
		var hits []string
		chain := Chain{Name: "open", Guards: []Guard{
			errorGuard("first", FailOpen, errors.New("store offline"), &hits),
			denyGuard("second", CodeContentHidden, &hits),
		}}

		v := chain.Evaluate(ctx, Request{ActorID: "a"})
		require.Equal(t, DecisionDeny, v.Decision)
		require.Equal(t, CodeContentHidden, v.Code)
		require.Equal(t, []string{"first", "second"}, hits)
	})

	t.Run("fail-open never converts an error chain into allow silently", func(t *testing.T) {
		// A trailing fail-open error still yields Allow only because every
		// remaining guard was consulted; the error itself is logged, and a
		// fail-closed twin would have stopped the chain.
		var hits []string
		chain := Chain{Name: "trailing", Guards: []Guard{
			allowGuard("first", &hits),
			errorGuard("second", FailOpen, errors.New("flaky"), &hits),
		}}

		v := chain.Evaluate(ctx, Request{ActorID: "a"})
		require.Equal(t, DecisionAllow, v.Decision)
		require.Equal(t, []string{"first", "second"}, hits)
	})
}

func TestVerdictConstructors(t *testing.T) {
	t.Parallel()

	require.Equal(t, Verdict{Decision: DecisionAllow}, Allowed())
	require.Equal(t, Verdict{Decision: DecisionDeny, Code: CodeBlocked}, Denied(CodeBlocked))

	cause := errors.New("boom")
	v := Failed(cause)
	require.Equal(t, DecisionError, v.Decision)
	require.Equal(t, CodeGuardError, v.Code)
	require.ErrorIs(t, v.Err, cause)
}

func TestDecisionString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "allow", DecisionAllow.String())
	require.Equal(t, "deny", DecisionDeny.String())
	require.Equal(t, "error", DecisionError.String())
	require.Equal(t, "unknown", Decision(9).String())
}
