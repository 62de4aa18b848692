// Package authz evaluates the route-level access policy.
package authz

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/open-policy-agent/opa/rego"
)

//go:embed policy.rego
var policy string

// Principal is the authenticated caller.
type Principal struct {
	ID    string
	Admin bool
}

type Request struct {
	Method string
	Route  string
	Params map[string]string
	User   *Principal
}

type Policy struct {
	query rego.PreparedEvalQuery
}

func NewPolicy(ctx context.Context) (*Policy, error) {
	query, err := rego.New(
		rego.Query("data.flightbooking.authz.allow"),
		rego.Module("policy.rego", policy),
	).PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("prepare authz policy: %w", err)
	}
	return &Policy{query: query}, nil
}

// Allowed reports whether the policy grants the request.
func (p *Policy) Allowed(ctx context.Context, req Request) (bool, error) {
	params := make(map[string]interface{}, len(req.Params))
	for k, v := range req.Params {
		params[k] = v
	}
	input := map[string]interface{}{
		"route":  req.Method + " " + req.Route,
		"params": params,
	}
	if req.User != nil {
		input["user"] = map[string]interface{}{
			"id":    req.User.ID,
			"admin": req.User.Admin,
		}
	}

	rs, err := p.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return false, fmt.Errorf("evaluate authz policy: %w", err)
	}
	return rs.Allowed(), nil
}
