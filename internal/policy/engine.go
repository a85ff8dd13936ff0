// Package policy decides whether a vision result shows something worth styling.
package policy

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/rego"
)

// Engine is the OPA policy engine.
type Engine struct {
	query rego.PreparedEvalQuery
}

// NewEngine creates a new policy engine with the given policy content.
func NewEngine(ctx context.Context, policyContent string) (*Engine, error) {
	r := rego.New(
		rego.Query("data.subject_policy.relevant"),
		rego.Module("subject_policy.rego", policyContent),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rego: %w", err)
	}

	return &Engine{query: query}, nil
}

// Relevant reports whether any tag is one of the subject keywords.
// Matching is exact and case-sensitive.
func (e *Engine) Relevant(ctx context.Context, tags []string) (bool, error) {
	input := make([]interface{}, 0, len(tags))
	for _, t := range tags {
		input = append(input, t)
	}

	results, err := e.query.Eval(ctx, rego.EvalInput(map[string]interface{}{"tags": input}))
	if err != nil {
		return false, fmt.Errorf("failed to evaluate policy: %w", err)
	}

	if len(results) == 0 || len(results[0].Expressions) == 0 {
		return false, nil
	}

	relevant, ok := results[0].Expressions[0].Value.(bool)
	if !ok {
		return false, fmt.Errorf("unexpected policy result type %T", results[0].Expressions[0].Value)
	}
	return relevant, nil
}

// DefaultPolicy is the default policy content. Keep the keyword set in sync
// with domain.SubjectKeywords.
const DefaultPolicy = `
package subject_policy

default relevant = false

keywords := {"person", "clothing", "dress", "shirt", "pants", "jacket"}

relevant = true {
	keywords[input.tags[_]]
}
`
