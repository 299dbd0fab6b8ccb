// Package policy provides the chat admission policy. Conversations are
// evaluated before they are forwarded to the agent backend.
package policy

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/v1/rego"
)

// Decisions returned by the policy.
const (
	DecisionAllow = "allow"
	DecisionBlock = "block"
)

// Input is the document the policy evaluates: the size of the outbound
// conversation and the latest user message.
type Input struct {
	SessionID    string `json:"session_id"`
	MessageCount int    `json:"message_count"`
	Content      string `json:"content"`
}

// Engine is the OPA policy engine.
type Engine struct {
	query rego.PreparedEvalQuery
}

// NewEngine creates a new policy engine with the given rego module.
func NewEngine(ctx context.Context, policyContent string) (*Engine, error) {
	r := rego.New(
		rego.Query("data.chat_policy.decision"),
		rego.Module("chat_policy.rego", policyContent),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rego: %w", err)
	}

	return &Engine{query: query}, nil
}

// Evaluate returns the policy decision for a conversation.
func (e *Engine) Evaluate(ctx context.Context, input Input) (string, error) {
	results, err := e.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return "", fmt.Errorf("failed to evaluate policy: %w", err)
	}

	if len(results) == 0 || len(results[0].Expressions) == 0 {
		// The policy defines a default; an empty result means the module
		// was selected away and the request must not proceed.
		return DecisionBlock, nil
	}

	if decision, ok := results[0].Expressions[0].Value.(string); ok {
		return decision, nil
	}
	return DecisionBlock, nil
}

// DefaultPolicy is the default chat admission policy.
const DefaultPolicy = `
package chat_policy

default decision := "allow"

# Cap conversation size; oversized histories are rejected rather than
# truncated so the frontend keeps an accurate transcript.
decision := "block" if {
	input.message_count > 200
}

# Example: refuse prompt-injection boilerplate outright.
decision := "block" if {
	contains(lower(input.content), "ignore all previous instructions")
}
`
