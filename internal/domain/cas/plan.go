// Package cas holds the request and response shapes of the planning and coaching endpoints.
package cas

import "github.com/yungbote/cas-backend/internal/domain/payload"

// PlanRequest is the body of POST /api/cas/plan. Every field is optional.
type PlanRequest struct {
	Goal       payload.Loose `json:"goal"`
	Friction   payload.Loose `json:"friction"`
	Strengths  payload.Loose `json:"strengths"`
	SleepHours payload.Loose `json:"sleepHours"`
	Mood       payload.Loose `json:"mood"`
	Focus      payload.Loose `json:"focus"`
}

type PlanItem struct {
	Title       payload.Text   `json:"title"`
	Why         payload.Text   `json:"why"`
	DurationMin payload.Number `json:"durationMin"`
	Difficulty  payload.Text   `json:"difficulty"`
}

type PlanResponse struct {
	Summary      payload.Text   `json:"summary"`
	Items        []PlanItem     `json:"items"`
	Explanations []payload.Text `json:"explanations"`
}

// DefaultPlanResponse is returned when the model answer cannot be used.
func DefaultPlanResponse() *PlanResponse {
	return &PlanResponse{Summary: "Plan ready.", Items: []PlanItem{}, Explanations: []payload.Text{}}
}

// Normalize replaces nil arrays with empty ones so the encoded shape is stable.
func (r *PlanResponse) Normalize() *PlanResponse {
	if r.Items == nil {
		r.Items = []PlanItem{}
	}
	if r.Explanations == nil {
		r.Explanations = []payload.Text{}
	}
	return r
}
