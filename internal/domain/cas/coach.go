package cas

import "github.com/yungbote/cas-backend/internal/domain/payload"

// CoachRequest is the body of POST /api/cas/coach. Plan is usually a previous PlanResponse
// but any JSON value is accepted.
type CoachRequest struct {
	Question payload.Loose `json:"question"`
	Plan     payload.Loose `json:"plan"`
}

type SuggestedEdit struct {
	Index    payload.Number `json:"index"`
	NewTitle payload.Text   `json:"newTitle"`
	NewWhy   payload.Text   `json:"newWhy"`
}

type CoachResponse struct {
	Answer         payload.Text    `json:"answer"`
	SuggestedEdits []SuggestedEdit `json:"suggestedEdits"`
}

func DefaultCoachResponse() *CoachResponse {
	return &CoachResponse{Answer: "Here is a simpler way.", SuggestedEdits: []SuggestedEdit{}}
}

func (r *CoachResponse) Normalize() *CoachResponse {
	if r.SuggestedEdits == nil {
		r.SuggestedEdits = []SuggestedEdit{}
	}
	return r
}
