// Package robotics holds the request and response shapes of the accessibility-robotics
// skill mapping endpoint.
package robotics

import "github.com/yungbote/cas-backend/internal/domain/payload"

type SkillsRequest struct {
	Intent      payload.Loose `json:"intent"`
	Environment payload.Loose `json:"environment"`
}

type Skill struct {
	Name   payload.Text `json:"name"`
	Steps  payload.Text `json:"steps"`
	Safety payload.Text `json:"safety"`
}

type SkillsResponse struct {
	SkillsSuggested []Skill `json:"skillsSuggested"`
}

func DefaultSkillsResponse() *SkillsResponse {
	return &SkillsResponse{SkillsSuggested: []Skill{}}
}

func (r *SkillsResponse) Normalize() *SkillsResponse {
	if r.SkillsSuggested == nil {
		r.SkillsSuggested = []Skill{}
	}
	return r
}
