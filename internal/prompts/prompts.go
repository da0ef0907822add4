// Package prompts builds the system and user messages sent for each endpoint.
package prompts

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/yungbote/cas-backend/internal/domain/cas"
	"github.com/yungbote/cas-backend/internal/domain/robotics"
)

// System is shared by every endpoint.
const System = "You are CAS-Model. Write JSON only.\n" +
	"Rules: short sentences, grade 6–8 reading level, list 3–7 tiny steps, add 1-sentence rationale, and a brief safety note when relevant. Not medical advice."

// MaxCoachPlanChars bounds the plan excerpt embedded in a coach prompt.
const MaxCoachPlanChars = 4000

const (
	planShape   = `{"summary":"", "items":[{"title":"","why":"","durationMin":5,"difficulty":"easy"}], "explanations":[""]}`
	coachShape  = `{"answer":"", "suggestedEdits":[{"index":0,"newTitle":"","newWhy":""}]}`
	skillsShape = `{"skillsSuggested":[{"name":"","steps":"1) ...","safety":""}]}`
)

func Plan(req cas.PlanRequest) string {
	var b strings.Builder
	b.WriteString("Build a plan from:\n")
	b.WriteString("Goal:" + req.Goal.Text("") + "\n")
	b.WriteString("Friction:" + req.Friction.Text("") + "\n")
	b.WriteString("Strengths:" + req.Strengths.Text("") + "\n")
	b.WriteString("Sleep:" + req.SleepHours.Text("null") + "h")
	b.WriteString(" Mood:" + req.Mood.Text("null") + "/5")
	b.WriteString(" Focus:" + req.Focus.Text("null") + "/5\n")
	b.WriteString("\nReturn JSON:\n")
	b.WriteString(planShape)
	return b.String()
}

func Coach(req cas.CoachRequest) string {
	plan := truncateRunes(string(req.Plan.JSON("{}")), MaxCoachPlanChars)

	var b strings.Builder
	b.WriteString("Question:" + req.Question.Text("") + "\n")
	b.WriteString("Plan JSON:" + plan + "\n")
	b.WriteString("Return JSON:\n")
	b.WriteString(coachShape)
	return b.String()
}

func Skills(req robotics.SkillsRequest) string {
	input := struct {
		Intent      json.RawMessage `json:"intent"`
		Environment json.RawMessage `json:"environment"`
	}{
		Intent:      req.Intent.JSON(`""`),
		Environment: req.Environment.JSON("{}"),
	}

	var b strings.Builder
	b.WriteString("Map intent to accessibility-robotics skills.\n")
	b.WriteString("Input:" + encodeCompact(input) + "\n")
	b.WriteString("Return JSON:\n")
	b.WriteString(skillsShape)
	return b.String()
}

func encodeCompact(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "{}"
	}
	return strings.TrimRight(buf.String(), "\n")
}

func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
