package ports

import "context"

// BriefingInput holds everything the LLM needs to write a mission briefing.
type BriefingInput struct {
	Game     string
	Elements []ElementInput
}

// ElementInput is a simplified mission element for the LLM prompt.
type ElementInput struct {
	Label  string
	Card   string
	Result string
	Role   string
}

// BriefingOutput is the structured briefing returned by the LLM.
type BriefingOutput struct {
	Title      string `json:"title"`
	Text       string `json:"text"`
	Disclaimer string `json:"disclaimer"`
	Model      string `json:"-"`
}

// Narrator turns a generated mission into read-aloud prose.
type Narrator interface {
	Brief(ctx context.Context, in BriefingInput) (BriefingOutput, error)
}
