package domain

import "errors"

var (
	ErrInvalidCard     = errors.New("invalid card")
	ErrDuplicateCard   = errors.New("card drawn more than once")
	ErrNotEnoughCards  = errors.New("not enough cards")
	ErrUnknownElement  = errors.New("unknown mission element")
	ErrNoNestedDraws   = errors.New("element has no pending nested draws")
	ErrInvalidEncoding = errors.New("no mission to restore")
	ErrInvalidRuleset  = errors.New("invalid ruleset")
	ErrGameNotFound    = errors.New("game not found")
	ErrUpstreamLLM     = errors.New("upstream LLM failure")
	ErrInvalidLLMJSON  = errors.New("LLM returned invalid JSON after retry")
	ErrNarratorOff     = errors.New("briefings are not configured")
)
