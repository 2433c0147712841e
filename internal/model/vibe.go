// Package model defines domain entities for the application.
package model

import "time"

// Vibe is the per-user UI state record.
// Text fields and TimeToNextOracle are nullable; a nil TimeToNextOracle
// means no reset is pending.
type Vibe struct {
	Fortune  *string `json:"fortune" dynamodbav:"fortune"`
	Question *string `json:"question,omitempty" dynamodbav:"question,omitempty"`
	Answer   *string `json:"answer" dynamodbav:"answer"`
	// Response is a legacy slot carried by the default record. Nothing writes it.
	Response *string `json:"response" dynamodbav:"response"`

	IsButtonShown  bool `json:"isButtonShown" dynamodbav:"isButtonShown"`
	IsFortuneShown bool `json:"isFortuneShown" dynamodbav:"isFortuneShown"`
	IsClarityShown bool `json:"isClarityShown" dynamodbav:"isClarityShown"`

	// TimeToNextOracle is an epoch timestamp in milliseconds.
	TimeToNextOracle *int64 `json:"timeToNextOracle" dynamodbav:"timeToNextOracle"`
}

// DefaultVibe returns the record a user starts with: only the oracle
// button is shown and nothing is pending.
func DefaultVibe() *Vibe {
	return &Vibe{
		IsButtonShown: true,
	}
}

// ResetAt returns the instant after which the vibe should be reset,
// truncated to whole seconds. ok is false when no reset is pending.
func (v *Vibe) ResetAt() (at time.Time, ok bool) {
	if v.TimeToNextOracle == nil {
		return time.Time{}, false
	}
	secs := *v.TimeToNextOracle / 1000
	if *v.TimeToNextOracle < 0 && *v.TimeToNextOracle%1000 != 0 {
		secs-- // floor, not truncation
	}
	return time.Unix(secs, 0).UTC(), true
}

// IsExpired reports whether now is strictly after the reset instant.
func (v *Vibe) IsExpired(now time.Time) bool {
	at, ok := v.ResetAt()
	if !ok {
		return false
	}
	return now.UTC().After(at)
}

// Clone returns a deep copy of v.
func (v *Vibe) Clone() *Vibe {
	if v == nil {
		return nil
	}
	c := *v
	c.Fortune = clonePtr(v.Fortune)
	c.Question = clonePtr(v.Question)
	c.Answer = clonePtr(v.Answer)
	c.Response = clonePtr(v.Response)
	c.TimeToNextOracle = clonePtr(v.TimeToNextOracle)
	return &c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
