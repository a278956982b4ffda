// Package engagement implements the idempotent like/favorite toggle rules.
// Membership is always expressed as set operations (add-if-absent,
// remove-if-present) so repeated or racing identical actions cannot corrupt
// the stored set.
package engagement

import "errors"

// Action is the client-supplied toggle direction. The engine never infers
// direction from current state.
type Action string

const (
	ActionLike       Action = "like"
	ActionUnlike     Action = "unlike"
	ActionFavorite   Action = "favorite"
	ActionUnfavorite Action = "unfavorite"
)

// ErrInvalidAction rejects unknown action tokens instead of silently
// ignoring them.
var ErrInvalidAction = errors.New("engagement: invalid action")

func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionLike, ActionUnlike, ActionFavorite, ActionUnfavorite:
		return Action(s), nil
	}
	return "", ErrInvalidAction
}

// Engages reports whether the action transitions toward the Engaged state.
func (a Action) Engages() bool {
	return a == ActionLike || a == ActionFavorite
}

// Result describes the outcome of a toggle.
type Result struct {
	// Count is the membership count after the toggle, so callers can update
	// counters without a second read.
	Count int `json:"count"`
	// Changed is false for the no-op cases (liking twice, unliking a
	// non-member); both are successes.
	Changed bool `json:"changed"`
	// Engaged is the actor's final state.
	Engaged bool `json:"engaged"`
}

// Has reports set membership.
func Has[T comparable](members []T, id T) bool {
	for _, m := range members {
		if m == id {
			return true
		}
	}
	return false
}

// Add inserts id if absent and reports whether the set changed.
func Add[T comparable](members []T, id T) ([]T, bool) {
	if Has(members, id) {
		return members, false
	}
	return append(members, id), true
}

// Remove filters id out if present and reports whether the set changed.
func Remove[T comparable](members []T, id T) ([]T, bool) {
	for i, m := range members {
		if m == id {
			return append(members[:i:i], members[i+1:]...), true
		}
	}
	return members, false
}

// Toggle applies an action to a membership set. Unknown actions are
// rejected; both no-op cases succeed with Changed=false.
func Toggle[T comparable](members []T, id T, action Action) ([]T, Result, error) {
	switch action {
	case ActionLike, ActionFavorite:
		updated, changed := Add(members, id)
		return updated, Result{Count: len(updated), Changed: changed, Engaged: true}, nil
	case ActionUnlike, ActionUnfavorite:
		updated, changed := Remove(members, id)
		return updated, Result{Count: len(updated), Changed: changed, Engaged: false}, nil
	}
	return members, Result{}, ErrInvalidAction
}
