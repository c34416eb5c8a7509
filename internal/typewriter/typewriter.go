// Package typewriter stages the hero's rotating role titles for the
// client-side typing widget.
package typewriter

import (
	"regexp"
	"time"
)

var keywordPattern = regexp.MustCompile(`(?i)\bengineer\b`)

// Role is a role title split around the first whole-word "engineer".
type Role struct {
	Role         string `json:"role"`
	Prefix       string `json:"prefix"`
	Keyword      string `json:"keyword"`
	KeywordAtEnd bool   `json:"keywordAtEnd"`
}

// Segment splits each role around the keyword. A role without the keyword
// keeps the whole text as its prefix.
func Segment(roles []string) []Role {
	out := make([]Role, len(roles))
	for i, role := range roles {
		loc := keywordPattern.FindStringIndex(role)
		if loc == nil {
			out[i] = Role{Role: role, Prefix: role}
			continue
		}
		out[i] = Role{
			Role:         role,
			Prefix:       role[:loc[0]],
			Keyword:      role[loc[0]:loc[1]],
			KeywordAtEnd: loc[1] == len(role),
		}
	}
	return out
}

// Op is a widget instruction.
type Op string

const (
	OpType    Op = "type"
	OpPause   Op = "pause"
	OpMove    Op = "move"
	OpMoveEnd Op = "moveEnd"
	OpDelete  Op = "delete"
)

// Step is one widget instruction. Only the field relevant to Op is set.
type Step struct {
	Op    Op     `json:"op"`
	Text  string `json:"text,omitempty"`
	Count int    `json:"count,omitempty"`
	Ms    int64  `json:"ms,omitempty"`
}

// DefaultPause is how long each role stays on screen.
const DefaultPause = 2 * time.Second

// NewPlan builds the typing sequence for roles. Between two roles that both
// end in the keyword only the prefix is retyped, with the cursor parked
// before the shared keyword; otherwise the whole text is replaced.
func NewPlan(roles []string, pause time.Duration) []Step {
	segs := Segment(roles)
	if len(segs) == 0 {
		return nil
	}
	ms := pause.Milliseconds()

	plan := []Step{{Op: OpType, Text: segs[0].Role}}
	for i, cur := range segs[:len(segs)-1] {
		next := segs[i+1]
		plan = append(plan, Step{Op: OpPause, Ms: ms})
		if cur.KeywordAtEnd && next.KeywordAtEnd {
			plan = append(plan,
				Step{Op: OpMove, Count: -len([]rune(cur.Keyword))},
				Step{Op: OpDelete, Count: len([]rune(cur.Prefix))},
				Step{Op: OpType, Text: next.Prefix},
				Step{Op: OpMoveEnd},
			)
			continue
		}
		plan = append(plan,
			Step{Op: OpDelete, Count: len([]rune(cur.Role))},
			Step{Op: OpType, Text: next.Role},
		)
	}
	return append(plan, Step{Op: OpPause, Ms: ms})
}
