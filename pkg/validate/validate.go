// Package validate implements eager field validation as an explicit rule
// list. Every rule is evaluated, violations are collected, sorted and joined
// so a caller sees all problems at once.
package validate

import (
	"sort"
	"strings"
)

// Rule pairs a predicate with the message reported when it fails.
type Rule struct {
	OK      bool
	Message string
}

// Error carries every violation message from a failed validation, sorted
// lexicographically.
type Error struct {
	Messages []string
}

func (e *Error) Error() string {
	return strings.Join(e.Messages, ",")
}

// Check evaluates all rules and returns nil, or an *Error listing every
// violated rule's message in sorted order.
func Check(rules ...Rule) error {
	var messages []string
	for _, r := range rules {
		if !r.OK {
			messages = append(messages, r.Message)
		}
	}
	if len(messages) == 0 {
		return nil
	}
	sort.Strings(messages)
	return &Error{Messages: messages}
}
