// Package eventbus holds topic helpers shared by publishers and subscribers.
package eventbus

import "fmt"

// ScopedTopic appends a scope id to a base topic: {baseTopic}.{scope}.
//
// Example:
//   - baseTopic: "bowling.scores.computed.v1"
//   - scope: a game id
//   - result: "bowling.scores.computed.v1.<game id>"
//
// A scoreboard subscribes to one game with the scoped topic, or to every game with
// WildcardTopic.
func ScopedTopic(baseTopic, scope string) string {
	return fmt.Sprintf("%s.%s", baseTopic, scope)
}

// WildcardTopic is the NATS subject matching every scope of baseTopic.
func WildcardTopic(baseTopic string) string {
	return baseTopic + ".*"
}
