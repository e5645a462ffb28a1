package maintenance

import (
	"errors"
	"fmt"
	"strings"
)

// Outcome is the normalized result of a backend probe.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeConnectivityFailure
	OutcomeOtherFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeConnectivityFailure:
		return "connectivity_failure"
	case OutcomeOtherFailure:
		return "other_failure"
	default:
		return "unknown"
	}
}

// BackendError is an error reported by the backend itself, as opposed to a
// failure to reach it. Probers convert driver and HTTP errors to this shape.
type BackendError struct {
	Status  int
	Code    string
	Message string
}

func (e *BackendError) Error() string {
	switch {
	case e.Code != "" && e.Status != 0:
		return fmt.Sprintf("backend error %d %s: %s", e.Status, e.Code, e.Message)
	case e.Code != "":
		return fmt.Sprintf("backend error %s: %s", e.Code, e.Message)
	case e.Status != 0:
		return fmt.Sprintf("backend error %d: %s", e.Status, e.Message)
	default:
		return "backend error: " + e.Message
	}
}

// MatchKind selects which BackendError field a Rule inspects.
type MatchKind int

const (
	MatchCode MatchKind = iota
	MatchCodePrefix
	MatchStatus
	MatchMessage
)

// Rule marks backend errors that mean the backend is unavailable.
type Rule struct {
	Kind   MatchKind
	Value  string
	Status int
}

func (r Rule) matches(e *BackendError) bool {
	switch r.Kind {
	case MatchCode:
		return strings.EqualFold(e.Code, r.Value)
	case MatchCodePrefix:
		return r.Value != "" && strings.HasPrefix(strings.ToUpper(e.Code), strings.ToUpper(r.Value))
	case MatchStatus:
		return e.Status != 0 && e.Status == r.Status
	case MatchMessage:
		return r.Value != "" && strings.Contains(strings.ToLower(e.Message), strings.ToLower(r.Value))
	default:
		return false
	}
}

// DefaultRules covers PostgREST connection and schema-cache codes, Postgres
// connection-class SQLSTATEs, gateway statuses and fetch failure messages.
var DefaultRules = []Rule{
	{Kind: MatchMessage, Value: "fetch failed"},
	{Kind: MatchMessage, Value: "failed to fetch"},
	{Kind: MatchMessage, Value: "networkerror"},
	{Kind: MatchMessage, Value: "network error"},
	{Kind: MatchMessage, Value: "connection refused"},
	{Kind: MatchCode, Value: "PGRST000"},
	{Kind: MatchCode, Value: "PGRST001"},
	{Kind: MatchCode, Value: "PGRST002"},
	{Kind: MatchCode, Value: "PGRST003"},
	{Kind: MatchCodePrefix, Value: "08"},
	{Kind: MatchCode, Value: "53300"},
	{Kind: MatchCode, Value: "57P01"},
	{Kind: MatchCode, Value: "57P02"},
	{Kind: MatchCode, Value: "57P03"},
	{Kind: MatchStatus, Status: 502},
	{Kind: MatchStatus, Status: 503},
	{Kind: MatchStatus, Status: 504},
}

// Classifier turns probe errors into Outcomes.
type Classifier struct {
	rules []Rule
}

// NewClassifier returns a Classifier for rules, or DefaultRules when empty.
func NewClassifier(rules []Rule) *Classifier {
	if len(rules) == 0 {
		rules = DefaultRules
	}
	return &Classifier{rules: rules}
}

// Classify maps a probe error to an Outcome. Errors that are not a
// BackendError mean the backend could not be asked at all and count as
// connectivity failures.
func (c *Classifier) Classify(err error) Outcome {
	if err == nil {
		return OutcomeSuccess
	}
	var backendErr *BackendError
	if !errors.As(err, &backendErr) {
		return OutcomeConnectivityFailure
	}
	for _, rule := range c.rules {
		if rule.matches(backendErr) {
			return OutcomeConnectivityFailure
		}
	}
	return OutcomeOtherFailure
}
