package query

import (
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
)

// Condition holds when Field contains Pattern.
type Condition struct {
	Field   string
	Pattern Pattern
}

// Filter is a disjunction of conditions. The zero Filter matches every
// document.
type Filter struct {
	conditions []Condition
	none       bool
}

// All matches every document.
func All() Filter {
	return Filter{}
}

// SingleField matches documents whose field contains text, ignoring case.
func SingleField(field, text string) Filter {
	return anyOf([]string{field}, Literal(text))
}

// MultiField matches documents where any of fields contains text, ignoring
// case.
func MultiField(fields []string, text string) Filter {
	return anyOf(fields, Literal(text))
}

// EscapedFlexible is MultiField with whitespace-tolerant matching.
func EscapedFlexible(fields []string, text string) Filter {
	return anyOf(fields, Flexible(text))
}

func anyOf(fields []string, p Pattern) Filter {
	if len(fields) == 0 {
		return Filter{none: true}
	}
	conditions := make([]Condition, len(fields))
	for i, field := range fields {
		conditions[i] = Condition{Field: field, Pattern: p}
	}
	return Filter{conditions: conditions}
}

// Conditions returns the OR-ed conditions, nil for All.
func (f Filter) Conditions() []Condition {
	return f.conditions
}

// BSON renders the filter for the mongo driver.
func (f Filter) BSON() bson.M {
	switch {
	case f.none:
		return bson.M{"_id": bson.M{"$in": bson.A{}}}
	case len(f.conditions) == 0:
		return bson.M{}
	case len(f.conditions) == 1:
		c := f.conditions[0]
		return bson.M{c.Field: c.Pattern.Regex()}
	}
	or := make(bson.A, len(f.conditions))
	for i, c := range f.conditions {
		or[i] = bson.M{c.Field: c.Pattern.Regex()}
	}
	return bson.M{"$or": or}
}

// Matcher compiles the filter for in-process evaluation. get returns the
// value of a named field, "" when absent.
func (f Filter) Matcher() (func(get func(field string) string) bool, error) {
	if f.none {
		return func(func(string) string) bool { return false }, nil
	}
	if len(f.conditions) == 0 {
		return func(func(string) string) bool { return true }, nil
	}

	compiled := make([]*regexp.Regexp, len(f.conditions))
	for i, c := range f.conditions {
		re, err := c.Pattern.Compile()
		if err != nil {
			return nil, fmt.Errorf("compile %s filter: %w", c.Field, err)
		}
		compiled[i] = re
	}
	return func(get func(string) string) bool {
		for i, c := range f.conditions {
			if compiled[i].MatchString(get(c.Field)) {
				return true
			}
		}
		return false
	}, nil
}
