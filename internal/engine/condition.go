package engine

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"tidy-go/internal/model"
)

// Condition value date formats, tried in order.
var conditionDateFormats = []string{
	time.RFC3339,
	"2006-01-02",
}

// EvaluateCondition evaluates one condition against one file snapshot.
// It is pure and fails closed: unparseable numbers or dates, invalid
// regex patterns, and operators inapplicable to the condition type all
// evaluate to false rather than erroring.
//
// String attributes (name, extension, path) compare as strings, folded
// to lower case on both sides unless CaseSensitive is set. Size and
// date attributes compare natively as numbers and times.
func EvaluateCondition(cond model.RuleCondition, file model.FileInfo) bool {
	switch cond.Type {
	case model.ConditionName:
		return evalString(cond, file.Name)
	case model.ConditionExtension:
		ext := strings.TrimPrefix(filepath.Ext(file.Name), ".")
		return evalString(cond, ext)
	case model.ConditionPath:
		return evalString(cond, file.Path)
	case model.ConditionFileType:
		if cond.Operator != model.OperatorEquals {
			return false
		}
		return strings.EqualFold(cond.Value, string(file.FileType))
	case model.ConditionSize:
		want, err := strconv.ParseFloat(strings.TrimSpace(cond.Value), 64)
		if err != nil {
			return false
		}
		return evalOrdering(cond.Operator, compareFloats(float64(file.Size), want))
	case model.ConditionCreationDate:
		return evalDate(cond, file.CreatedAt)
	case model.ConditionModificationDate:
		return evalDate(cond, file.ModifiedAt)
	default:
		return false
	}
}

func evalString(cond model.RuleCondition, attr string) bool {
	value := cond.Value
	if !cond.CaseSensitive {
		attr = strings.ToLower(attr)
		value = strings.ToLower(value)
	}

	switch cond.Operator {
	case model.OperatorEquals:
		return attr == value
	case model.OperatorContains:
		return strings.Contains(attr, value)
	case model.OperatorStartsWith:
		return strings.HasPrefix(attr, value)
	case model.OperatorEndsWith:
		return strings.HasSuffix(attr, value)
	case model.OperatorMatchesRegex:
		matched, err := regexp.MatchString(value, attr)
		if err != nil {
			// Malformed pattern: non-match, never an error.
			return false
		}
		return matched
	default:
		return false
	}
}

func evalDate(cond model.RuleCondition, attr time.Time) bool {
	var want time.Time
	var err error
	for _, layout := range conditionDateFormats {
		want, err = time.Parse(layout, strings.TrimSpace(cond.Value))
		if err == nil {
			break
		}
	}
	if err != nil {
		return false
	}

	var cmp int
	switch {
	case attr.Before(want):
		cmp = -1
	case attr.After(want):
		cmp = 1
	}
	return evalOrdering(cond.Operator, cmp)
}

func compareFloats(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func evalOrdering(op model.ConditionOperator, cmp int) bool {
	switch op {
	case model.OperatorEquals:
		return cmp == 0
	case model.OperatorGreaterThan:
		return cmp > 0
	case model.OperatorLessThan:
		return cmp < 0
	case model.OperatorGreaterOrEqual:
		return cmp >= 0
	case model.OperatorLessOrEqual:
		return cmp <= 0
	default:
		return false
	}
}
