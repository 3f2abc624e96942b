package model

import "fmt"

// stringOperators are the operators applicable to string-valued
// condition types (name, extension, path).
var stringOperators = map[ConditionOperator]bool{
	OperatorEquals:       true,
	OperatorContains:     true,
	OperatorStartsWith:   true,
	OperatorEndsWith:     true,
	OperatorMatchesRegex: true,
}

// orderingOperators are the operators applicable to size and date
// condition types.
var orderingOperators = map[ConditionOperator]bool{
	OperatorEquals:         true,
	OperatorGreaterThan:    true,
	OperatorLessThan:       true,
	OperatorGreaterOrEqual: true,
	OperatorLessOrEqual:    true,
}

// OperatorApplicable reports whether op may be used with the given
// condition type. fileType conditions permit equality only.
func OperatorApplicable(ct ConditionType, op ConditionOperator) bool {
	switch ct {
	case ConditionName, ConditionExtension, ConditionPath:
		return stringOperators[op]
	case ConditionSize, ConditionCreationDate, ConditionModificationDate:
		return orderingOperators[op]
	case ConditionFileType:
		return op == OperatorEquals
	default:
		return false
	}
}

// RequiredParameters returns the parameter names an action of this type
// must carry before it can execute.
func (a ActionType) RequiredParameters() []string {
	switch a {
	case ActionMoveToFolder, ActionCopyToFolder:
		return []string{ParamDestinationPath}
	case ActionRenameFile:
		return []string{ParamNewName}
	case ActionCreateFolder:
		return []string{ParamFolderName}
	case ActionAddTag:
		return []string{ParamTag}
	default:
		return nil
	}
}

// Supported reports whether the executor implements this action type.
// createFolder and addTag are declared but intentionally unimplemented.
func (a ActionType) Supported() bool {
	switch a {
	case ActionMoveToFolder, ActionCopyToFolder, ActionRenameFile, ActionTrash:
		return true
	default:
		return false
	}
}

// MissingParameters returns the required parameter names absent or empty
// in the action's parameter map.
func (ra RuleAction) MissingParameters() []string {
	var missing []string
	for _, name := range ra.Type.RequiredParameters() {
		if ra.Parameters[name] == "" {
			missing = append(missing, name)
		}
	}
	return missing
}

// Validate checks a rule at authoring time: every condition's operator
// must be applicable to its type, and every action must carry its
// required parameters. Runtime evaluation never validates; a rule that
// slips through surfaces as failed operation records instead.
func (r *Rule) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("rule has no name")
	}
	for i, c := range r.Conditions {
		if !OperatorApplicable(c.Type, c.Operator) {
			return fmt.Errorf("condition %d: operator %q not applicable to %q", i, c.Operator, c.Type)
		}
	}
	for i, a := range r.Actions {
		if missing := a.MissingParameters(); len(missing) > 0 {
			return fmt.Errorf("action %d (%s): missing parameters %v", i, a.Type, missing)
		}
	}
	return nil
}
