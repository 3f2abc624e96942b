package model_test

import (
	"testing"

	"tidy-go/internal/model"
)

func TestOperatorApplicable(t *testing.T) {
	t.Parallel()

	cases := []struct {
		ct   model.ConditionType
		op   model.ConditionOperator
		want bool
	}{
		{model.ConditionName, model.OperatorContains, true},
		{model.ConditionName, model.OperatorMatchesRegex, true},
		{model.ConditionName, model.OperatorGreaterThan, false},
		{model.ConditionExtension, model.OperatorEndsWith, true},
		{model.ConditionPath, model.OperatorStartsWith, true},
		{model.ConditionSize, model.OperatorGreaterOrEqual, true},
		{model.ConditionSize, model.OperatorContains, false},
		{model.ConditionCreationDate, model.OperatorLessThan, true},
		{model.ConditionModificationDate, model.OperatorMatchesRegex, false},
		{model.ConditionFileType, model.OperatorEquals, true},
		{model.ConditionFileType, model.OperatorContains, false},
	}

	for _, tc := range cases {
		if got := model.OperatorApplicable(tc.ct, tc.op); got != tc.want {
			t.Errorf("OperatorApplicable(%s, %s) = %v, want %v", tc.ct, tc.op, got, tc.want)
		}
	}
}

func TestActionType_RequiredParameters(t *testing.T) {
	t.Parallel()

	if got := model.ActionMoveToFolder.RequiredParameters(); len(got) != 1 || got[0] != model.ParamDestinationPath {
		t.Errorf("moveToFolder requires %v", got)
	}
	if got := model.ActionRenameFile.RequiredParameters(); len(got) != 1 || got[0] != model.ParamNewName {
		t.Errorf("renameFile requires %v", got)
	}
	if got := model.ActionTrash.RequiredParameters(); len(got) != 0 {
		t.Errorf("trash requires %v, want none", got)
	}
}

func TestActionType_Supported(t *testing.T) {
	t.Parallel()

	supported := []model.ActionType{model.ActionMoveToFolder, model.ActionCopyToFolder, model.ActionRenameFile, model.ActionTrash}
	for _, at := range supported {
		if !at.Supported() {
			t.Errorf("%s should be supported", at)
		}
	}
	for _, at := range []model.ActionType{model.ActionCreateFolder, model.ActionAddTag} {
		if at.Supported() {
			t.Errorf("%s is declared but must not be supported", at)
		}
	}
}

func TestRuleAction_MissingParameters(t *testing.T) {
	t.Parallel()

	a := model.RuleAction{Type: model.ActionMoveToFolder}
	if got := a.MissingParameters(); len(got) != 1 {
		t.Errorf("MissingParameters() = %v, want [destinationPath]", got)
	}

	a.Parameters = map[string]string{model.ParamDestinationPath: "~/Sorted"}
	if got := a.MissingParameters(); len(got) != 0 {
		t.Errorf("MissingParameters() = %v, want none", got)
	}

	a.Parameters[model.ParamDestinationPath] = ""
	if got := a.MissingParameters(); len(got) != 1 {
		t.Errorf("empty value should count as missing, got %v", got)
	}
}

func TestRule_Validate(t *testing.T) {
	t.Parallel()

	valid := model.Rule{
		Name: "ok",
		Conditions: []model.RuleCondition{
			{Type: model.ConditionSize, Operator: model.OperatorGreaterThan, Value: "1024"},
		},
		Actions: []model.RuleAction{
			{Type: model.ActionTrash},
		},
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}

	unnamed := model.Rule{}
	if err := unnamed.Validate(); err == nil {
		t.Error("rule without a name should fail validation")
	}

	badOperator := model.Rule{
		Name: "bad",
		Conditions: []model.RuleCondition{
			{Type: model.ConditionSize, Operator: model.OperatorContains, Value: "10"},
		},
	}
	if err := badOperator.Validate(); err == nil {
		t.Error("inapplicable operator should fail validation")
	}

	missingParam := model.Rule{
		Name:    "bad",
		Actions: []model.RuleAction{{Type: model.ActionRenameFile}},
	}
	if err := missingParam.Validate(); err == nil {
		t.Error("missing required parameter should fail validation")
	}
}
