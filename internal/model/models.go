package model

import "time"

// FileType is the coarse category a file belongs to, derived from its
// extension. The set is closed; Other is the fallback for anything
// unrecognized.
type FileType string

const (
	FileTypeDocument   FileType = "document"
	FileTypeImage      FileType = "image"
	FileTypeVideo      FileType = "video"
	FileTypeAudio      FileType = "audio"
	FileTypeArchive    FileType = "archive"
	FileTypeExecutable FileType = "executable"
	FileTypeOther      FileType = "other"
)

// FileInfo is an immutable snapshot of a filesystem entry at scan time.
// Identity is the path at the moment of the scan, not a stable ID; it is
// re-derived on every scan.
type FileInfo struct {
	Name       string // Base name including extension
	Path       string // Absolute path
	Size       int64  // Size in bytes
	CreatedAt  time.Time
	ModifiedAt time.Time
	FileType   FileType
}

// ConditionType selects which file attribute a condition inspects.
type ConditionType string

const (
	ConditionName             ConditionType = "name"
	ConditionExtension        ConditionType = "extension"
	ConditionSize             ConditionType = "size"
	ConditionCreationDate     ConditionType = "creationDate"
	ConditionModificationDate ConditionType = "modificationDate"
	ConditionPath             ConditionType = "path"
	ConditionFileType         ConditionType = "fileType"
)

// ConditionOperator is the comparison applied between a file attribute
// and a condition's literal value.
type ConditionOperator string

const (
	OperatorEquals         ConditionOperator = "equals"
	OperatorContains       ConditionOperator = "contains"
	OperatorStartsWith     ConditionOperator = "startsWith"
	OperatorEndsWith       ConditionOperator = "endsWith"
	OperatorMatchesRegex   ConditionOperator = "matchesRegex"
	OperatorGreaterThan    ConditionOperator = "greaterThan"
	OperatorLessThan       ConditionOperator = "lessThan"
	OperatorGreaterOrEqual ConditionOperator = "greaterOrEqual"
	OperatorLessOrEqual    ConditionOperator = "lessOrEqual"
)

// RuleCondition is a single predicate over one file attribute.
// Value is interpreted per Type: a decimal number for size, RFC 3339 or
// YYYY-MM-DD for dates, a literal or regex pattern for string types.
type RuleCondition struct {
	Type          ConditionType     `json:"type"`
	Operator      ConditionOperator `json:"operator"`
	Value         string            `json:"value"`
	CaseSensitive bool              `json:"case_sensitive"`
}

// ActionType identifies the filesystem effect an action performs.
type ActionType string

const (
	ActionMoveToFolder ActionType = "moveToFolder"
	ActionCopyToFolder ActionType = "copyToFolder"
	ActionRenameFile   ActionType = "renameFile"
	ActionTrash        ActionType = "trash"

	// ActionCreateFolder and ActionAddTag are declared but not executed.
	// The executor treats them as unsupported: no side effect, no
	// operation record. They exist so rule documents referencing them
	// remain loadable.
	ActionCreateFolder ActionType = "createFolder"
	ActionAddTag       ActionType = "addTag"
)

// Action parameter names.
const (
	ParamDestinationPath = "destinationPath"
	ParamNewName         = "newName"
	ParamFolderName      = "folderName"
	ParamTag             = "tag"
)

// RuleAction is one operation to perform on a matched file.
type RuleAction struct {
	Type       ActionType        `json:"type"`
	Parameters map[string]string `json:"parameters,omitempty"`
}

// Rule is a named, prioritized bundle of AND-combined conditions and an
// ordered action list. A rule with no conditions matches every file.
// Higher Priority wins; ties resolve to the earlier-inserted rule.
type Rule struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Enabled      bool            `json:"enabled"`
	Priority     int             `json:"priority"`
	Conditions   []RuleCondition `json:"conditions"`
	Actions      []RuleAction    `json:"actions"`
	CreatedAt    time.Time       `json:"created_at"`
	LastModified time.Time       `json:"last_modified"`
}

// OperationType is the kind of filesystem mutation an operation recorded.
type OperationType string

const (
	OperationMove   OperationType = "move"
	OperationCopy   OperationType = "copy"
	OperationRename OperationType = "rename"
	OperationDelete OperationType = "delete"
)

// FileOperation is one ledger entry: the outcome of executing a single
// action against a single file. Immutable once created.
type FileOperation struct {
	ID              string
	FileName        string
	SourcePath      string
	DestinationPath string // empty when the operation has no destination
	Type            OperationType
	Timestamp       time.Time
	Success         bool
	ErrorMessage    string // empty on success
}

// Statistics holds the running counters maintained by the ledger.
type Statistics struct {
	FilesOrganized  int64
	Errors          int64
	LastOrganizedAt *time.Time
}
