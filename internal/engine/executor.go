package engine

import (
	"fmt"
	"path/filepath"

	"tidy-go/internal/model"
)

// Executor performs the filesystem side effect for one action against
// one file and converts the outcome into an operation record. It never
// mutates the ledger; the orchestrator commits the returned record.
type Executor struct {
	fsmgr  FilesystemManager
	logger Logger
	clock  Clock
	idgen  IDGenerator
}

// NewExecutor creates an Executor with the provided dependencies.
func NewExecutor(fsmgr FilesystemManager, logger Logger, clock Clock, idgen IDGenerator) *Executor {
	return &Executor{
		fsmgr:  fsmgr,
		logger: logger,
		clock:  clock,
		idgen:  idgen,
	}
}

// Execute performs one action against one file. Supported actions
// return exactly one record, success or failure; filesystem and
// configuration errors become failed records carrying the underlying
// message and never propagate. Unsupported actions (createFolder,
// addTag) perform no side effect and return nil — the executor must
// not report success for work it did not do.
func (x *Executor) Execute(action model.RuleAction, file model.FileInfo) *model.FileOperation {
	if !action.Type.Supported() {
		x.logger.Debug("skipping unsupported action", "action", string(action.Type), "file", file.Path)
		return nil
	}

	opType := operationType(action.Type)

	if missing := action.MissingParameters(); len(missing) > 0 {
		return x.failed(file, opType, "", fmt.Sprintf("missing required parameters %v for action %s", missing, action.Type))
	}

	switch action.Type {
	case model.ActionMoveToFolder:
		return x.transfer(action, file, opType, x.fsmgr.Move)
	case model.ActionCopyToFolder:
		return x.transfer(action, file, opType, x.fsmgr.Copy)
	case model.ActionRenameFile:
		return x.rename(action, file)
	case model.ActionTrash:
		return x.trash(file)
	default:
		// Supported() keeps this unreachable; fail loudly if the two drift.
		return x.failed(file, opType, "", fmt.Sprintf("no executor for action %s", action.Type))
	}
}

// transfer handles moveToFolder and copyToFolder, which differ only in
// the final filesystem call.
func (x *Executor) transfer(action model.RuleAction, file model.FileInfo, opType model.OperationType, op func(src, dst string) error) *model.FileOperation {
	dir, err := x.fsmgr.ExpandPath(action.Parameters[model.ParamDestinationPath])
	if err != nil {
		return x.failed(file, opType, "", fmt.Sprintf("expanding destination: %v", err))
	}
	dst := filepath.Join(dir, file.Name)

	if err := x.fsmgr.MkdirAll(dir); err != nil {
		return x.failed(file, opType, dst, fmt.Sprintf("creating destination directory: %v", err))
	}
	if err := op(file.Path, dst); err != nil {
		return x.failed(file, opType, dst, err.Error())
	}

	x.logger.Info("file organized", "op", string(opType), "source", file.Path, "destination", dst)
	return x.succeeded(file, opType, dst)
}

func (x *Executor) rename(action model.RuleAction, file model.FileInfo) *model.FileOperation {
	dst := filepath.Join(filepath.Dir(file.Path), action.Parameters[model.ParamNewName])
	if err := x.fsmgr.Move(file.Path, dst); err != nil {
		return x.failed(file, model.OperationRename, dst, err.Error())
	}

	x.logger.Info("file renamed", "source", file.Path, "destination", dst)
	return x.succeeded(file, model.OperationRename, dst)
}

func (x *Executor) trash(file model.FileInfo) *model.FileOperation {
	trashed, err := x.fsmgr.Trash(file.Path)
	if err != nil {
		return x.failed(file, model.OperationDelete, "", err.Error())
	}

	x.logger.Info("file trashed", "source", file.Path, "trash", trashed)
	return x.succeeded(file, model.OperationDelete, trashed)
}

func (x *Executor) succeeded(file model.FileInfo, opType model.OperationType, dst string) *model.FileOperation {
	return &model.FileOperation{
		ID:              x.idgen.New(),
		FileName:        file.Name,
		SourcePath:      file.Path,
		DestinationPath: dst,
		Type:            opType,
		Timestamp:       x.clock.Now(),
		Success:         true,
	}
}

func (x *Executor) failed(file model.FileInfo, opType model.OperationType, dst string, msg string) *model.FileOperation {
	x.logger.Warn("action failed", "op", string(opType), "source", file.Path, "error", msg)
	return &model.FileOperation{
		ID:              x.idgen.New(),
		FileName:        file.Name,
		SourcePath:      file.Path,
		DestinationPath: dst,
		Type:            opType,
		Timestamp:       x.clock.Now(),
		Success:         false,
		ErrorMessage:    msg,
	}
}

// operationType maps an action type to the operation kind it records.
func operationType(a model.ActionType) model.OperationType {
	switch a {
	case model.ActionMoveToFolder:
		return model.OperationMove
	case model.ActionCopyToFolder:
		return model.OperationCopy
	case model.ActionRenameFile:
		return model.OperationRename
	case model.ActionTrash:
		return model.OperationDelete
	default:
		return model.OperationMove
	}
}
