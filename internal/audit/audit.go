package audit

import (
	"context"

	"github.com/StephanNaro/id-registry/pkg/log"
)

// Audit actions for the registry.
const (
	ActionGenerate = "id.generate"
	ActionConfirm  = "id.confirm"
	ActionDelete   = "id.delete"
	ActionSuspend  = "registry.suspend"
	ActionResume   = "registry.resume"
	ActionSettings = "registry.settings_update"
)

// Field constants for audit entries.
const (
	FieldAction = "action"
	FieldDetail = "detail"
)

// Log emits a structured audit log entry via the context logger.
func Log(ctx context.Context, action string, id string, msg string) {
	l := log.Ctx(ctx)
	l.Info().
		Str(log.FieldLogType, log.LogTypeAudit).
		Str(FieldAction, action).
		Str(log.FieldID, id).
		Msg(msg)
}

// LogWithDetail emits an audit log with an extra detail field.
func LogWithDetail(ctx context.Context, action string, id string, detail string, msg string) {
	l := log.Ctx(ctx)
	l.Info().
		Str(log.FieldLogType, log.LogTypeAudit).
		Str(FieldAction, action).
		Str(log.FieldID, id).
		Str(FieldDetail, detail).
		Msg(msg)
}
