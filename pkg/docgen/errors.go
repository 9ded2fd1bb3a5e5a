package docgen

import (
	"errors"
	"fmt"
)

// Stage identifies which pipeline stage a failure belongs to. The boundary
// layer maps stages to user notices; no failure propagates as a crash and
// none is retried.
type Stage string

const (
	StageExtract Stage = "extract"
	StageRewrite Stage = "rewrite"
	StageRender  Stage = "render"
	StageSave    Stage = "save"
)

// Short-circuit conditions checked before any file I/O.
var (
	ErrNoTemplate     = errors.New("docgen: no template selected")
	ErrNoPlaceholders = errors.New("docgen: no placeholders found in template")
)

// StageError wraps a stage failure so callers can branch on the stage without
// inspecting the underlying cause.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("docgen: %s stage: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func stageErr(stage Stage, err error) error {
	return &StageError{Stage: stage, Err: err}
}

// StageOf returns the pipeline stage err failed in, or false when err is not
// a stage failure.
func StageOf(err error) (Stage, bool) {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage, true
	}
	return "", false
}
