package models

// EmitStatus represents the outcome of emitting a single group as a PR
type EmitStatus interface {
	isEmitStatus()
}

type emitStatusCreated struct{}
type emitStatusUpdated struct{}
type emitStatusSkipped struct{ Reason string }
type emitStatusFailed struct{ Error string }

func (emitStatusCreated) isEmitStatus() {}
func (emitStatusUpdated) isEmitStatus() {}
func (emitStatusSkipped) isEmitStatus() {}
func (emitStatusFailed) isEmitStatus()  {}

// EmitStatus variants
var (
	// Created indicates a new PR was opened
	Created EmitStatus = emitStatusCreated{}
	// Updated indicates an existing PR for the group branch was updated
	Updated EmitStatus = emitStatusUpdated{}
)

// Skipped creates an EmitStatus for a group that produced nothing to submit
func Skipped(reason string) EmitStatus {
	return emitStatusSkipped{Reason: reason}
}

// Failed creates an EmitStatus for a group whose emission failed
func Failed(err string) EmitStatus {
	return emitStatusFailed{Error: err}
}

// EmitResult is the outcome of processing one group in the emission loop
type EmitResult struct {
	// Ticket of the group
	Ticket string
	// Title of the group
	Title string
	// Branch the group was pushed to, empty if never created
	Branch string
	// Status of the operation
	Status EmitStatus
	// PrURL if created/updated
	PrURL *string
	// Files is the number of files in the group
	Files int
	// Commits is the number of commits associated with the group
	Commits int
}

// IsStatusCreated returns true if status is Created
func IsStatusCreated(s EmitStatus) bool {
	_, ok := s.(emitStatusCreated)
	return ok
}

// IsStatusUpdated returns true if status is Updated
func IsStatusUpdated(s EmitStatus) bool {
	_, ok := s.(emitStatusUpdated)
	return ok
}

// IsStatusSkipped returns true if status is Skipped
func IsStatusSkipped(s EmitStatus) bool {
	_, ok := s.(emitStatusSkipped)
	return ok
}

// IsStatusFailed returns true if status is Failed
func IsStatusFailed(s EmitStatus) bool {
	_, ok := s.(emitStatusFailed)
	return ok
}

// IsStatusSuccess returns true if status is Created or Updated
func IsStatusSuccess(s EmitStatus) bool {
	return IsStatusCreated(s) || IsStatusUpdated(s)
}

// GetStatusReason returns the reason string for Skipped or Failed statuses
func GetStatusReason(s EmitStatus) string {
	if skipped, ok := s.(emitStatusSkipped); ok {
		return skipped.Reason
	}
	if failed, ok := s.(emitStatusFailed); ok {
		return failed.Error
	}
	return ""
}
