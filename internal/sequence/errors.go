package sequence

import "fmt"

// DuplicateTaskIDError is returned by Build when two descriptors share an id.
type DuplicateTaskIDError struct {
	ID string
}

func (e *DuplicateTaskIDError) Error() string {
	return fmt.Sprintf("sequence: duplicate task id %q", e.ID)
}

// UnknownDependencyError is returned by Build when a task declares a parent
// id that does not exist among the registered descriptors.
type UnknownDependencyError struct {
	Child  string
	Parent string
}

func (e *UnknownDependencyError) Error() string {
	return fmt.Sprintf("sequence: task %q depends on unknown task %q", e.Child, e.Parent)
}

// CycleDetectedError is returned by Build or Plan when the task graph
// contains at least one cycle.
type CycleDetectedError struct {
	Involved []string
}

func (e *CycleDetectedError) Error() string {
	return fmt.Sprintf("sequence: cyclic dependency detected involving tasks: %v", e.Involved)
}

// TaskFailedError describes a task that exhausted its retries. The same id,
// attempt count and last message reach the event stream as a task_failed
// event; a TaskFailedError value itself is built only for onError=abort
// tasks, as the cause wrapped by SequenceAbortedError.
type TaskFailedError struct {
	ID          string
	Attempts    int
	LastMessage string
}

func (e *TaskFailedError) Error() string {
	return fmt.Sprintf("sequence: task %q failed after %d attempt(s): %s", e.ID, e.Attempts, e.LastMessage)
}

// SequenceAbortedError is the rejection reason of Run when a task whose
// onError policy is OnErrorAbort exhausts its retries.
type SequenceAbortedError struct {
	At    string
	Cause error
}

func (e *SequenceAbortedError) Error() string {
	return fmt.Sprintf("sequence: aborted at task %q: %v", e.At, e.Cause)
}

func (e *SequenceAbortedError) Unwrap() error {
	return e.Cause
}
