package pipeline

// State identifies a stage of one query-resolution run.
type State int

const (
	// StateStart is the initial state of a fresh run.
	StateStart State = iota
	// StateClassifying gates the question against the sales vocabulary.
	StateClassifying
	// StateRejected means the question is out-of-domain.
	StateRejected
	// StateGenerating produces SQL for the question.
	StateGenerating
	// StateExecuting runs the generated statement.
	StateExecuting
	// StateRetryGenerating re-enters generation after an execution failure.
	StateRetryGenerating
	// StateSummarizing renders the result set as prose.
	StateSummarizing
	// StateFailed means the run ended without a usable result set or summary.
	StateFailed
	// StateDone is terminal; a final answer has been produced.
	StateDone
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateClassifying:
		return "classifying"
	case StateRejected:
		return "rejected"
	case StateGenerating:
		return "generating"
	case StateExecuting:
		return "executing"
	case StateRetryGenerating:
		return "retry_generating"
	case StateSummarizing:
		return "summarizing"
	case StateFailed:
		return "failed"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}
