package outcome

// Status is the terminal state of one file after processing.
type Status string

const (
	// StatusRelocated means the file was moved to its dated destination.
	StatusRelocated Status = "relocated"
	// StatusDiscarded means an identical file already existed at the destination
	// and the source was deleted.
	StatusDiscarded Status = "discarded"
	// StatusLeftover means the source was a zero-byte artifact and was deleted.
	StatusLeftover Status = "leftover"
	// StatusPlanned means a dry run computed the action without applying it.
	StatusPlanned Status = "planned"
	// StatusSkipped means the file was not a media type and was left alone.
	StatusSkipped Status = "skipped"
	// StatusFailed means the file stayed at its source location.
	StatusFailed Status = "failed"
)

// Statuses lists every status in display order.
var Statuses = []Status{
	StatusRelocated,
	StatusDiscarded,
	StatusLeftover,
	StatusPlanned,
	StatusSkipped,
	StatusFailed,
}

// Reason classifies why a file was skipped or failed.
type Reason string

const (
	ReasonNone                  Reason = ""
	ReasonNotMediaType          Reason = "NotMediaType"
	ReasonMetadataUnavailable   Reason = "MetadataUnavailable"
	ReasonNoValidTimestamp      Reason = "NoValidTimestamp"
	ReasonRelocationFailed      Reason = "RelocationFailed"
	ReasonScanSubtreeUnreadable Reason = "ScanSubtreeUnreadable"
)

// Result records what happened to one file.
type Result struct {
	Source      string
	Destination string
	Status      Status
	Reason      Reason
	Field       string
	Err         error
}

// Failed builds a result for an error, deriving the status and reason from the
// error markers. NotMediaType is reported as a skip rather than a failure.
func Failed(source string, err error) Result {
	reason := ReasonOf(err)
	status := StatusFailed
	if reason == ReasonNotMediaType {
		status = StatusSkipped
	}
	return Result{Source: source, Status: status, Reason: reason, Err: err}
}
