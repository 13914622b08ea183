package printer

// Reason says why a value could not be rendered and fell back to its address.
type Reason string

const (
	ReasonUnsupportedKind    Reason = "unsupported_kind"
	ReasonEmptyRecord        Reason = "empty_record"
	ReasonUnsupportedElement Reason = "unsupported_element"
	ReasonUnboundedArray     Reason = "unbounded_array"
	ReasonReadFailed         Reason = "read_failed"
)

// Degraded describes one fallback to address rendering.
type Degraded struct {
	Err      error
	Reason   Reason
	TypeName string
	Addr     uint32
}
