package collision

// Outcome is the semantic result of a contact.
type Outcome uint8

const (
	OutcomeNone Outcome = iota
	OutcomeRail
	OutcomeStart
	OutcomeFinish
	OutcomeCheckpoint
)

// Diagnostic is the message emitted for the outcome. OutcomeNone has none.
func (o Outcome) Diagnostic() string {
	switch o {
	case OutcomeRail:
		return "RAIL"
	case OutcomeStart:
		return "START"
	case OutcomeFinish:
		return "FINISH"
	case OutcomeCheckpoint:
		return "Checkpoint"
	default:
		return ""
	}
}

func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "NONE"
	case OutcomeCheckpoint:
		return "CHECKPOINT"
	default:
		return o.Diagnostic()
	}
}

// OutcomeFor maps a label to the outcome its handler produces.
func OutcomeFor(l Label) Outcome {
	switch l {
	case LabelRail:
		return OutcomeRail
	case LabelTrackStart:
		return OutcomeStart
	case LabelTrackFinish:
		return OutcomeFinish
	case LabelCheckpoint:
		return OutcomeCheckpoint
	case LabelUnknown:
		return OutcomeNone
	default:
		return OutcomeNone
	}
}
