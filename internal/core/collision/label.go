package collision

// Label classifies a world object a car can touch. The set is closed; any tag
// that does not match a known label exactly is LabelUnknown.
type Label uint8

const (
	LabelUnknown Label = iota
	LabelRail
	LabelTrackStart
	LabelTrackFinish
	LabelCheckpoint
)

// Tags as they are attached to world objects.
const (
	TagRail        = "Rail"
	TagTrackStart  = "TrackStart"
	TagTrackFinish = "TrackFinish"
	TagCheckpoint  = "Checkpoint"
)

// ParseLabel maps a tag to its label. Matching is exact and case-sensitive.
func ParseLabel(tag string) Label {
	switch tag {
	case TagRail:
		return LabelRail
	case TagTrackStart:
		return LabelTrackStart
	case TagTrackFinish:
		return LabelTrackFinish
	case TagCheckpoint:
		return LabelCheckpoint
	default:
		return LabelUnknown
	}
}

func (l Label) String() string {
	switch l {
	case LabelRail:
		return TagRail
	case LabelTrackStart:
		return TagTrackStart
	case LabelTrackFinish:
		return TagTrackFinish
	case LabelCheckpoint:
		return TagCheckpoint
	default:
		return "Unknown"
	}
}

func (l Label) Known() bool {
	return l != LabelUnknown && l <= LabelCheckpoint
}

// Labels lists every known label.
func Labels() []Label {
	return []Label{LabelRail, LabelTrackStart, LabelTrackFinish, LabelCheckpoint}
}
