package model

type EventKind uint8

const (
	Other EventKind = iota
	NoteOn
	NoteOff
	SetTempo
)

func (k EventKind) String() string {
	switch k {
	case NoteOn:
		return "NoteOn"
	case NoteOff:
		return "NoteOff"
	case SetTempo:
		return "SetTempo"
	default:
		return "Other"
	}
}

// RawEvent is one decoded track event in file order. Pitch and Velocity are
// only meaningful for note kinds, TempoValue (microseconds per quarter note)
// only for SetTempo.
type RawEvent struct {
	Kind       EventKind
	Pitch      uint8
	Velocity   uint8
	TempoValue uint32
	DeltaTicks uint32
}

type Track = []RawEvent

type TimedEvent struct {
	RawEvent
	AbsoluteTicks uint64
}

// IsNoteOn reports whether the event starts a sounding note. A NoteOn with
// velocity 0 counts as a NoteOff.
func (e TimedEvent) IsNoteOn() bool {
	return e.Kind == NoteOn && e.Velocity != 0
}

func (e TimedEvent) IsNoteEvent() bool {
	return e.Kind == NoteOn || e.Kind == NoteOff
}
