package model

// TempoBreakpoint sets the tempo from AtTick onwards.
type TempoBreakpoint struct {
	MicrosecondsPerBeat uint32
	AtTick              uint64
}

type TempoMap = []TempoBreakpoint
