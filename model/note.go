package model

type Note struct {
	StartTick    float64
	DurationTick float64
	FrequencyHz  float64
}

// RescaledNote has the same shape as Note but Start and Duration are seconds.
type RescaledNote struct {
	Start       float64
	Duration    float64
	FrequencyHz float64
}
