package midi

import (
	"bytes"
	"io"
	"math"
	"os"

	"github.com/jsphweid/midisong/model"
	"github.com/pkg/errors"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

var ErrUnsupportedTimeFormat = errors.New("time format has no ticks per quarter note")

// Song is a decoded MIDI file: one raw event sequence per track in file
// order plus the file's resolution.
type Song struct {
	TicksPerBeat uint16
	Tracks       []model.Track
}

func ReadMidiFile(path string) (*Song, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "error reading midi file")
	}
	return Read(bytes.NewReader(dat))
}

func Read(r io.Reader) (s *Song, e error) {
	// smf can panic on malformed input
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if rec := recover(); rec != nil {
			s = nil
			e = errors.Errorf("error parsing midi file... %v", rec)
		}
	}()

	parsed, err := smf.ReadFrom(r)
	if err != nil {
		return nil, errors.Wrap(err, "error parsing midi file")
	}
	return FromSMF(parsed)
}

func FromSMF(s *smf.SMF) (*Song, error) {
	ticks, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedTimeFormat, "got %v", s.TimeFormat)
	}

	res := &Song{TicksPerBeat: uint16(ticks)}
	for _, track := range s.Tracks {
		events := make(model.Track, 0, len(track))
		for _, evt := range track {
			events = append(events, convertEvent(evt))
		}
		res.Tracks = append(res.Tracks, events)
	}
	return res, nil
}

func convertEvent(evt smf.Event) model.RawEvent {
	res := model.RawEvent{DeltaTicks: evt.Delta}
	msg := gomidi.Message(evt.Message)

	var channel, key, velocity uint8
	switch {
	case msg.GetNoteStart(&channel, &key, &velocity):
		res.Kind = model.NoteOn
		res.Pitch = key
		res.Velocity = velocity
	case msg.GetNoteEnd(&channel, &key):
		res.Kind = model.NoteOff
		res.Pitch = key
	default:
		if micros, ok := tempoMicros(evt.Message); ok {
			res.Kind = model.SetTempo
			res.TempoValue = micros
		}
	}
	return res
}

// tempoMicros reads the microseconds per quarter note of a set tempo meta
// message (FF 51 03 tt tt tt).
func tempoMicros(msg smf.Message) (uint32, bool) {
	var bpm float64
	if !msg.GetMetaTempo(&bpm) {
		return 0, false
	}
	if len(msg) == 6 {
		return uint32(msg[3])<<16 | uint32(msg[4])<<8 | uint32(msg[5]), true
	}
	if bpm <= 0 {
		return 0, false
	}
	return uint32(math.Round(60_000_000 / bpm)), true
}
