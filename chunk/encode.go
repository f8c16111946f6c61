package chunk

import (
	"strconv"
	"strings"

	"github.com/jsphweid/midisong/model"
	"github.com/pkg/errors"
)

func formatFixed(v float64, places int) string {
	return strconv.FormatFloat(v, 'f', places, 64)
}

// formatDuration rounds to 3 places and drops a trailing third zero, so a
// whole second reads "1.00" and an eighth reads "0.125".
func formatDuration(v float64) string {
	s := formatFixed(v, 3)
	return strings.TrimSuffix(s, "0")
}

// EncodeNote renders `"start,duration,frequency"` including the quotes.
func EncodeNote(n model.RescaledNote) string {
	var b strings.Builder
	b.WriteByte('"')
	b.WriteString(formatFixed(n.Start, 2))
	b.WriteByte(',')
	b.WriteString(formatDuration(n.Duration))
	b.WriteByte(',')
	b.WriteString(formatFixed(n.FrequencyHz, 2))
	b.WriteByte('"')
	return b.String()
}

// Encode renders the whole note list as a single `{...}` payload.
func Encode(notes []model.RescaledNote) string {
	encoded := make([]string, 0, len(notes))
	for _, n := range notes {
		encoded = append(encoded, EncodeNote(n))
	}
	return "{" + strings.Join(encoded, ",") + "}"
}

// Parse reads a payload back into notes. Values come back at the encoded
// precision.
func Parse(payload string) ([]model.RescaledNote, error) {
	if len(payload) < 2 || payload[0] != '{' || payload[len(payload)-1] != '}' {
		return nil, errors.New("payload is not wrapped in braces")
	}
	inner := payload[1 : len(payload)-1]
	if inner == "" {
		return nil, nil
	}

	var res []model.RescaledNote
	for i, elem := range strings.Split(inner, `","`) {
		elem = strings.TrimPrefix(elem, `"`)
		elem = strings.TrimSuffix(elem, `"`)
		fields := strings.Split(elem, ",")
		if len(fields) != 3 {
			return nil, errors.Errorf("element %v has %v fields, want 3", i, len(fields))
		}
		var vals [3]float64
		for j, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "element %v field %v", i, j)
			}
			vals[j] = v
		}
		res = append(res, model.RescaledNote{Start: vals[0], Duration: vals[1], FrequencyHz: vals[2]})
	}
	return res, nil
}
