package rank

import (
	"strconv"
	"strings"

	"github.com/mmcdole/rankbar/internal/domain"
)

// Extract pulls the rank out of a ranking page using plain substring search.
//
// The keyword's cell is not next to the rank: the rank is the first cell of the
// same row. So the marker is found first, then the start of its row, and the field
// runs from the end of the row start to the next FieldEnd.
func Extract(body string, src domain.Source) (int, error) {
	fail := func(reason Reason, err error) (int, error) {
		return 0, &FetchError{Source: src.Name, Reason: reason, Err: err}
	}

	pos := strings.Index(body, src.Marker)
	if pos == -1 {
		return fail(ReasonMarker, nil)
	}

	row := strings.LastIndex(body[:pos], src.RowStart)
	if row == -1 {
		return fail(ReasonRowStart, nil)
	}

	start := row + len(src.RowStart)
	end := strings.Index(body[start:], src.FieldEnd)
	if end == -1 {
		return fail(ReasonFieldEnd, nil)
	}

	value, err := strconv.ParseUint(strings.TrimSpace(body[start:start+end]), 10, 31)
	if err != nil {
		return fail(ReasonNotNumber, err)
	}
	return int(value), nil
}
