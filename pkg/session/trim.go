package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chicogong/media-graph/pkg/filters"
	"github.com/chicogong/media-graph/pkg/schemas"
)

// insertTrim appends a time-window filter at the chain tail when the
// output stream requests a start offset or a finite recording time.
// Requested times are microseconds; the filter takes seconds. A
// missing trim filter type is reported, not skipped.
func (s *Session) insertTrim(ost *schemas.OutputStream, c *chain) error {
	if ost.RecordingTime == schemas.UnboundedTime && ost.StartTime == 0 {
		return nil
	}

	filterName := "trim"
	if ost.Type == schemas.MediaTypeAudio {
		filterName = "atrim"
	}

	var parts []string
	if ost.RecordingTime != schemas.UnboundedTime {
		parts = append(parts, fmt.Sprintf("duration=%g", float64(ost.RecordingTime)/1e6))
	}
	if ost.StartTime != 0 {
		parts = append(parts, fmt.Sprintf("start=%g", float64(ost.StartTime)/1e6))
	}

	name := fmt.Sprintf("%s for output stream %d:%d",
		filterName, ost.FileIndex, ost.StreamIndex)
	if err := c.append(filterName, name, strings.Join(parts, ":")); err != nil {
		if errors.Is(err, filters.ErrFilterNotFound) {
			s.logger.Error("trim filter not present, cannot limit recording time",
				"filter", filterName)
		}
		return err
	}
	return nil
}
