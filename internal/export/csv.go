package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/existflow/flownote/internal/model"
)

// WriteEventsCSV writes one row per calendar event.
func WriteEventsCSV(out io.Writer, events []model.CalendarEvent) error {
	w := csv.NewWriter(out)

	if err := w.Write([]string{"ID", "Title", "Start", "End", "Duration (min)", "Color", "From timer"}); err != nil {
		return err
	}
	for _, e := range events {
		row := []string{
			e.ID,
			e.Title,
			e.Start().Format(time.RFC3339),
			e.End().Format(time.RFC3339),
			strconv.FormatFloat(e.Duration().Minutes(), 'f', -1, 64),
			e.Color,
			strconv.FormatBool(e.CreatedFromTimer),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}
