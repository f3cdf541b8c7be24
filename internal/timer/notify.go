package timer

import (
	"context"
	"io"
	"os"

	"github.com/existflow/flownote/internal/logger"
)

// LogNotifier logs completions and rings the terminal bell.
type LogNotifier struct {
	Out io.Writer
}

// NewLogNotifier writes the bell to stderr.
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{Out: os.Stderr}
}

func (n *LogNotifier) RequestPermission(context.Context) bool {
	return true
}

func (n *LogNotifier) Notify(_ context.Context, title, body string) error {
	logger.Info(title, logger.F("topic", body))
	if n.Out == nil {
		return nil
	}
	_, err := io.WriteString(n.Out, "\a")
	return err
}
