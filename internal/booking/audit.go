package booking

import (
	"fmt"
	"os"
	"time"
)

// audit appends a timestamped line to the operation log and mirrors it
// to the application logger at debug level. Audit failures are logged
// and swallowed: bookkeeping must never fail a booking operation.
func (s *Store) audit(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	line := fmt.Sprintf("[%s] %s\n", time.Now().Format("2006-01-02 15:04:05"), message)

	f, err := os.OpenFile(s.logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		s.log.Error("failed to open audit log", "file", s.logFile, "error", err)
		s.log.Debug("audit", "message", message)
		return
	}
	defer f.Close()

	if _, err := f.WriteString(line); err != nil {
		s.log.Error("failed to write audit log", "file", s.logFile, "error", err)
	}
	s.log.Debug("audit", "message", message)
}
