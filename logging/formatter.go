package logging

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/grovetools/deck/tui/theme"
	"github.com/sirupsen/logrus"
)

// TextFormatter renders "time [LEVEL] [component] message key=value" lines.
type TextFormatter struct {
	Config FormatConfig
}

// Format implements logrus.Formatter.
func (f *TextFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	parts := make([]string, 0, 4+len(entry.Data))

	if !f.Config.DisableTimestamp {
		parts = append(parts, entry.Time.Format("2006-01-02 15:04:05"))
	}
	parts = append(parts, "["+levelLabel(entry.Level)+"]")

	if component, ok := entry.Data["component"]; ok && !f.Config.DisableComponent {
		parts = append(parts, "["+theme.DefaultTheme.Accent.Render(fmt.Sprint(component))+"]")
	}
	if entry.HasCaller() {
		parts = append(parts, fmt.Sprintf("[%s:%d %s]",
			filepath.Base(entry.Caller.File), entry.Caller.Line, filepath.Base(entry.Caller.Function)))
	}
	parts = append(parts, entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for key := range entry.Data {
		if key != "component" {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		parts = append(parts, key+"="+quoteField(entry.Data[key]))
	}

	return []byte(strings.Join(parts, " ") + "\n"), nil
}

func levelLabel(level logrus.Level) string {
	if level == logrus.WarnLevel {
		return "WARN"
	}
	return strings.ToUpper(level.String())
}

// quoteField quotes values containing spaces, tabs or quotes.
func quoteField(v interface{}) string {
	var s string
	if err, ok := v.(error); ok {
		s = err.Error()
	} else {
		s = fmt.Sprint(v)
	}
	if strings.ContainsAny(s, " \t\"") {
		return fmt.Sprintf("%q", s)
	}
	return s
}
