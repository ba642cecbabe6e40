package log

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"
	logrus "github.com/sirupsen/logrus"
)

// ComponentField is the entry field naming the emitting component.
const ComponentField = "component"

// LineFormatter renders entries as
//
//	[15:04:05] [INFO] [component]: message
//
// Fields other than the component are appended as key=value pairs.
type LineFormatter struct {
	// Default is used when an entry has no component field.
	Default string
}

// Format implements logrus.Formatter.
func (f *LineFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	b := entry.Buffer
	if b == nil {
		b = &bytes.Buffer{}
	}

	component, ok := entry.Data[ComponentField].(string)
	if !ok || component == "" {
		component = f.Default
	}

	fmt.Fprintf(
		b,
		"[%s] [%s] [%s]: %s",
		entry.Time.Format("15:04:05"),
		levelName(entry.Level),
		component,
		strings.TrimRight(entry.Message, "\n"),
	)

	keys := lo.Filter(lo.Keys(entry.Data), func(k string, _ int) bool {
		return k != ComponentField
	})
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(b, " %s=%v", k, entry.Data[k])
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}

// levelName is the upper-case level, e.g. WARN.
func levelName(l logrus.Level) string {
	if l == logrus.WarnLevel {
		return "WARN"
	}
	return strings.ToUpper(l.String())
}
