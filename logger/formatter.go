package logger

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// TimeLayout - формат времени в строке лога (UTC)
const TimeLayout = "02/01/2006, 15:04:05"

const defaultApplication = "lumiere"

// LineFormatter форматирует запись как
// "{time} | [{application}] - [{LEVEL}] {message} key=value ..."
type LineFormatter struct{}

// Format реализует logrus.Formatter
func (f *LineFormatter) Format(e *logrus.Entry) ([]byte, error) {
	app, _ := e.Data[ApplicationField].(string)
	if app == "" {
		app = defaultApplication
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, "%s | [%s] - [%s] %s",
		e.Time.UTC().Format(TimeLayout), app, strings.ToUpper(e.Level.String()), e.Message)

	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		if k == ApplicationField {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		b.WriteByte(' ')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(formatValue(e.Data[k]))
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}

func formatValue(v interface{}) string {
	var s string
	switch val := v.(type) {
	case string:
		s = val
	case error:
		s = val.Error()
	default:
		s = fmt.Sprintf("%v", val)
	}
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return fmt.Sprintf("%q", s)
	}
	return s
}
