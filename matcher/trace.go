package matcher

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

type tracer struct {
	e   *evaluation
	msg string
}

// enterf logs entry into a rule at trace level. Use as
//
//	defer e.enterf("...").exitf("...", &result)
//
// so that exitf sees the final result through the pointer.
func (e *evaluation) enterf(format string, args ...interface{}) *tracer {
	if !logrus.IsLevelEnabled(logrus.TraceLevel) {
		return nil
	}
	t := &tracer{e: e, msg: fmt.Sprintf(format, args...)}
	logrus.Tracef("%s--> %s", strings.Repeat("  ", e.depth), t.msg)
	e.depth++
	return t
}

func (t *tracer) exitf(format string, args ...interface{}) {
	if t == nil {
		return
	}
	t.e.depth--
	logrus.Tracef("%s<-- %s: %s", strings.Repeat("  ", t.e.depth), t.msg, fmt.Sprintf(format, args...))
}
