package parse

import (
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("hunt.parse")

// Trace logs every attempt of p at debug level under the given name.
// Enable it with commonlog.Configure and a verbosity of 2 or more.
func Trace[T any](name string, p Parser[T]) Parser[T] {
	return New(func(ctx *Context, c Cursor) Outcome[T] {
		if !log.AllowLevel(commonlog.Debug) {
			return p.Run(ctx, c)
		}
		log.Debugf("%s: try at %s", name, c)
		out := p.Run(ctx, c)
		switch out.status {
		case Matched:
			log.Debugf("%s: matched up to %s", name, out.cursor.Position())
		case Ignored:
			log.Debugf("%s: ignored up to %s", name, out.cursor.Position())
		case NotMatched:
			log.Debugf("%s: %s", name, out.message)
		}
		return out
	})
}
