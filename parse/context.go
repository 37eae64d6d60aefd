package parse

// Context carries the mutable state of a single parse run: the capture
// histories of every Hunter involved and the furthest failure seen.
//
// A Context belongs to one run and must not be shared between goroutines.
// Parsers themselves hold no run state, so the same parser may be run
// concurrently with separate contexts.
type Context struct {
	histories map[any][]any
	journal   []change

	furthest    Cursor
	furthestMsg string
	failed      bool
	quiet       int
}

type changeKind int

const (
	changePush changeKind = iota
	changePop
)

// change records one history mutation so it can be undone.
type change struct {
	kind  changeKind
	key   any
	value any
}

// NewContext returns an empty context.
func NewContext() *Context {
	return &Context{histories: make(map[any][]any)}
}

// Reset clears every capture history and the failure record so the context
// can be reused for another run.
func (ctx *Context) Reset() {
	clear(ctx.histories)
	ctx.journal = ctx.journal[:0]
	ctx.furthest = Cursor{}
	ctx.furthestMsg = ""
	ctx.failed = false
}

// Furthest returns the right-most failure recorded during the run.
// ok is false if no primitive has failed.
func (ctx *Context) Furthest() (c Cursor, message string, ok bool) {
	return ctx.furthest, ctx.furthestMsg, ctx.failed
}

func (ctx *Context) noteFailure(c Cursor, message string) {
	if ctx.quiet > 0 {
		return
	}
	if !ctx.failed || c.Offset() > ctx.furthest.Offset() {
		ctx.furthest = c
		ctx.furthestMsg = message
		ctx.failed = true
	}
}

func (ctx *Context) push(key, v any) {
	ctx.histories[key] = append(ctx.histories[key], v)
	ctx.journal = append(ctx.journal, change{kind: changePush, key: key})
}

func (ctx *Context) pop(key any) (any, bool) {
	stack := ctx.histories[key]
	if len(stack) == 0 {
		return nil, false
	}
	v := stack[len(stack)-1]
	ctx.histories[key] = stack[:len(stack)-1]
	ctx.journal = append(ctx.journal, change{kind: changePop, key: key, value: v})
	return v, true
}

func (ctx *Context) peek(key any) (any, bool) {
	stack := ctx.histories[key]
	if len(stack) == 0 {
		return nil, false
	}
	return stack[len(stack)-1], true
}

func (ctx *Context) history(key any) []any {
	return ctx.histories[key]
}

// mark returns a point the histories can be rolled back to.
func (ctx *Context) mark() int {
	return len(ctx.journal)
}

// rollback undoes every history change made after m.
func (ctx *Context) rollback(m int) {
	for i := len(ctx.journal) - 1; i >= m; i-- {
		ch := ctx.journal[i]
		stack := ctx.histories[ch.key]
		switch ch.kind {
		case changePush:
			ctx.histories[ch.key] = stack[:len(stack)-1]
		case changePop:
			ctx.histories[ch.key] = append(stack, ch.value)
		}
	}
	ctx.journal = ctx.journal[:m]
}
