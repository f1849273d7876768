package scope

import "fmt"

// Context owns the unique-name counter of one compilation. Everything that
// manufactures a name during symbol table construction or code generation
// must draw from the same Context, and independent compilations must not
// share one.
type Context struct {
	counter int
}

func NewContext() *Context {
	return &Context{}
}

// Next returns a number never returned before by this context.
func (ctx *Context) Next() int {
	ctx.counter++
	return ctx.counter
}

// Fresh returns "<hint>.<n>" for a fresh n.
func (ctx *Context) Fresh(hint string) string {
	return fmt.Sprintf("%s.%d", hint, ctx.Next())
}
