package dbg

import (
	"sync/atomic"

	"github.com/kr/pretty"
	"github.com/logrusorgru/aurora"
)

// The enabled and disabled Auroras are different types, and atomic.Value
// needs one concrete type.
type palette struct {
	aurora.Aurora
}

var colors atomic.Value

func init() {
	SetColor(true)
}

// SetColor turns terminal colors on or off for Ok, Fail and Note.
func SetColor(enabled bool) {
	colors.Store(palette{aurora.NewAurora(enabled)})
}

func au() aurora.Aurora { return colors.Load().(palette).Aurora }

func Ok(s string) string   { return au().Green(s).String() }
func Fail(s string) string { return au().Red(s).String() }
func Note(s string) string { return au().Cyan(s).String() }

// Dump pretty-prints values with their field names, for fold-state dumps.
func Dump(v ...interface{}) string {
	return pretty.Sprint(v...)
}
