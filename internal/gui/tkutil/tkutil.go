package tkutil

import (
	"fmt"
	"log/slog"
	"strings"

	evalext "modernc.org/tk9.0/extensions/eval"
)

func Eval(format string, a ...any) (string, error) {
	eval := fmt.Sprintf(format, a...)
	r, err := evalext.Eval(eval)
	if err != nil {
		return "", fmt.Errorf("tk eval=%s; err=%w", eval, err)
	}
	return r, nil
}

func EvalOrEmpty(format string, a ...any) string {
	out, err := Eval(format, a...)
	if err != nil {
		slog.Debug("tk eval or empty", slog.Any("error", err))
		return ""
	}
	return out
}

// Quote makes s a single Tcl word by escaping every character Tcl treats
// specially.
func Quote(s string) string {
	if s == "" {
		return "{}"
	}
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case ' ', '{', '}', '[', ']', '$', '"', ';', '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// List joins values into a Tcl list.
func List(values ...string) string {
	quoted := make([]string, 0, len(values))
	for _, v := range values {
		quoted = append(quoted, Quote(v))
	}
	return strings.Join(quoted, " ")
}
