// Package debug gathers the debug helpers shared by quarc components.
//
// Building with the "debug" tag turns on the expensive runtime checks:
// ancilla-release verification in the statevector engine and the
// quantum-state precondition assertions of the modular operations.
package debug

import (
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

func Stack() string {
	var sbb strings.Builder
	WriteStack(&sbb)
	return sbb.String()
}

func WriteStack(sbb *strings.Builder) {
	// derived from: https://golang.org/pkg/runtime/#example_Frames
	pc := make([]uintptr, 10)
	n := runtime.Callers(3, pc)
	if n == 0 {
		return
	}
	pc = pc[:n]
	frames := runtime.CallersFrames(pc)
	for {
		frame, more := frames.Next()
		fe := strings.Split(frame.Function, "/")
		function := fe[len(fe)-1]
		file := frame.File

		if !Debug {
			if strings.Contains(function, "runtime.gopanic") {
				continue
			}
			if strings.Contains(frame.File, "quarc/quantum") {
				continue
			}
			file = filepath.Base(file)
		}

		sbb.WriteString(function)
		sbb.WriteByte('\n')
		sbb.WriteByte('\t')
		sbb.WriteString(file)
		sbb.WriteByte(':')
		sbb.WriteString(strconv.Itoa(frame.Line))
		sbb.WriteByte('\n')
		if !more {
			break
		}
	}
}

// Assert does nothing if the debug flag is not provided;
// if the debug flag is provided, panics with a stack trace if condition is
// false.
func Assert(condition bool, message ...string) {
	if Debug && !condition {
		msg := "assertion failed"
		if len(message) > 0 {
			msg = message[0]
		}
		panic(msg + "\n" + Stack())
	}
}
