package targets

import (
	"vaderlang/vader/internal/transpiler"
	"vaderlang/vader/internal/vader"
)

// microPythonDialect is Python with machine.Pin for the IoT statements.
type microPythonDialect struct {
	*pythonDialect
}

// NewMicroPython creates the MicroPython transpiler.
func NewMicroPython() transpiler.Transpiler {
	return transpiler.NewLineTranspiler(&microPythonDialect{pythonDialect: newPythonDialect()})
}

func (d *microPythonDialect) Name() string { return "micropython" }

func pinVar(pin string) string {
	return "pin_" + pin
}

func (d *microPythonDialect) Emit(c *transpiler.Context, st vader.Statement) {
	switch st.Kind {
	case vader.KindPinMode:
		c.Imports.Add("from machine import Pin")
		mode := "Pin.OUT"
		if st.Mode == "entrada" {
			mode = "Pin.IN"
		}
		c.Out.Writef("%s = Pin(%s, %s)", pinVar(st.Name), st.Name, mode)
	case vader.KindDigitalWrite:
		level := "1"
		if st.Mode == "bajo" {
			level = "0"
		}
		c.Out.Writef("%s.value(%s)", pinVar(st.Name), level)
	case vader.KindSleep:
		c.Imports.Add("import time")
		c.Out.Writef("time.sleep_ms(%s)", c.Expr(st.Expr))
	default:
		d.pythonDialect.Emit(c, st)
	}
}
