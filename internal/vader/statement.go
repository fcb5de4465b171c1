package vader

// Kind classifies a statement.
type Kind int

const (
	KindUnknown Kind = iota
	KindBlank
	KindComment
	KindPrint
	KindDeclare
	KindAssign
	KindInput
	KindIf
	KindElseIf
	KindElse
	KindWhile
	KindForRange
	KindForEach
	KindFunc
	KindReturn
	KindClass
	KindStruct
	KindContract
	KindField
	KindImport
	KindBreak
	KindContinue
	KindTry
	KindCatch
	KindThrow
	KindSleep
	KindPinMode
	KindDigitalWrite
	KindCall
	KindEnd
)

var kindNames = map[Kind]string{
	KindUnknown:      "unknown",
	KindBlank:        "blank",
	KindComment:      "comment",
	KindPrint:        "print",
	KindDeclare:      "declare",
	KindAssign:       "assign",
	KindInput:        "input",
	KindIf:           "if",
	KindElseIf:       "elseif",
	KindElse:         "else",
	KindWhile:        "while",
	KindForRange:     "for-range",
	KindForEach:      "for-each",
	KindFunc:         "func",
	KindReturn:       "return",
	KindClass:        "class",
	KindStruct:       "struct",
	KindContract:     "contract",
	KindField:        "field",
	KindImport:       "import",
	KindBreak:        "break",
	KindContinue:     "continue",
	KindTry:          "try",
	KindCatch:        "catch",
	KindThrow:        "throw",
	KindSleep:        "sleep",
	KindPinMode:      "pin-mode",
	KindDigitalWrite: "digital-write",
	KindCall:         "call",
	KindEnd:          "end",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// OpensBlock reports whether a statement of this kind must be closed by fin.
func (k Kind) OpensBlock() bool {
	switch k {
	case KindIf, KindWhile, KindForRange, KindForEach, KindFunc,
		KindClass, KindStruct, KindContract, KindTry:
		return true
	}
	return false
}

// IsContainer reports whether the kind holds fields and methods.
func (k Kind) IsContainer() bool {
	return k == KindClass || k == KindStruct || k == KindContract
}

// Param is a function parameter with an optional Vader type.
type Param struct {
	Name string
	Type string
}

// Statement is a classified source line. Which fields are set depends on Kind.
type Statement struct {
	Kind Kind
	Line Line

	Name   string // variable, function, type, field, loop variable, module or pin
	Expr   string // value, condition, printed expression, iterable, call or comment text
	Op     string // assignment operator
	Type   string // declared, field or return type
	Parent string // base class
	From   string
	To     string
	Step   string
	Params []Param
	Const  bool
	Prompt string // input prompt literal
	Mode   string // pin mode ("entrada"/"salida") or level ("alto"/"bajo")

	// Set by Scan.
	Container      Kind // innermost directly enclosing class, struct or contract
	Closes         Kind // block kind closed by an End statement, KindUnknown when orphaned
	HasReturnValue bool // function body returns a value
	Async          bool // function body waits (esperar)
	Synthetic      bool // inserted to close a block left open at end of input
}

// IsMethod reports whether a function statement is declared directly inside a class or contract.
func (s Statement) IsMethod() bool {
	return s.Kind == KindFunc && (s.Container == KindClass || s.Container == KindContract)
}
