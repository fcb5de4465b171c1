// Package targets holds one dialect per output language and a lookup table
// resolving target names and their aliases.
package targets

import (
	"sort"
	"strings"

	"vaderlang/vader/internal/transpiler"
	"vaderlang/vader/vadererr"
)

var constructors = []func() transpiler.Transpiler{
	NewPython,
	NewJavaScript,
	NewTypeScript,
	NewGo,
	NewRust,
	NewCSharp,
	NewJava,
	NewPHP,
	NewRuby,
	NewSolidity,
	NewDart,
	NewKotlin,
	NewSwift,
	NewArduino,
	NewMicroPython,
}

var aliases = map[string]string{
	"py":      "python",
	"python3": "python",
	"js":      "javascript",
	"node":    "javascript",
	"ts":      "typescript",
	"golang":  "go",
	"rs":      "rust",
	"cs":      "csharp",
	"c#":      "csharp",
	"rb":      "ruby",
	"sol":     "solidity",
	"kt":      "kotlin",
	"ino":     "arduino",
	"mpy":     "micropython",
}

// All returns a fresh transpiler for every target in a stable order.
func All() []transpiler.Transpiler {
	out := make([]transpiler.Transpiler, 0, len(constructors))
	for _, ctor := range constructors {
		out = append(out, ctor())
	}
	return out
}

// Names returns the canonical target names in the order of All.
func Names() []string {
	all := All()
	names := make([]string, len(all))
	for i, t := range all {
		names[i] = t.Name()
	}
	return names
}

// Aliases returns the alias table sorted by alias.
func Aliases() [][2]string {
	out := make([][2]string, 0, len(aliases))
	for a, n := range aliases {
		out = append(out, [2]string{a, n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}

// Lookup resolves a target by name or alias, case-insensitively.
func Lookup(name string) (transpiler.Transpiler, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.TrimPrefix(key, ".")
	if canonical, ok := aliases[key]; ok {
		key = canonical
	}
	for _, t := range All() {
		if t.Name() == key || strings.TrimPrefix(t.Extension(), ".") == key {
			return t, nil
		}
	}
	return nil, vadererr.NewUnknownTargetError(name, Names())
}

// Transpile resolves target and transpiles src with it.
func Transpile(target, src string) (string, error) {
	t, err := Lookup(target)
	if err != nil {
		return "", err
	}
	return t.Transpile(src)
}

// Dialect returns the dialect behind a target, for callers that transpile
// fragments such as framework function bodies.
func Dialect(name string) (transpiler.Dialect, error) {
	t, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	lt, ok := t.(*transpiler.LineTranspiler)
	if !ok {
		return nil, vadererr.NewUnknownTargetError(name, Names())
	}
	return lt.Dialect(), nil
}
