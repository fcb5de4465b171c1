package frameworks

import (
	"fmt"
	"strings"
	"unicode"

	"vaderlang/vader/internal/targets"
	"vaderlang/vader/internal/vader"
	"vaderlang/vader/vadererr"
)

// explicitBonus is added to a framework named on a "framework" or "usar" line.
const explicitBonus = 10

// Detection is the outcome of keyword detection.
type Detection struct {
	Framework string
	// Scores holds the score of every registered framework, zeros included.
	Scores map[string]int
}

var accents = strings.NewReplacer("á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ü", "u")

func words(src string) map[string]int {
	counts := make(map[string]int)
	for _, w := range strings.FieldsFunc(strings.ToLower(src), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	}) {
		counts[accents.Replace(w)]++
	}
	return counts
}

// Detect scores src against every framework in r.
func (r *Registry) Detect(src string) (Detection, error) {
	counts := words(src)
	d := Detection{Scores: make(map[string]int)}

	for _, info := range r.All() {
		d.Scores[info.Name] = 0
	}
	for w, n := range counts {
		for _, info := range r.ByKeyword(w) {
			d.Scores[info.Name] += n
		}
	}
	for _, line := range vader.SplitLines(src) {
		if m := reFramework.FindStringSubmatch(line.Text); m != nil {
			if info, err := r.Lookup(m[1]); err == nil {
				d.Scores[info.Name] += explicitBonus
			}
		}
	}

	best := 0
	for _, name := range r.Names() {
		if s := d.Scores[name]; s > best {
			best = s
			d.Framework = name
		}
	}
	if best == 0 {
		return d, vadererr.NewDetectionError("no framework keyword found")
	}
	return d, nil
}

// Detect scores src against the global registry.
func Detect(src string) (Detection, error) {
	return Global.Detect(src)
}

// Transpile runs the named framework over src. An empty name means detect.
// It returns the framework actually used.
func (r *Registry) Transpile(name, src string) (string, string, error) {
	if name == "" {
		d, err := r.Detect(src)
		if err != nil {
			return "", "", err
		}
		name = d.Framework
	}
	info, err := r.Lookup(name)
	if err != nil {
		return "", "", err
	}
	out, err := info.Transpile(src)
	if err != nil {
		return info.Name, "", fmt.Errorf("%s: %w", info.Name, err)
	}
	return info.Name, out, nil
}

// TranspileAny resolves name as a language target first and as a framework of
// the global registry second. It returns the canonical name used.
func TranspileAny(name, src string) (string, string, error) {
	if t, err := targets.Lookup(name); err == nil {
		out, err := t.Transpile(src)
		return t.Name(), out, err
	}
	if name != "" {
		if _, err := Global.Lookup(name); err != nil {
			known := append(targets.Names(), Global.Names()...)
			return "", "", vadererr.NewUnknownTargetError(name, known)
		}
	}
	return Global.Transpile(name, src)
}
