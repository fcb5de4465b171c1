// Package frameworks transpiles the Vader framework DSL (componente, modelo, ruta)
// into web framework sources, generates desktop GUI projects, and keeps the
// registry used for framework detection.
package frameworks

import (
	"regexp"
	"strings"

	"vaderlang/vader/internal/vader"
)

// Prop is a component input with an optional default value.
type Prop struct {
	Name    string
	Type    string
	Default string
}

// State is a reactive component variable.
type State struct {
	Name    string
	Type    string
	Initial string
}

// Function is a named Vader function whose body is kept as source.
type Function struct {
	Name   string
	Params []vader.Param
	Type   string
	Body   string
}

// Returns reports whether the body returns a value.
func (f Function) Returns() bool {
	for _, st := range vader.Scan(f.Body) {
		if st.Kind == vader.KindReturn && st.Expr != "" {
			return true
		}
	}
	return false
}

// Component is a UI component: inputs, state, handlers and a view template.
type Component struct {
	Name      string
	Props     []Prop
	States    []State
	Functions []Function
	View      []string
}

// Model is a persisted entity.
type Model struct {
	Name   string
	Fields []vader.Param
}

// Route is an HTTP endpoint. Body is Vader source where responder lines have
// become retornar lines.
type Route struct {
	Method string
	Path   string
	Params []string
	Body   string
}

// App is a parsed framework DSL file.
type App struct {
	// Framework is the name given by a "framework" or "usar" line, if any.
	Framework  string
	Components []Component
	Models     []Model
	Routes     []Route
	Functions  []Function
}

var (
	reComponent = regexp.MustCompile(`(?i)^componente\s+([\p{L}_][\p{L}\p{N}_]*)\s*:?$`)
	reModel     = regexp.MustCompile(`(?i)^modelo\s+([\p{L}_][\p{L}\p{N}_]*)\s*:?$`)
	reRoute     = regexp.MustCompile(`(?i)^ruta\s+(?:(GET|POST|PUT|PATCH|DELETE)\s+)?(\S+)\s*:?$`)
	reProp      = regexp.MustCompile(`(?i)^(?:propiedad|prop)\s+([\p{L}_][\p{L}\p{N}_]*)(?:\s*:\s*([^=]+?))?\s*(?:=\s*(.+))?$`)
	reState     = regexp.MustCompile(`(?i)^estado\s+([\p{L}_][\p{L}\p{N}_]*)(?:\s*:\s*([^=]+?))?\s*(?:=\s*(.+))?$`)
	reView      = regexp.MustCompile(`(?i)^(?:vista|plantilla)\s*:?$`)
	reRespond   = regexp.MustCompile(`(?i)^responder\s+(.+)$`)
	reFramework = regexp.MustCompile(`(?i)^(?:framework|usar)\s+([\p{L}_][\p{L}\p{N}_.-]*)\s*$`)
	rePathParam = regexp.MustCompile(`\{([\p{L}_][\p{L}\p{N}_]*)\}`)
)

// Parse reads the framework DSL. Lines it does not understand are skipped.
func Parse(src string) *App {
	p := &parser{lines: vader.SplitLines(src)}
	return p.parse()
}

type parser struct {
	lines []vader.Line
	pos   int
}

func (p *parser) parse() *App {
	app := &App{}
	for p.pos < len(p.lines) {
		line := p.lines[p.pos]
		p.pos++
		text := line.Text
		switch {
		case reComponent.MatchString(text):
			app.Components = append(app.Components, p.component(reComponent.FindStringSubmatch(text)[1]))
		case reModel.MatchString(text):
			app.Models = append(app.Models, p.model(reModel.FindStringSubmatch(text)[1]))
		case reRoute.MatchString(text):
			m := reRoute.FindStringSubmatch(text)
			app.Routes = append(app.Routes, p.route(m[1], m[2]))
		case reFramework.MatchString(text) && app.Framework == "":
			app.Framework = strings.ToLower(reFramework.FindStringSubmatch(text)[1])
		default:
			if st := vader.Classify(line); st.Kind == vader.KindFunc {
				app.Functions = append(app.Functions, p.function(st))
			}
		}
	}
	return app
}

func (p *parser) component(name string) Component {
	c := Component{Name: name}
	for p.pos < len(p.lines) {
		line := p.lines[p.pos]
		p.pos++
		text := line.Text
		switch {
		case reProp.MatchString(text):
			m := reProp.FindStringSubmatch(text)
			c.Props = append(c.Props, Prop{Name: m[1], Type: strings.TrimSpace(m[2]), Default: strings.TrimSpace(m[3])})
		case reState.MatchString(text):
			m := reState.FindStringSubmatch(text)
			c.States = append(c.States, State{Name: m[1], Type: strings.TrimSpace(m[2]), Initial: strings.TrimSpace(m[3])})
		case reView.MatchString(text):
			c.View = p.view()
		default:
			st := vader.Classify(line)
			switch st.Kind {
			case vader.KindFunc:
				c.Functions = append(c.Functions, p.function(st))
			case vader.KindEnd:
				return c
			}
		}
	}
	return c
}

func (p *parser) model(name string) Model {
	m := Model{Name: name}
	for p.pos < len(p.lines) {
		line := p.lines[p.pos]
		p.pos++
		st := vader.ClassifyIn(line, vader.KindStruct)
		switch st.Kind {
		case vader.KindField:
			m.Fields = append(m.Fields, vader.Param{Name: st.Name, Type: st.Type})
		case vader.KindEnd:
			return m
		}
	}
	return m
}

func (p *parser) route(method, path string) Route {
	if method == "" {
		method = "GET"
	}
	r := Route{Method: strings.ToUpper(method), Path: path}
	for _, m := range rePathParam.FindAllStringSubmatch(path, -1) {
		r.Params = append(r.Params, m[1])
	}
	body := p.block()
	for i, l := range body {
		if m := reRespond.FindStringSubmatch(strings.TrimSpace(l)); m != nil {
			indent := l[:len(l)-len(strings.TrimLeft(l, " "))]
			body[i] = indent + "retornar " + m[1]
		}
	}
	r.Body = strings.Join(body, "\n")
	return r
}

func (p *parser) function(st vader.Statement) Function {
	return Function{
		Name:   st.Name,
		Params: st.Params,
		Type:   st.Type,
		Body:   strings.Join(p.block(), "\n"),
	}
}

// block collects the lines of an open block up to its matching fin and returns
// them re-indented relative to the shallowest line.
func (p *parser) block() []string {
	var raw []vader.Line
	depth := 1
	for p.pos < len(p.lines) {
		line := p.lines[p.pos]
		p.pos++
		st := vader.Classify(line)
		if st.Kind == vader.KindEnd {
			depth--
			if depth == 0 {
				break
			}
		} else if st.Kind.OpensBlock() {
			depth++
		}
		raw = append(raw, line)
	}
	return dedent(raw)
}

func dedent(lines []vader.Line) []string {
	shallowest := -1
	for _, l := range lines {
		if l.Text != "" && (shallowest < 0 || l.Indent < shallowest) {
			shallowest = l.Indent
		}
	}
	out := make([]string, len(lines))
	for i, l := range lines {
		if l.Text != "" {
			out[i] = strings.Repeat(" ", l.Indent-shallowest) + l.Text
		}
	}
	return out
}

// view collects raw markup lines up to the first fin.
func (p *parser) view() []string {
	var raw []vader.Line
	for p.pos < len(p.lines) {
		line := p.lines[p.pos]
		p.pos++
		if strings.EqualFold(line.Text, "fin") || strings.HasPrefix(strings.ToLower(line.Text), "fin ") {
			break
		}
		raw = append(raw, line)
	}
	return dedent(raw)
}
