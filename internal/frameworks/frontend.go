package frameworks

import (
	"fmt"
	"strings"

	"vaderlang/vader/internal/targets"
	"vaderlang/vader/internal/transpiler"
	"vaderlang/vader/internal/vader"
)

// componentRenderer renders one component; frontend transpilers differ only in it.
type componentRenderer func(c Component) (string, error)

// frontend is a Transpiler over the component part of the DSL.
type frontend struct {
	name, ext  string
	comment    string
	commentEnd string
	render     componentRenderer
}

func (f *frontend) Name() string      { return f.name }
func (f *frontend) Extension() string { return f.ext }

func (f *frontend) note(text string) string {
	if f.commentEnd == "" {
		return f.comment + " " + text + "\n"
	}
	return f.comment + " " + text + " " + f.commentEnd + "\n"
}

func (f *frontend) Transpile(src string) (string, error) {
	app := Parse(src)
	if len(app.Components) == 0 {
		return f.note("sin componentes"), nil
	}
	var sb strings.Builder
	for i, c := range app.Components {
		out, err := f.render(c)
		if err != nil {
			return "", fmt.Errorf("componente %s: %w", c.Name, err)
		}
		if len(app.Components) > 1 {
			if i > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(f.note(c.Name + f.ext))
		}
		sb.WriteString(out)
	}
	return sb.String(), nil
}

func names[T any](items []T, name func(T) string) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = name(it)
	}
	return out
}

func declaredNames(c Component) []string {
	out := names(c.States, func(s State) string { return s.Name })
	out = append(out, names(c.Props, func(p Prop) string { return p.Name })...)
	return out
}

func stateSet(c Component) map[string]bool {
	set := make(map[string]bool, len(c.States))
	for _, s := range c.States {
		set[s.Name] = true
	}
	return set
}

func expr(d transpiler.Dialect, e, def string) string {
	if strings.TrimSpace(e) == "" {
		return def
	}
	return transpiler.TranslateExpr(e, d.Rules(), nil)
}

func writeLines(sb *strings.Builder, lines []string) {
	for _, l := range lines {
		sb.WriteString(l + "\n")
	}
}

func indentLines(lines []string, prefix string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		if l == "" {
			continue
		}
		out[i] = prefix + l
	}
	return out
}

// NewReact creates the React transpiler: function components with hooks.
func NewReact() transpiler.Transpiler {
	return &frontend{name: "react", ext: ".jsx", comment: "//", render: renderReact}
}

func renderReact(c Component) (string, error) {
	js, err := targets.Dialect("javascript")
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	if len(c.States) > 0 {
		sb.WriteString("import React, { useState } from \"react\";\n\n")
	} else {
		sb.WriteString("import React from \"react\";\n\n")
	}

	props := names(c.Props, func(p Prop) string {
		if p.Default == "" {
			return p.Name
		}
		return p.Name + " = " + expr(js, p.Default, "")
	})
	args := "()"
	if len(props) > 0 {
		args = "({ " + strings.Join(props, ", ") + " })"
	}
	sb.WriteString("export function " + c.Name + args + " {\n")

	for _, s := range c.States {
		fmt.Fprintf(&sb, "  const [%s, set%s] = useState(%s);\n", s.Name, transpiler.Capitalize(s.Name), expr(js, s.Initial, "null"))
	}
	states := stateSet(c)
	for _, fn := range c.Functions {
		sb.WriteString("\n")
		params := names(fn.Params, func(p vader.Param) string { return p.Name })
		sb.WriteString("  function " + fn.Name + "(" + strings.Join(params, ", ") + ") {\n")
		body := transpiler.Fragment(js, fn.Body, 2, append(declaredNames(c), params...)...)
		body = rewriteStateWrites(body, states, func(name, value string) string {
			return "set" + transpiler.Capitalize(name) + "(" + value + ");"
		})
		writeLines(&sb, body)
		sb.WriteString("  }\n")
	}

	sb.WriteString("\n  return (\n    <>\n")
	writeLines(&sb, indentLines(reactMarkup.rewrite(c.View), "      "))
	sb.WriteString("    </>\n  );\n}\n")
	return sb.String(), nil
}

// NewVue creates the Vue transpiler: single file components with <script setup>.
func NewVue() transpiler.Transpiler {
	return &frontend{name: "vue", ext: ".vue", comment: "<!--", commentEnd: "-->", render: renderVue}
}

func renderVue(c Component) (string, error) {
	js, err := targets.Dialect("javascript")
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteString("<template>\n  <div>\n")
	writeLines(&sb, indentLines(vueMarkup.rewrite(c.View), "    "))
	sb.WriteString("  </div>\n</template>\n\n<script setup>\n")
	if len(c.States) > 0 {
		sb.WriteString("import { ref } from \"vue\";\n\n")
	}

	rename := map[string]string{}
	if len(c.Props) > 0 {
		props := names(c.Props, func(p Prop) string {
			rename[p.Name] = "props." + p.Name
			if p.Default == "" {
				return p.Name + ": {}"
			}
			return p.Name + ": { default: " + expr(js, p.Default, "") + " }"
		})
		sb.WriteString("const props = defineProps({ " + strings.Join(props, ", ") + " });\n")
	}
	for _, s := range c.States {
		rename[s.Name] = s.Name + ".value"
		fmt.Fprintf(&sb, "const %s = ref(%s);\n", s.Name, expr(js, s.Initial, "null"))
	}
	for _, fn := range c.Functions {
		sb.WriteString("\n")
		params := names(fn.Params, func(p vader.Param) string { return p.Name })
		sb.WriteString("function " + fn.Name + "(" + strings.Join(params, ", ") + ") {\n")
		for _, l := range transpiler.Fragment(js, fn.Body, 1, append(declaredNames(c), params...)...) {
			sb.WriteString(renameIdents(l, rename) + "\n")
		}
		sb.WriteString("}\n")
	}
	sb.WriteString("</script>\n")
	return sb.String(), nil
}

// NewAngular creates the Angular transpiler: a standalone @Component class.
func NewAngular() transpiler.Transpiler {
	return &frontend{name: "angular", ext: ".component.ts", comment: "//", render: renderAngular}
}

func kebab(name string) string {
	var sb strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				sb.WriteByte('-')
			}
			sb.WriteRune(r + ('a' - 'A'))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func renderAngular(c Component) (string, error) {
	ts, err := targets.Dialect("typescript")
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	if len(c.Props) > 0 {
		sb.WriteString("import { Component, Input } from \"@angular/core\";\n\n")
	} else {
		sb.WriteString("import { Component } from \"@angular/core\";\n\n")
	}
	sb.WriteString("@Component({\n")
	sb.WriteString("  selector: \"app-" + kebab(c.Name) + "\",\n")
	sb.WriteString("  standalone: true,\n")
	sb.WriteString("  template: `\n")
	writeLines(&sb, indentLines(angularMarkup.rewrite(c.View), "    "))
	sb.WriteString("  `,\n})\n")
	sb.WriteString("export class " + c.Name + "Component {\n")

	rename := map[string]string{}
	for _, p := range c.Props {
		rename[p.Name] = "this." + p.Name
		typ := ""
		if p.Type != "" {
			typ = ": " + ts.Rules().MapType(p.Type, "any")
		}
		if p.Default == "" {
			fmt.Fprintf(&sb, "  @Input() %s%s;\n", p.Name, typ)
			continue
		}
		fmt.Fprintf(&sb, "  @Input() %s%s = %s;\n", p.Name, typ, expr(ts, p.Default, ""))
	}
	for _, s := range c.States {
		rename[s.Name] = "this." + s.Name
		fmt.Fprintf(&sb, "  %s = %s;\n", s.Name, expr(ts, s.Initial, "null"))
	}
	for _, fn := range c.Functions {
		rename[fn.Name] = "this." + fn.Name
	}
	for _, fn := range c.Functions {
		sb.WriteString("\n")
		params := names(fn.Params, func(p vader.Param) string {
			return p.Name + ": " + ts.Rules().MapType(p.Type, "any")
		})
		sb.WriteString("  " + fn.Name + "(" + strings.Join(params, ", ") + ") {\n")
		local := names(fn.Params, func(p vader.Param) string { return p.Name })
		for _, l := range transpiler.Fragment(ts, fn.Body, 2, append(declaredNames(c), local...)...) {
			sb.WriteString(renameIdents(l, rename) + "\n")
		}
		sb.WriteString("  }\n")
	}
	sb.WriteString("}\n")
	return sb.String(), nil
}

// NewSvelte creates the Svelte transpiler.
func NewSvelte() transpiler.Transpiler {
	return &frontend{name: "svelte", ext: ".svelte", comment: "<!--", commentEnd: "-->", render: renderSvelte}
}

func renderSvelte(c Component) (string, error) {
	js, err := targets.Dialect("javascript")
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteString("<script>\n")
	for _, p := range c.Props {
		if p.Default == "" {
			fmt.Fprintf(&sb, "  export let %s;\n", p.Name)
			continue
		}
		fmt.Fprintf(&sb, "  export let %s = %s;\n", p.Name, expr(js, p.Default, ""))
	}
	for _, s := range c.States {
		fmt.Fprintf(&sb, "  let %s = %s;\n", s.Name, expr(js, s.Initial, "null"))
	}
	for _, fn := range c.Functions {
		sb.WriteString("\n")
		params := names(fn.Params, func(p vader.Param) string { return p.Name })
		sb.WriteString("  function " + fn.Name + "(" + strings.Join(params, ", ") + ") {\n")
		writeLines(&sb, transpiler.Fragment(js, fn.Body, 2, append(declaredNames(c), params...)...))
		sb.WriteString("  }\n")
	}
	sb.WriteString("</script>\n\n")
	writeLines(&sb, svelteMarkup.rewrite(c.View))
	return sb.String(), nil
}

// NewBlazor creates the Blazor transpiler: Razor markup with an @code block.
func NewBlazor() transpiler.Transpiler {
	return &frontend{name: "blazor", ext: ".razor", comment: "@*", commentEnd: "*@", render: renderBlazor}
}

func renderBlazor(c Component) (string, error) {
	cs, err := targets.Dialect("csharp")
	if err != nil {
		return "", err
	}
	rules := cs.Rules()
	typeOf := func(declared, value string) string {
		if declared != "" {
			return rules.MapType(declared, "dynamic")
		}
		return rules.MapType(transpiler.InferType(value), "dynamic")
	}

	var sb strings.Builder
	writeLines(&sb, blazorMarkup.rewrite(c.View))
	sb.WriteString("\n@code {\n")
	for _, p := range c.Props {
		line := "    [Parameter] public " + typeOf(p.Type, p.Default) + " " + p.Name + " { get; set; }"
		if p.Default != "" {
			line += " = " + expr(cs, p.Default, "") + ";"
		}
		sb.WriteString(line + "\n")
	}
	for _, s := range c.States {
		fmt.Fprintf(&sb, "    private %s %s = %s;\n", typeOf(s.Type, s.Initial), s.Name, expr(cs, s.Initial, "default"))
	}
	for _, fn := range c.Functions {
		sb.WriteString("\n")
		params := names(fn.Params, func(p vader.Param) string {
			return rules.MapType(p.Type, "dynamic") + " " + p.Name
		})
		ret := "void"
		switch {
		case fn.Type != "":
			ret = rules.MapType(fn.Type, "dynamic")
		case fn.Returns():
			ret = "dynamic"
		}
		sb.WriteString("    private " + ret + " " + fn.Name + "(" + strings.Join(params, ", ") + ")\n    {\n")
		local := names(fn.Params, func(p vader.Param) string { return p.Name })
		writeLines(&sb, transpiler.Fragment(cs, fn.Body, 2, append(declaredNames(c), local...)...))
		sb.WriteString("    }\n")
	}
	sb.WriteString("}\n")
	return sb.String(), nil
}
