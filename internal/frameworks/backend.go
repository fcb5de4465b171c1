package frameworks

import (
	"fmt"
	"regexp"
	"strings"

	"vaderlang/vader/internal/targets"
	"vaderlang/vader/internal/transpiler"
	"vaderlang/vader/internal/vader"
)

// backend is a Transpiler over the model and route part of the DSL.
type backend struct {
	name, ext string
	language  string
	render    func(d transpiler.Dialect, app *App) string
}

func (b *backend) Name() string      { return b.name }
func (b *backend) Extension() string { return b.ext }

func (b *backend) Transpile(src string) (string, error) {
	d, err := targets.Dialect(b.language)
	if err != nil {
		return "", err
	}
	return b.render(d, Parse(src)), nil
}

var reReturnLine = regexp.MustCompile(`^(\s*)return (.+?);?$`)

// wrapReturns rewrites "return value" lines of a handler body.
func wrapReturns(lines []string, wrap func(value string) string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		if m := reReturnLine.FindStringSubmatch(l); m != nil {
			out[i] = m[1] + wrap(m[2])
			continue
		}
		out[i] = l
	}
	return out
}

// handlerName derives a function name from the method and path:
// GET /usuarios/{id} becomes get_usuarios_id.
func handlerName(r Route) string {
	parts := []string{strings.ToLower(r.Method)}
	for _, seg := range strings.Split(r.Path, "/") {
		seg = strings.Trim(seg, "{}:<>")
		if seg != "" {
			parts = append(parts, strings.ReplaceAll(seg, "-", "_"))
		}
	}
	if len(parts) == 1 {
		parts = append(parts, "inicio")
	}
	return strings.Join(parts, "_")
}

// hasBody reports whether the method carries a request body.
func hasBody(r Route) bool {
	switch r.Method {
	case "POST", "PUT", "PATCH":
		return true
	}
	return false
}

// routePath rewrites {param} placeholders with format, e.g. ":%s" or "<%s>".
func routePath(r Route, format string) string {
	return rePathParam.ReplaceAllStringFunc(r.Path, func(s string) string {
		return fmt.Sprintf(format, s[1:len(s)-1])
	})
}

func routeLocals(r Route) []string {
	locals := append([]string{}, r.Params...)
	if hasBody(r) {
		locals = append(locals, "datos")
	}
	return locals
}

func emptyBody(lines []string, filler string) []string {
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			return lines
		}
	}
	return []string{filler}
}

func pythonField(d transpiler.Dialect, f vader.Param) string {
	return d.Rules().MapType(f.Type, "str")
}

// NewDjango creates the Django transpiler: models.py, views.py and urls.py sections.
func NewDjango() transpiler.Transpiler {
	return &backend{name: "django", ext: ".py", language: "python", render: renderDjango}
}

func djangoField(t string) string {
	switch strings.ToLower(t) {
	case "entero":
		return "models.IntegerField()"
	case "decimal":
		return "models.FloatField()"
	case "booleano":
		return "models.BooleanField(default=False)"
	case "fecha":
		return "models.DateTimeField(auto_now_add=True)"
	case "lista", "diccionario":
		return "models.JSONField(default=list)"
	}
	return "models.CharField(max_length=255)"
}

func renderDjango(d transpiler.Dialect, app *App) string {
	var sb strings.Builder
	sb.WriteString("# models.py\nfrom django.db import models\n")
	for _, m := range app.Models {
		sb.WriteString("\n\nclass " + m.Name + "(models.Model):\n")
		if len(m.Fields) == 0 {
			sb.WriteString("    pass\n")
		}
		for _, f := range m.Fields {
			sb.WriteString("    " + f.Name + " = " + djangoField(f.Type) + "\n")
		}
	}

	sb.WriteString("\n\n# views.py\n")
	if hasBodyRoute(app) {
		sb.WriteString("import json\n\n")
	}
	sb.WriteString("from django.http import JsonResponse\n")
	for _, r := range app.Routes {
		params := append([]string{"request"}, r.Params...)
		sb.WriteString("\n\ndef " + handlerName(r) + "(" + strings.Join(params, ", ") + "):\n")
		if hasBody(r) {
			sb.WriteString("    datos = json.loads(request.body)\n")
		}
		body := transpiler.Fragment(d, r.Body, 1, routeLocals(r)...)
		body = wrapReturns(body, func(v string) string { return "return JsonResponse(" + v + ", safe=False)" })
		writeLines(&sb, emptyBody(body, "    return JsonResponse({})"))
	}

	sb.WriteString("\n\n# urls.py\nfrom django.urls import path\n\nfrom . import views\n\nurlpatterns = [\n")
	for _, r := range app.Routes {
		p := strings.TrimPrefix(routePath(r, "<%s>"), "/")
		if p != "" && !strings.HasSuffix(p, "/") {
			p += "/"
		}
		fmt.Fprintf(&sb, "    path(%q, views.%s),\n", p, handlerName(r))
	}
	sb.WriteString("]\n")
	return sb.String()
}

func hasBodyRoute(app *App) bool {
	for _, r := range app.Routes {
		if hasBody(r) {
			return true
		}
	}
	return false
}

// NewFastAPI creates the FastAPI transpiler.
func NewFastAPI() transpiler.Transpiler {
	return &backend{name: "fastapi", ext: ".py", language: "python", render: renderFastAPI}
}

func renderFastAPI(d transpiler.Dialect, app *App) string {
	var sb strings.Builder
	sb.WriteString("from fastapi import FastAPI\n")
	if len(app.Models) > 0 {
		sb.WriteString("from pydantic import BaseModel\n")
	}
	sb.WriteString("\napp = FastAPI()\n")
	for _, m := range app.Models {
		sb.WriteString("\n\nclass " + m.Name + "(BaseModel):\n")
		if len(m.Fields) == 0 {
			sb.WriteString("    pass\n")
		}
		for _, f := range m.Fields {
			sb.WriteString("    " + f.Name + ": " + pythonField(d, f) + "\n")
		}
	}
	for _, r := range app.Routes {
		params := names(r.Params, func(p string) string { return p + ": str" })
		if hasBody(r) {
			params = append(params, "datos: dict")
		}
		fmt.Fprintf(&sb, "\n\n@app.%s(%q)\n", strings.ToLower(r.Method), r.Path)
		sb.WriteString("def " + handlerName(r) + "(" + strings.Join(params, ", ") + "):\n")
		body := transpiler.Fragment(d, r.Body, 1, routeLocals(r)...)
		writeLines(&sb, emptyBody(body, "    return {}"))
	}
	return sb.String()
}

// NewFlask creates the Flask transpiler.
func NewFlask() transpiler.Transpiler {
	return &backend{name: "flask", ext: ".py", language: "python", render: renderFlask}
}

func renderFlask(d transpiler.Dialect, app *App) string {
	var sb strings.Builder
	if len(app.Models) > 0 {
		sb.WriteString("from dataclasses import dataclass\n\n")
	}
	sb.WriteString("from flask import Flask, jsonify, request\n\napp = Flask(__name__)\n")
	for _, m := range app.Models {
		sb.WriteString("\n\n@dataclass\nclass " + m.Name + ":\n")
		if len(m.Fields) == 0 {
			sb.WriteString("    pass\n")
		}
		for _, f := range m.Fields {
			sb.WriteString("    " + f.Name + ": " + pythonField(d, f) + "\n")
		}
	}
	for _, r := range app.Routes {
		fmt.Fprintf(&sb, "\n\n@app.route(%q, methods=[%q])\n", routePath(r, "<%s>"), r.Method)
		sb.WriteString("def " + handlerName(r) + "(" + strings.Join(r.Params, ", ") + "):\n")
		if hasBody(r) {
			sb.WriteString("    datos = request.get_json()\n")
		}
		body := transpiler.Fragment(d, r.Body, 1, routeLocals(r)...)
		body = wrapReturns(body, func(v string) string { return "return jsonify(" + v + ")" })
		writeLines(&sb, emptyBody(body, "    return jsonify({})"))
	}
	sb.WriteString("\n\nif __name__ == \"__main__\":\n    app.run(debug=True)\n")
	return sb.String()
}

// NewLaravel creates the Laravel transpiler: Eloquent models and routes/api.php.
func NewLaravel() transpiler.Transpiler {
	return &backend{name: "laravel", ext: ".php", language: "php", render: renderLaravel}
}

func renderLaravel(d transpiler.Dialect, app *App) string {
	var sb strings.Builder
	sb.WriteString("<?php\n")
	for _, m := range app.Models {
		fields := names(m.Fields, func(f vader.Param) string { return "'" + f.Name + "'" })
		sb.WriteString("\n// app/Models/" + m.Name + ".php\n")
		sb.WriteString("namespace App\\Models;\n\nuse Illuminate\\Database\\Eloquent\\Model;\n\n")
		sb.WriteString("class " + m.Name + " extends Model\n{\n")
		sb.WriteString("    protected $fillable = [" + strings.Join(fields, ", ") + "];\n}\n")
	}
	if len(app.Routes) > 0 {
		sb.WriteString("\n// routes/api.php\nuse Illuminate\\Http\\Request;\nuse Illuminate\\Support\\Facades\\Route;\n")
	}
	for _, r := range app.Routes {
		params := names(r.Params, func(p string) string { return "$" + p })
		if hasBody(r) {
			params = append([]string{"Request $request"}, params...)
		}
		fmt.Fprintf(&sb, "\nRoute::%s('%s', function (%s) {\n", strings.ToLower(r.Method), r.Path, strings.Join(params, ", "))
		if hasBody(r) {
			sb.WriteString("    $datos = $request->all();\n")
		}
		body := transpiler.Fragment(d, r.Body, 1, routeLocals(r)...)
		body = wrapReturns(body, func(v string) string { return "return response()->json(" + v + ");" })
		writeLines(&sb, emptyBody(body, "    return response()->json([]);"))
		sb.WriteString("});\n")
	}
	return sb.String()
}

// NewSpringBoot creates the Spring Boot transpiler: JPA entities and a @RestController.
func NewSpringBoot() transpiler.Transpiler {
	return &backend{name: "springboot", ext: ".java", language: "java", render: renderSpring}
}

func renderSpring(d transpiler.Dialect, app *App) string {
	var sb strings.Builder
	sb.WriteString("import java.util.*;\n\n")
	if len(app.Models) > 0 {
		sb.WriteString("import jakarta.persistence.*;\n")
	}
	sb.WriteString("import org.springframework.web.bind.annotation.*;\n")
	for _, m := range app.Models {
		sb.WriteString("\n@Entity\nclass " + m.Name + " {\n")
		sb.WriteString("    @Id\n    @GeneratedValue\n    private Long id;\n")
		for _, f := range m.Fields {
			sb.WriteString("    private " + d.Rules().MapType(f.Type, "String") + " " + f.Name + ";\n")
		}
		sb.WriteString("}\n")
	}
	sb.WriteString("\n@RestController\n@RequestMapping(\"/\")\nclass ApiController {\n")
	for i, r := range app.Routes {
		if i > 0 {
			sb.WriteString("\n")
		}
		method := strings.ToUpper(r.Method[:1]) + strings.ToLower(r.Method[1:])
		fmt.Fprintf(&sb, "    @%sMapping(%q)\n", method, r.Path)
		params := names(r.Params, func(p string) string { return "@PathVariable String " + p })
		if hasBody(r) {
			params = append(params, "@RequestBody Map<String, Object> datos")
		}
		sb.WriteString("    public Object " + handlerName(r) + "(" + strings.Join(params, ", ") + ") {\n")
		body := transpiler.Fragment(d, r.Body, 2, routeLocals(r)...)
		writeLines(&sb, emptyBody(body, "        return Map.of();"))
		sb.WriteString("    }\n")
	}
	sb.WriteString("}\n")
	return sb.String()
}

// NewExpress creates the Express transpiler.
func NewExpress() transpiler.Transpiler {
	return &backend{name: "express", ext: ".js", language: "javascript", render: renderExpress}
}

func renderExpress(d transpiler.Dialect, app *App) string {
	var sb strings.Builder
	sb.WriteString("const express = require(\"express\");\n\nconst app = express();\napp.use(express.json());\n")
	for _, m := range app.Models {
		fields := names(m.Fields, func(f vader.Param) string { return f.Name })
		sb.WriteString("\nclass " + m.Name + " {\n")
		sb.WriteString("  constructor({ " + strings.Join(fields, ", ") + " } = {}) {\n")
		for _, f := range fields {
			sb.WriteString("    this." + f + " = " + f + ";\n")
		}
		sb.WriteString("  }\n}\n")
	}
	for _, r := range app.Routes {
		fmt.Fprintf(&sb, "\napp.%s(%q, (req, res) => {\n", strings.ToLower(r.Method), routePath(r, ":%s"))
		if len(r.Params) > 0 {
			sb.WriteString("  const { " + strings.Join(r.Params, ", ") + " } = req.params;\n")
		}
		if hasBody(r) {
			sb.WriteString("  const datos = req.body;\n")
		}
		body := transpiler.Fragment(d, r.Body, 1, routeLocals(r)...)
		body = wrapReturns(body, func(v string) string { return "return res.json(" + v + ");" })
		writeLines(&sb, emptyBody(body, "  return res.json({});"))
		sb.WriteString("});\n")
	}
	sb.WriteString("\nconst puerto = process.env.PORT || 3000;\napp.listen(puerto, () => console.log(`Servidor en http://localhost:${puerto}`));\n")
	return sb.String()
}
