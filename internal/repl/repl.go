// Package repl is the interactive terminal session: Vader lines are buffered
// and colon commands transpile, run, save or ask about the buffer.
package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"vaderlang/vader/internal/assistant"
	"vaderlang/vader/internal/frameworks"
	"vaderlang/vader/internal/preview"
	"vaderlang/vader/internal/targets"
	"vaderlang/vader/internal/vader"
	"vaderlang/vader/vadererr"
)

const (
	prompt     = "vader> "
	contPrompt = "...    "
)

// Options configures a session.
type Options struct {
	Target string
	// Runner executes :ejecutar; nil disables it.
	Runner    *preview.Runner
	Assistant assistant.Assistant
}

// Session is one interactive session over a reader and a writer.
type Session struct {
	in        io.Reader
	out       io.Writer
	target    string
	lines     []string
	runner    *preview.Runner
	assistant assistant.Assistant
	commands  map[string]command
}

type command struct {
	usage string
	help  string
	run   func(ctx context.Context, arg string) (quit bool, err error)
}

// New creates a session. The target defaults to python.
func New(in io.Reader, out io.Writer, opts Options) *Session {
	s := &Session{
		in:        in,
		out:       out,
		target:    opts.Target,
		runner:    opts.Runner,
		assistant: opts.Assistant,
	}
	if s.target == "" {
		s.target = "python"
	}
	if s.assistant == nil {
		s.assistant = assistant.NewKeywordAssistant()
	}
	s.commands = map[string]command{
		"target":    {":target [nombre]", "muestra o cambia el destino", s.cmdTarget},
		"mostrar":   {":mostrar", "muestra la traducción del código", s.cmdShow},
		"ejecutar":  {":ejecutar", "ejecuta la traducción", s.cmdRun},
		"limpiar":   {":limpiar", "borra el código", s.cmdClear},
		"ver":       {":ver", "lista el código con números de línea", s.cmdList},
		"preguntar": {":preguntar <pregunta>", "consulta al asistente", s.cmdAsk},
		"guardar":   {":guardar <archivo>", "guarda el código", s.cmdSave},
		"abrir":     {":abrir <archivo>", "carga un archivo", s.cmdOpen},
		"detectar":  {":detectar", "detecta el framework del código", s.cmdDetect},
		"ayuda":     {":ayuda", "muestra esta ayuda", s.cmdHelp},
		"salir":     {":salir", "termina la sesión", func(context.Context, string) (bool, error) { return true, nil }},
	}
	return s
}

// Target returns the current target name.
func (s *Session) Target() string { return s.target }

// Source returns the buffered code.
func (s *Session) Source() string {
	if len(s.lines) == 0 {
		return ""
	}
	return strings.Join(s.lines, "\n") + "\n"
}

// Run reads input until :salir, end of input or cancellation.
func (s *Session) Run(ctx context.Context) error {
	fmt.Fprintf(s.out, "Vader (%s). Escribe :ayuda para ver los comandos.\n", s.target)
	scanner := bufio.NewScanner(s.in)
	for {
		if depth(s.lines) > 0 {
			fmt.Fprint(s.out, contPrompt)
		} else {
			fmt.Fprint(s.out, prompt)
		}
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return scanner.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		quit := s.Eval(ctx, scanner.Text())
		if quit {
			return nil
		}
	}
}

// Eval handles one input line and reports whether the session should end.
func (s *Session) Eval(ctx context.Context, line string) bool {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, ":") {
		s.lines = append(s.lines, strings.TrimRight(line, "\r"))
		return false
	}
	name, arg, _ := strings.Cut(trimmed[1:], " ")
	cmd, ok := s.commands[strings.ToLower(name)]
	if !ok {
		fmt.Fprintf(s.out, "comando desconocido: :%s (usa :ayuda)\n", name)
		return false
	}
	quit, err := cmd.run(ctx, strings.TrimSpace(arg))
	if err != nil {
		fmt.Fprintf(s.out, "error: %v\n", err)
	}
	return quit
}

// depth counts the blocks still open in the buffered lines.
func depth(lines []string) int {
	n := 0
	for _, st := range vader.Scan(strings.Join(lines, "\n")) {
		if st.Synthetic {
			continue
		}
		switch {
		case st.Kind.OpensBlock():
			n++
		case st.Kind == vader.KindEnd && st.Closes != vader.KindUnknown:
			n--
		}
	}
	return max(n, 0)
}

func (s *Session) cmdTarget(_ context.Context, arg string) (bool, error) {
	if arg == "" {
		fmt.Fprintf(s.out, "destino: %s\n", s.target)
		return false, nil
	}
	if t, err := targets.Lookup(arg); err == nil {
		s.target = t.Name()
	} else if info, ferr := frameworks.Global.Lookup(arg); ferr == nil {
		s.target = info.Name
	} else {
		return false, err
	}
	fmt.Fprintf(s.out, "destino: %s\n", s.target)
	return false, nil
}

func (s *Session) cmdShow(context.Context, string) (bool, error) {
	_, out, err := frameworks.TranspileAny(s.target, s.Source())
	if err != nil {
		return false, err
	}
	fmt.Fprint(s.out, out)
	if !strings.HasSuffix(out, "\n") {
		fmt.Fprintln(s.out)
	}
	return false, nil
}

func (s *Session) cmdRun(ctx context.Context, _ string) (bool, error) {
	if s.runner == nil {
		return false, errors.New("la ejecución no está disponible")
	}
	res, err := s.runner.RunSource(ctx, s.target, s.Source())
	fmt.Fprint(s.out, res.Output)
	if res.Output != "" && !strings.HasSuffix(res.Output, "\n") {
		fmt.Fprintln(s.out)
	}
	var runErr *vadererr.RunError
	if errors.As(err, &runErr) {
		return false, fmt.Errorf("el programa terminó con código %d", runErr.ExitCode)
	}
	return false, err
}

func (s *Session) cmdClear(context.Context, string) (bool, error) {
	s.lines = nil
	fmt.Fprintln(s.out, "código borrado")
	return false, nil
}

func (s *Session) cmdList(context.Context, string) (bool, error) {
	for i, l := range s.lines {
		fmt.Fprintf(s.out, "%3d  %s\n", i+1, l)
	}
	return false, nil
}

func (s *Session) cmdAsk(ctx context.Context, arg string) (bool, error) {
	if arg == "" {
		return false, errors.New("falta la pregunta")
	}
	answer, err := s.assistant.Ask(ctx, arg, s.Source())
	if err != nil {
		return false, err
	}
	fmt.Fprintln(s.out, answer)
	return false, nil
}

func (s *Session) cmdSave(_ context.Context, arg string) (bool, error) {
	if arg == "" {
		return false, errors.New("falta el nombre del archivo")
	}
	if err := os.WriteFile(arg, []byte(s.Source()), 0o644); err != nil {
		return false, err
	}
	fmt.Fprintf(s.out, "guardado en %s\n", arg)
	return false, nil
}

func (s *Session) cmdOpen(_ context.Context, arg string) (bool, error) {
	if arg == "" {
		return false, errors.New("falta el nombre del archivo")
	}
	data, err := os.ReadFile(arg)
	if err != nil {
		return false, err
	}
	s.lines = nil
	for _, l := range vader.SplitLines(string(data)) {
		s.lines = append(s.lines, strings.Repeat(" ", l.Indent)+l.Text)
	}
	fmt.Fprintf(s.out, "%d líneas cargadas de %s\n", len(s.lines), arg)
	return false, nil
}

func (s *Session) cmdDetect(context.Context, string) (bool, error) {
	d, err := frameworks.Detect(s.Source())
	if err != nil {
		return false, err
	}
	fmt.Fprintf(s.out, "framework: %s\n", d.Framework)
	return false, nil
}

func (s *Session) cmdHelp(context.Context, string) (bool, error) {
	names := make([]string, 0, len(s.commands))
	for name := range s.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		c := s.commands[name]
		fmt.Fprintf(s.out, "  %-24s %s\n", c.usage, c.help)
	}
	return false, nil
}
