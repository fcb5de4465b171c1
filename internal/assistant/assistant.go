// Package assistant answers questions about Vader code, either offline from the
// keyword tables or through an external HTTP endpoint.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode"

	"vaderlang/vader/internal/frameworks"
	"vaderlang/vader/internal/targets"
	"vaderlang/vader/internal/vader"
)

// Assistant answers a question, optionally about a piece of Vader code.
type Assistant interface {
	Ask(ctx context.Context, question, code string) (string, error)
}

// New returns an HTTPAssistant for url, or a KeywordAssistant when url is empty.
func New(url string) Assistant {
	if url == "" {
		return NewKeywordAssistant()
	}
	return NewHTTPAssistant(url)
}

// KeywordAssistant answers from the keyword and operator tables. It also
// reviews code for unrecognized lines and shows translations on request.
type KeywordAssistant struct{}

// NewKeywordAssistant creates an offline assistant.
func NewKeywordAssistant() *KeywordAssistant { return &KeywordAssistant{} }

var fold = strings.NewReplacer("á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u")

func questionWords(q string) []string {
	return strings.FieldsFunc(fold.Replace(strings.ToLower(q)), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '#' && r != '_'
	})
}

// Ask implements Assistant.
func (a *KeywordAssistant) Ask(ctx context.Context, question, code string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	words := questionWords(question)
	var parts []string

	seen := map[string]bool{}
	for _, w := range words {
		if k, ok := vader.LookupKeyword(w); ok && !seen[k.Word] {
			seen[k.Word] = true
			parts = append(parts, fmt.Sprintf("%s: %s\n  ejemplo: %s", k.Word, k.Description, k.Syntax))
			continue
		}
		if meaning, ok := vader.Operators[w]; ok && len(w) > 2 && !seen[w] {
			seen[w] = true
			parts = append(parts, fmt.Sprintf("%s equivale a %s", w, meaning))
		}
	}

	if strings.TrimSpace(code) != "" {
		if t := mentionedTarget(words); t != "" {
			out, err := targets.Transpile(t, code)
			if err != nil {
				return "", err
			}
			parts = append(parts, "En "+t+":\n"+out)
		}
		if mentions(words, "framework", "marco") {
			if d, err := frameworks.Detect(code); err == nil {
				parts = append(parts, "El código parece usar "+d.Framework+".")
			} else {
				parts = append(parts, "No encuentro palabras clave de ningún framework.")
			}
		}
		if review := unknownLines(code); review != "" && (len(parts) == 0 || mentions(words, "error", "errores", "revisar", "revisa", "mal", "falla")) {
			parts = append(parts, review)
		}
	}

	if len(parts) == 0 {
		return overview(), nil
	}
	return strings.Join(parts, "\n\n"), nil
}

func mentions(words []string, any ...string) bool {
	for _, w := range words {
		for _, a := range any {
			if w == a {
				return true
			}
		}
	}
	return false
}

func mentionedTarget(words []string) string {
	for _, w := range words {
		if len(w) < 2 {
			continue
		}
		if t, err := targets.Lookup(w); err == nil {
			return t.Name()
		}
	}
	return ""
}

func unknownLines(code string) string {
	var sb strings.Builder
	for _, st := range vader.Scan(code) {
		if st.Kind == vader.KindUnknown && !st.Synthetic {
			fmt.Fprintf(&sb, "línea %d no reconocida: %s\n", st.Line.Num, st.Line.Text)
		}
	}
	if sb.Len() == 0 {
		return ""
	}
	return strings.TrimRight(sb.String(), "\n")
}

func overview() string {
	var sb strings.Builder
	sb.WriteString("Palabras clave de Vader:\n")
	for _, k := range vader.Keywords {
		fmt.Fprintf(&sb, "  %-10s %s\n", k.Word, k.Syntax)
	}
	sb.WriteString("Lenguajes: " + strings.Join(targets.Names(), ", "))
	return sb.String()
}

// HTTPAssistant forwards questions to an external service. The service receives
// {"question", "code"} and must reply with {"answer"}.
type HTTPAssistant struct {
	URL    string
	Client *http.Client
}

// NewHTTPAssistant creates an assistant backed by url.
func NewHTTPAssistant(url string) *HTTPAssistant {
	return &HTTPAssistant{URL: url, Client: &http.Client{Timeout: 30 * time.Second}}
}

type askRequest struct {
	Question string `json:"question"`
	Code     string `json:"code"`
}

type askResponse struct {
	Answer string `json:"answer"`
	Error  string `json:"error,omitempty"`
}

// Ask implements Assistant.
func (a *HTTPAssistant) Ask(ctx context.Context, question, code string) (string, error) {
	body, err := json.Marshal(askRequest{Question: question, Code: code})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.URL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("assistant request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := a.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("assistant request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("assistant response: %w", err)
	}
	var out askResponse
	if err := json.Unmarshal(data, &out); err != nil {
		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("assistant returned %s", resp.Status)
		}
		return "", fmt.Errorf("assistant response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if out.Error != "" {
			return "", fmt.Errorf("assistant returned %s: %s", resp.Status, out.Error)
		}
		return "", fmt.Errorf("assistant returned %s", resp.Status)
	}
	return out.Answer, nil
}

var (
	_ Assistant = (*KeywordAssistant)(nil)
	_ Assistant = (*HTTPAssistant)(nil)
)
