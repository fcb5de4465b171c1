package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	assert.IsType(t, &KeywordAssistant{}, New(""))
	assert.IsType(t, &HTTPAssistant{}, New("http://localhost:9/preguntar"))
}

func TestKeywordAssistant(t *testing.T) {
	a := NewKeywordAssistant()
	ctx := context.Background()

	tests := []struct {
		name     string
		question string
		code     string
		want     []string
	}{
		{
			name:     "keyword",
			question: "¿Qué hace MIENTRAS?",
			want:     []string{"mientras: bucle mientras se cumpla la condicion", "ejemplo: mientras x < 10"},
		},
		{
			name:     "accented keyword",
			question: "cómo declaro una función",
			want:     []string{"funcion: declara una funcion"},
		},
		{
			name:     "operator",
			question: "para que sirve longitud",
			want:     []string{"longitud equivale a len()"},
		},
		{
			name:     "overview",
			question: "hola",
			want:     []string{"Palabras clave de Vader:", "imprimir", "python, javascript"},
		},
		{
			name:     "translation",
			question: "como se ve en golang",
			code:     "imprimir \"hola\"\n",
			want:     []string{"En go:\n", "func main() {"},
		},
		{
			name:     "review",
			question: "revisar",
			code:     "imprimir 1\nesto no es vader\n",
			want:     []string{"línea 2 no reconocida: esto no es vader"},
		},
		{
			name:     "framework",
			question: "que framework uso",
			code:     "componente A\n  estado x = 0\nfin\n",
			want:     []string{"El código parece usar react."},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := a.Ask(ctx, tt.question, tt.code)
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, got, w)
			}
		})
	}
}

func TestKeywordAssistantCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewKeywordAssistant().Ask(ctx, "si", "")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHTTPAssistant(t *testing.T) {
	var got askRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(askResponse{Answer: "usa imprimir"})
	}))
	defer srv.Close()

	answer, err := NewHTTPAssistant(srv.URL).Ask(context.Background(), "¿cómo imprimo?", "x = 1")
	require.NoError(t, err)
	assert.Equal(t, "usa imprimir", answer)
	assert.Equal(t, askRequest{Question: "¿cómo imprimo?", Code: "x = 1"}, got)
}

func TestHTTPAssistantErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/json" {
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(askResponse{Error: "modelo caido"})
			return
		}
		http.Error(w, "puerta de enlace", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewHTTPAssistant(srv.URL+"/json").Ask(context.Background(), "q", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "modelo caido")

	_, err = NewHTTPAssistant(srv.URL+"/texto").Ask(context.Background(), "q", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
