package project

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"os"
)

// HashSource hashes a source file together with the target it is built for, so
// that switching targets invalidates the previous build.
func HashSource(path, target string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return hashBytes(normalizeLineEndings(content), target), nil
}

func hashBytes(content []byte, target string) string {
	h := sha256.New()
	h.Write([]byte(target))
	h.Write([]byte{0})
	h.Write(content)
	return "h1:" + base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// normalizeLineEndings converts CRLF and lone CR to LF for consistent hashing.
func normalizeLineEndings(data []byte) []byte {
	result := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		if data[i] == '\r' {
			if i+1 < len(data) && data[i+1] == '\n' {
				continue
			}
			result = append(result, '\n')
			continue
		}
		result = append(result, data[i])
	}
	return result
}
