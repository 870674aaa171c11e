// Package envfile reads and writes dotenv-style files. The dialect is
// deliberately small: KEY=VALUE lines, #-comments, and one optional
// pair of surrounding quotes around a value. There is no escape
// processing and no multi-line support.
package envfile

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Variables holds the contents of an env file.
type Variables map[string]string

// Keys returns the variable names in ascending order.
func (v Variables) Keys() []string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Parse reads KEY=VALUE lines from r.
//
// Blank lines and #-comments are skipped. Lines without =, and lines
// whose key is empty after trimming, are dropped silently: env files in
// the wild accumulate junk, and a proposal must not fail because of it.
// The value is everything after the first =, trimmed, minus one pair of
// matching surrounding quotes. Later assignments to a key win. The
// input is read whole; there is no line-length limit.
func Parse(r io.Reader) (Variables, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading env data: %w", err)
	}

	vars := make(Variables)
	for _, raw := range strings.Split(string(data), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		vars[key] = unquote(strings.TrimSpace(value))
	}
	return vars, nil
}

// Load parses the env file at path.
func Load(path string) (Variables, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// unquote strips one pair of matching surrounding quotes. Mismatched
// and lone quotes stay put; inner quotes are never touched.
func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

// Format renders vars in the dialect Parse reads: one KEY=VALUE line
// per variable, keys sorted, newline after every line. Values that
// contain a space, quote, or # are wrapped in double quotes. Embedded
// quotes are written verbatim, not escaped.
func Format(vars Variables) string {
	var b strings.Builder
	for _, key := range vars.Keys() {
		value := vars[key]
		if strings.ContainsAny(value, ` "'#`) {
			value = `"` + value + `"`
		}
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(value)
		b.WriteByte('\n')
	}
	return b.String()
}

// Save writes vars to path, readable only by the owner.
func Save(path string, vars Variables) error {
	return os.WriteFile(path, []byte(Format(vars)), 0600)
}
