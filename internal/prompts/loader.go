// Package prompts embeds the prompt templates sent to the extraction model.
// Each JSON file maps template names to text carrying {{.Key}} placeholders
// (extraction.json holds the candidate-record prompts); files are parsed
// once and served from a cache.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
)

//go:embed *.json
var templateFS embed.FS

var (
	mu    sync.RWMutex
	files = make(map[string]map[string]string)
)

// Get returns the template named key from the given embedded file, e.g.
// Get("extraction.json", "extract-candidate-record").
func Get(filename, key string) (string, error) {
	templates, err := load(filename)
	if err != nil {
		return "", err
	}

	template, ok := templates[key]
	if !ok {
		return "", fmt.Errorf("no template %q in prompt file %s", key, filename)
	}
	return template, nil
}

// MustGet is Get for templates the pipeline cannot run without; a missing
// file or key is a programming error and panics.
func MustGet(filename, key string) string {
	template, err := Get(filename, key)
	if err != nil {
		panic(fmt.Sprintf("required prompt template missing: %v", err))
	}
	return template
}

// Format substitutes {{.Key}} placeholders with the given values. Keys
// absent from data leave their placeholders in place.
func Format(template string, data map[string]string) string {
	if len(data) == 0 {
		return template
	}
	pairs := make([]string, 0, len(data)*2)
	for key, value := range data {
		pairs = append(pairs, "{{."+key+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// List returns the template names in a file, sorted.
func List(filename string) ([]string, error) {
	templates, err := load(filename)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(templates))
	for key := range templates {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

// ClearCache drops all parsed files so the next access re-reads the embed.
func ClearCache() {
	mu.Lock()
	files = make(map[string]map[string]string)
	mu.Unlock()
}

func load(filename string) (map[string]string, error) {
	mu.RLock()
	templates, ok := files[filename]
	mu.RUnlock()
	if ok {
		return templates, nil
	}

	data, err := templateFS.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("unknown prompt file %s: %w", filename, err)
	}
	if err := json.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("malformed prompt file %s: %w", filename, err)
	}

	mu.Lock()
	// Another goroutine may have parsed the same file in the meantime; keep
	// the first result so callers always share one map.
	if cached, ok := files[filename]; ok {
		templates = cached
	} else {
		files[filename] = templates
	}
	mu.Unlock()

	return templates, nil
}
