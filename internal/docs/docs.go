// Package docs holds the embedded markdown help topics shown by `vlist docs` and the TUI help
// overlay.
package docs

import (
	"embed"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed content/*.md
var contentFS embed.FS

// Topics lists the available topic names, sorted.
func Topics() []string {
	entries, err := fs.Glob(contentFS, "content/*.md")
	if err != nil {
		return nil
	}
	topics := make([]string, 0, len(entries))
	for _, p := range entries {
		if t := strings.TrimSuffix(path.Base(p), ".md"); t != "" {
			topics = append(topics, t)
		}
	}
	sort.Strings(topics)
	return topics
}

// Get returns the markdown body of topic. Topic names are case-insensitive.
func Get(topic string) (string, bool) {
	topic = strings.ToLower(strings.TrimSpace(topic))
	if topic == "" || strings.ContainsAny(topic, `/\`) {
		return "", false
	}
	b, err := contentFS.ReadFile(path.Join("content", topic+".md"))
	if err != nil {
		return "", false
	}
	return string(b), true
}
