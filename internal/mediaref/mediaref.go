// Package mediaref extracts attachment filenames from note field text.
package mediaref

import (
	"regexp"
	"strings"
)

// Attachment markup recognised in field text: [sound:...] markers and the
// src attribute of img tags, quoted or bare.
var (
	soundPattern = regexp.MustCompile(`\[sound:([^\[\]]+)\]`)
	imagePattern = regexp.MustCompile(`(?i)<img[^>]*\ssrc=(?:"([^"]+)"|'([^']+)'|([^\s'">]+))`)
)

// References returns the unique filenames referenced by the given fields,
// in first-seen order.
func References(fields []string) []string {
	seen := make(map[string]struct{})
	var names []string

	add := func(name string) {
		name = strings.TrimSpace(name)
		if name == "" {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	for _, field := range fields {
		for _, match := range soundPattern.FindAllStringSubmatch(field, -1) {
			add(match[1])
		}
		for _, match := range imagePattern.FindAllStringSubmatch(field, -1) {
			for _, group := range match[1:] {
				if group != "" {
					add(group)
				}
			}
		}
	}
	return names
}

// Replace rewrites every occurrence of oldName in every field with newName
// and returns the rewritten sequence. The input is not mutated.
func Replace(fields []string, oldName, newName string) []string {
	out := make([]string, len(fields))
	for i, field := range fields {
		out[i] = strings.ReplaceAll(field, oldName, newName)
	}
	return out
}
