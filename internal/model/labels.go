package model

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	splitWordsPattern = regexp.MustCompile(`[_\-\s]+`)
	slugPattern       = regexp.MustCompile(`[^a-z0-9]+`)
)

// DefaultLabeler converts a field name into a human-friendly label. It splits
// on underscores/dashes and camelCase boundaries, so "text_field_2" becomes
// "Text Field 2".
func DefaultLabeler(name string) string {
	if name == "" {
		return ""
	}

	words := splitWordsPattern.Split(name, -1)
	var segments []string
	for _, word := range words {
		if word == "" {
			continue
		}
		segments = append(segments, titleCase(splitCamel(word)))
	}
	return strings.TrimSpace(strings.Join(segments, " "))
}

// Slug lowercases value and collapses every run of non-alphanumerics into a
// single underscore.
func Slug(value string) string {
	lowered := strings.ToLower(strings.TrimSpace(value))
	return strings.Trim(slugPattern.ReplaceAllString(lowered, "_"), "_")
}

// ValueKey derives the namespaced key used for report values, sample data and
// payload schemas: "{slug(sectionTitle)}_{fieldName}". Sections without a
// usable title fall back to "section_{index+1}".
func ValueKey(sectionIndex int, sectionTitle, fieldName string) string {
	prefix := Slug(sectionTitle)
	if prefix == "" {
		prefix = "section_" + strconv.Itoa(sectionIndex+1)
	}
	return prefix + "_" + fieldName
}

// ValueKeys assigns every field of t its value key. Distinct section/field
// pairs can slug to the same ValueKey ("a"/"b_c" and "a_b"/"c"); the first
// field in walk order keeps the plain key and later ones get the smallest
// free "_2", "_3", ... suffix, so every field owns exactly one key.
func ValueKeys(t Template) map[FieldRef]string {
	keys := make(map[FieldRef]string, t.FieldCount())
	taken := make(map[string]struct{}, t.FieldCount())
	var clashes []FieldRef
	t.Walk(func(ref FieldRef, section Section, field Field) {
		key := ValueKey(ref.Section, section.Title, field.Name)
		if _, dup := taken[key]; dup {
			keys[ref] = key
			clashes = append(clashes, ref)
			return
		}
		taken[key] = struct{}{}
		keys[ref] = key
	})
	for _, ref := range clashes {
		base := keys[ref]
		for n := 2; ; n++ {
			candidate := base + "_" + strconv.Itoa(n)
			if _, used := taken[candidate]; !used {
				taken[candidate] = struct{}{}
				keys[ref] = candidate
				break
			}
		}
	}
	return keys
}

func splitCamel(input string) string {
	var out strings.Builder
	for i, r := range input {
		if i > 0 && isBoundary(input, i, r) {
			out.WriteRune(' ')
		}
		out.WriteRune(r)
	}
	return out.String()
}

func isBoundary(input string, index int, r rune) bool {
	prev, _ := utf8.DecodeLastRuneInString(input[:index])
	return (isLower(prev) && isUpper(r)) || (isLetter(prev) && isDigit(r)) || (isDigit(prev) && isLetter(r))
}

func isUpper(r rune) bool  { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool  { return r >= 'a' && r <= 'z' }
func isDigit(r rune) bool  { return r >= '0' && r <= '9' }
func isLetter(r rune) bool { return isUpper(r) || isLower(r) }

func titleCase(word string) string {
	if word == "" {
		return ""
	}
	lower := strings.ToLower(word)
	first, size := utf8.DecodeRuneInString(lower)
	return string(unicode.ToUpper(first)) + lower[size:]
}
