package domain

import "strings"

var tagReplacer = strings.NewReplacer(" ", "_", "-", "_")

// NormalizeTag folds a tag into the controlled vocabulary form:
// lowercase, trimmed, with spaces and hyphens collapsed to underscores.
// "Tree Nuts", "tree-nuts" and "tree_nuts" all become "tree_nuts".
func NormalizeTag(tag string) string {
	t := strings.ToLower(strings.TrimSpace(tag))
	t = tagReplacer.Replace(t)
	for strings.Contains(t, "__") {
		t = strings.ReplaceAll(t, "__", "_")
	}
	return strings.Trim(t, "_")
}

// NormalizeTags normalizes and deduplicates tags, keeping first-seen order.
// Empty tags are dropped. The result is never nil.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		n := NormalizeTag(tag)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// ContainsTag reports whether tags holds the normalized form of tag.
func ContainsTag(tags []string, tag string) bool {
	n := NormalizeTag(tag)
	for _, t := range tags {
		if t == n {
			return true
		}
	}
	return false
}

// DisplayTag renders a normalized tag for human-readable messages ("tree_nuts" -> "tree nuts").
func DisplayTag(tag string) string {
	return strings.ReplaceAll(tag, "_", " ")
}

// containsFold reports whether values holds s, ignoring case and surrounding space.
func containsFold(values []string, s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for _, v := range values {
		if strings.EqualFold(strings.TrimSpace(v), s) {
			return true
		}
	}
	return false
}
