package options

import "strings"

// maxListItem is the longest part a comma separated prompt may contain
// before it is treated as a sentence for the provider.
const maxListItem = 50

// IsCommaList reports whether the prompt is already a list of options
// rather than a description of one.
func IsCommaList(input string) bool {
	if !strings.Contains(input, ",") {
		return false
	}
	parts := strings.Split(input, ",")
	if len(parts) < 2 {
		return false
	}
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if len(trimmed) > maxListItem || strings.Contains(trimmed, ".") {
			return false
		}
	}
	return true
}

// ParseCommaList splits on commas, trims each part and drops empties.
func ParseCommaList(input string) []string {
	var out []string
	for _, part := range strings.Split(input, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

var preambles = []string{
	"Based on my search results, ",
	"Based on my search, ",
	"Based on the search results, ",
	"I found ",
	"Here is the list: ",
	"Here are the items: ",
	"The list is: ",
}

// CleanResponse strips the chatter models put around a comma separated
// answer so that ParseCommaList sees only the list.
func CleanResponse(text string) string {
	cleaned := text
	for _, p := range preambles {
		cleaned = strings.Replace(cleaned, p, "", 1)
	}

	if idx := strings.LastIndex(cleaned, ":\n"); idx != -1 {
		cleaned = cleaned[idx+2:]
	} else if idx := strings.LastIndex(cleaned, ": "); idx != -1 {
		cleaned = cleaned[idx+2:]
	}
	cleaned = strings.TrimSpace(cleaned)

	// A sentence before the list: keep from the first line that looks like
	// list items.
	firstComma := strings.Index(cleaned, ",")
	firstPeriod := strings.Index(cleaned, ".")
	if firstPeriod != -1 && firstComma != -1 && firstPeriod < firstComma {
		lines := strings.Split(cleaned, "\n")
		for i, line := range lines {
			if strings.Contains(line, ",") && !strings.Contains(line, ". ") {
				cleaned = strings.Join(lines[i:], "\n")
				break
			}
		}
	}
	return cleaned
}
