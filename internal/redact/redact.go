package redact

import (
	"regexp"
	"strings"
)

const placeholder = "[REDACTED]"

// secretPatterns are regex heuristics for tracker credentials.
var secretPatterns = []*regexp.Regexp{
	// GitLab personal, project, group and OAuth application tokens
	regexp.MustCompile(`gl(pat|oas|dt|rt|ft|cbt|ptt)-[A-Za-z0-9_-]{20,}`),
	// GitHub tokens
	regexp.MustCompile(`gh[pousr]_[A-Za-z0-9_]{36,}`),
	regexp.MustCompile(`github_pat_[A-Za-z0-9_]{22,}`),
	// Bearer tokens
	regexp.MustCompile(`(?i)Bearer\s+[A-Za-z0-9._~+/=-]{16,}`),
	// PRIVATE-TOKEN header echoed in a dump
	regexp.MustCompile(`(?i)private-token:\s*\S+`),
	// Tokens passed as query parameters
	regexp.MustCompile(`(?i)(private_token|access_token)=[^&\s"']+`),
}

// Secrets replaces detected credentials in text with [REDACTED].
func Secrets(text string) string {
	result := text
	for _, pat := range secretPatterns {
		result = pat.ReplaceAllString(result, placeholder)
	}
	return result
}

// Token replaces every occurrence of token in text, then applies Secrets.
// Tokens shorter than four characters are not replaced literally.
func Token(text, token string) string {
	if len(token) >= 4 {
		text = strings.ReplaceAll(text, token, placeholder)
	}
	return Secrets(text)
}

// Mask shows only whether a token is set, for display in configuration dumps.
func Mask(token string) string {
	if token == "" {
		return ""
	}
	return placeholder
}
