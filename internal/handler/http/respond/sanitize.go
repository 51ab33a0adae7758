package respond

import "regexp"

// Patterns for secrets that must never show up in logs: model API keys,
// connection-string passwords, and webhook URLs with embedded tokens.
var sanitizePatterns = []*regexp.Regexp{
	regexp.MustCompile(`sk-ant-[A-Za-z0-9\-_]+`),
	regexp.MustCompile(`sk-[A-Za-z0-9\-_]{20,}`),
	regexp.MustCompile(`(postgres(?:ql)?://[^:/\s]+:)[^@\s]+(@)`),
	regexp.MustCompile(`(password=)\S+`),
	regexp.MustCompile(`https://hooks\.slack\.com/services/\S+`),
}

var sanitizeReplacements = []string{
	"sk-ant-***",
	"sk-***",
	"${1}***${2}",
	"${1}***",
	"https://hooks.slack.com/services/***",
}

// Sanitize masks credentials embedded in an error message before logging.
func Sanitize(msg string) string {
	for i, re := range sanitizePatterns {
		msg = re.ReplaceAllString(msg, sanitizeReplacements[i])
	}
	return msg
}
