package prompt

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dkovalev/modelmart/pkg/domain"
)

// Descriptions are written in second person ("You are a helpful tutor"); the
// greeting speaks them in first person. Order matters: the multi-word forms
// must run before the bare "you"/"your" fallbacks.
var firstPersonRules = []struct {
	re          *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`(?i)\bYou are\b`), "I am"},
	{regexp.MustCompile(`(?i)\byou're\b`), "I'm"},
	{regexp.MustCompile(`(?i)\byou will\b`), "I will"},
	{regexp.MustCompile(`(?i)\byou can\b`), "I can"},
	{regexp.MustCompile(`(?i)\byou\b`), "I"},
	{regexp.MustCompile(`(?i)\byour\b`), "my"},
	{regexp.MustCompile(`(?i)\byours\b`), "mine"},
	{regexp.MustCompile(`(?i)\byourself\b`), "myself"},
}

var spacesRe = regexp.MustCompile(`\s+`)

// Greeting is the first assistant message shown when a conversation opens.
func Greeting(model domain.Model) string {
	return fmt.Sprintf("Hello! I'm %s. %s", model.Name, toFirstPerson(model.Description))
}

func toFirstPerson(text string) string {
	for _, rule := range firstPersonRules {
		text = rule.re.ReplaceAllString(text, rule.replacement)
	}
	return strings.TrimSpace(spacesRe.ReplaceAllString(text, " "))
}
