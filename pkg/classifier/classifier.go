// Package classifier decides whether a chat message is within a model's
// declared domain. It is a fixed set of hand-written keyword heuristics, not
// an NLP classifier: the same (model, input, history) triple always yields the
// same verdict, and the trigger lists are order-sensitive by contract.
package classifier

import (
	"regexp"
	"strings"

	"github.com/dkovalev/modelmart/pkg/domain"
)

const contextWindow = 5

// Role patterns scanned over the model description. A matching role overrides
// category dispatch entirely, math first, then finance, then developer.
var (
	mathTeacherRoleRe = regexp.MustCompile(`math|algebra|geometry|calculus|probability|statistics|teacher`)
	financeRoleRe     = regexp.MustCompile(`finance|financial|budget|invest|investment|retire|mortgage|loan|savings|interest`)
	developerRoleRe   = regexp.MustCompile(`developer|programmer|coder|software engineer|coding assistant`)
)

// Math inputs qualify via topic words, everyday arithmetic verbs, or a digit
// adjacent to an operator ("2+3", "7 * 8").
var (
	mathTopicRe    = regexp.MustCompile(`\b(math|maths|algebra|geometry|calculus|probability|statistics|equation|equations|fraction|fractions|percentage|percent|integral|derivative|arithmetic|theorem)\b`)
	mathVerbRe     = regexp.MustCompile(`\b(sum|add|plus|minus|times|divide|divided|evaluate|solve|calculate|compute)\b`)
	mathOperatorRe = regexp.MustCompile(`\d\s*[+\-*/^=]|[+\-*/^=]\s*\d`)
)

// Finance sub-patterns. Checked against the current input only, never the
// conversation context: a finance model should not answer an off-topic message
// just because an earlier turn mentioned budgets.
var financeTopicRes = []*regexp.Regexp{
	regexp.MustCompile(`\b(budget|budgeting|save|saving|savings|expense|expenses|spending)\b`),
	regexp.MustCompile(`\b(invest|investing|investment|investments|portfolio|stock|stocks|bond|bonds|etf|fund|funds|dividend|dividends)\b`),
	regexp.MustCompile(`\b(retire|retirement|401k|401\(k\)|ira|roth|pension)\b`),
	regexp.MustCompile(`\b(loan|loans|mortgage|refinance|debt|credit|interest|apr)\b`),
	regexp.MustCompile(`\b(inflation|recession|market|markets|economy|economic|risk|diversify|diversification)\b`),
	regexp.MustCompile(`\b(tax|taxes|taxable|deduction|deductions|deductible|capital gains)\b`),
}

var developmentRes = []*regexp.Regexp{
	regexp.MustCompile(`\b(code|coding|program|programming|debug|debugging|bug|bugs|error|function|variable|compile|algorithm|api|refactor|script|class|method|library|framework|syntax|implement)\b`),
	regexp.MustCompile(`\b(javascript|typescript|python|java|golang|rust|ruby|php|sql|html|css|react|node|docker|git)\b`),
}

var textGenerationRes = []*regexp.Regexp{
	regexp.MustCompile(`\b(write|writing|written|draft|blog|essay|story|stories|poem|article|summary|summarize|summarise|paraphrase|rewrite|edit|proofread|caption|headline|letter|email|translate|compose)\b`),
}

var dataAnalysisRes = []*regexp.Regexp{
	regexp.MustCompile(`\b(data|dataset|datasets|csv|excel|spreadsheet|statistics|statistical|regression|correlate|correlation|visualize|visualise|visualization|chart|graph|plot|mean|median|average|analyze|analyse|analysis|trend|trends|forecast|predict)\b`),
}

var imageGenerationRes = []*regexp.Regexp{
	regexp.MustCompile(`\b(image|images|picture|pictures|photo|photos|draw|drawing|paint|painting|art|artistic|illustration|sketch|render|logo|portrait|landscape|style|generate|create|make)\b`),
}

var computerVisionRes = []*regexp.Regexp{
	regexp.MustCompile(`\b(detect|detection|recognize|recognise|recognition|classify|classification|segment|segmentation|object|objects|face|faces|ocr|bounding|label|labels|vision|identify|annotate)\b`),
}

var audioRes = []*regexp.Regexp{
	regexp.MustCompile(`\b(audio|voice|voices|speech|sound|sounds|speak|speaking|transcribe|transcript|transcription|podcast|music|song|accent|tone|pronounce|pronunciation|narrate|narration|dictate)\b`),
}

// maxShortPromptTokens is the Image Generation allowance for terse prompts:
// anything from one to six whitespace-separated tokens is taken as a prompt
// ("a flower"), whether or not it names an image word.
const maxShortPromptTokens = 6

// IsInDomain reports whether userInput is in scope for the model. Matching is
// case-insensitive over the current input and, for most rules, a combined
// context of the last few turns. Unknown categories default to accept.
func IsInDomain(model domain.Model, userInput string, recentTurns []domain.ChatMessage) bool {
	input := strings.ToLower(strings.TrimSpace(userInput))
	desc := strings.ToLower(model.Description)
	combined := combineContext(input, recentTurns)

	// Description roles outrank the declared category.
	if mathTeacherRoleRe.MatchString(desc) && model.Category != domain.CategoryDevelopment {
		return isMathTopic(input) || isMathTopic(combined)
	}
	if financeRoleRe.MatchString(desc) {
		return isFinanceTopic(input)
	}
	if developerRoleRe.MatchString(desc) {
		return matchAny(developmentRes, input, combined)
	}

	switch model.Category {
	case domain.CategoryDevelopment:
		return matchAny(developmentRes, input, combined)
	case domain.CategoryTextGeneration:
		return matchAny(textGenerationRes, input, combined)
	case domain.CategoryDataAnalysis:
		return matchAny(dataAnalysisRes, input, combined)
	case domain.CategoryImageGeneration:
		if matchAny(imageGenerationRes, input, combined) {
			return true
		}
		n := len(strings.Fields(input))
		return n >= 1 && n <= maxShortPromptTokens
	case domain.CategoryComputerVision:
		return matchAny(computerVisionRes, input, combined)
	case domain.CategoryAudio:
		return matchAny(audioRes, input, combined)
	default:
		return true
	}
}

// DomainLabel names the model's effective domain for refusal messages. It
// follows the same role precedence as IsInDomain but never influences the
// verdict itself.
func DomainLabel(model domain.Model) string {
	desc := strings.ToLower(model.Description)

	if mathTeacherRoleRe.MatchString(desc) && model.Category != domain.CategoryDevelopment {
		return "math questions and step-by-step problem solving"
	}
	if financeRoleRe.MatchString(desc) {
		return "personal finance and investing topics"
	}
	if developerRoleRe.MatchString(desc) {
		return "coding, debugging, and software topics"
	}

	switch model.Category {
	case domain.CategoryDevelopment:
		return "coding, debugging, and software topics"
	case domain.CategoryTextGeneration:
		return "writing and text generation tasks"
	case domain.CategoryImageGeneration:
		return "image prompts and visual descriptions"
	case domain.CategoryAudio:
		return "voice, speech, and audio topics"
	case domain.CategoryDataAnalysis:
		return "data analysis and statistics"
	case domain.CategoryComputerVision:
		return "image analysis and computer vision tasks"
	case domain.CategoryFinance:
		return "personal finance and investing topics"
	default:
		return "its trained specialty"
	}
}

func combineContext(loweredInput string, recentTurns []domain.ChatMessage) string {
	turns := recentTurns
	if len(turns) > contextWindow {
		turns = turns[len(turns)-contextWindow:]
	}

	parts := make([]string, 0, len(turns)+1)
	parts = append(parts, loweredInput)
	for _, t := range turns {
		parts = append(parts, strings.ToLower(t.Content))
	}
	return strings.Join(parts, "\n")
}

func isMathTopic(text string) bool {
	return mathTopicRe.MatchString(text) ||
		mathVerbRe.MatchString(text) ||
		mathOperatorRe.MatchString(text)
}

func isFinanceTopic(input string) bool {
	for _, re := range financeTopicRes {
		if re.MatchString(input) {
			return true
		}
	}
	return false
}

func matchAny(res []*regexp.Regexp, texts ...string) bool {
	for _, re := range res {
		for _, text := range texts {
			if re.MatchString(text) {
				return true
			}
		}
	}
	return false
}
