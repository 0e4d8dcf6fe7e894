package dialogue

import (
	"fmt"
	"strings"
)

// The candidate only ever hears these fixed interviewer-voiced strings
// and the generator's output; raw errors and JSON stay internal.

const consentReprompt = "Understood. Please answer yes or no - may I record this conversation for evaluation?"

const followUpRequest = "Could you provide a specific example or walk me through a recent situation where you used that skill?"

const closingStatement = "Thank you. That concludes our questions. Briefly: we appreciate your time - we will review and be in touch about next steps. Goodbye."

func greeting(role string) string {
	return fmt.Sprintf(
		"Hello - this is the interview for the position: %s. "+
			"I will ask a few questions about your experience. "+
			"Is it okay if I record this interview for evaluation purposes? A simple yes or no will do.",
		role)
}

// questionInstruction directs the generator to produce exactly one
// conversational, open-ended question targeting the session's skills.
func questionInstruction(role string, skills []string) string {
	target := "general experience"
	if len(skills) > 0 {
		target = strings.Join(skills, ", ")
	}
	return fmt.Sprintf(
		"As an interviewer for the role '%s', ask exactly one clear, conversational, open-ended question "+
			"that targets these skills: %s. "+
			"Keep the question natural and request a specific example or past experience.",
		role, target)
}
