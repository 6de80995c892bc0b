package service

import "fmt"

type Action string

const (
	ActionImprove   Action = "improve"
	ActionExpand    Action = "expand"
	ActionSummarize Action = "summarize"
)

const DefaultTone = "professional"

func knownAction(a Action) bool {
	switch a {
	case ActionImprove, ActionExpand, ActionSummarize:
		return true
	}
	return false
}

// promptsFor returns the instruction template and user message for one
// assistance action.
func promptsFor(action Action, tone, content string) (system string, user string) {
	switch action {
	case ActionImprove:
		system = fmt.Sprintf("You are a professional writing editor. Improve the given text by fixing grammar, enhancing clarity, and making it more engaging. Maintain the original meaning and %s tone.", tone)
		user = fmt.Sprintf("Please improve this text:\n\n%s", content)
	case ActionExpand:
		system = fmt.Sprintf("You are a creative writing assistant. Expand the given text by adding more details, examples, and depth while maintaining a %s tone.", tone)
		user = fmt.Sprintf("Please expand this text with more details:\n\n%s", content)
	case ActionSummarize:
		system = fmt.Sprintf("You are a skilled summarizer. Create a concise summary of the given text while preserving key points and maintaining a %s tone.", tone)
		user = fmt.Sprintf("Please summarize this text:\n\n%s", content)
	}
	return system, user
}
