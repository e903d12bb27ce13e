package advisory

import "fmt"

// Kind selects which canned prompt to send.
type Kind int

const (
	Quote Kind = iota
	PlanHour
)

// Title is the heading shown above the returned text.
func (k Kind) Title() string {
	switch k {
	case PlanHour:
		return "✨ Plan Your Next Hour"
	default:
		return "✨ Motivational Quote"
	}
}

// Prompt builds the prompt text. username may be empty.
func (k Kind) Prompt(username string) string {
	switch k {
	case PlanHour:
		if username == "" {
			username = "User"
		}
		return fmt.Sprintf("I am currently working. Help me plan my focus for the next hour. "+
			"Suggest 2-3 small, actionable tasks or focus areas. My username is %s.", username)
	default:
		return "Generate a short, inspiring motivational quote suitable for a workday. Make it concise and uplifting."
	}
}
