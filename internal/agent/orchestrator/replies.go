package orchestrator

import (
	"fmt"

	"github.com/autostream-agent/server/internal/agent/model"
)

// Canned replies for every deterministic branch. Only inquiry answers come
// from the generation engine; everything else must stay predictable so the
// slot-filling flow reads the same across providers.

func (o *Orchestrator) welcomeReply() string {
	return fmt.Sprintf(
		"Hi there! I'm here to help you learn about %s, our %s. What would you like to know?",
		o.business.Name, o.business.Tagline,
	)
}

func (o *Orchestrator) clarifyReply() string {
	return fmt.Sprintf(
		"I'm not sure I follow. You can ask me about %s's features, pricing, or policies, or tell me if you'd like to get started.",
		o.business.Name,
	)
}

func (o *Orchestrator) askNameReply() string {
	return "That's great! I'd love to help you get started with the Pro plan. Can I get your name first?"
}

func (o *Orchestrator) askEmailReply(name string) string {
	return fmt.Sprintf("Thanks, %s! What's your email address?", name)
}

func (o *Orchestrator) askPlatformReply() string {
	return "Great! Which platform do you primarily create content for? (e.g., YouTube, Instagram, TikTok)"
}

func (o *Orchestrator) confirmationReply(lead model.Lead) string {
	return fmt.Sprintf(
		"Perfect! I've got you all set up, %s. You'll receive an email at %s with instructions to activate your Pro plan. Welcome to %s!",
		lead.Name, lead.Email, o.business.Name,
	)
}

func (o *Orchestrator) captureFailedReply() string {
	return "I'm sorry, there was an issue capturing your information. Could you confirm which platform you create content for so I can try again?"
}

func (o *Orchestrator) abandonReply() string {
	return fmt.Sprintf(
		"No worries, let's pause the signup for now. Feel free to ask me anything about %s whenever you're ready.",
		o.business.Name,
	)
}

func (o *Orchestrator) generationFallbackReply() string {
	return "I apologize, I'm having trouble accessing information right now. Could you please try again?"
}

func (o *Orchestrator) repromptReply(state model.SessionState) string {
	switch state {
	case model.StateAwaitingName:
		return "Sorry, I didn't catch that. Could you please tell me your name?"
	case model.StateAwaitingEmail:
		return "That doesn't look like a valid email address. Could you share it again (e.g., you@example.com)?"
	case model.StateAwaitingPlatform:
		return "Which platform do you create content for? For example YouTube, Instagram, or TikTok."
	}
	return o.clarifyReply()
}
