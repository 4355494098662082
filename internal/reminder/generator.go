package reminder

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"

	"MedicineReminder/internal/config"
)

const (
	systemRole          = "You are a compassionate healthcare companion that provides personalized, encouraging messages."
	generationMaxTokens = 100
	generationTemp      = 0.7
)

// fallbackMessages is the pool used when text generation is unavailable.
var fallbackMessages = []string{
	"Every day is a new beginning. Take your medicines and embrace the day with hope!",
	"Your health is your wealth. Keep going strong!",
	"Small steps lead to big changes. You're doing great!",
	"Taking care of yourself is an act of self-love. Keep it up!",
	"You're making positive choices for your health. That's something to be proud of!",
	"Each pill is a step towards better health. You've got this!",
	"Your dedication to your health is inspiring. Keep shining!",
	"Today is going to be amazing, just like you!",
	"Remember: you are stronger than you think!",
	"Your well-being matters. Take good care of yourself today!",
}

// GeneratorContext carries the optional personalization for one recipient.
type GeneratorContext struct {
	RecipientLabel      string // Display label derived from the address
	PrimaryMedicineName string // First medicine in the recipient's group
}

// ContentGenerator produces the positive message for a reminder email. Any
// failure of the completion API is absorbed into a fallback, so Generate
// always returns a usable non-empty string.
type ContentGenerator struct {
	completer config.Completer
}

func NewContentGenerator(completer config.Completer) *ContentGenerator {
	return &ContentGenerator{completer: completer}
}

func buildPrompt(gc GeneratorContext) string {
	prompt := "Generate a short, uplifting message (max 2 sentences) for someone taking their daily medicine. " +
		"The message should be encouraging and focus on health, well-being, and personal growth. "
	if gc.RecipientLabel != "" && gc.PrimaryMedicineName != "" {
		prompt += fmt.Sprintf("This message is for %s who is taking %s. ", gc.RecipientLabel, gc.PrimaryMedicineName)
	}
	prompt += "Make it personal, warm, and motivating without being overly cheesy."
	return prompt
}

func fallbackMessage(gc GeneratorContext) string {
	if gc.RecipientLabel != "" && gc.PrimaryMedicineName != "" {
		return fmt.Sprintf("Keep up the great work with your %s, %s!", gc.PrimaryMedicineName, gc.RecipientLabel)
	}
	return fallbackMessages[rand.Intn(len(fallbackMessages))]
}

// Generate returns a positive message for the given context.
func (g *ContentGenerator) Generate(ctx context.Context, gc GeneratorContext) string {
	message, err := g.completer.Complete(ctx, systemRole, buildPrompt(gc), generationMaxTokens, generationTemp)
	if err != nil {
		log.Printf("[WARN] Message generation failed, using fallback: %v", err)
		return fallbackMessage(gc)
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return fallbackMessage(gc)
	}
	return message
}
