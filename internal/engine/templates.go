package engine

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const maxBulletRunes = 120

func (e Engine) welcomeReply() string {
	return fmt.Sprintf(
		"Hi, I'm %s.\n"+
			"Paste a text, ask a question, or describe a situation.\n"+
			"I can:\n"+
			"- summarize the key points,\n"+
			"- suggest a few concrete next steps,\n"+
			"- answer clearly and briefly.\n",
		e.cfg.AssistantName)
}

func (e Engine) answerReply(input string) string {
	var sb strings.Builder
	sb.WriteString("I read your question:\n")
	sb.WriteString("\"" + input + "\"\n\n")
	sb.WriteString("I can't look anything up, but I can help you structure the answer:\n\n")
	sb.WriteString("1. Clarify the end goal you are after.\n")
	sb.WriteString("2. Pin down which information you are actually missing.\n")
	sb.WriteString("3. List two or three small actions you can take today to get closer.\n\n")
	sb.WriteString("Add some context (work, study, side project) and I can make the steps more concrete.")
	return sb.String()
}

func (e Engine) summaryReply(input string) string {
	bullets := buildBullets(splitSentences(input), e.cfg.MaxBullets)

	var sb strings.Builder
	sb.WriteString("That was a long message. Here are the key points I picked up:\n\n")
	if len(bullets) == 0 {
		sb.WriteString("- I could not extract clear points, but there is clearly a lot going on.\n")
	} else {
		for i, bullet := range bullets {
			sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, bullet))
		}
	}
	sb.WriteString("\nFrom here, ask yourself:\n")
	sb.WriteString("- which point weighs on you the most right now;\n")
	sb.WriteString("- what small change you can make in the next 24 hours;\n")
	sb.WriteString("- what concrete help or information you still need.\n\n")
	sb.WriteString("Pick one of these points and send it back in a sentence or two for a more focused reply.")
	return sb.String()
}

func (e Engine) coachingReply(input string) string {
	var sb strings.Builder
	sb.WriteString("I read what you wrote:\n")
	sb.WriteString("\"" + input + "\"\n\n")

	if utf8.RuneCountInString(input) < e.cfg.ShortInputThreshold {
		sb.WriteString("That's brief, so tell me a bit more: what you expect as a result, ")
		sb.WriteString("or what is blocking you the most right now.")
		return sb.String()
	}

	sb.WriteString("I can help you take the next step. Try telling me one of these:\n")
	sb.WriteString("- what you expect as a result,\n")
	sb.WriteString("- what is blocking you the most right now,\n")
	sb.WriteString("- whether you prefer a list of practical steps or just a reflection.\n\n")
	sb.WriteString("Based on that, I can suggest something concrete to try straight away.")
	return sb.String()
}

// splitSentences splits text into rough sentences on ., ! and ?.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder
	for _, r := range text {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(current.String()); s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

// buildBullets keeps the first max sentences, each capped for display.
func buildBullets(sentences []string, max int) []string {
	if max <= 0 {
		return nil
	}
	if len(sentences) > max {
		sentences = sentences[:max]
	}
	bullets := make([]string, 0, len(sentences))
	for _, s := range sentences {
		bullets = append(bullets, truncateRunes(s, maxBulletRunes))
	}
	return bullets
}

// truncateRunes enforces a hard rune cap, cutting at a rune boundary and
// backing off to the nearest word boundary when one is close enough. The
// ellipsis counts toward the cap.
func truncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}

	runes := []rune(s)
	cut := runes[:max-1]
	if idx := lastSpaceIndex(cut); idx >= (max-1)/2 {
		cut = cut[:idx]
	}
	return strings.TrimRight(string(cut), " \t\n") + "…"
}

func lastSpaceIndex(runes []rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		switch runes[i] {
		case ' ', '\t', '\n':
			return i
		}
	}
	return -1
}
