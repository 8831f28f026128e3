package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/fadilmartias/resume-generator/internal/service"
)

// FallbackBullet is the sentinel emitted when bullet generation fails. The
// document still renders; the user sees what needs a manual pass.
const FallbackBullet = "Content generation unavailable, please edit this section manually"

type bulletKey struct {
	text       string
	maxBullets int
	job        string
}

// BulletsUsecase converts freeform achievement prose into a bounded list of
// formatted bullet statements. Identical inputs are memoized for the life of
// the process to avoid paying for the same generation twice.
type BulletsUsecase struct {
	llm service.TextGenerator

	mu    sync.Mutex
	cache map[bulletKey][]string
}

func NewBulletsUsecase(llm service.TextGenerator) *BulletsUsecase {
	return &BulletsUsecase{llm: llm, cache: make(map[bulletKey][]string)}
}

// Synthesize returns at most maxBullets non-empty bullet lines. Empty input
// yields an empty slice (caller substitutes a placeholder); a service failure
// yields the single FallbackBullet sentinel, never an error.
func (uc *BulletsUsecase) Synthesize(ctx context.Context, rawText string, maxBullets int, jobDescription string) []string {
	if strings.TrimSpace(rawText) == "" || maxBullets <= 0 {
		return []string{}
	}

	key := bulletKey{text: rawText, maxBullets: maxBullets, job: jobDescription}
	uc.mu.Lock()
	if cached, ok := uc.cache[key]; ok {
		uc.mu.Unlock()
		return append([]string(nil), cached...)
	}
	uc.mu.Unlock()

	reply, err := uc.llm.GenerateText(ctx, buildBulletPrompt(rawText, maxBullets, jobDescription), service.GenerationOptions{
		Temperature:     0.3,
		MaxOutputTokens: 512,
	})
	if err != nil {
		log.Printf("bullet synthesis failed: %v", err)
		return []string{FallbackBullet}
	}

	bullets := splitBullets(reply, maxBullets)
	if len(bullets) == 0 {
		return []string{FallbackBullet}
	}

	uc.mu.Lock()
	uc.cache[key] = bullets
	uc.mu.Unlock()
	return append([]string(nil), bullets...)
}

// splitBullets breaks a reply on line boundaries, strips leading bullet
// glyphs and dashes, drops blanks and truncates to maxBullets.
func splitBullets(reply string, maxBullets int) []string {
	bullets := []string{}
	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-•*–— \t")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		bullets = append(bullets, line)
		if len(bullets) == maxBullets {
			break
		}
	}
	return bullets
}

func buildBulletPrompt(rawText string, maxBullets int, jobDescription string) string {
	tailoring := ""
	if strings.TrimSpace(jobDescription) != "" {
		tailoring = fmt.Sprintf("\nTailor the wording toward this target job description:\n%s\n", jobDescription)
	}

	return fmt.Sprintf(`Convert the following achievement text into at most %d resume bullet statements.

Requirements:
1. Start each bullet with a strong action verb.
2. Quantify impact with the numbers present in the text; do not invent metrics.
3. One bullet per line, no numbering, no prose around the list.
%s
Achievement text:
%s`, maxBullets, tailoring, rawText)
}
