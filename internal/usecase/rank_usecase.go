package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/fadilmartias/resume-generator/internal/service"
	"github.com/fadilmartias/resume-generator/internal/util"
)

// RankUsecase orders experience entries by relevance to a job description.
// Ranking is advisory: whatever the model returns, the caller gets a usable
// order, and the generation call is skipped entirely when there is nothing
// to rank against.
type RankUsecase struct {
	llm service.TextGenerator
}

func NewRankUsecase(llm service.TextGenerator) *RankUsecase {
	return &RankUsecase{llm: llm}
}

// Rank returns indices into entries ordered most-to-least relevant. Indices
// the model hallucinated out of range are dropped; duplicates keep their
// first position. On empty input, empty job description, or any service or
// parse failure the identity order comes back instead.
func (uc *RankUsecase) Rank(ctx context.Context, entries []string, jobDescription string) []int {
	if len(entries) == 0 || strings.TrimSpace(jobDescription) == "" {
		return identityOrder(len(entries))
	}

	reply, err := uc.llm.GenerateText(ctx, buildRankingPrompt(entries, jobDescription), service.GenerationOptions{
		Temperature:     0.1,
		MaxOutputTokens: 256,
		JSONOutput:      true,
	})
	if err != nil {
		log.Printf("ranking failed, keeping original order: %v", err)
		return identityOrder(len(entries))
	}

	var indices []int
	if err := json.Unmarshal([]byte(util.StripCodeFence(reply)), &indices); err != nil {
		log.Printf("ranking reply is not an index list, keeping original order: %s", reply)
		return identityOrder(len(entries))
	}

	seen := make(map[int]bool)
	filtered := make([]int, 0, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= len(entries) || seen[idx] {
			continue
		}
		seen[idx] = true
		filtered = append(filtered, idx)
	}
	if len(filtered) == 0 {
		log.Printf("ranking reply had no usable indices, keeping original order: %s", reply)
		return identityOrder(len(entries))
	}
	return filtered
}

func identityOrder(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return order
}

func buildRankingPrompt(entries []string, jobDescription string) string {
	var b strings.Builder
	for i, entry := range entries {
		fmt.Fprintf(&b, "%d. %s\n", i, entry)
	}

	return fmt.Sprintf(`Order the following experience entries from most to least relevant to the target job description.

Entries (zero-indexed):
%s
Target job description:
%s

Reply with ONLY a JSON array of the entry indices ordered most to least relevant, e.g. [2, 0, 1]. No prose, no explanation.`, b.String(), jobDescription)
}
