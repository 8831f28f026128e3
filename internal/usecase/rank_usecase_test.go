package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRank_EmptyEntriesSkipGeneration(t *testing.T) {
	gen := &fakeGenerator{reply: "[0]"}
	uc := NewRankUsecase(gen)

	order := uc.Rank(context.Background(), nil, "backend engineer")

	assert.Equal(t, 0, gen.calls)
	assert.Empty(t, order)
}

func TestRank_EmptyJobDescriptionSkipsGeneration(t *testing.T) {
	gen := &fakeGenerator{reply: "[2, 1, 0]"}
	uc := NewRankUsecase(gen)

	order := uc.Rank(context.Background(), []string{"a", "b", "c"}, "  ")

	assert.Equal(t, 0, gen.calls)
	assert.Equal(t, []int{0, 1, 2}, order)
}

func TestRank_ValidPermutation(t *testing.T) {
	gen := &fakeGenerator{reply: "[2, 0, 1]"}
	uc := NewRankUsecase(gen)

	order := uc.Rank(context.Background(), []string{"a", "b", "c"}, "backend engineer")

	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, []int{2, 0, 1}, order)
}

func TestRank_OutOfRangeIndicesDropped(t *testing.T) {
	gen := &fakeGenerator{reply: "[2, 0, 5]"}
	uc := NewRankUsecase(gen)

	order := uc.Rank(context.Background(), []string{"a", "b", "c"}, "backend engineer")

	assert.Equal(t, []int{2, 0}, order)
}

func TestRank_DuplicatesKeepFirstPosition(t *testing.T) {
	gen := &fakeGenerator{reply: "[1, 1, 0, 1]"}
	uc := NewRankUsecase(gen)

	order := uc.Rank(context.Background(), []string{"a", "b"}, "backend engineer")

	assert.Equal(t, []int{1, 0}, order)
}

func TestRank_FencedReplyIsAccepted(t *testing.T) {
	gen := &fakeGenerator{reply: "```json\n[1, 0]\n```"}
	uc := NewRankUsecase(gen)

	order := uc.Rank(context.Background(), []string{"a", "b"}, "backend engineer")

	assert.Equal(t, []int{1, 0}, order)
}

func TestRank_FallsBackToIdentity(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		err   error
	}{
		{name: "service error", err: errors.New("circuit breaker is open")},
		{name: "prose reply", reply: "The most relevant entry is the second one."},
		{name: "object reply", reply: `{"order": [1, 0]}`},
		{name: "all out of range", reply: "[7, 9]"},
		{name: "negative only", reply: "[-1, -2]"},
		{name: "empty array", reply: "[]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{reply: tt.reply, err: tt.err}
			uc := NewRankUsecase(gen)

			order := uc.Rank(context.Background(), []string{"a", "b", "c"}, "backend engineer")

			assert.Equal(t, []int{0, 1, 2}, order)
		})
	}
}
