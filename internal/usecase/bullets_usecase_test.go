package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesize_EmptyInputYieldsEmptyList(t *testing.T) {
	gen := &fakeGenerator{reply: "- something"}
	uc := NewBulletsUsecase(gen)

	assert.Empty(t, uc.Synthesize(context.Background(), "  \n ", 3, ""))
	assert.Empty(t, uc.Synthesize(context.Background(), "real text", 0, ""))
	assert.Equal(t, 0, gen.calls)
}

func TestSynthesize_StripsGlyphsAndBlanks(t *testing.T) {
	gen := &fakeGenerator{reply: "- Led migration of 12 services\n\n• Cut deploy time by 40%\n* Mentored two junior engineers"}
	uc := NewBulletsUsecase(gen)

	bullets := uc.Synthesize(context.Background(), "did migration work", 3, "")

	require.Len(t, bullets, 3)
	assert.Equal(t, "Led migration of 12 services", bullets[0])
	assert.Equal(t, "Cut deploy time by 40%", bullets[1])
	assert.Equal(t, "Mentored two junior engineers", bullets[2])
	for _, b := range bullets {
		assert.NotEmpty(t, b)
	}
}

func TestSynthesize_TruncatesToMaxBullets(t *testing.T) {
	gen := &fakeGenerator{reply: "- one\n- two\n- three\n- four\n- five"}
	uc := NewBulletsUsecase(gen)

	bullets := uc.Synthesize(context.Background(), "long story", 2, "")

	assert.Equal(t, []string{"one", "two"}, bullets)
}

func TestSynthesize_FailureYieldsSentinel(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("timeout")}
	uc := NewBulletsUsecase(gen)

	bullets := uc.Synthesize(context.Background(), "some text", 3, "")

	assert.Equal(t, []string{FallbackBullet}, bullets)
}

func TestSynthesize_BlankReplyYieldsSentinel(t *testing.T) {
	gen := &fakeGenerator{reply: "\n\n- \n"}
	uc := NewBulletsUsecase(gen)

	bullets := uc.Synthesize(context.Background(), "some text", 3, "")

	assert.Equal(t, []string{FallbackBullet}, bullets)
}

func TestSynthesize_MemoizesIdenticalInputs(t *testing.T) {
	gen := &fakeGenerator{reply: "- Shipped the thing"}
	uc := NewBulletsUsecase(gen)

	first := uc.Synthesize(context.Background(), "shipped", 3, "backend role")
	second := uc.Synthesize(context.Background(), "shipped", 3, "backend role")

	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, first, second)
}

func TestSynthesize_DifferentJobDescriptionMissesCache(t *testing.T) {
	gen := &fakeGenerator{reply: "- Shipped the thing"}
	uc := NewBulletsUsecase(gen)

	uc.Synthesize(context.Background(), "shipped", 3, "backend role")
	uc.Synthesize(context.Background(), "shipped", 3, "frontend role")

	assert.Equal(t, 2, gen.calls)
}

func TestSynthesize_FailureIsNotCached(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("timeout")}
	uc := NewBulletsUsecase(gen)

	uc.Synthesize(context.Background(), "some text", 3, "")
	gen.err = nil
	gen.reply = "- Recovered fine"

	bullets := uc.Synthesize(context.Background(), "some text", 3, "")

	assert.Equal(t, 2, gen.calls)
	assert.Equal(t, []string{"Recovered fine"}, bullets)
}
