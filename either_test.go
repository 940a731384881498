package dispatch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bjaus/dispatch"
)

func TestEither_match(t *testing.T) {
	t.Parallel()

	l := dispatch.Left[int, string](42)
	r := dispatch.Right[int, string]("hi")

	assert.True(t, l.IsLeft())
	assert.False(t, r.IsLeft())

	got := dispatch.MatchEither(l,
		func(v int) string { return "left" },
		func(v string) string { return "right" },
	)
	assert.Equal(t, "left", got)

	got = dispatch.MatchEither(r,
		func(v int) string { return "left" },
		func(v string) string { return "right" },
	)
	assert.Equal(t, "right", got)
}

func TestEither_carries_payload(t *testing.T) {
	t.Parallel()

	e := dispatch.Right[int, string]("payload")

	got := dispatch.MatchEither(e,
		func(v int) any { return v },
		func(v string) any { return v },
	)
	assert.Equal(t, "payload", got)
}

func TestEither_zero_value_is_left(t *testing.T) {
	t.Parallel()

	var e dispatch.Either[int, string]
	assert.True(t, e.IsLeft())
}
