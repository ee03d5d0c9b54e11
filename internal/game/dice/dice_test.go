package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/forsaken/internal/game/dice"
)

// seqSource returns its values in order, modulo n, cycling when exhausted.
type seqSource struct {
	vals []int
	i    int
}

func (s *seqSource) Intn(n int) int {
	v := s.vals[s.i%len(s.vals)] % n
	s.i++
	return v
}

func TestRollResult_Total(t *testing.T) {
	r := dice.RollResult{Expression: "2d6+3", Dice: []int{4, 5}, Modifier: 3}
	assert.Equal(t, 12, r.Total())
	assert.Equal(t, "2d6+3 → [4 5] +3 = 12", r.String())
}

func TestParse_Forms(t *testing.T) {
	tests := []struct {
		in                   string
		count, sides, modify int
	}{
		{"d10", 1, 10, 0},
		{"1d10", 1, 10, 0},
		{"2d6+3", 2, 6, 3},
		{"4D8-2", 4, 8, -2},
		{" 1d16+4 ", 1, 16, 4},
	}
	for _, tc := range tests {
		e, err := dice.Parse(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.count, e.Count, tc.in)
		assert.Equal(t, tc.sides, e.Sides, tc.in)
		assert.Equal(t, tc.modify, e.Modifier, tc.in)
	}
}

func TestParse_Rejects(t *testing.T) {
	for _, in := range []string{"", "10", "0d6", "xd6", "1d1", "1d+3", "1dx", "2d6+y"} {
		_, err := dice.Parse(in)
		assert.Error(t, err, "expected %q to be rejected", in)
	}
}

func TestExpression_MinMax(t *testing.T) {
	e := dice.MustParse("1d10")
	assert.Equal(t, 1, e.Min())
	assert.Equal(t, 10, e.Max())
}

func TestParseUniform(t *testing.T) {
	for _, in := range []string{"d10", "1d10", "1d10+2", "1d6-1"} {
		e, err := dice.ParseUniform(in)
		require.NoError(t, err, in)
		assert.True(t, e.Uniform())
	}
	for _, in := range []string{"2d5", "3d6+1", "lots"} {
		_, err := dice.ParseUniform(in)
		assert.Error(t, err, "expected %q to be rejected", in)
	}
	assert.False(t, dice.MustParse("2d5").Uniform())
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() { dice.MustParse("nope") })
}

func TestRoll_WithinBounds_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		count := rapid.IntRange(1, 6).Draw(rt, "count")
		sides := rapid.IntRange(2, 20).Draw(rt, "sides")
		mod := rapid.IntRange(-5, 5).Draw(rt, "mod")
		seed := rapid.Uint64().Draw(rt, "seed")
		e := dice.Expression{Raw: "x", Count: count, Sides: sides, Modifier: mod}

		r := dice.Roll(e, dice.NewSeededSource(seed))
		assert.Len(rt, r.Dice, count)
		assert.GreaterOrEqual(rt, r.Total(), e.Min())
		assert.LessOrEqual(rt, r.Total(), e.Max())
	})
}

func TestTicket_FollowsWeights(t *testing.T) {
	weights := []int{8, 5, 2}
	// Ticket 0..7 -> 0, 8..12 -> 1, 13..14 -> 2.
	cases := map[int]int{0: 0, 7: 0, 8: 1, 12: 1, 13: 2, 14: 2}
	for ticket, want := range cases {
		got, ok := dice.Ticket(&seqSource{vals: []int{ticket}}, weights)
		require.True(t, ok)
		assert.Equal(t, want, got, "ticket %d", ticket)
	}
}

func TestTicket_SkipsNonPositiveWeights(t *testing.T) {
	got, ok := dice.Ticket(&seqSource{vals: []int{0}}, []int{0, -3, 4})
	require.True(t, ok)
	assert.Equal(t, 2, got)

	_, ok = dice.Ticket(&seqSource{vals: []int{0}}, []int{0, 0})
	assert.False(t, ok)
	_, ok = dice.Ticket(&seqSource{vals: []int{0}}, nil)
	assert.False(t, ok)
}

func TestIntRange(t *testing.T) {
	src := dice.NewSeededSource(42)
	for i := 0; i < 500; i++ {
		v := dice.IntRange(src, 1, 10)
		assert.GreaterOrEqual(t, v, 1)
		assert.LessOrEqual(t, v, 10)
	}
	assert.Equal(t, 7, dice.IntRange(src, 7, 7))
	assert.Equal(t, 7, dice.IntRange(src, 7, 3))
}

func TestFloat64_InUnitInterval(t *testing.T) {
	assert.Equal(t, 0.0, dice.Float64(&seqSource{vals: []int{0}}))
	assert.InDelta(t, 0.999999, dice.Float64(&seqSource{vals: []int{999_999}}), 1e-9)
}

func TestSeededSource_Deterministic(t *testing.T) {
	a, b := dice.NewSeededSource(7), dice.NewSeededSource(7)
	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Intn(1000), b.Intn(1000))
	}
}

func TestCryptoSource_Intn_InRange(t *testing.T) {
	src := dice.NewCryptoSource()
	for i := 0; i < 1000; i++ {
		v := src.Intn(6)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 6)
	}
}

func TestSources_PanicOnZero(t *testing.T) {
	assert.Panics(t, func() { dice.NewCryptoSource().Intn(0) })
	assert.Panics(t, func() { dice.NewSeededSource(1).Intn(0) })
}

func TestRoller_DelegatesToSource(t *testing.T) {
	r := dice.NewLoggedRoller(&seqSource{vals: []int{3, 1, 4}}, zap.NewNop())
	assert.Equal(t, 3, r.Intn(10))
	assert.Equal(t, 1, r.Pick("test", 10))
	res := r.Roll(dice.MustParse("1d10"))
	assert.Equal(t, 5, res.Total())

	idx, ok := r.PickWeighted("test", []int{0, 2})
	require.True(t, ok)
	assert.Equal(t, 1, idx)
}
