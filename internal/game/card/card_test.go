package card

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/uno/internal/apperrors"
)

func TestNewDeck(t *testing.T) {
	t.Parallel()

	deck := NewDeck(rand.New(rand.NewPCG(1, 2)))
	require.Len(t, deck, DeckSize)
	require.NoError(t, Validate(deck))

	for _, c := range deck {
		if c.IsWild() {
			assert.Equal(t, Wildcard, c.Color, "万能牌初始颜色必须是 Wildcard")
		}
	}
}

func TestShuffle_Deterministic(t *testing.T) {
	t.Parallel()

	a := NewDeck(rand.New(rand.NewPCG(7, 7)))
	b := NewDeck(rand.New(rand.NewPCG(7, 7)))
	assert.Equal(t, a, b)
	assert.NotEqual(t, NewOrderedDeck(), a)

	c := NewOrderedDeck()
	c.Shuffle(nil)
	assert.NoError(t, Validate(c))
}

func TestDeck_DrawAndPutBottom(t *testing.T) {
	t.Parallel()

	deck := Deck{{Color: Red, Rank: Rank1}, {Color: Blue, Rank: Rank2}}
	deck, top, ok := deck.Draw()
	require.True(t, ok)
	assert.Equal(t, Card{Color: Blue, Rank: Rank2}, top)
	assert.Len(t, deck, 1)

	deck = deck.PutBottom(Card{Color: Green, Rank: Wild})
	assert.Equal(t, Card{Color: Wildcard, Rank: Wild}, deck[0], "回收的万能牌恢复占位颜色")
	assert.Len(t, deck, 2)

	var empty Deck
	_, _, ok = empty.Draw()
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	replace := func(from, to Card) []Card {
		deck := NewOrderedDeck()
		deck[IndexOf(deck, from)] = to
		return deck
	}

	recolored := NewOrderedDeck()
	for i := range recolored {
		if recolored[i].IsWild() {
			recolored[i].Color = Blue
		}
	}

	tests := []struct {
		name    string
		cards   []Card
		wantErr error
	}{
		{"full deck", NewOrderedDeck(), nil},
		{"recolored wilds still valid", recolored, nil},
		{"too short", NewOrderedDeck()[:107], apperrors.ErrDeckLength},
		{"empty", nil, apperrors.ErrDeckLength},
		{
			name:    "color imbalance",
			cards:   replace(Card{Color: Red, Rank: Rank3}, Card{Color: Blue, Rank: Rank3}),
			wantErr: apperrors.ErrDeckColor,
		},
		{
			name:    "number count off",
			cards:   replace(Card{Color: Red, Rank: Rank3}, Card{Color: Red, Rank: Rank0}),
			wantErr: apperrors.ErrDeckNumber,
		},
		{
			name:    "action count off",
			cards:   replace(Card{Color: Green, Rank: Skip}, Card{Color: Green, Rank: Reverse}),
			wantErr: apperrors.ErrDeckAction,
		},
		{
			name:    "wild count off",
			cards:   replace(Card{Color: Wildcard, Rank: Wild}, Card{Color: Wildcard, Rank: WildDrawFour}),
			wantErr: apperrors.ErrDeckWild,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := Validate(tt.cards)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseColorAndRank(t *testing.T) {
	t.Parallel()

	c, err := ParseColor("Yellow")
	require.NoError(t, err)
	assert.Equal(t, Yellow, c)
	_, err = ParseColor("Purple")
	assert.Error(t, err)

	for _, r := range []Rank{Rank0, Rank9, Skip, Reverse, DrawTwo, Wild, WildDrawFour} {
		got, err := ParseRank(r.String())
		require.NoError(t, err)
		assert.Equal(t, r, got)
	}
	got, err := ParseRank("WildDrawFour")
	require.NoError(t, err)
	assert.Equal(t, WildDrawFour, got)
	_, err = ParseRank("12")
	assert.Error(t, err)
}

func TestParseRank_DrawCardsAreNotNumbers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  Rank
		ok    bool
	}{
		{"+2", DrawTwo, true},
		{"+4", WildDrawFour, true},
		{"DrawTwo", DrawTwo, true},
		{"7", Rank7, true},
		{"0", Rank0, true},
		{"-1", 0, false},
		{"+7", 0, false},
		{"07", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, err := ParseRank(tt.input)
			if !tt.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCardString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Red 7", Card{Color: Red, Rank: Rank7}.String())
	assert.Equal(t, "Blue +2", Card{Color: Blue, Rank: DrawTwo}.String())
	assert.Equal(t, "+4", Card{Color: Wildcard, Rank: WildDrawFour}.String())
	assert.Equal(t, "Green Wild", Card{Color: Green, Rank: Wild}.String())
}
