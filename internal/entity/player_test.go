package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePlayer(t *testing.T) {
	tests := []struct {
		mark string
		want Player
	}{
		{mark: "X", want: PlayerX},
		{mark: "O", want: PlayerO},
		{mark: "Q", want: PlayerInvalid},
		{mark: "x", want: PlayerInvalid},
		{mark: "", want: PlayerInvalid},
		{mark: "XO", want: PlayerInvalid},
	}

	for _, tt := range tests {
		t.Run("mark "+tt.mark, func(t *testing.T) {
			// When: the mark is parsed
			player := ParsePlayer(tt.mark)

			// Then: it resolves to the expected player
			assert.Equal(t, tt.want, player)
			assert.Equal(t, tt.want != PlayerInvalid, player.IsValid())
		})
	}
}

func TestPlayer_String(t *testing.T) {
	assert.Equal(t, "X", PlayerX.String())
	assert.Equal(t, "O", PlayerO.String())
	assert.Equal(t, "invalid", PlayerInvalid.String())
}
