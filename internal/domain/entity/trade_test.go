package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTradeRequestValidate(t *testing.T) {
	valid := TradeRequest{Direction: DirectionBuy, Amount: "10.5", Slippage: DefaultSlippageBps}
	assert.NoError(t, valid.Validate())

	cases := map[string]TradeRequest{
		"unknown direction": {Direction: "hold", Amount: "10", Slippage: 35},
		"empty amount":      {Direction: DirectionSell, Amount: "", Slippage: 35},
		"non-numeric":       {Direction: DirectionBuy, Amount: "ten", Slippage: 35},
		"zero amount":       {Direction: DirectionBuy, Amount: "0", Slippage: 35},
		"negative amount":   {Direction: DirectionSell, Amount: "-5", Slippage: 35},
		"slippage too high": {Direction: DirectionBuy, Amount: "10", Slippage: 101},
		"negative slippage": {Direction: DirectionBuy, Amount: "10", Slippage: -1},
	}
	for name, req := range cases {
		assert.Error(t, req.Validate(), name)
	}
}

func TestTradeDirectionValid(t *testing.T) {
	assert.True(t, DirectionBuy.Valid())
	assert.True(t, DirectionSell.Valid())
	assert.False(t, TradeDirection("").Valid())
	assert.False(t, TradeDirection("swap").Valid())
}
