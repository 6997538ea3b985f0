package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtend_IsExact(t *testing.T) {
	price := MustMoney("0.10")

	total := Extend(price, 3)

	assert.True(t, total.Equal(MustMoney("0.30")))
	assert.Equal(t, "0.30", FormatMoney(total))
}

func TestExtend_ZeroQuantity(t *testing.T) {
	assert.True(t, Extend(MustMoney("1199.99"), 0).IsZero())
}

func TestNewMoneyFromString(t *testing.T) {
	m, err := NewMoneyFromString("2.49")
	require.NoError(t, err)
	assert.Equal(t, "2.49", FormatMoney(m))

	_, err = NewMoneyFromString("two")
	assert.Error(t, err)
}

func TestMustMoney_Panics(t *testing.T) {
	assert.Panics(t, func() { MustMoney("n/a") })
	assert.True(t, Zero().IsZero())
}
