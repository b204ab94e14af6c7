package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinInt(t *testing.T) {
	assert.Nil(t, MinInt("amount", 1, 1))
	assert.Nil(t, MinInt("amount", 100, 1))

	ef := MinInt("amount", 0, 1)
	require.NotNil(t, ef)
	assert.Equal(t, "amount", ef.Field)
	assert.Equal(t, "must be >= 1", ef.Msg)
}

func TestErrs_Error(t *testing.T) {
	errs := Errs{
		{Field: "amount", Msg: "must be >= 1"},
		{Field: "user_id", Msg: "required"},
	}
	assert.Equal(t, "amount: must be >= 1; user_id: required", errs.Error())
}
