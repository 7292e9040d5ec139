package gateway

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJSONCodec(t *testing.T) {
	c := jsonCodec{}
	require.Equal(t, "json", c.Name())

	b, err := c.Marshal(&householdRequest{HouseholdID: "h1"})
	require.NoError(t, err)
	require.JSONEq(t, `{"household_id":"h1"}`, string(b))

	var got householdRequest
	require.NoError(t, c.Unmarshal(b, &got))
	require.Equal(t, "h1", got.HouseholdID)

	require.NoError(t, c.Unmarshal(nil, &got))
}
