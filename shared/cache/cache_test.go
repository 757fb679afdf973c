package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roomSnapshot struct {
	Number string `json:"number"`
	Floor  int    `json:"floor"`
}

func TestEncodeDecode(t *testing.T) {
	raw, err := encode(roomSnapshot{Number: "101", Floor: 1})
	require.NoError(t, err)
	assert.JSONEq(t, `{"number":"101","floor":1}`, string(raw))

	var room roomSnapshot
	require.NoError(t, decode(string(raw), &room))
	assert.Equal(t, roomSnapshot{Number: "101", Floor: 1}, room)
}

func TestEncode_StringIsStoredAsIs(t *testing.T) {
	raw, err := encode("dirty")
	require.NoError(t, err)
	assert.Equal(t, "dirty", string(raw))

	var status string
	require.NoError(t, decode("dirty", &status))
	assert.Equal(t, "dirty", status)
}

func TestEncode_Errors(t *testing.T) {
	_, err := encode(make(chan int))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to marshal cache value")

	var room roomSnapshot
	err = decode("{", &room)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal cache value")
}
