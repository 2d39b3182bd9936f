package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapped(t *testing.T) {
	items, err := Wrapped("employees")(json.RawMessage(`{"employees":[{"id":2}],"total":1}`))
	require.NoError(t, err)
	assert.Equal(t, []string{`{"id":2}`}, jsonStrings(items))

	for _, body := range []string{`[]`, `null`, `{"staff":[]}`, `{"employees":{"id":2}}`, `"x"`} {
		_, err := Wrapped("employees")(json.RawMessage(body))
		assert.ErrorIs(t, err, ErrUnexpectedShape, body)
	}
}

func TestBareArray(t *testing.T) {
	items, err := BareArray()(json.RawMessage(` [ {"id":1} , {"id":2} ] `))
	require.NoError(t, err)
	assert.Equal(t, []string{`{"id":1}`, `{"id":2}`}, jsonStrings(items))

	items, err = BareArray()(json.RawMessage(`null`))
	require.NoError(t, err)
	assert.Empty(t, items)

	for _, body := range []string{``, `{"expenses":[]}`, `42`} {
		_, err := BareArray()(json.RawMessage(body))
		assert.ErrorIs(t, err, ErrUnexpectedShape, body)
	}
}
