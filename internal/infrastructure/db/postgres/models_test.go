package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONObject_RoundTrip(t *testing.T) {
	in := jsonObject{"color": "blue", "tags": []any{"a", "b"}}

	v, err := in.Value()
	require.NoError(t, err)

	var out jsonObject
	require.NoError(t, out.Scan([]byte(v.(string))))
	assert.Equal(t, "blue", out["color"])
	assert.Equal(t, []any{"a", "b"}, out["tags"])
}

func TestJSONObject_Null(t *testing.T) {
	var j jsonObject
	v, err := j.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	out := jsonObject{"x": 1}
	require.NoError(t, out.Scan(nil))
	assert.Nil(t, out)

	assert.Error(t, out.Scan(42))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\% off`, escapeLike("50% off"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\dir`, escapeLike(`c:\dir`))
}
