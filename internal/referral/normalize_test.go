package referral

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeFoundWithoutDetails(t *testing.T) {
	out := Normalize(map[string]any{}, 200)

	require.NotNil(t, out.Valid)
	assert.True(t, *out.Valid)
	assert.Equal(t, "Details unavailable", out.Eligibility)
	assert.Equal(t, MsgValidNoDetails, out.Message)
	assert.Nil(t, out.Metadata)
}

func TestNormalizeFoundWithDetails(t *testing.T) {
	out := Normalize(map[string]any{
		"first_name": "Jo",
		"email":      "j@x.com",
	}, 200)

	require.NotNil(t, out.Valid)
	assert.True(t, *out.Valid)
	assert.Equal(t, "Eligible", out.Eligibility)
	assert.Equal(t, MsgValid, out.Message)
	require.NotNil(t, out.Metadata)
	assert.Equal(t, "Jo", out.Metadata.Name)
	assert.Equal(t, "j@x.com", out.Metadata.Email)
}

func TestNormalizeNotFound(t *testing.T) {
	out := Normalize(map[string]any{}, 404)

	require.NotNil(t, out.Valid)
	assert.False(t, *out.Valid)
	assert.Equal(t, MsgNotFound, out.Message)
	assert.Empty(t, out.Eligibility)
	assert.Nil(t, out.Metadata)
}

func TestNormalizeIndeterminate(t *testing.T) {
	for _, status := range []int{500, 502, 301, 201, 0, -1} {
		out := Normalize(map[string]any{}, status)

		assert.Nil(t, out.Valid, "status %d", status)
		assert.Equal(t, MsgUnexpected, out.Message)
		assert.Empty(t, out.Eligibility)
	}
}

func TestNormalizeFieldAliases(t *testing.T) {
	out := Normalize(map[string]any{
		"name": "Maria",
		"code": "REF-9",
	}, 200)

	require.NotNil(t, out.Metadata)
	assert.Equal(t, "Maria", out.Metadata.Name)
	assert.Equal(t, "REF-9", out.Metadata.ReferralCode)

	// campo primário vence o alias
	out = Normalize(map[string]any{
		"first_name":    "Ana",
		"name":          "ignorado",
		"referral_code": "REF-1",
		"code":          "ignorado",
	}, 200)

	require.NotNil(t, out.Metadata)
	assert.Equal(t, "Ana", out.Metadata.Name)
	assert.Equal(t, "REF-1", out.Metadata.ReferralCode)
}

func TestNormalizeNumericFields(t *testing.T) {
	out := Normalize(map[string]any{
		"usage":      float64(3),
		"row_number": "12",
	}, 200)

	require.NotNil(t, out.Metadata)
	require.NotNil(t, out.Metadata.Usage)
	assert.Equal(t, float64(3), *out.Metadata.Usage)
	require.NotNil(t, out.Metadata.RowNumber)
	assert.Equal(t, float64(12), *out.Metadata.RowNumber)
}

func TestNormalizeUpstreamMessageWins(t *testing.T) {
	out := Normalize(map[string]any{"message": "custom text"}, 404)
	assert.Equal(t, "custom text", out.Message)

	// message que não é string cai no texto padrão
	out = Normalize(map[string]any{"message": 42.0}, 404)
	assert.Equal(t, MsgNotFound, out.Message)
}

// Normalize é total: payloads hostis degradam para ausente, nunca quebram.
func TestNormalizeNeverPanics(t *testing.T) {
	payloads := []map[string]any{
		nil,
		{},
		{"first_name": nil, "email": nil, "phone": nil},
		{"first_name": 12.5, "email": true, "phone": []any{"x"}},
		{"name": "", "code": "   "},
		{"usage": "abc", "row_number": ""},
		{"usage": "NaN", "row_number": "Inf"},
		{"usage": map[string]any{"deep": 1.0}},
		{"message": map[string]any{}},
		{"referral_code": 99.0, "code": false},
	}

	for _, raw := range payloads {
		for _, status := range []int{200, 404, 500, 0} {
			assert.NotPanics(t, func() { Normalize(raw, status) })
		}
	}

	out := Normalize(map[string]any{"name": "", "code": "   ", "usage": "abc"}, 200)
	assert.Nil(t, out.Metadata)
	assert.Equal(t, "Details unavailable", out.Eligibility)
}
