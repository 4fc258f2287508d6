package session

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkerUnmarshalCoercion(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{"bool true", `true`, true},
		{"bool false", `false`, false},
		{"null", `null`, false},
		{"number one", `1`, true},
		{"number zero", `0`, false},
		{"float", `2.5`, true},
		{"string true", `"true"`, true},
		{"string false", `"false"`, false},
		{"string zero", `"0"`, false},
		{"empty string", `""`, false},
		{"arbitrary string", `"yes"`, true},
		{"object", `{"page":2}`, true},
		{"empty object", `{}`, true},
		{"array", `[1,2]`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m Marker
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &m))
			assert.Equal(t, tt.want, bool(m))
		})
	}
}

func TestMarkerUnmarshalRejectsGarbage(t *testing.T) {
	var m Marker
	assert.Error(t, json.Unmarshal([]byte(`abc`), &m))
}

func TestSessionViewProjection(t *testing.T) {
	s := New("sender-1")
	assert.False(t, s.View().ProductPagination)

	s.Data.ProductPagination = true
	s.Data.CartPagination = true
	view := s.View()
	assert.True(t, view.ProductPagination)
	assert.True(t, view.CartPagination)
	assert.False(t, view.DoctorPagination)
	assert.False(t, view.DoctorSpecialtyPagination)

	s.ClearPagination()
	assert.Equal(t, Data{}, s.Data)
}

func TestLegacyPayloadDecodes(t *testing.T) {
	raw := `{"senderId":"s1","data":{"productPagination":1,"cartPagination":"true","doctorPagination":false,"doctorSpecialtyPagination":{"page":3,"specialty":"dentist"}}}`
	var s Session
	require.NoError(t, json.Unmarshal([]byte(raw), &s))
	assert.True(t, bool(s.Data.ProductPagination))
	assert.True(t, bool(s.Data.CartPagination))
	assert.False(t, bool(s.Data.DoctorPagination))
	assert.True(t, bool(s.Data.DoctorSpecialtyPagination))
}
