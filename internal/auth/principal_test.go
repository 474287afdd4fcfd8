package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeAreas(t *testing.T) {
	assert.Equal(t, []string{"seguridad", "infraestructura"},
		DecodeAreas(`["seguridad","infraestructura"]`))

	// Malformed or null content is an empty set, never an error.
	assert.Empty(t, DecodeAreas(""))
	assert.Empty(t, DecodeAreas("null"))
	assert.Empty(t, DecodeAreas("{broken"))
	assert.Empty(t, DecodeAreas(`{"not":"a list"}`))
	assert.Empty(t, DecodeAreas(`[1,2,3]`))
}

func TestEncodeAreasRoundTrip(t *testing.T) {
	assert.Equal(t, `[]`, EncodeAreas(nil))
	assert.Equal(t, `["seguridad"]`, EncodeAreas([]string{"seguridad"}))

	areas := []string{"seguridad", "arquitectura"}
	assert.Equal(t, areas, DecodeAreas(EncodeAreas(areas)))
}
