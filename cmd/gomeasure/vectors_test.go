package main

import (
	"testing"

	"github.com/philipparndt/gomeasure/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVector3(t *testing.T) {
	v, err := parseVector3(" 1.5, -2 ,3e2")
	require.NoError(t, err)
	assert.Equal(t, geometry.NewVector3(1.5, -2, 300), v)

	for _, bad := range []string{"", "1,2", "1,2,3,4", "a,b,c", "1,+Inf,0"} {
		_, err := parseVector3(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestParseFloats(t *testing.T) {
	values, err := parseFloats("640,360")
	require.NoError(t, err)
	assert.Equal(t, []float64{640, 360}, values)
}
