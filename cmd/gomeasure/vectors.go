package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/philipparndt/gomeasure/pkg/geometry"
)

// parseFloats parses a comma separated list such as "1.5,2,-3"
func parseFloats(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	values := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q in %q", p, s)
		}
		values[i] = v
	}
	return values, nil
}

func parseVector3(s string) (geometry.Vector3, error) {
	values, err := parseFloats(s)
	if err != nil {
		return geometry.Vector3{}, err
	}
	if len(values) != 3 {
		return geometry.Vector3{}, fmt.Errorf("expected x,y,z but got %q", s)
	}
	v := geometry.NewVector3(values[0], values[1], values[2])
	if !v.IsFinite() {
		return geometry.Vector3{}, fmt.Errorf("%q is not a finite position", s)
	}
	return v, nil
}
