package main

import (
	"strings"
	"testing"

	"github.com/tdewolff/test"
)

func TestGivenFlags(t *testing.T) {
	var tts = []struct {
		args  string
		given []string
	}{
		{"roads.wkt", nil},
		{"--offset-x 0 roads.wkt", []string{"offset_x"}},
		{"--offset-x=0 --validate=false -", []string{"offset_x", "validate"}},
		{"-s 10 -o out.svg --offset-y -5 in.wkt", []string{"scale", "output", "offset_y"}},
		{"-vs10 -n simple", []string{"scale", "noder"}},
		{"-c job.toml -- --scale", []string{"config"}},
	}
	for _, tt := range tts {
		t.Run(tt.args, func(t *testing.T) {
			given := givenFlags(strings.Fields(tt.args))
			test.T(t, len(given), len(tt.given))
			for _, name := range tt.given {
				test.That(t, given[name], name)
			}
		})
	}
}
