package notation_test

import (
	"reflect"
	"testing"

	"github.com/kilnbuild/kiln/pkg/notation"
)

func FuzzParseFormatRoundTrip(f *testing.F) {
	f.Add("(jsp a b c)\n(non plus)")
	f.Add("(name kiln)\n(version 0.1.0)\n(std c99)\n(flags -Wall -Wextra)")
	f.Add("(outer (inner x) y)")
	f.Add("a) b(c ()")
	f.Add("(unterminated a b")
	f.Add(" \t\r\n")

	f.Fuzz(func(t *testing.T, input string) {
		forms, err := notation.Parse(input)
		if err != nil {
			return
		}

		formatted := notation.Format(forms)

		again, err := notation.Parse(formatted)
		if err != nil {
			t.Fatalf("parse formatted document: %v\nformatted:\n%s", err, formatted)
		}

		if !reflect.DeepEqual(forms, again) {
			t.Fatalf("round trip changed forms\noriginal:  %#v\nreparsed:  %#v\nformatted:\n%s", forms, again, formatted)
		}
	})
}
