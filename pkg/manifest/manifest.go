// Package manifest loads and validates Kilnfile project manifests.
//
// A manifest is written in the notation handled by pkg/notation. The
// recognized top-level keys are name, version, standard, cc, flags, type
// and buildscript; name and version are required, everything else has a
// default. Validation produces an immutable Project descriptor.
package manifest

import (
	"fmt"
	"strings"

	"github.com/kilnbuild/kiln/pkg/notation"
)

// Filename is the manifest file kiln looks for in a project root.
const Filename = "Kilnfile"

// DefaultCompiler is used when the manifest has no cc key.
const DefaultCompiler = "cc"

// DefaultFlags are used when the manifest has no flags key. A flags key
// replaces them entirely, it does not merge.
var DefaultFlags = []string{
	"-Wall",
	"-Wextra",
	"-Wwrite-strings",
	"-Werror=discarded-qualifiers",
}

// DefaultStandard is used when the manifest has no standard key.
var DefaultStandard = Standard{Std: C99}

// A KeyError reports a manifest key that is missing, has the wrong shape,
// or holds an unrecognized token.
type KeyError struct {
	Key string
	Msg string
}

func (e *KeyError) Error() string { return e.Msg }

// Load reads and parses the manifest at path and validates it into a
// Project.
func Load(path string) (Project, error) {
	forms, err := notation.ParseFile(path)
	if err != nil {
		return Project{}, err
	}
	return FromForms(forms)
}

// FromForms validates parsed manifest forms against the project schema.
// Duplicate top-level keys are not an error; the first occurrence wins.
func FromForms(forms []notation.Value) (Project, error) {
	name, err := requiredSingle(forms, "name")
	if err != nil {
		return Project{}, err
	}
	version, err := requiredSingle(forms, "version")
	if err != nil {
		return Project{}, err
	}

	standard := DefaultStandard
	if body, ok := notation.Find(forms, "standard"); ok {
		raw, err := single(body, "standard")
		if err != nil {
			return Project{}, err
		}
		standard, err = parseStandard(raw)
		if err != nil {
			return Project{}, err
		}
	}

	compiler := DefaultCompiler
	if body, ok := notation.Find(forms, "cc"); ok {
		compiler, err = single(body, "cc")
		if err != nil {
			return Project{}, err
		}
	}

	flags := append([]string(nil), DefaultFlags...)
	if body, ok := notation.Find(forms, "flags"); ok {
		flags = make([]string, 0, len(body))
		for _, v := range body {
			id, ok := v.(notation.Ident)
			if !ok {
				return Project{}, &KeyError{Key: "flags", Msg: "each flag must be an identifier"}
			}
			flags = append(flags, string(id))
		}
	}

	ptype := Binary
	if body, ok := notation.Find(forms, "type"); ok {
		raw, err := single(body, "type")
		if err != nil {
			return Project{}, err
		}
		ptype, err = parseType(raw)
		if err != nil {
			return Project{}, err
		}
	}

	hook := None
	if body, ok := notation.Find(forms, "buildscript"); ok {
		raw, err := single(body, "buildscript")
		if err != nil {
			return Project{}, err
		}
		hook, err = parseTiming(raw)
		if err != nil {
			return Project{}, err
		}
	}

	return Project{
		Name:     name,
		Version:  version,
		Standard: standard,
		Compiler: compiler,
		Flags:    flags,
		Type:     ptype,
		Hook:     hook,
	}, nil
}

// requiredSingle resolves a key that must be present with exactly one
// identifier in its body.
func requiredSingle(forms []notation.Value, key string) (string, error) {
	body, ok := notation.Find(forms, key)
	if !ok {
		return "", singleError(key)
	}
	return single(body, key)
}

// single extracts the one identifier a single-valued key must carry.
func single(body notation.List, key string) (string, error) {
	if len(body) == 1 {
		if id, ok := body[0].(notation.Ident); ok {
			return string(id), nil
		}
	}
	return "", singleError(key)
}

func singleError(key string) *KeyError {
	return &KeyError{Key: key, Msg: fmt.Sprintf("key `%s` must be a single string", key)}
}

// parseStandard resolves a standard token. "ansi" is an alias for plain
// c89; everything else is a c or gnu prefix followed by a revision year.
// "c2x" is an output spelling only and is not accepted here.
func parseStandard(raw string) (Standard, error) {
	if raw == "ansi" {
		return Standard{Std: C89}, nil
	}

	gnu := strings.HasPrefix(raw, "gnu")
	prefix := "c"
	if gnu {
		prefix = "gnu"
	}
	for _, std := range []Std{C89, C99, C11, C17, C23} {
		if fmt.Sprintf("%s%d", prefix, std) == raw {
			return Standard{Std: std, GNU: gnu}, nil
		}
	}
	return Standard{}, &KeyError{
		Key: "standard",
		Msg: fmt.Sprintf("`%s` is not a valid C standard (valid standards: ansi, c89, gnu89, c99, gnu99, c11, gnu11, c17, gnu17, c23, gnu23)", raw),
	}
}

func parseType(raw string) (ProjectType, error) {
	switch raw {
	case "binary":
		return Binary, nil
	case "shared":
		return Shared, nil
	case "static":
		return Static, nil
	}
	return Binary, &KeyError{
		Key: "type",
		Msg: fmt.Sprintf("`%s` is not a valid project type (available types: binary, shared, static)", raw),
	}
}

func parseTiming(raw string) (Timing, error) {
	switch raw {
	case "before":
		return Before, nil
	case "repeat":
		return Repeat, nil
	case "after":
		return After, nil
	}
	return None, &KeyError{
		Key: "buildscript",
		Msg: fmt.Sprintf("`%s` is not a valid build script timing (available timings: before, repeat, after)", raw),
	}
}
