package manifest

import (
	"fmt"
	"strings"
)

// Std is a C standard revision, stored as its two-digit year.
type Std uint8

const (
	C89 Std = 89
	C99 Std = 99
	C11 Std = 11
	C17 Std = 17
	C23 Std = 23
)

// Standard is a C dialect: a standard revision plus an optional GNU
// extensions mode.
type Standard struct {
	Std Std
	GNU bool
}

// String renders the dialect as a -std= token value such as "c99" or
// "gnu11". Compilers spell the 2023 revision "2x", so C23 renders as
// "c2x" and "gnu2x".
func (s Standard) String() string {
	prefix := "c"
	if s.GNU {
		prefix = "gnu"
	}
	if s.Std == C23 {
		return prefix + "2x"
	}
	return fmt.Sprintf("%s%d", prefix, s.Std)
}

// ProjectType selects the kind of artifact a build produces.
type ProjectType uint8

const (
	Binary ProjectType = iota
	Shared
	Static
)

func (t ProjectType) String() string {
	switch t {
	case Shared:
		return "SHARED"
	case Static:
		return "STATIC"
	default:
		return "BIN"
	}
}

// Timing selects when the build script hook runs relative to
// compilation. The zero value None disables the hook.
type Timing uint8

const (
	None Timing = iota
	Before
	Repeat
	After
)

func (t Timing) String() string {
	switch t {
	case Before:
		return "before"
	case Repeat:
		return "repeat"
	case After:
		return "after"
	default:
		return "none"
	}
}

// Project is the validated, immutable description of one C project. It is
// rebuilt from the manifest on every invocation and never cached.
type Project struct {
	Name     string
	Version  string
	Standard Standard
	Compiler string
	Flags    []string
	Type     ProjectType
	Hook     Timing
}

// String renders the diagnostic summary shown by `kiln info`. The output
// has no trailing newline.
func (p Project) String() string {
	std := "-std=" + p.Standard.String()
	cflags := std
	if len(p.Flags) > 0 {
		cflags = strings.Join(p.Flags, " ") + " " + std
	}

	var b strings.Builder
	fmt.Fprintf(&b, "CC       %s\n", p.Compiler)
	fmt.Fprintf(&b, "CFLAGS   %s\n", cflags)
	fmt.Fprintf(&b, "TYPE     %s\n", p.Type)
	fmt.Fprintf(&b, "NAME     %s\n", p.Name)
	fmt.Fprintf(&b, "VERSION  %s", p.Version)
	return b.String()
}

// Artifact returns the name of the linked output: the bare project name
// for a binary, lib<name>.a for a static library, lib<name>.so for a
// shared one.
func (p Project) Artifact() string {
	switch p.Type {
	case Static:
		return "lib" + p.Name + ".a"
	case Shared:
		return "lib" + p.Name + ".so"
	default:
		return p.Name
	}
}
