package trackerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIoErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	err := &IoError{Path: "a.rs", Err: inner}

	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "a.rs")
}

func TestErrorMessagesNameTheSubject(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&UnsupportedLanguage{Ext: ".zig"}, `unsupported language for extension ".zig"`},
		{&ParseFailure{Path: "a.py", Detail: "eof"}, "failed to parse a.py: eof"},
		{&DuplicateFunction{ID: "x::f::() -> ()"}, `duplicate function id "x::f::() -> ()"`},
		{&UnknownFunction{ID: "x::f::() -> ()"}, `unknown function id "x::f::() -> ()"`},
		{&UnresolvedImport{Specifier: "os"}, `unresolved import "os"`},
		{&UnresolvedImport{Specifier: "os", Reason: "known external"}, `unresolved import "os": known external`},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestErrorsAsDuplicateFunction(t *testing.T) {
	wrapped := fmt.Errorf("build failed: %w", &DuplicateFunction{ID: "f::a::() -> ()"})

	var dup *DuplicateFunction
	assert.True(t, errors.As(wrapped, &dup))
	assert.Equal(t, "f::a::() -> ()", dup.ID)
}
