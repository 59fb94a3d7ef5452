package vtable_test

import (
	"fmt"
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"testing"
)

// assertSrc mirrors the documented Index assertion for a table covering
// [10, 14). Type-checking it stands in for a full build: a constant that
// fails here fails `go build` the same way.
const assertSrc = `package p

type Index uint

const (
	offset = 10
	size   = 4
)

const id = %d

const _ Index = (id - offset) | (offset + size - 1 - id)
`

func typeCheck(t *testing.T, src string) error {
	t.Helper()

	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "assert.go", src, 0)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	conf := types.Config{Importer: importer.Default()}
	_, err = conf.Check("p", fset, []*ast.File{f}, nil)
	return err
}

func TestIndexAssertInRangeBuilds(t *testing.T) {
	for id := 10; id <= 13; id++ {
		if err := typeCheck(t, fmt.Sprintf(assertSrc, id)); err != nil {
			t.Errorf("id %d: expected in-range assertion to compile, got %v", id, err)
		}
	}
}

func TestIndexAssertOutOfRangeFailsBuild(t *testing.T) {
	for _, id := range []int{0, 9, 14, 99} {
		if err := typeCheck(t, fmt.Sprintf(assertSrc, id)); err == nil {
			t.Errorf("id %d: expected out-of-range assertion to refuse to build", id)
		}
	}
}
