package diffutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnifiedReportsAddedAndRemovedLines(t *testing.T) {
	orig := "class A {\n  int x;\n}\n"
	formatted := "class A {\n    int x;\n}\n"

	out := Unified(orig, formatted, "A.java", 3, false)
	assert.Contains(t, out, "-  int x;")
	assert.Contains(t, out, "+    int x;")
}

func TestUnifiedIsEmptyForIdenticalInput(t *testing.T) {
	src := "class A {}\n"
	out := Unified(src, src, "A.java", 3, false)
	assert.Empty(t, out)
}

func TestUnifiedColorizesAddedAndRemovedLines(t *testing.T) {
	orig := "a\n"
	formatted := "b\n"
	out := Unified(orig, formatted, "f.java", 3, true)
	assert.True(t, strings.Contains(out, colorRed) || strings.Contains(out, colorGreen))
}
