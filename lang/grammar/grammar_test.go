package grammar

import (
	"os"
	"testing"

	"golang.org/x/exp/ebnf"
)

// TestEBNF checks that grammar.ebnf is well-formed and that every
// production is reachable from Program, grounded on nenuphar's own
// grammar_test.go (same package, same ebnf.Parse/Verify round trip),
// adapted to Ghost's single grammar file and its "Program" start symbol
// (Ghost has no second dialect the way nenuphar's Lua-compat grammar did).
func TestEBNF(t *testing.T) {
	f, err := os.Open("grammar.ebnf")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	g, err := ebnf.Parse("grammar.ebnf", f)
	if err != nil {
		t.Fatal(err)
	}
	if err := ebnf.Verify(g, "Program"); err != nil {
		t.Fatal(err)
	}
}
