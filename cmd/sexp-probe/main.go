// sexp-probe cross-checks a .kicad_sym file against two s-expression
// parsers: the library's own reader and github.com/chewxy/sexp. Useful
// when a library file fails to parse and the question is whether the
// file or the parser is at fault.
package main

import (
	"fmt"
	"os"

	"github.com/chewxy/sexp"

	"github.com/circuitsmith/kisvg/pkg/sexpr"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: sexp-probe <symbol_library_file>")
		os.Exit(1)
	}

	filename := os.Args[1]
	file, err := os.Open(filename)
	if err != nil {
		panic(err)
	}
	defer file.Close()

	info, _ := file.Stat()
	fmt.Printf("File size: %d bytes (%.2f KB)\n", info.Size(), float64(info.Size())/1024)

	fmt.Println("\nAttempt 1: Using sexpr.Parse(io.Reader)...")
	nodes, err := sexpr.Parse(file)
	if err != nil {
		fmt.Printf("  Error: %v\n", err)
	} else {
		fmt.Printf("  Success! Parsed %d top-level expressions\n", len(nodes))
		for i, n := range nodes {
			if l, ok := n.(sexpr.List); ok {
				fmt.Printf("  Expression #%d kind: %s (%d children)\n", i+1, l.Kind(), l.Len()-1)
			}
		}
	}

	// Reset file pointer
	file.Seek(0, 0)

	fmt.Println("\nAttempt 2: Using sexp.Parse(io.Reader)...")
	sexps, err := sexp.Parse(file)
	if err != nil {
		fmt.Printf("  Error: %v\n", err)
	} else {
		fmt.Printf("  Success! Parsed %d s-expressions\n", len(sexps))
		if len(sexps) > 0 {
			fmt.Printf("  First sexp is leaf: %v\n", sexps[0].IsLeaf())
			if !sexps[0].IsLeaf() {
				fmt.Printf("  Leaf count: %d\n", sexps[0].LeafCount())
			}
		}
	}
}
