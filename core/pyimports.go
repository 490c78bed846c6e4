package core

import (
	"github.com/go-python/gpython/ast"
	"github.com/go-python/gpython/parser"
)

// ExtractImports parses Python source and returns the modules it imports, in
// traversal order without duplicates. Plain imports contribute the dotted
// module path of each alias; from-imports contribute "<module>.<name>" per
// imported symbol, so `from collections import OrderedDict` yields
// "collections.OrderedDict" and a relative `from . import x` yields ".x".
// Parse failures are returned as-is so callers can count the file as ignored.
func ExtractImports(src []byte) ([]string, error) {
	tree, err := parser.ParseString(string(src), "exec")
	if err != nil {
		return nil, err
	}

	imports := []string{}
	seen := make(map[string]struct{})
	observe := func(name string) {
		if _, dup := seen[name]; dup {
			return
		}
		seen[name] = struct{}{}
		imports = append(imports, name)
	}

	ast.Walk(tree, func(node ast.Ast) bool {
		switch stmt := node.(type) {
		case *ast.Import:
			for _, alias := range stmt.Names {
				observe(string(alias.Name))
			}
		case *ast.ImportFrom:
			for _, alias := range stmt.Names {
				observe(string(stmt.Module) + "." + string(alias.Name))
			}
		}
		return true
	})
	return imports, nil
}
