package md2html

import (
	"go/ast"
	"go/parser"
	"go/token"
	"path/filepath"
	"regexp"
	"strings"
)

// sourceExtensions are the file types eligible for symbol lookup and
// bare-hash searches.
var sourceExtensions = map[string]bool{
	".go": true, ".py": true, ".js": true, ".jsx": true, ".ts": true,
	".tsx": true, ".rs": true, ".c": true, ".h": true, ".cpp": true,
	".hpp": true, ".cc": true, ".java": true, ".kt": true, ".rb": true,
	".php": true, ".swift": true, ".scala": true, ".sh": true,
}

// isSourceFile reports whether the path is a recognized source file.
func isSourceFile(path string) bool {
	return sourceExtensions[strings.ToLower(filepath.Ext(path))]
}

// findSymbol locates the definition of name in the file and returns its
// 1-based inclusive line span. Go files go through the real parser;
// other languages use per-language definition patterns with indentation
// or brace extent scanning. The first definition in file order wins.
func findSymbol(path string, lines []string, name string) (start, end int, ok bool) {
	if strings.EqualFold(filepath.Ext(path), ".go") {
		if start, end, ok = findGoSymbol(path, lines, name); ok {
			return start, end, true
		}
		// Fall through to pattern matching for files the Go parser rejects.
	}
	return findPatternSymbol(path, lines, name)
}

// findGoSymbol walks the Go AST for a top-level func, method, type,
// const, or var named name.
func findGoSymbol(path string, lines []string, name string) (int, int, bool) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, strings.Join(lines, "\n"), 0)
	if err != nil {
		return 0, 0, false
	}

	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			if d.Name.Name == name {
				return fset.Position(d.Pos()).Line, fset.Position(d.End()).Line, true
			}
		case *ast.GenDecl:
			for _, spec := range d.Specs {
				switch s := spec.(type) {
				case *ast.TypeSpec:
					if s.Name.Name == name {
						return fset.Position(d.Pos()).Line, fset.Position(d.End()).Line, true
					}
				case *ast.ValueSpec:
					for _, ident := range s.Names {
						if ident.Name == name {
							return fset.Position(d.Pos()).Line, fset.Position(d.End()).Line, true
						}
					}
				}
			}
		}
	}
	return 0, 0, false
}

// definitionPatterns yields the definition-line patterns for a file
// extension. %s is replaced with the quoted symbol name. The boolean
// reports whether the language scopes definitions by indentation
// (python style) rather than braces.
func definitionPatterns(ext string) (patterns []string, indentScoped bool) {
	switch ext {
	case ".py":
		return []string{
			`^(\s*)(?:async\s+)?def\s+%s\s*\(`,
			`^(\s*)class\s+%s\s*[(:]`,
			`^(\s*)%s\s*=`,
		}, true
	case ".rb":
		return []string{
			`^(\s*)def\s+%s\b`,
			`^(\s*)class\s+%s\b`,
			`^(\s*)module\s+%s\b`,
		}, true
	case ".rs":
		return []string{
			`^(\s*)(?:pub(?:\([^)]*\))?\s+)?fn\s+%s\b`,
			`^(\s*)(?:pub(?:\([^)]*\))?\s+)?(?:struct|enum|trait)\s+%s\b`,
			`^(\s*)impl(?:<[^>]*>)?\s+%s\b`,
		}, false
	case ".go":
		return []string{
			`^(\s*)func\s+(?:\([^)]*\)\s+)?%s\s*[\[(]`,
			`^(\s*)type\s+%s\b`,
			`^(\s*)(?:var|const)\s+%s\b`,
		}, false
	default:
		// Brace-language defaults: js/ts/c-family/java/kotlin/etc.
		return []string{
			`^(\s*)(?:export\s+)?(?:default\s+)?(?:async\s+)?function\s*\*?\s*%s\s*\(`,
			`^(\s*)(?:export\s+)?(?:abstract\s+)?class\s+%s\b`,
			`^(\s*)(?:export\s+)?(?:const|let|var)\s+%s\s*=`,
			`^(\s*)(?:public|private|protected|static|final|\s)*[\w<>\[\]*]+\s+%s\s*\(`,
		}, false
	}
}

// findPatternSymbol scans for a definition line matching the language's
// patterns and computes its extent.
func findPatternSymbol(path string, lines []string, name string) (int, int, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	templates, indentScoped := definitionPatterns(ext)

	quoted := regexp.QuoteMeta(name)
	for _, tmpl := range templates {
		re := regexp.MustCompile(strings.ReplaceAll(tmpl, "%s", quoted))
		for i, line := range lines {
			m := re.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			if indentScoped {
				return i + 1, indentExtent(lines, i, len(m[1])), true
			}
			return i + 1, braceExtent(lines, i), true
		}
	}
	return 0, 0, false
}

// indentExtent finds the last line of an indentation-scoped definition
// starting at defLine (0-based): the block runs until a non-blank line
// at or below the definition's indent. Trailing blanks are excluded.
func indentExtent(lines []string, defLine, defIndent int) int {
	last := defLine
	for i := defLine + 1; i < len(lines); i++ {
		if isBlankLine(lines[i]) {
			continue
		}
		if leadingWidth(lines[i]) <= defIndent {
			break
		}
		last = i
	}
	return last + 1
}

// leadingWidth measures leading whitespace with tabs counted as one.
func leadingWidth(line string) int {
	for i, r := range line {
		if r != ' ' && r != '\t' {
			return i
		}
	}
	return len(line)
}

// braceExtent finds the last line of a brace-scoped definition starting
// at defLine (0-based) by balancing braces. Definitions with no opening
// brace within a few lines fall back to the definition line alone.
const braceSearchWindow = 3

func braceExtent(lines []string, defLine int) int {
	depth := 0
	opened := false
	for i := defLine; i < len(lines); i++ {
		if !opened && i > defLine+braceSearchWindow {
			break
		}
		for _, r := range lines[i] {
			switch r {
			case '{':
				depth++
				opened = true
			case '}':
				depth--
			}
		}
		if opened && depth <= 0 {
			return i + 1
		}
	}
	return defLine + 1
}
