package deps

import (
	"bufio"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// JavaResolver maps Java import statements onto .java files under the
// repository root. Imports that resolve outside the repo (JDK, third
// party) simply find no file and are dropped.
type JavaResolver struct {
	RepoRoot string
}

// Imports parses the file's import statements and returns the absolute
// paths of those that exist under the repo root.
func (r JavaResolver) Imports(absPath string) []string {
	_, imports := ExtractJavaImports(absPath)

	var resolved []string
	for _, imp := range imports {
		relPath, ok := javaImportToRelPath(imp)
		if !ok {
			continue
		}
		candidate := filepath.Join(r.RepoRoot, relPath)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			resolved = append(resolved, candidate)
		}
	}
	return resolved
}

// ExtractJavaImports reads a Java file line by line and returns its
// package name and import statements. Lines are matched by prefix only;
// trailing semicolons are stripped. Read failures warn and yield nothing.
func ExtractJavaImports(path string) (pkg string, imports []string) {
	f, err := os.Open(path)
	if err != nil {
		log.Printf("Warning: could not read file %s: %v", path, err)
		return "", nil
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case strings.HasPrefix(line, "package "):
			pkg = strings.TrimSuffix(strings.TrimPrefix(line, "package "), ";")
		case strings.HasPrefix(line, "import "):
			imp := strings.TrimSuffix(strings.TrimPrefix(line, "import "), ";")
			imports = append(imports, imp)
		}
	}
	if err := scanner.Err(); err != nil {
		log.Printf("Warning: could not read file %s: %v", path, err)
	}
	return pkg, imports
}

// javaImportToRelPath converts an import like "org.example.model.Gene"
// into "org/example/model/Gene.java". Imports without a package part are
// rejected.
func javaImportToRelPath(imp string) (string, bool) {
	parts := strings.Split(strings.TrimSpace(imp), ".")
	if len(parts) < 2 {
		return "", false
	}
	className := parts[len(parts)-1]
	pkgParts := parts[:len(parts)-1]
	if className == "" {
		return "", false
	}
	return filepath.Join(filepath.Join(pkgParts...), className+".java"), true
}
