package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
)

// GoModParser locates and reads go.mod files
type GoModParser struct {
	cache *Cache[string, string]
}

// NewGoModParser creates a new go.mod parser; parsed module paths are cached
func NewGoModParser() *GoModParser {
	return &GoModParser{
		cache: NewCache[string, string](),
	}
}

// ParseModuleName extracts the module path from a go.mod file
func (p *GoModParser) ParseModuleName(goModPath string) (string, error) {
	cleanPath := filepath.Clean(goModPath)
	if filepath.Base(cleanPath) != "go.mod" {
		return "", fmt.Errorf("file is not a go.mod file: %s", goModPath)
	}

	return p.cache.GetOrLoad(cleanPath, func() (string, error) {
		content, err := os.ReadFile(cleanPath)
		if err != nil {
			return "", fmt.Errorf("failed to read go.mod file: %w", err)
		}

		modFile, err := modfile.ParseLax(cleanPath, content, nil)
		if err != nil {
			return "", fmt.Errorf("failed to parse go.mod file: %w", err)
		}

		if modFile.Module == nil || strings.TrimSpace(modFile.Module.Mod.Path) == "" {
			return "", fmt.Errorf("no module declaration found in %s", cleanPath)
		}

		return modFile.Module.Mod.Path, nil
	})
}

// FindGoModFile searches for go.mod starting from startDir and walking up
func (p *GoModParser) FindGoModFile(startDir string) (string, error) {
	currentDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		goModPath := filepath.Join(currentDir, "go.mod")
		if info, err := os.Stat(goModPath); err == nil && !info.IsDir() {
			return goModPath, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return "", fmt.Errorf("go.mod file not found above %s", startDir)
}

// ModulePath returns the path of the module containing dir
func (p *GoModParser) ModulePath(dir string) (string, error) {
	goModPath, err := p.FindGoModFile(dir)
	if err != nil {
		return "", err
	}
	return p.ParseModuleName(goModPath)
}
