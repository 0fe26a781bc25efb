package rodpage

import (
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"testing"
)

var (
	exportBlock = regexp.MustCompile(`(?s)window\.__autofill = \{(.*?)\};`)
	identifier  = regexp.MustCompile(`[A-Za-z_$][A-Za-z0-9_$]*`)
	helperCall  = regexp.MustCompile(`\b[cC]all\("([A-Za-z]+)"`)
	scriptVer   = regexp.MustCompile(`const VERSION = (\d+);`)
)

func helperExports(t *testing.T) map[string]bool {
	t.Helper()

	m := exportBlock.FindStringSubmatch(helperJS)
	if m == nil {
		t.Fatalf("helper script does not assign window.__autofill")
	}

	exports := make(map[string]bool)
	for _, entry := range strings.Split(m[1], ",") {
		name, _, _ := strings.Cut(entry, ":")
		if id := identifier.FindString(strings.TrimSpace(name)); id != "" {
			exports[id] = true
		}
	}
	return exports
}

// calledMethods collects the helper methods named by Go code in dirs.
func calledMethods(t *testing.T, dirs ...string) map[string][]string {
	t.Helper()

	called := make(map[string][]string)
	for _, dir := range dirs {
		files, err := filepath.Glob(filepath.Join(dir, "*.go"))
		if err != nil {
			t.Fatalf("listing %s: %v", dir, err)
		}

		for _, file := range files {
			if strings.HasSuffix(file, "_test.go") {
				continue
			}

			src, err := os.ReadFile(file)
			if err != nil {
				t.Fatalf("reading %s: %v", file, err)
			}

			for _, m := range helperCall.FindAllStringSubmatch(string(src), -1) {
				called[m[1]] = append(called[m[1]], file)
			}
		}
	}
	return called
}

func TestHelperExportsEveryCalledMethod(t *testing.T) {
	t.Parallel()

	exports := helperExports(t)
	called := calledMethods(t, ".", filepath.Join("..", "..", "overlay"))

	if len(called) < 10 {
		t.Fatalf("expected to find the helper calls, got %v", called)
	}

	for method, files := range called {
		if !exports[method] {
			t.Errorf("%s calls %q, which the helper script does not export", strings.Join(files, ", "), method)
		}
	}
}

func TestHelperVersionMatches(t *testing.T) {
	t.Parallel()

	m := scriptVer.FindStringSubmatch(helperJS)
	if m == nil {
		t.Fatalf("helper script has no VERSION")
	}

	version, err := strconv.Atoi(m[1])
	if err != nil || version != helperVersion {
		t.Fatalf("expected script version %d, got %s", helperVersion, m[1])
	}

	if !helperExports(t)["version"] {
		t.Fatalf("helper script does not export its version")
	}
}
