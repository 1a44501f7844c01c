package parser

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/maki-build/maki/pkg/task"
)

func TestParser_ParseContent_SimpleTargets(t *testing.T) {
	content := "build:\n\techo building\n\ntest:\n\techo testing\n\nclean:\n\trm -rf build/\n"

	targets := NewParser().ParseContent("Makefile", content)

	if len(targets) != 3 {
		t.Fatalf("expected 3 targets, got %d", len(targets))
	}
	names := []string{targets[0].Name, targets[1].Name, targets[2].Name}
	if !reflect.DeepEqual(names, []string{"build", "test", "clean"}) {
		t.Errorf("unexpected names: %v", names)
	}
}

func TestParser_ParseContent_RoundTrip(t *testing.T) {
	targets := NewParser().ParseContent("Makefile", "name1: dep1 dep2 ## desc\n")

	if len(targets) != 1 {
		t.Fatalf("expected 1 target, got %d", len(targets))
	}
	got := targets[0]
	if got.Name != "name1" {
		t.Errorf("expected name 'name1', got %q", got.Name)
	}
	if !reflect.DeepEqual(got.Dependencies, []string{"dep1", "dep2"}) {
		t.Errorf("unexpected dependencies: %v", got.Dependencies)
	}
	if got.Description != "desc" {
		t.Errorf("expected description 'desc', got %q", got.Description)
	}
}

func TestParser_ParseContent_InlineDescriptionScenario(t *testing.T) {
	targets := NewParser().ParseContent("Makefile", "build: ## Build\n\tcargo build\n")

	if len(targets) != 1 {
		t.Fatalf("expected 1 target, got %d", len(targets))
	}
	got := targets[0]
	if got.Name != "build" || got.Description != "Build" {
		t.Errorf("unexpected target: %+v", got)
	}
	if len(got.Dependencies) != 0 || len(got.RequiredVars) != 0 {
		t.Errorf("expected no deps and no vars: %+v", got)
	}
}

func TestParser_ParseContent_RecipeVarScenario(t *testing.T) {
	targets := NewParser().ParseContent("Makefile", "deploy:\n\t./deploy.sh --env $(ENV)\n")

	if len(targets) != 1 {
		t.Fatalf("expected 1 target, got %d", len(targets))
	}
	got := targets[0]
	if got.Description != "" {
		t.Errorf("expected no description, got %q", got.Description)
	}
	if len(got.RequiredVars) != 1 || got.RequiredVars[0].Name != "ENV" || got.RequiredVars[0].Hint != "" {
		t.Errorf("unexpected required vars: %+v", got.RequiredVars)
	}
}

func TestParser_ParseContent_HintAndRecipeMerge(t *testing.T) {
	content := "# usage V=a|b|c\nbump:\n\t./bump.sh $(V) $(OTHER)\n"

	targets := NewParser().ParseContent("Makefile", content)

	if len(targets) != 1 {
		t.Fatalf("expected 1 target, got %d", len(targets))
	}
	vars := targets[0].RequiredVars
	if len(vars) != 2 {
		t.Fatalf("expected 2 vars, got %+v", vars)
	}
	if vars[0].Name != "V" || vars[0].Hint != "a|b|c" {
		t.Errorf("unexpected first var: %+v", vars[0])
	}
	if vars[1].Name != "OTHER" || vars[1].Hint != "" {
		t.Errorf("unexpected second var: %+v", vars[1])
	}
}

func TestParser_ParseContent_SkipsAssignments(t *testing.T) {
	content := "CC := gcc\nCFLAGS ?= -Wall\nLDFLAGS += -lm\n\nbuild:\n\techo building\n"

	targets := NewParser().ParseContent("Makefile", content)

	if len(targets) != 1 || targets[0].Name != "build" {
		t.Errorf("assignments must not become targets: %+v", targets)
	}
}

func TestParser_ParseContent_SkipsTargetScopedAssignments(t *testing.T) {
	content := "print-tag: TAG:=$(shell git tag | tail -1)\nprint-tag:\n\t@echo $(TAG)\n"

	targets := NewParser().ParseContent("Makefile", content)

	if len(targets) != 1 {
		t.Fatalf("expected 1 target, got %+v", targets)
	}
	if targets[0].Name != "print-tag" || targets[0].Line != 2 {
		t.Errorf("unexpected target: %+v", targets[0])
	}
	// The scoped assignment is never scanned; the recipe reference is.
	if len(targets[0].RequiredVars) != 1 || targets[0].RequiredVars[0].Name != "TAG" {
		t.Errorf("unexpected vars: %+v", targets[0].RequiredVars)
	}
}

func TestParser_ParseContent_DuplicateTargetsKeepFirst(t *testing.T) {
	content := "build:\n\techo first\n\nbuild:\n\techo again\n"

	targets := NewParser().ParseContent("Makefile", content)

	if len(targets) != 1 || targets[0].Line != 1 {
		t.Errorf("expected the first occurrence only, got %+v", targets)
	}
}

func TestParser_ParseContent_PrivateAndPatternRecordsKept(t *testing.T) {
	// The parser keeps everything; visibility is task.Filter's job.
	content := "build:\n\techo b\n\n_internal:\n\techo i\n\n%.o: %.c\n\t$(CC) -c $<\n"

	targets := NewParser().ParseContent("Makefile", content)
	if len(targets) != 3 {
		t.Fatalf("parser must not filter, got %d targets", len(targets))
	}

	visible := task.Filter(targets, task.FilterOptions{})
	if len(visible) != 1 || visible[0].Name != "build" {
		t.Errorf("default filter should leave only 'build': %+v", visible)
	}

	all := task.Filter(targets, task.FilterOptions{IncludePrivate: true, IncludePatterns: true})
	if len(all) != 3 {
		t.Errorf("expected all targets with filters open, got %d", len(all))
	}
}

func TestParser_ParseContent_Idempotent(t *testing.T) {
	content := "# usage V=a|b\nbuild: dep ## Build it\n\trun $(V) $(X)\n"

	p := NewParser()
	first := p.ParseContent("Makefile", content)
	second := p.ParseContent("Makefile", content)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("parsing is not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestParser_ParseContent_LineNumbers(t *testing.T) {
	content := "\n# Line 1 is blank\nbuild:\n\techo building\n\ntest:\n\techo testing\n"

	targets := NewParser().ParseContent("Makefile", content)

	if targets[0].Line != 3 {
		t.Errorf("expected build at line 3, got %d", targets[0].Line)
	}
	if targets[1].Line != 6 {
		t.Errorf("expected test at line 6, got %d", targets[1].Line)
	}
}

func TestParser_ParseContent_EmptyFile(t *testing.T) {
	if targets := NewParser().ParseContent("Makefile", ""); len(targets) != 0 {
		t.Errorf("empty content should yield no targets, got %+v", targets)
	}
}

func TestParser_ParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Makefile")
	if err := os.WriteFile(path, []byte("build: ## Build\n\techo hi\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	targets, err := NewParser().ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	if len(targets) != 1 || targets[0].File != path {
		t.Errorf("unexpected result: %+v", targets)
	}
}

func TestParser_ParseFile_Missing(t *testing.T) {
	_, err := NewParser().ParseFile(filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestParser_ExtraExclusions(t *testing.T) {
	p := NewParser("GOFLAGS")
	targets := p.ParseContent("Makefile", "build:\n\tgo build $(GOFLAGS) $(PKG)\n")

	vars := targets[0].RequiredVars
	if len(vars) != 1 || vars[0].Name != "PKG" {
		t.Errorf("extra exclusion not honored: %+v", vars)
	}
}
