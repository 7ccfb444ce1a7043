package detect

import "testing"

func TestLanguageByPath(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"cmd/annox/main.go", "go"},
		{"src/App.TSX", "typescriptreact"},
		{"Makefile", "make"},
		{"deploy/Dockerfile", "dockerfile"},
		{"nginx.conf.j2", "jinja"},
		{"README.md", "markdown"},
		{"unknown.xyz", ""},
		{"no_extension", ""},
	}
	for _, tc := range cases {
		if got := Language(tc.path, nil); got != tc.want {
			t.Errorf("Language(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}

func TestLanguageByShebang(t *testing.T) {
	cases := []struct {
		content string
		want    string
	}{
		{"#!/usr/bin/env python3\nprint('hi')\n", "python"},
		{"#!/bin/sh\necho hi\n", "shellscript"},
		{"#!/usr/bin/env node", "javascript"},
		{"no shebang here", ""},
	}
	for _, tc := range cases {
		if got := Language("bin/tool", []byte(tc.content)); got != tc.want {
			t.Errorf("Language(shebang %q) = %q, want %q", tc.content, got, tc.want)
		}
	}
}

// .m は内容が MATLAB らしければ Objective-C 扱いしないこと。
func TestLanguageMatlabDisambiguation(t *testing.T) {
	objc := []byte("#import <Foundation/Foundation.h>\n@interface Foo : NSObject\n@end\n")
	if got := Language("Foo.m", objc); got != "objective-c" {
		t.Fatalf("objective-c source detected as %q", got)
	}
	matlab := []byte("% comment\nfunction y = f(x)\ny = x * 2;\nend\n")
	if got := Language("f.m", matlab); got != "" {
		t.Fatalf("matlab source should not claim a tag, got %q", got)
	}
}

func TestNormalizeAndCanonicalList(t *testing.T) {
	if got := Normalize(" C# "); got != "csharp" {
		t.Fatalf("Normalize = %q", got)
	}
	if got := Normalize("Go"); got != "go" {
		t.Fatalf("Normalize = %q", got)
	}
	got := CanonicalList([]string{"py", "Python", "", "ts"})
	if len(got) != 2 || got[0] != "python" || got[1] != "typescript" {
		t.Fatalf("CanonicalList = %v", got)
	}
}

func TestAllowed(t *testing.T) {
	if !Allowed("go", nil) {
		t.Fatal("empty allow list must allow everything")
	}
	if !Allowed("python", []string{"py", "rb"}) {
		t.Fatal("alias in allow list should match")
	}
	if Allowed("go", []string{"python"}) {
		t.Fatal("non-listed tag must be rejected")
	}
	if Allowed("", []string{"go"}) {
		t.Fatal("undetected tag must be rejected when a filter is set")
	}
}
