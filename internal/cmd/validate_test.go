package cmd

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateCommand(t *testing.T) {
	f := newSearchFixture(t, "https://dav.example.edu", "# courses\nC1,Intro\nC2,Advanced\n\n")

	out, err := executeCommand(t, NewValidateCommand(), f.args("validate", "--include-internal"))
	if err != nil {
		t.Fatalf("validate failed: %v\n%s", err, out)
	}

	wants := []string{
		"Endpoint: https://dav.example.edu (login user)",
		`Search: "syllabus" (exclude: image*)`,
		"Max depth: 100",
		"Identifiers: 2 from",
		"C1: /bbcswebdav/courses/C1/, /bbcswebdav/internal/courses/C1/",
		"C2: /bbcswebdav/courses/C2/",
		"Configuration is valid",
	}
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}
	if strings.Contains(out, "secret") {
		t.Error("validate must not print the password")
	}
}

func TestValidateCommand_Errors(t *testing.T) {
	tests := []struct {
		name           string
		connection     string
		extra          []string
		wantErrContain string
	}{
		{
			name:           "no webdav section",
			connection:     "[other]\nRoot = https://x\n",
			wantErrContain: "[webdav]",
		},
		{
			name:           "no root",
			connection:     "[webdav]\nLogin = user\n",
			wantErrContain: "Root",
		},
		{
			name:           "comment character as delimiter",
			extra:          []string{"--delimiter", "#"},
			wantErrContain: "invalid delimiter",
		},
		{
			name:           "bad delimiter",
			extra:          []string{"--delimiter", "::"},
			wantErrContain: "delimiter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSearchFixture(t, "https://dav.example.edu", "C1\n")
			if tt.connection != "" {
				f.connection = filepath.Join(f.dir, "custom.ini")
				writeFile(t, f.connection, tt.connection)
			}

			_, err := executeCommand(t, NewValidateCommand(), f.args("validate", tt.extra...))
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErrContain) {
				t.Errorf("Expected error containing %q, got: %v", tt.wantErrContain, err)
			}
		})
	}
}

func TestValidateCommand_Warnings(t *testing.T) {
	f := newSearchFixture(t, "http://dav.example.edu", "C1\nC1\n")

	out, err := executeCommand(t, NewValidateCommand(), f.args("validate", "--timeout", "0", "--exclude", ""))
	if err != nil {
		t.Fatalf("Warnings must not fail validation: %v", err)
	}

	for _, want := range []string{
		"Warning: Duplicate identifiers",
		"Warning: No exclude patterns",
		"Warning: Credentials sent without TLS",
		"Warning: No request timeout",
		"Search: \"syllabus\" (exclude: none)",
		"Configuration is valid",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}
}
