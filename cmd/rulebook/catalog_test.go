// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"path/filepath"
	"testing"
)

func TestExportPath(t *testing.T) {
	tests := []struct {
		catalogDir string
		format     string
		want       string
	}{
		{"catalog", "yaml", filepath.Join("catalog", "index", "export.yaml")},
		{"catalog", "json", filepath.Join("catalog", "index", "export.json")},
		{"catalog", "", filepath.Join("catalog", "index", "export.yaml")},
		{filepath.Join("tmp", "alt"), "yaml", filepath.Join("tmp", "alt", "index", "export.yaml")},
	}

	for _, tt := range tests {
		if got := exportPath(tt.catalogDir, tt.format); got != tt.want {
			t.Errorf("exportPath(%q, %q) = %q, want %q", tt.catalogDir, tt.format, got, tt.want)
		}
	}
}
