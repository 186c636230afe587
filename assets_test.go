package pvsim

import (
	"io/fs"
	"strings"
	"testing"
)

func TestDatabaseFSContainsHardwareTables(t *testing.T) {
	fsys := DatabaseFS()
	data, err := fs.ReadFile(fsys, "sandia_modules.yaml")
	if err != nil {
		t.Fatalf("expected the sandia table to be readable: %v", err)
	}
	if !strings.Contains(string(data), "Frontier_ML_220W") {
		t.Fatalf("expected the sandia table to carry the bench module")
	}
}

func TestReportTemplatesFSContainsTextTemplate(t *testing.T) {
	fsys := ReportTemplatesFS()
	data, err := fs.ReadFile(fsys, "report.text.tpl")
	if err != nil {
		t.Fatalf("expected the text template to be readable: %v", err)
	}
	if !strings.Contains(string(data), "AC energy") {
		t.Fatalf("expected the text template to carry the energy trailer")
	}
}
