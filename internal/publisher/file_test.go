package publisher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/davidjspooner/printer-probe/internal/framework"
)

func TestFilePublisher(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	p, err := NewPublisher("file", framework.Config{"filename": path})
	if err != nil {
		t.Fatal(err)
	}

	if err := p.Publish(context.Background(), "first\n", time.Now()); err != nil {
		t.Fatal(err)
	}
	if err := p.Publish(context.Background(), "second\n", time.Now()); err != nil {
		t.Fatal(err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "second\n" {
		t.Errorf("got %q", content)
	}

	// the temp file must not be left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory holds %d entries, want just the report", len(entries))
	}
}

func TestFilePublisherRejectsUnknownFields(t *testing.T) {
	_, err := NewPublisher("file", framework.Config{"filename": "x", "mode": "0644"})
	if err == nil {
		t.Error("expected error for unexpected field")
	}
}
