package publisher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/davidjspooner/printer-probe/internal/framework"
)

type filePublisher struct {
	fileName string
}

var _ Interface = &filePublisher{}

func init() {
	Register("file", newFilePublisher)
}

func newFilePublisher(args framework.Config) (Interface, error) {
	p := &filePublisher{}
	err := framework.CheckFields(args, "filename")
	if err != nil {
		return nil, err
	}
	p.fileName, err = framework.ConsumeArg[string](args, "filename")
	if err != nil {
		return nil, err
	}
	if p.fileName == "" {
		return nil, fmt.Errorf("filename is required")
	}
	return p, nil
}

// Publish writes atomically via a sibling temp file so a reader never sees a
// half-written report.
func (p *filePublisher) Publish(ctx context.Context, report string, generated time.Time) error {
	dir := filepath.Dir(p.fileName)
	tmp, err := os.CreateTemp(dir, filepath.Base(p.fileName)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.WriteString(report); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), p.fileName)
}
