package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/davidjspooner/printer-probe/internal/diag"
	"github.com/davidjspooner/printer-probe/internal/framework"
)

type Interface interface {
	Generate(ctx context.Context, results []*diag.Result) (string, error)
}

type FactoryFunc func(args framework.Config) (Interface, error)

var factories map[string]FactoryFunc

func Register(reportType string, f FactoryFunc) {
	if factories == nil {
		factories = make(map[string]FactoryFunc)
	}
	factories[reportType] = f
}

func NewReportGenerator(reportType string, args framework.Config) (Interface, error) {
	if f, ok := factories[reportType]; ok {
		return f(args)
	}
	supported := make([]string, 0, len(factories))
	for k := range factories {
		supported = append(supported, k)
	}
	return nil, fmt.Errorf("unknown report generator type %s, should be one of %s", reportType, strings.Join(supported, ","))
}
