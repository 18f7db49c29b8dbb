package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/davidjspooner/dsflow/pkg/job"
	"gopkg.in/yaml.v3"

	"github.com/davidjspooner/printer-probe/internal/diag"
	"github.com/davidjspooner/printer-probe/internal/framework"
	"github.com/davidjspooner/printer-probe/internal/publisher"
	"github.com/davidjspooner/printer-probe/internal/report"
)

type Config struct {
	Community    string             `yaml:"community"`
	LocalAddress string             `yaml:"local_address"`
	Timeout      string             `yaml:"timeout"`
	Retries      int                `yaml:"retries"`
	MaxSteps     int                `yaml:"max_steps"`
	Concurrency  int                `yaml:"concurrency"`
	Targets      []string           `yaml:"targets"`
	Report       framework.Config   `yaml:"report"`
	Publish      []framework.Config `yaml:"publish"`
}

// Manager runs the diagnostic against every configured target and hands the
// combined report to the configured publishers.
type Manager struct {
	logger      *slog.Logger
	options     diag.Options
	concurrency int
	targets     []string
	generator   report.Interface
	publishers  []publisher.Interface
}

func NewManager(logger *slog.Logger) *Manager {
	return &Manager{logger: logger}
}

func (m *Manager) LoadConfig(configPath string) error {
	config := Config{}

	f, err := os.Open(configPath)
	if err != nil {
		return err
	}
	defer f.Close()
	d := yaml.NewDecoder(f)
	d.KnownFields(true)
	err = d.Decode(&config)
	if err != nil {
		return err
	}

	if len(config.Targets) == 0 {
		return fmt.Errorf("no targets configured")
	}
	if config.Community == "" {
		config.Community = "public"
	}
	if config.Timeout == "" {
		config.Timeout = "2s"
	}
	timeout, err := time.ParseDuration(config.Timeout)
	if err != nil {
		return fmt.Errorf("could not parse timeout: %s", err)
	}
	if config.Concurrency <= 0 {
		config.Concurrency = 10
	}

	m.options = diag.Options{
		Community:    config.Community,
		LocalAddress: config.LocalAddress,
		Timeout:      timeout,
		Retries:      config.Retries,
		MaxSteps:     config.MaxSteps,
		Logger:       m.logger,
	}
	m.concurrency = config.Concurrency
	m.targets = config.Targets

	m.generator, err = newPlugin(config.Report, report.NewReportGenerator)
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}
	m.publishers = nil
	if len(config.Publish) == 0 {
		config.Publish = []framework.Config{{}}
	}
	for n, block := range config.Publish {
		p, err := newPlugin(block, publisher.NewPublisher)
		if err != nil {
			return fmt.Errorf("publish[%d]: %w", n, err)
		}
		m.publishers = append(m.publishers, p)
	}
	return nil
}

// newPlugin pulls the "type" discriminator out of a config block and hands
// the rest to the matching factory.
func newPlugin[T any](block framework.Config, factory func(string, framework.Config) (T, error)) (T, error) {
	var null T
	if block == nil {
		block = framework.Config{}
	}
	kind, err := framework.ConsumeOptionalArg(block, "type", "")
	if err != nil {
		return null, err
	}
	return factory(kind, block)
}

func (m *Manager) RunBatch(ctx context.Context) (bool, error) {
	lock := sync.Mutex{}
	results := make(map[string]*diag.Result, len(m.targets))

	executer := job.NewExecuter[string](log.Default())
	executer.Start(ctx, m.concurrency, func(ctx context.Context, target string) error {
		options := m.options
		options.Target = target
		result := diag.Run(ctx, options)
		lock.Lock()
		defer lock.Unlock()
		results[target] = result
		return nil
	}, m.targets)

	err := executer.WaitForCompletion()
	if err != nil {
		return false, err
	}

	// deterministic report order regardless of completion order
	targets := make([]string, 0, len(results))
	for target := range results {
		targets = append(targets, target)
	}
	sort.Strings(targets)

	allOK := true
	ordered := make([]*diag.Result, 0, len(targets))
	for _, target := range targets {
		result := results[target]
		ordered = append(ordered, result)
		if !result.OK() {
			allOK = false
		}
	}

	text, err := m.generator.Generate(ctx, ordered)
	if err != nil {
		return allOK, err
	}
	generated := time.Now()
	for _, p := range m.publishers {
		if err := p.Publish(ctx, text, generated); err != nil {
			return allOK, err
		}
	}
	return allOK, nil
}
