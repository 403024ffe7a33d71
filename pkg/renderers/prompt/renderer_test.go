package prompt_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/VoBaNguyen/qaconf/pkg/gate"
	"github.com/VoBaNguyen/qaconf/pkg/render"
	"github.com/VoBaNguyen/qaconf/pkg/renderers/prompt"
	"github.com/VoBaNguyen/qaconf/pkg/testsupport"
)

// scriptDriver replays queued answers and records every message it was shown,
// standing in for the terminal.
type scriptDriver struct {
	t *testing.T

	inputs   []string
	confirms []bool
	selects  []int

	asked []string
	infos []string
}

func (d *scriptDriver) Input(_ context.Context, cfg prompt.InputConfig) (string, error) {
	d.t.Helper()
	if len(d.inputs) == 0 {
		d.t.Fatalf("unexpected input prompt %q", cfg.Message)
	}
	d.asked = append(d.asked, cfg.Message)
	out := d.inputs[0]
	d.inputs = d.inputs[1:]
	return out, nil
}

func (d *scriptDriver) Confirm(_ context.Context, cfg prompt.ConfirmConfig) (bool, error) {
	d.t.Helper()
	if len(d.confirms) == 0 {
		d.t.Fatalf("unexpected confirm prompt %q", cfg.Message)
	}
	d.asked = append(d.asked, cfg.Message)
	out := d.confirms[0]
	d.confirms = d.confirms[1:]
	return out, nil
}

func (d *scriptDriver) Select(_ context.Context, cfg prompt.SelectConfig) (int, error) {
	d.t.Helper()
	if len(d.selects) == 0 {
		d.t.Fatalf("unexpected select prompt %q", cfg.Message)
	}
	d.asked = append(d.asked, cfg.Message)
	out := d.selects[0]
	d.selects = d.selects[1:]
	if out < 0 || out >= len(cfg.Options) {
		d.t.Fatalf("scripted index %d out of range for %q", out, cfg.Message)
	}
	return out, nil
}

func (d *scriptDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

type recordingCreator struct {
	req   *gate.Request
	calls int
}

func (c *recordingCreator) CreatePackage(_ context.Context, req gate.Request) (gate.Outcome, error) {
	c.calls++
	c.req = &req
	return gate.Outcome{Ref: "pkg-0001", Detail: "7 values"}, nil
}

func TestDriveWalksEverySectionAndCreates(t *testing.T) {
	sess := testsupport.NewSession(t, testsupport.WizardDoc())
	creator := &recordingCreator{}
	g, err := gate.New(gate.Config{
		Session:        sess,
		Creator:        creator,
		CreateRequires: []string{"basic", "qa_types"},
	})
	if err != nil {
		t.Fatalf("gate.New: %v", err)
	}
	ctrl, err := render.NewController(sess, g)
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}

	driver := &scriptDriver{
		t: t,
		// virtuoso_cmd: too short once, then valid; run_count: not a number
		// once, then valid; output_dir left empty.
		inputs:   []string{"mv", "mvirtuoso -fdry gf", "four", "4", ""},
		confirms: []bool{true, false, true}, // cdf, drc, create
		selects:  []int{0, 1},               // techlib=gf12lpp, log_level=INFO
	}
	r := prompt.New(prompt.WithPromptDriver(driver))

	if got := r.Name(); got != "wizard" {
		t.Fatalf("Name() = %q, want %q", got, "wizard")
	}
	if err := r.Drive(context.Background(), ctrl, render.Options{}); err != nil {
		t.Fatalf("Drive: %v", err)
	}

	if len(driver.inputs)+len(driver.confirms)+len(driver.selects) != 0 {
		t.Fatalf("script not fully consumed: %d inputs, %d confirms, %d selects left",
			len(driver.inputs), len(driver.confirms), len(driver.selects))
	}

	// Section headers appear in graph order.
	wantHeaders := []string{"[ Basic Configuration ]", "[ QA Types ]", "[ Paths ]"}
	var headers []string
	for _, msg := range driver.infos {
		if strings.HasPrefix(msg, "[ ") {
			headers = append(headers, msg)
		}
	}
	if len(headers) != len(wantHeaders) {
		t.Fatalf("headers = %v, want %v", headers, wantHeaders)
	}
	for i := range wantHeaders {
		if headers[i] != wantHeaders[i] {
			t.Fatalf("headers[%d] = %q, want %q", i, headers[i], wantHeaders[i])
		}
	}

	// The invalid first answer produced a retry notice.
	if !containsSubstring(driver.infos, "Virtuoso Command") {
		t.Fatalf("expected a validation notice for Virtuoso Command, got %v", driver.infos)
	}
	if !containsSubstring(driver.infos, "not a number") {
		t.Fatalf("expected a parse notice for Run Count, got %v", driver.infos)
	}

	if creator.calls != 1 {
		t.Fatalf("creator called %d times, want 1", creator.calls)
	}
	if got, _ := creator.req.Value("virtuoso_cmd"); got != "mvirtuoso -fdry gf" {
		t.Fatalf("request virtuoso_cmd = %v", got)
	}
	if got, _ := creator.req.Value("run_count"); got != float64(4) {
		t.Fatalf("request run_count = %v, want 4", got)
	}
	if !containsSubstring(driver.infos, "pkg-0001") {
		t.Fatalf("expected the create outcome ref to be reported, got %v", driver.infos)
	}
}

func TestDriveSkipsDisabledActions(t *testing.T) {
	sess := testsupport.NewSession(t, testsupport.WizardDoc())
	// No creator and no comparer: both actions stay blocked.
	g, err := gate.New(gate.Config{Session: sess})
	if err != nil {
		t.Fatalf("gate.New: %v", err)
	}
	ctrl, err := render.NewController(sess, g)
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}

	driver := &scriptDriver{
		t:        t,
		inputs:   []string{"mvirtuoso -fdry gf", "4", ""},
		confirms: []bool{true, false}, // cdf, drc; no action confirms
		selects:  []int{0, 1},
	}
	r := prompt.New(prompt.WithPromptDriver(driver))
	if err := r.Drive(context.Background(), ctrl, render.Options{}); err != nil {
		t.Fatalf("Drive: %v", err)
	}

	if !containsSubstring(driver.infos, "Create Package unavailable") {
		t.Fatalf("expected a create-unavailable notice, got %v", driver.infos)
	}
}

func TestDriveStopsOnAbort(t *testing.T) {
	sess := testsupport.NewSession(t, testsupport.WizardDoc())
	ctrl, err := render.NewController(sess, nil)
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}

	r := prompt.New(prompt.WithPromptDriver(abortDriver{}))
	if err := r.Drive(context.Background(), ctrl, render.Options{}); !errors.Is(err, prompt.ErrAborted) {
		t.Fatalf("Drive error = %v, want ErrAborted", err)
	}
}

// abortDriver aborts at the first prompt, as Ctrl+C would.
type abortDriver struct{}

func (abortDriver) Input(context.Context, prompt.InputConfig) (string, error) {
	return "", prompt.ErrAborted
}
func (abortDriver) Confirm(context.Context, prompt.ConfirmConfig) (bool, error) {
	return false, prompt.ErrAborted
}
func (abortDriver) Select(context.Context, prompt.SelectConfig) (int, error) {
	return 0, prompt.ErrAborted
}
func (abortDriver) Info(context.Context, string) error { return nil }

func containsSubstring(msgs []string, sub string) bool {
	for _, m := range msgs {
		if strings.Contains(m, sub) {
			return true
		}
	}
	return false
}
