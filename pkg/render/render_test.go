package render_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/VoBaNguyen/qaconf/pkg/gate"
	"github.com/VoBaNguyen/qaconf/pkg/render"
	"github.com/VoBaNguyen/qaconf/pkg/session"
	"github.com/VoBaNguyen/qaconf/pkg/testsupport"
)

type namedRenderer struct{ name string }

func (n namedRenderer) Name() string { return n.name }

type snapshotRenderer struct{ namedRenderer }

func (snapshotRenderer) ContentType() string { return "text/plain" }
func (snapshotRenderer) Render(context.Context, render.View, render.Options) ([]byte, error) {
	return []byte("ok"), nil
}

func TestRegistryRegisterAndLookup(t *testing.T) {
	reg := render.NewRegistry()
	reg.MustRegister(snapshotRenderer{namedRenderer{"summary"}})
	reg.MustRegister(namedRenderer{"stub"})

	if err := reg.Register(namedRenderer{"stub"}); err == nil {
		t.Fatal("duplicate registration accepted")
	}
	if err := reg.Register(namedRenderer{""}); err == nil {
		t.Fatal("empty name accepted")
	}

	if _, err := reg.Snapshot("summary"); err != nil {
		t.Fatalf("Snapshot(summary): %v", err)
	}
	if _, err := reg.Snapshot("stub"); err == nil {
		t.Fatal("Snapshot(stub) should fail: no snapshot capability")
	}
	if _, err := reg.Interactive("summary"); err == nil {
		t.Fatal("Interactive(summary) should fail: not interactive")
	}
	if _, err := reg.Get("ghost"); err == nil {
		t.Fatal("Get(ghost) should fail")
	}

	want := []string{"stub", "summary"}
	if diff := cmp.Diff(want, reg.List()); diff != "" {
		t.Fatalf("List mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildViewProjectsSessionState(t *testing.T) {
	sess := testsupport.NewSession(t, testsupport.DashboardDoc())
	testsupport.FillSection(t, sess, "basic")
	if err := sess.NavigateTo("basic"); err != nil {
		t.Fatalf("NavigateTo: %v", err)
	}

	view := render.BuildView(context.Background(), sess, nil)

	if view.SessionID != "qa-package" || view.Current != "basic" {
		t.Fatalf("view header = %q/%q", view.SessionID, view.Current)
	}
	basic, ok := view.Section("basic")
	if !ok {
		t.Fatal("basic section missing from view")
	}
	if !basic.Active || !basic.Complete || basic.Visit != session.Active {
		t.Fatalf("basic projection = %+v", basic)
	}
	qa, _ := view.Section("qa_types")
	if qa.Active || qa.Complete {
		t.Fatalf("qa_types projection = %+v", qa)
	}
	if len(basic.Fields) != 3 {
		t.Fatalf("basic has %d fields in view", len(basic.Fields))
	}
}

func TestControllerDispatch(t *testing.T) {
	sess := testsupport.NewSession(t, testsupport.DashboardDoc())
	creator := creatorFunc(func(ctx context.Context, req gate.Request) (gate.Outcome, error) {
		return gate.Outcome{Detail: "done"}, nil
	})
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
	ctx := context.Background()

	if _, err := ctrl.Dispatch(ctx, render.Edit{FieldID: "virtuoso_cmd", Value: "mvirtuoso -fdry gf"}); err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if _, err := ctrl.Dispatch(ctx, render.Edit{FieldID: "run_count", Value: 2}); err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if _, err := ctrl.Dispatch(ctx, render.Navigate{SectionID: "qa_types"}); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if _, err := ctrl.Dispatch(ctx, render.Toggle{SectionID: "paths"}); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if _, err := ctrl.Dispatch(ctx, render.Toggle{SectionID: "ghost"}); err == nil {
		t.Fatal("Toggle on unknown section accepted")
	}

	view := ctrl.View(ctx)
	if view.Current != "qa_types" {
		t.Fatalf("Current = %q", view.Current)
	}
	paths, _ := view.Section("paths")
	if paths.Expanded {
		t.Fatal("Toggle did not collapse paths")
	}
	if !view.Readiness.CreateEnabled {
		t.Fatalf("create disabled: %s", view.Readiness.CreateReason)
	}

	inv, err := ctrl.Dispatch(ctx, render.Invoke{Action: gate.ActionCreate})
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if inv == nil {
		t.Fatal("Invoke returned nil invocation")
	}
	if outcome, err := inv.Wait(ctx); err != nil || outcome.Detail != "done" {
		t.Fatalf("Wait = (%+v, %v)", outcome, err)
	}
}

func TestControllerInvokeWithoutGate(t *testing.T) {
	sess := testsupport.NewSession(t, testsupport.DashboardDoc())
	ctrl, err := render.NewController(sess, nil)
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}

	_, err = ctrl.Dispatch(context.Background(), render.Invoke{Action: gate.ActionCreate})
	var notReady *gate.ActionNotReadyError
	if !errors.As(err, &notReady) {
		t.Fatalf("Invoke without gate returned %v", err)
	}
}

type creatorFunc func(ctx context.Context, req gate.Request) (gate.Outcome, error)

func (fn creatorFunc) CreatePackage(ctx context.Context, req gate.Request) (gate.Outcome, error) {
	return fn(ctx, req)
}
