package session_test

import (
	"errors"
	"testing"

	"github.com/VoBaNguyen/qaconf/pkg/session"
	"github.com/VoBaNguyen/qaconf/pkg/testsupport"
)

func TestLinearFirstNavigationMustHitEntry(t *testing.T) {
	sess := testsupport.NewSession(t, testsupport.WizardDoc())

	err := sess.NavigateTo("paths")
	var denied *session.NavigationDeniedError
	if !errors.As(err, &denied) {
		t.Fatalf("NavigateTo(paths) returned %v, want *NavigationDeniedError", err)
	}

	if err := sess.NavigateTo("basic"); err != nil {
		t.Fatalf("NavigateTo(basic): %v", err)
	}
	if sess.Current() != "basic" {
		t.Fatalf("Current() = %q", sess.Current())
	}
}

func TestLinearForwardGatedOnCompletion(t *testing.T) {
	sess := testsupport.NewSession(t, testsupport.WizardDoc())
	if err := sess.NavigateTo("basic"); err != nil {
		t.Fatalf("NavigateTo(basic): %v", err)
	}

	// basic is incomplete: virtuoso_cmd has no value yet.
	err := sess.NavigateTo("qa_types")
	var denied *session.NavigationDeniedError
	if !errors.As(err, &denied) {
		t.Fatalf("forward navigation with incomplete section returned %v", err)
	}

	testsupport.FillSection(t, sess, "basic")
	if err := sess.NavigateTo("qa_types"); err != nil {
		t.Fatalf("NavigateTo(qa_types) after completion: %v", err)
	}
}

func TestLinearBackwardNeverFails(t *testing.T) {
	sess := testsupport.NewSession(t, testsupport.WizardDoc())
	testsupport.FillSection(t, sess, "basic")
	if err := sess.NavigateTo("basic"); err != nil {
		t.Fatalf("NavigateTo: %v", err)
	}
	if err := sess.NavigateTo("qa_types"); err != nil {
		t.Fatalf("NavigateTo: %v", err)
	}

	// qa_types is incomplete; back must still be allowed.
	if err := sess.NavigateTo("basic"); err != nil {
		t.Fatalf("backward navigation failed: %v", err)
	}
}

func TestLinearDeniesSkippingAhead(t *testing.T) {
	sess := testsupport.NewSession(t, testsupport.WizardDoc())
	testsupport.FillSection(t, sess, "basic")
	if err := sess.NavigateTo("basic"); err != nil {
		t.Fatalf("NavigateTo: %v", err)
	}

	var denied *session.NavigationDeniedError
	if err := sess.NavigateTo("paths"); !errors.As(err, &denied) {
		t.Fatalf("NavigateTo(paths) from basic returned %v", err)
	}
}

func TestFreeShapeAllowsAnyTarget(t *testing.T) {
	sess := testsupport.NewSession(t, testsupport.DashboardDoc())

	for _, target := range []string{"paths", "basic", "qa_types", "paths"} {
		if err := sess.NavigateTo(target); err != nil {
			t.Fatalf("NavigateTo(%s): %v", target, err)
		}
		if sess.Current() != target {
			t.Fatalf("Current() = %q, want %q", sess.Current(), target)
		}
	}
}

func TestNavigateToUnknownSectionDenied(t *testing.T) {
	sess := testsupport.NewSession(t, testsupport.DashboardDoc())
	var denied *session.NavigationDeniedError
	if err := sess.NavigateTo("ghost"); !errors.As(err, &denied) {
		t.Fatalf("NavigateTo(ghost) returned %v", err)
	}
}

func TestNavigateToEmptyTargetDeniedBeforeFirstNavigation(t *testing.T) {
	// Before any navigation the current section id is also empty; the no-op
	// shortcut must not let "" through as if it were a real section.
	for _, doc := range []struct {
		name string
		sess func(t *testing.T) *session.Session
	}{
		{"linear", func(t *testing.T) *session.Session { return testsupport.NewSession(t, testsupport.WizardDoc()) }},
		{"free", func(t *testing.T) *session.Session { return testsupport.NewSession(t, testsupport.DashboardDoc()) }},
	} {
		t.Run(doc.name, func(t *testing.T) {
			sess := doc.sess(t)
			var denied *session.NavigationDeniedError
			if err := sess.NavigateTo(""); !errors.As(err, &denied) {
				t.Fatalf("NavigateTo(%q) returned %v, want *NavigationDeniedError", "", err)
			}
			if sess.Current() != "" {
				t.Fatalf("Current() = %q after denied navigation", sess.Current())
			}
		})
	}
}

func TestNavigateToCurrentIsIdempotentNoOp(t *testing.T) {
	sess := testsupport.NewSession(t, testsupport.DashboardDoc())
	if err := sess.NavigateTo("qa_types"); err != nil {
		t.Fatalf("NavigateTo: %v", err)
	}

	before, _ := sess.Section("qa_types")
	if before.Visit() != session.Active {
		t.Fatalf("visit state = %v, want Active", before.Visit())
	}

	for i := 0; i < 2; i++ {
		if err := sess.NavigateTo("qa_types"); err != nil {
			t.Fatalf("repeat NavigateTo: %v", err)
		}
	}

	if before.Visit() != session.Active {
		t.Fatalf("visit state changed to %v after no-op navigation", before.Visit())
	}
	if sess.Current() != "qa_types" {
		t.Fatalf("Current() = %q", sess.Current())
	}
}

func TestVisitStateTransitions(t *testing.T) {
	sess := testsupport.NewSession(t, testsupport.DashboardDoc())

	basic, _ := sess.Section("basic")
	qa, _ := sess.Section("qa_types")
	paths, _ := sess.Section("paths")

	if basic.Visit() != session.Unvisited || qa.Visit() != session.Unvisited {
		t.Fatal("sections not Unvisited at session start")
	}

	if err := sess.NavigateTo("basic"); err != nil {
		t.Fatalf("NavigateTo: %v", err)
	}
	if err := sess.NavigateTo("qa_types"); err != nil {
		t.Fatalf("NavigateTo: %v", err)
	}

	if basic.Visit() != session.Visited {
		t.Fatalf("basic = %v, want Visited", basic.Visit())
	}
	if qa.Visit() != session.Active {
		t.Fatalf("qa_types = %v, want Active", qa.Visit())
	}
	if paths.Visit() != session.Unvisited {
		t.Fatalf("paths = %v, want Unvisited", paths.Visit())
	}

	// Active is re-enterable from Visited.
	if err := sess.NavigateTo("basic"); err != nil {
		t.Fatalf("NavigateTo: %v", err)
	}
	if basic.Visit() != session.Active {
		t.Fatalf("basic = %v, want Active again", basic.Visit())
	}
}

func TestWizardScenarioThreeSections(t *testing.T) {
	// A=basic (required), B=qa_types (required), C=paths (optional).
	sess := testsupport.NewSession(t, testsupport.WizardDoc())
	if err := sess.NavigateTo("basic"); err != nil {
		t.Fatalf("NavigateTo: %v", err)
	}

	testsupport.FillSection(t, sess, "basic")
	if err := sess.NavigateTo("qa_types"); err != nil {
		t.Fatalf("NavigateTo(qa_types): %v", err)
	}

	// Leave one qa_types field invalid: reaching paths must fail.
	var denied *session.NavigationDeniedError
	if err := sess.NavigateTo("paths"); !errors.As(err, &denied) {
		t.Fatalf("NavigateTo(paths) with incomplete qa_types returned %v", err)
	}

	testsupport.FillSection(t, sess, "qa_types")
	if err := sess.NavigateTo("paths"); err != nil {
		t.Fatalf("NavigateTo(paths) after completion: %v", err)
	}
}
