package model_test

import (
	"strings"
	"testing"

	"github.com/jonny/guildbot/internal/domain/model"
)

func TestComponentIDRoundTrip(t *testing.T) {
	id := model.NewComponentID(model.WorkflowUpdateRoles, "555")

	parsed, err := model.ParseComponentID(id.String())
	if err != nil {
		t.Fatalf("ParseComponentID(%q) error = %v", id.String(), err)
	}
	if parsed.Workflow != model.WorkflowUpdateRoles || parsed.Subject != "555" {
		t.Errorf("parsed = %+v, want workflow %s subject 555", parsed, model.WorkflowUpdateRoles)
	}
}

func TestComponentIDNonceKeepsRendersDistinct(t *testing.T) {
	a := model.NewComponentID(model.WorkflowUpdateRoles, "555")
	b := model.NewComponentID(model.WorkflowUpdateRoles, "555")
	if a.String() == b.String() {
		t.Errorf("two renders produced the same id %q", a.String())
	}
	if len(a.Nonce) != 8 {
		t.Errorf("nonce = %q, want 8 hex chars", a.Nonce)
	}
}

// Routing depends only on workflow and subject; whatever the nonce segment
// holds must not change the parse result.
func TestParseComponentIDIgnoresNonce(t *testing.T) {
	for _, raw := range []string{
		"update_roles:555:ab12cd34",
		"update_roles:555:",
		"update_roles:555",
		"update_roles:555:with:extra:colons",
	} {
		parsed, err := model.ParseComponentID(raw)
		if err != nil {
			t.Errorf("ParseComponentID(%q) error = %v", raw, err)
			continue
		}
		if parsed.Workflow != "update_roles" || parsed.Subject != "555" {
			t.Errorf("ParseComponentID(%q) = %+v", raw, parsed)
		}
	}
}

func TestParseComponentIDRejectsMalformedInput(t *testing.T) {
	for _, raw := range []string{"", "justoneword", ":555:aa", "update_roles::aa", ":"} {
		if _, err := model.ParseComponentID(raw); err == nil {
			t.Errorf("ParseComponentID(%q) error = nil, want malformed-id error", raw)
		}
	}
}

func TestComponentIDStringShape(t *testing.T) {
	id := model.NewComponentID(model.WorkflowConfirmYes, "invocation-1")
	parts := strings.SplitN(id.String(), ":", 3)
	if len(parts) != 3 {
		t.Fatalf("String() = %q, want three colon-separated segments", id.String())
	}
	if parts[0] != model.WorkflowConfirmYes || parts[1] != "invocation-1" {
		t.Errorf("String() = %q", id.String())
	}
}
