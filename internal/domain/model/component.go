package model

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// Workflow names routable through component identifiers. A component whose
// workflow matches none of these is stale or foreign and must be ignored.
const (
	WorkflowUpdateRoles = "update_roles"
	WorkflowConfirmYes  = "confirm_yes"
	WorkflowConfirmNo   = "confirm_no"
)

// ComponentID is the structured form of a component's custom identifier,
// serialized as "<workflow>:<subject>:<nonce>". The nonce exists only to keep
// identifiers unique across renders; it is never interpreted.
type ComponentID struct {
	Workflow string
	Subject  string
	Nonce    string
}

// NewComponentID builds an identifier for the given workflow and subject with
// a fresh random nonce.
func NewComponentID(workflow, subject string) ComponentID {
	buf := make([]byte, 4)
	_, _ = rand.Read(buf)
	return ComponentID{Workflow: workflow, Subject: subject, Nonce: hex.EncodeToString(buf)}
}

// String serializes the identifier in wire form.
func (c ComponentID) String() string {
	return c.Workflow + ":" + c.Subject + ":" + c.Nonce
}

// ParseComponentID splits a custom identifier into workflow and subject.
// The nonce segment is retained verbatim but otherwise ignored; identifiers
// missing a subject are rejected.
func ParseComponentID(raw string) (ComponentID, error) {
	parts := strings.SplitN(raw, ":", 3)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return ComponentID{}, fmt.Errorf("malformed component id %q", raw)
	}
	id := ComponentID{Workflow: parts[0], Subject: parts[1]}
	if len(parts) == 3 {
		id.Nonce = parts[2]
	}
	return id, nil
}

// ButtonStyle selects the visual treatment of a rendered button.
type ButtonStyle string

const (
	ButtonSecondary ButtonStyle = "secondary"
	ButtonSuccess   ButtonStyle = "success"
	ButtonDanger    ButtonStyle = "danger"
)

// Button describes one button component to render on a message.
type Button struct {
	Label    string
	Emoji    string
	Style    ButtonStyle
	CustomID string
}
