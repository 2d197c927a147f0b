package service_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/jonny/guildbot/internal/domain/model"
	"github.com/jonny/guildbot/internal/domain/port/outbound"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// waitFor polls cond until it holds or the deadline expires.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("condition not reached before deadline")
}

// --- mock Responder ---

type mockResponder struct {
	mu           sync.Mutex
	replies      []outbound.Reply
	deferrals    []bool
	deferUpdates int
	edits        []string
}

func (m *mockResponder) Respond(_ context.Context, reply outbound.Reply) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies = append(m.replies, reply)
	return nil
}

func (m *mockResponder) Defer(_ context.Context, ephemeral bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deferrals = append(m.deferrals, ephemeral)
	return nil
}

func (m *mockResponder) DeferUpdate(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deferUpdates++
	return nil
}

func (m *mockResponder) EditResponse(_ context.Context, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.edits = append(m.edits, content)
	return nil
}

func (m *mockResponder) Replies() []outbound.Reply {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]outbound.Reply(nil), m.replies...)
}

func (m *mockResponder) Edits() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.edits...)
}

func (m *mockResponder) DeferUpdateCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deferUpdates
}

var _ outbound.Responder = (*mockResponder)(nil)

// --- mock Directory ---

type mockDirectory struct {
	mu         sync.Mutex
	roles      map[string][]string // userID -> role ids
	rolesErr   error
	messages   map[string]model.Message // messageID -> message
	messageErr error
	users      map[string]model.User
	userErr    error
	channels   map[string]model.Channel
	channelErr error
}

func (m *mockDirectory) Message(_ context.Context, _, messageID string) (model.Message, error) {
	if m.messageErr != nil {
		return model.Message{}, m.messageErr
	}
	msg, ok := m.messages[messageID]
	if !ok {
		return model.Message{}, fmt.Errorf("message %s not found", messageID)
	}
	return msg, nil
}

func (m *mockDirectory) User(_ context.Context, userID string) (model.User, error) {
	if m.userErr != nil {
		return model.User{}, m.userErr
	}
	user, ok := m.users[userID]
	if !ok {
		return model.User{}, fmt.Errorf("user %s not found", userID)
	}
	return user, nil
}

func (m *mockDirectory) Channel(_ context.Context, channelID string) (model.Channel, error) {
	if m.channelErr != nil {
		return model.Channel{}, m.channelErr
	}
	ch, ok := m.channels[channelID]
	if !ok {
		return model.Channel{}, fmt.Errorf("channel %s not found", channelID)
	}
	return ch, nil
}

func (m *mockDirectory) MemberRoleIDs(_ context.Context, _, userID string) ([]string, error) {
	if m.rolesErr != nil {
		return nil, m.rolesErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.roles[userID]...), nil
}

var _ outbound.Directory = (*mockDirectory)(nil)

// --- mock RoleManager ---

// mockRoleManager mutates the directory's role map so consecutive toggles
// observe live state, the way the real platform does.
type mockRoleManager struct {
	dir       *mockDirectory
	added     []string
	removed   []string
	addErr    error
	removeErr error
}

func (m *mockRoleManager) AddRole(_ context.Context, _, userID, roleID string) error {
	if m.addErr != nil {
		return m.addErr
	}
	m.added = append(m.added, roleID)
	m.dir.mu.Lock()
	m.dir.roles[userID] = append(m.dir.roles[userID], roleID)
	m.dir.mu.Unlock()
	return nil
}

func (m *mockRoleManager) RemoveRole(_ context.Context, _, userID, roleID string) error {
	if m.removeErr != nil {
		return m.removeErr
	}
	m.removed = append(m.removed, roleID)
	m.dir.mu.Lock()
	var kept []string
	for _, id := range m.dir.roles[userID] {
		if id != roleID {
			kept = append(kept, id)
		}
	}
	m.dir.roles[userID] = kept
	m.dir.mu.Unlock()
	return nil
}

var _ outbound.RoleManager = (*mockRoleManager)(nil)

// --- mock Messenger ---

type sentMessage struct {
	channelID string
	content   string
	buttons   []model.Button
	replyTo   *model.MessageRef
	ref       model.MessageRef
}

type mockMessenger struct {
	mu      sync.Mutex
	sent    []sentMessage
	edits   map[string]string // messageID -> latest content
	sendErr error
	nextID  int
}

func (m *mockMessenger) record(channelID, content string, buttons []model.Button, replyTo *model.MessageRef) (model.MessageRef, error) {
	if m.sendErr != nil {
		return model.MessageRef{}, m.sendErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	ref := model.MessageRef{ChannelID: channelID, MessageID: fmt.Sprintf("m%d", m.nextID)}
	m.sent = append(m.sent, sentMessage{
		channelID: channelID,
		content:   content,
		buttons:   buttons,
		replyTo:   replyTo,
		ref:       ref,
	})
	return ref, nil
}

func (m *mockMessenger) Send(_ context.Context, channelID, content string) (model.MessageRef, error) {
	return m.record(channelID, content, nil, nil)
}

func (m *mockMessenger) SendButtons(_ context.Context, channelID, content string, buttons []model.Button) (model.MessageRef, error) {
	return m.record(channelID, content, buttons, nil)
}

func (m *mockMessenger) SendReply(_ context.Context, channelID, content string, ref model.MessageRef) (model.MessageRef, error) {
	replyTo := ref
	return m.record(channelID, content, nil, &replyTo)
}

func (m *mockMessenger) Edit(_ context.Context, ref model.MessageRef, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.edits == nil {
		m.edits = make(map[string]string)
	}
	m.edits[ref.MessageID] = content
	return nil
}

func (m *mockMessenger) Sent() []sentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentMessage(nil), m.sent...)
}

func (m *mockMessenger) EditOf(messageID string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.edits[messageID]
}

var _ outbound.Messenger = (*mockMessenger)(nil)

// --- mock HistoryPurger ---

type mockHistory struct {
	mu        sync.Mutex
	ids       []string
	idsErr    error
	deleted   [][]string
	deleteErr error
}

func (m *mockHistory) MessageIDs(_ context.Context, _ string) ([]string, error) {
	if m.idsErr != nil {
		return nil, m.idsErr
	}
	return append([]string(nil), m.ids...), nil
}

func (m *mockHistory) BulkDelete(_ context.Context, _ string, messageIDs []string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, append([]string(nil), messageIDs...))
	return nil
}

func (m *mockHistory) Deleted() [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]string(nil), m.deleted...)
}

var _ outbound.HistoryPurger = (*mockHistory)(nil)

// --- mock Relay ---

type mockRelay struct {
	calls []model.Message
	ref   model.MessageRef
	err   error
}

func (m *mockRelay) RelayMessage(_ context.Context, msg model.Message) (model.MessageRef, error) {
	if m.err != nil {
		return model.MessageRef{}, m.err
	}
	m.calls = append(m.calls, msg)
	return m.ref, nil
}

var _ outbound.Relay = (*mockRelay)(nil)

// --- mock JournalRepository ---

type mockJournal struct {
	mu      sync.Mutex
	entries []model.JournalEntry
	err     error
}

func (m *mockJournal) Create(_ context.Context, entry model.JournalEntry) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockJournal) ListRecent(_ context.Context, _ int) ([]model.JournalEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.JournalEntry(nil), m.entries...), nil
}

func (m *mockJournal) Entries() []model.JournalEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.JournalEntry(nil), m.entries...)
}

var _ outbound.JournalRepository = (*mockJournal)(nil)

// --- mock CommandPublisher ---

type mockPublisher struct {
	published [][]model.CommandSpec
	guildIDs  []string
	err       error
}

func (m *mockPublisher) Publish(_ context.Context, guildID string, commands []model.CommandSpec) error {
	if m.err != nil {
		return m.err
	}
	m.guildIDs = append(m.guildIDs, guildID)
	m.published = append(m.published, append([]model.CommandSpec(nil), commands...))
	return nil
}

var _ outbound.CommandPublisher = (*mockPublisher)(nil)
