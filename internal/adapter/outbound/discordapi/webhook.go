package discordapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/jonny/guildbot/internal/domain/model"
	"github.com/jonny/guildbot/internal/domain/port/outbound"
)

// WebhookRelay implements outbound.Relay by executing a platform webhook,
// impersonating the original author and re-uploading every attachment.
type WebhookRelay struct {
	session *discordgo.Session
	id      string
	token   string
	http    *http.Client
}

// NewWebhookRelay creates a relay from a full webhook URL
// (https://discord.com/api/webhooks/<id>/<token>).
func NewWebhookRelay(session *discordgo.Session, webhookURL string) (*WebhookRelay, error) {
	id, token, err := parseWebhookURL(webhookURL)
	if err != nil {
		return nil, err
	}
	return &WebhookRelay{
		session: session,
		id:      id,
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}, nil
}

var _ outbound.Relay = (*WebhookRelay)(nil)

// RelayMessage forwards the message and waits for the platform to confirm
// delivery, returning the relayed copy's reference.
func (w *WebhookRelay) RelayMessage(ctx context.Context, msg model.Message) (model.MessageRef, error) {
	files, closeFiles, err := w.downloadAttachments(ctx, msg.Attachments)
	if err != nil {
		return model.MessageRef{}, err
	}
	defer closeFiles()

	relayed, err := w.session.WebhookExecute(w.id, w.token, true, &discordgo.WebhookParams{
		Content:   msg.Content,
		Username:  msg.Author.Name,
		AvatarURL: msg.Author.AvatarURL,
		Files:     files,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return model.MessageRef{}, fmt.Errorf("executing relay webhook: %w", err)
	}
	return model.MessageRef{ChannelID: relayed.ChannelID, MessageID: relayed.ID}, nil
}

// downloadAttachments streams each attachment for re-upload. The returned
// closer releases the response bodies once the webhook call is done.
func (w *WebhookRelay) downloadAttachments(ctx context.Context, attachments []model.Attachment) ([]*discordgo.File, func(), error) {
	var files []*discordgo.File
	var bodies []*http.Response
	closeAll := func() {
		for _, resp := range bodies {
			_ = resp.Body.Close()
		}
	}

	for _, att := range attachments {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, att.URL, nil)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("building attachment request for %s: %w", att.Filename, err)
		}
		resp, err := w.http.Do(req)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("downloading attachment %s: %w", att.Filename, err)
		}
		if resp.StatusCode != http.StatusOK {
			_ = resp.Body.Close()
			closeAll()
			return nil, nil, fmt.Errorf("downloading attachment %s: status %d", att.Filename, resp.StatusCode)
		}
		bodies = append(bodies, resp)
		files = append(files, &discordgo.File{
			Name:        att.Filename,
			ContentType: att.ContentType,
			Reader:      resp.Body,
		})
	}
	return files, closeAll, nil
}

// parseWebhookURL extracts the webhook id and token from its URL form.
func parseWebhookURL(raw string) (id, token string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("parsing webhook URL: %w", err)
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	// Expected path: api/webhooks/<id>/<token>.
	if len(parts) < 2 || parts[len(parts)-2] == "" || parts[len(parts)-1] == "" {
		return "", "", fmt.Errorf("webhook URL %q has no id/token segments", raw)
	}
	return parts[len(parts)-2], parts[len(parts)-1], nil
}
