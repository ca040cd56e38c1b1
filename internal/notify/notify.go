// Package notify sends run summaries to chat and webhook services through
// shoutrrr service URLs (slack://, discord://, telegram://, generic://, ...).
//
// Notification is best effort. Callers log a returned error and carry on;
// a failed notification never changes the outcome of a run.
package notify

import (
	"context"
	"io"
	"log"
	"strings"
	"time"

	shoutrrr "github.com/nicholas-fedor/shoutrrr"
	"github.com/nicholas-fedor/shoutrrr/pkg/router"
	stypes "github.com/nicholas-fedor/shoutrrr/pkg/types"

	"github.com/thoreinstein/crosspost/internal/doctor"
	"github.com/thoreinstein/crosspost/internal/errors"
	"github.com/thoreinstein/crosspost/internal/logging"
)

// DefaultTimeout bounds a single delivery to all services.
const DefaultTimeout = 10 * time.Second

// ErrNoURLs is returned by New when no service URL is configured.
var ErrNoURLs = errors.New("no notification URLs configured")

// Message is a notification ready to send.
type Message struct {
	Title string
	Body  string
}

// Notifier delivers messages to every configured service.
type Notifier struct {
	urls   []string
	sender *router.ServiceRouter
}

// New builds a notifier for urls. Invalid URLs are rejected here so that a
// misconfiguration surfaces before any post is published. A zero timeout
// selects DefaultTimeout.
func New(urls []string, timeout time.Duration) (*Notifier, error) {
	var cleaned []string
	for _, u := range urls {
		if u = strings.TrimSpace(u); u != "" {
			cleaned = append(cleaned, u)
		}
	}
	if len(cleaned) == 0 {
		return nil, ErrNoURLs
	}

	sender, err := shoutrrr.CreateSender(cleaned...)
	if err != nil {
		return nil, errors.Wrap(redact(err, cleaned), "creating notification sender")
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	sender.Timeout = timeout
	sender.SetLogger(log.New(io.Discard, "", 0))

	return &Notifier{urls: cleaned, sender: sender}, nil
}

// Services returns the configured URLs with credentials masked.
func (n *Notifier) Services() []string {
	masked := make([]string, len(n.urls))
	for i, u := range n.urls {
		masked[i] = doctor.MaskURL(u)
	}
	return masked
}

// Send delivers msg to every service. The returned error joins the
// failures of individual services; services that succeeded are not retried.
func (n *Notifier) Send(ctx context.Context, msg Message) error {
	logger := logging.FromContext(ctx)

	params := stypes.Params{}
	if msg.Title != "" {
		params.SetTitle(msg.Title)
	}

	var failed []string
	for i, err := range n.sender.Send(msg.Body, &params) {
		if err == nil {
			continue
		}
		err = redact(err, n.urls)
		service := ""
		if i < len(n.urls) {
			service = doctor.MaskURL(n.urls[i])
		}
		logger.Debug("notification failed", "service", service, "error", err)
		failed = append(failed, err.Error())
	}
	if len(failed) > 0 {
		return errors.Newf("sending notification: %s", strings.Join(failed, "; "))
	}

	logger.Debug("notification sent", "services", len(n.urls))
	return nil
}

// redact replaces any configured URL quoted in err with its masked form.
// Service errors often echo the URL, tokens included.
func redact(err error, urls []string) error {
	msg := err.Error()
	replaced := msg
	for _, u := range urls {
		replaced = strings.ReplaceAll(replaced, u, doctor.MaskURL(u))
	}
	if replaced == msg {
		return err
	}
	return errors.New(replaced)
}
