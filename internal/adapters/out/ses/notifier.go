// Package ses delivers removal notifications as e-mail through Amazon SES v2.
package ses

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

var (
	ErrFromAddressIsRequired = errs.NewValueIsRequiredError("ses from address")
	ErrRecipientHasNoEmail   = errors.New("recipient has no e-mail address")
)

const charset = "UTF-8"

// EmailSender is the subset of the SES v2 client the notifier uses.
type EmailSender interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

var _ ports.Notifier = (*Notifier)(nil)

type Notifier struct {
	client EmailSender
	from   string
	logger *slog.Logger
}

func NewNotifier(client EmailSender, from string, logger *slog.Logger) (*Notifier, error) {
	if client == nil {
		return nil, errs.NewValueIsRequiredError("ses client")
	}
	if strings.TrimSpace(from) == "" {
		return nil, ErrFromAddressIsRequired
	}
	return &Notifier{
		client: client,
		from:   from,
		logger: logger.With("component", "ses-notifier"),
	}, nil
}

// NewNotifierFromEnvironment builds the SES client from the default AWS
// credential chain (environment, shared config, instance role).
func NewNotifierFromEnvironment(ctx context.Context, from string, logger *slog.Logger) (*Notifier, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewNotifier(sesv2.NewFromConfig(cfg), from, logger)
}

func (n *Notifier) Notify(ctx context.Context, msg ports.Notification) error {
	to := msg.Contact.Email()
	if to == "" {
		return fmt.Errorf("%w: %s", ErrRecipientHasNoEmail, msg.Contact.Name())
	}

	subject, body := render(msg)
	out, err := n.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(n.from),
		Destination:      &types.Destination{ToAddresses: []string{to}},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject), Charset: aws.String(charset)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(body), Charset: aws.String(charset)},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("send removal e-mail for item %s: %w", msg.ItemID, err)
	}

	n.logger.DebugContext(ctx, "Removal e-mail sent",
		"kind", msg.Kind.String(),
		"item_id", msg.ItemID.String(),
		"message_id", aws.ToString(out.MessageId),
	)
	return nil
}

func render(msg ports.Notification) (string, string) {
	subject := fmt.Sprintf("Delivery update: %s", msg.ItemName)

	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", msg.Contact.Name())
	switch msg.Kind {
	case ports.SellerRemoval:
		fmt.Fprintf(&b, "Your item %q will no longer be picked up on route %s.\n", msg.ItemName, msg.RouteID)
	default:
		fmt.Fprintf(&b, "Your item %q has been removed from delivery route %s.\n", msg.ItemName, msg.RouteID)
	}
	fmt.Fprintf(&b, "Reason: %s\n", msg.Reason)
	return subject, b.String()
}
