package ports

import "context"

// OutboundEmail is one email to be delivered by the mail gateway.
type OutboundEmail struct {
	// To is the recipient address.
	To string

	// Subject is the email subject line.
	Subject string

	// Body is the plain-text body.
	Body string
}

// MailGateway is the port towards the concrete email transport. The core never
// calls it directly; only the delivery worker does.
type MailGateway interface {
	// Deliver sends one email.
	Deliver(ctx context.Context, email OutboundEmail) error
}
