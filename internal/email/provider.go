package email

// Message is a plain outbound email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Provider delivers messages. The caller's contract is accept-and-forget:
// delivery guarantees and retries belong to the provider, not the core.
type Provider interface {
	Send(msg *Message) error
}
