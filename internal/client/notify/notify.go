// Package notify carries transient user-facing notices (toasts) from the
// client logic to whatever presents them. Senders never block on the
// presenter.
package notify

type Kind int

const (
	KindSuccess Kind = iota
	KindInfo
	KindWarning
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindInfo:
		return "info"
	case KindWarning:
		return "warning"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

type Notice struct {
	Kind Kind
	Text string
}

// Notifier accepts notices. Implementations must return immediately.
type Notifier interface {
	Notify(n Notice)
}

func Success(n Notifier, text string) { n.Notify(Notice{Kind: KindSuccess, Text: text}) }
func Info(n Notifier, text string)    { n.Notify(Notice{Kind: KindInfo, Text: text}) }
func Warn(n Notifier, text string)    { n.Notify(Notice{Kind: KindWarning, Text: text}) }
func Error(n Notifier, text string)   { n.Notify(Notice{Kind: KindError, Text: text}) }

// Discard drops every notice.
type Discard struct{}

func (Discard) Notify(Notice) {}
