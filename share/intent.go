package share

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnsupportedIntent is returned for intents that carry nothing to share.
var ErrUnsupportedIntent = errors.New("share: unsupported intent")

// Action is what the sender asked for.
type Action string

const (
	ActionSend         Action = "send"
	ActionSendMultiple Action = "send_multiple"
)

// Intent is an incoming share request.
type Intent struct {
	Action   Action
	MimeType string
	Text     string
	Streams  []string
}

// streams returns the URIs the action actually carries. A single send
// uses only the first stream.
func (in Intent) streams() []string {
	switch in.Action {
	case ActionSend:
		if len(in.Streams) == 0 {
			return nil
		}
		return in.Streams[:1]
	case ActionSendMultiple:
		return in.Streams
	default:
		return nil
	}
}

// FromIntent builds the object to share. Streams win over text.
func FromIntent(in Intent, thumbs Thumbnailer) (Object, error) {
	if in.Action != ActionSend && in.Action != ActionSendMultiple {
		return nil, fmt.Errorf("action %q: %w", in.Action, ErrUnsupportedIntent)
	}
	if uris := in.streams(); len(uris) > 0 {
		suris, err := SurisFromURIs(uris)
		if err != nil {
			return nil, err
		}
		return URIsObject{Suris: suris, Thumbnails: thumbs}, nil
	}
	if in.Text != "" {
		return TextObject{Text: in.Text}, nil
	}
	return nil, fmt.Errorf("action %q without content: %w", in.Action, ErrUnsupportedIntent)
}

// Preload loads the thumbnails of in's streams and drops them, so a later
// share finds them cached.
func Preload(ctx context.Context, thumbs Thumbnailer, in Intent) error {
	uris := in.streams()
	if len(uris) == 0 {
		return nil
	}
	suris, err := SurisFromURIs(uris)
	if err != nil {
		return err
	}
	_, err = URIsObject{Suris: suris, Thumbnails: thumbs}.Words(ctx)
	return err
}
