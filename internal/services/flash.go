package services

import (
	"context"

	"deliverypro-backend-go/internal/session"
)

// Flash is a one-shot notification: at most one per session, consumed on the
// first read. Icon and Class are derived from the kind for rendering.
type Flash struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Icon    string `json:"icon"`
	Class   string `json:"class"`
}

// SetFlash overwrites the session's single flash slot. A message set before
// the previous one was read is simply lost.
func SetFlash(ctx context.Context, sessions session.Store, sid, kind, message string) error {
	if err := sessions.Set(ctx, sid, session.FieldFlashKind, kind); err != nil {
		return err
	}
	return sessions.Set(ctx, sid, session.FieldFlashMsg, message)
}

// GetFlash consumes the flash slot, returning nil when it is empty.
func GetFlash(ctx context.Context, sessions session.Store, sid string) (*Flash, error) {
	kind, err := sessions.Get(ctx, sid, session.FieldFlashKind)
	if err != nil {
		return nil, err
	}
	message, err := sessions.Get(ctx, sid, session.FieldFlashMsg)
	if err != nil {
		return nil, err
	}
	if kind == "" && message == "" {
		return nil, nil
	}
	if err := sessions.Delete(ctx, sid, session.FieldFlashKind, session.FieldFlashMsg); err != nil {
		return nil, err
	}
	return &Flash{
		Kind:    kind,
		Message: message,
		Icon:    flashIcon(kind),
		Class:   flashClass(kind),
	}, nil
}

func flashIcon(kind string) string {
	switch kind {
	case "success":
		return "check-circle"
	case "warning":
		return "exclamation-circle"
	default:
		return "exclamation-triangle"
	}
}

func flashClass(kind string) string {
	if kind == "error" {
		return "danger"
	}
	return kind
}
