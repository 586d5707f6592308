package logger

import (
	"log/slog"
	"strconv"
)

// Error records err under "error". Nil yields an empty attribute.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Errors groups the non-nil errors under "errors".
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

func UserID(id any) slog.Attr         { return optional("user_id", id) }
func ManufacturerID(id any) slog.Attr { return optional("manufacturer_id", id) }
func ProductID(id any) slog.Attr      { return optional("product_id", id) }
func LeadID(id any) slog.Attr         { return optional("lead_id", id) }
func RequestID(id any) slog.Attr      { return optional("request_id", id) }

// Component records the emitting package or subsystem.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event records a domain event name such as "signed_in".
func Event(name string) slog.Attr {
	return slog.String("event", name)
}

// Action records an admin action name.
func Action(name string) slog.Attr {
	return slog.String("action", name)
}

func optional(key string, v any) slog.Attr {
	if v == nil {
		return slog.Attr{}
	}
	return slog.Any(key, v)
}
