package sl

import "log/slog"

func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

func Module(mod string) slog.Attr {
	return slog.Attr{
		Key:   "mod",
		Value: slog.StringValue(mod),
	}
}

func MemberID(id uint) slog.Attr {
	return slog.Attr{
		Key:   "member_id",
		Value: slog.Uint64Value(uint64(id)),
	}
}
