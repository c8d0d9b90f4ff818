package reldate

import "github.com/sirupsen/logrus"

// NewLogHook reports silent language fallbacks at debug level and every
// rendered phrase at trace level.
func NewLogHook(logger logrus.FieldLogger) FormatHook {
	if logger == nil {
		return nil
	}
	return FormatHookFuncs{
		After: func(ctx *FormatContext) {
			fields := logrus.Fields{
				"operation": string(ctx.Operation),
				"requested": ctx.RequestedLanguage,
				"language":  ctx.Language,
			}
			if ctx.Unit != UnitNone {
				fields["unit"] = ctx.Unit.String()
				fields["value"] = ctx.Value
				fields["direction"] = ctx.Direction.String()
			}

			entry := logger.WithFields(fields)
			if ctx.Fallback {
				entry.Debug("reldate: language fallback")
				return
			}
			entry.WithField("result", ctx.Result).Trace("reldate: formatted")
		},
	}
}
