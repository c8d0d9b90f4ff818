package reldate

// FormatHook observes formatter operations. After hooks may rewrite ctx.Result.
type FormatHook interface {
	BeforeFormat(ctx *FormatContext)
	AfterFormat(ctx *FormatContext)
}

// FormatContext describes one formatting call
type FormatContext struct {
	Operation         Operation
	RequestedLanguage string
	// Language is the language the phrase was actually rendered in
	Language  string
	Unit      Unit
	Value     int
	Direction Direction
	Result    string
	// Fallback is set when the phrase came from a language other than the requested one
	Fallback bool
	Metadata map[string]any
}

func (ctx *FormatContext) ensureMetadata() {
	if ctx.Metadata == nil {
		ctx.Metadata = make(map[string]any)
	}
}

func (ctx *FormatContext) SetMetadata(key string, value any) {
	if ctx == nil || key == "" {
		return
	}
	ctx.ensureMetadata()
	ctx.Metadata[key] = value
}

func (ctx *FormatContext) MetadataValue(key string) (any, bool) {
	if ctx == nil || ctx.Metadata == nil {
		return nil, false
	}
	val, ok := ctx.Metadata[key]
	return val, ok
}

type FormatHookFuncs struct {
	Before func(ctx *FormatContext)
	After  func(ctx *FormatContext)
}

func (h FormatHookFuncs) BeforeFormat(ctx *FormatContext) {
	if h.Before != nil {
		h.Before(ctx)
	}
}

func (h FormatHookFuncs) AfterFormat(ctx *FormatContext) {
	if h.After != nil {
		h.After(ctx)
	}
}

func filterHooks(hooks []FormatHook) []FormatHook {
	if len(hooks) == 0 {
		return nil
	}
	filtered := make([]FormatHook, 0, len(hooks))
	for _, hook := range hooks {
		if hook == nil {
			continue
		}
		filtered = append(filtered, hook)
	}
	if len(filtered) == 0 {
		return nil
	}
	return filtered
}

// runHooks wraps render with the Before and After hooks and returns the final result
func runHooks(hooks []FormatHook, ctx *FormatContext, render func(ctx *FormatContext)) string {
	for _, hook := range hooks {
		hook.BeforeFormat(ctx)
	}

	render(ctx)

	for _, hook := range hooks {
		hook.AfterFormat(ctx)
	}

	return ctx.Result
}
