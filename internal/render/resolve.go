package render

import (
	"github.com/muurk/quickpanel/internal/logging"
	"github.com/muurk/quickpanel/internal/module"
	"go.uber.org/zap"
)

func (r renderer) text(t module.Text, def string) (out string) {
	if !t.Dynamic() {
		return t.Value
	}
	fn, ok := r.res.Text[t.Resolver]
	if !ok {
		return def
	}
	defer recoverTo(t.Resolver, func() { out = def })
	return fn(r.snap)
}

func (r renderer) flag(name string) (out bool) {
	fn, ok := r.res.Flag[name]
	if !ok {
		return false
	}
	defer recoverTo(name, func() { out = false })
	return fn(r.snap)
}

func (r renderer) list(name string) (out []module.Item) {
	fn, ok := r.res.List[name]
	if !ok {
		return nil
	}
	defer recoverTo(name, func() { out = nil })
	return fn(r.snap)
}

func (r renderer) level(name string) (out int) {
	fn, ok := r.res.Level[name]
	if !ok {
		return 0
	}
	defer recoverTo(name, func() { out = 0 })
	return fn(r.snap)
}

// recoverTo turns a resolver panic into fallback.
func recoverTo(resolver string, fallback func()) {
	if p := recover(); p != nil {
		logging.Warn("resolver panicked",
			zap.String("resolver", resolver),
			zap.Any("panic", p),
		)
		fallback()
	}
}
