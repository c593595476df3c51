//go:build !dev
// +build !dev

package runtime

import "github.com/vcrobe/nojs-ssr/console"

// callOnInit invokes the OnInit lifecycle method in production mode.
// In production mode, panics are recovered and logged to prevent application crashes.
func callOnInit(initializer Initializer, key string) {
	defer func() {
		if rec := recover(); rec != nil {
			console.Error("OnInit panic in component", key, rec)
		}
	}()
	initializer.OnInit()
}

// callOnDestroy invokes the OnDestroy lifecycle method in production mode.
// In production mode, panics are recovered and logged to prevent application crashes.
func callOnDestroy(cleaner Cleaner, key string) {
	defer func() {
		if rec := recover(); rec != nil {
			console.Error("OnDestroy panic in component", key, rec)
		}
	}()
	cleaner.OnDestroy()
}

// callMountHook invokes a VNode OnMount hook in production mode.
func callMountHook(hook func()) {
	defer func() {
		if rec := recover(); rec != nil {
			console.Error("OnMount hook panic", rec)
		}
	}()
	hook()
}
