//go:build dev
// +build dev

package runtime

// callOnInit invokes the OnInit lifecycle method in development mode.
// In dev mode, panics propagate to aid debugging and fast failure.
func callOnInit(initializer Initializer, key string) {
	initializer.OnInit()
}

// callOnDestroy invokes the OnDestroy lifecycle method in development mode.
// In dev mode, panics propagate to aid debugging and fast failure.
func callOnDestroy(cleaner Cleaner, key string) {
	cleaner.OnDestroy()
}

// callMountHook invokes a VNode OnMount hook in development mode.
func callMountHook(hook func()) {
	hook()
}
