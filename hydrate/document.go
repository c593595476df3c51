package hydrate

// Names shared with the server rendered document.
const (
	// HeadStartName and HeadEndName name the meta tags bracketing the managed
	// head tags, where the head app mounts.
	HeadStartName = "nojs-head-start"
	HeadEndName   = "nojs-head-end"

	// AppID is the id of the element holding the body app.
	AppID = "nojs-app"

	// DataGlobal is the window property holding the data route loaders
	// transferred from the server.
	DataGlobal = "__NOJS_DATA__"
)
