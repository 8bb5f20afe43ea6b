package sticker

// Message types for leaf state transitions. Every message carries the ID of
// the leaf that issued the load, so results never cross between stickers.

// LoadedMsg reports that an image finished loading.
type LoadedMsg struct {
	ID   string
	Size Size
}

// LoadFailedMsg reports that an asset could not be loaded or decoded.
type LoadFailedMsg struct {
	ID  string
	Err error
}

type animationReadyMsg struct {
	id   string
	meta Lottie
}

type frameMsg struct {
	id string
}
