// Package search coordinates one interactive user search.
//
// A [Session] owns everything a single search screen shows: the committed
// username, its profile, the accumulated repository pages and the current
// autocomplete suggestions. It drives a [Fetcher] and a [SuggestionSource]
// and reports every visible change to a [Renderer].
//
// # Lifecycle
//
//	Idle ──Submit──▶ Searching ──ok──▶ Loaded ◀──▶ LoadingMore
//	                     │                │              │
//	                     └──fail──▶ Error └──short page──┴──▶ Exhausted
//
// Submit fetches the profile and the first repository page concurrently and
// publishes them together. LoadMore appends the next page; a failed page is
// rolled back so the same page is requested again on retry.
//
// # Superseded results
//
// Every Submit starts a new generation. Responses that settle after a newer
// Submit (or a Reset) are dropped without touching state or the renderer, so
// searching "alice" then "bob" never shows alice's repositories under bob.
// Suggestion lookups carry their own generation and are dropped the same way
// once the input has moved on.
//
// # Concurrency
//
// All Session methods are safe for concurrent use. Submit and LoadMore block
// until their requests settle; Input returns immediately and looks up
// suggestions on a timer goroutine.
//
// Renderer callbacks are serialized: a generation is checked and its output
// rendered without another operation's output in between, so the last
// rendered search is always the current one. Callbacks run without the state
// lock held, so a renderer may call [Session.Snapshot], but it must not call
// any other Session method and should return promptly; a slow renderer
// delays every other operation that renders.
package search
