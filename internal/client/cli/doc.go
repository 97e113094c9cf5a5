// Package cli provides the interactive LinkedIn-clone terminal client.
//
// It wires configuration, local storage, the REST client, the session store
// and the screen views behind a REPL. Startup restores the persisted
// session before the first prompt, then a background watcher revalidates it
// periodically.
//
// Screens are addressed by route paths ("/", "/profile/:id", "/login",
// "/register"). App implements session.Navigator, so every navigation,
// whether typed by the user or triggered by the session, goes through the
// route guard before a screen is rendered.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
