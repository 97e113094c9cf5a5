// Package services holds the screen-level collaborators of the client: the
// feed and profile views. They call the backend, keep the list the screen
// shows in sync with each result and report every outcome as a
// notification.
package services
