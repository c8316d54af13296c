// Package services defines the error taxonomy shared by recap components.
//
// Sentinel markers classify failures from external collaborators (the yt-dlp
// subprocess, the summarization API) so callers can branch on errors.Is while
// keeping human-readable component and operation context in the message.
package services
