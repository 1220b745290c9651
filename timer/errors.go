package timer

import "errors"

var (
	errCommandNotAllowed = errors.New("command not allowed")

	errInvalidSoundFormat = errors.New(
		"sound file must be in mp3, ogg, flac, or wav format",
	)
)
