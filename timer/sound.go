package timer

import (
	"os"
	"path/filepath"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
)

// prepSoundStream returns an audio stream for the specified sound file.
func prepSoundStream(sound string) (beep.StreamSeekCloser, beep.Format, error) {
	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)

	f, err := os.Open(sound)
	if err != nil {
		return nil, format, err
	}

	defer func() {
		_ = f.Close()
	}()

	switch filepath.Ext(sound) {
	case ".ogg":
		stream, format, err = vorbis.Decode(f)
	case ".mp3":
		stream, format, err = mp3.Decode(f)
	case ".flac":
		stream, format, err = flac.Decode(f)
	case ".wav":
		stream, format, err = wav.Decode(f)
	default:
		return nil, format, errInvalidSoundFormat
	}

	if err != nil {
		return nil, format, err
	}

	return stream, format, nil
}

// playSound plays the sound file to completion.
func playSound(sound string) error {
	stream, format, err := prepSoundStream(sound)
	if err != nil {
		return err
	}

	bufferSize := 10

	err = speaker.Init(
		format.SampleRate,
		format.SampleRate.N(time.Duration(int(time.Second)/bufferSize)),
	)
	if err != nil {
		return err
	}

	done := make(chan bool)

	speaker.Play(beep.Seq(stream, beep.Callback(func() {
		done <- true
	})))

	<-done

	_ = stream.Close()

	speaker.Clear()
	speaker.Close()

	return nil
}
