// Package picker shows a native "choose a ROM file" dialog, used by
// the CLI when no ROM path is given on the command line.
package picker

import "github.com/sqweek/dialog"

// Pick opens a native file-open dialog filtered to Game Boy ROM
// extensions, starting in startDir. A cancelled dialog returns
// ("", nil), which the caller should treat as a normal, non-fatal
// exit rather than a load error.
func Pick(startDir string) (string, error) {
	path, err := dialog.File().
		Filter("Game Boy ROM", "gb", "gbc", "zip", "7z", "gz").
		SetStartDir(startDir).
		Title("Choose a ROM").
		Load()

	if err == dialog.ErrCancelled {
		return "", nil
	}
	return path, err
}
