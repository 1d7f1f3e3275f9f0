package game

import (
	"encoding/json"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// saveRunLog appends the finished session as a single JSON line to
// runs.jsonl. Failures are logged and otherwise ignored so a disk problem
// never breaks the session.
func saveRunLog(log *zap.Logger, run RunLog) {
	if err := appendRunLog(run); err != nil {
		log.Warn("run log not saved", zap.Error(err))
	}
}

func appendRunLog(run RunLog) error {
	dir, err := runLogDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(filepath.Join(dir, "runs.jsonl"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := json.Marshal(run)
	if err != nil {
		return err
	}
	_, err = f.Write(append(data, '\n'))
	return err
}

// runLogDir returns the directory where run logs are stored.
// Uses the XDG data directory: $XDG_DATA_HOME/roguecore,
// defaulting to ~/.local/share/roguecore.
func runLogDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "roguecore"), nil
}
