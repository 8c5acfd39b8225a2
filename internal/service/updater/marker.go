package updater

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/tetarus/arch-repo-tools/internal/logger"
)

const (
	// markerFilename marks that an updater run is in progress, to avoid two
	// runs racing on the same packages.yaml.
	markerFilename = ".arch-repo-updater.marker"

	// markerLifetime is the period after which a leftover marker is
	// considered stale and eligible for recovery.
	markerLifetime = 5 * time.Minute
)

// errAlreadyRunning indicates another updater run holds the marker.
var errAlreadyRunning = errors.New("the updater is already running")

// acquireMarker creates the run marker next to the configuration file and
// returns a release function. A fresh marker from another run refuses the
// start; a stale one is reclaimed only when no other updater process is
// still alive.
func acquireMarker(ctx context.Context, dir string) (func(), error) {
	path := filepath.Join(dir, markerFilename)

	info, err := os.Stat(path)

	switch {
	case err == nil:
		if time.Since(info.ModTime()) <= markerLifetime {
			return nil, errAlreadyRunning
		}

		logger.Info(ctx, "The update marker is stale, attempting recovery")

		if anotherUpdaterRunning() {
			return nil, errAlreadyRunning
		}

		if err = os.Remove(path); err != nil {
			return nil, err
		}
	case errors.Is(err, os.ErrNotExist):
		// Nothing to recover.
	default:
		logger.Infof(ctx, "Unable to read update marker: %v", err)
	}

	marker, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	if err = marker.Close(); err != nil {
		return nil, err
	}

	return func() {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			logger.Warnf(ctx, "Unable to remove update marker: %v", err)
		}
	}, nil
}

// anotherUpdaterRunning reports whether a process with our executable name
// exists besides this one. Errors count as "running" to stay on the safe side.
func anotherUpdaterRunning() bool {
	processes, err := ps.Processes()
	if err != nil {
		return true
	}

	var (
		self = os.Getpid()
		name = filepath.Base(os.Args[0])
	)

	for _, process := range processes {
		if process.Pid() == self {
			continue
		}

		if process.Executable() == name {
			return true
		}
	}

	return false
}
