package domain

import "go.trai.ch/zerr"

var (
	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrMissingField is returned when a required configuration field is absent.
	ErrMissingField = zerr.New("missing required config field")

	// ErrInvalidThreads is returned when the thread count is negative.
	ErrInvalidThreads = zerr.New("threads must be a positive integer")

	// ErrInputNotFound is returned when the input directory does not exist.
	ErrInputNotFound = zerr.New("input directory not found")

	// ErrInputNotDirectory is returned when the input path is not a directory.
	ErrInputNotDirectory = zerr.New("input path is not a directory")

	// ErrSameDirectories is returned when input and output resolve to the same path.
	ErrSameDirectories = zerr.New("input_dir and output_dir must differ")

	// ErrNestedDirectories is returned when one of input_dir and output_dir contains the other.
	ErrNestedDirectories = zerr.New("input_dir and output_dir must not be nested")

	// ErrInvalidExtension is returned when an extension is empty or contains a path separator.
	ErrInvalidExtension = zerr.New("invalid extension")

	// ErrInvalidToolArgs is returned when an argument template lacks a required placeholder.
	ErrInvalidToolArgs = zerr.New("tool arguments missing placeholder")

	// ErrCacheInWipedOutput is returned when overwrite mode would wipe the cache along with output_dir.
	ErrCacheInWipedOutput = zerr.New("cache_file must lie outside output_dir when is_overwrite is set")

	// ErrCacheLocked is returned when another run holds the cache lock.
	ErrCacheLocked = zerr.New("cache file is locked by another run")

	// ErrCacheLockFailed is returned when the cache lock cannot be acquired.
	ErrCacheLockFailed = zerr.New("failed to lock cache file")

	// ErrCacheNotLoaded is returned when the cache is used before Load.
	ErrCacheNotLoaded = zerr.New("cache not loaded")

	// ErrCacheValueInvalid is returned when a computed value is not a JSON scalar.
	ErrCacheValueInvalid = zerr.New("cache value must be a bool, number or string")

	// ErrCachePersistFailed is returned when the cache document cannot be written.
	ErrCachePersistFailed = zerr.New("failed to persist cache")

	// ErrCacheRemoveFailed is returned when the cache file cannot be removed.
	ErrCacheRemoveFailed = zerr.New("failed to remove cache file")

	// ErrToolStartFailed is returned when the external tool cannot be started.
	ErrToolStartFailed = zerr.New("failed to start external tool")

	// ErrToolInterrupted is returned when the external tool is killed by cancellation.
	ErrToolInterrupted = zerr.New("external tool interrupted")

	// ErrToolFailed is returned when the external tool exits with a nonzero status.
	ErrToolFailed = zerr.New("external tool failed")

	// ErrEmptyCommand is returned when a command line has no executable.
	ErrEmptyCommand = zerr.New("empty command")

	// ErrUnknownTaskKind is returned when a task carries a kind the executor does not handle.
	ErrUnknownTaskKind = zerr.New("unknown task kind")

	// ErrCopyFailed is returned when copying a file fails.
	ErrCopyFailed = zerr.New("failed to copy file")

	// ErrRemoveFailed is returned when removing a path fails.
	ErrRemoveFailed = zerr.New("failed to remove path")

	// ErrCreateDirFailed is returned when a destination directory cannot be created.
	ErrCreateDirFailed = zerr.New("failed to create directory")

	// ErrWipeFailed is returned when the destination tree cannot be wiped in overwrite mode.
	ErrWipeFailed = zerr.New("failed to wipe output directory")

	// ErrValidationFailed is returned when the invalid-output check cannot complete.
	ErrValidationFailed = zerr.New("failed to validate outputs")

	// ErrDigestFailed is returned when the tree digest cannot be computed.
	ErrDigestFailed = zerr.New("failed to compute tree digest")

	// ErrWatchFailed is returned when the source tree cannot be watched.
	ErrWatchFailed = zerr.New("failed to watch input directory")

	// ErrReconcileFailed is returned when a reconcile run aborts.
	ErrReconcileFailed = zerr.New("reconcile failed")

	// ErrPlanFailed is returned when a dry run cannot compute its plan.
	ErrPlanFailed = zerr.New("failed to compute plan")

	// ErrInvalidLogFormat is returned when the log format flag is not auto, pretty or json.
	ErrInvalidLogFormat = zerr.New("invalid log format")
)
