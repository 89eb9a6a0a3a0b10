package driver

// Stage names a step of checking one file.
type Stage uint8

const (
	StageQueued Stage = iota
	StageParse
	StageBind
	StageEntry
)

func (s Stage) String() string {
	switch s {
	case StageParse:
		return "parse"
	case StageBind:
		return "bind"
	case StageEntry:
		return "entry"
	}
	return "queued"
}

// Status reports where a file is in its stage.
type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusDone
	StatusError
	StatusCached
)

// Event describes progress of one file during CheckFiles. File is the
// path as given to CheckFiles.
type Event struct {
	File   string
	Stage  Stage
	Status Status
}

// StageObserver receives a call when compilation of a file enters a stage.
type StageObserver func(Stage)
