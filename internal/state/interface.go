package state

// Interface defines the state manager contract for dependency injection and testing.
type Interface interface {
	SaveFolder(s FolderState)
	GetFolder(folder string) (*FolderState, error)
	Close() error
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)
