package state

import (
	"database/sql"
	"errors"
	"time"

	dbutil "github.com/llehouerou/rpgmplay/internal/db"
)

// maxFolders bounds how many folders are remembered.
const maxFolders = 200

// FolderState is the cursor position last used in a scanned folder.
type FolderState struct {
	Folder       string
	SelectedPath string
}

func getFolder(db *sql.DB, folder string) (*FolderState, error) {
	row := db.QueryRow(`
		SELECT folder, selected_path FROM folder_state WHERE folder = ?
	`, folder)

	var s FolderState
	var selected sql.NullString
	err := row.Scan(&s.Folder, &selected)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // an unknown folder has no saved state
	}
	if err != nil {
		return nil, err
	}
	s.SelectedPath = dbutil.NullStringValue(selected)
	return &s, nil
}

func saveFolder(db *sql.DB, s FolderState, now time.Time) error {
	return dbutil.WithTx(db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO folder_state (folder, selected_path, updated_at)
			VALUES (?, ?, ?)
			ON CONFLICT(folder) DO UPDATE SET
				selected_path = excluded.selected_path,
				updated_at = excluded.updated_at
		`, s.Folder, s.SelectedPath, now.UnixNano())
		if err != nil {
			return err
		}

		_, err = tx.Exec(`
			DELETE FROM folder_state WHERE folder NOT IN (
				SELECT folder FROM folder_state ORDER BY updated_at DESC LIMIT ?
			)
		`, maxFolders)
		return err
	})
}
