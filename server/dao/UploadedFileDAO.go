package dao

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/theopendraft/rule-clarifier/server/data"
)

type UploadedFileDAO struct {
	Db *sql.DB
}

// Insert inserts a new uploaded file record and writes the generated
// external id back into the passed record
func (d *UploadedFileDAO) Insert(
	ctx context.Context,
	file *data.UploadedFile,
) error {
	file.Id = uuid.New().String()

	_, err := d.Db.ExecContext(
		ctx,
		`INSERT INTO uploaded_file(file_id, name, url, size, type, created_timestamp)
		VALUES (?, ?, ?, ?, ?, ?)`,
		file.Id,
		file.Name,
		file.Url,
		file.Size,
		file.Type,
		time.Now().UTC(),
	)

	if err != nil {
		return fmt.Errorf("error inserting uploaded file: %w", err)
	}

	return nil
}

// FindById finds an uploaded file by its external id
func (d *UploadedFileDAO) FindById(
	ctx context.Context,
	fileId string,
) (*data.UploadedFile, error) {
	var file data.UploadedFile
	err := d.Db.QueryRowContext(
		ctx,
		`SELECT id, file_id, name, url, size, type, created_timestamp
		FROM uploaded_file
		WHERE file_id = ?`,
		fileId,
	).Scan(
		&file.InternalId,
		&file.Id,
		&file.Name,
		&file.Url,
		&file.Size,
		&file.Type,
		&file.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error finding uploaded file by id: %w", err)
	}

	return &file, nil
}
