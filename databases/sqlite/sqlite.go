package sqlite

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

const DefaultDBFile string = "stickerme_bot.sqlite"

const getCurrentMigration string = `PRAGMA user_version;`
const setCurrentMigration string = `PRAGMA user_version = ?;`

const createGenerationTableIfNotExistsQuery string = `
CREATE TABLE IF NOT EXISTS image_generations (
id INTEGER NOT NULL PRIMARY KEY,
interaction_id TEXT NOT NULL,
member_id TEXT NOT NULL,
download_token TEXT NOT NULL,
user_prompt TEXT NOT NULL,
prompt TEXT NOT NULL,
width INTEGER NOT NULL,
height INTEGER NOT NULL,
aspect_ratio TEXT NOT NULL,
quality TEXT NOT NULL,
style TEXT NOT NULL,
cfg_scale REAL NOT NULL,
steps INTEGER NOT NULL,
file_path TEXT NOT NULL,
download_filename TEXT NOT NULL,
created_at DATETIME NOT NULL
);`

const createDownloadTokenIndexIfNotExistsQuery string = `
CREATE UNIQUE INDEX IF NOT EXISTS generation_download_token_index
ON image_generations(download_token);
`

const createMemberIndexIfNotExistsQuery string = `
CREATE INDEX IF NOT EXISTS generation_member_index
ON image_generations(member_id);
`

const addImageInfoColumnsQuery string = `
ALTER TABLE image_generations ADD COLUMN content_type TEXT NOT NULL DEFAULT '';
ALTER TABLE image_generations ADD COLUMN image_width INTEGER NOT NULL DEFAULT 0;
ALTER TABLE image_generations ADD COLUMN image_height INTEGER NOT NULL DEFAULT 0;
`

type migration struct {
	migrationName  string
	migrationQuery string
}

var migrations = []migration{
	{migrationName: "create generation table", migrationQuery: createGenerationTableIfNotExistsQuery},
	{migrationName: "add generation download token index", migrationQuery: createDownloadTokenIndexIfNotExistsQuery},
	{migrationName: "add generation member index", migrationQuery: createMemberIndexIfNotExistsQuery},
	{migrationName: "add image info columns", migrationQuery: addImageInfoColumnsQuery},
}

// New opens (creating if needed) the database file and brings its schema up
// to date. An empty filename uses DefaultDBFile in the working directory.
func New(ctx context.Context, filename string) (*sql.DB, error) {
	if filename == "" {
		var err error

		filename, err = DBFilename()
		if err != nil {
			return nil, err
		}
	}

	err := touchDBFile(filename)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", filename)
	if err != nil {
		return nil, err
	}

	err = migrate(ctx, db)
	if err != nil {
		db.Close()

		return nil, err
	}

	return db, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	var currentMigration int

	row := db.QueryRowContext(ctx, getCurrentMigration)

	err := row.Scan(&currentMigration)
	if err != nil {
		return err
	}

	requiredMigration := len(migrations)

	log.Info().
		Int("current", currentMigration).
		Int("required", requiredMigration).
		Msg("Checking DB version")

	for migrationNum := currentMigration + 1; migrationNum <= requiredMigration; migrationNum++ {
		err = execMigration(ctx, db, migrationNum)
		if err != nil {
			log.Error().Err(err).
				Int("migration", migrationNum).
				Str("name", migrations[migrationNum-1].migrationName).
				Msg("Error running migration")

			return err
		}
	}

	return nil
}

func execMigration(ctx context.Context, db *sql.DB, migrationNum int) error {
	log.Info().
		Int("migration", migrationNum).
		Str("name", migrations[migrationNum-1].migrationName).
		Msg("Running migration")

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	//nolint
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, migrations[migrationNum-1].migrationQuery)
	if err != nil {
		return err
	}

	setQuery := strings.Replace(setCurrentMigration, "?", strconv.Itoa(migrationNum), 1)

	_, err = tx.ExecContext(ctx, setQuery)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func DBFilename() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, DefaultDBFile), nil
}

func touchDBFile(filename string) error {
	_, err := os.Stat(filename)
	if os.IsNotExist(err) {
		file, createErr := os.Create(filename)
		if createErr != nil {
			return createErr
		}

		return file.Close()
	}

	return err
}
