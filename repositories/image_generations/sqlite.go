package image_generations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"stickerme_bot/clock"
	"stickerme_bot/entities"
	"stickerme_bot/repositories"
)

const insertGenerationQuery string = `
INSERT INTO image_generations (interaction_id, member_id, download_token, user_prompt, prompt, width, height, aspect_ratio, quality, style, cfg_scale, steps, file_path, download_filename, content_type, image_width, image_height, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
`

const getGenerationByDownloadTokenQuery string = `
SELECT id, interaction_id, member_id, download_token, user_prompt, prompt, width, height, aspect_ratio, quality, style, cfg_scale, steps, file_path, download_filename, content_type, image_width, image_height, created_at FROM image_generations WHERE download_token = ?;
`

type sqliteRepo struct {
	dbConn *sql.DB
	clock  clock.Clock
}

type Config struct {
	DB    *sql.DB
	Clock clock.Clock
}

func NewRepository(cfg *Config) (Repository, error) {
	if cfg.DB == nil {
		return nil, errors.New("missing DB parameter")
	}

	if cfg.Clock == nil {
		cfg.Clock = clock.NewClock()
	}

	newRepo := &sqliteRepo{
		dbConn: cfg.DB,
		clock:  cfg.Clock,
	}

	return newRepo, nil
}

func (repo *sqliteRepo) Create(ctx context.Context, generation *entities.ImageGeneration) (*entities.ImageGeneration, error) {
	if generation.DownloadToken == "" {
		return nil, errors.New("missing download token")
	}

	generation.CreatedAt = repo.clock.Now().UTC().Round(0)

	res, err := repo.dbConn.ExecContext(ctx, insertGenerationQuery,
		generation.InteractionID, generation.MemberID, generation.DownloadToken,
		generation.UserPrompt, generation.Prompt, generation.Width, generation.Height,
		generation.AspectRatio, generation.Quality, generation.Style, generation.CfgScale,
		generation.Steps, generation.FilePath, generation.DownloadFilename,
		generation.ContentType, generation.ImageWidth, generation.ImageHeight, generation.CreatedAt)
	if err != nil {
		return nil, err
	}

	lastID, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	generation.ID = lastID

	return generation, nil
}

func (repo *sqliteRepo) GetByDownloadToken(ctx context.Context, token string) (*entities.ImageGeneration, error) {
	var generation entities.ImageGeneration

	err := repo.dbConn.QueryRowContext(ctx, getGenerationByDownloadTokenQuery, token).Scan(
		&generation.ID, &generation.InteractionID, &generation.MemberID, &generation.DownloadToken,
		&generation.UserPrompt, &generation.Prompt, &generation.Width, &generation.Height,
		&generation.AspectRatio, &generation.Quality, &generation.Style, &generation.CfgScale,
		&generation.Steps, &generation.FilePath, &generation.DownloadFilename,
		&generation.ContentType, &generation.ImageWidth, &generation.ImageHeight, &generation.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repositories.NewNotFoundError(fmt.Sprintf("image generation for download token %s", token))
		}

		return nil, err
	}

	return &generation, nil
}
