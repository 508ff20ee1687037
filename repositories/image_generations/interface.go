package image_generations

import (
	"context"

	"stickerme_bot/entities"
)

type Repository interface {
	Create(ctx context.Context, generation *entities.ImageGeneration) (*entities.ImageGeneration, error)
	GetByDownloadToken(ctx context.Context, token string) (*entities.ImageGeneration, error)
}
