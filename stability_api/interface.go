package stability_api

import (
	"context"

	"stickerme_bot/entities"
)

type StabilityAPI interface {
	TextToImage(ctx context.Context, req *entities.GenerationRequest) ([]byte, error)
}
