package image_generator

import "context"

type Generator interface {
	Generate(ctx context.Context, req *GenerateRequest) (*Result, error)
	Download(ctx context.Context, token, memberID string) (*Download, error)
}
