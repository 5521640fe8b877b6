package imagegen

import "context"

// SourceImage describes an uploaded photo sitting in the scratch directory.
type SourceImage struct {
	Path         string
	OriginalName string
	MIME         string
	Size         int64
}

// Transformer turns an uploaded photo plus a free-text fitness goal into the
// URL of a generated image. Implementations issue exactly one upstream call
// per invocation; there is no retry layer above or below this interface.
type Transformer interface {
	TransformImage(ctx context.Context, img SourceImage, description string) (string, error)
}
