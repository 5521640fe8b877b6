package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Osas21T/fitness-backend/internal/imagegen"
)

type generateResponse struct {
	Success  bool   `json:"success"`
	ImageURL string `json:"imageUrl"`
	Message  string `json:"message"`
}

var allowedUploadTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
}

// GenerateFitnessImage accepts a photo plus a description, relays them to the
// configured provider, and returns the generated image URL. The scratch file
// is deleted exactly once per request, on both the success and failure paths.
func (a *App) GenerateFitnessImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, a.Config.MaxUploadBytes)
	if err := r.ParseMultipartForm(a.Config.MaxUploadBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			a.error(w, http.StatusBadRequest, "Image too large. Maximum size is 10MB.", "")
			return
		}
		a.error(w, http.StatusBadRequest, "No image uploaded. Please upload a photo.", "")
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	file, header, err := r.FormFile("image")
	if err != nil {
		a.error(w, http.StatusBadRequest, "No image uploaded. Please upload a photo.", "")
		return
	}
	defer file.Close()

	if a.Config.RestrictUploadTypes {
		declared := strings.ToLower(strings.TrimSpace(header.Header.Get("Content-Type")))
		if _, ok := allowedUploadTypes[declared]; !ok {
			a.error(w, http.StatusBadRequest, "Only JPEG and PNG images are allowed.", "")
			return
		}
	}

	description := strings.TrimSpace(r.FormValue("description"))
	if description == "" {
		a.error(w, http.StatusBadRequest, "No description provided. Please describe your fitness goal.", "")
		return
	}

	upload, err := a.Uploads.Save(file, header)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "Failed to process the uploaded image.", err.Error())
		return
	}

	img := imagegen.SourceImage{
		Path:         upload.Path,
		OriginalName: upload.OriginalName,
		MIME:         upload.MIME,
		Size:         upload.Size,
	}
	imageURL, genErr := a.Transformer.TransformImage(r.Context(), img, description)

	// Cleanup happens here, between the provider call and the response, so
	// a failure to respond can never leak a scratch file.
	if err := a.Uploads.Remove(upload.Path); err != nil {
		a.Logger.Warn().Err(err).Str("path", upload.Path).Msg("failed to delete scratch file")
	}

	if genErr != nil {
		switch {
		case imagegen.IsTimeout(genErr):
			a.error(w, http.StatusGatewayTimeout, "The image generation request timed out. Please try again.", "")
		case errors.Is(genErr, imagegen.ErrNoImage):
			a.error(w, http.StatusInternalServerError, "No image was generated. Please try again.", "")
		default:
			var provErr *imagegen.ProviderError
			if errors.As(genErr, &provErr) {
				a.error(w, http.StatusInternalServerError, "Failed to generate image.", provErr.Detail)
			} else {
				a.error(w, http.StatusInternalServerError, "Failed to generate image.", genErr.Error())
			}
		}
		return
	}

	a.json(w, http.StatusOK, generateResponse{
		Success:  true,
		ImageURL: imageURL,
		Message:  "Your fitness transformation is ready!",
	})
}
