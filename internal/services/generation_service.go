package services

import (
	"context"
	"errors"
	"fmt"

	"hyper-reel-backend/internal/models"
	"hyper-reel-backend/internal/state"
	"hyper-reel-backend/internal/wavespeed"
)

// ErrInvalidRequest marks generation failures caused by the command itself
// (missing key, unknown model, dangling input reference) as opposed to
// provider-side failures.
var ErrInvalidRequest = errors.New("invalid generation request")

// Provider calls run through the client's fixed backoff before giving up.
const maxProviderAttempts = 3

// GenerationService routes generation commands to the right Wavespeed model
// and persists the outputs. Nothing is written unless the provider call fully
// succeeds with at least one output.
type GenerationService struct {
	client         *wavespeed.Client
	media          *state.MediaStore
	images         *state.SceneImageStore
	results        *state.GenerationResultStore
	settings       *state.SettingsStore
	fallbackAPIKey string
}

func NewGenerationService(
	client *wavespeed.Client,
	media *state.MediaStore,
	images *state.SceneImageStore,
	results *state.GenerationResultStore,
	settings *state.SettingsStore,
	fallbackAPIKey string,
) *GenerationService {
	return &GenerationService{
		client:         client,
		media:          media,
		images:         images,
		results:        results,
		settings:       settings,
		fallbackAPIKey: fallbackAPIKey,
	}
}

// resolveAPIKey prefers the key saved in settings over the server-configured
// fallback.
func (s *GenerationService) resolveAPIKey() (string, error) {
	if key := s.settings.APIKey(); key != "" {
		return key, nil
	}
	if s.fallbackAPIKey != "" {
		return s.fallbackAPIKey, nil
	}
	return "", fmt.Errorf("%w: wavespeed api key is not configured", ErrInvalidRequest)
}

// GenerateMedia runs one generation for a project's media library and
// persists one MediaItem per returned output.
func (s *GenerationService) GenerateMedia(ctx context.Context, projectID string, req models.GenerateRequest) ([]models.MediaItem, error) {
	apiKey, err := s.resolveAPIKey()
	if err != nil {
		return nil, err
	}

	model, err := s.resolveModel(req)
	if err != nil {
		return nil, err
	}

	inputs, err := s.resolveInputImages(ctx, req.InputImageIDs)
	if err != nil {
		return nil, err
	}

	prediction, err := s.run(ctx, model, apiKey, req, inputs)
	if err != nil {
		return nil, err
	}

	meta := models.GenerationMeta{
		Prompt:        req.Prompt,
		ModelID:       model.ID,
		Size:          s.sizeFor(model, req),
		OutputFormat:  req.OutputFormat,
		InputImageIDs: req.InputImageIDs,
	}
	if model.SupportsSeed && req.Seed != nil {
		meta.Seed = *req.Seed
	}

	items := make([]models.MediaItem, 0, len(prediction.Outputs))
	for _, output := range prediction.Outputs {
		item, err := s.media.CreateGeneration(ctx, projectID, output, meta)
		if err != nil {
			return items, fmt.Errorf("failed to persist generated media: %w", err)
		}
		items = append(items, *item)
	}
	return items, nil
}

// GenerateForSceneImage runs one generation for a storyboard image slot and
// appends the batch to the image's result history.
func (s *GenerationService) GenerateForSceneImage(ctx context.Context, imageID string, req models.GenerateRequest) (*models.GenerationResult, error) {
	image, err := s.images.Resolve(ctx, imageID)
	if err != nil {
		return nil, err
	}
	if image == nil {
		return nil, nil
	}

	apiKey, err := s.resolveAPIKey()
	if err != nil {
		return nil, err
	}

	model, err := s.resolveModel(req)
	if err != nil {
		return nil, err
	}

	s.results.SetGenerating(true)
	defer s.results.SetGenerating(false)

	prediction, err := s.run(ctx, model, apiKey, req, req.InputImages)
	if err != nil {
		return nil, err
	}

	result := models.GenerationResult{
		ImageID:      imageID,
		Outputs:      prediction.Outputs,
		Prompt:       req.Prompt,
		InputImages:  req.InputImages,
		Size:         s.sizeFor(model, req),
		OutputFormat: req.OutputFormat,
	}
	if model.SupportsSeed && req.Seed != nil {
		result.Seed = *req.Seed
	}

	return s.results.Add(ctx, result)
}

// resolveModel picks the requested model, defaulting on the request shape:
// input images mean the edit model, a bare prompt means text-to-image.
func (s *GenerationService) resolveModel(req models.GenerateRequest) (wavespeed.Model, error) {
	id := req.ModelID
	if id == "" {
		if len(req.InputImageIDs) > 0 || len(req.InputImages) > 0 {
			id = wavespeed.ModelQwenImageEdit
		} else {
			id = wavespeed.ModelWanTextToImage
		}
	}
	model, ok := wavespeed.ModelByID(id)
	if !ok {
		return wavespeed.Model{}, fmt.Errorf("%w: unknown model %q", ErrInvalidRequest, id)
	}
	return model, nil
}

// resolveInputImages maps media ids to their inline image data.
func (s *GenerationService) resolveInputImages(ctx context.Context, ids []string) ([]string, error) {
	inputs := make([]string, 0, len(ids))
	for _, id := range ids {
		item, err := s.media.Resolve(ctx, id)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, fmt.Errorf("%w: input image %s not found", ErrInvalidRequest, id)
		}
		inputs = append(inputs, item.ImageData)
	}
	return inputs, nil
}

// run executes the provider call, retrying transient failures with the
// client's backoff schedule.
func (s *GenerationService) run(ctx context.Context, model wavespeed.Model, apiKey string, req models.GenerateRequest, inputs []string) (*wavespeed.Prediction, error) {
	var prediction *wavespeed.Prediction
	err := s.client.RetryWithBackoff(func() error {
		var callErr error
		prediction, callErr = s.callModel(ctx, model, apiKey, req, inputs)
		return callErr
	}, maxProviderAttempts)
	if err != nil {
		return nil, err
	}
	return prediction, nil
}

func (s *GenerationService) callModel(ctx context.Context, model wavespeed.Model, apiKey string, req models.GenerateRequest, inputs []string) (*wavespeed.Prediction, error) {
	switch model.ID {
	case wavespeed.ModelQwenImageEdit:
		seed := int64(-1)
		if req.Seed != nil {
			seed = *req.Seed
		}
		return s.client.EditImage(ctx, wavespeed.EditOptions{
			APIKey:       apiKey,
			Prompt:       req.Prompt,
			Images:       inputs,
			Size:         req.Size,
			Seed:         seed,
			OutputFormat: req.OutputFormat,
		})
	case wavespeed.ModelWanTextToImage:
		return s.client.TextToImage(ctx, wavespeed.TextToImageOptions{
			APIKey:       apiKey,
			Prompt:       req.Prompt,
			AspectRatio:  req.AspectRatio,
			OutputFormat: req.OutputFormat,
		})
	default:
		return nil, fmt.Errorf("unknown model %q", model.ID)
	}
}

// sizeFor records the dimension parameter the model actually used: pixel size
// for the edit model, named aspect ratio for text-to-image.
func (s *GenerationService) sizeFor(model wavespeed.Model, req models.GenerateRequest) string {
	if model.ID == wavespeed.ModelWanTextToImage {
		return req.AspectRatio
	}
	return req.Size
}
