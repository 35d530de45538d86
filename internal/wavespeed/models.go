package wavespeed

// Model ids as exposed through the API and stored on generated media.
const (
	ModelQwenImageEdit  = "qwen-image-edit-plus"
	ModelWanTextToImage = "wan-2.2-text-to-image"
)

// Model describes one registered generation model and its request shape.
type Model struct {
	ID                  string
	Label               string
	RequiresInputImages bool
	SupportsSeed        bool
	MaxInputImages      int
}

var registry = []Model{
	{
		ID:                  ModelQwenImageEdit,
		Label:               "Qwen Image Edit Plus",
		RequiresInputImages: true,
		SupportsSeed:        true,
		MaxInputImages:      maxInputImages,
	},
	{
		ID:                  ModelWanTextToImage,
		Label:               "Wan 2.2 Text to Image",
		RequiresInputImages: false,
		SupportsSeed:        false,
	},
}

// Models lists every registered generation model.
func Models() []Model {
	out := make([]Model, len(registry))
	copy(out, registry)
	return out
}

// ModelByID looks a model up by id.
func ModelByID(id string) (Model, bool) {
	for _, m := range registry {
		if m.ID == id {
			return m, true
		}
	}
	return Model{}, false
}
