package imagegen

import (
	"fmt"
	"strings"
)

// BuildTransformationPrompt interpolates the user's fitness goal into the
// fixed instruction template sent to every provider.
func BuildTransformationPrompt(description string) string {
	goal := strings.TrimSpace(description)
	parts := []string{
		fmt.Sprintf("Transform this person's body to look %s.", goal),
		"Keep the exact same person, face, identity, pose, clothing, and background.",
		"Change only the body composition and muscle definition to match the goal.",
		"The result must be photorealistic and look like an unedited photograph,",
		"with natural skin texture, lighting, and proportions.",
	}
	return strings.Join(parts, " ")
}
