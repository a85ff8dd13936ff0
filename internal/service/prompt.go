package service

import (
	"fmt"
	"strings"

	"github.com/xiaot623/stylist/internal/domain"
)

const outfitPromptTemplate = "The outfit in the image is described as: '%s'. It includes items like %s.\n\n" +
	"Provide recommendations on how to improve this outfit for different occasions and weather conditions. " +
	"Keep the recommendations short and in a single paragraph. " +
	`Also send a different message with relevant real shopping links inside <a target="_blank" > tags`

// BuildOutfitPrompt turns a vision result into the styling request sent to
// the generation model.
func BuildOutfitPrompt(result domain.AnalysisResult) string {
	return fmt.Sprintf(outfitPromptTemplate, result.Description, strings.Join(result.Tags, ", "))
}
