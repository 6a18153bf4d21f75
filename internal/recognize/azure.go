package recognize

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Azure/azure-sdk-for-go/services/cognitiveservices/v3.0/computervision"
	"github.com/Azure/go-autorest/autorest"
)

// AzureRecognizer performs OCR against the Azure Computer Vision printed
// text endpoint.
type AzureRecognizer struct {
	client *computervision.BaseClient
}

// NewAzureRecognizer builds a recognizer for the given Cognitive Services
// endpoint and key.
func NewAzureRecognizer(endpoint, apiKey string) *AzureRecognizer {
	client := computervision.New(endpoint)
	client.Authorizer = autorest.NewCognitiveServicesAuthorizer(apiKey)
	return &AzureRecognizer{client: &client}
}

// RecognizeImage enhances the payload and returns the recognized text, one
// recognized line per output line in reading order.
func (r *AzureRecognizer) RecognizeImage(ctx context.Context, data []byte) (string, error) {
	enhanced, err := EnhanceForRecognition(data)
	if err != nil {
		return "", err
	}

	result, err := r.client.RecognizePrintedTextInStream(
		ctx,
		true,
		io.NopCloser(bytes.NewReader(enhanced)),
		computervision.OcrLanguages(computervision.En),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return flattenOCRResult(result), nil
}

func flattenOCRResult(result computervision.OcrResult) string {
	if result.Regions == nil {
		return ""
	}
	var out strings.Builder
	for _, region := range *result.Regions {
		if region.Lines == nil {
			continue
		}
		for _, line := range *region.Lines {
			if line.Words == nil {
				continue
			}
			var words []string
			for _, word := range *line.Words {
				if word.Text != nil {
					words = append(words, *word.Text)
				}
			}
			if len(words) == 0 {
				continue
			}
			if out.Len() > 0 {
				out.WriteString("\n")
			}
			out.WriteString(strings.Join(words, " "))
		}
	}
	return out.String()
}

var _ Recognizer = (*AzureRecognizer)(nil)
