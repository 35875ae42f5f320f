// Package templates holds the offline canned responses used when no backend
// can serve a chat turn. Each category has an ordered trigger list checked by
// substring; the first match wins, and the order is part of the contract.
package templates

import (
	"fmt"
	"strings"

	"github.com/dkovalev/modelmart/pkg/domain"
)

// Respond picks the canned reply for the model's category. Unrecognized
// categories fall back to a generic blurb built from the model's own
// description.
func Respond(model domain.Model, userInput string) string {
	input := strings.ToLower(userInput)

	switch model.Category {
	case domain.CategoryTextGeneration:
		return textGenerationResponse(model, input)
	case domain.CategoryImageGeneration:
		return imageGenerationResponse(input)
	case domain.CategoryAudio:
		return audioResponse(input)
	case domain.CategoryDevelopment:
		return developmentResponse(input)
	case domain.CategoryDataAnalysis:
		return dataAnalysisResponse(input)
	case domain.CategoryComputerVision:
		return computerVisionResponse(input)
	default:
		return fmt.Sprintf("I'm %s, an AI assistant trained on your specific requirements. Based on your description %q, I can help you with your specialized tasks. How can I assist you today?",
			model.Name, model.Description)
	}
}

func textGenerationResponse(model domain.Model, input string) string {
	switch {
	case containsAny(input, "hello", "hi"):
		return fmt.Sprintf("Hello! I'm %s, ready to help with your text generation needs.", model.Name)
	case strings.Contains(input, "how are you"):
		return "I'm functioning optimally, thank you for asking! How can I assist with your text needs today?"
	case containsAny(input, "summarize", "summary"):
		return "I'd be happy to summarize that for you. Here's a concise version: [Generated summary based on your description would appear here]"
	case containsAny(input, "write", "create"):
		return "Here's a draft based on your request:\n\n[Generated text would appear here]\n\nWould you like me to refine this in any way?"
	default:
		return fmt.Sprintf("Based on your input, I would generate high-quality text content tailored to your needs. I've been trained specifically on %s's parameters to ensure the content matches your description: %q.",
			model.Name, model.Description)
	}
}

func imageGenerationResponse(input string) string {
	switch {
	case containsAny(input, "generate", "create", "make"):
		return "I've generated an image based on your description. [In a real implementation, an actual image would be displayed here]"
	case containsAny(input, "style", "artistic"):
		return "I've created an artistic interpretation using the style you specified. [In a real implementation, an actual image would be displayed here]"
	case containsAny(input, "edit", "modify"):
		return "I've modified the image according to your instructions. [In a real implementation, the edited image would be displayed here]"
	case strings.Contains(input, "upload"):
		return "I've received your image and can now make modifications or use it as a reference for generating new images."
	default:
		return "I can generate custom images based on your descriptions. What kind of image would you like me to create?"
	}
}

func audioResponse(input string) string {
	switch {
	case containsAny(input, "voice", "speak"):
		return "I've generated the requested voice clip. [In a real implementation, audio would be playable here]"
	case containsAny(input, "translate", "language"):
		return "I've translated your audio to the requested language. [In a real implementation, translated audio would be playable here]"
	case containsAny(input, "accent", "tone"):
		return "I've adjusted the accent and tone as requested. [In a real implementation, modified audio would be playable here]"
	default:
		return "I can generate voice recordings, analyze audio files, and perform various audio transformations. What would you like me to do?"
	}
}

func developmentResponse(input string) string {
	switch {
	case containsAny(input, "code", "function"):
		return "Here's the code implementation based on your requirements:\n\n```javascript\n// Example code would appear here\nfunction exampleFunction() {\n  console.log('This is a placeholder for actual generated code');\n  return 'Success';\n}\n```\n\nIs this what you were looking for?"
	case containsAny(input, "debug", "error"):
		return "I've analyzed your code and found the following issues:\n\n1. [Example issue description]\n2. [Another example issue]\n\nHere's the corrected version:\n\n```javascript\n// Corrected code would appear here\n```"
	case containsAny(input, "optimize", "improve"):
		return "I've optimized your code for better performance. Here's the improved version:\n\n```javascript\n// Optimized code would appear here\n```\n\nThis should run approximately 30% faster than the original."
	default:
		return "I can help you with coding tasks, debugging, optimization, and software architecture. What specific development challenge are you facing?"
	}
}

func dataAnalysisResponse(input string) string {
	switch {
	case containsAny(input, "upload", "file"):
		return "I've received your data file and analyzed its contents. [In a real implementation, a summary of the uploaded data would appear here]"
	case containsAny(input, "graph", "chart", "visualization"):
		return "I've created the requested data visualization. [In a real implementation, the graph/chart would be displayed here]"
	case containsAny(input, "predict", "forecast"):
		return "Based on the data patterns, here's my prediction for future trends:\n\n[Generated forecast details would appear here]"
	case containsAny(input, "correlate", "relationship"):
		return "I've analyzed the correlation between the variables you specified. Here's what I found:\n\n[Generated correlation analysis would appear here]"
	default:
		return "I can help analyze data, create visualizations, identify patterns, and generate insights. Please upload your data or describe the analysis you'd like me to perform."
	}
}

func computerVisionResponse(input string) string {
	switch {
	case containsAny(input, "upload", "image"):
		return "I've analyzed the image you uploaded. [In a real implementation, the analysis results would appear here]"
	case containsAny(input, "detect", "find"):
		return "I've detected the objects you specified in the image. [In a real implementation, marked-up image would be displayed here]"
	case containsAny(input, "segment", "separate"):
		return "I've segmented the image as requested. [In a real implementation, segmented image would be displayed here]"
	case containsAny(input, "recognize", "identify"):
		return "I've identified the following elements in the image:\n\n[Generated list of identified objects/features would appear here]"
	default:
		return "I can analyze images to detect objects, identify features, perform segmentation, and provide detailed visual descriptions. Please upload an image or describe what you'd like me to analyze."
	}
}

func containsAny(text string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
