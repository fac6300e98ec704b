package chat

import (
	"context"
	"strings"
	"time"

	"rentalhub/internal/metrics"
	"rentalhub/internal/pkg/logger"
)

const (
	PromptReply   = "How can I assist you?"
	GreetingReply = "Yes, hello! How can I help you?"
	HotelReply    = "I can help you find a place to stay. Browse the available properties or tell me the city you are interested in."
	FallbackReply = "I'm sorry, but I couldn't understand your question. Please try again later."
)

// Route names which rule answered an utterance.
type Route string

const (
	RoutePrompt   Route = "prompt"
	RouteGreeting Route = "greeting"
	RouteHotel    Route = "hotel"
	RouteLLM      Route = "llm"
	RouteFallback Route = "fallback"
)

var greetings = map[string]struct{}{
	"hi":    {},
	"hello": {},
	"hey":   {},
}

// HotelResponder answers utterances that mention hotels.
type HotelResponder interface {
	Respond(ctx context.Context, input string) string
}

type placeholderHotels struct{}

func (placeholderHotels) Respond(context.Context, string) string {
	return HotelReply
}

type Service struct {
	llm     Completer
	hotels  HotelResponder
	timeout time.Duration
}

func NewService(llm Completer, hotels HotelResponder, timeout time.Duration) *Service {
	if hotels == nil {
		hotels = placeholderHotels{}
	}
	return &Service{llm: llm, hotels: hotels, timeout: timeout}
}

// Respond always produces a reply; LLM failures degrade to FallbackReply.
func (s *Service) Respond(ctx context.Context, input string) string {
	reply, route := s.route(ctx, input)
	metrics.IncChatResponse(string(route))
	return reply
}

func (s *Service) route(ctx context.Context, input string) (string, Route) {
	if strings.TrimSpace(input) == "" {
		return PromptReply, RoutePrompt
	}

	// greetings match the raw input, so " hey " is not a greeting
	lower := strings.ToLower(input)
	if _, ok := greetings[lower]; ok {
		return GreetingReply, RouteGreeting
	}
	if strings.Contains(lower, "hotel") {
		return s.hotels.Respond(ctx, input), RouteHotel
	}

	if s.llm == nil {
		return FallbackReply, RouteFallback
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	text, err := s.llm.Complete(ctx, "User: "+input+"\nChatGPT:")
	if err != nil {
		logger.WithContext(ctx).Warn("llm completion failed", "error", err)
		return FallbackReply, RouteFallback
	}
	return text, RouteLLM
}
