package chat

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/faizxmak/latilong/internal/utils/apperrors"
)

// CompletionMessage is one transcript entry sent to the model.
type CompletionMessage struct {
	Role    Role
	Content string
}

// Provider streams model completions for a transcript.
type Provider interface {
	StreamCompletion(ctx context.Context, messages []CompletionMessage) (Stream, error)
}

// Stream yields incremental completion output. Recv returns io.EOF after the
// final fragment; any other error means the upstream stream failed.
type Stream interface {
	Recv() (*Delta, error)
	Close() error
}

// Delta is one incremental fragment of assistant output. Fragment boundaries
// carry no meaning; only concatenation order matters.
type Delta struct {
	Content string
}

// TurnState tracks the lifecycle of a single message turn.
type TurnState string

const (
	TurnStateIdle                TurnState = "idle"
	TurnStateValidating          TurnState = "validating"
	TurnStateUserMessageAppended TurnState = "user_message_appended"
	TurnStateStreaming           TurnState = "streaming"
	TurnStateCompleted           TurnState = "completed"
	TurnStateFailed              TurnState = "failed"
)

// TurnInput identifies the conversation and carries the user's text for one
// turn. Empty text starts a greeting turn: nothing is persisted for the user
// and the model responds to the transcript as-is.
type TurnInput struct {
	ConversationPublicID string
	UserID               uint
	UserText             string
}

// TurnSink receives stream events as they are produced. Send errors indicate
// the client went away; the turn keeps running so the assistant message is
// still persisted.
type TurnSink interface {
	Send(event StreamEvent) error
}

const travelPersona = "You are a friendly and knowledgeable travel buddy. " +
	"You help people plan trips: destinations, budgets, accommodation, local transport, " +
	"food, and safety. Give practical, specific advice with realistic price estimates. " +
	"Keep answers conversational and concise. When the user has not said anything yet, " +
	"greet them warmly and ask where they are thinking of going."

// TurnRunner drives one message turn end to end: validate ownership, append
// the user message, stream the model reply to the sink while accumulating it,
// and persist the assistant message once the stream completes.
type TurnRunner struct {
	service  *ConversationService
	provider Provider
	logger   zerolog.Logger
}

// NewTurnRunner wires the turn runner.
func NewTurnRunner(service *ConversationService, provider Provider, logger zerolog.Logger) *TurnRunner {
	return &TurnRunner{
		service:  service,
		provider: provider,
		logger:   logger.With().Str("component", "turn-runner").Logger(),
	}
}

// RunTurn executes one turn. Errors returned before the first sink event are
// safe to map to HTTP statuses; once streaming has started failures are
// reported to the sink as error events instead.
func (r *TurnRunner) RunTurn(ctx context.Context, input TurnInput, sink TurnSink) error {
	state := TurnStateValidating

	conversation, err := r.service.Get(ctx, input.UserID, input.ConversationPublicID)
	if err != nil {
		return err
	}

	trimmed := strings.TrimSpace(input.UserText)
	firstUserMessage := trimmed != "" && len(conversation.Messages) == 0

	if trimmed != "" {
		userMessage, err := r.service.AppendMessage(ctx, conversation.ID, RoleUser, trimmed)
		if err != nil {
			return err
		}
		conversation.Messages = append(conversation.Messages, *userMessage)
		state = TurnStateUserMessageAppended
	}

	if firstUserMessage && conversation.Title == "New Conversation" {
		if err := r.service.SetTitle(ctx, conversation.ID, TitleFromMessage(trimmed)); err != nil {
			// Title is cosmetic; the turn proceeds.
			r.logger.Warn().Err(err).Str("conversation_id", conversation.PublicID).
				Msg("failed to derive conversation title")
		}
	}

	// The model call and the persist below run detached from the request
	// context so a client disconnect does not lose a completed reply.
	turnCtx := context.WithoutCancel(ctx)

	messages := make([]CompletionMessage, 0, len(conversation.Messages)+1)
	messages = append(messages, CompletionMessage{Role: RoleSystem, Content: travelPersona})
	for _, m := range conversation.Messages {
		messages = append(messages, CompletionMessage{Role: m.Role, Content: m.Content})
	}

	stream, err := r.provider.StreamCompletion(turnCtx, messages)
	if err != nil {
		state = TurnStateFailed
		wrapped := apperrors.NewError(ctx, apperrors.LayerDomain, apperrors.ErrorTypeExternal,
			"completion stream failed to start", err, "")
		r.reportFailure(sink, wrapped, state)
		return wrapped
	}
	defer stream.Close()

	state = TurnStateStreaming
	var assistant strings.Builder
	sinkAlive := true

	for {
		delta, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			state = TurnStateFailed
			wrapped := apperrors.NewError(ctx, apperrors.LayerDomain, apperrors.ErrorTypeExternal,
				"completion stream interrupted", err, "")
			r.reportFailure(sink, wrapped, state)
			return wrapped
		}
		if delta.Content == "" {
			continue
		}
		assistant.WriteString(delta.Content)
		if sinkAlive {
			if err := sink.Send(ContentEvent(delta.Content)); err != nil {
				sinkAlive = false
				r.logger.Debug().Str("conversation_id", conversation.PublicID).
					Msg("client went away, draining stream to persist reply")
			}
		}
	}

	if _, err := r.service.AppendMessage(turnCtx, conversation.ID, RoleAssistant, assistant.String()); err != nil {
		state = TurnStateFailed
		r.reportFailure(sink, err, state)
		return err
	}

	state = TurnStateCompleted
	if sinkAlive {
		if err := sink.Send(DoneEvent()); err != nil {
			r.logger.Debug().Str("conversation_id", conversation.PublicID).
				Msg("client went away before done event")
		}
	}
	r.logger.Info().
		Str("conversation_id", conversation.PublicID).
		Str("turn_state", string(state)).
		Int("reply_len", assistant.Len()).
		Msg("turn completed")
	return nil
}

func (r *TurnRunner) reportFailure(sink TurnSink, err error, state TurnState) {
	if appErr := apperrors.GetAppError(err); appErr != nil {
		apperrors.LogError(r.logger.With().Str("turn_state", string(state)).Logger(), appErr)
	} else {
		r.logger.Error().Err(err).Str("turn_state", string(state)).Msg("turn failed")
	}
	if sendErr := sink.Send(ErrorEvent("The assistant could not finish its reply. Please try again.")); sendErr != nil {
		r.logger.Debug().Msg("client went away before error event")
	}
}
