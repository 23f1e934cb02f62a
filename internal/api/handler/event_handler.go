package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/servicehub/marketplace/internal/core/ports"
)

// maxBatchSize caps how many completions a single batch request may carry.
const maxBatchSize = 500

// EventDispatcher is the interface the handler uses to enqueue events.
type EventDispatcher interface {
	Enqueue(event ports.CompletionEventInput)
	EnqueueBatch(events []ports.CompletionEventInput)
}

// EventHandler handles completion event ingestion from integrated systems.
type EventHandler struct {
	dispatcher EventDispatcher
}

// NewEventHandler creates an EventHandler backed by the given dispatcher.
func NewEventHandler(dispatcher EventDispatcher) *EventHandler {
	return &EventHandler{dispatcher: dispatcher}
}

// Receive handles POST /v1/events/completions. The event is applied
// asynchronously, so 202 only means it was queued.
//
// @Summary      Report a booking completion
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      completionEventRequest  true  "Completion event"
// @Success      202   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/events/completions [post]
func (h *EventHandler) Receive(c echo.Context) error {
	var req completionEventRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	h.dispatcher.Enqueue(toEventInput(req))
	return c.JSON(http.StatusAccepted, messageResponse{Message: "event accepted"})
}

// ReceiveBatch handles POST /v1/events/completions/batch. Either every event
// in the batch is valid and queued, or none is.
//
// @Summary      Report a batch of booking completions
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      []completionEventRequest  true  "Completion events"
// @Success      202   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/events/completions/batch [post]
func (h *EventHandler) ReceiveBatch(c echo.Context) error {
	var reqs []completionEventRequest
	if err := c.Bind(&reqs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if len(reqs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "batch cannot be empty")
	}
	if len(reqs) > maxBatchSize {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("batch cannot exceed %d events", maxBatchSize))
	}

	inputs := make([]ports.CompletionEventInput, 0, len(reqs))
	for i := range reqs {
		if err := c.Validate(&reqs[i]); err != nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity,
				fmt.Sprintf("event[%d]: %s", i, err.Error()))
		}
		inputs = append(inputs, toEventInput(reqs[i]))
	}

	h.dispatcher.EnqueueBatch(inputs)
	return c.JSON(http.StatusAccepted, messageResponse{Message: "events accepted", Count: len(inputs)})
}
