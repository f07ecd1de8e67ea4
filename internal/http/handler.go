package http

import (
	"fmt"
	"strings"
	"time"

	"chessrules/internal/core"
	"chessrules/internal/processor"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

const rateLimitRate = 10 // req/sec

// HealthReporter exposes component status for the health endpoint
type HealthReporter interface {
	GetStorageHealth() string
}

type HTTPHandler struct {
	proc   *processor.Processor
	health HealthReporter
}

func NewHTTPHandler(proc *processor.Processor, health HealthReporter) *HTTPHandler {
	return &HTTPHandler{proc: proc, health: health}
}

func NewFiberApp(proc *processor.Processor, health HealthReporter, devMode bool) *fiber.App {
	h := NewHTTPHandler(proc, health)

	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	})

	// Global middleware (order matters)
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	// Health check (no rate limit)
	app.Get("/health", h.Health)

	api := app.Group("/api/v1")

	maxReq := rateLimitRate
	if devMode {
		maxReq = rateLimitRate * 2
	}
	api.Use(limiter.New(limiter.Config{
		Max:        maxReq,
		Expiration: 1 * time.Second,
		KeyGenerator: func(c *fiber.Ctx) string {
			if xff := c.Get("X-Forwarded-For"); xff != "" {
				if idx := strings.Index(xff, ","); idx != -1 {
					return strings.TrimSpace(xff[:idx])
				}
				return xff
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(core.ErrorResponse{
				Error:   "rate limit exceeded",
				Code:    core.ErrRateLimitExceeded,
				Details: fmt.Sprintf("%d requests per second allowed", maxReq),
			})
		},
	}))

	api.Use(contentTypeValidator)
	api.Use(validationMiddleware)

	api.Post("/games", h.CreateGame)
	api.Get("/games/:gameId", h.withGameID(h.GetGame))
	api.Delete("/games/:gameId", h.withGameID(h.DeleteGame))
	api.Post("/games/:gameId/moves", h.withGameID(h.MakeMove))
	api.Post("/games/:gameId/pass", h.withGameID(h.simple(processor.NewPassCommand)))
	api.Post("/games/:gameId/reverse", h.withGameID(h.simple(processor.NewReverseCommand)))
	api.Post("/games/:gameId/reset", h.withGameID(h.simple(processor.NewResetCommand)))
	api.Get("/games/:gameId/board", h.withGameID(h.simple(processor.NewGetBoardCommand)))

	return app
}

// contentTypeValidator ensures POST requests with a body are application/json
func contentTypeValidator(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodPost {
		contentType := c.Get("Content-Type")
		if contentType != "application/json" && contentType != "" {
			return c.Status(fiber.StatusUnsupportedMediaType).JSON(core.ErrorResponse{
				Error:   "unsupported media type",
				Code:    core.ErrInvalidContent,
				Details: "Content-Type must be application/json",
			})
		}
	}
	return c.Next()
}

// customErrorHandler provides consistent error responses
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	response := core.ErrorResponse{
		Error: "internal server error",
		Code:  core.ErrInternalError,
	}

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		response.Error = e.Message

		switch code {
		case fiber.StatusNotFound:
			response.Code = core.ErrGameNotFound
		case fiber.StatusBadRequest:
			response.Code = core.ErrInvalidRequest
		case fiber.StatusTooManyRequests:
			response.Code = core.ErrRateLimitExceeded
		}
	}

	return c.Status(code).JSON(response)
}

// withGameID rejects requests whose :gameId is not a UUID
func (h *HTTPHandler) withGameID(next fiber.Handler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !isValidUUID(c.Params("gameId")) {
			return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
				Error:   "invalid game ID format",
				Code:    core.ErrInvalidRequest,
				Details: "game ID must be a valid UUID",
			})
		}
		return next(c)
	}
}

// simple wraps commands that carry nothing but the game ID
func (h *HTTPHandler) simple(newCmd func(string) processor.Command) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return h.respond(c, h.proc.Execute(newCmd(c.Params("gameId"))), fiber.StatusOK)
	}
}

// respond writes a processor response with a status derived from its error code
func (h *HTTPHandler) respond(c *fiber.Ctx, resp processor.ProcessorResponse, okStatus int) error {
	if !resp.Success {
		return c.Status(statusFor(resp.Error.Code)).JSON(resp.Error)
	}
	if resp.Data == nil {
		return c.SendStatus(okStatus)
	}
	return c.Status(okStatus).JSON(resp.Data)
}

func statusFor(code string) int {
	switch code {
	case core.ErrGameNotFound:
		return fiber.StatusNotFound
	case core.ErrGameOver:
		return fiber.StatusConflict
	case core.ErrInternalError:
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusBadRequest
	}
}

// validatedBody fetches the request parsed by validationMiddleware
func validatedBody[T any](c *fiber.Ctx) (*T, error) {
	validated, ok := c.Locals("validated").(bool)
	if !ok || !validated {
		return nil, fmt.Errorf("validation bypass detected")
	}
	body, ok := c.Locals("validatedBody").(*T)
	if !ok || body == nil {
		return nil, fmt.Errorf("validation data missing")
	}
	return body, nil
}

func internalError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(core.ErrorResponse{
		Error: err.Error(),
		Code:  core.ErrInternalError,
	})
}

// Health check endpoint
func (h *HTTPHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"time":    time.Now().Unix(),
		"storage": h.health.GetStorageHealth(),
	})
}

// CreateGame starts a game from the standard position or a supplied FEN
func (h *HTTPHandler) CreateGame(c *fiber.Ctx) error {
	req, err := validatedBody[core.CreateGameRequest](c)
	if err != nil {
		return internalError(c, err)
	}
	return h.respond(c, h.proc.Execute(processor.NewCreateGameCommand(*req)), fiber.StatusCreated)
}

// GetGame retrieves current game state
func (h *HTTPHandler) GetGame(c *fiber.Ctx) error {
	return h.respond(c, h.proc.Execute(processor.NewGetGameCommand(c.Params("gameId"))), fiber.StatusOK)
}

// DeleteGame ends and cleans up a game
func (h *HTTPHandler) DeleteGame(c *fiber.Ctx) error {
	return h.respond(c, h.proc.Execute(processor.NewDeleteGameCommand(c.Params("gameId"))), fiber.StatusNoContent)
}

// MakeMove submits an algebraic move for the side to move
func (h *HTTPHandler) MakeMove(c *fiber.Ctx) error {
	req, err := validatedBody[core.MoveRequest](c)
	if err != nil {
		return internalError(c, err)
	}
	return h.respond(c, h.proc.Execute(processor.NewMakeMoveCommand(c.Params("gameId"), *req)), fiber.StatusOK)
}
