package controller

import (
	"errors"
	"strconv"

	"github.com/benbeisheim/chessmoves-backend/internal/model"
	"github.com/benbeisheim/chessmoves-backend/internal/service"
	"github.com/gofiber/fiber/v2"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

type createGameRequest struct {
	FEN string `json:"fen"`
}

type movesResponse struct {
	From  model.Position   `json:"from"`
	Moves []model.Position `json:"moves"`
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, model.ErrGameFull),
		errors.Is(err, model.ErrAlreadyQueued),
		errors.Is(err, model.ErrGameOver),
		errors.Is(err, model.ErrNotYourTurn):
		return fiber.StatusConflict
	case errors.Is(err, model.ErrInvalidFEN),
		errors.Is(err, model.ErrNoPiece),
		errors.Is(err, model.ErrIllegalMove):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

func errorResponse(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	var req createGameRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
	}

	gameID, err := gc.gameService.CreateGame(req.FEN)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	color, err := gc.gameService.JoinGame(gameID, playerID)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Game joined",
		"color":   color,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameState, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(gameState)
}

// PossibleMoves answers GET /:gameId/moves with either ?square=e2 or
// ?row=1&col=4.
func (gc *GameController) PossibleMoves(c *fiber.Ctx) error {
	from, err := squareFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	moves, err := gc.gameService.PossibleMoves(c.Params("gameId"), from)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(movesResponse{From: from, Moves: moves})
}

func squareFromQuery(c *fiber.Ctx) (model.Position, error) {
	if square := c.Query("square"); square != "" {
		return model.ParseSquare(square)
	}
	row, err := strconv.Atoi(c.Query("row"))
	if err != nil {
		return model.Position{}, errors.New("square or row and col are required")
	}
	col, err := strconv.Atoi(c.Query("col"))
	if err != nil {
		return model.Position{}, errors.New("square or row and col are required")
	}
	return model.Position{Row: row, Col: col}, nil
}

func (gc *GameController) JoinMatchmaking(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)

	if err := gc.gameService.JoinMatchmaking(playerID); err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"status": "queued",
	})
}
