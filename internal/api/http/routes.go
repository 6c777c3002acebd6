package httpapi

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-dashboard/internal/cities"
	"github.com/i474232898/weather-dashboard/internal/dashboard"
	"github.com/i474232898/weather-dashboard/internal/store"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

var validate = validator.New()

// ForecastView is the read side of the forecast store. Writes go through
// Service.Fetch only.
type ForecastView interface {
	Grouped(key string) (weather.GroupedForecast, error)
	Loading() bool
	LoadingKeys() []string
	Err() string
}

var _ ForecastView = (*store.ForecastStore)(nil)

// Deps are the components the handlers read and drive.
type Deps struct {
	Service   *weather.Service
	Forecasts ForecastView
	Messages  *store.MessageStore
	Themes    *store.ThemeStore
	Board     *dashboard.Board
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, d Deps) {
	v1 := app.Group("/api/v1")

	v1.Get("/cities", func(c *fiber.Ctx) error {
		cards, err := d.Board.Cards(dashboard.Scope(c.Query("scope")))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(cards)
	})

	v1.Get("/forecast", func(c *fiber.Ctx) error {
		q, err := parseGridQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		key := cities.GridKey(q.NX, q.NY)
		grouped, err := d.Forecasts.Grouped(key)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no forecast for requested grid cell")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read forecast")
		}

		return c.JSON(fiber.Map{
			"key":      key,
			"slice":    d.Service.Slice(),
			"forecast": grouped,
		})
	})

	v1.Post("/forecast/refresh", func(c *fiber.Ctx) error {
		q, err := parseGridQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := d.Service.Fetch(c.UserContext(), q.NX, q.NY); err != nil {
			return fiber.NewError(fiber.StatusBadGateway, weather.StoreMessage(err))
		}

		grouped, _ := d.Forecasts.Grouped(cities.GridKey(q.NX, q.NY))
		return c.JSON(fiber.Map{
			"key":      cities.GridKey(q.NX, q.NY),
			"forecast": grouped,
		})
	})

	v1.Get("/status", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"loading":     d.Forecasts.Loading(),
			"loadingKeys": d.Forecasts.LoadingKeys(),
			"error":       d.Forecasts.Err(),
		})
	})

	v1.Get("/messages", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"messages": d.Messages.Messages(),
			"lastCity": d.Messages.LastCity(),
		})
	})

	v1.Post("/messages", func(c *fiber.Ctx) error {
		var req chatRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		out, err := d.Board.Submit(req.Text)
		switch {
		case errors.Is(err, dashboard.ErrEmptyInput):
			return c.SendStatus(fiber.StatusNoContent)
		case errors.Is(err, dashboard.ErrCityNotRecognized):
			return c.Status(fiber.StatusNotFound).JSON(out)
		case err != nil:
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(out)
	})

	v1.Get("/popup", func(c *fiber.Ctx) error {
		p, ok := d.Board.Popup()
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, "no popup open")
		}
		return c.JSON(p)
	})

	v1.Delete("/popup", func(c *fiber.Ctx) error {
		d.Board.ClosePopup()
		return c.SendStatus(fiber.StatusNoContent)
	})

	v1.Get("/theme", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"theme": d.Themes.Theme()})
	})

	v1.Put("/theme", func(c *fiber.Ctx) error {
		var req themeRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := d.Themes.SetTheme(store.Theme(req.Theme)); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(fiber.Map{"theme": d.Themes.Theme()})
	})

	v1.Get("/categories", func(c *fiber.Ctx) error {
		return c.JSON(weather.CategoryNames)
	})
}

// gridQuery identifies a forecast grid cell.
type gridQuery struct {
	NX int `validate:"min=1"`
	NY int `validate:"min=1"`
}

func parseGridQuery(c *fiber.Ctx) (gridQuery, error) {
	var q gridQuery

	nxStr, nyStr := c.Query("nx"), c.Query("ny")
	if nxStr == "" || nyStr == "" {
		return q, errors.New("nx and ny query parameters are required")
	}

	var err error
	if q.NX, err = strconv.Atoi(nxStr); err != nil {
		return q, errors.New("nx must be an integer")
	}
	if q.NY, err = strconv.Atoi(nyStr); err != nil {
		return q, errors.New("ny must be an integer")
	}

	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}

type chatRequest struct {
	Text string `json:"text"`
}

type themeRequest struct {
	Theme string `json:"theme" validate:"required,oneof=forest sea warm"`
}
