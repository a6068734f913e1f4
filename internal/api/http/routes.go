package httpapi

import (
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/d-orlov/tempgrid/internal/forecast"
	"github.com/d-orlov/tempgrid/internal/geo"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *forecast.CachedService, resolver *geo.Resolver) {
	v1 := app.Group("/api/v1")

	v1.Get("/temperature", func(c *fiber.Ctx) error {
		var req temperatureQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		coord, err := req.coordinate(resolver)
		if err != nil {
			if errors.Is(err, geo.ErrUnknownCity) {
				return fiber.NewError(fiber.StatusNotFound, err.Error())
			}
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		values, err := service.Query(c.Context(), coord, req.From, req.To)
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "failed to fetch forecast data")
		}

		return c.JSON(fiber.Map{
			"coordinate": coord,
			"from":       req.From,
			"to":         req.To,
			"values":     values,
		})
	})

	v1.Get("/cache/stats", func(c *fiber.Ctx) error {
		length, capacity := service.CacheStats()
		return c.JSON(fiber.Map{
			"len":      length,
			"capacity": capacity,
		})
	})

	v1.Delete("/cache", func(c *fiber.Ctx) error {
		service.ClearCache()
		return c.SendStatus(fiber.StatusNoContent)
	})
}

// temperatureQuery holds query parameters for the temperature endpoint.
// A request identifies its location either by city or by lat/lon pair.
type temperatureQuery struct {
	City string
	Lat  *float64 `validate:"omitempty,gte=-90,lte=90"`
	Lon  *float64 `validate:"omitempty,gte=-180,lte=180"`
	From int64    `validate:"required"`
	To   int64    `validate:"required,gtefield=From"`
}

func (q *temperatureQuery) bind(c *fiber.Ctx) error {
	q.City = c.Query("city")

	if latStr := c.Query("lat"); latStr != "" {
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			return errors.New("invalid lat")
		}
		q.Lat = &lat
	}
	if lonStr := c.Query("lon"); lonStr != "" {
		lon, err := strconv.ParseFloat(lonStr, 64)
		if err != nil {
			return errors.New("invalid lon")
		}
		q.Lon = &lon
	}

	if q.City == "" && (q.Lat == nil || q.Lon == nil) {
		return errors.New("either city or lat and lon query parameters are required")
	}

	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		return errors.New("from and to query parameters are required")
	}

	from, err := parseTime(fromStr)
	if err != nil {
		return err
	}
	to, err := parseTime(toStr)
	if err != nil {
		return err
	}

	q.From = from.Unix()
	q.To = to.Unix()
	return nil
}

func (q temperatureQuery) coordinate(resolver *geo.Resolver) (geo.Coordinate, error) {
	if q.Lat != nil && q.Lon != nil {
		return geo.Coordinate{Lat: *q.Lat, Lon: *q.Lon}, nil
	}
	return resolver.Resolve(q.City)
}

// parseTime tries to parse either RFC3339 or Unix seconds.
func parseTime(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	return time.Time{}, errors.New("invalid time format; use RFC3339 or unix seconds")
}
