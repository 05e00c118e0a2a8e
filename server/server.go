package server

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	log "github.com/sirupsen/logrus"

	"github.com/Red5d/podcast-mcp/feeds"
	"github.com/Red5d/podcast-mcp/models"
	"github.com/Red5d/podcast-mcp/query"
	"github.com/Red5d/podcast-mcp/transcripts"
)

type ServerConfig struct {

	// The loader holding the show registry and episode snapshots
	Loader *feeds.Loader

	// The engine evaluating search queries
	Engine *feeds.Engine

	// The resolver for episode transcripts
	Resolver *transcripts.Resolver
}

// Returns a fiber.App instance to be used as an HTTP server for the podcast tools
func Server(config *ServerConfig) *fiber.App {

	app := fiber.New()

	// Middleware to track the latency of each request
	app.Use(func(c *fiber.Ctx) error {
		// start timer
		start := time.Now()

		// next routes
		err := c.Next()

		// stop timer
		stop := time.Now()

		// Diff
		log.WithFields(log.Fields{
			"method":  c.Method(),
			"route":   c.Route().Path,
			"latency": stop.Sub(start),
		}).Info("Request")
		return err
	})

	app.Use(requestid.New(requestid.ConfigDefault))
	app.Use(compress.New())

	// List the registered shows
	app.Get("/shows", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"shows": config.Loader.Shows(),
		})
	})

	// Search episodes across one or all shows
	app.Get("/episodes/search", func(c *fiber.Ctx) error {
		q := &query.Query{
			ShowName: c.Query("show", ""),
			Text:     c.Query("text", ""),
		}

		if hosts := c.Query("hosts", ""); hosts != "" {
			for _, host := range strings.Split(hosts, ",") {
				if host = strings.TrimSpace(host); host != "" {
					q.Hosts = append(q.Hosts, host)
				}
			}
		}

		if since := c.Query("since", ""); since != "" {
			t, err := query.ParseInputDate(since)
			if err != nil {
				return badRequest(c, "Invalid since date: "+since)
			}
			q.Since = &t
		}
		if before := c.Query("before", ""); before != "" {
			t, err := query.ParseInputDate(before)
			if err != nil {
				return badRequest(c, "Invalid before date: "+before)
			}
			q.Before = &t
		}

		response, err := config.Engine.Search(c.Context(), q)
		if err != nil {
			switch {
			case errors.Is(err, models.ErrEmptyQuery):
				return badRequest(c, err.Error())
			case errors.Is(err, models.ErrUnknownShow):
				return notFound(c, err.Error())
			default:
				log.WithFields(log.Fields{
					"error": err,
				}).Error("Error searching episodes")
				return c.Status(500).JSON(fiber.Map{"error": "Error searching episodes"})
			}
		}

		return c.JSON(response)
	})

	// Look up one episode by number or guid
	app.Get("/shows/:show/episodes/:number", func(c *fiber.Ctx) error {
		show, number, err := episodeParams(c)
		if err != nil {
			return badRequest(c, err.Error())
		}

		episode, err := config.Loader.GetEpisode(c.Context(), show, number)
		if err != nil {
			return episodeError(c, err)
		}
		return c.JSON(episode)
	})

	// Fetch one episode's transcript
	app.Get("/shows/:show/episodes/:number/transcript", func(c *fiber.Ctx) error {
		show, number, err := episodeParams(c)
		if err != nil {
			return badRequest(c, err.Error())
		}

		episode, err := config.Loader.GetEpisode(c.Context(), show, number)
		if err != nil {
			return episodeError(c, err)
		}

		return c.JSON(config.Resolver.Resolve(c.Context(), episode))
	})

	return app
}

// episodeParams unescapes the route parameters shared by the episode routes.
// Show names contain spaces, so they arrive percent-encoded.
func episodeParams(c *fiber.Ctx) (string, string, error) {
	show, err := url.PathUnescape(c.Params("show"))
	if err != nil {
		return "", "", errors.New("invalid show name")
	}
	number, err := url.PathUnescape(c.Params("number"))
	if err != nil {
		return "", "", errors.New("invalid episode number")
	}
	return show, number, nil
}

func episodeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, models.ErrUnknownShow), errors.Is(err, models.ErrEpisodeNotFound):
		return notFound(c, err.Error())
	default:
		log.WithFields(log.Fields{
			"error": err,
		}).Error("Error loading episode")
		return c.Status(500).JSON(fiber.Map{"error": "Error loading episode"})
	}
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(400).JSON(fiber.Map{"error": message})
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(404).JSON(fiber.Map{"error": message})
}
