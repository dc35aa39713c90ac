package main

import (
	"embed"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/swegeo/swesearch/internal/search"
	"github.com/swegeo/swesearch/pkg/log"
	"github.com/swegeo/swesearch/pkg/sweref"
	"github.com/swegeo/swesearch/staticfiles"
)

//go:embed templates
var templates embed.FS

type HttpServer struct {
	app *App
	f   *fiber.App
}

func NewHttp(app *App) *HttpServer {
	engine := html.NewFileSystem(http.FS(templates), ".html")
	engine.Delims("[[", "]]")

	f := fiber.New(fiber.Config{
		EnablePrintRoutes:     false,
		DisableStartupMessage: true,
		Views:                 engine,
	})

	f.Use(log.NewFiberLogger(&log.LoggerConfig{Name: "http", DoMetrics: true, LogErrorsOnly: true}))

	staticfiles.Embed(f)

	f.Get("/", getIndexHandler())
	f.Get("/api/search", getSearchHandler(app))
	f.Get("/api/parse", getParseHandler())
	f.Get("/api/detect", getDetectHandler(app))
	f.Get("/api/projections", getProjectionsHandler())
	f.Get("/ws", getWsHandler(app))
	f.Get("/metrics", getMetricsHandler())

	return &HttpServer{app: app, f: f}
}

func (h *HttpServer) Listen(addr string) error {
	h.app.logger.Info("listening http at " + addr)

	return h.f.Listen(addr)
}

func getIndexHandler() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		data := map[string]any{
			"js": []string{"main.js"},
		}

		return ctx.Render("templates/index", data)
	}
}

func getSearchHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		q := sweref.SanitizeQuery(ctx.Query("q"))

		var (
			res    *search.Result
			errKey string
		)

		// a one-shot request is always the latest invocation of its
		// own sequencer, so delivery is guaranteed
		app.NewSearcher().Search(ctx.Context(), q,
			func(r *search.Result) { res = r },
			func(key string) { errKey = key })

		if errKey != "" {
			return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": errKey})
		}

		return ctx.JSON(fiber.Map{"result": res})
	}
}

func getParseHandler() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		res, err := sweref.Parse(sweref.Sanitize(ctx.Query("q")))
		if err != nil {
			return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": sweref.KeyOf(err)})
		}

		return ctx.JSON(res)
	}
}

func getDetectHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		e, err1 := strconv.ParseFloat(ctx.Query("e"), 64)
		n, err2 := strconv.ParseFloat(ctx.Query("n"), 64)

		if err1 != nil || err2 != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": sweref.ErrorInvalidNumber})
		}

		lon, hasLon := app.state.CenterLongitude()

		if s := ctx.Query("lon"); s != "" {
			if v, err := strconv.ParseFloat(s, 64); err == nil {
				lon, hasLon = v, true
			}
		}

		pref := app.state.Preference()
		if s := ctx.Query("pref"); s != "" {
			pref = sweref.Preference(s)
		}

		return ctx.JSON(sweref.DetectProjection(e, n, lon, hasLon, pref))
	}
}

func getProjectionsHandler() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"projections": sweref.Projections()})
	}
}

func getMetricsHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
