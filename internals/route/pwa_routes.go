package routes

import (
	"github.com/gofiber/fiber/v2"
)

// Rute aset PWA. File disajikan dari ./public; sw.js wajib no-cache
// supaya browser selalu cek versi worker terbaru.
func PWARoutes(app *fiber.App) {
	app.Get("/manifest.webmanifest", func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, "application/manifest+json")
		return c.SendFile("./public/manifest.webmanifest")
	})

	app.Get("/sw.js", func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, "application/javascript; charset=utf-8")
		c.Set(fiber.HeaderCacheControl, "no-cache")
		c.Set("Service-Worker-Allowed", "/")
		return c.SendFile("./public/sw.js")
	})

	app.Static("/", "./public", fiber.Static{
		Compress: true,
		MaxAge:   3600,
	})
}
