package main

import (
	"log/slog"

	"github.com/taigrr/bedeck/pkg/config"
	"github.com/taigrr/bedeck/pkg/models"
	"github.com/taigrr/bedeck/pkg/render"
)

// loadAssets registers the meshes and textures the palette refers to.
// Meshes that fail to load are replaced by the fallback primitive; textures
// that fail are left unregistered and draw as the missing texture.
func loadAssets(cfg config.Config, logger *slog.Logger) *render.Assets {
	lib := models.NewLibrary(cfg.Assets, logger)
	lib.FitSize = cfg.Display.MeshSize

	assets := render.NewAssets()
	for _, e := range cfg.Palette {
		if e.Mesh != models.PrimitiveCube {
			if _, ok := assets.Mesh(e.Mesh); !ok {
				assets.AddMesh(e.Mesh, lib.MeshOrFallback(e.Mesh))
			}
		}
		if e.Texture == "" {
			continue
		}
		if _, ok := assets.Texture(e.Texture); ok {
			continue
		}
		if tex, ok := render.ProceduralTexture(e.Texture); ok {
			assets.AddTexture(e.Texture, tex)
			continue
		}
		img, err := lib.Image(e.Texture)
		if err != nil {
			logger.Warn("texture unavailable", "entry", e.Name, "texture", e.Texture, "err", err)
			continue
		}
		assets.AddTexture(e.Texture, render.TextureFromImage(img))
	}
	logger.Debug("assets loaded", "dir", cfg.Assets, "entries", len(cfg.Palette))
	return assets
}
