/*  PixelArtMaker - Grid based pixel art drawing tool
    Copyright (C) 2021  vibueno

    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU General Public License as published by
    the Free Software Foundation, either version 3 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.  */

package main

import (
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type config struct {
	ViewportWidth  int // Available display width in px, the container the canvas scales into
	ViewportHeight int // Available display height in px

	MinPixelSize int // Smallest allowed rendered cell size in px, bounds the grid dimensions
	MaxPixelSize int // Largest allowed rendered cell size in px, bounds the canvas width percentage

	AspectRatio      float64 // Allowed width/height ratio range is [AspectRatio/4, AspectRatio]
	BorderCorrection float64 // Padding-bottom correction factor compensating for cell borders

	BuildIndicatorThreshold int           // Cell count above which grid building shows the progress indicator
	BuildIndicatorDelay     time.Duration // Wait before building, so the indicator gets rendered first

	ExportPixelSize  int    // Rendered size of one cell in exported bitmaps
	ExportBackground string // Color blank cells are rasterized with

	SaveFileName   string // Fixed download name for .pix documents
	ExportFileName string // Fixed download name for exported bitmaps

	ListenAddress string
	RecordingsDir string
	DownloadsDir  string
}

// Reads ./config.json and fills in defaults for everything it doesn't set.
func loadConfig() *config {
	viper.SetConfigFile(filepath.Join(".", "config.json"))

	viper.SetDefault("viewportWidth", 1280)
	viper.SetDefault("viewportHeight", 720)
	viper.SetDefault("minPixelSize", 5)
	viper.SetDefault("maxPixelSize", 50)
	viper.SetDefault("aspectRatio", 2.0)
	viper.SetDefault("borderCorrection", 0.995)
	viper.SetDefault("buildIndicatorThreshold", 1000)
	viper.SetDefault("buildIndicatorDelay", 300*time.Millisecond)
	viper.SetDefault("exportPixelSize", 10)
	viper.SetDefault("exportBackground", "#ffffff")
	viper.SetDefault("saveFileName", "pixelart.pix")
	viper.SetDefault("exportFileName", "pixelart.png")
	viper.SetDefault("listenAddress", "localhost:8080")
	viper.SetDefault("recordingsDir", filepath.Join(".", "recordings"))
	viper.SetDefault("downloadsDir", filepath.Join(".", "downloads"))

	if err := viper.ReadInConfig(); err != nil {
		log.Errorf("Can't load config file: %v", err)
	}

	return &config{
		ViewportWidth:           viper.GetInt("viewportWidth"),
		ViewportHeight:          viper.GetInt("viewportHeight"),
		MinPixelSize:            viper.GetInt("minPixelSize"),
		MaxPixelSize:            viper.GetInt("maxPixelSize"),
		AspectRatio:             viper.GetFloat64("aspectRatio"),
		BorderCorrection:        viper.GetFloat64("borderCorrection"),
		BuildIndicatorThreshold: viper.GetInt("buildIndicatorThreshold"),
		BuildIndicatorDelay:     viper.GetDuration("buildIndicatorDelay"),
		ExportPixelSize:         viper.GetInt("exportPixelSize"),
		ExportBackground:        viper.GetString("exportBackground"),
		SaveFileName:            viper.GetString("saveFileName"),
		ExportFileName:          viper.GetString("exportFileName"),
		ListenAddress:           viper.GetString("listenAddress"),
		RecordingsDir:           viper.GetString("recordingsDir"),
		DownloadsDir:            viper.GetString("downloadsDir"),
	}
}

// Configuration used by tests and as fallback when no config file exists.
func defaultConfig() *config {
	return &config{
		ViewportWidth:           1280,
		ViewportHeight:          720,
		MinPixelSize:            5,
		MaxPixelSize:            50,
		AspectRatio:             2.0,
		BorderCorrection:        0.995,
		BuildIndicatorThreshold: 1000,
		BuildIndicatorDelay:     300 * time.Millisecond,
		ExportPixelSize:         10,
		ExportBackground:        "#ffffff",
		SaveFileName:            "pixelart.pix",
		ExportFileName:          "pixelart.png",
		ListenAddress:           "localhost:8080",
		RecordingsDir:           filepath.Join(".", "recordings"),
		DownloadsDir:            filepath.Join(".", "downloads"),
	}
}

// Largest grid dimensions that still render every cell at MinPixelSize or more.
func (cfg *config) maxGridSize() (maxWidth, maxHeight int) {
	return cfg.ViewportWidth / cfg.MinPixelSize, cfg.ViewportHeight / cfg.MinPixelSize
}
