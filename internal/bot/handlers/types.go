package handlers

import (
	"github.com/olegbarsukov/fitness-helper/internal/catalog"
	"github.com/olegbarsukov/fitness-helper/internal/dialogue"
	"github.com/olegbarsukov/fitness-helper/internal/progress"
)

// Dependencies holds everything the handlers need.
type Dependencies struct {
	Engine   *dialogue.Engine
	Catalog  *catalog.Catalog
	Renderer progress.Renderer // optional; nil disables the progress chart
}
